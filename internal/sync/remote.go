package sync

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/habitquest/backend/internal/entity"
	"github.com/habitquest/backend/internal/repository"
	"gorm.io/gorm"
)

// docRemote binds the protocol to one user's row in the state document table.
type docRemote struct {
	userID        string
	userStateRepo repository.UserStateRepository
}

func NewDocRemote(userID string, userStateRepo repository.UserStateRepository) *docRemote {
	return &docRemote{userID: userID, userStateRepo: userStateRepo}
}

func (r *docRemote) Fetch(ctx context.Context) (Payload, bool, error) {
	state, err := r.userStateRepo.Get(ctx, r.userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Payload{}, false, nil
		}

		return Payload{}, false, err
	}

	var payload Payload
	if err := json.Unmarshal([]byte(state.Doc), &payload); err != nil {
		return Payload{}, false, err
	}

	return payload, true, nil
}

func (r *docRemote) Push(ctx context.Context, payload Payload) error {
	doc, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return r.userStateRepo.Upsert(ctx, &entity.UserState{
		UserID:     r.userID,
		Doc:        string(doc),
		LastSynced: time.Now(),
	})
}
