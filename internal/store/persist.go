package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/habitquest/backend/internal/entity"
	"github.com/habitquest/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// StorageKey is the fixed key the whole AppState blob lives under on the
// device. Bump the suffix on incompatible layout changes.
const StorageKey = "habitquest:state:v1"

// Persister mirrors the state to durable on-device storage. Load's second
// return is false when nothing usable is stored, which callers treat the same
// as a first run.
type Persister interface {
	Save(ctx context.Context, state entity.AppState) error
	Load(ctx context.Context) (entity.AppState, bool, error)
}

type localBlob struct {
	Key   string `gorm:"primarykey"`
	Value string `gorm:"type:longtext"`
}

func (localBlob) TableName() string { return "local_blobs" }

// gormPersister serializes the state into a single keyed row, typically in a
// local sqlite file.
type gormPersister struct {
	db *gorm.DB
}

func NewGormPersister(db *gorm.DB) (*gormPersister, error) {
	if err := db.AutoMigrate(&localBlob{}); err != nil {
		return nil, err
	}

	return &gormPersister{db: db}, nil
}

func (p *gormPersister) Save(ctx context.Context, state entity.AppState) error {
	b, err := json.Marshal(state)
	if err != nil {
		return err
	}

	blob := localBlob{Key: StorageKey, Value: string(b)}
	return p.db.WithContext(ctx).Save(&blob).Error
}

func (p *gormPersister) Load(ctx context.Context) (entity.AppState, bool, error) {
	var blob localBlob
	err := p.db.WithContext(ctx).First(&blob, "key = ?", StorageKey).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.AppState{}, false, nil
		}
		return entity.AppState{}, false, err
	}

	var state entity.AppState
	if err := json.Unmarshal([]byte(blob.Value), &state); err != nil {
		// A corrupt blob is equivalent to a first run.
		xcontext.Logger(ctx).Warnf("Persisted state is corrupt, discarding: %v", err)
		return entity.AppState{}, false, nil
	}

	return state, true, nil
}

// memPersister keeps the blob in memory. Used by tests and by sessions that
// opt out of on-device persistence.
type memPersister struct {
	blob []byte
}

func NewMemPersister() *memPersister {
	return &memPersister{}
}

func (p *memPersister) Save(ctx context.Context, state entity.AppState) error {
	b, err := json.Marshal(state)
	if err != nil {
		return err
	}

	p.blob = b
	return nil
}

func (p *memPersister) Load(ctx context.Context) (entity.AppState, bool, error) {
	if p.blob == nil {
		return entity.AppState{}, false, nil
	}

	var state entity.AppState
	if err := json.Unmarshal(p.blob, &state); err != nil {
		return entity.AppState{}, false, nil
	}

	return state, true, nil
}
