package subscription

import (
	"context"
	"encoding/json"
	"time"

	"github.com/habitquest/backend/internal/entity"
	"github.com/habitquest/backend/internal/repository"
	"github.com/habitquest/backend/pkg/enum"
	"github.com/habitquest/backend/pkg/pubsub"
	"github.com/habitquest/backend/pkg/xcontext"
)

// Event is a subscription lifecycle fact published by the payment
// collaborator. The message key is the user id.
type Event struct {
	Status               string     `json:"status"`
	StripeCustomerID     string     `json:"stripeCustomerId"`
	StripeSubscriptionID string     `json:"stripeSubscriptionId"`
	CurrentPeriodEnd     *time.Time `json:"currentPeriodEnd"`
	TrialEnd             *time.Time `json:"trialEnd"`
	CancelAtPeriodEnd    bool       `json:"cancelAtPeriodEnd"`
}

// LiveSessions lets the consumer also reach a session that is signed in
// right now, so premium gates flip without waiting for the next sign-in.
type LiveSessions interface {
	MergeSubscription(ctx context.Context, userID string, sub entity.Subscription) bool
}

type Domain struct {
	userStateRepo repository.UserStateRepository
	sessions      LiveSessions
}

func NewDomain(userStateRepo repository.UserStateRepository, sessions LiveSessions) *Domain {
	return &Domain{userStateRepo: userStateRepo, sessions: sessions}
}

// Subscribe is the kafka handler for the subscription topic. Lifecycle facts
// are merged field-by-field into the remote document; they never replace the
// profile the client owns.
func (d *Domain) Subscribe(ctx context.Context, pack *pubsub.Pack, tt time.Time) {
	userID := string(pack.Key)

	var event Event
	if err := json.Unmarshal(pack.Msg, &event); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot unmarshal subscription event: %v", err)
		return
	}

	status, err := enum.ToEnum[entity.SubscriptionStatus](event.Status)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Invalid subscription status %s: %v", event.Status, err)
		return
	}

	sub := entity.Subscription{
		Status:               status,
		StripeCustomerID:     event.StripeCustomerID,
		StripeSubscriptionID: event.StripeSubscriptionID,
		CurrentPeriodEnd:     event.CurrentPeriodEnd,
		TrialEnd:             event.TrialEnd,
		CancelAtPeriodEnd:    event.CancelAtPeriodEnd,
	}

	if err := d.userStateRepo.MergeSubscription(ctx, userID, sub); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot merge subscription for %s: %v", userID, err)
	}

	if d.sessions != nil && d.sessions.MergeSubscription(ctx, userID, sub) {
		xcontext.Logger(ctx).Infof("Merged subscription into live session of %s", userID)
	}
}
