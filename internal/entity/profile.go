package entity

import (
	"time"

	"github.com/habitquest/backend/pkg/enum"
)

type SubscriptionStatus string

var (
	SubscriptionActive   = enum.New(SubscriptionStatus("active"))
	SubscriptionTrialing = enum.New(SubscriptionStatus("trialing"))
	SubscriptionPastDue  = enum.New(SubscriptionStatus("past_due"))
	SubscriptionCanceled = enum.New(SubscriptionStatus("canceled"))
	SubscriptionUnpaid   = enum.New(SubscriptionStatus("unpaid"))
)

// Subscription mirrors the facts delivered by the payment collaborator. It is
// merged field-by-field into the profile, never written wholesale over it.
type Subscription struct {
	Status               SubscriptionStatus `json:"status"`
	StripeCustomerID     string             `json:"stripeCustomerId,omitempty"`
	StripeSubscriptionID string             `json:"stripeSubscriptionId,omitempty"`
	CurrentPeriodEnd     *time.Time         `json:"currentPeriodEnd,omitempty"`
	TrialEnd             *time.Time         `json:"trialEnd,omitempty"`
	CancelAtPeriodEnd    bool               `json:"cancelAtPeriodEnd,omitempty"`
}

// DefaultNickname is the untouched placeholder; identity-provider names only
// ever replace this value, never a user-customized nickname.
const DefaultNickname = "Adventurer"

type Profile struct {
	Nickname        string        `json:"nickname"`
	JoinedAt        time.Time     `json:"joinedAt"`
	TotalXP         int           `json:"totalXP"`
	Level           int           `json:"level"`
	CurrentStreak   int           `json:"currentStreak"`
	LongestStreak   int           `json:"longestStreak"`
	CompletedQuests int           `json:"completedQuests"`
	Badges          []string      `json:"badges"`
	Subscription    *Subscription `json:"subscription,omitempty"`
}

func NewProfile(now time.Time) Profile {
	return Profile{
		Nickname: DefaultNickname,
		JoinedAt: now,
		Level:    1,
		Badges:   []string{},
	}
}

func (p Profile) HasBadge(id string) bool {
	for _, b := range p.Badges {
		if b == id {
			return true
		}
	}

	return false
}

// IsPremium reports whether the subscription currently gates premium features
// open. Trialing counts as premium.
func (p Profile) IsPremium() bool {
	if p.Subscription == nil {
		return false
	}

	switch p.Subscription.Status {
	case SubscriptionActive, SubscriptionTrialing:
		return true
	}

	return false
}
