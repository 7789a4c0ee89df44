package model

import "time"

// SubscriptionStatus describes billing lifecycle of a membership plan.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionPaused    SubscriptionStatus = "paused"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// Subscription binds a member to a plan. A member has at most one.
type Subscription struct {
	ID        int64
	MemberID  int64
	Plan      MembershipType
	Status    SubscriptionStatus
	StartedAt time.Time
	RenewsAt  time.Time
}
