package dto

import (
	"time"

	"github.com/openlodge/clubadmin/internal/domain/model"
)

// MemberResponse is the wire form of one member.
type MemberResponse struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	State          string    `json:"state"`
	BoardPosition  *string   `json:"board_position,omitempty"`
	MembershipType string    `json:"membership_type"`
	JoinedAt       time.Time `json:"joined_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewMemberResponse maps the domain member onto the wire form.
func NewMemberResponse(m *model.Member) MemberResponse {
	return MemberResponse{
		ID:             m.ID,
		Email:          m.Email,
		Name:           m.Name,
		Role:           string(m.Role),
		State:          string(m.State),
		BoardPosition:  m.BoardPosition,
		MembershipType: string(m.MembershipType),
		JoinedAt:       m.JoinedAt,
		CreatedAt:      m.CreatedAt,
	}
}

// MemberListResponse is one roster page.
type MemberListResponse struct {
	Members []MemberResponse `json:"members"`
	Total   int64            `json:"total"`
	Page    int              `json:"page"`
	PerPage int              `json:"per_page"`
}

// CreateMemberRequest registers a new member.
type CreateMemberRequest struct {
	Email          string `json:"email"`
	Name           string `json:"name"`
	Password       string `json:"password"`
	Role           string `json:"role"`
	MembershipType string `json:"membership_type"`
}

// UpdateMemberRequest is a partial member update. Absent fields stay
// untouched; board_position set to an empty string clears it.
type UpdateMemberRequest struct {
	Name           *string `json:"name"`
	Role           *string `json:"role"`
	State          *string `json:"state"`
	BoardPosition  *string `json:"board_position"`
	MembershipType *string `json:"membership_type"`
}

// MemberDetailResponse extends the member with subscription and money
// totals for the detail page.
type MemberDetailResponse struct {
	MemberResponse
	Subscription *SubscriptionResponse `json:"subscription,omitempty"`
	Totals       TotalsResponse        `json:"totals"`
}

// SubscriptionResponse is the wire form of a plan record.
type SubscriptionResponse struct {
	Plan      string    `json:"plan"`
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
	RenewsAt  time.Time `json:"renews_at"`
}

// NewSubscriptionResponse maps a subscription onto the wire form.
func NewSubscriptionResponse(s *model.Subscription) *SubscriptionResponse {
	return &SubscriptionResponse{
		Plan:      string(s.Plan),
		Status:    string(s.Status),
		StartedAt: s.StartedAt,
		RenewsAt:  s.RenewsAt,
	}
}

// ChangePlanRequest switches a member's plan.
type ChangePlanRequest struct {
	Plan string `json:"plan"`
}
