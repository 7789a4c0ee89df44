package model

import "time"

// Role controls what a member may do in the admin console.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleStaff  Role = "staff"
	RoleMember Role = "member"
)

// CanManage reports whether the role grants access to staff endpoints.
func (r Role) CanManage() bool {
	return r == RoleAdmin || r == RoleStaff
}

// Valid reports whether the value is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleMember:
		return true
	}
	return false
}

// MemberState describes membership lifecycle.
type MemberState string

const (
	MemberStatePending   MemberState = "pending"
	MemberStateActive    MemberState = "active"
	MemberStateSuspended MemberState = "suspended"
	MemberStateAlumni    MemberState = "alumni"
)

// CanTransitionTo validates the membership state machine.
func (s MemberState) CanTransitionTo(next MemberState) bool {
	switch s {
	case MemberStatePending:
		return next == MemberStateActive
	case MemberStateActive:
		return next == MemberStateSuspended || next == MemberStateAlumni
	case MemberStateSuspended:
		return next == MemberStateActive || next == MemberStateAlumni
	default:
		return false
	}
}

// MembershipType doubles as the subscription plan name.
type MembershipType string

const (
	MembershipRegular   MembershipType = "regular"
	MembershipStudent   MembershipType = "student"
	MembershipSupporter MembershipType = "supporter"
	MembershipHonorary  MembershipType = "honorary"
)

// Rank orders paid plans for downgrade detection. Honorary is free and
// ranks below everything.
func (t MembershipType) Rank() int {
	switch t {
	case MembershipSupporter:
		return 3
	case MembershipRegular:
		return 2
	case MembershipStudent:
		return 1
	default:
		return 0
	}
}

// Valid reports whether the value is a known membership type.
func (t MembershipType) Valid() bool {
	switch t {
	case MembershipRegular, MembershipStudent, MembershipSupporter, MembershipHonorary:
		return true
	}
	return false
}

// Member is a person registered with the organization.
type Member struct {
	ID             int64
	Email          string
	Name           string
	PasswordHash   string
	Role           Role
	State          MemberState
	BoardPosition  *string
	MembershipType MembershipType
	JoinedAt       time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// MemberFilter narrows member listings.
type MemberFilter struct {
	Query           string
	States          []MemberState
	Roles           []Role
	BoardPositions  []string
	MembershipTypes []MembershipType
	Page            int
	PerPage         int
}

// MemberPatch carries partial updates applied to a member.
type MemberPatch struct {
	Name           *string
	Role           *Role
	State          *MemberState
	BoardPosition  *string
	ClearBoard     bool
	MembershipType *MembershipType
}
