package auth

import (
	"time"

	"github.com/openlodge/clubadmin/internal/domain/model"
)

// Claims is the identity carried by an auth token.
type Claims struct {
	MemberID int64
	Role     model.Role
}

// Strategy issues and verifies auth tokens.
type Strategy interface {
	IssueToken(claims Claims) (string, error)
	ParseToken(token string) (Claims, error)
	Name() string
}

// Options tunes token strategies.
type Options struct {
	TTL time.Duration
}
