package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/openlodge/clubadmin/internal/domain/errors"
	"github.com/openlodge/clubadmin/internal/domain/model"
	"github.com/openlodge/clubadmin/internal/domain/repository"
	pkgAuth "github.com/openlodge/clubadmin/internal/pkg/auth"
)

// AuthUseCase handles console sign-in and token management.
type AuthUseCase struct {
	members repository.MemberRepository
	hasher  pkgAuth.PasswordHasher
	tokens  pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(members repository.MemberRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{members: members, hasher: hasher, tokens: strategy}
}

// Login validates credentials and returns a token. Plain members sign
// in too, for the reimbursement desk; route guards keep them out of
// the admin surface. Suspended members are turned away regardless of
// password.
func (u *AuthUseCase) Login(ctx context.Context, email, password string) (*model.Member, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	m, err := u.members.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(m.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}
	if m.State == model.MemberStateSuspended {
		return nil, "", domainErrors.ErrForbidden
	}

	token, err := u.tokens.IssueToken(pkgAuth.Claims{MemberID: m.ID, Role: m.Role})
	if err != nil {
		return nil, "", err
	}
	return m, token, nil
}

// ParseToken extracts claims from the provided token.
func (u *AuthUseCase) ParseToken(token string) (pkgAuth.Claims, error) {
	if token == "" {
		return pkgAuth.Claims{}, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches a member by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.Member, error) {
	return u.members.GetByID(ctx, id)
}
