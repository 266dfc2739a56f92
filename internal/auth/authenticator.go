package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/ecotrack/waste-report-api/internal/model"
	"github.com/ecotrack/waste-report-api/internal/repository"
)

// ErrInvalidCredentials covers both "no such user" and "wrong password".
// The two cases must stay indistinguishable to callers so login cannot be
// used to enumerate registered emails. Do not split this error.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInactiveUser is returned when the credentials check out but the account
// is disabled. Kept distinct from ErrInvalidCredentials: the account's
// existence is already known to its owner.
var ErrInactiveUser = errors.New("inactive user")

// UserSource is the read access the authenticator needs from the store.
type UserSource interface {
	GetByEmail(ctx context.Context, email string) (model.User, error)
}

// Authenticator resolves an email + plaintext password into a verified
// Identity. It holds no state between calls beyond the store handle.
type Authenticator struct {
	users UserSource
}

func NewAuthenticator(users UserSource) *Authenticator {
	return &Authenticator{users: users}
}

// Authenticate looks the user up by normalized email and verifies the
// password against the stored bcrypt hash. On success it returns the
// caller's identity; the hash itself never leaves this package.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := a.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		// A lookup miss produces the same caller-visible result as a bad
		// password.
		return Identity{}, ErrInvalidCredentials
	}
	if err != nil {
		return Identity{}, err
	}
	if !VerifyPassword(u.PasswordHash, password) {
		return Identity{}, ErrInvalidCredentials
	}
	if !u.IsActive {
		return Identity{}, ErrInactiveUser
	}
	return Identity{ID: u.ID, IsSuperuser: u.IsSuperuser}, nil
}
