package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ecotrack/waste-report-api/internal/model"
	"github.com/ecotrack/waste-report-api/internal/repository"
)

type stubUserSource map[string]model.User

func (s stubUserSource) GetByEmail(_ context.Context, email string) (model.User, error) {
	u, ok := s[email]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func testUser(t *testing.T, id uint64, email, password string, active, super bool) model.User {
	t.Helper()
	hash, err := HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return model.User{ID: id, Email: email, PasswordHash: hash, IsActive: active, IsSuperuser: super}
}

func TestAuthenticateSuccess(t *testing.T) {
	users := stubUserSource{
		"alice@example.com": testUser(t, 1, "alice@example.com", "pw123", true, false),
		"root@example.com":  testUser(t, 2, "root@example.com", "rootpw", true, true),
	}
	a := NewAuthenticator(users)

	id, err := a.Authenticate(context.Background(), "alice@example.com", "pw123")
	require.NoError(t, err)
	assert.Equal(t, Identity{ID: 1, IsSuperuser: false}, id)

	// Email lookup is case- and whitespace-insensitive.
	id, err = a.Authenticate(context.Background(), "  Root@Example.COM ", "rootpw")
	require.NoError(t, err)
	assert.Equal(t, Identity{ID: 2, IsSuperuser: true}, id)
}

// Wrong password and unknown user must yield the exact same error value so
// the two cases cannot be told apart.
func TestAuthenticateFoldsNotFoundIntoInvalidCredentials(t *testing.T) {
	users := stubUserSource{
		"alice@example.com": testUser(t, 1, "alice@example.com", "pw123", true, false),
	}
	a := NewAuthenticator(users)

	_, errWrongPw := a.Authenticate(context.Background(), "alice@example.com", "nope")
	_, errUnknown := a.Authenticate(context.Background(), "ghost@example.com", "anything")

	assert.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.Equal(t, errWrongPw, errUnknown)
}

func TestAuthenticateInactive(t *testing.T) {
	users := stubUserSource{
		"alice@example.com": testUser(t, 1, "alice@example.com", "pw123", false, false),
	}
	a := NewAuthenticator(users)

	_, err := a.Authenticate(context.Background(), "alice@example.com", "pw123")
	assert.ErrorIs(t, err, ErrInactiveUser)
}
