package auth

import (
	"context"

	"github.com/mboloapp/mbolo-backend/internal/modules/user"
)

// Service defines the interface for authentication-related business logic.
type Service interface {
	// Login verifies credentials and returns a signed token plus the account.
	Login(ctx context.Context, email, password string) (string, *user.User, error)

	// VerifyToken validates a signed token and returns the user id it carries.
	VerifyToken(token string) (string, error)
}
