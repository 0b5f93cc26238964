package app

import (
	"context"

	"chirpterm/domain"
)

// UserService resolves author display metadata and the authenticated
// identity.
type UserService interface {
	// User resolves a user by ID. ok is false when the user does not
	// exist; that is not an error — the caller hides the affected
	// rendering instead.
	User(ctx context.Context, id string) (u domain.User, ok bool, err error)

	// CurrentUserID returns the authenticated user's ID, or an error
	// when no valid credentials are present.
	CurrentUserID(ctx context.Context) (string, error)
}
