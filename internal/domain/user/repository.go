package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	LinkGoogleAccount(ctx context.Context, googleID string, email string) (User, error)
	UpdateProfile(ctx context.Context, email string, name string, image *string) error
	UpdateRole(ctx context.Context, email string, role Role) error

	// ListByRole retrieves all users with the given role, ordered by name.
	// The reporting engine uses it to enumerate employees for aggregation.
	ListByRole(ctx context.Context, role Role) ([]User, error)
}
