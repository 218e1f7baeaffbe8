package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/domain"
)

// UserRepository defines the interface for user persistence.
// Repositories return mutations, they don't apply them.
type UserRepository interface {
	// NextID draws the next identifier from the users sequence.
	// It must run inside a read-write transaction.
	NextID(ctx context.Context, r Reader) (int64, error)

	// GetByID retrieves a user, reconstructing the aggregate.
	// Returns domain.ErrUserNotFound when the row is missing.
	GetByID(ctx context.Context, r Reader, id int64) (*domain.User, error)

	// Exists checks if a user exists.
	Exists(ctx context.Context, r Reader, id int64) (bool, error)

	// UsernameTaken reports whether another user (any id but exceptID) holds the username.
	UsernameTaken(ctx context.Context, r Reader, username string, exceptID int64) (bool, error)

	// EmailTaken reports whether another user holds the email.
	EmailTaken(ctx context.Context, r Reader, email string, exceptID int64) (bool, error)

	InsertMut(user *domain.User) *spanner.Mutation

	// UpdateMut writes only dirty fields; nil when nothing changed.
	UpdateMut(user *domain.User) *spanner.Mutation

	DeleteMut(id int64) *spanner.Mutation
}
