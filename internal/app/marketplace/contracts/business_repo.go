package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/domain"
)

// BusinessRepository defines the interface for business persistence.
type BusinessRepository interface {
	NextID(ctx context.Context, r Reader) (int64, error)

	// GetByID returns domain.ErrBusinessNotFound when the row is missing.
	GetByID(ctx context.Context, r Reader, id int64) (*domain.Business, error)

	Exists(ctx context.Context, r Reader, id int64) (bool, error)

	// NameTaken reports whether another business holds the name.
	NameTaken(ctx context.Context, r Reader, name string, exceptID int64) (bool, error)

	// CountByOwner counts the businesses owned by a user.
	CountByOwner(ctx context.Context, r Reader, ownerID int64) (int64, error)

	InsertMut(business *domain.Business) *spanner.Mutation
	UpdateMut(business *domain.Business) *spanner.Mutation
	DeleteMut(id int64) *spanner.Mutation
}
