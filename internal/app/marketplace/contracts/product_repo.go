package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/domain"
)

// ProductRepository defines the interface for product persistence.
type ProductRepository interface {
	NextID(ctx context.Context, r Reader) (int64, error)

	// GetByID returns domain.ErrProductNotFound when the row is missing.
	GetByID(ctx context.Context, r Reader, id int64) (*domain.Product, error)

	Exists(ctx context.Context, r Reader, id int64) (bool, error)

	// CountByBusiness counts the products listed by a business.
	CountByBusiness(ctx context.Context, r Reader, businessID int64) (int64, error)

	InsertMut(product *domain.Product) *spanner.Mutation
	UpdateMut(product *domain.Product) *spanner.Mutation
	DeleteMut(id int64) *spanner.Mutation
}
