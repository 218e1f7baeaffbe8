package update_product

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/contracts"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/domain"
	"github.com/light-bringer/dealmarket-service/internal/pkg/committer"
)

// Request contains the data to update a product. The owning business cannot change.
type Request struct {
	ProductID           int64
	Name                *string       // nil = no change
	Category            *string       // nil = no change
	OriginalPrice       *domain.Money // nil = no change
	NewPrice            *domain.Money // nil = no change
	OfferExpirationDate *civil.Date   // nil = no change
	ProductImage        *string       // nil = no change
}

// Interactor handles the update product use case.
type Interactor struct {
	products contracts.ProductRepository
	tx       contracts.Transactor
}

// NewInteractor creates a new update product interactor.
func NewInteractor(products contracts.ProductRepository, tx contracts.Transactor) *Interactor {
	return &Interactor{products: products, tx: tx}
}

// Execute updates a product. A price change recomputes the percentage discount.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	// 1. Validate request
	var category domain.Category
	if req.Category != nil {
		parsed, err := domain.ParseCategory(*req.Category)
		if err != nil {
			return err
		}
		category = parsed
	}

	err := i.tx.ApplyInTransaction(ctx, func(ctx context.Context, txn committer.Txn, plan *committer.CommitPlan) error {
		// 2. Load aggregate
		product, err := i.products.GetByID(ctx, txn, req.ProductID)
		if err != nil {
			return err
		}

		// 3. Call domain methods
		if req.Name != nil {
			if err := product.SetName(*req.Name); err != nil {
				return err
			}
		}
		if req.Category != nil {
			if err := product.SetCategory(category); err != nil {
				return err
			}
		}
		if req.OriginalPrice != nil || req.NewPrice != nil {
			if err := product.SetPrices(req.OriginalPrice, req.NewPrice); err != nil {
				return err
			}
		}
		if req.OfferExpirationDate != nil {
			if err := product.SetOfferExpirationDate(*req.OfferExpirationDate); err != nil {
				return err
			}
		}
		if req.ProductImage != nil {
			if err := product.SetProductImage(*req.ProductImage); err != nil {
				return err
			}
		}

		// 4. Add repository mutation (only if changes exist)
		plan.Add(i.products.UpdateMut(product))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update product %d: %w", req.ProductID, contracts.CommitError(err))
	}
	return nil
}
