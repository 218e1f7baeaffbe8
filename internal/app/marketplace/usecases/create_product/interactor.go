package create_product

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/contracts"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/domain"
	"github.com/light-bringer/dealmarket-service/internal/pkg/clock"
	"github.com/light-bringer/dealmarket-service/internal/pkg/committer"
)

// Request contains the data needed to create a product. The main category
// and the percentage discount are derived, never supplied.
type Request struct {
	Name                string
	Category            string
	OriginalPrice       *domain.Money
	NewPrice            *domain.Money
	OfferExpirationDate civil.Date // zero = today
	ProductImage        string
	BusinessID          int64
}

// Interactor handles the create product use case.
type Interactor struct {
	products   contracts.ProductRepository
	businesses contracts.BusinessRepository
	tx         contracts.Transactor
	clock      clock.Clock
}

// NewInteractor creates a new create product interactor.
func NewInteractor(
	products contracts.ProductRepository,
	businesses contracts.BusinessRepository,
	tx contracts.Transactor,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		products:   products,
		businesses: businesses,
		tx:         tx,
		clock:      clock,
	}
}

// Execute creates a product for an existing business and returns its id.
func (i *Interactor) Execute(ctx context.Context, req *Request) (int64, error) {
	// 1. Validate request
	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		return 0, err
	}

	var productID int64
	err = i.tx.ApplyInTransaction(ctx, func(ctx context.Context, txn committer.Txn, plan *committer.CommitPlan) error {
		// 2. Allocate identity
		id, err := i.products.NextID(ctx, txn)
		if err != nil {
			return err
		}

		// 3. Create domain aggregate (computes main category and discount)
		product, err := domain.NewProduct(id, domain.ProductParams{
			Name:                req.Name,
			Category:            category,
			OriginalPrice:       req.OriginalPrice,
			NewPrice:            req.NewPrice,
			OfferExpirationDate: req.OfferExpirationDate,
			ProductImage:        req.ProductImage,
			BusinessID:          req.BusinessID,
		}, i.clock.Now())
		if err != nil {
			return err
		}

		// 4. Business must exist
		ok, err := i.businesses.Exists(ctx, txn, product.BusinessID())
		if err != nil {
			return err
		}
		if !ok {
			return domain.NewFieldError(domain.FieldBusinessID, domain.ErrReferenceNotFound,
				fmt.Sprintf("business %d", product.BusinessID()))
		}

		// 5. Add repository mutation
		plan.Add(i.products.InsertMut(product))

		productID = id
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create product: %w", contracts.CommitError(err))
	}

	return productID, nil
}
