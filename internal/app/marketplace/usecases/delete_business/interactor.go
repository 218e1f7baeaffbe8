package delete_business

import (
	"context"
	"fmt"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/contracts"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/domain"
	"github.com/light-bringer/dealmarket-service/internal/pkg/committer"
)

// Request identifies the business to delete.
type Request struct {
	BusinessID int64
}

// Interactor handles the delete business use case.
type Interactor struct {
	businesses contracts.BusinessRepository
	products   contracts.ProductRepository
	tx         contracts.Transactor
}

// NewInteractor creates a new delete business interactor.
func NewInteractor(
	businesses contracts.BusinessRepository,
	products contracts.ProductRepository,
	tx contracts.Transactor,
) *Interactor {
	return &Interactor{
		businesses: businesses,
		products:   products,
		tx:         tx,
	}
}

// Execute deletes a business that lists no products.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	err := i.tx.ApplyInTransaction(ctx, func(ctx context.Context, txn committer.Txn, plan *committer.CommitPlan) error {
		ok, err := i.businesses.Exists(ctx, txn, req.BusinessID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrBusinessNotFound
		}

		listed, err := i.products.CountByBusiness(ctx, txn, req.BusinessID)
		if err != nil {
			return err
		}
		if listed > 0 {
			return fmt.Errorf("%w: business lists %d products", domain.ErrHasDependents, listed)
		}

		plan.Add(i.businesses.DeleteMut(req.BusinessID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete business %d: %w", req.BusinessID, contracts.CommitError(err))
	}
	return nil
}
