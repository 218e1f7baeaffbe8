package delete_product

import (
	"context"
	"fmt"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/contracts"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/domain"
	"github.com/light-bringer/dealmarket-service/internal/pkg/committer"
)

// Request identifies the product to delete.
type Request struct {
	ProductID int64
}

// Interactor handles the delete product use case.
type Interactor struct {
	products contracts.ProductRepository
	tx       contracts.Transactor
}

// NewInteractor creates a new delete product interactor.
func NewInteractor(products contracts.ProductRepository, tx contracts.Transactor) *Interactor {
	return &Interactor{products: products, tx: tx}
}

// Execute deletes a product.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	err := i.tx.ApplyInTransaction(ctx, func(ctx context.Context, txn committer.Txn, plan *committer.CommitPlan) error {
		ok, err := i.products.Exists(ctx, txn, req.ProductID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrProductNotFound
		}

		plan.Add(i.products.DeleteMut(req.ProductID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", req.ProductID, contracts.CommitError(err))
	}
	return nil
}
