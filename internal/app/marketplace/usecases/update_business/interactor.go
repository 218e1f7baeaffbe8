package update_business

import (
	"context"
	"fmt"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/contracts"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/domain"
	"github.com/light-bringer/dealmarket-service/internal/pkg/committer"
)

// Request contains the data to update a business. The owner cannot change.
type Request struct {
	BusinessID int64
	Name       *string // nil = no change
	City       *string // nil = no change
	Region     *string // nil = no change
	Logo       *string // nil = no change

	// SetDescription applies Description, which may be nil to clear it.
	SetDescription bool
	Description    *string
}

// Interactor handles the update business use case.
type Interactor struct {
	businesses contracts.BusinessRepository
	tx         contracts.Transactor
}

// NewInteractor creates a new update business interactor.
func NewInteractor(businesses contracts.BusinessRepository, tx contracts.Transactor) *Interactor {
	return &Interactor{businesses: businesses, tx: tx}
}

// Execute updates a business. Only changed columns are written.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	err := i.tx.ApplyInTransaction(ctx, func(ctx context.Context, txn committer.Txn, plan *committer.CommitPlan) error {
		// 1. Load aggregate
		business, err := i.businesses.GetByID(ctx, txn, req.BusinessID)
		if err != nil {
			return err
		}

		// 2. Call domain methods
		if req.Name != nil {
			if err := business.SetName(*req.Name); err != nil {
				return err
			}
		}
		if req.City != nil || req.Region != nil {
			city, region := business.City(), business.Region()
			if req.City != nil {
				city = *req.City
			}
			if req.Region != nil {
				region = *req.Region
			}
			if err := business.SetLocation(city, region); err != nil {
				return err
			}
		}
		if req.Logo != nil {
			if err := business.SetLogo(*req.Logo); err != nil {
				return err
			}
		}
		if req.SetDescription {
			business.SetDescription(req.Description)
		}

		// 3. A new name must be free
		if business.Changes().Dirty(domain.FieldBusinessName) {
			taken, err := i.businesses.NameTaken(ctx, txn, business.Name(), business.ID())
			if err != nil {
				return err
			}
			if taken {
				return domain.NewFieldError(domain.FieldBusinessName, domain.ErrDuplicate, business.Name())
			}
		}

		// 4. Add repository mutation
		plan.Add(i.businesses.UpdateMut(business))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update business %d: %w", req.BusinessID, contracts.CommitError(err))
	}
	return nil
}
