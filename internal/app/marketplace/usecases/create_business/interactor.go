package create_business

import (
	"context"
	"fmt"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/contracts"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/domain"
	"github.com/light-bringer/dealmarket-service/internal/pkg/committer"
)

// Request contains the data needed to create a business.
type Request struct {
	Name        string
	City        string
	Region      string
	Description *string
	Logo        string
	OwnerID     int64
}

// Interactor handles the create business use case.
type Interactor struct {
	businesses contracts.BusinessRepository
	users      contracts.UserRepository
	tx         contracts.Transactor
}

// NewInteractor creates a new create business interactor.
func NewInteractor(
	businesses contracts.BusinessRepository,
	users contracts.UserRepository,
	tx contracts.Transactor,
) *Interactor {
	return &Interactor{
		businesses: businesses,
		users:      users,
		tx:         tx,
	}
}

// Execute creates a business for an existing owner and returns its id.
func (i *Interactor) Execute(ctx context.Context, req *Request) (int64, error) {
	var businessID int64

	err := i.tx.ApplyInTransaction(ctx, func(ctx context.Context, txn committer.Txn, plan *committer.CommitPlan) error {
		// 1. Allocate identity
		id, err := i.businesses.NextID(ctx, txn)
		if err != nil {
			return err
		}

		// 2. Create domain aggregate
		business, err := domain.NewBusiness(id, domain.BusinessParams{
			Name:        req.Name,
			City:        req.City,
			Region:      req.Region,
			Description: req.Description,
			Logo:        req.Logo,
			OwnerID:     req.OwnerID,
		})
		if err != nil {
			return err
		}

		// 3. Owner must exist
		ok, err := i.users.Exists(ctx, txn, business.OwnerID())
		if err != nil {
			return err
		}
		if !ok {
			return domain.NewFieldError(domain.FieldOwnerID, domain.ErrReferenceNotFound,
				fmt.Sprintf("user %d", business.OwnerID()))
		}

		// 4. Name must be free
		taken, err := i.businesses.NameTaken(ctx, txn, business.Name(), business.ID())
		if err != nil {
			return err
		}
		if taken {
			return domain.NewFieldError(domain.FieldBusinessName, domain.ErrDuplicate, business.Name())
		}

		// 5. Add repository mutation
		plan.Add(i.businesses.InsertMut(business))

		businessID = id
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create business: %w", contracts.CommitError(err))
	}

	return businessID, nil
}
