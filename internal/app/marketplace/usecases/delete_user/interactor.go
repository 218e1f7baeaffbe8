package delete_user

import (
	"context"
	"fmt"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/contracts"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/domain"
	"github.com/light-bringer/dealmarket-service/internal/pkg/committer"
)

// Request identifies the user to delete.
type Request struct {
	UserID int64
}

// Interactor handles the delete user use case.
type Interactor struct {
	users      contracts.UserRepository
	businesses contracts.BusinessRepository
	tx         contracts.Transactor
}

// NewInteractor creates a new delete user interactor.
func NewInteractor(
	users contracts.UserRepository,
	businesses contracts.BusinessRepository,
	tx contracts.Transactor,
) *Interactor {
	return &Interactor{
		users:      users,
		businesses: businesses,
		tx:         tx,
	}
}

// Execute deletes a user that owns no businesses.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	err := i.tx.ApplyInTransaction(ctx, func(ctx context.Context, txn committer.Txn, plan *committer.CommitPlan) error {
		ok, err := i.users.Exists(ctx, txn, req.UserID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrUserNotFound
		}

		owned, err := i.businesses.CountByOwner(ctx, txn, req.UserID)
		if err != nil {
			return err
		}
		if owned > 0 {
			return fmt.Errorf("%w: user owns %d businesses", domain.ErrHasDependents, owned)
		}

		plan.Add(i.users.DeleteMut(req.UserID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete user %d: %w", req.UserID, contracts.CommitError(err))
	}
	return nil
}
