package update_user

import (
	"context"
	"fmt"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/contracts"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/domain"
	"github.com/light-bringer/dealmarket-service/internal/pkg/committer"
)

// Request contains the data to update a user.
type Request struct {
	UserID     int64
	Username   *string // nil = no change
	Email      *string // nil = no change
	Password   *string // nil = no change
	IsVerified *bool   // nil = no change
}

// Interactor handles the update user use case.
type Interactor struct {
	users contracts.UserRepository
	tx    contracts.Transactor
}

// NewInteractor creates a new update user interactor.
func NewInteractor(users contracts.UserRepository, tx contracts.Transactor) *Interactor {
	return &Interactor{users: users, tx: tx}
}

// Execute updates a user. Only changed columns are written.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	err := i.tx.ApplyInTransaction(ctx, func(ctx context.Context, txn committer.Txn, plan *committer.CommitPlan) error {
		// 1. Load aggregate
		user, err := i.users.GetByID(ctx, txn, req.UserID)
		if err != nil {
			return err
		}

		// 2. Call domain methods
		if req.Username != nil {
			if err := user.SetUsername(*req.Username); err != nil {
				return err
			}
		}
		if req.Email != nil {
			if err := user.SetEmail(*req.Email); err != nil {
				return err
			}
		}
		if req.Password != nil {
			if err := user.SetPassword(*req.Password); err != nil {
				return err
			}
		}
		if req.IsVerified != nil {
			user.SetVerified(*req.IsVerified)
		}

		// 3. Re-check uniqueness of the fields that moved
		if user.Changes().Dirty(domain.FieldUsername) {
			taken, err := i.users.UsernameTaken(ctx, txn, user.Username(), user.ID())
			if err != nil {
				return err
			}
			if taken {
				return domain.NewFieldError(domain.FieldUsername, domain.ErrDuplicate, user.Username())
			}
		}
		if user.Changes().Dirty(domain.FieldEmail) {
			taken, err := i.users.EmailTaken(ctx, txn, user.Email(), user.ID())
			if err != nil {
				return err
			}
			if taken {
				return domain.NewFieldError(domain.FieldEmail, domain.ErrDuplicate, user.Email())
			}
		}

		// 4. Add repository mutation (nil when nothing changed)
		plan.Add(i.users.UpdateMut(user))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update user %d: %w", req.UserID, contracts.CommitError(err))
	}
	return nil
}
