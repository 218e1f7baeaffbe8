package register_user

import (
	"context"
	"fmt"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/contracts"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/domain"
	"github.com/light-bringer/dealmarket-service/internal/pkg/clock"
	"github.com/light-bringer/dealmarket-service/internal/pkg/committer"
)

// Request contains the data needed to register a user.
type Request struct {
	Username string
	Email    string
	Password string
}

// Interactor handles the register user use case.
type Interactor struct {
	users contracts.UserRepository
	tx    contracts.Transactor
	clock clock.Clock
}

// NewInteractor creates a new register user interactor.
func NewInteractor(users contracts.UserRepository, tx contracts.Transactor, clock clock.Clock) *Interactor {
	return &Interactor{
		users: users,
		tx:    tx,
		clock: clock,
	}
}

// Execute registers a user and returns its assigned id.
func (i *Interactor) Execute(ctx context.Context, req *Request) (int64, error) {
	var userID int64

	err := i.tx.ApplyInTransaction(ctx, func(ctx context.Context, txn committer.Txn, plan *committer.CommitPlan) error {
		// 1. Allocate identity
		id, err := i.users.NextID(ctx, txn)
		if err != nil {
			return err
		}

		// 2. Create domain aggregate
		user, err := domain.NewUser(id, req.Username, req.Email, req.Password, i.clock.Now())
		if err != nil {
			return err
		}

		// 3. Enforce unique username and email
		if err := i.checkUnique(ctx, txn, user); err != nil {
			return err
		}

		// 4. Add repository mutation
		plan.Add(i.users.InsertMut(user))

		userID = id
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to register user: %w", contracts.CommitError(err))
	}

	return userID, nil
}

func (i *Interactor) checkUnique(ctx context.Context, txn committer.Txn, user *domain.User) error {
	taken, err := i.users.UsernameTaken(ctx, txn, user.Username(), user.ID())
	if err != nil {
		return err
	}
	if taken {
		return domain.NewFieldError(domain.FieldUsername, domain.ErrDuplicate, user.Username())
	}

	taken, err = i.users.EmailTaken(ctx, txn, user.Email(), user.ID())
	if err != nil {
		return err
	}
	if taken {
		return domain.NewFieldError(domain.FieldEmail, domain.ErrDuplicate, user.Email())
	}
	return nil
}
