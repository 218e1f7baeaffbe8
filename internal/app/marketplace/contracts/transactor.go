package contracts

import (
	"context"
	"errors"
	"fmt"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/domain"
	"github.com/light-bringer/dealmarket-service/internal/pkg/committer"
)

// Transactor runs a plan-building function inside a read-write transaction
// and commits the plan it produced.
type Transactor interface {
	ApplyInTransaction(ctx context.Context, fn committer.TxnFunc) error
}

var _ Transactor = (*committer.Committer)(nil)

// CommitError translates storage rejections that slipped past the in-transaction
// checks (a concurrent insert winning the race) into the domain taxonomy.
func CommitError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, committer.ErrConflict):
		return fmt.Errorf("%w: %v", domain.ErrDuplicate, err)
	case errors.Is(err, committer.ErrBrokenReference):
		return fmt.Errorf("%w: %v", domain.ErrReferenceNotFound, err)
	}
	return err
}
