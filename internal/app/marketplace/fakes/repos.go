package fakes

import (
	"context"
	"strings"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/contracts"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/domain"
)

// The repositories below read committed state only; they expect the store
// mutex to be held by the transactor.

type userRepo struct{ s *Store }

func (r userRepo) NextID(context.Context, contracts.Reader) (int64, error) {
	return r.s.next("users"), nil
}

func (r userRepo) GetByID(_ context.Context, _ contracts.Reader, id int64) (*domain.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r userRepo) Exists(_ context.Context, _ contracts.Reader, id int64) (bool, error) {
	_, ok := r.s.users[id]
	return ok, nil
}

func (r userRepo) UsernameTaken(_ context.Context, _ contracts.Reader, username string, exceptID int64) (bool, error) {
	for id, u := range r.s.users {
		if id != exceptID && u.Username() == username {
			return true, nil
		}
	}
	return false, nil
}

func (r userRepo) EmailTaken(_ context.Context, _ contracts.Reader, email string, exceptID int64) (bool, error) {
	for id, u := range r.s.users {
		if id != exceptID && u.Email() == email {
			return true, nil
		}
	}
	return false, nil
}

func (r userRepo) InsertMut(u *domain.User) *spanner.Mutation {
	row := cloneUser(u)
	return r.s.stage("users", func() { r.s.users[row.ID()] = row })
}

func (r userRepo) UpdateMut(u *domain.User) *spanner.Mutation {
	if !u.Changes().HasChanges() {
		return nil
	}
	return r.InsertMut(u)
}

func (r userRepo) DeleteMut(id int64) *spanner.Mutation {
	return r.s.stage("users", func() { delete(r.s.users, id) })
}

type businessRepo struct{ s *Store }

func (r businessRepo) NextID(context.Context, contracts.Reader) (int64, error) {
	return r.s.next("businesses"), nil
}

func (r businessRepo) GetByID(_ context.Context, _ contracts.Reader, id int64) (*domain.Business, error) {
	b, ok := r.s.businesses[id]
	if !ok {
		return nil, domain.ErrBusinessNotFound
	}
	return cloneBusiness(b), nil
}

func (r businessRepo) Exists(_ context.Context, _ contracts.Reader, id int64) (bool, error) {
	_, ok := r.s.businesses[id]
	return ok, nil
}

func (r businessRepo) NameTaken(_ context.Context, _ contracts.Reader, name string, exceptID int64) (bool, error) {
	for id, b := range r.s.businesses {
		if id != exceptID && b.Name() == name {
			return true, nil
		}
	}
	return false, nil
}

func (r businessRepo) CountByOwner(_ context.Context, _ contracts.Reader, ownerID int64) (int64, error) {
	var n int64
	for _, b := range r.s.businesses {
		if b.OwnerID() == ownerID {
			n++
		}
	}
	return n, nil
}

func (r businessRepo) InsertMut(b *domain.Business) *spanner.Mutation {
	row := cloneBusiness(b)
	return r.s.stage("businesses", func() { r.s.businesses[row.ID()] = row })
}

func (r businessRepo) UpdateMut(b *domain.Business) *spanner.Mutation {
	if !b.Changes().HasChanges() {
		return nil
	}
	return r.InsertMut(b)
}

func (r businessRepo) DeleteMut(id int64) *spanner.Mutation {
	return r.s.stage("businesses", func() { delete(r.s.businesses, id) })
}

type productRepo struct{ s *Store }

func (r productRepo) NextID(context.Context, contracts.Reader) (int64, error) {
	return r.s.next("products"), nil
}

func (r productRepo) GetByID(_ context.Context, _ contracts.Reader, id int64) (*domain.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

func (r productRepo) Exists(_ context.Context, _ contracts.Reader, id int64) (bool, error) {
	_, ok := r.s.products[id]
	return ok, nil
}

func (r productRepo) CountByBusiness(_ context.Context, _ contracts.Reader, businessID int64) (int64, error) {
	var n int64
	for _, p := range r.s.products {
		if p.BusinessID() == businessID {
			n++
		}
	}
	return n, nil
}

func (r productRepo) InsertMut(p *domain.Product) *spanner.Mutation {
	row := cloneProduct(p)
	return r.s.stage("products", func() { r.s.products[row.ID()] = row })
}

func (r productRepo) UpdateMut(p *domain.Product) *spanner.Mutation {
	if !p.Changes().HasChanges() {
		return nil
	}
	return r.InsertMut(p)
}

func (r productRepo) DeleteMut(id int64) *spanner.Mutation {
	return r.s.stage("products", func() { delete(r.s.products, id) })
}

func hasPrefix(s, prefix string) bool {
	return prefix == "" || strings.HasPrefix(s, prefix)
}
