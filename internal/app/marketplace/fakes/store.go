// Package fakes provides an in-memory stand-in for the Spanner repositories,
// transactor and read model, for tests that exercise usecases and handlers
// without an emulator.
package fakes

import (
	"context"
	"sync"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/contracts"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/domain"
	"github.com/light-bringer/dealmarket-service/internal/pkg/committer"
)

// Store holds committed rows. Writes staged by the fake repositories become
// visible only when the surrounding transaction function succeeds.
type Store struct {
	mu sync.Mutex

	seq        map[string]int64
	users      map[int64]*domain.User
	businesses map[int64]*domain.Business
	products   map[int64]*domain.Product
	pending    []func()

	// CommitErr, when set, is returned by the next commit instead of applying it.
	CommitErr error
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		seq:        make(map[string]int64),
		users:      make(map[int64]*domain.User),
		businesses: make(map[int64]*domain.Business),
		products:   make(map[int64]*domain.Product),
	}
}

// Transactor returns a contracts.Transactor over the store.
func (s *Store) Transactor() contracts.Transactor { return transactor{s} }

// Users returns a contracts.UserRepository over the store.
func (s *Store) Users() contracts.UserRepository { return userRepo{s} }

// Businesses returns a contracts.BusinessRepository over the store.
func (s *Store) Businesses() contracts.BusinessRepository { return businessRepo{s} }

// Products returns a contracts.ProductRepository over the store.
func (s *Store) Products() contracts.ProductRepository { return productRepo{s} }

// ReadModel returns a contracts.ReadModel over the store.
func (s *Store) ReadModel() contracts.ReadModel { return readModel{s} }

type transactor struct{ s *Store }

// ApplyInTransaction serialises transactions on the store mutex. Repository
// calls made by fn run with the mutex held.
func (t transactor) ApplyInTransaction(ctx context.Context, fn committer.TxnFunc) error {
	s := t.s
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = nil
	plan := committer.NewPlan()
	if err := fn(ctx, nil, plan); err != nil {
		s.pending = nil
		return err
	}

	if s.CommitErr != nil {
		err := s.CommitErr
		s.CommitErr = nil
		s.pending = nil
		return err
	}

	for _, apply := range s.pending {
		apply()
	}
	s.pending = nil
	return nil
}

func (s *Store) next(sequence string) int64 {
	s.seq[sequence]++
	return s.seq[sequence]
}

func (s *Store) stage(table string, apply func()) *spanner.Mutation {
	s.pending = append(s.pending, apply)
	return spanner.Insert(table, nil, nil)
}

// SeedUser commits a user outside any transaction and returns it.
func (s *Store) SeedUser(u *domain.User) *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID()] = cloneUser(u)
	if u.ID() > s.seq["users"] {
		s.seq["users"] = u.ID()
	}
	return u
}

// SeedBusiness commits a business outside any transaction.
func (s *Store) SeedBusiness(b *domain.Business) *domain.Business {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.businesses[b.ID()] = cloneBusiness(b)
	if b.ID() > s.seq["businesses"] {
		s.seq["businesses"] = b.ID()
	}
	return b
}

// SeedProduct commits a product outside any transaction.
func (s *Store) SeedProduct(p *domain.Product) *domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID()] = cloneProduct(p)
	if p.ID() > s.seq["products"] {
		s.seq["products"] = p.ID()
	}
	return p
}

// User returns the committed copy of a user.
func (s *Store) User(id int64) (*domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, false
	}
	return cloneUser(u), true
}

// Business returns the committed copy of a business.
func (s *Store) Business(id int64) (*domain.Business, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.businesses[id]
	if !ok {
		return nil, false
	}
	return cloneBusiness(b), true
}

// Product returns the committed copy of a product.
func (s *Store) Product(id int64) (*domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, false
	}
	return cloneProduct(p), true
}

func cloneUser(u *domain.User) *domain.User {
	return domain.ReconstructUser(u.ID(), u.Username(), u.Email(), u.Password(), u.IsVerified(), u.JoinDate())
}

func cloneBusiness(b *domain.Business) *domain.Business {
	return domain.ReconstructBusiness(b.ID(), b.Name(), b.City(), b.Region(), b.Description(), b.Logo(), b.OwnerID())
}

func cloneProduct(p *domain.Product) *domain.Product {
	return domain.ReconstructProduct(domain.ProductSnapshot{
		ID:                  p.ID(),
		Name:                p.Name(),
		MainCategory:        p.MainCategory(),
		Category:            p.Category(),
		OriginalPrice:       p.OriginalPrice(),
		NewPrice:            p.NewPrice(),
		PercentageDiscount:  p.PercentageDiscount(),
		OfferExpirationDate: p.OfferExpirationDate(),
		ProductImage:        p.ProductImage(),
		DatePublished:       p.DatePublished(),
		BusinessID:          p.BusinessID(),
	})
}
