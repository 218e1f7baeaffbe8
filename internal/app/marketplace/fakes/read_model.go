package fakes

import (
	"context"
	"sort"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/contracts"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/domain"
)

type readModel struct{ s *Store }

func (rm readModel) GetUser(_ context.Context, id int64) (*contracts.UserDTO, error) {
	rm.s.mu.Lock()
	defer rm.s.mu.Unlock()

	u, ok := rm.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &contracts.UserDTO{
		ID:         u.ID(),
		Username:   u.Username(),
		Email:      u.Email(),
		IsVerified: u.IsVerified(),
		JoinDate:   u.JoinDate(),
	}, nil
}

func (rm readModel) GetBusiness(_ context.Context, id int64) (*contracts.BusinessDTO, error) {
	rm.s.mu.Lock()
	defer rm.s.mu.Unlock()

	b, ok := rm.s.businesses[id]
	if !ok {
		return nil, domain.ErrBusinessNotFound
	}
	return businessDTO(b), nil
}

func (rm readModel) GetProduct(_ context.Context, id int64) (*contracts.ProductDTO, error) {
	rm.s.mu.Lock()
	defer rm.s.mu.Unlock()

	p, ok := rm.s.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return productDTO(p), nil
}

func (rm readModel) ListBusinesses(_ context.Context, filter *contracts.BusinessFilter) (*contracts.BusinessList, error) {
	rm.s.mu.Lock()
	defer rm.s.mu.Unlock()

	matched := make([]*contracts.BusinessDTO, 0)
	for _, b := range rm.s.businesses {
		if filter.OwnerID != 0 && b.OwnerID() != filter.OwnerID {
			continue
		}
		matched = append(matched, businessDTO(b))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	lo, hi := window(len(matched), filter.Page.Normalize())
	return &contracts.BusinessList{Businesses: matched[lo:hi], TotalCount: int64(len(matched))}, nil
}

func (rm readModel) ListProducts(_ context.Context, filter *contracts.ProductFilter) (*contracts.ProductList, error) {
	rm.s.mu.Lock()
	defer rm.s.mu.Unlock()

	matched := make([]*contracts.ProductDTO, 0)
	for _, p := range rm.s.products {
		switch {
		case filter.BusinessID != 0 && p.BusinessID() != filter.BusinessID:
			continue
		case filter.Category != "" && string(p.Category()) != filter.Category:
			continue
		case filter.MainCategory != "" && string(p.MainCategory()) != filter.MainCategory:
			continue
		case !hasPrefix(p.Name(), filter.NamePrefix):
			continue
		case filter.MinDiscount != nil && p.PercentageDiscount() < *filter.MinDiscount:
			continue
		case !filter.ActiveOn.IsZero() && !p.IsOfferActiveOn(filter.ActiveOn):
			continue
		}
		matched = append(matched, productDTO(p))
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].DatePublished.Equal(matched[j].DatePublished) {
			return matched[i].DatePublished.After(matched[j].DatePublished)
		}
		return matched[i].ID < matched[j].ID
	})

	lo, hi := window(len(matched), filter.Page.Normalize())
	return &contracts.ProductList{Products: matched[lo:hi], TotalCount: int64(len(matched))}, nil
}

func window(n int, page contracts.Page) (int, int) {
	lo := int(page.Offset)
	if lo > n {
		lo = n
	}
	hi := lo + int(page.Limit)
	if hi > n {
		hi = n
	}
	return lo, hi
}

func businessDTO(b *domain.Business) *contracts.BusinessDTO {
	return &contracts.BusinessDTO{
		ID:          b.ID(),
		Name:        b.Name(),
		City:        b.City(),
		Region:      b.Region(),
		Description: b.Description(),
		Logo:        b.Logo(),
		OwnerID:     b.OwnerID(),
	}
}

func productDTO(p *domain.Product) *contracts.ProductDTO {
	var main *string
	if p.MainCategory() != "" {
		m := string(p.MainCategory())
		main = &m
	}
	return &contracts.ProductDTO{
		ID:                  p.ID(),
		Name:                p.Name(),
		MainCategory:        main,
		Category:            string(p.Category()),
		OriginalPrice:       p.OriginalPrice().Decimal(),
		NewPrice:            p.NewPrice().Decimal(),
		PercentageDiscount:  p.PercentageDiscount(),
		OfferExpirationDate: p.OfferExpirationDate(),
		ProductImage:        p.ProductImage(),
		DatePublished:       p.DatePublished(),
		BusinessID:          p.BusinessID(),
	}
}
