package marketplace

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/contracts"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/domain"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/usecases/create_business"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/usecases/create_product"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/usecases/register_user"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/usecases/update_business"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/usecases/update_product"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/usecases/update_user"
)

func userOutFromDTO(dto *contracts.UserDTO) UserOut {
	return UserOut{
		ID:         dto.ID,
		Username:   dto.Username,
		Email:      dto.Email,
		IsVerified: dto.IsVerified,
		JoinDate:   dto.JoinDate,
	}
}

func businessFromDTO(dto *contracts.BusinessDTO) Business {
	return Business{
		ID:          dto.ID,
		Name:        dto.Name,
		City:        dto.City,
		Region:      dto.Region,
		Description: dto.Description,
		Logo:        dto.Logo,
		OwnerID:     dto.OwnerID,
	}
}

func productFromDTO(dto *contracts.ProductDTO) Product {
	return Product{
		ID:                  dto.ID,
		Name:                dto.Name,
		MainCategory:        dto.MainCategory,
		Category:            dto.Category,
		OriginalPrice:       dto.OriginalPrice,
		NewPrice:            dto.NewPrice,
		PercentageDiscount:  dto.PercentageDiscount,
		OfferExpirationDate: dto.OfferExpirationDate,
		ProductImage:        dto.ProductImage,
		DatePublished:       dto.DatePublished,
		BusinessID:          dto.BusinessID,
	}
}

func businessPage(list *contracts.BusinessList) BusinessPage {
	page := BusinessPage{Businesses: make([]Business, len(list.Businesses)), TotalCount: list.TotalCount}
	for i, dto := range list.Businesses {
		page.Businesses[i] = businessFromDTO(dto)
	}
	return page
}

func productPage(list *contracts.ProductList) ProductPage {
	page := ProductPage{Products: make([]Product, len(list.Products)), TotalCount: list.TotalCount}
	for i, dto := range list.Products {
		page.Products[i] = productFromDTO(dto)
	}
	return page
}

func (in *UserIn) toRequest() *register_user.Request {
	return &register_user.Request{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
	}
}

func (in *BusinessIn) toRequest() *create_business.Request {
	return &create_business.Request{
		Name:        in.Name,
		City:        in.City,
		Region:      in.Region,
		Description: in.Description,
		Logo:        in.Logo,
		OwnerID:     in.OwnerID,
	}
}

func (in *ProductIn) toRequest() *create_product.Request {
	var expires civil.Date
	if in.OfferExpirationDate != nil {
		expires = *in.OfferExpirationDate
	}
	return &create_product.Request{
		Name:                in.Name,
		Category:            in.Category,
		OriginalPrice:       domain.NewMoneyFromDecimal(in.OriginalPrice),
		NewPrice:            domain.NewMoneyFromDecimal(in.NewPrice),
		OfferExpirationDate: expires,
		ProductImage:        in.ProductImage,
		BusinessID:          in.BusinessID,
	}
}

func (p *UserPatch) toRequest(id int64) *update_user.Request {
	return &update_user.Request{
		UserID:     id,
		Username:   p.Username,
		Email:      p.Email,
		Password:   p.Password,
		IsVerified: p.IsVerified,
	}
}

// toRequest needs the raw payload to tell an explicit null description from
// an absent one.
func (p *BusinessPatch) toRequest(id int64, payload map[string]any) *update_business.Request {
	_, setDescription := payload[domain.FieldBusinessDescription]
	return &update_business.Request{
		BusinessID:     id,
		Name:           p.Name,
		City:           p.City,
		Region:         p.Region,
		Logo:           p.Logo,
		SetDescription: setDescription,
		Description:    p.Description,
	}
}

func (p *ProductPatch) toRequest(id int64) *update_product.Request {
	return &update_product.Request{
		ProductID:           id,
		Name:                p.Name,
		Category:            p.Category,
		OriginalPrice:       moneyPtr(p.OriginalPrice),
		NewPrice:            moneyPtr(p.NewPrice),
		OfferExpirationDate: p.OfferExpirationDate,
		ProductImage:        p.ProductImage,
	}
}

func moneyPtr(d *decimal.Decimal) *domain.Money {
	if d == nil {
		return nil
	}
	return domain.NewMoneyFromDecimal(*d)
}
