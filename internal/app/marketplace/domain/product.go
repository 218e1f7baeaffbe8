package domain

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// ProductParams carries the user-supplied fields of a new product.
type ProductParams struct {
	Name string
	// MainCategory may be left empty; it is then derived from Category.
	MainCategory  MainCategory
	Category      Category
	OriginalPrice *Money
	NewPrice      *Money
	// OfferExpirationDate defaults to the creation date when zero.
	OfferExpirationDate civil.Date
	ProductImage        string
	BusinessID          int64
}

// ProductSnapshot is the stored form of a product, used for reconstitution.
type ProductSnapshot struct {
	ID                  int64
	Name                string
	MainCategory        MainCategory
	Category            Category
	OriginalPrice       *Money
	NewPrice            *Money
	PercentageDiscount  int64
	OfferExpirationDate civil.Date
	ProductImage        string
	DatePublished       time.Time
	BusinessID          int64
}

// Product is an item listed by exactly one business.
type Product struct {
	id                  int64
	name                string
	mainCategory        MainCategory
	category            Category
	originalPrice       *Money
	newPrice            *Money
	percentageDiscount  int64
	offerExpirationDate civil.Date
	productImage        string
	datePublished       time.Time
	businessID          int64

	changes *ChangeTracker
}

// NewProduct creates a new Product and computes its percentage discount.
// new_price above original_price is accepted.
func NewProduct(id int64, p ProductParams, now time.Time) (*Product, error) {
	if err := checkRequiredString(FieldName, p.Name, MaxProductNameLength); err != nil {
		return nil, err
	}
	if !p.Category.Valid() {
		return nil, NewFieldError(FieldCategory, ErrEnumMismatch, fmt.Sprintf("%q", p.Category))
	}

	mainCategory := p.MainCategory
	if mainCategory == "" {
		mainCategory, _ = p.Category.Main()
	} else if !mainCategory.Valid() {
		return nil, NewFieldError(FieldMainCategory, ErrEnumMismatch, fmt.Sprintf("%q", mainCategory))
	}

	if err := checkPrice(FieldOriginalPrice, p.OriginalPrice); err != nil {
		return nil, err
	}
	if err := checkPrice(FieldNewPrice, p.NewPrice); err != nil {
		return nil, err
	}

	image := orDefault(p.ProductImage, DefaultProductImage)
	if err := checkLength(FieldProductImage, image, MaxProductImageLength); err != nil {
		return nil, err
	}
	if err := checkReference(FieldBusinessID, p.BusinessID); err != nil {
		return nil, err
	}

	expires := p.OfferExpirationDate
	if expires.IsZero() {
		expires = civil.DateOf(now)
	} else if !expires.IsValid() {
		return nil, NewFieldError(FieldOfferExpirationDate, ErrConstraintViolation, expires.String())
	}

	product := &Product{
		id:                  id,
		name:                p.Name,
		mainCategory:        mainCategory,
		category:            p.Category,
		originalPrice:       p.OriginalPrice.Copy(),
		newPrice:            p.NewPrice.Copy(),
		offerExpirationDate: expires,
		productImage:        image,
		datePublished:       now,
		businessID:          p.BusinessID,
		changes:             NewChangeTracker(),
	}
	product.percentageDiscount = defaultPricingCalculator.PercentageDiscount(product.originalPrice, product.newPrice)

	product.changes.MarkDirty(
		FieldName, FieldMainCategory, FieldCategory, FieldOriginalPrice, FieldNewPrice,
		FieldPercentageDiscount, FieldOfferExpirationDate, FieldProductImage,
		FieldDatePublished, FieldBusinessID,
	)

	return product, nil
}

// ReconstructProduct reconstitutes a Product from storage.
func ReconstructProduct(s ProductSnapshot) *Product {
	return &Product{
		id:                  s.ID,
		name:                s.Name,
		mainCategory:        s.MainCategory,
		category:            s.Category,
		originalPrice:       s.OriginalPrice,
		newPrice:            s.NewPrice,
		percentageDiscount:  s.PercentageDiscount,
		offerExpirationDate: s.OfferExpirationDate,
		productImage:        s.ProductImage,
		datePublished:       s.DatePublished,
		businessID:          s.BusinessID,
		changes:             NewChangeTracker(),
	}
}

// checkPrice enforces presence, sign and decimal(12,2) precision.
func checkPrice(field string, price *Money) error {
	if price == nil {
		return NewFieldError(field, ErrConstraintViolation, "required")
	}
	if price.IsNegative() {
		return NewFieldError(field, ErrConstraintViolation, "cannot be negative")
	}
	if !price.FitsPrecision(PriceDigits, PricePlaces) {
		return NewFieldError(field, ErrConstraintViolation,
			fmt.Sprintf("exceeds decimal(%d,%d)", PriceDigits, PricePlaces))
	}
	return nil
}

// Getters
func (p *Product) ID() int64                       { return p.id }
func (p *Product) Name() string                    { return p.name }
func (p *Product) MainCategory() MainCategory      { return p.mainCategory }
func (p *Product) Category() Category              { return p.category }
func (p *Product) OriginalPrice() *Money           { return p.originalPrice.Copy() }
func (p *Product) NewPrice() *Money                { return p.newPrice.Copy() }
func (p *Product) PercentageDiscount() int64       { return p.percentageDiscount }
func (p *Product) OfferExpirationDate() civil.Date { return p.offerExpirationDate }
func (p *Product) ProductImage() string            { return p.productImage }
func (p *Product) DatePublished() time.Time        { return p.datePublished }
func (p *Product) BusinessID() int64               { return p.businessID }
func (p *Product) Changes() *ChangeTracker         { return p.changes }

// SetName renames the product.
func (p *Product) SetName(name string) error {
	if err := checkRequiredString(FieldName, name, MaxProductNameLength); err != nil {
		return err
	}
	if name == p.name {
		return nil
	}
	p.name = name
	p.changes.MarkDirty(FieldName)
	return nil
}

// SetCategory moves the product to another sub-category. The main category
// follows the new sub-category's grouping.
func (p *Product) SetCategory(category Category) error {
	if !category.Valid() {
		return NewFieldError(FieldCategory, ErrEnumMismatch, fmt.Sprintf("%q", category))
	}
	if category == p.category {
		return nil
	}
	p.category = category
	p.changes.MarkDirty(FieldCategory)

	if main, _ := category.Main(); main != p.mainCategory {
		p.mainCategory = main
		p.changes.MarkDirty(FieldMainCategory)
	}
	return nil
}

// SetPrices replaces either price (nil keeps the current one) and recomputes
// the percentage discount.
func (p *Product) SetPrices(original, newPrice *Money) error {
	if original != nil {
		if err := checkPrice(FieldOriginalPrice, original); err != nil {
			return err
		}
	}
	if newPrice != nil {
		if err := checkPrice(FieldNewPrice, newPrice); err != nil {
			return err
		}
	}

	if original != nil && !original.Equals(p.originalPrice) {
		p.originalPrice = original.Copy()
		p.changes.MarkDirty(FieldOriginalPrice)
	}
	if newPrice != nil && !newPrice.Equals(p.newPrice) {
		p.newPrice = newPrice.Copy()
		p.changes.MarkDirty(FieldNewPrice)
	}

	percent := defaultPricingCalculator.PercentageDiscount(p.originalPrice, p.newPrice)
	if percent != p.percentageDiscount {
		p.percentageDiscount = percent
		p.changes.MarkDirty(FieldPercentageDiscount)
	}
	return nil
}

// SetOfferExpirationDate changes the last day of the offer.
func (p *Product) SetOfferExpirationDate(date civil.Date) error {
	if !date.IsValid() {
		return NewFieldError(FieldOfferExpirationDate, ErrConstraintViolation, date.String())
	}
	if date == p.offerExpirationDate {
		return nil
	}
	p.offerExpirationDate = date
	p.changes.MarkDirty(FieldOfferExpirationDate)
	return nil
}

// SetProductImage replaces the image path; blank resets to the default.
func (p *Product) SetProductImage(image string) error {
	image = orDefault(image, DefaultProductImage)
	if err := checkLength(FieldProductImage, image, MaxProductImageLength); err != nil {
		return err
	}
	if image == p.productImage {
		return nil
	}
	p.productImage = image
	p.changes.MarkDirty(FieldProductImage)
	return nil
}

// IsOfferActiveOn reports whether the offer still runs on the given date.
func (p *Product) IsOfferActiveOn(date civil.Date) bool {
	return !date.After(p.offerExpirationDate)
}
