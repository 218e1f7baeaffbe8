// Package marketplace serves the marketplace records over HTTP. Request and
// response bodies are the typed counterparts of the named schema variants.
package marketplace

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// User mirrors the User variant. It carries the password and is never
// written to a response.
type User struct {
	ID       int64     `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
	JoinDate time.Time `json:"join_date"`
}

// UserIn is the registration body.
type UserIn struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserOut is the user response body.
type UserOut struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	IsVerified bool      `json:"is_verified"`
	JoinDate   time.Time `json:"join_date"`
}

// Business is the business response body.
type Business struct {
	ID          int64   `json:"id"`
	Name        string  `json:"business_name"`
	City        string  `json:"city"`
	Region      string  `json:"region"`
	Description *string `json:"business_description"`
	Logo        string  `json:"logo"`
	OwnerID     int64   `json:"owner_id"`
}

// BusinessIn is the business creation body. Blank city, region and logo take
// their defaults.
type BusinessIn struct {
	Name        string  `json:"business_name"`
	City        string  `json:"city"`
	Region      string  `json:"region"`
	Description *string `json:"business_description"`
	Logo        string  `json:"logo"`
	OwnerID     int64   `json:"owner_id"`
}

// Product is the product response body.
type Product struct {
	ID                  int64           `json:"id"`
	Name                string          `json:"name"`
	MainCategory        *string         `json:"main_category"`
	Category            string          `json:"category"`
	OriginalPrice       decimal.Decimal `json:"original_price"`
	NewPrice            decimal.Decimal `json:"new_price"`
	PercentageDiscount  int64           `json:"percentage_discount"`
	OfferExpirationDate civil.Date      `json:"offer_expiration_date"`
	ProductImage        string          `json:"product_image"`
	DatePublished       time.Time       `json:"date_published"`
	BusinessID          int64           `json:"business_id"`
}

// ProductIn is the product creation body.
type ProductIn struct {
	Name                string          `json:"name"`
	Category            string          `json:"category"`
	OriginalPrice       decimal.Decimal `json:"original_price"`
	NewPrice            decimal.Decimal `json:"new_price"`
	OfferExpirationDate *civil.Date     `json:"offer_expiration_date"`
	ProductImage        string          `json:"product_image"`
	BusinessID          int64           `json:"business_id"`
}

// Partial update bodies. Absent fields are left unchanged.
type (
	UserPatch struct {
		Username   *string `json:"username"`
		Email      *string `json:"email"`
		Password   *string `json:"password"`
		IsVerified *bool   `json:"is_verified"`
	}

	BusinessPatch struct {
		Name   *string `json:"business_name"`
		City   *string `json:"city"`
		Region *string `json:"region"`
		// Description distinguishes absent from null through the raw payload.
		Description *string `json:"business_description"`
		Logo        *string `json:"logo"`
	}

	ProductPatch struct {
		Name                *string          `json:"name"`
		Category            *string          `json:"category"`
		OriginalPrice       *decimal.Decimal `json:"original_price"`
		NewPrice            *decimal.Decimal `json:"new_price"`
		OfferExpirationDate *civil.Date      `json:"offer_expiration_date"`
		ProductImage        *string          `json:"product_image"`
	}
)

// BusinessPage is one page of a business listing.
type BusinessPage struct {
	Businesses []Business `json:"businesses"`
	TotalCount int64      `json:"total_count"`
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Products   []Product `json:"products"`
	TotalCount int64     `json:"total_count"`
}
