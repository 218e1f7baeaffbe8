// Package entities declares the field catalogues of the marketplace records
// and the named schema variants the API layer validates and renders with.
package entities

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/domain"
	"github.com/light-bringer/dealmarket-service/internal/pkg/schema"
)

// Entity names.
const (
	User     = "User"
	Business = "Business"
	Product  = "Product"
)

// Defaults documented on fields populated at write time.
const (
	defaultNow   = "now"
	defaultToday = "today"
)

// UserEntity is the full catalogue of the users table.
var UserEntity = schema.MustEntity(User, "users",
	schema.ID(domain.FieldID),
	schema.Char(domain.FieldUsername, domain.MaxUsernameLength).AsUnique(),
	schema.Char(domain.FieldEmail, domain.MaxEmailLength).AsUnique(),
	schema.Char(domain.FieldPassword, domain.MaxPasswordLength),
	schema.Bool(domain.FieldIsVerified).WithDefault(strconv.FormatBool(domain.DefaultIsVerified)),
	schema.Timestamp(domain.FieldJoinDate).AsReadOnly().WithDefault(defaultNow),
)

// BusinessEntity is the full catalogue of the businesses table.
var BusinessEntity = schema.MustEntity(Business, "businesses",
	schema.ID(domain.FieldID),
	schema.Char(domain.FieldBusinessName, domain.MaxBusinessNameLength).AsUnique(),
	schema.Char(domain.FieldCity, domain.MaxLocationLength).WithDefault(domain.DefaultLocation),
	schema.Char(domain.FieldRegion, domain.MaxLocationLength).WithDefault(domain.DefaultLocation),
	schema.Text(domain.FieldBusinessDescription).AsNullable(),
	schema.Char(domain.FieldLogo, domain.MaxLogoLength).WithDefault(domain.DefaultLogo),
	schema.ForeignKey(domain.FieldOwnerID, User),
)

// ProductEntity is the full catalogue of the products table.
var ProductEntity = schema.MustEntity(Product, "products",
	schema.ID(domain.FieldID),
	schema.Char(domain.FieldName, domain.MaxProductNameLength).AsIndexed(),
	schema.Enum(domain.FieldMainCategory, domain.MaxCategoryLength, domain.MainCategoryStrings()...).AsNullable(),
	schema.Enum(domain.FieldCategory, domain.MaxCategoryLength, domain.CategoryStrings()...).AsIndexed(),
	schema.Decimal(domain.FieldOriginalPrice, domain.PriceDigits, domain.PricePlaces),
	schema.Decimal(domain.FieldNewPrice, domain.PriceDigits, domain.PricePlaces),
	schema.Int(domain.FieldPercentageDiscount).AsReadOnly(),
	schema.Date(domain.FieldOfferExpirationDate).WithDefault(defaultToday),
	schema.Char(domain.FieldProductImage, domain.MaxProductImageLength).WithDefault(domain.DefaultProductImage),
	schema.Timestamp(domain.FieldDatePublished).AsReadOnly().WithDefault(defaultNow),
	schema.ForeignKey(domain.FieldBusinessID, Business),
)

// Variant names.
const (
	UserVariant       = "User"
	UserInVariant     = "UserIn"
	UserOutVariant    = "UserOut"
	BusinessVariant   = "Business"
	BusinessInVariant = "BusinessIn"
	ProductVariant    = "Product"
	ProductInVariant  = "ProductIn"
)

var (
	// UserSchema is the internal user shape; the verification flag is omitted.
	UserSchema = schema.MustDerive(UserEntity, UserVariant,
		schema.Exclude(domain.FieldIsVerified))

	// UserInSchema validates registration payloads.
	UserInSchema = schema.MustDeriveInput(UserEntity, UserInVariant,
		schema.Exclude(domain.FieldIsVerified, domain.FieldJoinDate))

	// UserOutSchema shapes user responses. It never carries the password.
	UserOutSchema = schema.MustDerive(UserEntity, UserOutVariant,
		schema.Exclude(domain.FieldPassword))

	BusinessSchema   = schema.MustDerive(BusinessEntity, BusinessVariant)
	BusinessInSchema = schema.MustDeriveInput(BusinessEntity, BusinessInVariant)

	ProductSchema = schema.MustDerive(ProductEntity, ProductVariant)

	// ProductInSchema validates product payloads. The main category is filled
	// from the category grouping and the discount is computed, so neither is accepted.
	ProductInSchema = schema.MustDeriveInput(ProductEntity, ProductInVariant,
		schema.Exclude(domain.FieldMainCategory, domain.FieldPercentageDiscount, domain.FieldID))
)

var variants = map[string]*schema.Schema{
	UserVariant:       UserSchema,
	UserInVariant:     UserInSchema,
	UserOutVariant:    UserOutSchema,
	BusinessVariant:   BusinessSchema,
	BusinessInVariant: BusinessInSchema,
	ProductVariant:    ProductSchema,
	ProductInVariant:  ProductInSchema,
}

// Entities returns the three catalogues in dependency order.
func Entities() []*schema.Entity {
	return []*schema.Entity{UserEntity, BusinessEntity, ProductEntity}
}

// Variants returns every named variant, sorted by name.
func Variants() []*schema.Schema {
	names := VariantNames()
	out := make([]*schema.Schema, len(names))
	for i, name := range names {
		out[i] = variants[name]
	}
	return out
}

// VariantNames returns the variant names, sorted.
func VariantNames() []string {
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ErrUnknownVariant is returned by Variant for names that are not declared.
var ErrUnknownVariant = errors.New("unknown schema variant")

// Variant looks up a variant by name.
func Variant(name string) (*schema.Schema, error) {
	s, ok := variants[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return s, nil
}
