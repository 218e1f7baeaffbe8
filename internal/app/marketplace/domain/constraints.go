package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Column widths.
const (
	MaxUsernameLength     = 20
	MaxEmailLength        = 200
	MaxPasswordLength     = 100
	MaxBusinessNameLength = 20
	MaxLocationLength     = 100
	MaxLogoLength         = 200
	MaxProductNameLength  = 100
	MaxProductImageLength = 200
)

// Defaults applied on write.
const (
	DefaultLocation     = "Unspecified"
	DefaultLogo         = "default.jpg"
	DefaultProductImage = "productDefault.jpg"
	DefaultIsVerified   = true
)

// Field names for change tracking and error reporting
const (
	FieldID = "id"

	FieldUsername   = "username"
	FieldEmail      = "email"
	FieldPassword   = "password"
	FieldIsVerified = "is_verified"
	FieldJoinDate   = "join_date"

	FieldBusinessName        = "business_name"
	FieldCity                = "city"
	FieldRegion              = "region"
	FieldBusinessDescription = "business_description"
	FieldLogo                = "logo"
	FieldOwnerID             = "owner_id"

	FieldName                = "name"
	FieldMainCategory        = "main_category"
	FieldCategory            = "category"
	FieldOriginalPrice       = "original_price"
	FieldNewPrice            = "new_price"
	FieldPercentageDiscount  = "percentage_discount"
	FieldOfferExpirationDate = "offer_expiration_date"
	FieldProductImage        = "product_image"
	FieldDatePublished       = "date_published"
	FieldBusinessID          = "business_id"
)

// checkRequired rejects blank values of required string fields.
func checkRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return NewFieldError(field, ErrConstraintViolation, "required")
	}
	return nil
}

// checkLength rejects values longer than max characters.
func checkLength(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return NewFieldError(field, ErrConstraintViolation, fmt.Sprintf("longer than %d characters", max))
	}
	return nil
}

// checkRequiredString applies both the required and the length rule.
func checkRequiredString(field, value string, max int) error {
	if err := checkRequired(field, value); err != nil {
		return err
	}
	return checkLength(field, value, max)
}

// orDefault returns value, or def when value is blank.
func orDefault(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}

// checkReference rejects identifiers that can never name a stored row.
func checkReference(field string, id int64) error {
	if id <= 0 {
		return NewFieldError(field, ErrReferenceNotFound, fmt.Sprintf("id %d", id))
	}
	return nil
}
