package m_product

import (
	"math/big"
	"time"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"
)

// Data represents the database model for the products table.
// Prices are NUMERIC columns, read and written as big.Rat.
type Data struct {
	ID                  int64              `spanner:"id"`
	Name                string             `spanner:"name"`
	MainCategory        spanner.NullString `spanner:"main_category"`
	Category            string             `spanner:"category"`
	OriginalPrice       big.Rat            `spanner:"original_price"`
	NewPrice            big.Rat            `spanner:"new_price"`
	PercentageDiscount  int64              `spanner:"percentage_discount"`
	OfferExpirationDate civil.Date         `spanner:"offer_expiration_date"`
	ProductImage        string             `spanner:"product_image"`
	DatePublished       time.Time          `spanner:"date_published"`
	BusinessID          int64              `spanner:"business_id"`
}
