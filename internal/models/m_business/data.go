package m_business

import (
	"cloud.google.com/go/spanner"
)

// Data represents the database model for the businesses table.
type Data struct {
	ID          int64              `spanner:"id"`
	Name        string             `spanner:"business_name"`
	City        string             `spanner:"city"`
	Region      string             `spanner:"region"`
	Description spanner.NullString `spanner:"business_description"`
	Logo        string             `spanner:"logo"`
	OwnerID     int64              `spanner:"owner_id"`
}
