package m_product

// Field name constants for the products table.
// These provide type-safe field references and prevent typos.
const (
	TableName = "products"

	Sequence = "products_id_seq"

	NameIndex     = "products_by_name"
	CategoryIndex = "products_by_category"
	BusinessIndex = "products_by_business"

	ID                  = "id"
	Name                = "name"
	MainCategory        = "main_category"
	Category            = "category"
	OriginalPrice       = "original_price"
	NewPrice            = "new_price"
	PercentageDiscount  = "percentage_discount"
	OfferExpirationDate = "offer_expiration_date"
	ProductImage        = "product_image"
	DatePublished       = "date_published"
	BusinessID          = "business_id"
)

// Columns lists every column in table order.
var Columns = []string{
	ID,
	Name,
	MainCategory,
	Category,
	OriginalPrice,
	NewPrice,
	PercentageDiscount,
	OfferExpirationDate,
	ProductImage,
	DatePublished,
	BusinessID,
}
