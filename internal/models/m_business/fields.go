package m_business

// Field name constants for the businesses table.
const (
	TableName = "businesses"

	Sequence = "businesses_id_seq"

	NameIndex  = "businesses_by_name"
	OwnerIndex = "businesses_by_owner"

	ID          = "id"
	Name        = "business_name"
	City        = "city"
	Region      = "region"
	Description = "business_description"
	Logo        = "logo"
	OwnerID     = "owner_id"
)

// Columns lists every column in table order.
var Columns = []string{ID, Name, City, Region, Description, Logo, OwnerID}
