package domain

// BusinessParams carries the user-supplied fields of a new business.
// Blank City, Region and Logo take their defaults.
type BusinessParams struct {
	Name        string
	City        string
	Region      string
	Description *string
	Logo        string
	OwnerID     int64
}

// Business is a storefront owned by exactly one user.
type Business struct {
	id          int64
	name        string
	city        string
	region      string
	description *string
	logo        string
	ownerID     int64

	changes *ChangeTracker
}

// NewBusiness creates a new Business. The owner must still be checked against
// storage; only the identifier shape is validated here.
func NewBusiness(id int64, p BusinessParams) (*Business, error) {
	b := &Business{
		id:          id,
		name:        p.Name,
		city:        orDefault(p.City, DefaultLocation),
		region:      orDefault(p.Region, DefaultLocation),
		description: copyString(p.Description),
		logo:        orDefault(p.Logo, DefaultLogo),
		ownerID:     p.OwnerID,
		changes:     NewChangeTracker(),
	}

	if err := b.validate(); err != nil {
		return nil, err
	}

	b.changes.MarkDirty(FieldBusinessName, FieldCity, FieldRegion, FieldBusinessDescription, FieldLogo, FieldOwnerID)

	return b, nil
}

// ReconstructBusiness reconstitutes a Business from storage.
func ReconstructBusiness(id int64, name, city, region string, description *string, logo string, ownerID int64) *Business {
	return &Business{
		id:          id,
		name:        name,
		city:        city,
		region:      region,
		description: description,
		logo:        logo,
		ownerID:     ownerID,
		changes:     NewChangeTracker(),
	}
}

func (b *Business) validate() error {
	if err := checkRequiredString(FieldBusinessName, b.name, MaxBusinessNameLength); err != nil {
		return err
	}
	if err := checkLength(FieldCity, b.city, MaxLocationLength); err != nil {
		return err
	}
	if err := checkLength(FieldRegion, b.region, MaxLocationLength); err != nil {
		return err
	}
	if err := checkLength(FieldLogo, b.logo, MaxLogoLength); err != nil {
		return err
	}
	return checkReference(FieldOwnerID, b.ownerID)
}

// Getters
func (b *Business) ID() int64               { return b.id }
func (b *Business) Name() string            { return b.name }
func (b *Business) City() string            { return b.city }
func (b *Business) Region() string          { return b.region }
func (b *Business) Description() *string    { return copyString(b.description) }
func (b *Business) Logo() string            { return b.logo }
func (b *Business) OwnerID() int64          { return b.ownerID }
func (b *Business) Changes() *ChangeTracker { return b.changes }

// SetName renames the business.
func (b *Business) SetName(name string) error {
	if err := checkRequiredString(FieldBusinessName, name, MaxBusinessNameLength); err != nil {
		return err
	}
	if name == b.name {
		return nil
	}
	b.name = name
	b.changes.MarkDirty(FieldBusinessName)
	return nil
}

// SetLocation updates city and region; blank values reset to the default.
func (b *Business) SetLocation(city, region string) error {
	city = orDefault(city, DefaultLocation)
	region = orDefault(region, DefaultLocation)
	if err := checkLength(FieldCity, city, MaxLocationLength); err != nil {
		return err
	}
	if err := checkLength(FieldRegion, region, MaxLocationLength); err != nil {
		return err
	}
	if city != b.city {
		b.city = city
		b.changes.MarkDirty(FieldCity)
	}
	if region != b.region {
		b.region = region
		b.changes.MarkDirty(FieldRegion)
	}
	return nil
}

// SetDescription replaces the description; nil clears it.
func (b *Business) SetDescription(description *string) {
	b.description = copyString(description)
	b.changes.MarkDirty(FieldBusinessDescription)
}

// SetLogo replaces the logo path; blank resets to the default.
func (b *Business) SetLogo(logo string) error {
	logo = orDefault(logo, DefaultLogo)
	if err := checkLength(FieldLogo, logo, MaxLogoLength); err != nil {
		return err
	}
	if logo == b.logo {
		return nil
	}
	b.logo = logo
	b.changes.MarkDirty(FieldLogo)
	return nil
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
