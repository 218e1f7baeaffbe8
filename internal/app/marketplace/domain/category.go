package domain

import "fmt"

// MaxCategoryLength is the column width of both category fields.
const MaxCategoryLength = 30

// MainCategory is one of the fixed top-level product groupings.
type MainCategory string

const (
	MainClothes             MainCategory = "Clothes"
	MainElectronics         MainCategory = "Electronics"
	MainHouseholdAppliances MainCategory = "Household Appliances"
	MainAccommodation       MainCategory = "Accommodation"
	MainCarsAndSupplies     MainCategory = "Cars and supplies"
	MainFurniture           MainCategory = "Furniture"
	MainOther               MainCategory = "Other"
)

// Category is one of the fixed product sub-categories.
type Category string

const (
	CategoryWomensClothing    Category = "Women’s Clothing"
	CategoryMensClothing      Category = "Men’s Clothing"
	CategoryChildrensClothing Category = "Children’s Clothing"

	CategoryPhonesAndTablets Category = "Phones and tablets"
	CategoryCameras          Category = "Photo and video cameras"
	CategoryComputers        Category = "computers"
	CategoryTVAudio          Category = "TV, audio systems"

	CategoryRefrigerators     Category = "Refrigerators"
	CategoryStovesAndOvens    Category = "Stoves and ovens"
	CategoryWashingMachines   Category = "Washing machines"
	CategoryClimaticEquipment Category = "Climatic equipment"
	CategoryOtherAppliances   Category = "Other appliances"

	CategoryApartmentForSale Category = "Apartment for sale"
	CategoryHousesForSale    Category = "Houses for sale"
	CategoryApartmentRent    Category = "Apartment rent"
	CategoryHousesRent       Category = "Houses rent"

	CategoryCars                Category = "Cars"
	CategoryMotorcycles         Category = "Motorcycles"
	CategoryBusesAndTrucks      Category = "Buses and Trucks"
	CategorySpecialMachinery    Category = "Special machinery"
	CategoryTrailers            Category = "Trailers"
	CategorySparePartsAndWheels Category = "Spare parts and wheels"
	CategoryAccessories         Category = "Accessories and equipment"
	CategoryCarCareProducts     Category = "Car care products"

	CategoryBedsAndMattresses Category = "Beds and mattresses"
	CategoryTablesAndChairs   Category = "Tables and Chairs"
	CategorySofasAndArmchairs Category = "Sofas and armchairs"
	CategoryKitchenSets       Category = "Kitchen sets"
	CategoryStoring           Category = "Storing"

	CategoryServices            Category = "Services"
	CategorySportsAndRecreation Category = "Sports and recreation"
	CategoryBooksAndHobbies     Category = "Books and hobbies"
	CategoryPets                Category = "Pets"
	CategoryJob                 Category = "Job"
	CategoryOtherUngrouped      Category = "Other ungrouped"
)

// categoryTree lists every main category with its sub-categories, in catalogue order.
var categoryTree = []struct {
	main MainCategory
	subs []Category
}{
	{MainClothes, []Category{CategoryWomensClothing, CategoryMensClothing, CategoryChildrensClothing}},
	{MainElectronics, []Category{CategoryPhonesAndTablets, CategoryCameras, CategoryComputers, CategoryTVAudio}},
	{MainHouseholdAppliances, []Category{
		CategoryRefrigerators, CategoryStovesAndOvens, CategoryWashingMachines,
		CategoryClimaticEquipment, CategoryOtherAppliances,
	}},
	{MainAccommodation, []Category{
		CategoryApartmentForSale, CategoryHousesForSale, CategoryApartmentRent, CategoryHousesRent,
	}},
	{MainCarsAndSupplies, []Category{
		CategoryCars, CategoryMotorcycles, CategoryBusesAndTrucks, CategorySpecialMachinery,
		CategoryTrailers, CategorySparePartsAndWheels, CategoryAccessories, CategoryCarCareProducts,
	}},
	{MainFurniture, []Category{
		CategoryBedsAndMattresses, CategoryTablesAndChairs, CategorySofasAndArmchairs,
		CategoryKitchenSets, CategoryStoring,
	}},
	{MainOther, []Category{
		CategoryServices, CategorySportsAndRecreation, CategoryBooksAndHobbies,
		CategoryPets, CategoryJob, CategoryOtherUngrouped,
	}},
}

var (
	mainCategories []MainCategory
	categories     []Category
	parentOf       = make(map[Category]MainCategory)
)

func init() {
	for _, node := range categoryTree {
		mainCategories = append(mainCategories, node.main)
		for _, sub := range node.subs {
			categories = append(categories, sub)
			parentOf[sub] = node.main
		}
	}
}

// MainCategories returns every main category in catalogue order.
func MainCategories() []MainCategory {
	return append([]MainCategory(nil), mainCategories...)
}

// Categories returns every sub-category in catalogue order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// Valid reports whether m is one of the fixed main categories.
func (m MainCategory) Valid() bool {
	for _, candidate := range mainCategories {
		if candidate == m {
			return true
		}
	}
	return false
}

// Valid reports whether c is one of the fixed sub-categories.
func (c Category) Valid() bool {
	_, ok := parentOf[c]
	return ok
}

// Main returns the main category c is grouped under.
func (c Category) Main() (MainCategory, bool) {
	m, ok := parentOf[c]
	return m, ok
}

// ParseMainCategory converts s into a MainCategory.
func ParseMainCategory(s string) (MainCategory, error) {
	m := MainCategory(s)
	if !m.Valid() {
		return "", NewFieldError("main_category", ErrEnumMismatch, fmt.Sprintf("%q", s))
	}
	return m, nil
}

// ParseCategory converts s into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", NewFieldError("category", ErrEnumMismatch, fmt.Sprintf("%q", s))
	}
	return c, nil
}

// MarshalText implements encoding.TextMarshaler.
func (m MainCategory) MarshalText() ([]byte, error) {
	return []byte(m), nil
}

// UnmarshalText implements encoding.TextUnmarshaler and rejects unknown values.
func (m *MainCategory) UnmarshalText(text []byte) error {
	parsed, err := ParseMainCategory(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler and rejects unknown values.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MainCategoryStrings returns the main categories as plain strings.
func MainCategoryStrings() []string {
	out := make([]string, len(mainCategories))
	for i, m := range mainCategories {
		out[i] = string(m)
	}
	return out
}

// CategoryStrings returns the sub-categories as plain strings.
func CategoryStrings() []string {
	out := make([]string, len(categories))
	for i, c := range categories {
		out[i] = string(c)
	}
	return out
}
