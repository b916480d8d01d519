package model

// Catalog categories. CategoryAll is a filter, never stored on a product.
const (
	CategoryAll     = "All"
	CategoryFood    = "Food"
	CategoryShoes   = "Shoes"
	CategoryClothes = "Clothes"
	CategoryBags    = "Bags"
	CategoryOther   = "Other"
)

// Categories lists the categories shown in the store, in display order.
var Categories = []string{CategoryFood, CategoryShoes, CategoryClothes, CategoryBags, CategoryOther}

// NormalizeCategory maps unknown categories to CategoryOther.
func NormalizeCategory(c string) string {
	for _, known := range Categories {
		if c == known {
			return c
		}
	}
	return CategoryOther
}

// Product is a catalog entry owned by a vendor. Price is in kobo.
type Product struct {
	ID          string `json:"id"`
	VendorID    string `json:"vendorId"`
	DisplayName string `json:"displayName"`
	Category    string `json:"category"`
	Price       Amount `json:"price"`
	Description string `json:"description"`
	ImageRef    string `json:"imageRef"`
}
