package entity

import "encoding/json"

// AllCategoryID identifies the synthetic category aggregating every item.
const AllCategoryID = "all"

// Category represents a product category as exposed by the catalog service
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AllCategory returns the synthetic "All" category prepended to every
// category list.
func AllCategory() Category {
	return Category{ID: AllCategoryID, Name: "All"}
}

// CatalogItem represents a sellable product as exposed by the catalog
// service. Immutable once fetched; the whole product list is replaced on
// re-fetch.
type CatalogItem struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Price        int64  `json:"-"` // Stored in cents, excluded from JSON
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i CatalogItem) MarshalJSON() ([]byte, error) {
	type Alias CatalogItem
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(i),
		Price: float64(i.Price) / 100,
	})
}

// CategoryView pairs a category with the catalog items it contains. The
// synthetic "All" category carries every item.
type CategoryView struct {
	Category
	Items []CatalogItem `json:"items"`
}
