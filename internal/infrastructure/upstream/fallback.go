package upstream

import "github.com/swiftpos/terminal-api/internal/domain/entity"

// FallbackCategories returns the built-in category list used when the
// catalog service is unreachable, so the terminal stays usable degraded.
// The synthetic "All" category is included last, matching the fixture order
// the front-end ships with.
func FallbackCategories() []entity.Category {
	return []entity.Category{
		{ID: "drinks", Name: "Drinks"},
		{ID: "bakery", Name: "Bakery"},
		{ID: "snacks", Name: "Snacks"},
		{ID: "meals", Name: "Meals"},
		entity.AllCategory(),
	}
}

// FallbackProducts returns the built-in product list used when the catalog
// service is unreachable. Prices in cents.
func FallbackProducts() []entity.CatalogItem {
	return []entity.CatalogItem{
		{ID: "1001", Name: "Espresso", Price: 250, CategoryID: "drinks", CategoryName: "Drinks"},
		{ID: "1002", Name: "Cappuccino", Price: 350, CategoryID: "drinks", CategoryName: "Drinks"},
		{ID: "1003", Name: "Latte", Price: 380, CategoryID: "drinks", CategoryName: "Drinks"},
		{ID: "2001", Name: "Blueberry Muffin", Price: 220, CategoryID: "bakery", CategoryName: "Bakery"},
		{ID: "2002", Name: "Croissant", Price: 200, CategoryID: "bakery", CategoryName: "Bakery"},
		{ID: "3001", Name: "Bottled Water", Price: 100, CategoryID: "snacks", CategoryName: "Snacks"},
		{ID: "4001", Name: "Chocolate Bar", Price: 150, CategoryID: "snacks", CategoryName: "Snacks"},
		{ID: "5001", Name: "Sandwich", Price: 450, CategoryID: "meals", CategoryName: "Meals"},
	}
}
