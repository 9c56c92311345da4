package models

import "github.com/shopspring/decimal"

// MenuCategory groups menu items
type MenuCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// MenuItem is a dish in the bundled menu catalog
type MenuItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	CategoryID  string          `json:"categoryId"`
	Cuisine     string          `json:"cuisine"`
	Rating      float64         `json:"rating"`
	Dietary     string          `json:"dietary"`
	HasDeals    bool            `json:"hasDeals"`
}

// Product returns the cart-facing view of the item
func (m MenuItem) Product() Product {
	return Product{ID: m.ID, Name: m.Name, Price: m.Price, Image: m.Image}
}
