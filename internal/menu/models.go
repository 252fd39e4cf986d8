package menu

import (
	"time"

	"github.com/shopspring/decimal"
)

type MenuType string

const (
	TypeFood     MenuType = "FOOD"
	TypeWine     MenuType = "WINE"
	TypeCocktail MenuType = "COCKTAIL"
)

type Category struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	DisplayOrder int       `json:"display_order"`
	Type         MenuType  `json:"type"`
	CreatedAt    time.Time `json:"created_at"`
}

type Item struct {
	ID              string          `json:"id"`
	CategoryID      string          `json:"category_id"`
	CategoryName    string          `json:"category_name,omitempty"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	Image           string          `json:"image"`
	Available       bool            `json:"available"`
	Featured        bool            `json:"featured"`
	IsSpicy         bool            `json:"is_spicy"`
	IsVegetarian    bool            `json:"is_vegetarian"`
	IsVegan         bool            `json:"is_vegan"`
	GlutenFree      bool            `json:"gluten_free"`
	PreparationTime *int            `json:"preparation_time,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}
