package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// FoodType marks a menu item as vegetarian or not.
type FoodType string

const (
	FoodTypeVeg    FoodType = "veg"
	FoodTypeNonVeg FoodType = "non-veg"
)

// MenuItem is a catalog entry. The billing engine only reads it.
type MenuItem struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
	Slab      decimal.Decimal `json:"gst_slab"`
	HSNCode   string          `json:"hsn_code"`
	FoodType  FoodType        `json:"food_type"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CartLine snapshots the item at the given quantity.
func (m MenuItem) CartLine(quantity int) CartLine {
	return CartLine{
		MenuItemID: m.ID,
		Name:       m.Name,
		Rate:       m.Price,
		Slab:       m.Slab,
		HSNCode:    m.HSNCode,
		Quantity:   quantity,
	}
}

// MenuItemParams carries the writable fields of a menu item.
type MenuItemParams struct {
	Name     string
	Price    decimal.Decimal
	Category string
	Slab     decimal.Decimal
	HSNCode  string
	FoodType FoodType
}

type MenuRepository interface {
	List(ctx context.Context) ([]MenuItem, error)
	Get(ctx context.Context, id int64) (*MenuItem, error)
	// GetMany returns the items that exist; missing ids are simply absent.
	GetMany(ctx context.Context, ids []int64) ([]MenuItem, error)
	Create(ctx context.Context, params MenuItemParams) (*MenuItem, error)
	Update(ctx context.Context, id int64, params MenuItemParams) (*MenuItem, error)
	Delete(ctx context.Context, id int64) error
}
