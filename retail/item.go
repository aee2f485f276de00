// Package retail holds the records exchanged with the Starose API.
package retail

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/starose-admin/internal/errors"
	"github.com/jrsteele09/starose-admin/internal/utils"
	"github.com/jrsteele09/starose-admin/stock"
)

// DefaultLowStockThreshold is offered for new items.
const DefaultLowStockThreshold = 5

type Item struct {
	ID                  string    `json:"_id"`
	Name                string    `json:"name"`
	Category            string    `json:"category"`
	BuyingPrice         float64   `json:"buyingPrice"`
	DefaultSellingPrice float64   `json:"defaultSellingPrice"`
	Quantity            int       `json:"quantity"`
	LastRestockDate     string    `json:"lastRestockDate,omitempty"`
	LowStockThreshold   int       `json:"lowStockThreshold"`
	SKU                 *string   `json:"sku,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// Level is the item's stock position against its own threshold.
func (i Item) Level() stock.Level {
	return stock.Level{Quantity: i.Quantity, Threshold: i.LowStockThreshold}
}

func (i Item) IsLow() bool {
	return stock.IsLow(i.Level())
}

// Input returns the editable fields, the starting point of an update.
func (i Item) Input() ItemInput {
	return ItemInput{
		Name:                i.Name,
		Category:            i.Category,
		BuyingPrice:         i.BuyingPrice,
		DefaultSellingPrice: i.DefaultSellingPrice,
		Quantity:            i.Quantity,
		LowStockThreshold:   i.LowStockThreshold,
		SKU:                 utils.Value(i.SKU),
	}
}

// ItemInput is the body of item create and update requests.
type ItemInput struct {
	Name                string  `json:"name"`
	Category            string  `json:"category"`
	BuyingPrice         float64 `json:"buyingPrice"`
	DefaultSellingPrice float64 `json:"defaultSellingPrice"`
	Quantity            int     `json:"quantity"`
	LowStockThreshold   int     `json:"lowStockThreshold"`
	SKU                 string  `json:"sku,omitempty"`
}

func (in ItemInput) Level() stock.Level {
	return stock.Level{Quantity: in.Quantity, Threshold: in.LowStockThreshold}
}

func (in ItemInput) Validate() error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return fmt.Errorf("%w: name is required", apperrors.ErrInvalidRequest)
	case strings.TrimSpace(in.Category) == "":
		return fmt.Errorf("%w: category is required", apperrors.ErrInvalidRequest)
	case in.BuyingPrice < 0 || in.DefaultSellingPrice < 0:
		return fmt.Errorf("%w: prices must not be negative", apperrors.ErrInvalidRequest)
	case in.Quantity < 0 || in.LowStockThreshold < 0:
		return fmt.Errorf("%w: quantity and threshold must not be negative", apperrors.ErrInvalidQuantity)
	}
	return nil
}

type ItemPage struct {
	Items []Item `json:"items"`
	Page  int    `json:"page"`
	Pages int    `json:"pages"`
}

// FindItem returns the item with the given id.
func FindItem(items []Item, id string) (Item, error) {
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return Item{}, fmt.Errorf("%w: %s", apperrors.ErrItemNotFound, id)
}
