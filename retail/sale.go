package retail

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/starose-admin/internal/errors"
)

type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "Cash"
	PaymentMpesa PaymentMethod = "Mpesa"
)

// ParsePaymentMethod accepts the method name case-insensitively.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash":
		return PaymentCash, nil
	case "mpesa":
		return PaymentMpesa, nil
	}
	return "", fmt.Errorf("%w: payment method must be Cash or Mpesa", apperrors.ErrInvalidRequest)
}

// ItemRef is a sale's item, which the API sends either as an id or as the populated item.
type ItemRef struct {
	ID   string
	Name string
}

func (r *ItemRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	var populated struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &populated); err != nil {
		return err
	}
	r.ID, r.Name = populated.ID, populated.Name
	return nil
}

func (r ItemRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

type Sale struct {
	ID                 string        `json:"_id"`
	Item               ItemRef       `json:"itemId"`
	ItemName           string        `json:"itemName"`
	QuantitySold       int           `json:"quantitySold"`
	ActualSellingPrice float64       `json:"actualSellingPrice"`
	TotalSale          float64       `json:"totalSale"`
	Profit             float64       `json:"profit"`
	Date               time.Time     `json:"date"`
	PaymentMethod      PaymentMethod `json:"paymentMethod"`
	Attendant          string        `json:"attendant"`
	Notes              string        `json:"notes,omitempty"`
	CreatedAt          time.Time     `json:"createdAt"`
}

// SaleInput is the body of a record-sale request.
type SaleInput struct {
	ItemID             string        `json:"itemId"`
	QuantitySold       int           `json:"quantitySold"`
	ActualSellingPrice float64       `json:"actualSellingPrice"`
	PaymentMethod      PaymentMethod `json:"paymentMethod"`
	Attendant          string        `json:"attendant"`
	Notes              string        `json:"notes,omitempty"`
}

func (in SaleInput) Validate() error {
	switch {
	case in.ItemID == "":
		return fmt.Errorf("%w: item is required", apperrors.ErrInvalidRequest)
	case in.QuantitySold < 1:
		return fmt.Errorf("%w: at least one unit must be sold", apperrors.ErrInvalidQuantity)
	case in.ActualSellingPrice < 0:
		return fmt.Errorf("%w: selling price must not be negative", apperrors.ErrInvalidRequest)
	case in.PaymentMethod != PaymentCash && in.PaymentMethod != PaymentMpesa:
		return fmt.Errorf("%w: payment method must be Cash or Mpesa", apperrors.ErrInvalidRequest)
	case strings.TrimSpace(in.Attendant) == "":
		return fmt.Errorf("%w: attendant is required", apperrors.ErrInvalidRequest)
	}
	return nil
}

type SalePage struct {
	Sales []Sale `json:"sales"`
	Page  int    `json:"page"`
	Pages int    `json:"pages"`
}

// SalePreview is what the operator sees before submitting a sale.
type SalePreview struct {
	TotalSale float64 `json:"totalSale"`
	Profit    float64 `json:"profit"`
}

// PreviewSale computes the sale total and the estimated profit against the buying price.
func PreviewSale(item Item, quantity int, sellingPrice float64) SalePreview {
	return SalePreview{
		TotalSale: sellingPrice * float64(quantity),
		Profit:    (sellingPrice - item.BuyingPrice) * float64(quantity),
	}
}
