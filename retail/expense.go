package retail

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/starose-admin/internal/errors"
)

type ExpenseCategory string

const (
	ExpenseRent      ExpenseCategory = "rent"
	ExpenseUtilities ExpenseCategory = "utilities"
	ExpenseWages     ExpenseCategory = "wages"
	ExpenseSupplies  ExpenseCategory = "supplies"
	ExpenseOther     ExpenseCategory = "other"
)

var expenseCategories = map[ExpenseCategory]struct{}{
	ExpenseRent:      {},
	ExpenseUtilities: {},
	ExpenseWages:     {},
	ExpenseSupplies:  {},
	ExpenseOther:     {},
}

func (c ExpenseCategory) Valid() bool {
	_, ok := expenseCategories[c]
	return ok
}

type Expense struct {
	ID          string          `json:"_id"`
	Amount      float64         `json:"amount"`
	Category    ExpenseCategory `json:"category"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Recurring   bool            `json:"recurring"`
	Attendant   string          `json:"attendant,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ExpenseInput is the body of an add-expense request. Date is yyyy-mm-dd.
type ExpenseInput struct {
	Amount      float64         `json:"amount"`
	Category    ExpenseCategory `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

func (in ExpenseInput) Validate() error {
	switch {
	case in.Amount <= 0:
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrInvalidRequest)
	case !in.Category.Valid():
		return fmt.Errorf("%w: unknown expense category %q", apperrors.ErrInvalidRequest, in.Category)
	case strings.TrimSpace(in.Description) == "":
		return fmt.Errorf("%w: description is required", apperrors.ErrInvalidRequest)
	}
	if _, err := time.Parse(DateLayout, in.Date); err != nil {
		return fmt.Errorf("%w: date must be yyyy-mm-dd", apperrors.ErrInvalidRequest)
	}
	return nil
}

type ExpensePage struct {
	Expenses []Expense `json:"expenses"`
	Page     int       `json:"page"`
	Pages    int       `json:"pages"`
}
