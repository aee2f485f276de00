package dashboard

import (
	"context"

	"github.com/jrsteele09/starose-admin/notify"
	"github.com/jrsteele09/starose-admin/retail"
)

func (s *Service) ListExpenses(ctx context.Context, page int) (retail.ExpensePage, error) {
	if err := s.guard(); err != nil {
		return retail.ExpensePage{}, err
	}
	out, err := s.api.ListExpenses(ctx, page)
	if err != nil {
		return retail.ExpensePage{}, s.fail("list_expenses", err, "Failed to fetch expenses.")
	}
	return out, nil
}

// AddExpense records an expense. An empty date means today and an empty category "other".
func (s *Service) AddExpense(ctx context.Context, in retail.ExpenseInput) (retail.Expense, error) {
	if in.Date == "" {
		in.Date = s.nowTime().Format(retail.DateLayout)
	}
	if in.Category == "" {
		in.Category = retail.ExpenseOther
	}
	if err := in.Validate(); err != nil {
		return retail.Expense{}, s.invalid(err)
	}
	if err := s.guard(); err != nil {
		return retail.Expense{}, err
	}

	expense, err := s.api.AddExpense(ctx, in)
	if err != nil {
		return retail.Expense{}, s.fail("add_expense", err, "Failed to add expense.")
	}
	notify.Success(s.notifier, "Expense added successfully!")
	return expense, nil
}
