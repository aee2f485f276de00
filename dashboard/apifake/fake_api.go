package apifake

import (
	"context"
	"fmt"
	"sync"

	"github.com/jrsteele09/starose-admin/dashboard"
	apperrors "github.com/jrsteele09/starose-admin/internal/errors"
	"github.com/jrsteele09/starose-admin/internal/utils"
	"github.com/jrsteele09/starose-admin/retail"
	"github.com/jrsteele09/starose-admin/session"
)

var _ dashboard.API = (*FakeAPI)(nil)

// FakeAPI is an in-memory Starose API. Err, when set, fails every call and SaleErr fails
// only RecordSale. Calls counts the calls that reached it.
type FakeAPI struct {
	lock     sync.RWMutex
	items    map[string]retail.Item
	order    []string
	sales    []retail.Sale
	expenses []retail.Expense
	nextID   int

	Login   session.Session
	Report  retail.SummaryReport
	Err     error
	SaleErr error
	Calls   int
}

func NewFakeAPI(items ...retail.Item) *FakeAPI {
	f := &FakeAPI{items: make(map[string]retail.Item)}
	for _, item := range items {
		f.items[item.ID] = item
		f.order = append(f.order, item.ID)
	}
	return f
}

func (f *FakeAPI) begin() error {
	f.Calls++
	return f.Err
}

func (f *FakeAPI) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *FakeAPI) Authenticate(_ context.Context, email, _ string) (session.Session, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if err := f.begin(); err != nil {
		return session.Session{}, err
	}
	s := f.Login
	s.Email = email
	return s, nil
}

func (f *FakeAPI) ListItems(_ context.Context, page int, _ string) (retail.ItemPage, error) {
	items, err := f.AllItems(context.Background())
	if err != nil {
		return retail.ItemPage{}, err
	}
	return retail.ItemPage{Items: items, Page: page, Pages: 1}, nil
}

func (f *FakeAPI) AllItems(_ context.Context) ([]retail.Item, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	items := make([]retail.Item, 0, len(f.order))
	for _, id := range f.order {
		items = append(items, f.items[id])
	}
	return items, nil
}

func (f *FakeAPI) CreateItem(_ context.Context, in retail.ItemInput) (retail.Item, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if err := f.begin(); err != nil {
		return retail.Item{}, err
	}
	item := apply(retail.Item{ID: f.id("item")}, in)
	f.items[item.ID] = item
	f.order = append(f.order, item.ID)
	return item, nil
}

func (f *FakeAPI) UpdateItem(_ context.Context, id string, in retail.ItemInput) (retail.Item, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if err := f.begin(); err != nil {
		return retail.Item{}, err
	}
	item, ok := f.items[id]
	if !ok {
		return retail.Item{}, apperrors.ErrItemNotFound
	}
	item = apply(item, in)
	f.items[id] = item
	return item, nil
}

func (f *FakeAPI) DeleteItem(_ context.Context, id string) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	if err := f.begin(); err != nil {
		return err
	}
	if _, ok := f.items[id]; !ok {
		return apperrors.ErrItemNotFound
	}
	delete(f.items, id)
	for i, existing := range f.order {
		if existing == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *FakeAPI) ListSales(_ context.Context, page int, _ string) (retail.SalePage, error) {
	f.lock.RLock()
	defer f.lock.RUnlock()
	if f.Err != nil {
		return retail.SalePage{}, f.Err
	}
	return retail.SalePage{Sales: append([]retail.Sale(nil), f.sales...), Page: page, Pages: 1}, nil
}

// RecordSale decrements the item's quantity the way the server does.
func (f *FakeAPI) RecordSale(_ context.Context, in retail.SaleInput) (retail.Sale, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if err := f.begin(); err != nil {
		return retail.Sale{}, err
	}
	if f.SaleErr != nil {
		return retail.Sale{}, f.SaleErr
	}
	item, ok := f.items[in.ItemID]
	if !ok {
		return retail.Sale{}, apperrors.ErrItemNotFound
	}
	item.Quantity -= in.QuantitySold
	f.items[item.ID] = item

	preview := retail.PreviewSale(item, in.QuantitySold, in.ActualSellingPrice)
	sale := retail.Sale{
		ID:                 f.id("sale"),
		Item:               retail.ItemRef{ID: item.ID, Name: item.Name},
		ItemName:           item.Name,
		QuantitySold:       in.QuantitySold,
		ActualSellingPrice: in.ActualSellingPrice,
		TotalSale:          preview.TotalSale,
		Profit:             preview.Profit,
		PaymentMethod:      in.PaymentMethod,
		Attendant:          in.Attendant,
		Notes:              in.Notes,
	}
	f.sales = append(f.sales, sale)
	return sale, nil
}

func (f *FakeAPI) ListExpenses(_ context.Context, page int) (retail.ExpensePage, error) {
	f.lock.RLock()
	defer f.lock.RUnlock()
	if f.Err != nil {
		return retail.ExpensePage{}, f.Err
	}
	return retail.ExpensePage{Expenses: append([]retail.Expense(nil), f.expenses...), Page: page, Pages: 1}, nil
}

func (f *FakeAPI) AddExpense(_ context.Context, in retail.ExpenseInput) (retail.Expense, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if err := f.begin(); err != nil {
		return retail.Expense{}, err
	}
	expense := retail.Expense{
		ID:          f.id("expense"),
		Amount:      in.Amount,
		Category:    in.Category,
		Description: in.Description,
	}
	f.expenses = append(f.expenses, expense)
	return expense, nil
}

func (f *FakeAPI) Summary(_ context.Context, _ retail.ReportRange) (retail.SummaryReport, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if err := f.begin(); err != nil {
		return retail.SummaryReport{}, err
	}
	return f.Report, nil
}

func (f *FakeAPI) Export(_ context.Context, _ retail.ReportRange, format retail.ExportFormat) (string, []byte, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if err := f.begin(); err != nil {
		return "", nil, err
	}
	return "application/" + string(format), []byte("report"), nil
}

// Item returns the stored item, bypassing Err.
func (f *FakeAPI) Item(id string) (retail.Item, bool) {
	f.lock.RLock()
	defer f.lock.RUnlock()
	item, ok := f.items[id]
	return item, ok
}

func apply(item retail.Item, in retail.ItemInput) retail.Item {
	item.Name = in.Name
	item.Category = in.Category
	item.BuyingPrice = in.BuyingPrice
	item.DefaultSellingPrice = in.DefaultSellingPrice
	item.Quantity = in.Quantity
	item.LowStockThreshold = in.LowStockThreshold
	if in.SKU != "" {
		item.SKU = utils.Ptr(in.SKU)
	}
	return item
}
