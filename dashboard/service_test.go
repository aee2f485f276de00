package dashboard_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jrsteele09/starose-admin/api"
	"github.com/jrsteele09/starose-admin/dashboard"
	"github.com/jrsteele09/starose-admin/dashboard/apifake"
	apperrors "github.com/jrsteele09/starose-admin/internal/errors"
	"github.com/jrsteele09/starose-admin/metrics"
	"github.com/jrsteele09/starose-admin/notify"
	"github.com/jrsteele09/starose-admin/retail"
	"github.com/jrsteele09/starose-admin/session"
	"github.com/jrsteele09/starose-admin/session/sessiontest"
	fakestorage "github.com/jrsteele09/starose-admin/session/storagefake"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 18, 9, 30, 0, 0, time.UTC)

type fixture struct {
	service *dashboard.Service
	store   *session.Store
	storage *fakestorage.FakeStorage
	api     *apifake.FakeAPI
	notes   *notify.Collector
	metrics *metrics.Metrics
}

func newFixture(t *testing.T, loggedIn bool, items ...retail.Item) *fixture {
	t.Helper()
	f := &fixture{
		storage: fakestorage.NewFakeStorage(),
		api:     apifake.NewFakeAPI(items...),
		notes:   &notify.Collector{},
		metrics: metrics.New(),
	}
	var err error
	f.store, err = session.NewStore(f.storage, session.WithNowTime(func() time.Time { return testNow }))
	require.NoError(t, err)
	if loggedIn {
		require.NoError(t, f.store.Login(sessiontest.Session(t, testNow.Add(time.Hour))))
	}
	f.service, err = dashboard.New(f.store, f.api, f.notes,
		dashboard.WithMetrics(f.metrics),
		dashboard.WithNowTime(func() time.Time { return testNow }),
	)
	require.NoError(t, err)
	return f
}

func (f *fixture) messages(level notify.Level) []string {
	var out []string
	for _, n := range f.notes.Notifications() {
		if n.Level == level {
			out = append(out, n.Message)
		}
	}
	return out
}

func (f *fixture) count(t *testing.T, name string) int {
	t.Helper()
	n, err := testutil.GatherAndCount(f.metrics.Registry(), name)
	require.NoError(t, err)
	return n
}

func widget(quantity, threshold int) retail.Item {
	return retail.Item{
		ID:                  "item-w",
		Name:                "Widget",
		Category:            "hardware",
		BuyingPrice:         60,
		DefaultSellingPrice: 100,
		Quantity:            quantity,
		LowStockThreshold:   threshold,
	}
}

func TestNew_RequiresDependencies(t *testing.T) {
	store, err := session.NewStore(fakestorage.NewFakeStorage())
	require.NoError(t, err)
	fake := apifake.NewFakeAPI()
	notes := &notify.Collector{}

	_, err = dashboard.New(nil, fake, notes)
	require.ErrorIs(t, err, apperrors.ErrMissingDependency)
	_, err = dashboard.New(store, nil, notes)
	require.ErrorIs(t, err, apperrors.ErrMissingDependency)
	_, err = dashboard.New(store, fake, nil)
	require.ErrorIs(t, err, apperrors.ErrMissingDependency)
}

func TestService_GuardBlocksAnonymousCalls(t *testing.T) {
	f := newFixture(t, false, widget(10, 5))

	_, err := f.service.ListItems(context.Background(), 1, "")
	require.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
	assert.Zero(t, f.api.Calls)
	assert.Equal(t, []string{dashboard.MsgSessionExpired}, f.messages(notify.LevelError))
	assert.Equal(t, 1, f.count(t, "starose_logouts_total"))
}

func TestService_UnauthorizedLogsOut(t *testing.T) {
	f := newFixture(t, true, widget(10, 5))
	f.api.Err = &api.APIError{StatusCode: http.StatusUnauthorized}

	_, err := f.service.ListItems(context.Background(), 1, "")
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.False(t, f.store.IsAuthenticated())
	assert.False(t, f.storage.Has(session.StorageKey))
	assert.Equal(t, []string{dashboard.MsgUnauthorized}, f.messages(notify.LevelError))
}

func TestService_OperationFailureKeepsSession(t *testing.T) {
	f := newFixture(t, true, widget(10, 5))
	f.api.Err = &api.APIError{StatusCode: http.StatusInternalServerError}

	_, err := f.service.ListItems(context.Background(), 1, "")
	require.ErrorIs(t, err, apperrors.ErrOperation)
	assert.True(t, f.store.IsAuthenticated())
	assert.Equal(t, []string{"Failed to fetch inventory items."}, f.messages(notify.LevelError))
	assert.Equal(t, 1, f.count(t, "starose_api_failures_total"))
}

func TestService_UpdateItemLowStockWarning(t *testing.T) {
	tests := []struct {
		name      string
		before    retail.Item
		quantity  int
		threshold int
		warning   string
	}{
		{
			name:      "crosses into low stock",
			before:    widget(10, 5),
			quantity:  4,
			threshold: 5,
			warning:   "Widget is now low on stock! Only 4 left.",
		},
		{
			name:      "lands exactly on the threshold",
			before:    widget(6, 5),
			quantity:  5,
			threshold: 5,
			warning:   "Widget is now low on stock! Only 5 left.",
		},
		{
			name:      "already low",
			before:    widget(3, 5),
			quantity:  2,
			threshold: 5,
		},
		{
			name:      "stays above the threshold",
			before:    widget(20, 5),
			quantity:  12,
			threshold: 5,
		},
		{
			name:      "threshold raised above the quantity",
			before:    widget(6, 5),
			quantity:  6,
			threshold: 10,
			warning:   "Widget is now low on stock! Only 6 left.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, true, tt.before)
			in := tt.before.Input()
			in.Quantity = tt.quantity
			in.LowStockThreshold = tt.threshold

			updated, err := f.service.UpdateItem(context.Background(), tt.before, in)
			require.NoError(t, err)
			assert.Equal(t, tt.quantity, updated.Quantity)
			assert.Equal(t, []string{"Item updated successfully"}, f.messages(notify.LevelSuccess))

			if tt.warning == "" {
				assert.Empty(t, f.messages(notify.LevelWarning))
				assert.Zero(t, f.count(t, "starose_low_stock_warnings_total"))
				return
			}
			assert.Equal(t, []string{tt.warning}, f.messages(notify.LevelWarning))
			assert.Equal(t, 1, f.count(t, "starose_low_stock_warnings_total"))
		})
	}
}

func TestService_UpdateItemRejectsInvalidInput(t *testing.T) {
	f := newFixture(t, true, widget(10, 5))
	in := widget(10, 5).Input()
	in.Quantity = -1

	_, err := f.service.UpdateItem(context.Background(), widget(10, 5), in)
	require.ErrorIs(t, err, apperrors.ErrInvalidQuantity)
	assert.Zero(t, f.api.Calls)
}

func TestService_CreateItemWarnsWhenStartingLow(t *testing.T) {
	f := newFixture(t, true)
	in := widget(2, 5).Input()

	created, err := f.service.CreateItem(context.Background(), in)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, []string{"Item added successfully"}, f.messages(notify.LevelSuccess))
	assert.Equal(t, []string{"Widget was added with low stock!"}, f.messages(notify.LevelWarning))
}

func TestService_DeleteItem(t *testing.T) {
	f := newFixture(t, true, widget(10, 5))

	require.NoError(t, f.service.DeleteItem(context.Background(), "item-w"))
	_, ok := f.api.Item("item-w")
	assert.False(t, ok)
	assert.Equal(t, []string{"Item deleted successfully"}, f.messages(notify.LevelSuccess))
}

func TestService_RecordSale(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		sold     int
		left     int
		warning  string
	}{
		{name: "crosses into low stock", quantity: 6, sold: 1, left: 5, warning: "Widget is now low on stock! Only 5 left."},
		{name: "crosses well below", quantity: 8, sold: 6, left: 2, warning: "Widget is now low on stock! Only 2 left."},
		{name: "stays above", quantity: 20, sold: 2, left: 18},
		{name: "already low", quantity: 4, sold: 1, left: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, true, widget(tt.quantity, 5))

			result, err := f.service.RecordSale(context.Background(), retail.SaleInput{
				ItemID:        "item-w",
				QuantitySold:  tt.sold,
				PaymentMethod: retail.PaymentCash,
				Attendant:     "Jane",
			})
			require.NoError(t, err)
			assert.Equal(t, tt.left, result.QuantityLeft)
			assert.Equal(t, tt.warning != "", result.LowStock)
			assert.Equal(t, float64(100), result.Sale.ActualSellingPrice)
			assert.Equal(t, float64(100*tt.sold), result.Preview.TotalSale)
			assert.Equal(t, []string{"Sale recorded successfully!"}, f.messages(notify.LevelSuccess))

			stored, ok := f.api.Item("item-w")
			require.True(t, ok)
			assert.Equal(t, tt.left, stored.Quantity)

			if tt.warning == "" {
				assert.Empty(t, f.messages(notify.LevelWarning))
				return
			}
			assert.Equal(t, []string{tt.warning}, f.messages(notify.LevelWarning))
		})
	}
}

func TestService_RecordSaleServerMessage(t *testing.T) {
	f := newFixture(t, true, widget(2, 5))
	f.api.SaleErr = &api.APIError{StatusCode: http.StatusBadRequest, Message: "Insufficient stock"}

	_, err := f.service.RecordSale(context.Background(), retail.SaleInput{
		ItemID:        "item-w",
		QuantitySold:  5,
		PaymentMethod: retail.PaymentMpesa,
		Attendant:     "Jane",
	})
	require.Error(t, err)
	assert.Equal(t, []string{"Insufficient stock"}, f.messages(notify.LevelError))
	assert.Empty(t, f.messages(notify.LevelWarning))
	assert.True(t, f.store.IsAuthenticated())
}

func TestService_RecordSaleUnknownItem(t *testing.T) {
	f := newFixture(t, true, widget(10, 5))

	_, err := f.service.RecordSale(context.Background(), retail.SaleInput{
		ItemID:        "missing",
		QuantitySold:  1,
		PaymentMethod: retail.PaymentCash,
		Attendant:     "Jane",
	})
	require.ErrorIs(t, err, apperrors.ErrItemNotFound)
}

func TestService_RecordSaleValidatesBeforeFetching(t *testing.T) {
	tests := []struct {
		name    string
		in      retail.SaleInput
		wantErr error
	}{
		{"missing item", retail.SaleInput{QuantitySold: 1, PaymentMethod: retail.PaymentCash, Attendant: "Jane"}, apperrors.ErrInvalidRequest},
		{"zero quantity", retail.SaleInput{ItemID: "item-w", PaymentMethod: retail.PaymentCash, Attendant: "Jane"}, apperrors.ErrInvalidQuantity},
		{"unknown payment", retail.SaleInput{ItemID: "item-w", QuantitySold: 1, PaymentMethod: "Card", Attendant: "Jane"}, apperrors.ErrInvalidRequest},
		{"missing attendant", retail.SaleInput{ItemID: "item-w", QuantitySold: 1, PaymentMethod: retail.PaymentCash}, apperrors.ErrInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, true, widget(10, 5))

			_, err := f.service.RecordSale(context.Background(), tt.in)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, f.api.Calls)
			assert.Len(t, f.messages(notify.LevelError), 1)
		})
	}
}

func TestService_PreviewSale(t *testing.T) {
	f := newFixture(t, true, widget(10, 5))

	item, preview, err := f.service.PreviewSale(context.Background(), "item-w", 3, 0)
	require.NoError(t, err)
	assert.Equal(t, "Widget", item.Name)
	assert.Equal(t, float64(300), preview.TotalSale)
	assert.Equal(t, float64(120), preview.Profit)
}

func TestService_AddExpenseDefaults(t *testing.T) {
	f := newFixture(t, true)

	expense, err := f.service.AddExpense(context.Background(), retail.ExpenseInput{
		Amount:      1500,
		Description: "Shop lights",
	})
	require.NoError(t, err)
	assert.Equal(t, retail.ExpenseOther, expense.Category)
	assert.Equal(t, []string{"Expense added successfully!"}, f.messages(notify.LevelSuccess))

	page, err := f.service.ListExpenses(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, page.Expenses, 1)
}

func TestService_Overview(t *testing.T) {
	f := newFixture(t, true)
	day := 17
	f.api.Report = retail.SummaryReport{
		Summary: retail.Summary{TotalSales: 5000},
		SalesTrend: []retail.TrendBucket{
			{Key: retail.TrendKey{Year: 2025, Month: 6, Day: &day}, Sales: 5000, Profit: 1200},
		},
	}

	overview, err := f.service.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", overview.Range.From)
	assert.Equal(t, "2025-06-18", overview.Range.To)
	require.Len(t, overview.Trend, 1)
	assert.Equal(t, "17/6", overview.Trend[0].Label)
}

func TestService_Export(t *testing.T) {
	f := newFixture(t, true)
	r := retail.ReportRange{From: "2025-06-01", To: "2025-06-18", Period: retail.PeriodDaily}

	export, err := f.service.Export(context.Background(), r, retail.ExportExcel)
	require.NoError(t, err)
	assert.Equal(t, "Starose_Report_2025-06-01_to_2025-06-18.xlsx", export.Filename)
	assert.Equal(t, []string{"EXCEL export complete."}, f.messages(notify.LevelSuccess))

	f.api.Err = &api.APIError{StatusCode: http.StatusBadGateway}
	_, err = f.service.Export(context.Background(), r, retail.ExportPDF)
	require.Error(t, err)
	assert.Equal(t, []string{"Failed to export as PDF."}, f.messages(notify.LevelError))
}

func TestService_LoginLogout(t *testing.T) {
	f := newFixture(t, false)
	f.api.Login = sessiontest.Session(t, testNow.Add(time.Hour))

	user, err := f.service.Login(context.Background(), " admin@starose.test ", "secret")
	require.NoError(t, err)
	assert.Equal(t, "admin@starose.test", user.Email)
	assert.True(t, f.service.IsAuthenticated())
	assert.True(t, f.storage.Has(session.StorageKey))

	require.NoError(t, f.service.Logout())
	assert.False(t, f.service.IsAuthenticated())
	assert.False(t, f.storage.Has(session.StorageKey))
}

func TestService_LoginFailureMessage(t *testing.T) {
	f := newFixture(t, false)
	f.api.Err = &api.APIError{StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"}

	_, err := f.service.Login(context.Background(), "admin@starose.test", "wrong")
	require.Error(t, err)
	assert.False(t, f.service.IsAuthenticated())
	assert.Equal(t, []string{"Invalid credentials"}, f.messages(notify.LevelError))
}

func TestService_WithSwapsNotifier(t *testing.T) {
	f := newFixture(t, true, widget(10, 5))
	other := &notify.Collector{}

	require.NoError(t, f.service.With(other).DeleteItem(context.Background(), "item-w"))
	assert.Len(t, other.Notifications(), 1)
	assert.Empty(t, f.notes.Notifications())
}
