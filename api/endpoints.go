package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/jrsteele09/starose-admin/retail"
	"github.com/jrsteele09/starose-admin/session"
)

// Endpoint paths relative to the base URL
const (
	PathLogin         = "/users/login"
	PathItems         = "/items"
	PathSales         = "/sales"
	PathExpenses      = "/expenses"
	PathReportSummary = "/reports/summary"
	PathReportExport  = "/reports/export"
)

// Authenticate exchanges credentials for a session record.
func (c *Client) Authenticate(ctx context.Context, email, password string) (session.Session, error) {
	var s session.Session
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   PathLogin,
		body:   map[string]string{"email": email, "password": password},
		anon:   true,
	}, &s)
	if err != nil {
		return session.Session{}, err
	}
	if s.Token == "" {
		return session.Session{}, fmt.Errorf("POST %s: response carried no token", PathLogin)
	}
	return s, nil
}

func (c *Client) ListItems(ctx context.Context, page int, keyword string) (retail.ItemPage, error) {
	q := pageQuery(page)
	q.Set("keyword", keyword)
	var out retail.ItemPage
	err := c.do(ctx, request{method: http.MethodGet, path: PathItems, query: q}, &out)
	return out, err
}

// AllItems fetches the inventory without paging or search.
func (c *Client) AllItems(ctx context.Context) ([]retail.Item, error) {
	var out retail.ItemPage
	if err := c.do(ctx, request{method: http.MethodGet, path: PathItems}, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) CreateItem(ctx context.Context, in retail.ItemInput) (retail.Item, error) {
	var out retail.Item
	err := c.do(ctx, request{method: http.MethodPost, path: PathItems, body: in}, &out)
	return out, err
}

func (c *Client) UpdateItem(ctx context.Context, id string, in retail.ItemInput) (retail.Item, error) {
	var out retail.Item
	err := c.do(ctx, request{method: http.MethodPut, path: PathItems + "/" + url.PathEscape(id), body: in}, &out)
	return out, err
}

func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: PathItems + "/" + url.PathEscape(id)}, nil)
}

func (c *Client) ListSales(ctx context.Context, page int, itemName string) (retail.SalePage, error) {
	q := pageQuery(page)
	q.Set("itemName", itemName)
	var out retail.SalePage
	err := c.do(ctx, request{method: http.MethodGet, path: PathSales, query: q}, &out)
	return out, err
}

func (c *Client) RecordSale(ctx context.Context, in retail.SaleInput) (retail.Sale, error) {
	var out retail.Sale
	err := c.do(ctx, request{method: http.MethodPost, path: PathSales, body: in}, &out)
	return out, err
}

func (c *Client) ListExpenses(ctx context.Context, page int) (retail.ExpensePage, error) {
	var out retail.ExpensePage
	err := c.do(ctx, request{method: http.MethodGet, path: PathExpenses, query: pageQuery(page)}, &out)
	return out, err
}

func (c *Client) AddExpense(ctx context.Context, in retail.ExpenseInput) (retail.Expense, error) {
	var out retail.Expense
	err := c.do(ctx, request{method: http.MethodPost, path: PathExpenses, body: in}, &out)
	return out, err
}

func (c *Client) Summary(ctx context.Context, r retail.ReportRange) (retail.SummaryReport, error) {
	q := url.Values{}
	q.Set("from", r.From)
	q.Set("to", r.To)
	if r.Period != "" {
		q.Set("period", string(r.Period))
	}
	var out retail.SummaryReport
	err := c.do(ctx, request{method: http.MethodGet, path: PathReportSummary, query: q}, &out)
	return out, err
}

// Export downloads a generated report. The API owns the file format.
func (c *Client) Export(ctx context.Context, r retail.ReportRange, format retail.ExportFormat) (contentType string, data []byte, err error) {
	q := url.Values{}
	q.Set("from", r.From)
	q.Set("to", r.To)
	q.Set("format", string(format))

	resp, err := c.send(ctx, request{method: http.MethodGet, path: PathReportExport, query: q, accept: "*/*"})
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	data, err = io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, fmt.Errorf("GET %s: read export: %w", PathReportExport, err)
	}
	return resp.Header.Get("Content-Type"), data, nil
}
