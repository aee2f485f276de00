package retail

import (
	"fmt"
	"time"

	apperrors "github.com/jrsteele09/starose-admin/internal/errors"
)

// DateLayout is the date format used in report queries and expense dates.
const DateLayout = "2006-01-02"

type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

type ExportFormat string

const (
	ExportPDF   ExportFormat = "pdf"
	ExportExcel ExportFormat = "excel"
)

func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case ExportPDF, ExportExcel:
		return ExportFormat(s), nil
	}
	return "", fmt.Errorf("%w: unsupported export format %q (pdf or excel)", apperrors.ErrInvalidRequest, s)
}

// Extension is the file extension of an exported report.
func (f ExportFormat) Extension() string {
	if f == ExportExcel {
		return "xlsx"
	}
	return "pdf"
}

// ExportFilename names a downloaded report after its date range.
func ExportFilename(from, to string, format ExportFormat) string {
	return fmt.Sprintf("Starose_Report_%s_to_%s.%s", from, to, format.Extension())
}

// ReportRange is an inclusive date range in DateLayout with an optional trend period.
type ReportRange struct {
	From   string
	To     string
	Period Period
}

// MonthToDate spans the first day of now's month to now.
func MonthToDate(now time.Time) ReportRange {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return ReportRange{
		From:   first.Format(DateLayout),
		To:     now.Format(DateLayout),
		Period: PeriodDaily,
	}
}

func (r ReportRange) Validate() error {
	from, err := time.Parse(DateLayout, r.From)
	if err != nil {
		return fmt.Errorf("%w: invalid from date %q", apperrors.ErrInvalidRequest, r.From)
	}
	to, err := time.Parse(DateLayout, r.To)
	if err != nil {
		return fmt.Errorf("%w: invalid to date %q", apperrors.ErrInvalidRequest, r.To)
	}
	if to.Before(from) {
		return fmt.Errorf("%w: to date %s is before from date %s", apperrors.ErrInvalidRequest, r.To, r.From)
	}
	return nil
}

type Summary struct {
	TotalSales    float64 `json:"totalSales"`
	GrossProfit   float64 `json:"grossProfit"`
	TotalExpenses float64 `json:"totalExpenses"`
	NetProfit     float64 `json:"netProfit"`
	LowStockCount int     `json:"lowStockCount"`
}

type TopSellingItem struct {
	Name          string  `json:"_id"`
	TotalQuantity int     `json:"totalQuantity"`
	TotalRevenue  float64 `json:"totalRevenue"`
}

type TrendKey struct {
	Year  int  `json:"year"`
	Month int  `json:"month"`
	Day   *int `json:"day,omitempty"`
	Week  *int `json:"week,omitempty"`
}

type TrendBucket struct {
	Key    TrendKey `json:"_id"`
	Sales  float64  `json:"sales"`
	Profit float64  `json:"profit"`
}

type SummaryReport struct {
	Summary         Summary          `json:"summary"`
	TopSellingItems []TopSellingItem `json:"topSellingItems"`
	LowStockItems   []Item           `json:"lowStockItems"`
	SalesTrend      []TrendBucket    `json:"salesTrend"`
}

// TrendPoint is one labelled point of the sales/profit chart.
type TrendPoint struct {
	Label  string  `json:"name"`
	Sales  float64 `json:"sales"`
	Profit float64 `json:"profit"`
}

// Trend labels each bucket by day/month, falling back to the week or the month when
// the report was aggregated more coarsely.
func Trend(buckets []TrendBucket) []TrendPoint {
	points := make([]TrendPoint, 0, len(buckets))
	for _, b := range buckets {
		points = append(points, TrendPoint{
			Label:  b.Key.label(),
			Sales:  b.Sales,
			Profit: b.Profit,
		})
	}
	return points
}

func (k TrendKey) label() string {
	switch {
	case k.Day != nil:
		return fmt.Sprintf("%d/%d", *k.Day, k.Month)
	case k.Week != nil:
		return fmt.Sprintf("W%d/%d", *k.Week, k.Year)
	default:
		return fmt.Sprintf("%d/%d", k.Month, k.Year)
	}
}
