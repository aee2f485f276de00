package dashboard

import (
	"context"
	"strings"

	"github.com/jrsteele09/starose-admin/notify"
	"github.com/jrsteele09/starose-admin/retail"
)

// Overview is the month-to-date dashboard.
type Overview struct {
	Range  retail.ReportRange   `json:"range"`
	Report retail.SummaryReport `json:"report"`
	Trend  []retail.TrendPoint  `json:"trend"`
}

// Export is a downloaded report ready to be written to disk.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (s *Service) Summary(ctx context.Context, r retail.ReportRange) (retail.SummaryReport, error) {
	if err := r.Validate(); err != nil {
		return retail.SummaryReport{}, s.invalid(err)
	}
	if err := s.guard(); err != nil {
		return retail.SummaryReport{}, err
	}
	report, err := s.api.Summary(ctx, r)
	if err != nil {
		return retail.SummaryReport{}, s.fail("report_summary", err, "Failed to generate report.")
	}
	notify.Success(s.notifier, "Report generated successfully")
	return report, nil
}

// Overview loads the daily summary from the first of the month to today.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	if err := s.guard(); err != nil {
		return Overview{}, err
	}
	r := retail.MonthToDate(s.nowTime())
	report, err := s.api.Summary(ctx, r)
	if err != nil {
		return Overview{}, s.fail("dashboard", err, "Failed to fetch dashboard data.")
	}
	return Overview{Range: r, Report: report, Trend: retail.Trend(report.SalesTrend)}, nil
}

func (s *Service) Export(ctx context.Context, r retail.ReportRange, format retail.ExportFormat) (Export, error) {
	if err := r.Validate(); err != nil {
		return Export{}, s.invalid(err)
	}
	if err := s.guard(); err != nil {
		return Export{}, err
	}

	label := strings.ToUpper(string(format))
	contentType, data, err := s.api.Export(ctx, r, format)
	if err != nil {
		return Export{}, s.fail("report_export", err, "Failed to export as "+label+".")
	}
	notify.Success(s.notifier, "%s export complete.", label)
	return Export{
		Filename:    retail.ExportFilename(r.From, r.To, format),
		ContentType: contentType,
		Data:        data,
	}, nil
}
