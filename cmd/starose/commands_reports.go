package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jrsteele09/starose-admin/retail"
	"github.com/spf13/cobra"
)

func reportsCmd(current func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Financial reports",
	}
	cmd.AddCommand(reportsSummaryCmd(current), reportsExportCmd(current))
	return cmd
}

// rangeFlags binds --from, --to and --period, defaulting to month to date.
func rangeFlags(cmd *cobra.Command, r *retail.ReportRange) {
	mtd := retail.MonthToDate(time.Now())
	cmd.Flags().StringVar(&r.From, "from", mtd.From, "Start date (yyyy-mm-dd)")
	cmd.Flags().StringVar(&r.To, "to", mtd.To, "End date (yyyy-mm-dd)")
	cmd.Flags().StringVar((*string)(&r.Period), "period", string(retail.PeriodDaily), "Trend period (daily, weekly, monthly)")
}

func reportsSummaryCmd(current func() *app) *cobra.Command {
	var (
		r      retail.ReportRange
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Sales, profit and expenses for a date range",
		RunE: protected(current, func(cmd *cobra.Command, a *app, args []string) error {
			report, err := a.service.Summary(cmd.Context(), r)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), report)
			}

			out := cmd.OutOrStdout()
			s := report.Summary
			if err := table(out, "TOTAL SALES\tGROSS PROFIT\tEXPENSES\tNET PROFIT\tLOW STOCK", [][]any{{
				formatMoney(s.TotalSales), formatMoney(s.GrossProfit), formatMoney(s.TotalExpenses), formatMoney(s.NetProfit), s.LowStockCount,
			}}); err != nil {
				return err
			}

			if len(report.TopSellingItems) > 0 {
				fmt.Fprintln(out)
				rows := make([][]any, 0, len(report.TopSellingItems))
				for _, top := range report.TopSellingItems {
					rows = append(rows, []any{top.Name, top.TotalQuantity, formatMoney(top.TotalRevenue)})
				}
				if err := table(out, "TOP ITEM\tQTY\tREVENUE", rows); err != nil {
					return err
				}
			}

			if len(report.LowStockItems) > 0 {
				fmt.Fprintln(out)
				rows := make([][]any, 0, len(report.LowStockItems))
				for _, item := range report.LowStockItems {
					rows = append(rows, []any{item.Name, item.Quantity, item.LowStockThreshold})
				}
				if err := table(out, "LOW STOCK ITEM\tQTY\tTHRESHOLD", rows); err != nil {
					return err
				}
			}
			return nil
		}),
	}
	rangeFlags(cmd, &r)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func reportsExportCmd(current func() *app) *cobra.Command {
	var (
		r      retail.ReportRange
		format string
		dir    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the report as PDF or Excel",
		RunE: protected(current, func(cmd *cobra.Command, a *app, args []string) error {
			f, err := retail.ParseExportFormat(format)
			if err != nil {
				return err
			}
			export, err := a.service.Export(cmd.Context(), r, f)
			if err != nil {
				return err
			}
			path := filepath.Join(dir, export.Filename)
			if err := os.WriteFile(path, export.Data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		}),
	}
	rangeFlags(cmd, &r)
	cmd.Flags().StringVarP(&format, "format", "f", string(retail.ExportPDF), "Export format (pdf or excel)")
	cmd.Flags().StringVarP(&dir, "out", "o", ".", "Directory to write the report to")
	return cmd
}
