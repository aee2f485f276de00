package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/jrsteele09/starose-admin/dashboard"
	"github.com/jrsteele09/starose-admin/notify"
	"github.com/jrsteele09/starose-admin/retail"
	"github.com/rs/zerolog/log"
)

// requestService returns the workflows bound to a collector for this request.
func (s *Server) requestService() (*dashboard.Service, *notify.Collector) {
	notes := &notify.Collector{}
	return s.service.With(notify.Logged(notes, log.Logger)), notes
}

func (s *Server) DashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		service, notes := s.requestService()
		overview, err := service.Overview(r.Context())
		if err != nil {
			writeError(w, err, notes)
			return
		}
		writeData(w, http.StatusOK, overview, notes)
	}
}

// ListItemsHandler serves one page of the inventory, or every item with ?all=true.
func (s *Server) ListItemsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		service, notes := s.requestService()

		if all, _ := strconv.ParseBool(r.URL.Query().Get("all")); all {
			items, err := service.AllItems(r.Context())
			if err != nil {
				writeError(w, err, notes)
				return
			}
			writeData(w, http.StatusOK, items, notes)
			return
		}

		page, err := intParam(r, "page", 1)
		if err != nil {
			writeError(w, err, notes)
			return
		}
		items, err := service.ListItems(r.Context(), page, r.URL.Query().Get("keyword"))
		if err != nil {
			writeError(w, err, notes)
			return
		}
		writeData(w, http.StatusOK, items, notes)
	}
}

func (s *Server) CreateItemHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		service, notes := s.requestService()

		var in retail.ItemInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, err, notes)
			return
		}
		item, err := service.CreateItem(r.Context(), in)
		if err != nil {
			writeError(w, err, notes)
			return
		}
		writeData(w, http.StatusCreated, item, notes)
	}
}

// UpdateItemHandler compares the submitted values against the item as the API holds it
// right now, which is the "before" state for the low-stock warning.
func (s *Server) UpdateItemHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		service, notes := s.requestService()

		var in retail.ItemInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, err, notes)
			return
		}
		before, err := service.Item(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err, notes)
			return
		}
		item, err := service.UpdateItem(r.Context(), before, in)
		if err != nil {
			writeError(w, err, notes)
			return
		}
		writeData(w, http.StatusOK, item, notes)
	}
}

func (s *Server) DeleteItemHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		service, notes := s.requestService()
		if err := service.DeleteItem(r.Context(), r.PathValue("id")); err != nil {
			writeError(w, err, notes)
			return
		}
		writeData(w, http.StatusOK, nil, notes)
	}
}

func (s *Server) ListSalesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		service, notes := s.requestService()

		page, err := intParam(r, "page", 1)
		if err != nil {
			writeError(w, err, notes)
			return
		}
		sales, err := service.ListSales(r.Context(), page, r.URL.Query().Get("itemName"))
		if err != nil {
			writeError(w, err, notes)
			return
		}
		writeData(w, http.StatusOK, sales, notes)
	}
}

func (s *Server) RecordSaleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		service, notes := s.requestService()

		var in retail.SaleInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, err, notes)
			return
		}
		result, err := service.RecordSale(r.Context(), in)
		if err != nil {
			writeError(w, err, notes)
			return
		}
		writeData(w, http.StatusCreated, result, notes)
	}
}

// PreviewSaleHandler answers ?itemId=&quantity=&price= with the sale total and profit.
func (s *Server) PreviewSaleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		service, notes := s.requestService()

		quantity, err := intParam(r, "quantity", 1)
		if err != nil {
			writeError(w, err, notes)
			return
		}
		price, err := floatParam(r, "price")
		if err != nil {
			writeError(w, err, notes)
			return
		}
		item, preview, err := service.PreviewSale(r.Context(), r.URL.Query().Get("itemId"), quantity, price)
		if err != nil {
			writeError(w, err, notes)
			return
		}
		writeData(w, http.StatusOK, map[string]any{
			"item":    item,
			"preview": preview,
		}, notes)
	}
}

func (s *Server) ListExpensesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		service, notes := s.requestService()

		page, err := intParam(r, "page", 1)
		if err != nil {
			writeError(w, err, notes)
			return
		}
		expenses, err := service.ListExpenses(r.Context(), page)
		if err != nil {
			writeError(w, err, notes)
			return
		}
		writeData(w, http.StatusOK, expenses, notes)
	}
}

func (s *Server) AddExpenseHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		service, notes := s.requestService()

		var in retail.ExpenseInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, err, notes)
			return
		}
		expense, err := service.AddExpense(r.Context(), in)
		if err != nil {
			writeError(w, err, notes)
			return
		}
		writeData(w, http.StatusCreated, expense, notes)
	}
}

func (s *Server) ReportSummaryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		service, notes := s.requestService()
		report, err := service.Summary(r.Context(), reportRange(r))
		if err != nil {
			writeError(w, err, notes)
			return
		}
		writeData(w, http.StatusOK, map[string]any{
			"report": report,
			"trend":  retail.Trend(report.SalesTrend),
		}, notes)
	}
}

// ReportExportHandler streams the exported report as a download.
func (s *Server) ReportExportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		service, notes := s.requestService()

		format, err := retail.ParseExportFormat(r.URL.Query().Get("format"))
		if err != nil {
			writeError(w, err, notes)
			return
		}
		export, err := service.Export(r.Context(), reportRange(r), format)
		if err != nil {
			writeError(w, err, notes)
			return
		}

		contentType := export.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(export.Data); err != nil {
			log.Err(err).Str("file", export.Filename).Msg("Failed to write export")
		}
	}
}

// reportRange reads ?from=&to=&period=, defaulting to month to date.
func reportRange(r *http.Request) retail.ReportRange {
	q := r.URL.Query()
	rng := retail.ReportRange{
		From:   q.Get("from"),
		To:     q.Get("to"),
		Period: retail.Period(q.Get("period")),
	}
	if rng.From == "" && rng.To == "" {
		mtd := retail.MonthToDate(time.Now())
		rng.From, rng.To = mtd.From, mtd.To
	}
	if rng.Period == "" {
		rng.Period = retail.PeriodDaily
	}
	return rng
}
