package dashboard

import (
	"context"

	"github.com/jrsteele09/starose-admin/api"
	"github.com/jrsteele09/starose-admin/metrics"
	"github.com/jrsteele09/starose-admin/notify"
	"github.com/jrsteele09/starose-admin/retail"
	"github.com/jrsteele09/starose-admin/stock"
)

// SaleResult describes a recorded sale and the stock it left behind.
type SaleResult struct {
	Sale         retail.Sale        `json:"sale"`
	Item         retail.Item        `json:"item"`
	QuantityLeft int                `json:"quantityLeft"`
	LowStock     bool               `json:"lowStock"`
	Preview      retail.SalePreview `json:"preview"`
}

func (s *Service) ListSales(ctx context.Context, page int, itemName string) (retail.SalePage, error) {
	if err := s.guard(); err != nil {
		return retail.SalePage{}, err
	}
	out, err := s.api.ListSales(ctx, page, itemName)
	if err != nil {
		return retail.SalePage{}, s.fail("list_sales", err, "Failed to fetch sales records.")
	}
	return out, nil
}

// PreviewSale shows the total and estimated profit of a sale before it is recorded.
// A zero selling price means the item's default selling price.
func (s *Service) PreviewSale(ctx context.Context, itemID string, quantity int, sellingPrice float64) (retail.Item, retail.SalePreview, error) {
	item, err := s.Item(ctx, itemID)
	if err != nil {
		return retail.Item{}, retail.SalePreview{}, err
	}
	if sellingPrice == 0 {
		sellingPrice = item.DefaultSellingPrice
	}
	return item, retail.PreviewSale(item, quantity, sellingPrice), nil
}

// RecordSale records a sale. The item's quantity is read from the inventory just before
// the sale is posted and the remaining quantity is derived locally, so the low-stock
// warning is best effort when another till sells the same item concurrently.
// A zero ActualSellingPrice is replaced with the item's default selling price.
func (s *Service) RecordSale(ctx context.Context, in retail.SaleInput) (SaleResult, error) {
	if err := s.guard(); err != nil {
		return SaleResult{}, err
	}
	if err := in.Validate(); err != nil {
		return SaleResult{}, s.invalid(err)
	}

	item, err := s.Item(ctx, in.ItemID)
	if err != nil {
		return SaleResult{}, err
	}
	if in.ActualSellingPrice == 0 {
		in.ActualSellingPrice = item.DefaultSellingPrice
	}

	before := item.Quantity
	after := stock.AfterSale(before, in.QuantitySold)
	crossed := stock.CrossedIntoLowStock(before, after, item.LowStockThreshold)

	sale, err := s.api.RecordSale(ctx, in)
	if err != nil {
		message := "Failed to record sale."
		if msg, ok := api.ServerMessage(err); ok {
			message = msg
		}
		return SaleResult{}, s.fail("record_sale", err, message)
	}
	notify.Success(s.notifier, "Sale recorded successfully!")

	if crossed {
		notify.Warning(s.notifier, "%s is now low on stock! Only %d left.", item.Name, after)
		s.metrics.LowStockWarning(metrics.SourceSale)
	}

	return SaleResult{
		Sale:         sale,
		Item:         item,
		QuantityLeft: after,
		LowStock:     crossed,
		Preview:      retail.PreviewSale(item, in.QuantitySold, in.ActualSellingPrice),
	}, nil
}
