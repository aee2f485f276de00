package dashboard

import (
	"context"

	"github.com/jrsteele09/starose-admin/metrics"
	"github.com/jrsteele09/starose-admin/notify"
	"github.com/jrsteele09/starose-admin/retail"
	"github.com/jrsteele09/starose-admin/stock"
)

func (s *Service) ListItems(ctx context.Context, page int, keyword string) (retail.ItemPage, error) {
	if err := s.guard(); err != nil {
		return retail.ItemPage{}, err
	}
	out, err := s.api.ListItems(ctx, page, keyword)
	if err != nil {
		return retail.ItemPage{}, s.fail("list_items", err, "Failed to fetch inventory items.")
	}
	return out, nil
}

func (s *Service) AllItems(ctx context.Context) ([]retail.Item, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	items, err := s.api.AllItems(ctx)
	if err != nil {
		return nil, s.fail("all_items", err, "Couldn't load inventory items.")
	}
	return items, nil
}

// Item looks an item up in the current inventory.
func (s *Service) Item(ctx context.Context, id string) (retail.Item, error) {
	items, err := s.AllItems(ctx)
	if err != nil {
		return retail.Item{}, err
	}
	item, err := retail.FindItem(items, id)
	if err != nil {
		return retail.Item{}, s.invalid(err)
	}
	return item, nil
}

// CreateItem adds an item and warns when it starts at or below its threshold.
func (s *Service) CreateItem(ctx context.Context, in retail.ItemInput) (retail.Item, error) {
	if err := in.Validate(); err != nil {
		return retail.Item{}, s.invalid(err)
	}
	if err := s.guard(); err != nil {
		return retail.Item{}, err
	}

	created, err := s.api.CreateItem(ctx, in)
	if err != nil {
		return retail.Item{}, s.fail("create_item", err, "Failed to save item.")
	}
	notify.Success(s.notifier, "Item added successfully")

	if stock.IsLow(in.Level()) {
		notify.Warning(s.notifier, "%s was added with low stock!", in.Name)
		s.metrics.LowStockWarning(metrics.SourceItemCreate)
	}
	return created, nil
}

// UpdateItem saves an edit. before is the item as the operator last saw it; the submitted
// values are the "after" state. The warning fires only when this edit crosses the item
// into low stock.
func (s *Service) UpdateItem(ctx context.Context, before retail.Item, in retail.ItemInput) (retail.Item, error) {
	if err := in.Validate(); err != nil {
		return retail.Item{}, s.invalid(err)
	}
	if err := s.guard(); err != nil {
		return retail.Item{}, err
	}

	crossed := stock.CrossedIntoLow(before.Level(), in.Level())

	updated, err := s.api.UpdateItem(ctx, before.ID, in)
	if err != nil {
		return retail.Item{}, s.fail("update_item", err, "Failed to save item.")
	}
	notify.Success(s.notifier, "Item updated successfully")

	if crossed {
		notify.Warning(s.notifier, "%s is now low on stock! Only %d left.", in.Name, in.Quantity)
		s.metrics.LowStockWarning(metrics.SourceItemUpdate)
	}
	return updated, nil
}

func (s *Service) DeleteItem(ctx context.Context, id string) error {
	if err := s.guard(); err != nil {
		return err
	}
	if err := s.api.DeleteItem(ctx, id); err != nil {
		return s.fail("delete_item", err, "Failed to delete item.")
	}
	notify.Success(s.notifier, "Item deleted successfully")
	return nil
}
