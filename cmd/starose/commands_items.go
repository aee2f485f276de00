package main

import (
	"fmt"

	"github.com/jrsteele09/starose-admin/internal/utils"
	"github.com/jrsteele09/starose-admin/retail"
	"github.com/spf13/cobra"
)

func itemsCmd(current func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Manage inventory items",
	}
	cmd.AddCommand(
		itemsListCmd(current),
		itemsAddCmd(current),
		itemsUpdateCmd(current),
		itemsDeleteCmd(current),
	)
	return cmd
}

func itemsListCmd(current func() *app) *cobra.Command {
	var (
		page    int
		keyword string
		all     bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List inventory items",
		RunE: protected(current, func(cmd *cobra.Command, a *app, args []string) error {
			var items []retail.Item
			footer := ""
			if all {
				var err error
				if items, err = a.service.AllItems(cmd.Context()); err != nil {
					return err
				}
			} else {
				result, err := a.service.ListItems(cmd.Context(), page, keyword)
				if err != nil {
					return err
				}
				items = result.Items
				footer = fmt.Sprintf("page %d of %d", result.Page, result.Pages)
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), items)
			}
			rows := make([][]any, 0, len(items))
			for _, item := range items {
				status := ""
				if item.IsLow() {
					status = "LOW"
				}
				rows = append(rows, []any{
					item.ID, item.Name, item.Category, item.Quantity, item.LowStockThreshold,
					formatMoney(item.BuyingPrice), formatMoney(item.DefaultSellingPrice), utils.ValueOr(item.SKU, "-"), status,
				})
			}
			if err := table(cmd.OutOrStdout(), "ID\tNAME\tCATEGORY\tQTY\tTHRESHOLD\tBUY\tSELL\tSKU\tSTATUS", rows); err != nil {
				return err
			}
			if footer != "" {
				fmt.Fprintln(cmd.OutOrStdout(), footer)
			}
			return nil
		}),
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().StringVarP(&keyword, "keyword", "k", "", "Filter by name")
	cmd.Flags().BoolVar(&all, "all", false, "List every item instead of one page")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

// itemFlags binds the editable item fields to flags.
func itemFlags(cmd *cobra.Command, in *retail.ItemInput) {
	cmd.Flags().StringVar(&in.Name, "name", "", "Item name")
	cmd.Flags().StringVar(&in.Category, "category", "", "Category")
	cmd.Flags().Float64Var(&in.BuyingPrice, "buying-price", 0, "Buying price")
	cmd.Flags().Float64Var(&in.DefaultSellingPrice, "selling-price", 0, "Default selling price")
	cmd.Flags().IntVar(&in.Quantity, "quantity", 0, "Quantity in stock")
	cmd.Flags().IntVar(&in.LowStockThreshold, "threshold", retail.DefaultLowStockThreshold, "Low-stock threshold")
	cmd.Flags().StringVar(&in.SKU, "sku", "", "Stock keeping unit")
}

func itemsAddCmd(current func() *app) *cobra.Command {
	var in retail.ItemInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an inventory item",
		RunE: protected(current, func(cmd *cobra.Command, a *app, args []string) error {
			item, err := a.service.CreateItem(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), item.ID)
			return nil
		}),
	}
	itemFlags(cmd, &in)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

// itemsUpdateCmd starts from the item as currently stored and applies only the flags
// that were set, so the stored values are the "before" state of the edit.
func itemsUpdateCmd(current func() *app) *cobra.Command {
	var flags retail.ItemInput

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update an inventory item",
		Args:  cobra.ExactArgs(1),
		RunE: protected(current, func(cmd *cobra.Command, a *app, args []string) error {
			before, err := a.service.Item(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			in := before.Input()
			changed := cmd.Flags().Changed
			if changed("name") {
				in.Name = flags.Name
			}
			if changed("category") {
				in.Category = flags.Category
			}
			if changed("buying-price") {
				in.BuyingPrice = flags.BuyingPrice
			}
			if changed("selling-price") {
				in.DefaultSellingPrice = flags.DefaultSellingPrice
			}
			if changed("quantity") {
				in.Quantity = flags.Quantity
			}
			if changed("threshold") {
				in.LowStockThreshold = flags.LowStockThreshold
			}
			if changed("sku") {
				in.SKU = flags.SKU
			}

			item, err := a.service.UpdateItem(cmd.Context(), before, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d in stock\n", item.Name, item.Quantity)
			return nil
		}),
	}
	itemFlags(cmd, &flags)
	return cmd
}

func itemsDeleteCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an inventory item",
		Args:  cobra.ExactArgs(1),
		RunE: protected(current, func(cmd *cobra.Command, a *app, args []string) error {
			return a.service.DeleteItem(cmd.Context(), args[0])
		}),
	}
}

func formatMoney(v float64) string {
	return retail.FormatKES(v)
}
