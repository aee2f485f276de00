package main

import (
	"fmt"

	"github.com/jrsteele09/starose-admin/retail"
	"github.com/spf13/cobra"
)

func salesCmd(current func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sales",
		Short: "Record and review sales",
	}
	cmd.AddCommand(
		salesListCmd(current),
		salesRecordCmd(current),
		salesPreviewCmd(current),
	)
	return cmd
}

func salesListCmd(current func() *app) *cobra.Command {
	var (
		page     int
		itemName string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded sales",
		RunE: protected(current, func(cmd *cobra.Command, a *app, args []string) error {
			result, err := a.service.ListSales(cmd.Context(), page, itemName)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), result)
			}
			rows := make([][]any, 0, len(result.Sales))
			for _, sale := range result.Sales {
				name := sale.ItemName
				if name == "" {
					name = sale.Item.Name
				}
				rows = append(rows, []any{
					sale.Date.Local().Format("2006-01-02 15:04"), name, sale.QuantitySold,
					formatMoney(sale.TotalSale), formatMoney(sale.Profit), sale.PaymentMethod, sale.Attendant,
				})
			}
			if err := table(cmd.OutOrStdout(), "DATE\tITEM\tQTY\tTOTAL\tPROFIT\tPAYMENT\tATTENDANT", rows); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d\n", result.Page, result.Pages)
			return nil
		}),
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().StringVar(&itemName, "item", "", "Filter by item name")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func salesRecordCmd(current func() *app) *cobra.Command {
	var (
		in      retail.SaleInput
		payment string
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a sale",
		RunE: protected(current, func(cmd *cobra.Command, a *app, args []string) error {
			method, err := retail.ParsePaymentMethod(payment)
			if err != nil {
				return err
			}
			in.PaymentMethod = method
			if in.Attendant == "" {
				if user, ok := a.service.CurrentUser(); ok {
					in.Attendant = user.Email
				}
			}

			result, err := a.service.RecordSale(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s x%d: total %s, profit %s, %d left\n",
				result.Item.Name, in.QuantitySold,
				formatMoney(result.Preview.TotalSale), formatMoney(result.Preview.Profit), result.QuantityLeft)
			return nil
		}),
	}

	cmd.Flags().StringVar(&in.ItemID, "item", "", "Item ID")
	cmd.Flags().IntVarP(&in.QuantitySold, "quantity", "q", 1, "Quantity sold")
	cmd.Flags().Float64Var(&in.ActualSellingPrice, "price", 0, "Unit selling price (defaults to the item's selling price)")
	cmd.Flags().StringVar(&payment, "payment", string(retail.PaymentCash), "Payment method (Cash or Mpesa)")
	cmd.Flags().StringVar(&in.Attendant, "attendant", "", "Attendant name (defaults to the logged-in operator)")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "Notes")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

func salesPreviewCmd(current func() *app) *cobra.Command {
	var (
		itemID   string
		quantity int
		price    float64
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show the total and profit of a sale without recording it",
		RunE: protected(current, func(cmd *cobra.Command, a *app, args []string) error {
			item, preview, err := a.service.PreviewSale(cmd.Context(), itemID, quantity, price)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s x%d: total %s, profit %s\n",
				item.Name, quantity, formatMoney(preview.TotalSale), formatMoney(preview.Profit))
			return nil
		}),
	}

	cmd.Flags().StringVar(&itemID, "item", "", "Item ID")
	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "Quantity")
	cmd.Flags().Float64Var(&price, "price", 0, "Unit selling price (defaults to the item's selling price)")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}
