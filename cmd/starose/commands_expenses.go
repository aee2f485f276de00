package main

import (
	"fmt"

	"github.com/jrsteele09/starose-admin/retail"
	"github.com/spf13/cobra"
)

func expensesCmd(current func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "Track business expenses",
	}
	cmd.AddCommand(expensesListCmd(current), expensesAddCmd(current))
	return cmd
}

func expensesListCmd(current func() *app) *cobra.Command {
	var (
		page   int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		RunE: protected(current, func(cmd *cobra.Command, a *app, args []string) error {
			result, err := a.service.ListExpenses(cmd.Context(), page)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), result)
			}
			rows := make([][]any, 0, len(result.Expenses))
			for _, e := range result.Expenses {
				rows = append(rows, []any{e.Date.Format(retail.DateLayout), e.Category, formatMoney(e.Amount), e.Description})
			}
			if err := table(cmd.OutOrStdout(), "DATE\tCATEGORY\tAMOUNT\tDESCRIPTION", rows); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d\n", result.Page, result.Pages)
			return nil
		}),
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func expensesAddCmd(current func() *app) *cobra.Command {
	var (
		in       retail.ExpenseInput
		category string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an expense",
		RunE: protected(current, func(cmd *cobra.Command, a *app, args []string) error {
			in.Category = retail.ExpenseCategory(category)
			expense, err := a.service.AddExpense(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), expense.ID)
			return nil
		}),
	}

	cmd.Flags().Float64Var(&in.Amount, "amount", 0, "Amount")
	cmd.Flags().StringVar(&category, "category", string(retail.ExpenseOther), "Category (rent, utilities, wages, supplies, other)")
	cmd.Flags().StringVar(&in.Description, "description", "", "Description")
	cmd.Flags().StringVar(&in.Date, "date", "", "Date as yyyy-mm-dd (defaults to today)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}
