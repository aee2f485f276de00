package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func loginCmd(current func() *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session for later commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			if password == "" {
				fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			user, err := a.service.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", user.Email, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (read from stdin when omitted)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func logoutCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return current().service.Logout()
		},
	}
}

func whoamiCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in operator",
		RunE: protected(current, func(cmd *cobra.Command, a *app, args []string) error {
			user, _ := a.service.CurrentUser()
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", user.Email, user.Role)
			if exp := a.store.ExpiresAt(); !exp.IsZero() {
				fmt.Fprintf(cmd.OutOrStdout(), "session expires %s\n", exp.Local().Format("2006-01-02 15:04"))
			}
			return nil
		}),
	}
}

func dashboardCmd(current func() *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show month-to-date sales, profit and low stock",
		RunE: protected(current, func(cmd *cobra.Command, a *app, args []string) error {
			overview, err := a.service.Overview(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), overview)
			}
			summary := overview.Report.Summary
			fmt.Fprintf(cmd.OutOrStdout(), "%s to %s\n\n", overview.Range.From, overview.Range.To)
			if err := table(cmd.OutOrStdout(), "TOTAL SALES\tGROSS PROFIT\tEXPENSES\tNET PROFIT\tLOW STOCK", [][]any{{
				formatMoney(summary.TotalSales),
				formatMoney(summary.GrossProfit),
				formatMoney(summary.TotalExpenses),
				formatMoney(summary.NetProfit),
				summary.LowStockCount,
			}}); err != nil {
				return err
			}
			if len(overview.Trend) == 0 {
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout())
			rows := make([][]any, 0, len(overview.Trend))
			for _, p := range overview.Trend {
				rows = append(rows, []any{p.Label, formatMoney(p.Sales), formatMoney(p.Profit)})
			}
			return table(cmd.OutOrStdout(), "DAY\tSALES\tPROFIT", rows)
		}),
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}
