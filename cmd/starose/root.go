package main

import (
	"fmt"

	apperrors "github.com/jrsteele09/starose-admin/internal/errors"
	"github.com/spf13/cobra"
)

// errLoginRequired is returned by protected commands when nobody is logged in.
var errLoginRequired = fmt.Errorf("%w: run `%s login` first", apperrors.ErrNotAuthenticated, appName)

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
		a          *app
	)

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Starose point-of-sale admin",
		Long: `Starose is the admin client of the Starose point-of-sale API.

It keeps the operator's session between runs and provides:
- Inventory management with low-stock warnings
- Sales recording and history
- Expense tracking
- Financial reports and exports
- A local web dashboard (starose serve)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[annotationNoApp] == "true" {
				return nil
			}
			var err error
			a, err = newApp(appOptions{
				configPath: configPath,
				logLevel:   logLevel,
				out:        cmd.OutOrStdout(),
				errOut:     cmd.ErrOrStderr(),
			})
			return err
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	current := func() *app { return a }

	cmd.AddCommand(
		loginCmd(current),
		logoutCmd(current),
		whoamiCmd(current),
		dashboardCmd(current),
		itemsCmd(current),
		salesCmd(current),
		expensesCmd(current),
		reportsCmd(current),
		serveCmd(current),
		versionCmd(),
	)
	closeAfterRun(cmd, current)
	return cmd
}

// closeAfterRun wraps every command's RunE so the app is closed when it returns. Cobra
// skips the post-run hooks when RunE fails, which would leave the session store open.
func closeAfterRun(cmd *cobra.Command, current func() *app) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			defer func() {
				if a := current(); a != nil {
					a.Close()
				}
			}()
			return run(cmd, args)
		}
	}
	for _, sub := range cmd.Commands() {
		closeAfterRun(sub, current)
	}
}

const annotationNoApp = "no-app"

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Annotations: map[string]string{annotationNoApp: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	}
}

// protected runs the session guard before a command that talks to the API.
func protected(current func() *app, run func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a := current()
		if !a.service.IsAuthenticated() {
			return errLoginRequired
		}
		return run(cmd, a, args)
	}
}
