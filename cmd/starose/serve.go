package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/starose-admin/server"
	"github.com/spf13/cobra"
)

func serveCmd(current func() *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local web dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			if addr == "" {
				addr = a.cfg.GetListenAddr()
			}

			handler, err := server.New(a.cfg, a.service, a.metrics)
			if err != nil {
				return err
			}

			displayAppname(cmd.OutOrStdout(), a.cfg.GetAppName())
			srv := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}

			errCh := make(chan error, 1)
			go func() { errCh <- listenAndServe(a, srv) }()

			select {
			case err := <-errCh:
				return err
			case <-waitForStopSignal(cmd.Context()):
			}
			return shutdown(srv)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to HOST:PORT, loopback only)")
	return cmd
}

func listenAndServe(a *app, srv *http.Server) error {
	a.log.Info().Str("addr", srv.Addr).Msg("Dashboard listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal(ctx context.Context) <-chan struct{} {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		defer signal.Stop(stop)
		select {
		case <-stop:
		case <-ctx.Done():
		}
		close(done)
	}()
	return done
}

func shutdown(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(out io.Writer, appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	fmt.Fprintln(out, myFigure.String())
}
