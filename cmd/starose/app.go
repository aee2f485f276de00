package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jrsteele09/starose-admin/api"
	"github.com/jrsteele09/starose-admin/dashboard"
	"github.com/jrsteele09/starose-admin/internal/config"
	"github.com/jrsteele09/starose-admin/metrics"
	"github.com/jrsteele09/starose-admin/notify"
	"github.com/jrsteele09/starose-admin/session"
	"github.com/jrsteele09/starose-admin/session/storage/filestore"
	"github.com/jrsteele09/starose-admin/session/storage/sqlitestore"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// app is everything a command needs, built once per invocation.
type app struct {
	cfg     config.Config
	log     zerolog.Logger
	store   *session.Store
	service *dashboard.Service
	metrics *metrics.Metrics
	out     io.Writer
	closers []io.Closer
}

type appOptions struct {
	configPath string
	logLevel   string
	out        io.Writer
	errOut     io.Writer
}

func newApp(opts appOptions) (*app, error) {
	cfg, err := config.New(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logLevel := opts.logLevel
	if logLevel == "" {
		logLevel = cfg.GetLogLevel()
	}
	logger := newLogger(opts.errOut, logLevel)
	log.Logger = logger

	a := &app{
		cfg:     cfg,
		log:     logger,
		metrics: metrics.New(),
		out:     opts.out,
	}

	storage, err := a.openStorage()
	if err != nil {
		return nil, err
	}

	a.store, err = session.NewStore(storage, session.WithLogger(logger.With().Str("component", "session").Logger()))
	if err != nil {
		a.Close()
		return nil, err
	}

	client, err := api.New(cfg.GetAPIBaseURL(), a.store.TokenSource(),
		api.WithTimeout(cfg.GetRequestTimeout()),
		api.WithLogger(logger.With().Str("component", "api").Logger()),
	)
	if err != nil {
		a.Close()
		return nil, err
	}

	notifier := notify.NewConsole(opts.errOut, isTerminal(opts.errOut))
	a.service, err = dashboard.New(a.store, client, notifier,
		dashboard.WithMetrics(a.metrics),
		dashboard.WithLogger(logger.With().Str("component", "dashboard").Logger()),
	)
	if err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) openStorage() (session.Storage, error) {
	folder := a.cfg.GetDataFolder()
	switch a.cfg.GetStorageBackend() {
	case config.StorageBackendSQLite:
		store, err := sqlitestore.Open(filepath.Join(folder, sqlitestore.FileName))
		if err != nil {
			return nil, fmt.Errorf("open session database: %w", err)
		}
		a.closers = append(a.closers, store)
		return store, nil
	default:
		store, err := filestore.New(filepath.Join(folder, "session"))
		if err != nil {
			return nil, fmt.Errorf("open session folder: %w", err)
		}
		return store, nil
	}
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.log.Warn().Err(err).Msg("Failed to close resource")
		}
	}
	a.closers = nil
}

func newLogger(out io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	console := zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen, NoColor: !isTerminal(out)}
	return zerolog.New(console).Level(lvl).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
