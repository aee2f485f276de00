// Package server is the local admin dashboard: a small web UI and JSON views over the
// dashboard workflows, guarded by the operator's session.
package server

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/jrsteele09/starose-admin/dashboard"
	"github.com/jrsteele09/starose-admin/internal/config"
	apperrors "github.com/jrsteele09/starose-admin/internal/errors"
	"github.com/jrsteele09/starose-admin/internal/ui"
	"github.com/jrsteele09/starose-admin/metrics"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env     string // Environment (e.g., "DEV", "PROD")
	mux     *http.ServeMux
	routes  []string
	config  config.Config
	service *dashboard.Service
	metrics *metrics.Metrics

	loginTmpl *template.Template
	indexTmpl *template.Template
}

// New builds the dashboard server. metrics may be nil, in which case /metrics is not served.
func New(cfg config.Config, service *dashboard.Service, m *metrics.Metrics) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("[server.New] config is required: %w", apperrors.ErrMissingDependency)
	}
	if service == nil {
		return nil, fmt.Errorf("[server.New] dashboard service is required: %w", apperrors.ErrMissingDependency)
	}

	loginTmpl, err := ParseTemplate("login.html")
	if err != nil {
		return nil, fmt.Errorf("[server.New] failed to parse login template: %w", err)
	}
	indexTmpl, err := ParseTemplate("index.html")
	if err != nil {
		return nil, fmt.Errorf("[server.New] failed to parse index template: %w", err)
	}

	s := &Server{
		env:       cfg.GetEnv(),
		mux:       http.NewServeMux(),
		config:    cfg,
		service:   service,
		metrics:   m,
		loginTmpl: loginTmpl,
		indexTmpl: indexTmpl,
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// Routes lists the registered patterns in registration order.
func (s *Server) Routes() []string {
	return append([]string(nil), s.routes...)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Info().Msgf("[%s] %s", methodLabel(method), path)
}

func logError(method, path, message string) {
	log.Error().Msgf("[%s] %s %s", methodLabel(method), path, ui.Colourise(true, ui.Red, message))
}

func methodLabel(method string) string {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if colour, ok := ui.MethodColors[method]; ok {
		return ui.Colourise(true, colour, paddedMethod)
	}
	return ui.Colourise(true, ui.Gray, paddedMethod)
}
