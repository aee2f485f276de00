package server

import (
	"net/http"

	"github.com/jrsteele09/starose-admin/dashboard"
	apperrors "github.com/jrsteele09/starose-admin/internal/errors"
	"github.com/jrsteele09/starose-admin/notify"
	"github.com/jrsteele09/starose-admin/session"
	"github.com/rs/zerolog/log"
)

type IndexPageData struct {
	AppName       string
	User          session.Session
	Overview      *dashboard.Overview
	Notifications []notify.Notification
}

// IndexHandler renders the month-to-date dashboard
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		notes := &notify.Collector{}
		service := s.service.With(notify.Logged(notes, log.Logger))

		data := IndexPageData{AppName: s.config.GetAppName()}
		data.User, _ = service.CurrentUser()

		overview, err := service.Overview(r.Context())
		switch {
		case apperrors.Is(err, apperrors.ErrNotAuthenticated), apperrors.Is(err, apperrors.ErrUnauthorized):
			renderLoginError(w, r, firstMessage(notes, dashboard.MsgSessionExpired), "")
			return
		case err == nil:
			data.Overview = &overview
		}
		data.Notifications = notes.Notifications()

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := s.indexTmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render index template")
			http.Error(w, "Failed to render dashboard", http.StatusInternalServerError)
		}
	}
}

// CatchAllHandler sends unknown paths to the dashboard, or to the login page when
// nobody is logged in.
func (s *Server) CatchAllHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.service.IsAuthenticated() {
			http.Redirect(w, r, RouteIndex, http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
	}
}
