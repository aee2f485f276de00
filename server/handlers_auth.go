package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/starose-admin/notify"
	"github.com/rs/zerolog/log"
)

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	AppName string
	Error   string
	Email   string // Preserve email on error
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userView is the session as shown to the browser; the token never leaves the process.
type userView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginPageUIHandler displays the login page (GET /login)
func (s *Server) LoginPageUIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.service.IsAuthenticated() {
			http.Redirect(w, r, RouteIndex, http.StatusSeeOther)
			return
		}

		data := LoginPageData{
			AppName: s.config.GetAppName(),
			Error:   r.URL.Query().Get("error"),
			Email:   r.URL.Query().Get("email"),
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := s.loginTmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render login template")
			http.Error(w, "Failed to render login page", http.StatusInternalServerError)
		}
	}
}

// LoginSubmissionHandler accepts either the login form or a JSON body.
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		notes := &notify.Collector{}
		service := s.service.With(notify.Logged(notes, log.Logger))

		if isJSON(r) {
			var req loginRequest
			if err := decodeJSON(w, r, &req); err != nil {
				writeError(w, err, notes)
				return
			}
			user, err := service.Login(r.Context(), req.Email, req.Password)
			if err != nil {
				writeError(w, err, notes)
				return
			}
			writeData(w, http.StatusOK, userView{ID: user.ID, Email: user.Email, Role: user.Role}, notes)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		email := r.FormValue("email")
		if _, err := service.Login(r.Context(), email, r.FormValue("password")); err != nil {
			renderLoginError(w, r, firstMessage(notes, "Invalid email or password"), email)
			return
		}
		http.Redirect(w, r, RouteIndex, http.StatusSeeOther)
	}
}

// LogoutHandler ends the session and returns to the login page. A storage failure is
// logged; the in-memory session is gone either way.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.service.Logout(); err != nil {
			log.Err(err).Msg("Logout: failed to remove stored session")
		}
		http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
	}
}

// renderLoginError redirects to login page with an error message
func renderLoginError(w http.ResponseWriter, r *http.Request, errorMsg, email string) {
	redirectURL := RouteLogin + "?error=" + url.QueryEscape(errorMsg)
	if email != "" {
		redirectURL += "&email=" + url.QueryEscape(email)
	}
	http.Redirect(w, r, redirectURL, http.StatusSeeOther)
}

func firstMessage(notes *notify.Collector, fallback string) string {
	for _, n := range notes.Notifications() {
		if n.Level == notify.LevelError {
			return n.Message
		}
	}
	return fallback
}

func isJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), contentTypeJSON)
}
