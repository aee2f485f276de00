package server

import (
	"net/http"
)

// RequireSession sends anonymous visitors to the login page. It runs before any handler
// work, so a protected view never renders without a session.
func (s *Server) RequireSession() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if !s.service.IsAuthenticated() {
				http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
				return
			}
			next(w, r)
		}
	}
}
