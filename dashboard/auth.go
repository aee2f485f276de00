package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/jrsteele09/starose-admin/api"
	apperrors "github.com/jrsteele09/starose-admin/internal/errors"
	"github.com/jrsteele09/starose-admin/notify"
	"github.com/jrsteele09/starose-admin/session"
)

// Login exchanges credentials with the API and stores the returned session.
func (s *Service) Login(ctx context.Context, email, password string) (session.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return session.Session{}, s.invalid(fmt.Errorf("%w: email and password are required", apperrors.ErrInvalidRequest))
	}

	record, err := s.api.Authenticate(ctx, email, password)
	if err != nil {
		message := "Login failed. Please try again."
		if msg, ok := api.ServerMessage(err); ok {
			message = msg
		} else if apperrors.Is(err, apperrors.ErrUnauthorized) {
			message = "Invalid email or password."
		}
		notify.Error(s.notifier, "%s", message)
		return session.Session{}, fmt.Errorf("login: %w", err)
	}

	if err := s.sessions.Login(record); err != nil {
		notify.Error(s.notifier, "Could not save the session.")
		return session.Session{}, err
	}
	s.log.Info().Str("user_id", record.ID).Str("role", record.Role).Msg("Logged in")
	notify.Success(s.notifier, "Logged in as %s", record.Email)
	return record, nil
}

// Logout ends the session; it succeeds when nobody is logged in.
func (s *Service) Logout() error {
	if err := s.sessions.Logout(); err != nil {
		notify.Error(s.notifier, "Logged out, but the stored session could not be removed.")
		return err
	}
	s.metrics.Logout("operator")
	notify.Success(s.notifier, "Logged out")
	return nil
}
