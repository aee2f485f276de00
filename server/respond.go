package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	apperrors "github.com/jrsteele09/starose-admin/internal/errors"
	"github.com/jrsteele09/starose-admin/notify"
	"github.com/rs/zerolog/log"
)

const (
	contentTypeJSON = "application/json"
	contentTypeHTML = "text/html; charset=utf-8"
	maxBodyBytes    = 1 << 20
)

// envelope wraps every JSON view. Notifications are the messages the workflow raised
// while serving this request.
type envelope struct {
	Data          any                   `json:"data,omitempty"`
	Error         string                `json:"error,omitempty"`
	Notifications []notify.Notification `json:"notifications"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	if body.Notifications == nil {
		body.Notifications = []notify.Notification{}
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Err(err).Msg("Failed to write JSON response")
	}
}

func writeData(w http.ResponseWriter, status int, data any, notes *notify.Collector) {
	writeJSON(w, status, envelope{Data: data, Notifications: notes.Notifications()})
}

// writeError maps a workflow error onto a status code.
func writeError(w http.ResponseWriter, err error, notes *notify.Collector) {
	writeJSON(w, statusFor(err), envelope{Error: err.Error(), Notifications: notes.Notifications()})
}

func statusFor(err error) int {
	switch {
	case apperrors.Is(err, apperrors.ErrNotAuthenticated), apperrors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case apperrors.Is(err, apperrors.ErrItemNotFound):
		return http.StatusNotFound
	case apperrors.Is(err, apperrors.ErrInvalidRequest), apperrors.Is(err, apperrors.ErrInvalidQuantity):
		return http.StatusBadRequest
	case apperrors.Is(err, apperrors.ErrOperation):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, out any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(out); err != nil {
		return apperrors.Wrapf(apperrors.ErrInvalidRequest, "invalid JSON body: %s", err.Error())
	}
	return nil
}

// intParam reads an optional integer query parameter.
func intParam(r *http.Request, name string, defaultValue int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.Wrapf(apperrors.ErrInvalidRequest, "%s must be a number", name)
	}
	return v, nil
}

func floatParam(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apperrors.Wrapf(apperrors.ErrInvalidRequest, "%s must be a number", name)
	}
	return v, nil
}
