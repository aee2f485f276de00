package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/starose-admin/internal/errors"
)

const maxErrorBody = 64 << 10

// APIError is a non-2xx response. A 401 matches apperrors.ErrUnauthorized.
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api error: %d %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == apperrors.ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

func newAPIError(resp *http.Response, requestID string) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode, RequestID: requestID}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return apiErr
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(data, &payload) == nil {
		apiErr.Message = payload.Message
		if apiErr.Message == "" {
			apiErr.Message = payload.Error
		}
		return apiErr
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "html") {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	return apiErr
}

// ServerMessage returns the message the API attached to a failure, if any.
func ServerMessage(err error) (string, bool) {
	var apiErr *APIError
	if apperrors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}
