package session

import (
	apperrors "github.com/jrsteele09/starose-admin/internal/errors"
	"golang.org/x/oauth2"
)

type tokenSource struct {
	store *Store
}

// TokenSource exposes the current bearer credential to an oauth2.Transport. It fails with
// ErrNotAuthenticated while the store is anonymous and never refreshes or re-validates.
func (s *Store) TokenSource() oauth2.TokenSource {
	return tokenSource{store: s}
}

func (t tokenSource) Token() (*oauth2.Token, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	if t.store.current == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	return &oauth2.Token{
		AccessToken: t.store.current.Token,
		TokenType:   "Bearer",
		Expiry:      t.store.expiresAt,
	}, nil
}
