package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	apperrors "github.com/jrsteele09/starose-admin/internal/errors"
	"github.com/jrsteele09/starose-admin/retail"
	"github.com/jrsteele09/starose-admin/session"
	"github.com/jrsteele09/starose-admin/session/sessiontest"
	"github.com/jrsteele09/starose-admin/session/storage/filestore"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend is a minimal Starose API holding a single item.
type fakeBackend struct {
	t     *testing.T
	mu    sync.Mutex
	item  retail.Item
	token string
}

func newFakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	b := &fakeBackend{
		t:     t,
		token: sessiontest.Token(t, time.Now().Add(time.Hour)),
		item: retail.Item{
			ID:                  "item-w",
			Name:                "Widget",
			Category:            "hardware",
			BuyingPrice:         60,
			DefaultSellingPrice: 100,
			Quantity:            10,
			LowStockThreshold:   5,
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/users/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds.Password != "secret" {
			b.write(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
			return
		}
		b.write(w, http.StatusOK, session.Session{ID: "user-1", Email: creds.Email, Role: "admin", Token: b.token})
	})
	mux.HandleFunc("GET /api/items", func(w http.ResponseWriter, r *http.Request) {
		if !b.authorized(w, r) {
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		b.write(w, http.StatusOK, retail.ItemPage{Items: []retail.Item{b.item}, Page: 1, Pages: 1})
	})
	mux.HandleFunc("PUT /api/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !b.authorized(w, r) {
			return
		}
		var in retail.ItemInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		b.mu.Lock()
		defer b.mu.Unlock()
		b.item.Quantity = in.Quantity
		b.item.LowStockThreshold = in.LowStockThreshold
		b.write(w, http.StatusOK, b.item)
	})
	mux.HandleFunc("POST /api/sales", func(w http.ResponseWriter, r *http.Request) {
		if !b.authorized(w, r) {
			return
		}
		var in retail.SaleInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		b.mu.Lock()
		defer b.mu.Unlock()
		b.item.Quantity -= in.QuantitySold
		b.write(w, http.StatusCreated, retail.Sale{ID: "sale-1", QuantitySold: in.QuantitySold, ActualSellingPrice: in.ActualSellingPrice})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func (b *fakeBackend) authorized(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("Authorization") != "Bearer "+b.token {
		b.write(w, http.StatusUnauthorized, map[string]string{"message": "Not authorized"})
		return false
	}
	return true
}

func (b *fakeBackend) write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(b.t, json.NewEncoder(w).Encode(v))
}

// setupEnv points the CLI at a fresh data folder and the fake backend.
func setupEnv(t *testing.T, backend string) string {
	t.Helper()
	folder := t.TempDir()
	t.Setenv("FOLDER", folder)
	t.Setenv("API_BASE_URL", "http://127.0.0.1:1/api")
	if backend != "" {
		t.Setenv("API_BASE_URL", backend+"/api")
	}
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("STORAGE_BACKEND", "")
	return folder
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := rootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "starose version "+Version+" (build: "+BuildTime+")\n", out)
}

func TestProtectedCommandsRequireLogin(t *testing.T) {
	setupEnv(t, "")

	for _, args := range [][]string{
		{"whoami"},
		{"items", "list"},
		{"items", "delete", "item-w"},
		{"sales", "record", "--item", "item-w"},
		{"expenses", "list"},
		{"reports", "summary"},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, _, err := execute(t, args...)
			require.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
		})
	}
}

func TestSessionPersistsBetweenRuns(t *testing.T) {
	for _, backend := range []string{"file", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			srv := newFakeBackend(t)
			setupEnv(t, srv.URL)
			t.Setenv("STORAGE_BACKEND", backend)

			out, _, err := execute(t, "login", "-e", "admin@starose.test", "-p", "secret")
			require.NoError(t, err)
			assert.Equal(t, "admin@starose.test (admin)\n", out)

			out, _, err = execute(t, "whoami")
			require.NoError(t, err)
			assert.Contains(t, out, "admin@starose.test (admin)")

			_, _, err = execute(t, "logout")
			require.NoError(t, err)

			_, _, err = execute(t, "whoami")
			require.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
		})
	}
}

func TestLoginReadsPasswordFromStdin(t *testing.T) {
	srv := newFakeBackend(t)
	setupEnv(t, srv.URL)

	cmd := rootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader("secret\n"))
	cmd.SetArgs([]string{"login", "--email", "admin@starose.test"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, errOut.String(), "Password: ")
	assert.Equal(t, "admin@starose.test (admin)\n", out.String())
}

func TestLoginFailure(t *testing.T) {
	srv := newFakeBackend(t)
	setupEnv(t, srv.URL)

	_, errOut, err := execute(t, "login", "-e", "admin@starose.test", "-p", "wrong")
	require.Error(t, err)
	assert.Contains(t, errOut, "Invalid credentials")

	_, _, err = execute(t, "whoami")
	require.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
}

func TestExpiredStoredSessionIsCleared(t *testing.T) {
	folder := setupEnv(t, "")

	storage, err := filestore.New(filepath.Join(folder, "session"))
	require.NoError(t, err)
	data, err := json.Marshal(sessiontest.Session(t, time.Now().Add(-time.Minute)))
	require.NoError(t, err)
	require.NoError(t, storage.Set(session.StorageKey, string(data)))

	_, _, err = execute(t, "items", "list")
	require.ErrorIs(t, err, apperrors.ErrNotAuthenticated)

	_, ok, err := storage.Get(session.StorageKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestItemsAndSales(t *testing.T) {
	srv := newFakeBackend(t)
	setupEnv(t, srv.URL)

	_, _, err := execute(t, "login", "-e", "admin@starose.test", "-p", "secret")
	require.NoError(t, err)

	out, _, err := execute(t, "items", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Widget")
	assert.Contains(t, out, "page 1 of 1")

	// 10 -> 7 stays above the threshold of 5
	_, errOut, err := execute(t, "items", "update", "item-w", "--quantity", "7")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Item updated successfully")
	assert.NotContains(t, errOut, "low on stock")

	// 7 -> 6 -> 5 crosses on the second sale only
	_, errOut, err = execute(t, "sales", "record", "--item", "item-w", "--quantity", "1")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Sale recorded successfully!")
	assert.NotContains(t, errOut, "low on stock")

	out, errOut, err = execute(t, "sales", "record", "--item", "item-w", "--quantity", "1", "--payment", "mpesa")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Widget is now low on stock! Only 5 left.")
	assert.Contains(t, out, "5 left")

	_, errOut, err = execute(t, "sales", "record", "--item", "item-w", "--quantity", "1")
	require.NoError(t, err)
	assert.NotContains(t, errOut, "low on stock")
}

func TestExportWritesFile(t *testing.T) {
	api := http.NewServeMux()
	token := sessiontest.Token(t, time.Now().Add(time.Hour))
	api.HandleFunc("POST /api/users/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(session.Session{ID: "user-1", Email: "admin@starose.test", Role: "admin", Token: token}))
	})
	api.HandleFunc("GET /api/reports/export", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "excel", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		_, _ = w.Write([]byte("xlsx-bytes"))
	})
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	setupEnv(t, srv.URL)
	dir := t.TempDir()

	_, _, err := execute(t, "login", "-e", "admin@starose.test", "-p", "secret")
	require.NoError(t, err)

	out, _, err := execute(t, "reports", "export", "-f", "excel", "--from", "2025-06-01", "--to", "2025-06-15", "-o", dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "Starose_Report_2025-06-01_to_2025-06-15.xlsx")
	assert.Equal(t, path+"\n", out)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "xlsx-bytes", string(data))
}

type closeRecorder struct{ closed int }

func (c *closeRecorder) Close() error {
	c.closed++
	return nil
}

func TestCloseAfterRunClosesOnFailure(t *testing.T) {
	closer := &closeRecorder{}
	a := &app{closers: []io.Closer{closer}}

	root := &cobra.Command{Use: appName, SilenceUsage: true, SilenceErrors: true}
	root.AddCommand(&cobra.Command{
		Use:  "fail",
		RunE: func(cmd *cobra.Command, args []string) error { return errors.New("boom") },
	})
	closeAfterRun(root, func() *app { return a })

	root.SetArgs([]string{"fail"})
	require.EqualError(t, root.Execute(), "boom")
	assert.Equal(t, 1, closer.closed)
	assert.Empty(t, a.closers)
}
