// Package dashboard runs the operator's workflows against the API: it guards every call
// on the session, turns API failures into notifications and raises the one-time low-stock
// warning after item edits and sales.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/jrsteele09/starose-admin/api"
	apperrors "github.com/jrsteele09/starose-admin/internal/errors"
	"github.com/jrsteele09/starose-admin/metrics"
	"github.com/jrsteele09/starose-admin/notify"
	"github.com/jrsteele09/starose-admin/retail"
	"github.com/jrsteele09/starose-admin/session"
	"github.com/rs/zerolog"
)

// API is the subset of the REST client the workflows need.
type API interface {
	Authenticate(ctx context.Context, email, password string) (session.Session, error)
	ListItems(ctx context.Context, page int, keyword string) (retail.ItemPage, error)
	AllItems(ctx context.Context) ([]retail.Item, error)
	CreateItem(ctx context.Context, in retail.ItemInput) (retail.Item, error)
	UpdateItem(ctx context.Context, id string, in retail.ItemInput) (retail.Item, error)
	DeleteItem(ctx context.Context, id string) error
	ListSales(ctx context.Context, page int, itemName string) (retail.SalePage, error)
	RecordSale(ctx context.Context, in retail.SaleInput) (retail.Sale, error)
	ListExpenses(ctx context.Context, page int) (retail.ExpensePage, error)
	AddExpense(ctx context.Context, in retail.ExpenseInput) (retail.Expense, error)
	Summary(ctx context.Context, r retail.ReportRange) (retail.SummaryReport, error)
	Export(ctx context.Context, r retail.ReportRange, format retail.ExportFormat) (string, []byte, error)
}

var _ API = (*api.Client)(nil)

// Sessions is the session store as seen by the workflows.
type Sessions interface {
	Login(s session.Session) error
	Logout() error
	IsAuthenticated() bool
	CurrentUser() (session.Session, bool)
}

var _ Sessions = (*session.Store)(nil)

// Messages shown for session problems
const (
	MsgSessionExpired = "Session expired. Please log in again."
	MsgUnauthorized   = "Unauthorized. Please log in again."
)

type Service struct {
	sessions Sessions
	api      API
	notifier notify.Notifier
	metrics  *metrics.Metrics
	log      zerolog.Logger
	nowTime  func() time.Time
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithLogger(logger zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.log = logger
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// New wires the workflows. The session store, the API client and the notifier are
// required; a missing one is a construction error.
func New(sessions Sessions, client API, notifier notify.Notifier, options ...ServiceOption) (*Service, error) {
	if sessions == nil {
		return nil, fmt.Errorf("[dashboard.New] session store is required: %w", apperrors.ErrMissingDependency)
	}
	if client == nil {
		return nil, fmt.Errorf("[dashboard.New] API client is required: %w", apperrors.ErrMissingDependency)
	}
	if notifier == nil {
		return nil, fmt.Errorf("[dashboard.New] notifier is required: %w", apperrors.ErrMissingDependency)
	}

	s := &Service{
		sessions: sessions,
		api:      client,
		notifier: notifier,
		log:      zerolog.Nop(),
		nowTime:  time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// With returns a copy of the service that notifies n instead.
func (s *Service) With(n notify.Notifier) *Service {
	c := *s
	c.notifier = n
	return &c
}

// CurrentUser returns the logged-in operator.
func (s *Service) CurrentUser() (session.Session, bool) {
	return s.sessions.CurrentUser()
}

func (s *Service) IsAuthenticated() bool {
	return s.sessions.IsAuthenticated()
}

// guard is the check every protected workflow runs before calling the API.
func (s *Service) guard() error {
	if s.sessions.IsAuthenticated() {
		return nil
	}
	notify.Error(s.notifier, MsgSessionExpired)
	s.forceLogout("session_missing")
	return apperrors.ErrNotAuthenticated
}

// fail sorts an API failure into its bucket. Only an authorization failure touches the
// session; everything else is reported and leaves local state as it was.
func (s *Service) fail(operation string, err error, message string) error {
	switch {
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		notify.Error(s.notifier, MsgUnauthorized)
		s.metrics.APIFailure(operation, metrics.FailureUnauthorized)
		s.forceLogout("unauthorized")
	case apperrors.Is(err, apperrors.ErrNotAuthenticated):
		notify.Error(s.notifier, MsgSessionExpired)
		s.forceLogout("session_missing")
	default:
		notify.Error(s.notifier, "%s", message)
		s.metrics.APIFailure(operation, metrics.FailureOperation)
		s.log.Warn().Err(err).Str("operation", operation).Msg("API operation failed")
		return fmt.Errorf("%s: %w: %w", operation, apperrors.ErrOperation, err)
	}
	return fmt.Errorf("%s: %w", operation, err)
}

func (s *Service) forceLogout(reason string) {
	if err := s.sessions.Logout(); err != nil {
		s.log.Error().Err(err).Str("reason", reason).Msg("Failed to clear session")
	}
	s.metrics.Logout(reason)
}

// invalid reports an input error before any request is sent.
func (s *Service) invalid(err error) error {
	notify.Error(s.notifier, "%s", err.Error())
	return err
}
