package objects

import (
	"context"
	"errors"

	"opnsense-manager/core/history"
	"opnsense-manager/core/reconcile"
	"opnsense-manager/core/validate"

	"go.uber.org/zap"
)

// ErrHistoryDisabled is returned by History when no ledger is configured.
var ErrHistoryDisabled = errors.New("change history is disabled")

// Service turns declarations into engine calls.
type Service struct {
	engine   *reconcile.Engine
	registry *reconcile.Registry
	history  *history.Recorder
	logger   *zap.Logger
}

// NewService creates a new service. The history recorder may be nil.
func NewService(engine *reconcile.Engine, registry *reconcile.Registry, recorder *history.Recorder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{engine: engine, registry: registry, history: recorder, logger: logger}
}

// Types returns the registered object type names.
func (s *Service) Types() []string {
	return s.registry.Names()
}

// Request resolves the adapter of a declaration and builds the typed request.
func (s *Service) Request(d Declaration) (reconcile.Adapter, reconcile.Request, error) {
	adapter, err := s.registry.Adapter(d.Type)
	if err != nil {
		return nil, reconcile.Request{}, err
	}

	state, err := reconcile.ParseState(d.State)
	if err != nil {
		return nil, reconcile.Request{}, validate.NewValidationError(err.Error())
	}

	desired, err := adapter.Desired(d.Config)
	if err != nil {
		return nil, reconcile.Request{}, err
	}

	match := d.MatchFields
	if len(match) == 0 {
		match = adapter.DefaultMatchFields()
	}

	return adapter, reconcile.Request{Desired: desired, MatchFields: match, State: state}, nil
}

// Reconcile plans and, unless opts.Check is set, applies one declaration.
func (s *Service) Reconcile(ctx context.Context, d Declaration, opts reconcile.Options) (*reconcile.Result, error) {
	adapter, req, err := s.Request(d)
	if err != nil {
		return nil, err
	}
	return s.engine.Reconcile(ctx, adapter, req, opts)
}

// List returns every existing object of a type, normalized.
func (s *Service) List(ctx context.Context, objectType string) ([]reconcile.Record, error) {
	lister, err := s.registry.Lister(objectType)
	if err != nil {
		return nil, err
	}
	return s.engine.List(ctx, lister)
}

// History returns recorded changes, newest first.
func (s *Service) History(ctx context.Context, q history.Query) ([]history.Change, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	return s.history.Recent(ctx, q)
}
