package reconcile

import (
	"context"
	"fmt"
	"time"

	"opnsense-manager/core/opnsense"

	"go.uber.org/zap"
)

// Session performs calls against the appliance API.
type Session interface {
	Get(ctx context.Context, call opnsense.Call) (*opnsense.Response, error)
	Add(ctx context.Context, call opnsense.Call) (*opnsense.Response, error)
	Set(ctx context.Context, call opnsense.Call) (*opnsense.Response, error)
	Delete(ctx context.Context, call opnsense.Call) (*opnsense.Response, error)
}

// Observer is notified after every reconciliation attempt.
type Observer interface {
	Observe(ctx context.Context, outcome Outcome) error
}

// EngineOptions configures an Engine.
type EngineOptions struct {
	// CacheTTL is how long search snapshots are reused. Zero disables caching.
	CacheTTL time.Duration
	// Observers receive an Outcome after each reconciliation.
	Observers []Observer
}

// Engine fetches existing objects through a Session and reconciles declarations
// against them. It is safe for concurrent use.
type Engine struct {
	session   Session
	logger    *zap.Logger
	cache     *searchCache
	observers []Observer
}

// NewEngine creates a new Engine.
func NewEngine(session Session, logger *zap.Logger, opts EngineOptions) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		session:   session,
		logger:    logger,
		cache:     newSearchCache(opts.CacheTTL),
		observers: opts.Observers,
	}
}

// Reconcile plans the request and applies the resulting decision.
// Observers are notified whether or not the reconciliation succeeded.
func (e *Engine) Reconcile(ctx context.Context, a Adapter, req Request, opts Options) (*Result, error) {
	start := time.Now()

	res, err := e.Plan(ctx, a, req)
	applied := false
	if err == nil {
		applied, err = e.Apply(ctx, a, res, opts)
	}

	e.notify(ctx, Outcome{
		ObjectType: a.Name(),
		Result:     res,
		Check:      opts.Check,
		Applied:    applied,
		Err:        err,
		Duration:   time.Since(start),
	})

	return res, err
}

// Fetch returns the current snapshot of an object type, from the cache when fresh.
func (e *Engine) Fetch(ctx context.Context, l Lister) (*Snapshot, error) {
	ep := l.Endpoint()
	return e.cache.getOrLoad(ctx, searchKey(ep), func(ctx context.Context) (*Snapshot, error) {
		resp, err := e.session.Get(ctx, opnsense.Call{
			Module:     ep.Module,
			Controller: ep.Controller,
			Command:    ep.Search,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to search %s: %w", l.Name(), err)
		}

		body, err := ParseObject(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to search %s: %w", l.Name(), err)
		}

		raw, _ := body.Lookup(ep.KeyPath)
		coll, err := Ingest(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s at %s: %w", l.Name(), ep.KeyPath, err)
		}

		e.logger.Debug("Fetched existing objects",
			zap.String("type", l.Name()),
			zap.Int("count", len(coll)))

		return &Snapshot{Body: body, Collection: coll}, nil
	})
}

// List returns every existing object of a type, normalized, in document order.
func (e *Engine) List(ctx context.Context, l Lister) ([]Record, error) {
	snap, err := e.Fetch(ctx, l)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(snap.Collection))
	for _, entry := range snap.Collection {
		records = append(records, l.Normalize(entry))
	}
	return records, nil
}

func (e *Engine) notify(ctx context.Context, outcome Outcome) {
	for _, o := range e.observers {
		if err := o.Observe(ctx, outcome); err != nil {
			e.logger.Warn("Observer failed",
				zap.String("type", outcome.ObjectType),
				zap.Error(err))
		}
	}
}

func searchKey(ep Endpoint) string {
	return ep.Module + "/" + ep.Controller + "/" + ep.Search
}

