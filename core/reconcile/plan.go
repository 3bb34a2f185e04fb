package reconcile

import (
	"context"
	"fmt"

	"opnsense-manager/core/opnsense"

	"go.uber.org/zap"
)

// Plan validates the request, fetches the existing objects and decides what to do.
// It does NOT execute anything; use Apply for that.
func (e *Engine) Plan(ctx context.Context, a Adapter, req Request) (*Result, error) {
	if err := CheckRequest(req); err != nil {
		return nil, err
	}
	if req.State == StatePresent {
		if err := a.Validate(req.Desired); err != nil {
			return nil, err
		}
	}

	snap, err := e.Fetch(ctx, a)
	if err != nil {
		return nil, err
	}

	if rr, ok := a.(ReferenceResolver); ok && req.State == StatePresent {
		resolved, err := rr.ResolveReferences(req.Desired, snap)
		if err != nil {
			return nil, err
		}
		req.Desired = resolved
	}

	res := Decide(snap.Collection, a, req)
	res.snapshot = snap

	if e.logger.Core().Enabled(zap.DebugLevel) {
		if n := CountMatches(snap.Collection, a, req.Desired, req.MatchFields); n > 1 {
			e.logger.Debug("Declaration matches several objects, using the first",
				zap.String("type", a.Name()),
				zap.Strings("match_fields", req.MatchFields),
				zap.Int("matches", n),
				zap.String("uuid", res.Existing.UUID()))
		}
	}

	return res, nil
}

// Apply executes the planned decision followed by the object type's reload call.
// Nothing is executed in check mode or when the decision is NoChange.
// It reports whether a mutation was executed.
func (e *Engine) Apply(ctx context.Context, a Adapter, res *Result, opts Options) (bool, error) {
	if opts.Check || !res.Decision.Mutates() {
		return false, nil
	}

	ep := a.Endpoint()
	call := opnsense.Call{Module: ep.Module, Controller: ep.Controller}

	switch res.Decision {
	case Create, Update:
		payload, err := a.Payload(res.Desired, res.snapshot)
		if err != nil {
			return false, fmt.Errorf("failed to encode %s: %w", a.Name(), err)
		}
		call.Data = map[string]any{ep.PayloadKey(): payload}

		if res.Decision == Create {
			call.Command = ep.Add
			_, err = e.session.Add(ctx, call)
		} else {
			id, idErr := existingID(a, res)
			if idErr != nil {
				return false, idErr
			}
			call.Command = ep.Set
			call.Params = []string{id}
			_, err = e.session.Set(ctx, call)
		}
		if err != nil {
			return false, fmt.Errorf("failed to %s %s: %w", res.Decision, a.Name(), err)
		}
	case Delete:
		id, err := existingID(a, res)
		if err != nil {
			return false, err
		}
		call.Command = ep.Delete
		call.Params = []string{id}
		if _, err := e.session.Delete(ctx, call); err != nil {
			return false, fmt.Errorf("failed to delete %s: %w", a.Name(), err)
		}
	}

	e.cache.invalidate(searchKey(ep))

	e.logger.Info("Applied change",
		zap.String("type", a.Name()),
		zap.String("decision", string(res.Decision)),
		zap.String("uuid", res.Existing.UUID()))

	if err := e.reload(ctx, ep); err != nil {
		return true, err
	}
	return true, nil
}

func (e *Engine) reload(ctx context.Context, ep Endpoint) error {
	if ep.ReloadCommand == "" {
		return nil
	}
	controller := ep.ReloadController
	if controller == "" {
		controller = ep.Controller
	}
	if _, err := e.session.Set(ctx, opnsense.Call{
		Module:     ep.Module,
		Controller: controller,
		Command:    ep.ReloadCommand,
	}); err != nil {
		return fmt.Errorf("failed to reload %s/%s: %w", ep.Module, controller, err)
	}
	return nil
}

func existingID(a Adapter, res *Result) (string, error) {
	id := res.Existing.UUID()
	if id == "" {
		return "", fmt.Errorf("matched %s has no uuid", a.Name())
	}
	return id, nil
}
