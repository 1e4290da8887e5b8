package adapter

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"vergate/internal/ports"
	"vergate/internal/types"
)

// Adapter negotiates activation state with a channel catalog whose API shape
// is versioned independently of this module. Every decision point probes for
// the richest available shape and falls back in a fixed priority order; the
// first structurally valid shape wins and later shapes are never consulted.
type Adapter struct {
	opener ports.CatalogOpener
	log    *log.Entry
}

func New(opener ports.CatalogOpener, logger *log.Entry) *Adapter {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &Adapter{opener: opener, log: logger}
}

// NegotiateActivation applies the desired activation state to the named
// channel in the catalog at dir. The catalog handle is opened fresh and
// discarded afterwards; it is never cached across calls.
//
// Either the flag is changed and the catalog's in-memory handle reflects it,
// or nothing is changed. A failed persist after a successful flip is reported
// as AppliedNotPersisted, never unwound.
func (a *Adapter) NegotiateActivation(ctx context.Context, name string, active bool, dir string) types.Outcome {
	if dir == "" {
		return types.Failed(types.ErrNoLocation)
	}
	cat, err := a.open(ctx, dir)
	if err != nil {
		return types.Failed(err)
	}
	// About to mutate: the default lookup visibility (active entries only in
	// some shapes) is the right one here.
	res, err := a.find(ctx, cat, name, false)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return types.NotFound()
		}
		return types.Failed(err)
	}
	if err := a.apply(ctx, cat, res, active); err != nil {
		return types.Failed(err)
	}
	if err := cat.Persist(ctx); err != nil {
		a.log.WithError(err).Debug("catalog persist failed (read-only medium?)")
		return types.AppliedNotPersisted()
	}
	return types.Applied()
}

// QueryActive reports whether the named channel is currently active.
//
// Fail open: whenever the state cannot be determined (missing location, open
// or lookup error, absent channel, no readable shape) the channel is reported
// active together with the causing error, so a caller is never silently kept
// from showing a warning the user should see.
func (a *Adapter) QueryActive(ctx context.Context, name, dir string) (bool, error) {
	if dir == "" {
		return true, types.ErrNoLocation
	}
	cat, err := a.open(ctx, dir)
	if err != nil {
		return true, err
	}
	res, err := a.find(ctx, cat, name, true)
	if err != nil {
		return true, err
	}
	return readActive(res)
}

// open probes the richer opener shape first.
func (a *Adapter) open(ctx context.Context, dir string) (ports.Catalog, error) {
	if lo, ok := a.opener.(ports.LoggedOpener); ok {
		return lo.OpenLogged(ctx, dir, a.log)
	}
	return a.opener.Open(ctx, dir)
}

// find probes the richer lookup shape first.
func (a *Adapter) find(ctx context.Context, cat ports.Catalog, name string, includeInactive bool) (ports.Resource, error) {
	if f, ok := cat.(ports.InactiveFinder); ok {
		return f.FindAny(ctx, name, includeInactive)
	}
	return cat.Find(ctx, name)
}

// apply walks the fixed activation chain. A chain exhausted without any shape
// matching is a compatibility defect, surfaced as ErrStructural.
func (a *Adapter) apply(ctx context.Context, cat ports.Catalog, r ports.Resource, active bool) error {
	for _, probe := range applyChain {
		handled, err := probe(ctx, cat, r, active)
		if err != nil {
			return err
		}
		if handled {
			return nil
		}
	}
	return types.Err(types.ErrStructural, nil, "channel %q exposes no activation shape", r.ResourceName())
}
