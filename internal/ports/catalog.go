package ports

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// The channel catalog is an external collaborator whose API shape is versioned
// independently of this module. Each contract below is split into a minimal
// interface every backend MUST implement and optional richer shapes discovered
// at call time by type assertion. A missing shape is an expected, cheap miss;
// callers fall back in a fixed priority order, richest shape first.

// CatalogOpener instantiates a handle onto the catalog at dir and loads its
// current contents. Handles MUST NOT be reused across negotiations; callers
// open fresh per attempt.
type CatalogOpener interface {
	Open(ctx context.Context, dir string) (Catalog, error)
}

// LoggedOpener is the richer opener shape, preferred when present so the
// backend can report through the caller's logger.
type LoggedOpener interface {
	OpenLogged(ctx context.Context, dir string, logger *log.Entry) (Catalog, error)
}

// Catalog is the minimal loaded-collection contract.
type Catalog interface {
	// Find returns the named channel. MUST return types.ErrNotFound if the
	// channel is absent. Whether inactive entries are visible here is
	// shape-dependent; see InactiveFinder for the explicit form.
	Find(ctx context.Context, name string) (Resource, error)

	// Persist writes the catalog's current state back to its backing store.
	// MAY fail (wrapped in types.ErrPersist), e.g. on a read-only medium;
	// in-memory state is unaffected by a failed write.
	Persist(ctx context.Context) error
}

// InactiveFinder is the richer lookup shape: the includeInactive flag makes
// visibility of deactivated entries explicit instead of shape-dependent.
type InactiveFinder interface {
	FindAny(ctx context.Context, name string, includeInactive bool) (Resource, error)
}

// ActivationSetter is the collection-level activation shape. The catalog
// updates both the flag and any bookkeeping of its own in one step.
type ActivationSetter interface {
	SetResourceActive(ctx context.Context, r Resource, active bool) error
}

// Resource is an opaque handle to one catalog entry, owned by its catalog for
// the duration of a single negotiation.
type Resource interface {
	ResourceName() string
}

// ActiveReporter is the optional per-entry read shape.
type ActiveReporter interface {
	IsActive() bool
}

// ActiveSetter is the optional per-entry write shape.
type ActiveSetter interface {
	SetActive(active bool)
}
