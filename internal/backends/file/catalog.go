// Package file implements the channel catalog as a gzipped JSON file on disk,
// the default backend. It exposes the full richer shape set: logged opener,
// include-inactive lookup, collection-level activation and per-entry accessors.
package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"
	log "github.com/sirupsen/logrus"

	"vergate/internal/ports"
	"vergate/internal/types"
)

// CatalogFileName is the compressed catalog database inside the catalog dir.
const CatalogFileName = "catalog.json.gz"

type Opener struct{}

func (o Opener) Open(ctx context.Context, dir string) (ports.Catalog, error) {
	return o.OpenLogged(ctx, dir, log.NewEntry(log.StandardLogger()))
}

func (Opener) OpenLogged(_ context.Context, dir string, logger *log.Entry) (ports.Catalog, error) {
	cat := &Catalog{dir: dir, log: logger}
	if err := cat.read(); err != nil {
		return nil, types.Err(types.ErrCatalogAccess, err, "read catalog in %s", dir)
	}
	return cat, nil
}

// Catalog holds the decoded channel records for the duration of one
// negotiation. Handles returned by lookups stay owned by this catalog.
type Catalog struct {
	dir      string
	log      *log.Entry
	channels []*channel
}

type channel struct {
	rec types.Channel
}

func (c *channel) ResourceName() string  { return c.rec.Name }
func (c *channel) IsActive() bool        { return c.rec.Active }
func (c *channel) SetActive(active bool) { c.rec.Active = active }

func (c *Catalog) read() error {
	f, err := os.Open(filepath.Join(c.dir, CatalogFileName))
	if errors.Is(err, os.ErrNotExist) {
		c.log.WithField("dir", c.dir).Debug("no catalog file, starting empty")
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()
	zr, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer zr.Close()
	var recs []types.Channel
	if err := json.NewDecoder(zr).Decode(&recs); err != nil {
		return err
	}
	c.channels = make([]*channel, 0, len(recs))
	for i := range recs {
		c.channels = append(c.channels, &channel{rec: recs[i]})
	}
	return nil
}

// Find returns active channels only, the historical default visibility.
func (c *Catalog) Find(ctx context.Context, name string) (ports.Resource, error) {
	return c.FindAny(ctx, name, false)
}

func (c *Catalog) FindAny(_ context.Context, name string, includeInactive bool) (ports.Resource, error) {
	for _, ch := range c.channels {
		if ch.rec.Name != name {
			continue
		}
		if !ch.rec.Active && !includeInactive {
			break
		}
		return ch, nil
	}
	return nil, types.Err(types.ErrNotFound, nil, "channel %q", name)
}

// SetResourceActive flips the flag on a handle this catalog owns.
func (c *Catalog) SetResourceActive(_ context.Context, r ports.Resource, active bool) error {
	ch, ok := r.(*channel)
	if !ok {
		return types.Err(types.ErrStructural, nil, "foreign resource handle %T", r)
	}
	ch.rec.Active = active
	return nil
}

func (c *Catalog) Persist(_ context.Context) error {
	recs := make([]types.Channel, 0, len(c.channels))
	for _, ch := range c.channels {
		recs = append(recs, ch.rec)
	}
	if err := WriteChannels(c.dir, recs); err != nil {
		return types.Err(types.ErrPersist, err, "write catalog in %s", c.dir)
	}
	return nil
}

// WriteChannels writes a complete catalog database, replacing any existing
// one. Also used to seed catalogs outside of a negotiation.
func WriteChannels(dir string, recs []types.Channel) error {
	f, err := os.Create(filepath.Join(dir, CatalogFileName))
	if err != nil {
		return err
	}
	zw := gzip.NewWriter(f)
	if err := json.NewEncoder(zw).Encode(recs); err != nil {
		zw.Close()
		f.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
