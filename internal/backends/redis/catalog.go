// Package redis implements the channel catalog on a Redis keyspace. It
// deliberately exposes only the minimal contract shapes (opener, lookup,
// persist) and hands out bare channel records, the way legacy deployments do;
// callers reach the records' Active field through their last-resort shape.
package redis

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"vergate/internal/ports"
	"vergate/internal/types"
)

const channelKeyTemplate = "_vergate_chan_%s_%s"

type Opener struct {
	cli *redis.Client
}

func NewOpener(cli *redis.Client) *Opener {
	return &Opener{cli: cli}
}

// Open loads every channel record under the dir namespace. The location is a
// key namespace here, not a filesystem path.
func (o *Opener) Open(ctx context.Context, dir string) (ports.Catalog, error) {
	out := o.cli.Keys(ctx, channelKey(dir, "*"))
	if out.Err() != nil {
		return nil, types.Err(types.ErrCatalogAccess, out.Err(), "list channels in %q", dir)
	}
	cat := &Catalog{cli: o.cli, ns: dir}
	for _, key := range out.Val() {
		raw := o.cli.Get(ctx, key)
		if raw.Err() != nil {
			return nil, types.Err(types.ErrCatalogAccess, raw.Err(), "read %s", key)
		}
		var rec types.Channel
		if err := json.Unmarshal([]byte(raw.Val()), &rec); err != nil {
			return nil, types.Err(types.ErrCatalogAccess, err, "decode %s", key)
		}
		cat.channels = append(cat.channels, &rec)
	}
	return cat, nil
}

type Catalog struct {
	cli      *redis.Client
	ns       string
	channels []*types.Channel
}

// Find returns the named channel regardless of its activation state; this
// shape keeps all records visible.
func (c *Catalog) Find(_ context.Context, name string) (ports.Resource, error) {
	for _, rec := range c.channels {
		if rec.Name == name {
			return rec, nil
		}
	}
	return nil, types.Err(types.ErrNotFound, nil, "channel %q", name)
}

func (c *Catalog) Persist(ctx context.Context) error {
	for _, rec := range c.channels {
		payload, err := json.Marshal(rec)
		if err != nil {
			return types.Err(types.ErrPersist, err, "encode channel %q", rec.Name)
		}
		out := c.cli.Set(ctx, channelKey(c.ns, rec.Name), string(payload), 0)
		if out.Err() != nil {
			return types.Err(types.ErrPersist, out.Err(), "write channel %q", rec.Name)
		}
	}
	return nil
}

func channelKey(ns, name string) string {
	return fmt.Sprintf(channelKeyTemplate, ns, name)
}
