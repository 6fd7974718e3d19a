package vtxcache

import (
	"context"
	"fmt"
	"time"

	"github.com/unkn0wn-root/vtx"
	"github.com/unkn0wn-root/vtx/codec"
	"github.com/unkn0wn-root/vtx/genstore"
	"github.com/unkn0wn-root/vtx/internal/wire"
	"github.com/unkn0wn-root/vtx/provider"
)

type cache[V any] struct {
	ns             string
	provider       provider.Provider
	codec          codec.Codec[V]
	log            Logger
	hooks          Hooks
	enabled        bool
	defaultTTL     time.Duration
	maxPayload     int
	computeSetCost SetCostFunc
	gen            genstore.GenStore
}

func newCache[V any](opts Options[V]) (*cache[V], error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("vtxcache: provider is required")
	}
	if opts.Codec == nil {
		return nil, fmt.Errorf("vtxcache: codec is required")
	}
	if opts.Namespace == "" {
		return nil, fmt.Errorf("vtxcache: namespace is required")
	}

	c := &cache[V]{
		ns:         opts.Namespace,
		provider:   opts.Provider,
		codec:      opts.Codec,
		enabled:    !opts.Disabled,
		maxPayload: opts.MaxPayload,
	}

	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	c.defaultTTL = coalesce(opts.DefaultTTL, defaultTTL)

	if opts.ComputeSetCost != nil {
		c.computeSetCost = opts.ComputeSetCost
	} else {
		c.computeSetCost = func(_ string, raw []byte) int64 { return int64(len(raw)) }
	}

	if opts.GenStore != nil {
		c.gen = opts.GenStore
	} else {
		c.gen = genstore.NewLocalGenStore(
			coalesce(opts.CleanupInterval, defaultSweep),
			coalesce(opts.GenRetention, defaultGenRetention),
		)
	}
	return c, nil
}

func (c *cache[V]) Enabled() bool { return c.enabled }

func (c *cache[V]) Close(ctx context.Context) error {
	// gen store first (best effort)
	if c.gen != nil {
		_ = c.gen.Close(ctx)
	}
	if c.provider != nil {
		return c.provider.Close(ctx)
	}
	return nil
}

// Get returns the cached value for key. Entries that fail validation are
// deleted and reported as a miss; only provider errors are returned.
// With codec.Bytes the returned slice may alias provider memory.
func (c *cache[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V
	if !c.enabled {
		return zero, false, nil
	}
	k := c.storageKey(key)
	raw, ok, err := c.provider.Get(ctx, k)
	if err != nil || !ok {
		return zero, false, err
	}
	gen, container, err := wire.DecodeEntry(raw)
	if err != nil {
		c.selfHeal(ctx, k, ReasonCorrupt, err)
		return zero, false, nil
	}
	if gen != c.snapshotGen(ctx, k) {
		c.selfHeal(ctx, k, ReasonGenMismatch, nil)
		return zero, false, nil
	}
	_, payload, err := vtx.Decode(container)
	if err != nil {
		c.selfHeal(ctx, k, headerReason(err), err)
		return zero, false, nil
	}
	if c.maxPayload > 0 && len(payload) > c.maxPayload {
		c.selfHeal(ctx, k, ReasonTooLarge, &codec.TooLargeError{Size: len(payload), Max: c.maxPayload})
		return zero, false, nil
	}
	v, err := c.codec.Decode(payload)
	if err != nil {
		c.selfHeal(ctx, k, ReasonValueDecode, err)
		return zero, false, nil
	}
	return v, true, nil
}

func (c *cache[V]) SetWithGen(ctx context.Context, key string, value V, observedGen uint64, ttl time.Duration) error {
	if !c.enabled {
		return nil
	}
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	k := c.storageKey(key)
	if c.snapshotGen(ctx, k) != observedGen {
		// generation moved; skip stale write
		c.log.Debug("SetWithGen skipped (gen mismatch)", Fields{"key": key, "obs": observedGen})
		return nil
	}
	payload, err := c.codec.Encode(value)
	if err != nil {
		return fmt.Errorf("vtxcache: encode %q: %w", key, err)
	}
	entry, err := wire.EncodeEntry(observedGen, vtx.Encode(payload))
	if err != nil {
		return fmt.Errorf("vtxcache: frame %q: %w", key, err)
	}
	ok, err := c.provider.Set(ctx, k, entry, c.computeSetCost(k, entry), ttl)
	if err != nil {
		return err
	}
	if !ok {
		c.hooks.ProviderSetRejected(k)
		c.log.Debug("SetWithGen rejected by provider (pressure)", Fields{"key": key})
	}
	return nil
}

// Invalidate bumps the key's generation and deletes its entry. It fails
// only when both steps fail; either one alone is enough to hide the old
// entry from readers.
func (c *cache[V]) Invalidate(ctx context.Context, key string) error {
	if !c.enabled {
		return nil
	}
	k := c.storageKey(key)
	newGen, bumpErr := c.gen.Bump(ctx, k)
	if bumpErr != nil {
		c.hooks.GenBumpError(k, bumpErr)
		c.log.Error("gen bump error", Fields{"key": k, "err": bumpErr})
	}
	delErr := c.provider.Del(ctx, k)
	if bumpErr != nil && delErr != nil {
		c.hooks.InvalidateOutage(key, bumpErr, delErr)
		return &InvalidateError{Key: key, BumpErr: bumpErr, DelErr: delErr}
	}
	c.log.Debug("invalidated key", Fields{"key": key, "newGen": newGen})
	return nil
}

func (c *cache[V]) SnapshotGen(key string) uint64 {
	return c.snapshotGen(context.Background(), c.storageKey(key))
}

func (c *cache[V]) SnapshotGens(keys []string) map[string]uint64 {
	storage := make([]string, len(keys))
	for i, k := range keys {
		storage[i] = c.storageKey(k)
	}
	m, err := c.gen.SnapshotMany(context.Background(), storage)
	if err != nil {
		c.hooks.GenSnapshotError(len(keys), err)
		// conservative fallback: one by one
		out := make(map[string]uint64, len(keys))
		for _, k := range keys {
			out[k] = c.SnapshotGen(k)
		}
		return out
	}
	out := make(map[string]uint64, len(keys))
	for _, k := range keys {
		out[k] = m[c.storageKey(k)]
	}
	return out
}

func (c *cache[V]) snapshotGen(ctx context.Context, storageKey string) uint64 {
	g, err := c.gen.Snapshot(ctx, storageKey)
	if err != nil {
		// Conservative: treat as 0 so CAS writes will skip; reads will self-heal
		c.hooks.GenSnapshotError(1, err)
		c.log.Warn("gen snapshot error", Fields{"key": storageKey, "err": err})
		return 0
	}
	return g
}

func (c *cache[V]) selfHeal(ctx context.Context, storageKey, reason string, cause error) {
	_ = c.provider.Del(ctx, storageKey)
	c.hooks.SelfHeal(storageKey, reason)
	f := Fields{"key": storageKey, "reason": reason}
	if cause != nil {
		f["err"] = cause
	}
	c.log.Debug("dropped invalid entry", f)
}

func (c *cache[V]) storageKey(userKey string) string {
	// isolate by namespace
	return "vtx:" + c.ns + ":" + userKey
}
