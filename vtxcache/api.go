package vtxcache

import (
	"context"
	"time"

	"github.com/unkn0wn-root/vtx/codec"
	"github.com/unkn0wn-root/vtx/genstore"
	"github.com/unkn0wn-root/vtx/provider"
)

// Fields is a minimal structured field map for logs.
type Fields map[string]any

// Logger is a tiny leveled logger. Provide an adapter around your logging
// stack (see log/zap, log/logrus, log/slog). nil in Options disables logging.
type Logger interface {
	Debug(msg string, f Fields)
	Info(msg string, f Fields)
	Warn(msg string, f Fields)
	Error(msg string, f Fields)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, Fields) {}
func (NopLogger) Info(string, Fields)  {}
func (NopLogger) Warn(string, Fields)  {}
func (NopLogger) Error(string, Fields) {}

// SetCostFunc returns the provider cost of storing raw under key.
type SetCostFunc func(key string, raw []byte) int64

// CAS is the provider-agnostic component cache API.
// V is the caller's value type; []byte with codec.Bytes for raw components.
type CAS[V any] interface {
	Enabled() bool
	Close(context.Context) error

	Get(ctx context.Context, key string) (v V, ok bool, err error)
	SetWithGen(ctx context.Context, key string, value V, observedGen uint64, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error

	// Generation snapshots (for CAS)
	SnapshotGen(key string) uint64
	SnapshotGens(keys []string) map[string]uint64
}

// Options tune the cache. Namespace, Provider and Codec are required.
type Options[V any] struct {
	Namespace string // e.g. "plugins:prod"
	Provider  provider.Provider
	Codec     codec.Codec[V] // payload codec; the VTX header is added by the cache

	Logger          Logger            // nil => NopLogger
	Hooks           Hooks             // nil => NopHooks
	DefaultTTL      time.Duration     // 0 => 10m
	CleanupInterval time.Duration     // 0 => 1h
	GenRetention    time.Duration     // 0 => 30d
	MaxPayload      int               // 0 => unlimited; larger payloads are dropped on read
	Disabled        bool              // default false (enabled)
	ComputeSetCost  SetCostFunc       // default len(raw)
	GenStore        genstore.GenStore // nil => LocalGenStore (in-process)
}

func New[V any](opts Options[V]) (CAS[V], error) {
	return newCache[V](opts)
}
