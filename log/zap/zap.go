// Package zap adapts a *zap.Logger to vtxcache.Logger.
package zap

import (
	"sort"

	"go.uber.org/zap"

	"github.com/unkn0wn-root/vtx/vtxcache"
)

type Logger struct{ L *zap.Logger }

var _ vtxcache.Logger = Logger{}

// New returns an adapter logging under the "vtxcache" name.
func New(l *zap.Logger) Logger { return Logger{L: l.Named("vtxcache")} }

func (z Logger) Debug(msg string, f vtxcache.Fields) { z.L.Debug(msg, fields(f)...) }
func (z Logger) Info(msg string, f vtxcache.Fields)  { z.L.Info(msg, fields(f)...) }
func (z Logger) Warn(msg string, f vtxcache.Fields)  { z.L.Warn(msg, fields(f)...) }
func (z Logger) Error(msg string, f vtxcache.Fields) { z.L.Error(msg, fields(f)...) }

// fields emits keys in sorted order; error values become zap.NamedError.
func fields(f vtxcache.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(f))
	for _, k := range keys {
		if err, ok := f[k].(error); ok {
			out = append(out, zap.NamedError(k, err))
			continue
		}
		out = append(out, zap.Any(k, f[k]))
	}
	return out
}
