// Package logrus adapts a *logrus.Entry to vtxcache.Logger.
package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/unkn0wn-root/vtx/vtxcache"
)

type Logger struct{ E *logrus.Entry }

var _ vtxcache.Logger = Logger{}

// New wraps l with a component=vtxcache field.
func New(l *logrus.Logger) Logger {
	return Logger{E: l.WithField("component", "vtxcache")}
}

func (l Logger) Debug(msg string, f vtxcache.Fields) { l.with(f).Debug(msg) }
func (l Logger) Info(msg string, f vtxcache.Fields)  { l.with(f).Info(msg) }
func (l Logger) Warn(msg string, f vtxcache.Fields)  { l.with(f).Warn(msg) }
func (l Logger) Error(msg string, f vtxcache.Fields) { l.with(f).Error(msg) }

func (l Logger) with(f vtxcache.Fields) *logrus.Entry {
	if len(f) == 0 {
		return l.E
	}
	return l.E.WithFields(logrus.Fields(f))
}
