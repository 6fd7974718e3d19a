package slog

import (
	"bytes"
	stdslog "log/slog"
	"strings"
	"testing"

	"github.com/unkn0wn-root/vtx/vtxcache"
)

func TestTextOutput(t *testing.T) {
	var buf bytes.Buffer
	h := stdslog.NewTextHandler(&buf, &stdslog.HandlerOptions{Level: stdslog.LevelInfo})
	l := Logger{L: stdslog.New(h)}

	l.Debug("hidden", vtxcache.Fields{"a": 1})
	l.Warn("gen snapshot error", vtxcache.Fields{"key": "vtx:ns:k", "err": "down"})

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line emitted below level: %q", out)
	}
	if !strings.Contains(out, `level=WARN msg="gen snapshot error" err=down key=vtx:ns:k`) {
		t.Fatalf("unexpected output %q", out)
	}
}
