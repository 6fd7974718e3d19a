// Package providertest holds a conformance suite every provider.Provider
// implementation runs in its own tests.
package providertest

import (
	"bytes"
	"context"
	"testing"

	"github.com/unkn0wn-root/vtx"
	"github.com/unkn0wn-root/vtx/provider"
)

// Factory builds a fresh, empty provider for one subtest. settle is called
// after every write for stores that apply writes asynchronously; nil is fine.
type Factory func(t *testing.T) (p provider.Provider, settle func())

func RunConformance(t *testing.T, newProvider Factory) {
	t.Helper()
	ctx := context.Background()

	open := func(t *testing.T) (provider.Provider, func()) {
		p, settle := newProvider(t)
		if settle == nil {
			settle = func() {}
		}
		t.Cleanup(func() { _ = p.Close(ctx) })
		return p, settle
	}

	t.Run("MissIsNotError", func(t *testing.T) {
		p, _ := open(t)
		b, ok, err := p.Get(ctx, "absent")
		if err != nil || ok || b != nil {
			t.Fatalf("Get(absent) = %x, %v, %v", b, ok, err)
		}
	})

	t.Run("ByteTransparentRoundTrip", func(t *testing.T) {
		p, settle := open(t)
		want := vtx.Encode([]byte("\x00asm\x0d\x00\x01\x00\xff\x00binary"))
		if ok, err := p.Set(ctx, "k", want, int64(len(want)), 0); err != nil || !ok {
			t.Fatalf("Set: ok=%v err=%v", ok, err)
		}
		settle()
		got, ok, err := p.Get(ctx, "k")
		if err != nil || !ok {
			t.Fatalf("Get: ok=%v err=%v", ok, err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("bytes changed in store: got %x want %x", got, want)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		p, settle := open(t)
		for _, v := range []string{"VTX\x01one", "VTX\x01two"} {
			if _, err := p.Set(ctx, "k", []byte(v), int64(len(v)), 0); err != nil {
				t.Fatalf("Set: %v", err)
			}
			settle()
		}
		got, ok, _ := p.Get(ctx, "k")
		if !ok || string(got) != "VTX\x01two" {
			t.Fatalf("Get after overwrite = %q, %v", got, ok)
		}
	})

	t.Run("DelThenMiss", func(t *testing.T) {
		p, settle := open(t)
		if _, err := p.Set(ctx, "k", []byte("VTX\x01"), 4, 0); err != nil {
			t.Fatalf("Set: %v", err)
		}
		settle()
		if err := p.Del(ctx, "k"); err != nil {
			t.Fatalf("Del: %v", err)
		}
		settle()
		if _, ok, err := p.Get(ctx, "k"); ok || err != nil {
			t.Fatalf("Get after Del: ok=%v err=%v", ok, err)
		}
		if err := p.Del(ctx, "never-set"); err != nil {
			t.Fatalf("Del(missing) must not fail: %v", err)
		}
	})
}
