package ristretto

import (
	"context"
	"testing"

	"github.com/unkn0wn-root/vtx/provider"
	"github.com/unkn0wn-root/vtx/provider/providertest"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := New(Config{NumCounters: 1000, MaxCost: 1 << 20, BufferItems: 64})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func TestConformance(t *testing.T) {
	providertest.RunConformance(t, func(t *testing.T) (provider.Provider, func()) {
		p := newTestProvider(t)
		return p, p.Wait
	})
}

func TestInvalidConfig(t *testing.T) {
	for _, cfg := range []Config{
		{},
		{NumCounters: 10, MaxCost: 10},
		{NumCounters: 10, BufferItems: 64},
	} {
		if _, err := New(cfg); err == nil {
			t.Fatalf("expected error for %+v", cfg)
		}
	}
}

func TestUnexpectedShapeDropped(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)
	defer p.Close(ctx)

	p.c.Set("k", "not-bytes", 1)
	p.Wait()
	if _, ok, err := p.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("expected miss for foreign value, ok=%v err=%v", ok, err)
	}
}
