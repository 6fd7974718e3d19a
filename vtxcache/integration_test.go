package vtxcache_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap/zaptest"

	"github.com/unkn0wn-root/vtx/codec"
	"github.com/unkn0wn-root/vtx/genstore"
	vtxzap "github.com/unkn0wn-root/vtx/log/zap"
	"github.com/unkn0wn-root/vtx/provider/redis"
	"github.com/unkn0wn-root/vtx/provider/ristretto"
	"github.com/unkn0wn-root/vtx/vtxcache"
)

// Two replicas sharing Redis for both entries and generations: an
// invalidation on one replica hides the entry from the other.
func TestReplicasShareGenerations(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	newReplica := func() vtxcache.CAS[[]byte] {
		rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
		p, err := redis.New(redis.Config{Client: rdb})
		if err != nil {
			t.Fatal(err)
		}
		c, err := vtxcache.New[[]byte](vtxcache.Options[[]byte]{
			Namespace: "plugins",
			Provider:  p,
			Codec:     codec.Bytes{},
			GenStore:  genstore.NewRedisGenStore(rdb, "plugins"),
			Logger:    vtxzap.New(zaptest.NewLogger(t)),
		})
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { _ = c.Close(ctx) })
		return c
	}
	a, b := newReplica(), newReplica()

	wasm := []byte("\x00asm\x0d\x00\x01\x00body")
	if err := a.SetWithGen(ctx, "hello", wasm, a.SnapshotGen("hello"), 0); err != nil {
		t.Fatal(err)
	}
	if got, ok, err := b.Get(ctx, "hello"); err != nil || !ok || !bytes.Equal(got, wasm) {
		t.Fatalf("replica b: ok=%v err=%v got=%x", ok, err, got)
	}
	if !mr.Exists("vtx:plugins:hello") {
		t.Fatalf("entry not stored under expected key: %v", mr.Keys())
	}

	if err := b.Invalidate(ctx, "hello"); err != nil {
		t.Fatal(err)
	}
	if a.SnapshotGen("hello") != 1 {
		t.Fatalf("replica a did not observe bump")
	}
	if _, ok, _ := a.Get(ctx, "hello"); ok {
		t.Fatalf("replica a served invalidated component")
	}
}

func TestRistrettoBackedCache(t *testing.T) {
	ctx := context.Background()
	p, err := ristretto.New(ristretto.Config{NumCounters: 1000, MaxCost: 1 << 20, BufferItems: 64})
	if err != nil {
		t.Fatal(err)
	}
	c, err := vtxcache.New[[]byte](vtxcache.Options[[]byte]{
		Namespace: "plugins",
		Provider:  p,
		Codec:     codec.Bytes{},
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close(ctx)

	if err := c.SetWithGen(ctx, "k", []byte("component"), 0, 0); err != nil {
		t.Fatal(err)
	}
	p.Wait()
	if got, ok, err := c.Get(ctx, "k"); err != nil || !ok || string(got) != "component" {
		t.Fatalf("Get: ok=%v err=%v got=%q", ok, err, got)
	}
}
