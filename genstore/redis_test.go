package genstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, redis.UniversalClient) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, rdb
}

func TestRedisSnapshotAndBump(t *testing.T) {
	ctx := context.Background()
	_, rdb := newMiniRedis(t)
	s := NewRedisGenStore(rdb, "plugins")
	t.Cleanup(func() { _ = s.Close(ctx) })

	if g, err := s.Snapshot(ctx, "k"); err != nil || g != 0 {
		t.Fatalf("missing key: g=%d err=%v", g, err)
	}
	for want := uint64(1); want <= 2; want++ {
		g, err := s.Bump(ctx, "k")
		if err != nil || g != want {
			t.Fatalf("Bump = %d, %v; want %d", g, err, want)
		}
	}
	if g, err := s.Snapshot(ctx, "k"); err != nil || g != 2 {
		t.Fatalf("Snapshot = %d, %v; want 2", g, err)
	}
}

func TestRedisSnapshotMany(t *testing.T) {
	ctx := context.Background()
	_, rdb := newMiniRedis(t)
	s := NewRedisGenStore(rdb, "plugins")
	t.Cleanup(func() { _ = s.Close(ctx) })

	if _, err := s.Bump(ctx, "b"); err != nil {
		t.Fatal(err)
	}
	got, err := s.SnapshotMany(ctx, []string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	if got["a"] != 0 || got["b"] != 1 || len(got) != 2 {
		t.Fatalf("got %v", got)
	}
	if got, err := s.SnapshotMany(ctx, nil); err != nil || len(got) != 0 {
		t.Fatalf("empty input: got %v err %v", got, err)
	}
}

func TestRedisKeysAreNamespaced(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newMiniRedis(t)
	s := NewRedisGenStore(rdb, "plugins")
	t.Cleanup(func() { _ = s.Close(ctx) })

	if _, err := s.Bump(ctx, "vtx:plugins:k"); err != nil {
		t.Fatal(err)
	}
	if !mr.Exists("vtxgen:plugins:vtx:plugins:k") {
		t.Fatalf("expected namespaced generation key, have %v", mr.Keys())
	}
}

func TestRedisBumpWithTTL(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newMiniRedis(t)
	s := NewRedisGenStoreWithTTL(rdb, "plugins", time.Minute)
	t.Cleanup(func() { _ = s.Close(ctx) })

	if g, err := s.Bump(ctx, "k"); err != nil || g != 1 {
		t.Fatalf("Bump = %d, %v", g, err)
	}
	if ttl := mr.TTL("vtxgen:plugins:k"); ttl != time.Minute {
		t.Fatalf("TTL = %v, want 1m", ttl)
	}

	mr.FastForward(2 * time.Minute)
	if g, err := s.Snapshot(ctx, "k"); err != nil || g != 0 {
		t.Fatalf("expired gen should read 0, got %d err %v", g, err)
	}
}

func TestRedisParseError(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newMiniRedis(t)
	s := NewRedisGenStore(rdb, "plugins")
	t.Cleanup(func() { _ = s.Close(ctx) })

	if err := mr.Set("vtxgen:plugins:k", "not-a-number"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Snapshot(ctx, "k"); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := s.SnapshotMany(ctx, []string{"k"}); err == nil {
		t.Fatalf("expected parse error from SnapshotMany")
	}
}
