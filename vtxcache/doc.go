// Package vtxcache caches VTX containers behind any byte store with
// compare-and-swap (CAS) safety via per-key generations. A read never
// returns a component written before the latest Invalidate of its key.
//
// Components:
//   - Provider: byte store with TTL (Ristretto, BigCache, Redis).
//   - Codec[V]: V <-> payload bytes; codec.Bytes for raw components.
//   - GenStore: generation counter per key. Local by default, Redis for
//     multi-replica deployments.
//
// Every stored value is a VTX v1 container wrapped in a small entry frame
// carrying the generation. Entries that fail any check on read (frame,
// generation, container header, size, payload decode) are deleted and
// reported as a miss.
//
// Keys:
//
//	vtx:<ns>:<key>
//
// CAS pattern:
//
//	obs := cache.SnapshotGen(k) // before loading the component
//	b   := loadComponent(k)
//	_   = cache.SetWithGen(ctx, k, b, obs, 0) // write iff current gen == obs
package vtxcache
