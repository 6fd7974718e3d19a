// Package vtx implements the VTX container format: a 4-byte header
// ("VTX" + version) followed by an opaque WebAssembly component payload.
//
// Layout (v1):
//
//	offset 0 | 3 bytes | magic prefix "VTX" (0x56 0x54 0x58)
//	offset 3 | 1 byte  | version (0x01)
//	offset 4 | N bytes | payload, carried verbatim
//
// There is no length field and no checksum; the payload runs to the end of
// the buffer. Encode and Decode are pure and safe for concurrent use.
//
//	b := vtx.Encode(component)
//	ver, payload, err := vtx.Decode(b) // payload aliases b[4:]
//
// Higher layers live in subpackages: codec (value <-> payload codecs),
// vtxcache (CAS-safe component cache over pluggable providers) and vtxfile
// (.vtx files on disk).
package vtx
