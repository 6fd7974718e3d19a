// Package codec converts caller values to and from the payload bytes
// carried inside a VTX container.
//
// Bytes is the natural choice for raw WebAssembly components. The
// structured codecs (JSON, CBOR, Msgpack, Protobuf) exist for callers that
// ship component bundles or metadata alongside the binary. Container frames
// any inner codec's output as a complete VTX container.
package codec

// Codec encodes/decodes values V to []byte.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
