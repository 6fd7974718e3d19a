package codec

import (
	"fmt"

	"github.com/unkn0wn-root/vtx"
)

// Container wraps Inner so that Encode produces a full VTX v1 container and
// Decode accepts one. Header errors from Decode are the vtx taxonomy
// (vtx.ErrTooShort, vtx.ErrInvalidPrefix, *vtx.UnsupportedVersionError)
// wrapped with context, so errors.Is / errors.As keep working.
type Container[V any] struct {
	Inner Codec[V]
}

var _ Codec[[]byte] = Container[[]byte]{}

// NewContainer returns a Container around inner.
func NewContainer[V any](inner Codec[V]) Container[V] {
	return Container[V]{Inner: inner}
}

// Bytes passes component binaries through untouched. Decode returns b
// itself, so a Container[[]byte] over Bytes decodes without copying.
type Bytes struct{}

func (Bytes) Encode(b []byte) ([]byte, error) { return b, nil }
func (Bytes) Decode(b []byte) ([]byte, error) { return b, nil }

// Component is a Container over raw component bytes.
func Component() Container[[]byte] {
	return Container[[]byte]{Inner: Bytes{}}
}

func (c Container[V]) Encode(v V) ([]byte, error) {
	payload, err := c.Inner.Encode(v)
	if err != nil {
		return nil, err
	}
	return vtx.Encode(payload), nil
}

// Decode validates the header and hands the payload to Inner. With Bytes
// as Inner the result aliases b.
func (c Container[V]) Decode(b []byte) (V, error) {
	var zero V
	_, payload, err := vtx.Decode(b)
	if err != nil {
		return zero, fmt.Errorf("container header: %w", err)
	}
	return c.Inner.Decode(payload)
}
