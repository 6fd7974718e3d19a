package codec

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"
	"google.golang.org/protobuf/proto"

	"github.com/unkn0wn-root/vtx"
)

// ErrNestedContainer is returned by the structured codecs when the bytes
// handed to Decode still carry a VTX header. That is a whole container
// passed where its payload was expected; msgpack would otherwise read the
// 'V' as a fixint and succeed.
var ErrNestedContainer = errors.New("codec: payload is a vtx container; decode the container first")

func rejectContainer(b []byte) error {
	if vtx.HasPrefix(b) {
		return ErrNestedContainer
	}
	return nil
}

// JSON encodes component metadata with encoding/json. The zero value is
// ready to use.
type JSON[V any] struct{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }
func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	if err := rejectContainer(b); err != nil {
		return v, err
	}
	err := json.Unmarshal(b, &v)
	return v, err
}

// CBOR encodes with fxamacker/cbor. The zero value is NOT ready to use;
// construct with NewCBOR or MustCBOR.
//
// Deterministic mode uses RFC 8949 Core Deterministic encoding so equal
// bundles produce byte-identical containers.
type CBOR[V any] struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// NewCBOR constructs a CBOR codec. Times are encoded as RFC3339Nano and
// duplicate map keys are rejected on decode.
func NewCBOR[V any](deterministic bool) (CBOR[V], error) {
	eo := cbor.PreferredUnsortedEncOptions()
	if deterministic {
		eo = cbor.CoreDetEncOptions()
	}
	eo.Time = cbor.TimeRFC3339Nano

	em, err := eo.EncMode()
	if err != nil {
		return CBOR[V]{}, err
	}
	dm, err := cbor.DecOptions{DupMapKey: cbor.DupMapKeyEnforcedAPF}.DecMode()
	if err != nil {
		return CBOR[V]{}, err
	}
	return CBOR[V]{enc: em, dec: dm}, nil
}

// MustCBOR is NewCBOR that panics, for package-level codec variables.
func MustCBOR[V any](deterministic bool) CBOR[V] {
	c, err := NewCBOR[V](deterministic)
	if err != nil {
		panic(err)
	}
	return c
}

func (c CBOR[V]) Encode(v V) ([]byte, error) { return c.enc.Marshal(v) }
func (c CBOR[V]) Decode(b []byte) (V, error) {
	var v V
	if err := rejectContainer(b); err != nil {
		return v, err
	}
	err := c.dec.Unmarshal(b, &v)
	return v, err
}

// Msgpack encodes with vmihailenco/msgpack/v5, sorting map keys so equal
// values produce equal containers. The zero value is ready to use.
type Msgpack[V any] struct{}

func (Msgpack[V]) Encode(v V) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (Msgpack[V]) Decode(b []byte) (V, error) {
	var v V
	if err := rejectContainer(b); err != nil {
		return v, err
	}
	err := msgpack.Unmarshal(b, &v)
	return v, err
}

// Protobuf encodes proto messages deterministically. Construct with
// NewProtobuf so Decode can allocate a fresh T.
type Protobuf[T proto.Message] struct {
	new func() T
}

func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	return proto.MarshalOptions{Deterministic: true}.Marshal(v)
}

func (c Protobuf[T]) Decode(b []byte) (T, error) {
	m := c.new()
	if err := rejectContainer(b); err != nil {
		return m, err
	}
	err := proto.Unmarshal(b, m)
	return m, err
}

var (
	_ Codec[struct{}] = JSON[struct{}]{}
	_ Codec[struct{}] = CBOR[struct{}]{}
	_ Codec[struct{}] = Msgpack[struct{}]{}
)
