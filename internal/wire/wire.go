package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

const (
	version byte = 1
	hdrLen       = 4 + 1 + 8 + 4
)

var (
	ErrCorrupt  = errors.New("vtxcache: corrupt entry")
	ErrTooLarge = errors.New("vtxcache: container exceeds entry length field")
	magic4      = [...]byte{'V', 'T', 'X', 'C'}

	// clen is a u32; anything longer cannot be framed.
	maxContainerLen uint64 = math.MaxUint32
)

// Entry: magic(4) | ver(1) | gen(u64 be) | clen(u32 be) | container(clen)
//
// The container is stored as produced by vtx.Encode; wire does not look
// inside it.
func EncodeEntry(gen uint64, container []byte) ([]byte, error) {
	if uint64(len(container)) > maxContainerLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(container))
	}
	b := make([]byte, hdrLen, hdrLen+len(container))
	copy(b, magic4[:])
	b[4] = version
	binary.BigEndian.PutUint64(b[5:13], gen)
	binary.BigEndian.PutUint32(b[13:17], uint32(len(container)))
	return append(b, container...), nil
}

// DecodeEntry returns the generation and a zero-copy container slice.
// Trailing bytes after the declared container length are rejected.
func DecodeEntry(b []byte) (gen uint64, container []byte, err error) {
	if len(b) < hdrLen || [4]byte(b[:4]) != magic4 || b[4] != version {
		return 0, nil, ErrCorrupt
	}
	gen = binary.BigEndian.Uint64(b[5:13])
	clen := uint64(binary.BigEndian.Uint32(b[13:17]))
	if clen != uint64(len(b)-hdrLen) {
		return 0, nil, ErrCorrupt
	}
	return gen, b[hdrLen:], nil
}
