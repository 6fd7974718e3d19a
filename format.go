package vtx

const (
	// Prefix identifies the container family.
	Prefix = "VTX"
	// VersionV1 is the only version this package reads or writes.
	VersionV1 byte = 0x01
	// MagicV1 is the full v1 header: Prefix followed by VersionV1.
	MagicV1 = Prefix + "\x01"
	// HeaderLen is the size of the header preceding the payload.
	HeaderLen = len(MagicV1)
)

// Encode returns a new v1 container: MagicV1 followed by a copy of payload.
// Any payload is accepted, including an empty one.
func Encode(payload []byte) []byte {
	return Append(make([]byte, 0, HeaderLen+len(payload)), payload)
}

// Append appends a v1 container holding payload to dst and returns the
// extended buffer.
func Append(dst, payload []byte) []byte {
	dst = append(dst, MagicV1...)
	return append(dst, payload...)
}

// Decode validates the header of b and returns its version and payload.
// The payload is a sub-slice of b (no copy); callers that need to retain
// it past the lifetime of b must copy it.
//
// Checks run in order: length, prefix, version. The returned error is
// ErrTooShort, ErrInvalidPrefix or an *UnsupportedVersionError.
func Decode(b []byte) (version byte, payload []byte, err error) {
	if len(b) < HeaderLen {
		return 0, nil, ErrTooShort
	}
	if !HasPrefix(b) {
		return 0, nil, ErrInvalidPrefix
	}
	version = b[len(Prefix)]
	if version != VersionV1 {
		return 0, nil, &UnsupportedVersionError{Version: version}
	}
	return version, b[HeaderLen:], nil
}

// HasPrefix reports whether b starts with the VTX magic prefix.
// The version byte is not inspected.
func HasPrefix(b []byte) bool {
	return len(b) >= len(Prefix) && string(b[:len(Prefix)]) == Prefix
}
