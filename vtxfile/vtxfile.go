// Package vtxfile reads and writes .vtx files.
package vtxfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"

	"github.com/unkn0wn-root/vtx"
)

// Ext is the conventional extension for VTX containers.
const Ext = ".vtx"

// ErrAlreadyPacked is returned by Pack when the source already starts with
// the VTX prefix.
var ErrAlreadyPacked = errors.New("vtxfile: input is already a vtx container")

// ReadFile reads path and decodes it. The payload is backed by a buffer
// owned by the caller. Header errors wrap the vtx taxonomy.
func ReadFile(path string) (version byte, payload []byte, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, nil, err
	}
	version, payload, err = vtx.Decode(b)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", path, err)
	}
	return version, payload, nil
}

// WriteFile encodes component and replaces path atomically: readers see
// either the previous file or the complete new one.
func WriteFile(path string, component []byte, perm fs.FileMode) error {
	return renameio.WriteFile(path, vtx.Encode(component), perm)
}

// Pack wraps the component at src into a container at dst.
func Pack(src, dst string) error {
	b, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if vtx.HasPrefix(b) {
		return fmt.Errorf("%s: %w", src, ErrAlreadyPacked)
	}
	return WriteFile(dst, b, 0o644)
}

// Unpack extracts the payload of the container at src into dst.
func Unpack(src, dst string) error {
	_, payload, err := ReadFile(src)
	if err != nil {
		return err
	}
	return renameio.WriteFile(dst, payload, 0o644)
}

// PackedName returns the default output name for packing src:
// "plugin.wasm" -> "plugin.vtx".
func PackedName(src string) string {
	return strings.TrimSuffix(src, filepath.Ext(src)) + Ext
}

// UnpackedName returns the default output name for unpacking src:
// "plugin.vtx" -> "plugin.wasm".
func UnpackedName(src string) string {
	return strings.TrimSuffix(src, filepath.Ext(src)) + ".wasm"
}
