package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cespare/xxhash/v2"

	"github.com/unkn0wn-root/vtx"
)

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestPackInspectUnpack(t *testing.T) {
	dir := t.TempDir()
	wasm := []byte("\x00asm\x0d\x00\x01\x00body")
	src := filepath.Join(dir, "plugin.wasm")
	if err := os.WriteFile(src, wasm, 0o600); err != nil {
		t.Fatal(err)
	}

	out, _, err := run(t, "pack", src)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	packed := filepath.Join(dir, "plugin.vtx")
	if strings.TrimSpace(out) != packed {
		t.Fatalf("pack printed %q", out)
	}
	raw, _ := os.ReadFile(packed)
	if !bytes.Equal(raw, vtx.Encode(wasm)) {
		t.Fatalf("packed bytes = %x", raw)
	}

	out, _, err = run(t, "inspect", packed)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	want := fmt.Sprintf("version=1\tpayload=%d B\txxh64=%016x", len(wasm), xxhash.Sum64(wasm))
	if !strings.Contains(out, want) {
		t.Fatalf("inspect output %q missing %q", out, want)
	}

	dst := filepath.Join(dir, "roundtrip.wasm")
	if _, _, err := run(t, "unpack", packed, "-o", dst); err != nil {
		t.Fatalf("unpack: %v", err)
	}
	got, _ := os.ReadFile(dst)
	if !bytes.Equal(got, wasm) {
		t.Fatalf("unpacked = %x", got)
	}
}

func TestInspectReportsInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.vtx")
	bad := filepath.Join(dir, "bad.vtx")
	if err := os.WriteFile(good, vtx.Encode(nil), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("VTX\x02"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, errOut, err := run(t, "inspect", good, bad)
	if err == nil {
		t.Fatalf("expected failure for invalid file")
	}
	if !strings.Contains(out, "good.vtx\tversion=1\tpayload=0 B") {
		t.Fatalf("good file not reported: %q", out)
	}
	if !strings.Contains(errOut, "unsupported version: 2") {
		t.Fatalf("bad file error missing: %q", errOut)
	}
}

func TestPackRejectsContainer(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "already.vtx")
	if err := os.WriteFile(src, vtx.Encode([]byte("x")), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, _, err := run(t, "pack", src, "-o", filepath.Join(dir, "twice.vtx")); err == nil {
		t.Fatalf("expected pack of a container to fail")
	}
}

func TestInvalidLogLevel(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--log-level", "loud", "inspect", "x.vtx"})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "invalid --log-level") {
		t.Fatalf("expected log level error, got %v", err)
	}
}
