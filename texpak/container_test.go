package texpak_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/texturelab/texpak/texpak"
)

func writeReadCycle(t *testing.T, bd *texpak.BlockData, name string) *texpak.BlockData {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := bd.Write(path); err != nil {
		t.Fatalf("Write(%s): %v", name, err)
	}
	got, err := texpak.ReadBlockData(path)
	if err != nil {
		t.Fatalf("ReadBlockData(%s): %v", name, err)
	}
	return got
}

func TestContainerRoundTrip(t *testing.T) {
	img := makeAlphaGradient(32, 16)

	for _, tc := range []struct {
		name string
		opts texpak.Options
	}{
		{"etc1.pvr", texpak.Options{Workers: 1}},
		{"etc2.pvr", texpak.Options{ETC2: true, Workers: 1}},
		{"rgba.pvr", texpak.Options{RGBA: true, Workers: 1}},
		{"dxt1.pvr", texpak.Options{DXT1: true, Workers: 1}},
		{"mips.pvr", texpak.Options{Mipmap: true, Workers: 1}},
		{"etc1.ktx", texpak.Options{Workers: 1}},
		{"rgba.ktx", texpak.Options{RGBA: true, Workers: 1}},
		{"mips.ktx", texpak.Options{Mipmap: true, Workers: 1}},
		{"etc1.pvrz", texpak.Options{Workers: 1}},
		{"mips.pvrz", texpak.Options{Mipmap: true, Workers: 1}},
	} {
		bd, _, err := texpak.Encode(img, tc.opts)
		if err != nil {
			t.Fatalf("%s: Encode: %v", tc.name, err)
		}

		got := writeReadCycle(t, bd, tc.name)

		gw, gh := got.Size()
		w, h := bd.Size()
		if gw != w || gh != h {
			t.Errorf("%s: size %dx%d, want %dx%d", tc.name, gw, gh, w, h)
		}
		if got.Format() != bd.Format() {
			t.Errorf("%s: format %v, want %v", tc.name, got.Format(), bd.Format())
		}
		if got.Mipmap() != bd.Mipmap() {
			t.Errorf("%s: mipmap %v, want %v", tc.name, got.Mipmap(), bd.Mipmap())
		}
		if !bytes.Equal(got.Data(), bd.Data()) {
			t.Errorf("%s: payload mismatch after round trip", tc.name)
		}
	}
}

func TestWriteUnknownExtension(t *testing.T) {
	bd, _, err := texpak.Encode(makeGradient(8, 8), texpak.Options{Workers: 1})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	err = bd.Write(filepath.Join(t.TempDir(), "out.dds"))
	if texpak.ErrorCodeOf(err) != texpak.ErrBadParam {
		t.Fatalf("got %v, want ErrBadParam", err)
	}
}

func TestReadTruncatedFile(t *testing.T) {
	bd, _, err := texpak.Encode(makeGradient(16, 16), texpak.Options{Workers: 1})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	path := filepath.Join(t.TempDir(), "trunc.pvr")
	if err := bd.Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if err := os.WriteFile(path, raw[:len(raw)-16], 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err = texpak.ReadBlockData(path)
	if texpak.ErrorCodeOf(err) != texpak.ErrBadContainer {
		t.Fatalf("got %v, want ErrBadContainer", err)
	}
}

func TestReadGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.pvr")
	if err := os.WriteFile(path, []byte("not a texture at all"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := texpak.ReadBlockData(path); err == nil {
		t.Fatalf("garbage file parsed without error")
	}
}
