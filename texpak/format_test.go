package texpak_test

import (
	"testing"

	"github.com/texturelab/texpak/texpak"
)

func TestPickFormat(t *testing.T) {
	tests := []struct {
		name string
		req  texpak.FormatRequest
		want texpak.Format
	}{
		{"default", texpak.FormatRequest{}, texpak.Etc1},
		{"etc2", texpak.FormatRequest{ETC2: true}, texpak.Etc2RGB},
		{"dxt1", texpak.FormatRequest{DXT1: true}, texpak.Dxt1},
		{"etc2 wins over dxt1", texpak.FormatRequest{ETC2: true, DXT1: true}, texpak.Etc2RGB},
		{"rgba with alpha", texpak.FormatRequest{RGBA: true, SourceAlpha: true}, texpak.Etc2RGBA},
		{"rgba without alpha", texpak.FormatRequest{RGBA: true}, texpak.Etc2RGB},
		{"rgba implies etc2", texpak.FormatRequest{RGBA: true, DXT1: true, SourceAlpha: true}, texpak.Etc2RGBA},
		{"etc2+rgba with alpha", texpak.FormatRequest{ETC2: true, RGBA: true, SourceAlpha: true}, texpak.Etc2RGBA},
		{"alpha alone changes nothing", texpak.FormatRequest{SourceAlpha: true}, texpak.Etc1},
	}
	for _, tt := range tests {
		if got := texpak.PickFormat(tt.req); got != tt.want {
			t.Errorf("%s: PickFormat(%+v) = %v, want %v", tt.name, tt.req, got, tt.want)
		}
	}
}

func TestBytesPerBlock(t *testing.T) {
	for _, f := range []texpak.Format{texpak.Etc1, texpak.Etc2RGB, texpak.Dxt1} {
		if got := f.BytesPerBlock(); got != 8 {
			t.Errorf("%v.BytesPerBlock() = %d, want 8", f, got)
		}
	}
	if got := texpak.Etc2RGBA.BytesPerBlock(); got != 16 {
		t.Errorf("Etc2RGBA.BytesPerBlock() = %d, want 16", got)
	}
}

func TestDitherAllowed(t *testing.T) {
	if !texpak.DitherAllowed(texpak.Etc1) || !texpak.DitherAllowed(texpak.Dxt1) {
		t.Errorf("dithering must be allowed for ETC1 and DXT1")
	}
	if texpak.DitherAllowed(texpak.Etc2RGB) || texpak.DitherAllowed(texpak.Etc2RGBA) {
		t.Errorf("dithering must be rejected for ETC2 formats")
	}
}

func TestErrorCodeOf(t *testing.T) {
	if got := texpak.ErrorCodeOf(nil); got != texpak.Success {
		t.Fatalf("ErrorCodeOf(nil) = %v, want Success", got)
	}

	_, err := texpak.NewBlockData(10, 16, false, texpak.Etc1)
	if err == nil {
		t.Fatalf("NewBlockData accepted unaligned width")
	}
	if got := texpak.ErrorCodeOf(err); got != texpak.ErrBadDims {
		t.Fatalf("ErrorCodeOf = %v, want ErrBadDims", got)
	}
}
