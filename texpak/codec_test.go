package texpak_test

import (
	"math"
	"testing"

	"github.com/texturelab/texpak/texpak"
)

// encodeOne compresses an image with a single worker and returns the
// color buffer.
func encodeOne(t *testing.T, img *texpak.Image, opts texpak.Options) *texpak.BlockData {
	t.Helper()
	opts.Workers = 1
	color, _, err := texpak.Encode(img, opts)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return color
}

func measureRGB(t *testing.T, img *texpak.Image, bd *texpak.BlockData) texpak.Quality {
	t.Helper()
	q, err := texpak.MeasureQuality(img, bd, texpak.ChannelsRGB)
	if err != nil {
		t.Fatalf("MeasureQuality: %v", err)
	}
	return q
}

func TestSolidColorRoundTrip(t *testing.T) {
	img := makeSolid(16, 16, 40, 180, 90, 255)

	for _, opts := range []texpak.Options{
		{},
		{ETC2: true},
		{DXT1: true},
	} {
		bd := encodeOne(t, img, opts)
		q := measureRGB(t, img, bd)
		if q.PSNR < 35 {
			t.Errorf("%v: solid color PSNR %.2f dB, want >= 35", bd.Format(), q.PSNR)
		}
	}
}

func TestGradientQualityFloor(t *testing.T) {
	img := makeGradient(64, 64)

	for _, opts := range []texpak.Options{
		{},
		{ETC2: true},
		{DXT1: true},
	} {
		bd := encodeOne(t, img, opts)
		q := measureRGB(t, img, bd)
		if q.PSNR < 30 {
			t.Errorf("%v: gradient PSNR %.2f dB, want >= 30", bd.Format(), q.PSNR)
		}
		if q.RMSE != math.Sqrt(q.MSE) {
			t.Errorf("%v: RMSE %.6f does not match MSE %.6f", bd.Format(), q.RMSE, q.MSE)
		}
	}
}

func TestEtc2NotWorseThanEtc1(t *testing.T) {
	img := makeGradient(64, 64)

	etc1 := measureRGB(t, img, encodeOne(t, img, texpak.Options{}))
	etc2 := measureRGB(t, img, encodeOne(t, img, texpak.Options{ETC2: true}))

	// The ETC2 search is a superset of the ETC1 search, so quality can
	// only move sideways or up (modulo the error weighting).
	if etc2.PSNR < etc1.PSNR-0.1 {
		t.Fatalf("ETC2 PSNR %.2f dB below ETC1 %.2f dB", etc2.PSNR, etc1.PSNR)
	}
}

func TestRGBAAlphaRoundTrip(t *testing.T) {
	img := makeAlphaGradient(32, 32)

	bd := encodeOne(t, img, texpak.Options{RGBA: true})
	if bd.Format() != texpak.Etc2RGBA {
		t.Fatalf("format %v, want Etc2RGBA", bd.Format())
	}

	q, err := texpak.MeasureAlphaQuality(img, bd)
	if err != nil {
		t.Fatalf("MeasureAlphaQuality: %v", err)
	}
	if q.PSNR < 30 {
		t.Fatalf("alpha PSNR %.2f dB, want >= 30", q.PSNR)
	}

	rgb := measureRGB(t, img, bd)
	if rgb.PSNR < 30 {
		t.Fatalf("color PSNR %.2f dB, want >= 30", rgb.PSNR)
	}
}

func TestConstantAlphaIsLossless(t *testing.T) {
	img := makeGradient(16, 16)
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 200
	}

	bd := encodeOne(t, img, texpak.Options{RGBA: true})
	q, err := texpak.MeasureAlphaQuality(img, bd)
	if err != nil {
		t.Fatalf("MeasureAlphaQuality: %v", err)
	}
	if !math.IsInf(q.PSNR, 1) || q.RMSE != 0 {
		t.Fatalf("constant alpha plane: RMSE %.4f PSNR %.2f, want lossless", q.RMSE, q.PSNR)
	}
}

func TestSeparateAlphaAsLuminance(t *testing.T) {
	img := makeAlphaGradient(32, 32)

	_, alpha, err := texpak.Encode(img, texpak.Options{SeparateAlpha: true, Workers: 1})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if alpha == nil {
		t.Fatalf("no separate alpha buffer for a translucent source")
	}
	if alpha.Format() != texpak.Etc1 {
		t.Fatalf("alpha buffer format %v, want Etc1", alpha.Format())
	}

	q, err := texpak.MeasureQuality(img, alpha, texpak.ChannelsAlpha)
	if err != nil {
		t.Fatalf("MeasureQuality: %v", err)
	}
	if q.PSNR < 30 {
		t.Fatalf("separate alpha PSNR %.2f dB, want >= 30", q.PSNR)
	}
}

func TestDecodeDimensions(t *testing.T) {
	img := makeGradient(24, 16)
	bd := encodeOne(t, img, texpak.Options{Mipmap: true})

	decoded, err := bd.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Width != 24 || decoded.Height != 16 {
		t.Fatalf("decoded %dx%d, want 24x16 base level", decoded.Width, decoded.Height)
	}
}
