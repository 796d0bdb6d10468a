package texpak_test

import "github.com/texturelab/texpak/texpak"

// makeSolid returns a uniformly colored image.
func makeSolid(w, h int, r, g, b, a byte) *texpak.Image {
	img := texpak.NewImage(w, h)
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// makeGradient returns an opaque image with smooth horizontal and
// vertical color ramps.
func makeGradient(w, h int) *texpak.Image {
	img := texpak.NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := (y*w + x) * 4
			img.Pix[o+0] = byte(x * 255 / (w - 1))
			img.Pix[o+1] = byte(y * 255 / (h - 1))
			img.Pix[o+2] = byte((x + y) * 255 / (w + h - 2))
			img.Pix[o+3] = 255
		}
	}
	return img
}

// makeAlphaGradient is makeGradient with a diagonal alpha ramp.
func makeAlphaGradient(w, h int) *texpak.Image {
	img := makeGradient(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Pix[(y*w+x)*4+3] = byte((x + y) * 255 / (w + h - 2))
		}
	}
	return img
}
