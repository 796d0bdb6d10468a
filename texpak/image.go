package texpak

import (
	"image"
	"image/draw"
)

// Image is a tightly packed 8-bit RGBA bitmap, the only pixel layout the
// codec operates on. Pix holds Width*Height*4 bytes with a row stride of
// exactly Width*4.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// NewImage allocates a zeroed bitmap of the given size.
func NewImage(w, h int) *Image {
	return &Image{Width: w, Height: h, Pix: make([]byte, w*h*4)}
}

// FromImage converts any image.Image into the packed RGBA layout the
// codec consumes.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	im := NewImage(b.Dx(), b.Dy())
	dst := &image.NRGBA{Pix: im.Pix, Stride: im.Width * 4, Rect: image.Rect(0, 0, im.Width, im.Height)}
	draw.Draw(dst, dst.Rect, src, b.Min, draw.Src)
	return im
}

// HasAlpha reports whether any texel has an alpha value below 255.
func (im *Image) HasAlpha() bool {
	for i := 3; i < len(im.Pix); i += 4 {
		if im.Pix[i] != 255 {
			return true
		}
	}
	return false
}

// ToNRGBA wraps the bitmap as a standard library image without copying.
func (im *Image) ToNRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    im.Pix,
		Stride: im.Width * 4,
		Rect:   image.Rect(0, 0, im.Width, im.Height),
	}
}

// halve produces the next mip level by rounded 2x2 area averaging.
// Odd dimensions clamp the second sample row or column at the edge.
func (im *Image) halve() *Image {
	w, h := max(im.Width/2, 1), max(im.Height/2, 1)
	out := NewImage(w, h)
	for y := 0; y < h; y++ {
		y0 := y * 2
		y1 := min(y0+1, im.Height-1)
		for x := 0; x < w; x++ {
			x0 := x * 2
			x1 := min(x0+1, im.Width-1)
			a := (y0*im.Width + x0) * 4
			b := (y0*im.Width + x1) * 4
			c := (y1*im.Width + x0) * 4
			d := (y1*im.Width + x1) * 4
			o := (y*w + x) * 4
			for ch := 0; ch < 4; ch++ {
				s := uint32(im.Pix[a+ch]) + uint32(im.Pix[b+ch]) + uint32(im.Pix[c+ch]) + uint32(im.Pix[d+ch])
				out.Pix[o+ch] = byte((s + 2) >> 2)
			}
		}
	}
	return out
}

// padded returns a copy grown to block-aligned dimensions, replicating
// the edge texels into the padding. Returns the receiver unchanged when
// already aligned.
func (im *Image) padded() *Image {
	aw, ah := alignDim(im.Width), alignDim(im.Height)
	if aw == im.Width && ah == im.Height {
		return im
	}
	out := NewImage(aw, ah)
	for y := 0; y < ah; y++ {
		sy := min(y, im.Height-1)
		for x := 0; x < aw; x++ {
			sx := min(x, im.Width-1)
			copy(out.Pix[(y*aw+x)*4:(y*aw+x)*4+4], im.Pix[(sy*im.Width+sx)*4:(sy*im.Width+sx)*4+4])
		}
	}
	return out
}
