package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
	"github.com/texturelab/texpak/texpak"
	"github.com/xfmoulet/qoi"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// loadImage decodes an input image into the packed layout the codec
// consumes. When fit is set, images with unaligned dimensions are
// prescaled to the next multiple of 4; otherwise they are rejected.
func loadImage(path string, fit bool) (*texpak.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var img image.Image
	if strings.ToLower(filepath.Ext(path)) == ".qoi" {
		img, err = qoi.Decode(f)
	} else {
		img, _, err = image.Decode(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	aw, ah := (w+3)&^3, (h+3)&^3
	if aw != w || ah != h {
		if !fit {
			return nil, fmt.Errorf("%s: dimensions %dx%d are not multiples of 4 (use -fit to prescale)", path, w, h)
		}
		img = resize.Resize(uint(aw), uint(ah), img, resize.Bilinear)
	}

	return texpak.FromImage(img), nil
}
