package texpak

// partPixelTarget is the approximate number of texels handed out per
// part. Small images become a single part; large images split into
// enough parts to keep every worker busy.
const partPixelTarget = 16384

// Part is one horizontal slice of one mip level. Src holds the pixel
// rows of the slice with a stride of Width*4 bytes, and Block is the
// part's block-index offset into the destination buffer, shared by the
// color and alpha planes.
type Part struct {
	Src   []byte
	Width int
	Lines int
	Block int
}

// DataProvider owns the source image and its mip chain, and carves the
// chain into parts for the encode workers. Parts are precomputed at
// construction; NextPart hands them out in order exactly once.
type DataProvider struct {
	width  int
	height int
	mipmap bool
	alpha  bool
	levels []*Image
	parts  []Part
	next   int
}

// NewDataProvider builds the mip chain for img and precomputes the
// part table. img must already be block aligned.
func NewDataProvider(img *Image, mipmap bool) *DataProvider {
	dp := &DataProvider{
		width:  img.Width,
		height: img.Height,
		mipmap: mipmap,
		alpha:  img.HasAlpha(),
	}

	levels := 1
	if mipmap {
		levels = mipLevelCount(img.Width, img.Height)
	}

	logical := img
	block := 0
	for l := 0; l < levels; l++ {
		if l > 0 {
			logical = logical.halve()
		}
		padded := logical.padded()
		dp.levels = append(dp.levels, padded)

		aw, ah := padded.Width, padded.Height
		step := partLines(aw, ah)
		for y := 0; y < ah; y += step {
			lines := min(step, ah-y)
			dp.parts = append(dp.parts, Part{
				Src:   padded.Pix[y*aw*4:],
				Width: aw,
				Lines: lines,
				Block: block,
			})
			block += (aw / 4) * (lines / 4)
		}
	}
	return dp
}

// partLines returns the slice height for one level, a multiple of 4.
func partLines(w, h int) int {
	lines := (partPixelTarget / w) &^ 3
	return max(4, min(lines, h))
}

// Size returns the base level dimensions.
func (dp *DataProvider) Size() (int, int) {
	return dp.width, dp.height
}

// Mipmap reports whether the provider carries a full mip chain.
func (dp *DataProvider) Mipmap() bool {
	return dp.mipmap
}

// Alpha reports whether the source image has a non-opaque texel.
func (dp *DataProvider) Alpha() bool {
	return dp.alpha
}

// NumberOfParts returns how many parts NextPart will hand out in total.
func (dp *DataProvider) NumberOfParts() int {
	return len(dp.parts)
}

// NextPart returns the next part. Calling it more than NumberOfParts
// times is a caller bug and panics.
func (dp *DataProvider) NextPart() Part {
	if dp.next >= len(dp.parts) {
		panic("texpak: NextPart called past the last part")
	}
	p := dp.parts[dp.next]
	dp.next++
	return p
}
