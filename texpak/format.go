package texpak

// Format selects the block compression scheme for a BlockData buffer.
type Format uint8

const (
	// Etc1 is the ETC1 color format, 8 bytes per 4x4 block.
	Etc1 Format = iota

	// Etc2RGB is the ETC2 RGB color format, 8 bytes per 4x4 block.
	Etc2RGB

	// Etc2RGBA is the ETC2 RGB color format with an interleaved EAC
	// alpha plane, 16 bytes per 4x4 block.
	Etc2RGBA

	// Dxt1 is the BC1 color format, 8 bytes per 4x4 block.
	Dxt1
)

// BytesPerBlock returns the encoded size of one 4x4 block.
func (f Format) BytesPerBlock() int {
	if f == Etc2RGBA {
		return 16
	}
	return 8
}

func (f Format) valid() bool {
	return f <= Dxt1
}

func (f Format) String() string {
	switch f {
	case Etc1:
		return "ETC1"
	case Etc2RGB:
		return "ETC2_RGB"
	case Etc2RGBA:
		return "ETC2_RGBA"
	case Dxt1:
		return "DXT1"
	default:
		return "unknown"
	}
}

// OpenGL internal format enums, used by the KTX container.
const (
	glEtc1RGB8  = 0x8D64
	glEtc2RGB8  = 0x9274
	glEtc2RGBA8 = 0x9278
	glDxt1RGB   = 0x83F0

	glBaseRGB  = 0x1907
	glBaseRGBA = 0x1908
)

func (f Format) glInternalFormat() uint32 {
	switch f {
	case Etc1:
		return glEtc1RGB8
	case Etc2RGB:
		return glEtc2RGB8
	case Etc2RGBA:
		return glEtc2RGBA8
	case Dxt1:
		return glDxt1RGB
	default:
		return 0
	}
}

func (f Format) glBaseInternalFormat() uint32 {
	if f == Etc2RGBA {
		return glBaseRGBA
	}
	return glBaseRGB
}

// PVR v3 pixel format identifiers.
const (
	pvrFormatEtc1     = 6
	pvrFormatDxt1     = 7
	pvrFormatEtc2RGB  = 22
	pvrFormatEtc2RGBA = 23
)

func (f Format) pvrPixelFormat() uint64 {
	switch f {
	case Etc1:
		return pvrFormatEtc1
	case Etc2RGB:
		return pvrFormatEtc2RGB
	case Etc2RGBA:
		return pvrFormatEtc2RGBA
	case Dxt1:
		return pvrFormatDxt1
	default:
		return 0
	}
}

// Channels selects which plane of the source image a Process call encodes.
type Channels uint8

const (
	// ChannelsRGB encodes the color channels.
	ChannelsRGB Channels = iota

	// ChannelsAlpha encodes the alpha channel as a grayscale color image.
	ChannelsAlpha
)

// FormatRequest captures the caller-facing format switches and the one
// source property that participates in format selection.
type FormatRequest struct {
	ETC2        bool
	RGBA        bool
	DXT1        bool
	SourceAlpha bool
}

// PickFormat resolves the output format from the requested switches.
//
// RGBA implies ETC2. An RGBA request against a source without an alpha
// channel falls back to ETC2_RGB. ETC2 takes precedence over DXT1 when
// both are set.
func PickFormat(req FormatRequest) Format {
	if req.ETC2 || req.RGBA {
		if req.RGBA && req.SourceAlpha {
			return Etc2RGBA
		}
		return Etc2RGB
	}
	if req.DXT1 {
		return Dxt1
	}
	return Etc1
}

// DitherAllowed reports whether ordered dithering may be applied before
// encoding to f. ETC2 formats reject dithering because the planar mode
// defeats it and makes quality strictly worse.
func DitherAllowed(f Format) bool {
	return f == Etc1 || f == Dxt1
}

// alignDim rounds a dimension up to the 4-texel block granularity.
func alignDim(d int) int {
	return (d + 3) &^ 3
}

// mipLevelCount returns the number of levels down to and including 1x1.
func mipLevelCount(w, h int) int {
	n := 1
	for w > 1 || h > 1 {
		w = max(w/2, 1)
		h = max(h/2, 1)
		n++
	}
	return n
}

// levelDims returns the logical dimensions of mip level l for a base of
// w by h texels.
func levelDims(w, h, l int) (int, int) {
	return max(w>>l, 1), max(h>>l, 1)
}

// levelBlocks returns the number of 4x4 blocks in mip level l after
// alignment padding.
func levelBlocks(w, h, l int) int {
	lw, lh := levelDims(w, h, l)
	return (alignDim(lw) / 4) * (alignDim(lh) / 4)
}

// totalBlocks returns the block count of a whole buffer: one level, or
// the full chain down to 1x1 when mipmap is set.
func totalBlocks(w, h int, mipmap bool) int {
	if !mipmap {
		return (w / 4) * (h / 4)
	}
	n := 0
	for l := 0; l < mipLevelCount(w, h); l++ {
		n += levelBlocks(w, h, l)
	}
	return n
}
