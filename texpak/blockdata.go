package texpak

import "encoding/binary"

// BlockData is a buffer of encoded 4x4 blocks for one texture,
// optionally with a full mip chain appended after the base level.
// Process and ProcessRGBA fill disjoint regions of the buffer and are
// safe to call concurrently.
type BlockData struct {
	format Format
	width  int
	height int
	mipmap bool
	data   []byte
}

// NewBlockData allocates a buffer for a w by h texture. Dimensions must
// be positive multiples of 4.
func NewBlockData(w, h int, mipmap bool, f Format) (*BlockData, error) {
	if !f.valid() {
		return nil, newError(ErrBadFormat, "texpak: invalid block format")
	}
	if w <= 0 || h <= 0 || w%4 != 0 || h%4 != 0 {
		return nil, newError(ErrBadDims, "texpak: dimensions must be positive multiples of 4")
	}
	return &BlockData{
		format: f,
		width:  w,
		height: h,
		mipmap: mipmap,
		data:   make([]byte, totalBlocks(w, h, mipmap)*f.BytesPerBlock()),
	}, nil
}

// Size returns the base level dimensions.
func (bd *BlockData) Size() (int, int) {
	return bd.width, bd.height
}

// Format returns the block format of the buffer.
func (bd *BlockData) Format() Format {
	return bd.format
}

// Mipmap reports whether the buffer carries a full mip chain.
func (bd *BlockData) Mipmap() bool {
	return bd.mipmap
}

// Data returns the raw encoded payload, base level first.
func (bd *BlockData) Data() []byte {
	return bd.data
}

// extractBlock copies the 4x4 tile whose top-left texel is (bx*4, by*4)
// out of a pixel slice with the given row width.
func extractBlock(px *blockPixels, src []byte, width, bx, by int) {
	stride := width * 4
	for row := 0; row < 4; row++ {
		o := (by*4+row)*stride + bx*16
		copy(px[row*16:row*16+16], src[o:o+16])
	}
}

// extractAlphaBlock is extractBlock with the alpha channel replicated
// into the color channels, turning the alpha plane into a grayscale
// color tile.
func extractAlphaBlock(px *blockPixels, src []byte, width, bx, by int) {
	stride := width * 4
	for row := 0; row < 4; row++ {
		o := (by*4+row)*stride + bx*16
		for i := 0; i < 4; i++ {
			a := src[o+i*4+3]
			j := row*16 + i*4
			px[j+0] = a
			px[j+1] = a
			px[j+2] = a
			px[j+3] = 255
		}
	}
}

// Process encodes blocks sequential 4x4 tiles from src into the buffer
// starting at the given byte offset. src holds pixel rows with a stride
// of width*4 bytes; width must be a multiple of 4. The channel selects
// whether the color channels or the alpha plane is encoded. Dithering
// is ignored for ETC2 output.
func (bd *BlockData) Process(src []byte, blocks, offset, width int, ch Channels, dither bool) {
	dither = dither && DitherAllowed(bd.format)
	etc2 := bd.format == Etc2RGB || bd.format == Etc2RGBA
	perRow := width / 4

	var px blockPixels
	for b := 0; b < blocks; b++ {
		bx, by := b%perRow, b/perRow
		if ch == ChannelsAlpha {
			extractAlphaBlock(&px, src, width, bx, by)
		} else {
			extractBlock(&px, src, width, bx, by)
			if dither {
				ditherBlock(&px)
			}
		}

		dst := bd.data[offset+b*8:]
		if bd.format == Dxt1 {
			encodeDXTBlock(&px, dst[:8])
		} else {
			binary.BigEndian.PutUint64(dst[:8], encodeColorBlock(&px, etc2))
		}
	}
}

// ProcessRGBA encodes blocks sequential tiles as interleaved EAC alpha
// and ETC2 color block pairs. The buffer format must be Etc2RGBA.
func (bd *BlockData) ProcessRGBA(src []byte, blocks, offset, width int) {
	perRow := width / 4

	var px blockPixels
	for b := 0; b < blocks; b++ {
		bx, by := b%perRow, b/perRow
		extractBlock(&px, src, width, bx, by)

		dst := bd.data[offset+b*16:]
		binary.BigEndian.PutUint64(dst[0:8], encodeAlphaBlock(&px))
		binary.BigEndian.PutUint64(dst[8:16], encodeColorBlock(&px, true))
	}
}

// Decode expands the base level back into a bitmap.
func (bd *BlockData) Decode() (*Image, error) {
	if len(bd.data) < (bd.width/4)*(bd.height/4)*bd.format.BytesPerBlock() {
		return nil, newError(ErrBadContainer, "texpak: truncated block payload")
	}

	out := NewImage(bd.width, bd.height)
	perRow := bd.width / 4
	bpb := bd.format.BytesPerBlock()

	var px blockPixels
	for by := 0; by < bd.height/4; by++ {
		for bx := 0; bx < perRow; bx++ {
			src := bd.data[(by*perRow+bx)*bpb:]
			switch bd.format {
			case Dxt1:
				decodeDXTBlock(&px, src[:8])
			case Etc2RGBA:
				decodeColorBlock(&px, binary.BigEndian.Uint64(src[8:16]))
				decodeAlphaBlock(&px, binary.BigEndian.Uint64(src[0:8]))
			default:
				decodeColorBlock(&px, binary.BigEndian.Uint64(src[0:8]))
			}

			for row := 0; row < 4; row++ {
				o := ((by*4+row)*bd.width + bx*4) * 4
				copy(out.Pix[o:o+16], px[row*16:row*16+16])
			}
		}
	}
	return out, nil
}
