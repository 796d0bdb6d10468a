package texpak

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zlib"
)

const (
	pvrMagic      = 0x03525650 // "PVR\x03", little endian
	pvrHeaderSize = 52
	ktxHeaderSize = 64
	ktxEndianness = 0x04030201
)

var ktxIdentifier = [12]byte{0xAB, 'K', 'T', 'X', ' ', '1', '1', 0xBB, '\r', '\n', 0x1A, '\n'}

func (bd *BlockData) levels() int {
	if !bd.mipmap {
		return 1
	}
	return mipLevelCount(bd.width, bd.height)
}

// marshalPVR serializes the buffer as a PVR v3 file.
func (bd *BlockData) marshalPVR() []byte {
	out := make([]byte, pvrHeaderSize, pvrHeaderSize+len(bd.data))
	binary.LittleEndian.PutUint32(out[0:], pvrMagic)
	binary.LittleEndian.PutUint64(out[8:], bd.format.pvrPixelFormat())
	binary.LittleEndian.PutUint32(out[24:], uint32(bd.height))
	binary.LittleEndian.PutUint32(out[28:], uint32(bd.width))
	binary.LittleEndian.PutUint32(out[32:], 1) // depth
	binary.LittleEndian.PutUint32(out[36:], 1) // surfaces
	binary.LittleEndian.PutUint32(out[40:], 1) // faces
	binary.LittleEndian.PutUint32(out[44:], uint32(bd.levels()))
	return append(out, bd.data...)
}

// marshalKTX serializes the buffer as a KTX 1.1 file.
func (bd *BlockData) marshalKTX() []byte {
	var buf bytes.Buffer
	buf.Grow(ktxHeaderSize + len(bd.data) + 4*bd.levels())

	buf.Write(ktxIdentifier[:])
	var u [4]byte
	put := func(v uint32) {
		binary.LittleEndian.PutUint32(u[:], v)
		buf.Write(u[:])
	}
	put(ktxEndianness)
	put(0) // glType
	put(1) // glTypeSize
	put(0) // glFormat
	put(bd.format.glInternalFormat())
	put(bd.format.glBaseInternalFormat())
	put(uint32(bd.width))
	put(uint32(bd.height))
	put(0) // pixelDepth
	put(0) // numberOfArrayElements
	put(1) // numberOfFaces
	put(uint32(bd.levels()))
	put(0) // bytesOfKeyValueData

	bpb := bd.format.BytesPerBlock()
	off := 0
	for l := 0; l < bd.levels(); l++ {
		n := levelBlocks(bd.width, bd.height, l) * bpb
		put(uint32(n))
		buf.Write(bd.data[off : off+n])
		off += n
	}
	return buf.Bytes()
}

// marshalPVRZ serializes the buffer as a zlib-compressed PVR file with
// a 4-byte uncompressed-size prefix.
func (bd *BlockData) marshalPVRZ() ([]byte, error) {
	raw := bd.marshalPVR()

	var buf bytes.Buffer
	var u [4]byte
	binary.LittleEndian.PutUint32(u[:], uint32(len(raw)))
	buf.Write(u[:])

	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return nil, newError(ErrIO, "texpak: compress: "+err.Error())
	}
	if err := zw.Close(); err != nil {
		return nil, newError(ErrIO, "texpak: compress: "+err.Error())
	}
	return buf.Bytes(), nil
}

// Write serializes the buffer to path. The container is chosen by the
// file extension: .pvr, .ktx or .pvrz.
func (bd *BlockData) Write(path string) error {
	var out []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pvr":
		out = bd.marshalPVR()
	case ".ktx":
		out = bd.marshalKTX()
	case ".pvrz":
		out, err = bd.marshalPVRZ()
		if err != nil {
			return err
		}
	default:
		return newError(ErrBadParam, "texpak: unknown container extension: "+filepath.Ext(path))
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return newError(ErrIO, "texpak: "+err.Error())
	}
	return nil
}

func formatFromPVR(pf uint64) (Format, bool) {
	switch pf {
	case pvrFormatEtc1:
		return Etc1, true
	case pvrFormatEtc2RGB:
		return Etc2RGB, true
	case pvrFormatEtc2RGBA:
		return Etc2RGBA, true
	case pvrFormatDxt1:
		return Dxt1, true
	}
	return 0, false
}

func formatFromGL(internal uint32) (Format, bool) {
	switch internal {
	case glEtc1RGB8:
		return Etc1, true
	case glEtc2RGB8:
		return Etc2RGB, true
	case glEtc2RGBA8:
		return Etc2RGBA, true
	case glDxt1RGB:
		return Dxt1, true
	}
	return 0, false
}

func parsePVR(raw []byte) (*BlockData, error) {
	if len(raw) < pvrHeaderSize {
		return nil, newError(ErrBadContainer, "texpak: truncated PVR header")
	}
	if binary.LittleEndian.Uint32(raw[0:]) != pvrMagic {
		return nil, newError(ErrBadContainer, "texpak: bad PVR magic")
	}
	format, ok := formatFromPVR(binary.LittleEndian.Uint64(raw[8:]))
	if !ok {
		return nil, newError(ErrBadFormat, "texpak: unsupported PVR pixel format")
	}
	h := int(binary.LittleEndian.Uint32(raw[24:]))
	w := int(binary.LittleEndian.Uint32(raw[28:]))
	mips := int(binary.LittleEndian.Uint32(raw[44:]))
	meta := int(binary.LittleEndian.Uint32(raw[48:]))

	bd, err := NewBlockData(w, h, mips > 1, format)
	if err != nil {
		return nil, err
	}
	payload := raw[pvrHeaderSize:]
	if len(payload) < meta {
		return nil, newError(ErrBadContainer, "texpak: truncated PVR metadata")
	}
	payload = payload[meta:]
	if len(payload) < len(bd.data) {
		return nil, newError(ErrBadContainer, "texpak: truncated PVR payload")
	}
	copy(bd.data, payload)
	return bd, nil
}

func parseKTX(raw []byte) (*BlockData, error) {
	if len(raw) < ktxHeaderSize {
		return nil, newError(ErrBadContainer, "texpak: truncated KTX header")
	}
	if binary.LittleEndian.Uint32(raw[12:]) != ktxEndianness {
		return nil, newError(ErrBadContainer, "texpak: unsupported KTX endianness")
	}
	format, ok := formatFromGL(binary.LittleEndian.Uint32(raw[28:]))
	if !ok {
		return nil, newError(ErrBadFormat, "texpak: unsupported KTX internal format")
	}
	w := int(binary.LittleEndian.Uint32(raw[36:]))
	h := int(binary.LittleEndian.Uint32(raw[40:]))
	mips := int(binary.LittleEndian.Uint32(raw[56:]))
	kvLen := int(binary.LittleEndian.Uint32(raw[60:]))

	bd, err := NewBlockData(w, h, mips > 1, format)
	if err != nil {
		return nil, err
	}

	src := raw[ktxHeaderSize:]
	if len(src) < kvLen {
		return nil, newError(ErrBadContainer, "texpak: truncated KTX key/value data")
	}
	src = src[kvLen:]

	bpb := format.BytesPerBlock()
	off := 0
	for l := 0; l < bd.levels(); l++ {
		if len(src) < 4 {
			return nil, newError(ErrBadContainer, "texpak: truncated KTX level")
		}
		n := int(binary.LittleEndian.Uint32(src))
		src = src[4:]
		want := levelBlocks(w, h, l) * bpb
		if n != want || len(src) < n {
			return nil, newError(ErrBadContainer, "texpak: bad KTX level size")
		}
		copy(bd.data[off:], src[:n])
		src = src[n:]
		off += n
	}
	return bd, nil
}

func parsePVRZ(raw []byte) (*BlockData, error) {
	if len(raw) < 4 {
		return nil, newError(ErrBadContainer, "texpak: truncated PVRZ file")
	}
	size := binary.LittleEndian.Uint32(raw)

	zr, err := zlib.NewReader(bytes.NewReader(raw[4:]))
	if err != nil {
		return nil, newError(ErrBadContainer, "texpak: bad PVRZ stream: "+err.Error())
	}
	defer zr.Close()

	inflated, err := io.ReadAll(zr)
	if err != nil {
		return nil, newError(ErrBadContainer, "texpak: bad PVRZ stream: "+err.Error())
	}
	if len(inflated) != int(size) {
		return nil, newError(ErrBadContainer, "texpak: PVRZ size mismatch")
	}
	return parsePVR(inflated)
}

// ReadBlockData loads an encoded texture from a PVR, KTX or PVRZ file.
// The container is detected from the file content.
func ReadBlockData(path string) (*BlockData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, newError(ErrIO, "texpak: "+err.Error())
	}

	switch {
	case len(raw) >= 12 && bytes.Equal(raw[:12], ktxIdentifier[:]):
		return parseKTX(raw)
	case len(raw) >= 4 && binary.LittleEndian.Uint32(raw) == pvrMagic:
		return parsePVR(raw)
	default:
		return parsePVRZ(raw)
	}
}
