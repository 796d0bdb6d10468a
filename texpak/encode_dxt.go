package texpak

// pack565 quantizes an RGB color to the 5:6:5 endpoint encoding.
func pack565(r, g, b int32) uint16 {
	return uint16((r>>3)<<11 | (g>>2)<<5 | b>>3)
}

// unpack565 expands a 5:6:5 endpoint back to 8-bit RGB.
func unpack565(c uint16) (r, g, b int32) {
	r = expand5(uint32(c >> 11))
	g = expand6(uint32(c>>5) & 63)
	b = expand5(uint32(c) & 31)
	return r, g, b
}

// encodeDXTBlock range-fits one tile into a DXT1 block: the endpoints
// come from the per-channel extremes, slightly inset to reduce the
// error of interior texels.
func encodeDXTBlock(px *blockPixels, dst []byte) {
	var mn, mx [3]int32
	for c := 0; c < 3; c++ {
		mn[c] = 255
	}
	for i := 0; i < 16; i++ {
		for c := 0; c < 3; c++ {
			v := int32(px[4*i+c])
			mn[c] = min(mn[c], v)
			mx[c] = max(mx[c], v)
		}
	}
	for c := 0; c < 3; c++ {
		inset := (mx[c] - mn[c]) >> 4
		mn[c] = min(255, mn[c]+inset)
		mx[c] = max(0, mx[c]-inset)
	}

	c0 := pack565(mx[0], mx[1], mx[2])
	c1 := pack565(mn[0], mn[1], mn[2])

	if c0 == c1 {
		// Flat block: endpoint 0 carries the color, all indices zero.
		dst[0] = byte(c0)
		dst[1] = byte(c0 >> 8)
		dst[2] = byte(c1)
		dst[3] = byte(c1 >> 8)
		dst[4], dst[5], dst[6], dst[7] = 0, 0, 0, 0
		return
	}
	if c0 < c1 {
		// c0 > c1 selects the four-color mode.
		c0, c1 = c1, c0
	}

	palette := dxtPalette4(c0, c1)

	var indexes uint32
	for i := 0; i < 16; i++ {
		bestJ, bestErr := 0, maxLoss
		for j := 0; j < 4; j++ {
			d0 := int32(px[4*i+0]) - palette[j][0]
			d1 := int32(px[4*i+1]) - palette[j][1]
			d2 := int32(px[4*i+2]) - palette[j][2]
			err := lumaWeights[0]*d0*d0 + lumaWeights[1]*d1*d1 + lumaWeights[2]*d2*d2
			if err < bestErr {
				bestJ, bestErr = j, err
			}
		}
		indexes |= uint32(bestJ) << (2 * i)
	}

	dst[0] = byte(c0)
	dst[1] = byte(c0 >> 8)
	dst[2] = byte(c1)
	dst[3] = byte(c1 >> 8)
	dst[4] = byte(indexes)
	dst[5] = byte(indexes >> 8)
	dst[6] = byte(indexes >> 16)
	dst[7] = byte(indexes >> 24)
}
