package texpak

// decodeColorBlock expands a 64-bit ETC color payload into a row-major
// tile. Individual, differential, T, H and planar blocks are all
// understood so that foreign files decode correctly, even though the
// encoder only emits the first two plus planar. Alpha is set opaque.
func decodeColorBlock(dst *blockPixels, code uint64) {
	for i := 3; i < 64; i += 4 {
		dst[i] = 255
	}

	diff := (code >> 33) & 1

	var c [4][3]int32
	mode := 0
	for i := 0; i < 3; i++ {
		if diff == 0 {
			a := uint32(code>>(60-i*8)) & 15
			b := uint32(code>>(56-i*8)) & 15
			c[0][i] = expand4(a)
			c[1][i] = expand4(b)
		} else {
			a := uint32(code>>(59-i*8)) & 31
			b := int32(a) + etcDiff[(code>>(56-i*8))&7]
			if b < 0 || b > 31 {
				mode = i + 1
				break
			}
			c[0][i] = expand5(a)
			c[1][i] = expand5(uint32(b))
		}
	}

	switch mode {
	case 0: // individual and differential
		codes0 := &etcModifiers[(code>>37)&7]
		codes1 := &etcModifiers[(code>>34)&7]
		flip := (code >> 32) & 1

		for j := 0; j < 16; j++ {
			x, y := j/4, j%4
			base := &c[0]
			codes := codes0
			if (flip == 0 && x >= 2) || (flip == 1 && y >= 2) {
				base = &c[1]
				codes = codes1
			}
			idx := (code>>j)&1 | (code>>(15+j))&2
			mod := codes[idx]
			o := (4*y + x) * 4
			dst[o+0] = clamp255(base[0] + mod)
			dst[o+1] = clamp255(base[1] + mod)
			dst[o+2] = clamp255(base[2] + mod)
		}

	case 1: // T
		c[0][0] = expand4(uint32(code>>57)&12 | uint32(code>>56)&3)
		c[0][1] = expand4(uint32(code >> 52))
		c[0][2] = expand4(uint32(code >> 48))
		c[2][0] = expand4(uint32(code >> 44))
		c[2][1] = expand4(uint32(code >> 40))
		c[2][2] = expand4(uint32(code >> 36))

		mod := etcTHModifiers[(code>>33)&6|(code>>32)&1]
		for i := 0; i < 3; i++ {
			c[1][i] = c[2][i] + mod
			c[3][i] = c[2][i] - mod
		}
		decodePaint(dst, code, &c)

	case 2: // H
		c[0][0] = expand4(uint32(code >> 59))
		c[0][1] = expand4(uint32(code>>55)&14 | uint32(code>>52)&1)
		c[0][2] = expand4(uint32(code>>48)&8 | uint32(code>>47)&7)
		c[2][0] = expand4(uint32(code >> 43))
		c[2][1] = expand4(uint32(code >> 39))
		c[2][2] = expand4(uint32(code >> 35))

		modIdx := (code>>32)&4 | (code>>31)&2
		if c[0][0]<<16|c[0][1]<<8|c[0][2] >= c[2][0]<<16|c[2][1]<<8|c[2][2] {
			modIdx++
		}
		mod := etcTHModifiers[modIdx]
		c[0][0], c[1][0] = c[0][0]+mod, c[0][0]-mod
		c[0][1], c[1][1] = c[0][1]+mod, c[0][1]-mod
		c[0][2], c[1][2] = c[0][2]+mod, c[0][2]-mod
		c[2][0], c[3][0] = c[2][0]+mod, c[2][0]-mod
		c[2][1], c[3][1] = c[2][1]+mod, c[2][1]-mod
		c[2][2], c[3][2] = c[2][2]+mod, c[2][2]-mod
		decodePaint(dst, code, &c)

	case 3: // planar
		var o, h, v [3]int32
		o[0] = expand6(uint32(code >> 57))
		o[1] = expand7(uint32(code>>50)&64 | uint32(code>>49)&63)
		o[2] = expand6(uint32(code>>43)&32 | uint32(code>>40)&24 | uint32(code>>39)&7)
		h[0] = expand6(uint32(code>>33)&62 | uint32(code>>32)&1)
		h[1] = expand7(uint32(code >> 25))
		h[2] = expand6(uint32(code >> 19))
		v[0] = expand6(uint32(code >> 13))
		v[1] = expand7(uint32(code >> 6))
		v[2] = expand6(uint32(code))

		for dy := int32(0); dy < 4; dy++ {
			for dx := int32(0); dx < 4; dx++ {
				p := (4*dy + dx) * 4
				for i := 0; i < 3; i++ {
					dst[p+int32(i)] = clamp255((dx*(h[i]-o[i]) + dy*(v[i]-o[i]) + 4*o[i] + 2) >> 2)
				}
			}
		}
	}
}

// decodePaint applies the shared T/H selector plane over a four-entry
// palette.
func decodePaint(dst *blockPixels, code uint64, c *[4][3]int32) {
	for j := 0; j < 16; j++ {
		x, y := j/4, j%4
		idx := (code>>j)&1 | (code>>(15+j))&2
		o := (4*y + x) * 4
		dst[o+0] = clamp255(c[idx][0])
		dst[o+1] = clamp255(c[idx][1])
		dst[o+2] = clamp255(c[idx][2])
	}
}

// decodeAlphaBlock expands a 64-bit EAC payload into the alpha bytes of
// a row-major tile.
func decodeAlphaBlock(dst *blockPixels, code uint64) {
	base := int32(code >> 56)
	mul := int32(code>>52) & 15
	table := (code >> 48) & 15

	for j := 0; j < 16; j++ {
		x, y := j/4, j%4
		sel := (code >> (3 * uint(15-j))) & 7
		dst[(4*y+x)*4+3] = clamp255(base + eacModifiers[table][sel]*mul)
	}
}

// dxtPalette4 builds the four-color palette of a DXT1 block whose first
// endpoint compares greater than the second.
func dxtPalette4(c0, c1 uint16) (p [4][3]int32) {
	p[0][0], p[0][1], p[0][2] = unpack565(c0)
	p[1][0], p[1][1], p[1][2] = unpack565(c1)
	for c := 0; c < 3; c++ {
		p[2][c] = (2*p[0][c] + p[1][c] + 1) / 3
		p[3][c] = (p[0][c] + 2*p[1][c] + 1) / 3
	}
	return p
}

// decodeDXTBlock expands an 8-byte DXT1 block into a row-major tile.
// Index 3 of the three-color mode decodes as transparent black.
func decodeDXTBlock(dst *blockPixels, src []byte) {
	c0 := uint16(src[0]) | uint16(src[1])<<8
	c1 := uint16(src[2]) | uint16(src[3])<<8
	indexes := uint32(src[4]) | uint32(src[5])<<8 | uint32(src[6])<<16 | uint32(src[7])<<24

	threeColor := c0 <= c1
	var p [4][3]int32
	if threeColor {
		p[0][0], p[0][1], p[0][2] = unpack565(c0)
		p[1][0], p[1][1], p[1][2] = unpack565(c1)
		for c := 0; c < 3; c++ {
			p[2][c] = (p[0][c] + p[1][c]) / 2
		}
	} else {
		p = dxtPalette4(c0, c1)
	}

	for i := 0; i < 16; i++ {
		j := (indexes >> (2 * i)) & 3
		o := 4 * i
		dst[o+0] = clamp255(p[j][0])
		dst[o+1] = clamp255(p[j][1])
		dst[o+2] = clamp255(p[j][2])
		if threeColor && j == 3 {
			dst[o+3] = 0
		} else {
			dst[o+3] = 255
		}
	}
}
