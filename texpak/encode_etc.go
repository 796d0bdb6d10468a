package texpak

import "math"

// blockPixels holds one 4x4 tile in row-major RGBA order: the texel at
// (x, y) occupies bytes [(4*y+x)*4 : (4*y+x)*4+4].
type blockPixels [64]byte

const maxLoss = int32(math.MaxInt32)

// encodeColorBlock produces the 64-bit ETC color payload for one tile.
// The ETC1 search runs twice, once per base color reducer, and the
// planar mode joins the contest when etc2 is set.
func encodeColorBlock(px *blockPixels, etc2 bool) uint64 {
	var work blockPixels

	best := encodeETC1(px, reduceAverage)
	decodeColorBlock(&work, best)
	bestLoss := blockLoss(px, &work)

	codeQ := encodeETC1(px, reduceQuantize)
	decodeColorBlock(&work, codeQ)
	if loss := blockLoss(px, &work); loss < bestLoss {
		best, bestLoss = codeQ, loss
	}

	if etc2 {
		codeP := encodePlanar(px)
		decodeColorBlock(&work, codeP)
		if loss := blockLoss(px, &work); loss < bestLoss {
			best = codeP
		}
	}
	return best
}

// blockLoss is the perceptually weighted squared error between two tiles.
func blockLoss(a, b *blockPixels) (loss int32) {
	for i := 0; i < 64; i += 4 {
		d0 := int32(a[i+0]) - int32(b[i+0])
		d1 := int32(a[i+1]) - int32(b[i+1])
		d2 := int32(a[i+2]) - int32(b[i+2])
		loss += lumaWeights[0]*d0*d0 + lumaWeights[1]*d1*d1 + lumaWeights[2]*d2*d2
	}
	return loss
}

// halfPixel returns the row-major byte offset of the i-th texel (0..7)
// in one half of a tile. flip 0 splits into left and right 2x4 columns,
// flip 1 into top and bottom 4x2 rows.
func halfPixel(flip, half, i int) int {
	if flip == 0 {
		x := half*2 + i/4
		y := i % 4
		return (4*y + x) * 4
	}
	y := half*2 + i/4
	x := i % 4
	return (4*y + x) * 4
}

func halfAverage(px *blockPixels, flip, half int) [3]float64 {
	var sums [3]int32
	for i := 0; i < 8; i++ {
		o := halfPixel(flip, half, i)
		sums[0] += int32(px[o+0])
		sums[1] += int32(px[o+1])
		sums[2] += int32(px[o+2])
	}
	return [3]float64{
		float64(sums[0]) / 8,
		float64(sums[1]) / 8,
		float64(sums[2]) / 8,
	}
}

// encodeETC1 searches the individual and differential modes over both
// flip orientations with the given base color reducer.
func encodeETC1(px *blockPixels, reduce reduceFunc) uint64 {
	bestCode, bestLoss := uint64(0), maxLoss

	for flip := 0; flip < 2; flip++ {
		avg0 := halfAverage(px, flip, 0)
		avg1 := halfAverage(px, flip, 1)

		base0 := reduce(avg0, true)
		base1 := reduce(avg1, true)

		d0 := (base1[0] >> 3) - (base0[0] >> 3)
		d1 := (base1[1] >> 3) - (base0[1] >> 3)
		d2 := (base1[2] >> 3) - (base0[2] >> 3)

		if -4 <= d0 && d0 <= 3 && -4 <= d1 && d1 <= 3 && -4 <= d2 && d2 <= 3 {
			table0, idx0, loss0 := encodeHalf(px, flip, 0, &base0)
			table1, idx1, loss1 := encodeHalf(px, flip, 1, &base1)

			if loss := loss0 + loss1; loss < bestLoss {
				bestLoss = loss
				bestCode = 0 |
					uint64(base0[0]>>3)<<59 |
					uint64(d0&7)<<56 |
					uint64(base0[1]>>3)<<51 |
					uint64(d1&7)<<48 |
					uint64(base0[2]>>3)<<43 |
					uint64(d2&7)<<40 |
					uint64(table0)<<37 |
					uint64(table1)<<34 |
					1<<33 |
					uint64(flip)<<32 |
					idx0 | idx1
			}
		} else {
			base0 = reduce(avg0, false)
			base1 = reduce(avg1, false)

			table0, idx0, loss0 := encodeHalf(px, flip, 0, &base0)
			table1, idx1, loss1 := encodeHalf(px, flip, 1, &base1)

			if loss := loss0 + loss1; loss < bestLoss {
				bestLoss = loss
				bestCode = 0 |
					uint64(base0[0]>>4)<<60 |
					uint64(base1[0]>>4)<<56 |
					uint64(base0[1]>>4)<<52 |
					uint64(base1[1]>>4)<<48 |
					uint64(base0[2]>>4)<<44 |
					uint64(base1[2]>>4)<<40 |
					uint64(table0)<<37 |
					uint64(table1)<<34 |
					uint64(flip)<<32 |
					idx0 | idx1
			}
		}
	}
	return bestCode
}

// encodeHalf picks the best intensity table for one half of a tile and
// returns the packed selector bit planes along with the résiduals.
func encodeHalf(px *blockPixels, flip, half int, base *[3]int32) (table uint32, indexes uint64, loss int32) {
	loss = maxLoss
	for t := uint32(0); t < 8; t++ {
		idx, l := encodeHalfTable(px, flip, half, base, t)
		if l < loss {
			table, indexes, loss = t, idx, l
		}
	}
	return table, indexes, loss
}

func encodeHalfTable(px *blockPixels, flip, half int, base *[3]int32, table uint32) (indexes uint64, loss int32) {
	for i := 0; i < 8; i++ {
		o := halfPixel(flip, half, i)
		orig0 := int32(px[o+0])
		orig1 := int32(px[o+1])
		orig2 := int32(px[o+2])

		bestJ, bestOne := 0, maxLoss
		for j := 0; j < 4; j++ {
			mod := etcModifiers[table][j]
			d0 := int32(clamp255(base[0]+mod)) - orig0
			d1 := int32(clamp255(base[1]+mod)) - orig1
			d2 := int32(clamp255(base[2]+mod)) - orig2
			one := lumaWeights[0]*d0*d0 + lumaWeights[1]*d1*d1 + lumaWeights[2]*d2*d2
			if one < bestOne {
				bestJ, bestOne = j, one
			}
		}

		// The selector planes are indexed in column-major texel order.
		o4 := o / 4
		shift := uint((o4%4)*4 + o4/4)
		indexes |= uint64(bestJ&1) << shift
		indexes |= uint64(bestJ>>1) << (shift + 16)
		loss += bestOne
	}
	return indexes, loss
}

type reduceFunc func(avgs [3]float64, produce5Bit bool) [3]int32

// reduceAverage rounds the half averages to the nearest representable
// base color.
func reduceAverage(avgs [3]float64, produce5Bit bool) [3]int32 {
	if produce5Bit {
		r := int32(avgs[0]*31/255 + 0.5)
		g := int32(avgs[1]*31/255 + 0.5)
		b := int32(avgs[2]*31/255 + 0.5)
		return [3]int32{(r << 3) | (r >> 2), (g << 3) | (g >> 2), (b << 3) | (b >> 2)}
	}
	r := int32(avgs[0]*15/255 + 0.5)
	g := int32(avgs[1]*15/255 + 0.5)
	b := int32(avgs[2]*15/255 + 0.5)
	return [3]int32{(r << 4) | r, (g << 4) | g, (b << 4) | b}
}

// reduceQuantize considers both quantization corners per channel and
// picks the combination whose channel errors cancel best against each
// other, which tends to preserve the hue of smooth regions.
func reduceQuantize(avgs [3]float64, produce5Bit bool) (ret [3]int32) {
	var corners [3][2]int32

	if produce5Bit {
		for c := 0; c < 3; c++ {
			lo := int32(avgs[c] * 31 / 255)
			hi := min(31, lo+1)
			corners[c] = [2]int32{(lo << 3) | (lo >> 2), (hi << 3) | (hi >> 2)}
		}
	} else {
		for c := 0; c < 3; c++ {
			lo := int32(avgs[c] * 15 / 255)
			hi := min(15, lo+1)
			corners[c] = [2]int32{(lo << 4) | lo, (hi << 4) | hi}
		}
	}

	var deltas [3][2]float64
	for c := 0; c < 3; c++ {
		deltas[c] = [2]float64{
			float64(corners[c][0]) - avgs[c],
			float64(corners[c][1]) - avgs[c],
		}
	}

	wr := float64(lumaWeights[0])
	wg := float64(lumaWeights[1])
	wb := float64(lumaWeights[2])

	bestLoss := math.MaxFloat64
	for i := 0; i < 8; i++ {
		ir := i & 1
		ig := (i >> 1) & 1
		ib := (i >> 2) & 1
		drg := deltas[0][ir] - deltas[1][ig]
		dgb := deltas[1][ig] - deltas[2][ib]
		dbr := deltas[2][ib] - deltas[0][ir]
		loss := wr*wg*drg*drg + wg*wb*dgb*dgb + wb*wr*dbr*dbr
		if loss < bestLoss {
			bestLoss = loss
			ret[0] = corners[0][ir]
			ret[1] = corners[1][ig]
			ret[2] = corners[2][ib]
		}
	}
	return ret
}

// encodePlanar fits the three planar corner colors by least squares and
// packs them into the planar mode's bit pattern. The packing must also
// steer the differential-mode overflow checks: red and green stay in
// range while blue overflows, which is what marks the block as planar.
func encodePlanar(px *blockPixels) uint64 {
	// The horizontal and vertical gradient rows of the transposed
	// design matrix; the first row makes the three weights sum to 1.
	zMatrix := [3][16]float64{{
		+1.00, +0.75, +0.50, +0.25,
		+0.75, +0.50, +0.25, +0.00,
		+0.50, +0.25, +0.00, -0.25,
		+0.25, +0.00, -0.25, -0.50,
	}, {
		+0.00, +0.25, +0.50, +0.75,
		+0.00, +0.25, +0.50, +0.75,
		+0.00, +0.25, +0.50, +0.75,
		+0.00, +0.25, +0.50, +0.75,
	}, {
		+0.00, +0.00, +0.00, +0.00,
		+0.25, +0.25, +0.25, +0.25,
		+0.50, +0.50, +0.50, +0.50,
		+0.75, +0.75, +0.75, +0.75,
	}}
	// Precomputed inverse of the normal matrix.
	cMatrix := [3][3]float64{
		{+0.2875, -0.0125, -0.0125},
		{-0.0125, +0.4875, -0.3125},
		{-0.0125, -0.3125, +0.4875},
	}

	var colorO, colorH, colorV [3]float64
	for channel := 0; channel < 3; channel++ {
		var d [3]float64
		for a := 0; a < 3; a++ {
			sum := 0.0
			for i := 0; i < 16; i++ {
				sum += zMatrix[a][i] * float64(px[4*i+channel])
			}
			d[a] = sum
		}
		var x [3]float64
		for c := 0; c < 3; c++ {
			x[c] = cMatrix[c][0]*d[0] + cMatrix[c][1]*d[1] + cMatrix[c][2]*d[2]
		}
		colorO[channel] = math.Min(255, math.Max(0, x[0]))
		colorH[channel] = math.Min(255, math.Max(0, x[1]))
		colorV[channel] = math.Min(255, math.Max(0, x[2]))
	}

	oR := int32(colorO[0]*63/255 + 0.5)
	oG := int32(colorO[1]*127/255 + 0.5)
	oB := int32(colorO[2]*63/255 + 0.5)
	hR := int32(colorH[0]*63/255 + 0.5)
	hG := int32(colorH[1]*127/255 + 0.5)
	hB := int32(colorH[2]*63/255 + 0.5)
	vR := int32(colorV[0]*63/255 + 0.5)
	vG := int32(colorV[1]*127/255 + 0.5)
	vB := int32(colorV[2]*63/255 + 0.5)

	code := 0 |
		uint64(oR)<<57 |
		uint64(oG&0x40)<<50 |
		uint64(oG&0x3F)<<49 |
		uint64(oB&0x20)<<43 |
		uint64(oB&0x18)<<40 |
		uint64(oB&0x07)<<39 |
		uint64(hR&0x3E)<<33 |
		uint64(hR&0x01)<<32 |
		uint64(hG)<<25 |
		uint64(hB)<<19 |
		uint64(vR)<<13 |
		uint64(vG)<<6 |
		uint64(vB) |
		1<<33

	// Keep diff-red in range.
	code |= (((code >> 62) & 1) ^ 1) << 63

	// Keep diff-green in range.
	code |= (((code >> 54) & 1) ^ 1) << 55

	// Force diff-blue out of range.
	a := (code >> 44) & 1
	b := (code >> 43) & 1
	c := (code >> 41) & 1
	d := (code >> 40) & 1
	if 0 != ((a & c) | (^a & b & c & d) | (a & b & ^c & d)) {
		code |= 7 << 45
	} else {
		code |= 1 << 42
	}

	return code
}
