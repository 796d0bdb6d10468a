package texpak

// ditherBias is a 4x4 ordered dither kernel derived from the Bayer
// matrix, scaled to roughly half the quantization step of a 5-bit
// channel and centered on zero.
var ditherBias = [16]int32{
	-4, +0, -3, +1,
	+2, -2, +3, -1,
	-3, +1, -4, +0,
	+3, -1, +2, -2,
}

// ditherBlock applies the ordered dither kernel to the color channels
// of a tile in place. Alpha is left untouched.
func ditherBlock(px *blockPixels) {
	for i := 0; i < 16; i++ {
		bias := ditherBias[i]
		o := 4 * i
		px[o+0] = clamp255(int32(px[o+0]) + bias)
		px[o+1] = clamp255(int32(px[o+1]) + bias)
		px[o+2] = clamp255(int32(px[o+2]) + bias)
	}
}
