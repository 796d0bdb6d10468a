package texpak

// Intensity modifier tables for the ETC1 individual and differential
// modes, indexed by the on-wire 2-bit selector (lsb | msb<<1).
var etcModifiers = [8][4]int32{
	{2, 8, -2, -8},
	{5, 17, -5, -17},
	{9, 29, -9, -29},
	{13, 42, -13, -42},
	{18, 60, -18, -60},
	{24, 80, -24, -80},
	{33, 106, -33, -106},
	{47, 183, -47, -183},
}

// Distance table shared by the ETC2 T and H modes.
var etcTHModifiers = [8]int32{3, 6, 11, 16, 23, 32, 41, 64}

// Base color delta table for the differential mode, indexed by the
// 3-bit on-wire field.
var etcDiff = [8]int32{0, 1, 2, 3, -4, -3, -2, -1}

// Pixel modifier tables for EAC alpha blocks, indexed by the 4-bit
// table field and the 3-bit per-texel selector.
var eacModifiers = [16][8]int32{
	{-3, -6, -9, -15, 2, 5, 8, 14},
	{-3, -7, -10, -13, 2, 6, 9, 12},
	{-2, -5, -8, -13, 1, 4, 7, 12},
	{-2, -4, -6, -13, 1, 3, 5, 12},
	{-3, -6, -8, -12, 2, 5, 7, 11},
	{-3, -7, -9, -11, 2, 6, 8, 10},
	{-4, -7, -8, -11, 3, 6, 7, 10},
	{-3, -5, -8, -11, 2, 4, 7, 10},
	{-2, -6, -8, -10, 1, 5, 7, 9},
	{-2, -5, -8, -10, 1, 4, 7, 9},
	{-2, -4, -8, -10, 1, 3, 7, 9},
	{-2, -5, -7, -10, 1, 4, 6, 9},
	{-3, -4, -7, -10, 2, 3, 6, 9},
	{-1, -2, -3, -10, 0, 1, 2, 9},
	{-4, -6, -8, -9, 3, 5, 7, 8},
	{-3, -5, -7, -9, 2, 4, 6, 8},
}

// Perceptual channel weights used by the block error metrics.
var lumaWeights = [3]int32{38, 76, 14}

func clamp255(v int32) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

func expand4(v uint32) int32 {
	v &= 15
	return int32((v << 4) | v)
}

func expand5(v uint32) int32 {
	v &= 31
	return int32((v << 3) | (v >> 2))
}

func expand6(v uint32) int32 {
	v &= 63
	return int32((v << 2) | (v >> 4))
}

func expand7(v uint32) int32 {
	v &= 127
	return int32((v << 1) | (v >> 6))
}
