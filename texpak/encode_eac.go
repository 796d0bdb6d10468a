package texpak

// encodeAlphaBlock produces the 64-bit EAC payload for the alpha
// channel of one tile. The search covers every multiplier and modifier
// table with the base anchored near the midpoint of the alpha range.
func encodeAlphaBlock(px *blockPixels) uint64 {
	mn, mx := int32(255), int32(0)
	for i := 0; i < 16; i++ {
		a := int32(px[4*i+3])
		mn = min(mn, a)
		mx = max(mx, a)
	}
	if mn == mx {
		// Constant plane: a zero multiplier pins every texel to the base.
		return uint64(mn) << 56
	}

	mid := (mn + mx + 1) / 2
	bestBase, bestMul, bestTable := mid, int32(1), 0
	var bestSel [16]int32
	bestErr := int64(1) << 62

	var sel [16]int32
	for _, base := range [3]int32{max(0, mid-1), mid, min(255, mid+1)} {
		for mul := int32(1); mul < 16; mul++ {
			for table := 0; table < 16; table++ {
				blockErr := int64(0)
				for i := 0; i < 16 && blockErr < bestErr; i++ {
					orig := int32(px[4*i+3])
					bestOne := int64(1) << 62
					for s := 0; s < 8; s++ {
						v := int32(clamp255(base + eacModifiers[table][s]*mul))
						d := int64(v - orig)
						if d2 := d * d; d2 < bestOne {
							bestOne = d2
							sel[i] = int32(s)
						}
					}
					blockErr += bestOne
				}
				if blockErr < bestErr {
					bestBase, bestMul, bestTable = base, mul, table
					bestSel = sel
					bestErr = blockErr
					if blockErr == 0 {
						goto done
					}
				}
			}
		}
	}

done:
	code := uint64(bestBase)<<56 | uint64(bestMul)<<52 | uint64(bestTable)<<48
	for i := 0; i < 16; i++ {
		x := i & 3
		y := i >> 2
		shift := uint(15-(4*x+y)) * 3
		code |= uint64(bestSel[i]) << shift
	}
	return code
}
