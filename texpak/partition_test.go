package texpak_test

import (
	"testing"

	"github.com/texturelab/texpak/texpak"
)

// chainDims lists the block-aligned dimensions of every mip level.
func chainDims(w, h int, mipmap bool) [][2]int {
	dims := [][2]int{{w, h}}
	if !mipmap {
		return dims
	}
	for w > 1 || h > 1 {
		w = max(w/2, 1)
		h = max(h/2, 1)
		dims = append(dims, [2]int{(w + 3) &^ 3, (h + 3) &^ 3})
	}
	return dims
}

func TestProviderTilesExactly(t *testing.T) {
	for _, tc := range []struct {
		w, h   int
		mipmap bool
	}{
		{8, 8, false},
		{256, 256, false},
		{256, 256, true},
		{64, 16, true},
		{4, 4, true},
		{512, 4, false},
		{12, 48, true},
	} {
		dp := texpak.NewDataProvider(makeGradient(tc.w, tc.h), tc.mipmap)

		if w, h := dp.Size(); w != tc.w || h != tc.h {
			t.Fatalf("%dx%d: Size() = %dx%d", tc.w, tc.h, w, h)
		}

		dims := chainDims(tc.w, tc.h, tc.mipmap)
		wantBlocks := 0
		for _, d := range dims {
			wantBlocks += (d[0] / 4) * (d[1] / 4)
		}

		level, linesLeft := 0, dims[0][1]
		block := 0
		n := dp.NumberOfParts()
		for i := 0; i < n; i++ {
			part := dp.NextPart()

			if part.Width%4 != 0 || part.Lines%4 != 0 || part.Lines <= 0 {
				t.Fatalf("%dx%d part %d: bad slice %dx%d", tc.w, tc.h, i, part.Width, part.Lines)
			}
			if part.Width != dims[level][0] {
				t.Fatalf("%dx%d part %d: width %d, want %d for level %d",
					tc.w, tc.h, i, part.Width, dims[level][0], level)
			}
			if part.Lines > linesLeft {
				t.Fatalf("%dx%d part %d: %d lines overflow level %d", tc.w, tc.h, i, part.Lines, level)
			}
			if want := part.Width * part.Lines * 4; len(part.Src) < want {
				t.Fatalf("%dx%d part %d: source holds %d bytes, want at least %d",
					tc.w, tc.h, i, len(part.Src), want)
			}
			if part.Block != block {
				t.Fatalf("%dx%d part %d: block offset %d, want %d", tc.w, tc.h, i, part.Block, block)
			}

			block += (part.Width / 4) * (part.Lines / 4)
			linesLeft -= part.Lines
			if linesLeft == 0 && level+1 < len(dims) {
				level++
				linesLeft = dims[level][1]
			}
		}

		if linesLeft != 0 || level != len(dims)-1 {
			t.Fatalf("%dx%d: chain not fully covered (level %d of %d, %d lines left)",
				tc.w, tc.h, level, len(dims), linesLeft)
		}
		if block != wantBlocks {
			t.Fatalf("%dx%d: parts cover %d blocks, want %d", tc.w, tc.h, block, wantBlocks)
		}
	}
}

func TestProviderAlphaDetection(t *testing.T) {
	if texpak.NewDataProvider(makeGradient(16, 16), false).Alpha() {
		t.Fatalf("opaque image reported alpha")
	}
	if !texpak.NewDataProvider(makeAlphaGradient(16, 16), false).Alpha() {
		t.Fatalf("translucent image reported no alpha")
	}
}

func TestProviderMipChainReaches1x1(t *testing.T) {
	dp := texpak.NewDataProvider(makeGradient(64, 16), true)

	// 64x16 halves to 1x1 in 6 steps: 7 levels in total.
	lastWidth := 0
	for i := dp.NumberOfParts(); i > 0; i-- {
		lastWidth = dp.NextPart().Width
	}
	if lastWidth != 4 {
		t.Fatalf("last level width %d, want 4 (padded 1x1)", lastWidth)
	}
	if !dp.Mipmap() {
		t.Fatalf("Mipmap() = false")
	}
}
