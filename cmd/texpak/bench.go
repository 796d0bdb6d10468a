package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/texturelab/texpak/texpak"
)

const benchRuns = 9

// benchmark times repeated encode runs, or decode runs when view is
// set, and reports the median throughput.
func benchmark(img *texpak.Image, opts texpak.Options, view bool) error {
	opts.Logger = nil

	var times []time.Duration
	if view {
		color, _, err := texpak.Encode(img, opts)
		if err != nil {
			return err
		}
		for i := 0; i < benchRuns; i++ {
			start := time.Now()
			if _, err := color.Decode(); err != nil {
				return err
			}
			times = append(times, time.Since(start))
		}
	} else {
		for i := 0; i < benchRuns; i++ {
			start := time.Now()
			if _, _, err := texpak.Encode(img, opts); err != nil {
				return err
			}
			times = append(times, time.Since(start))
		}
	}

	med := median(times)
	mpxs := float64(img.Width) * float64(img.Height) / 1e6 / med.Seconds()
	what := "encode"
	if view {
		what = "decode"
	}
	fmt.Printf("median %s time of %d runs: %.3f ms (%.2f Mpx/s)\n",
		what, benchRuns, float64(med.Microseconds())/1e3, mpxs)
	return nil
}

func median(d []time.Duration) time.Duration {
	s := append([]time.Duration(nil), d...)
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
	return s[len(s)/2]
}
