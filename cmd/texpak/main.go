package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"

	"github.com/texturelab/texpak/texpak"
)

func usage() {
	fmt.Fprintln(os.Stderr, `usage: texpak [options] input [output]

Encodes an image into a block-compressed texture container (.pvr, .ktx
or .pvrz, chosen by the output extension; the default output is out.pvr).

  -v        view mode: decode an encoded input back to a PNG
  -s        print decode-back RMSE and PSNR statistics
  -b        benchmark: median wall time of 9 runs
  -m        generate mipmaps down to 1x1
  -d        ordered dithering (ignored for ETC2 output)
  -a file   write the alpha channel as a separate grayscale texture
  -etc2     encode ETC2_RGB
  -rgba     encode ETC2_RGBA (implies -etc2; needs an alpha channel)
  -dxt1     encode DXT1
  -j N      worker count (default: all CPU cores)
  -fit      prescale inputs whose dimensions are not multiples of 4`)
}

type stderrLogger struct{}

func (stderrLogger) Log(msg string) {
	fmt.Fprintln(os.Stderr, "texpak: "+msg)
}

func main() {
	var (
		view      bool
		stats     bool
		bench     bool
		mipmap    bool
		dither    bool
		alphaPath string
		etc2      bool
		rgba      bool
		dxt1      bool
		workers   int
		fit       bool
	)
	flag.Usage = usage
	flag.BoolVar(&view, "v", false, "decode input back to PNG")
	flag.BoolVar(&stats, "s", false, "print RMSE and PSNR statistics")
	flag.BoolVar(&bench, "b", false, "benchmark mode")
	flag.BoolVar(&mipmap, "m", false, "generate mipmaps")
	flag.BoolVar(&dither, "d", false, "ordered dithering")
	flag.StringVar(&alphaPath, "a", "", "separate alpha texture output path")
	flag.BoolVar(&etc2, "etc2", false, "encode ETC2_RGB")
	flag.BoolVar(&rgba, "rgba", false, "encode ETC2_RGBA")
	flag.BoolVar(&dxt1, "dxt1", false, "encode DXT1")
	flag.IntVar(&workers, "j", 0, "worker count")
	flag.BoolVar(&fit, "fit", false, "prescale to block-aligned dimensions")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		usage()
		os.Exit(2)
	}
	input := args[0]

	if view && !bench {
		output := "out.png"
		if len(args) > 1 {
			output = args[1]
		}
		if err := viewTexture(input, output); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	output := "out.pvr"
	if len(args) > 1 {
		output = args[1]
	}

	opts := texpak.Options{
		ETC2:          etc2,
		RGBA:          rgba,
		DXT1:          dxt1,
		Mipmap:        mipmap,
		Dither:        dither,
		SeparateAlpha: alphaPath != "",
		Workers:       workers,
		Logger:        stderrLogger{},
	}

	img, err := loadImage(input, fit)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if bench {
		if err := benchmark(img, opts, view); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	color, alpha, err := texpak.Encode(img, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := color.Write(output); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if alpha != nil {
		if err := alpha.Write(alphaPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	if stats {
		q, err := texpak.MeasureQuality(img, color, texpak.ChannelsRGB)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("RGB:   RMSE %.4f  PSNR %.2f dB\n", q.RMSE, q.PSNR)

		if color.Format() == texpak.Etc2RGBA {
			qa, err := texpak.MeasureAlphaQuality(img, color)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			fmt.Printf("Alpha: RMSE %.4f  PSNR %.2f dB\n", qa.RMSE, qa.PSNR)
		}
		if alpha != nil {
			qa, err := texpak.MeasureQuality(img, alpha, texpak.ChannelsAlpha)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			fmt.Printf("Alpha: RMSE %.4f  PSNR %.2f dB\n", qa.RMSE, qa.PSNR)
		}
	}
}

func viewTexture(input, output string) error {
	bd, err := texpak.ReadBlockData(input)
	if err != nil {
		return err
	}
	img, err := bd.Decode()
	if err != nil {
		return err
	}

	out, err := os.Create(output)
	if err != nil {
		return err
	}
	defer out.Close()
	return png.Encode(out, img.ToNRGBA())
}
