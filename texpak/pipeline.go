package texpak

import (
	"context"
	"math"
	"runtime"
)

// Options configures one encode run. The zero value encodes ETC1
// without mipmaps on all available CPU cores.
type Options struct {
	// ETC2 selects ETC2_RGB output. RGBA selects ETC2_RGBA when the
	// source has alpha and implies ETC2 otherwise. DXT1 selects DXT1
	// and yields to ETC2 when both are set.
	ETC2 bool
	RGBA bool
	DXT1 bool

	// Mipmap encodes the full mip chain down to 1x1.
	Mipmap bool

	// Dither applies ordered dithering before encoding. It is forced
	// off for ETC2 output.
	Dither bool

	// SeparateAlpha encodes the alpha plane as a second grayscale
	// buffer in the color format. It is skipped for opaque sources and
	// when RGBA output already carries alpha.
	SeparateAlpha bool

	// Workers is the size of the encode pool. Zero means one worker
	// per available CPU core.
	Workers int

	// Logger receives diagnostics. Nil discards them.
	Logger Logger
}

func (o *Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}

// encodeTask carries everything one work unit needs by value, so that
// queued closures share no mutable state.
type encodeTask struct {
	part    Part
	dst     *BlockData
	channel Channels
	dither  bool
}

func (t encodeTask) run() {
	blocks := (t.part.Width / 4) * (t.part.Lines / 4)
	offset := t.part.Block * t.dst.Format().BytesPerBlock()
	if t.dst.Format() == Etc2RGBA {
		t.dst.ProcessRGBA(t.part.Src, blocks, offset, t.part.Width)
	} else {
		t.dst.Process(t.part.Src, blocks, offset, t.part.Width, t.channel, t.dither)
	}
}

// Encode compresses img according to opts. It returns the color buffer
// and, when a separate alpha plane was requested and applicable, the
// alpha buffer (nil otherwise).
func Encode(img *Image, opts Options) (*BlockData, *BlockData, error) {
	return EncodeContext(context.Background(), img, opts)
}

// EncodeContext is Encode with cooperative cancellation. On
// cancellation the partially written buffers are discarded and an
// ErrCancelled error is returned.
func EncodeContext(ctx context.Context, img *Image, opts Options) (*BlockData, *BlockData, error) {
	if img == nil || len(img.Pix) != img.Width*img.Height*4 {
		return nil, nil, newError(ErrBadParam, "texpak: nil or inconsistent image")
	}
	if img.Width <= 0 || img.Height <= 0 || img.Width%4 != 0 || img.Height%4 != 0 {
		return nil, nil, newError(ErrBadDims, "texpak: dimensions must be positive multiples of 4")
	}
	if opts.Workers < 0 {
		return nil, nil, newError(ErrBadConfig, "texpak: negative worker count")
	}

	log := opts.Logger
	if log == nil {
		log = NopLogger()
	}

	dp := NewDataProvider(img, opts.Mipmap)
	format := PickFormat(FormatRequest{
		ETC2:        opts.ETC2,
		RGBA:        opts.RGBA,
		DXT1:        opts.DXT1,
		SourceAlpha: dp.Alpha(),
	})
	if opts.RGBA && !dp.Alpha() {
		logf(log, "source has no alpha channel, falling back to %s", format)
	}

	dither := opts.Dither
	if dither && !DitherAllowed(format) {
		logf(log, "dithering is not applied to %s output", format)
		dither = false
	}

	color, err := NewBlockData(img.Width, img.Height, opts.Mipmap, format)
	if err != nil {
		return nil, nil, err
	}

	var alpha *BlockData
	if opts.SeparateAlpha && dp.Alpha() && format != Etc2RGBA {
		alpha, err = NewBlockData(img.Width, img.Height, opts.Mipmap, format)
		if err != nil {
			return nil, nil, err
		}
	}

	td := NewTaskDispatch(opts.workers())
	defer td.Stop()

	for i := dp.NumberOfParts(); i > 0; i-- {
		part := dp.NextPart()
		td.Queue(encodeTask{part: part, dst: color, dither: dither}.run)
		if alpha != nil {
			td.Queue(encodeTask{part: part, dst: alpha, channel: ChannelsAlpha}.run)
		}
	}
	if err := td.SyncContext(ctx); err != nil {
		return nil, nil, err
	}

	return color, alpha, nil
}

// Quality holds the decode-back error statistics of one channel group.
type Quality struct {
	MSE  float64
	RMSE float64
	PSNR float64
}

// MeasureQuality decodes the base level of bd and compares it against
// the original. For ChannelsRGB the three color channels contribute to
// the statistics; for ChannelsAlpha the decoded red channel is compared
// against the original alpha plane, mirroring how a separate alpha
// buffer is encoded. A lossless result reports an infinite PSNR.
func MeasureQuality(orig *Image, bd *BlockData, ch Channels) (Quality, error) {
	if orig == nil || bd == nil {
		return Quality{}, newError(ErrBadParam, "texpak: nil image or block data")
	}
	if w, h := bd.Size(); orig.Width != w || orig.Height != h {
		return Quality{}, newError(ErrBadParam, "texpak: image and block data dimensions differ")
	}

	decoded, err := bd.Decode()
	if err != nil {
		return Quality{}, err
	}

	var sum float64
	var samples int
	if ch == ChannelsAlpha {
		for i := 0; i < len(orig.Pix); i += 4 {
			d := float64(orig.Pix[i+3]) - float64(decoded.Pix[i])
			sum += d * d
		}
		samples = len(orig.Pix) / 4
	} else {
		for i := 0; i < len(orig.Pix); i += 4 {
			for c := 0; c < 3; c++ {
				d := float64(orig.Pix[i+c]) - float64(decoded.Pix[i+c])
				sum += d * d
			}
		}
		samples = len(orig.Pix) / 4 * 3
	}

	mse := sum / float64(samples)
	q := Quality{MSE: mse, RMSE: math.Sqrt(mse)}
	if mse == 0 {
		q.PSNR = math.Inf(1)
	} else {
		q.PSNR = 20*math.Log10(255) - 10*math.Log10(mse)
	}
	return q, nil
}

// MeasureAlphaQuality compares the decoded alpha plane of an ETC2_RGBA
// buffer against the original alpha channel.
func MeasureAlphaQuality(orig *Image, bd *BlockData) (Quality, error) {
	if orig == nil || bd == nil {
		return Quality{}, newError(ErrBadParam, "texpak: nil image or block data")
	}
	if bd.Format() != Etc2RGBA {
		return Quality{}, newError(ErrBadFormat, "texpak: buffer carries no alpha plane")
	}
	if w, h := bd.Size(); orig.Width != w || orig.Height != h {
		return Quality{}, newError(ErrBadParam, "texpak: image and block data dimensions differ")
	}

	decoded, err := bd.Decode()
	if err != nil {
		return Quality{}, err
	}

	var sum float64
	for i := 3; i < len(orig.Pix); i += 4 {
		d := float64(orig.Pix[i]) - float64(decoded.Pix[i])
		sum += d * d
	}
	mse := sum / float64(len(orig.Pix)/4)
	q := Quality{MSE: mse, RMSE: math.Sqrt(mse)}
	if mse == 0 {
		q.PSNR = math.Inf(1)
	} else {
		q.PSNR = 20*math.Log10(255) - 10*math.Log10(mse)
	}
	return q, nil
}
