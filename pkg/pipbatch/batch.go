// Runs the whole pipeline for a directory of images: decode, fit, compose on a
// canvas, encode as numbered JPEGs.
package pipbatch

// below side effects have to be imported to transparently support their decoding

import (
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imageorient"
	"github.com/function61/gokit/logex"
	"github.com/kuvasto/kuvasto/pkg/pipcanvas"
	"github.com/kuvasto/kuvasto/pkg/pipfit"
	"github.com/samber/lo"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

const RunDateFormat = "20060102_1504"

type Processor struct {
	conf        Config
	skipInvalid bool
	logl        *logex.Leveled
}

func NewProcessor(conf Config, skipInvalid bool, logger *log.Logger) *Processor {
	if logger == nil {
		logger = logex.Discard
	}

	return &Processor{
		conf:        conf,
		skipInvalid: skipInvalid,
		logl:        logex.Levels(logger),
	}
}

// Processes every image in inputDir sequentially, writing
// {outputDir}/{runDate}_{seq}.jpg per processed image. First failure aborts
// the batch; already-written outputs are left in place.
func (p *Processor) Run(runDate time.Time, inputDir string, outputDir string) error {
	sourcePaths, err := p.listImages(inputDir)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", outputDir, err)
	}

	seq := 0

	for _, sourcePath := range sourcePaths {
		written, err := p.processOne(sourcePath, outputPath(outputDir, runDate, seq))
		if err != nil {
			return fmt.Errorf("%s: %w", sourcePath, err)
		}

		if written {
			seq++
		}
	}

	p.logl.Info.Printf("wrote %d image(s) to %s", seq, outputDir)

	return nil
}

func (p *Processor) processOne(sourcePath string, destPath string) (bool, error) {
	source, err := decodeImage(sourcePath)
	if err != nil {
		return false, err
	}

	sourceDims := dimensionsOf(source)
	if sourceDims.Height == 0 || sourceDims.Width == 0 {
		return false, fmt.Errorf("degenerate image: %s", sourceDims)
	}

	plan := pipfit.PlanFit(sourceDims, p.conf.Frame(), p.conf.ScreenFactor, p.conf.ScaleTolerance)

	if plan.Valid != nil && !*plan.Valid {
		if p.skipInvalid {
			p.logl.Info.Printf(
				"skipping: upscale factor %d exceeds tolerance %d",
				plan.ResizeFactor,
				p.conf.ScaleTolerance)
			return false, nil
		}

		p.logl.Error.Printf(
			"upscale factor %d exceeds tolerance %d - processing anyway",
			plan.ResizeFactor,
			p.conf.ScaleTolerance)
	}

	offsets, err := pipcanvas.ComposeOffsets(p.conf.Frame(), plan.Destination)
	if err != nil {
		return false, err
	}

	canvas := pipcanvas.NewCanvas(p.conf.Frame(), p.conf.FillValue)

	pipcanvas.Paste(canvas, resizeTo(source, plan.Destination), offsets)

	p.logl.Debug.Printf("%s %s -> %s", plan.Direction, sourceDims, plan.Destination)

	if err := writeJpeg(destPath, canvas); err != nil {
		return false, err
	}

	p.logl.Debug.Printf("wrote %s", destPath)

	return true, nil
}

func (p *Processor) listImages(inputDir string) ([]string, error) {
	dentries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, err
	}

	images := lo.Filter(dentries, func(dentry os.DirEntry, _ int) bool {
		if dentry.IsDir() || !formattable(dentry.Name()) {
			p.logl.Debug.Printf("skipping non-image entry %s", dentry.Name())
			return false
		}

		return true
	})

	return lo.Map(images, func(dentry os.DirEntry, _ int) string {
		return filepath.Join(inputDir, dentry.Name())
	}), nil
}

func outputPath(outputDir string, runDate time.Time, seq int) string {
	return filepath.Join(outputDir, fmt.Sprintf("%s_%d.jpg", runDate.Format(RunDateFormat), seq))
}

func decodeImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	// needed to correctly open JPEGs with EXIF "you should rotate this image" -metadata
	img, _, err := imageorient.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	return img, nil
}

func dimensionsOf(img image.Image) pipfit.Dimensions {
	bounds := img.Bounds()

	return pipfit.Dimensions{Height: bounds.Dy(), Width: bounds.Dx()}
}

func resizeTo(source image.Image, dest pipfit.Dimensions) *image.RGBA {
	resized := image.NewRGBA(image.Rect(0, 0, dest.Width, dest.Height))

	// - NearestNeighbor is fast but usually looks worst.
	// - CatmullRom is slow but usually looks best.
	// - ApproxBiLinear has reasonable speed and quality.
	draw.ApproxBiLinear.Scale(resized, resized.Bounds(), source, source.Bounds(), draw.Src, nil)

	return resized
}

func writeJpeg(path string, canvas *image.RGBA) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := jpeg.Encode(file, canvas, nil); err != nil {
		_ = file.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}

	return file.Close()
}

func formattable(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp":
		return true
	default:
		return false
	}
}
