package pipcanvas

import (
	"fmt"
	"image"
	"image/color"

	"github.com/kuvasto/kuvasto/pkg/pipfit"
	"golang.org/x/image/draw"
)

const DefaultFill = 128

// pixel coordinates of the destination image inside the canvas
type OffsetRect struct {
	X1 int
	Y1 int
	X2 int
	Y2 int
}

func (r OffsetRect) Bounds() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// Centers dest inside frame. Halving truncates, so for odd leftovers the
// right/bottom margin gets the extra pixel.
func ComposeOffsets(frame pipfit.Dimensions, dest pipfit.Dimensions) (OffsetRect, error) {
	if dest.Width > frame.Width || dest.Height > frame.Height {
		return OffsetRect{}, fmt.Errorf("destination %s does not fit inside frame %s", dest, frame)
	}

	x1 := (frame.Width - dest.Width) / 2
	y1 := (frame.Height - dest.Height) / 2

	return OffsetRect{
		X1: x1,
		Y1: y1,
		X2: x1 + dest.Width,
		Y2: y1 + dest.Height,
	}, nil
}

// frame-sized buffer with every pixel set to (fill,fill,fill)
func NewCanvas(frame pipfit.Dimensions, fill uint8) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, frame.Width, frame.Height))

	background := image.NewUniform(color.RGBA{R: fill, G: fill, B: fill, A: 255})
	draw.Draw(canvas, canvas.Bounds(), background, image.Point{}, draw.Src)

	return canvas
}

// Overwrites exactly the rect sub-region of canvas with resized.
// Precondition: resized's dimensions equal the rect's.
func Paste(canvas *image.RGBA, resized image.Image, rect OffsetRect) {
	draw.Draw(canvas, rect.Bounds(), resized, image.Point{}, draw.Src)
}
