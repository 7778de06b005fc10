// Decides how a source image should be resized to sit inside a fixed story frame.
package pipfit

import (
	"fmt"
)

type Dimensions struct {
	Height int
	Width  int
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

type Direction string

const (
	DirectionShrink Direction = "shrink"
	DirectionScale  Direction = "scale"
)

type FitPlan struct {
	Destination  Dimensions
	Direction    Direction
	ResizeFactor int
	// nil for shrinks (always acceptable), set for scales
	Valid *bool
}

// Fits source inside frame preserving aspect ratio: tries scaling to
// screenFactor * frame width first, falling back to the height axis if that
// would overflow the frame vertically. All divisions truncate - the result may
// be off by one pixel from exact aspect ratio preservation.
//
// Source dimensions must be positive. Pure function.
func PlanFit(source Dimensions, frame Dimensions, screenFactor float64, scaleTolerance int) FitPlan {
	aspectRatio := float64(source.Width) / float64(source.Height)

	destWidth := int(screenFactor * float64(frame.Width))
	destHeight := int(float64(destWidth) / aspectRatio)

	if destHeight > frame.Height {
		destHeight = int(screenFactor * float64(frame.Height))
		destWidth = int(float64(destHeight) * aspectRatio)
	}

	plan := FitPlan{
		Destination:  Dimensions{Height: destHeight, Width: destWidth},
		ResizeFactor: destWidth / source.Width,
	}

	// equality counts as shrink
	if destWidth <= source.Width {
		plan.Direction = DirectionShrink
	} else {
		plan.Direction = DirectionScale
		valid := plan.ResizeFactor <= scaleTolerance
		plan.Valid = &valid
	}

	return plan
}
