package pipbatch

import (
	"fmt"

	"github.com/function61/gokit/jsonfile"
	"github.com/kuvasto/kuvasto/pkg/pipfit"
)

type Config struct {
	FrameHeight    int     `json:"frame_height"`
	FrameWidth     int     `json:"frame_width"`
	ScreenFactor   float64 `json:"screen_factor"`
	ScaleTolerance int     `json:"scale_tolerance"`
	FillValue      uint8   `json:"fill_value"`
}

// vertical story frame, image taking 3/4 of the screen, at most 2x upscale
func DefaultConfig() Config {
	return Config{
		FrameHeight:    1920,
		FrameWidth:     1080,
		ScreenFactor:   0.75,
		ScaleTolerance: 2,
		FillValue:      128,
	}
}

func (c Config) Frame() pipfit.Dimensions {
	return pipfit.Dimensions{Height: c.FrameHeight, Width: c.FrameWidth}
}

func (c Config) Validate() error {
	if c.FrameHeight <= 0 || c.FrameWidth <= 0 {
		return fmt.Errorf("frame dimensions must be positive; got %s", c.Frame())
	}

	if c.ScreenFactor <= 0 || c.ScreenFactor > 1 {
		return fmt.Errorf("screen_factor must be in (0,1]; got %v", c.ScreenFactor)
	}

	if c.ScaleTolerance < 1 {
		return fmt.Errorf("scale_tolerance must be >= 1; got %d", c.ScaleTolerance)
	}

	return nil
}

// Defaults, optionally overridden from a JSON file. Empty path means defaults only.
func resolveConfig(path string) (*Config, error) {
	conf := DefaultConfig()

	if path != "" {
		if err := jsonfile.Read(path, &conf, true); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &conf, nil
}
