package pipbatch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/function61/gokit/assert"
)

func TestDefaultConfig(t *testing.T) {
	conf := DefaultConfig()

	assert.Ok(t, conf.Validate())
	assert.EqualString(t, conf.Frame().String(), "1080x1920")
	assert.Assert(t, conf.ScreenFactor == 0.75)
	assert.Assert(t, conf.ScaleTolerance == 2)
	assert.Assert(t, conf.FillValue == 128)
}

func TestResolveConfigOverridesFromFile(t *testing.T) {
	confPath := filepath.Join(t.TempDir(), "conf.json")

	assert.Ok(t, os.WriteFile(confPath, []byte(`{
	"frame_height": 1280,
	"frame_width": 720,
	"screen_factor": 0.5,
	"scale_tolerance": 3,
	"fill_value": 0
}`), 0644))

	conf, err := resolveConfig(confPath)
	assert.Ok(t, err)

	assert.EqualString(t, conf.Frame().String(), "720x1280")
	assert.Assert(t, conf.ScreenFactor == 0.5)
	assert.Assert(t, conf.ScaleTolerance == 3)
	assert.Assert(t, conf.FillValue == 0)
}

func TestResolveConfigEmptyPathMeansDefaults(t *testing.T) {
	conf, err := resolveConfig("")
	assert.Ok(t, err)

	assert.EqualString(t, conf.Frame().String(), "1080x1920")
}

func TestConfigValidate(t *testing.T) {
	cs := []struct {
		name      string
		mutate    func(conf *Config)
		expectErr string
	}{
		{"zero frame height", func(conf *Config) { conf.FrameHeight = 0 }, "frame dimensions must be positive; got 1080x0"},
		{"negative frame width", func(conf *Config) { conf.FrameWidth = -1 }, "frame dimensions must be positive; got -1x1920"},
		{"zero screen factor", func(conf *Config) { conf.ScreenFactor = 0 }, "screen_factor must be in (0,1]; got 0"},
		{"screen factor over one", func(conf *Config) { conf.ScreenFactor = 1.5 }, "screen_factor must be in (0,1]; got 1.5"},
		{"zero tolerance", func(conf *Config) { conf.ScaleTolerance = 0 }, "scale_tolerance must be >= 1; got 0"},
	}

	for _, c := range cs {
		c := c // pin
		t.Run(c.name, func(t *testing.T) {
			conf := DefaultConfig()
			c.mutate(&conf)

			err := conf.Validate()
			assert.Assert(t, err != nil)
			assert.EqualString(t, err.Error(), c.expectErr)
		})
	}
}
