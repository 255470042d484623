package steer

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// CaptureConfig describes the two coordinate spaces the host works with:
// the screen detections are steered in and the model input size they come from.
type CaptureConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	TargetSize   [2]int `yaml:"target_size"`
}

// Config is the YAML-backed configuration consumed at construction time.
// The library owns no file format beyond this: hosts are free to build
// ControllerParams and sizes by hand instead.
type Config struct {
	Capture    CaptureConfig    `yaml:"capture"`
	Controller ControllerParams `yaml:"controller"`
}

// DefaultConfig returns configuration for a 1920x1080 screen with 640x360 model input
func DefaultConfig() Config {
	return Config{
		Capture: CaptureConfig{
			ScreenWidth:  1920,
			ScreenHeight: 1080,
			TargetSize:   [2]int{640, 360},
		},
		Controller: DefaultControllerParams(),
	}
}

// LoadConfig reads configuration from a YAML file. Fields absent from the
// file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "Can't read config file")
	}
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return cfg, errors.Wrap(err, "Can't unmarshal config file")
	}
	return cfg, nil
}

// ScreenSize returns size of the screen space
func (cfg Config) ScreenSize() Size {
	return Size{
		Width:  cfg.Capture.ScreenWidth,
		Height: cfg.Capture.ScreenHeight,
	}
}

// ModelSize returns size of the model input space
func (cfg Config) ModelSize() Size {
	return Size{
		Width:  cfg.Capture.TargetSize[0],
		Height: cfg.Capture.TargetSize[1],
	}
}

// Scaler returns rescale from model space into screen space
func (cfg Config) Scaler() Scaler {
	return NewScaler(cfg.ModelSize(), cfg.ScreenSize())
}

// Anchor returns the self-anchor point: geometric center of the screen space
func (cfg Config) Anchor() Point {
	return cfg.ScreenSize().Center()
}
