package steer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Capture.ScreenWidth != 1920 || cfg.Capture.ScreenHeight != 1080 {
		t.Errorf("Expected 1920x1080 screen, got %dx%d", cfg.Capture.ScreenWidth, cfg.Capture.ScreenHeight)
	}
	if cfg.Capture.TargetSize != [2]int{640, 360} {
		t.Errorf("Expected 640x360 model input, got %v", cfg.Capture.TargetSize)
	}
	if cfg.Controller != DefaultControllerParams() {
		t.Errorf("Expected default controller params, got %+v", cfg.Controller)
	}
}

func TestConfigDerived(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Anchor() != (Point{X: 960, Y: 540}) {
		t.Errorf("Expected anchor (960, 540), got %v", cfg.Anchor())
	}

	scaler := cfg.Scaler()
	if scaler.ScaleX != 3.0 || scaler.ScaleY != 3.0 {
		t.Errorf("Expected scale factors (3, 3), got (%f, %f)", scaler.ScaleX, scaler.ScaleY)
	}
}

func TestLoadConfig(t *testing.T) {
	content := []byte(`
capture:
  screen_width: 2560
  screen_height: 1440
  target_size: [640, 360]
controller:
  kp: 0.2
  kd: 0.1
  alpha: 0.9
  dead_zone: 3
  max_speed: 40
`)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Can't write temp config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Capture.ScreenWidth != 2560 || cfg.Capture.ScreenHeight != 1440 {
		t.Errorf("Expected 2560x1440 screen, got %dx%d", cfg.Capture.ScreenWidth, cfg.Capture.ScreenHeight)
	}
	if cfg.Controller.Kp != 0.2 || cfg.Controller.MaxSpeed != 40 {
		t.Errorf("Unexpected controller params: %+v", cfg.Controller)
	}
	if cfg.Anchor() != (Point{X: 1280, Y: 720}) {
		t.Errorf("Expected anchor (1280, 720), got %v", cfg.Anchor())
	}
}

func TestLoadConfigPartial(t *testing.T) {
	content := []byte(`
controller:
  kp: 0.25
`)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Can't write temp config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Controller.Kp != 0.25 {
		t.Errorf("Expected kp 0.25, got %f", cfg.Controller.Kp)
	}
	// Absent fields keep their defaults
	if cfg.Controller.MaxSpeed != 30.0 {
		t.Errorf("Expected default max speed 30, got %f", cfg.Controller.MaxSpeed)
	}
	if cfg.Capture.ScreenWidth != 1920 {
		t.Errorf("Expected default screen width 1920, got %d", cfg.Capture.ScreenWidth)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err == nil {
		t.Error("Expected error for missing config file")
	}
}
