package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Prevent DoS from excessively large config files
const maxConfigSize = 1024 * 1024 // 1MB

// WindowDesc describes the native window to create.
type WindowDesc struct {
	// Name is the window class name.
	Name   string `yaml:"name"`
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`

	// ConfineCursor clips the cursor to the window once it is shown.
	ConfineCursor bool `yaml:"confine_cursor"`

	// RawMouse registers the window for raw mouse input so relative motion
	// is reported. Defaults to true when the key is absent.
	RawMouse bool `yaml:"raw_mouse"`
}

func Default() WindowDesc {
	return WindowDesc{
		Name:     "WinInputWindow",
		Title:    "wininput",
		Width:    1280,
		Height:   720,
		RawMouse: true,
	}
}

func (d WindowDesc) Validate() error {
	var errs []error
	if d.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if d.Width <= 0 || d.Height <= 0 {
		errs = append(errs, fmt.Errorf("size must be positive, got %dx%d", d.Width, d.Height))
	}
	if d.Width > 0xFFFF || d.Height > 0xFFFF {
		errs = append(errs, fmt.Errorf("size %dx%d exceeds 65535", d.Width, d.Height))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid window description: %w", errors.Join(errs...))
	}
	return nil
}

// Parse decodes a window description. Keys missing from data keep their
// Default values.
func Parse(data []byte) (WindowDesc, error) {
	if len(data) > maxConfigSize {
		return WindowDesc{}, fmt.Errorf("config too large: %d bytes", len(data))
	}
	desc := Default()
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return WindowDesc{}, fmt.Errorf("parse window description: %w", err)
	}
	if err := desc.Validate(); err != nil {
		return WindowDesc{}, err
	}
	return desc, nil
}

func Load(path string) (WindowDesc, error) {
	info, err := os.Stat(path)
	if err != nil {
		return WindowDesc{}, fmt.Errorf("stat config: %w", err)
	}
	if info.Size() > maxConfigSize {
		return WindowDesc{}, fmt.Errorf("config file too large: %s (%d bytes)", path, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return WindowDesc{}, fmt.Errorf("read config: %w", err)
	}
	desc, err := Parse(data)
	if err != nil {
		return WindowDesc{}, fmt.Errorf("%s: %w", path, err)
	}
	return desc, nil
}
