package flowlayout

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/agiangrant/flowlayout/layout"
	"github.com/agiangrant/flowlayout/scroll"
)

// ErrUnknownFormat is returned for config files that are neither TOML nor YAML.
var ErrUnknownFormat = errors.New("unknown config format")

// Format is a config file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
}

// Config is the host-settable configuration of a FlowLayout.
type Config struct {
	// Row bound; negative means unbounded
	MaxRowCount int           `toml:"max_row_count" yaml:"max_row_count"`
	Gravity     string        `toml:"gravity" yaml:"gravity"`
	Padding     PaddingConfig `toml:"padding" yaml:"padding"`
	Scroll      ScrollConfig  `toml:"scroll" yaml:"scroll"`
	// Debug logs every layout pass to stderr when no logger is supplied
	Debug bool `toml:"debug" yaml:"debug"`
}

// PaddingConfig is the container padding in pixels.
type PaddingConfig struct {
	Left   int `toml:"left" yaml:"left"`
	Top    int `toml:"top" yaml:"top"`
	Right  int `toml:"right" yaml:"right"`
	Bottom int `toml:"bottom" yaml:"bottom"`
}

// ScrollConfig tunes drag detection and fling physics.
type ScrollConfig struct {
	DragThreshold    int     `toml:"drag_threshold" yaml:"drag_threshold"`     // px
	FlingThreshold   float32 `toml:"fling_threshold" yaml:"fling_threshold"`   // px/s
	VelocityWindowMS int     `toml:"velocity_window_ms" yaml:"velocity_window_ms"`
	Friction         float32 `toml:"friction" yaml:"friction"`
	Density          float32 `toml:"density" yaml:"density"` // 1.0 = 160 dpi
	SmoothMinMS      int     `toml:"smooth_min_ms" yaml:"smooth_min_ms"`
	SmoothMaxMS      int     `toml:"smooth_max_ms" yaml:"smooth_max_ms"`
	Easing           string  `toml:"easing" yaml:"easing"`
}

// DefaultConfig returns an unbounded, left-aligned container with stock
// touch scrolling.
func DefaultConfig() Config {
	return Config{
		MaxRowCount: layout.Unbounded,
		Gravity:     layout.GravityLeft.String(),
		Scroll: ScrollConfig{
			DragThreshold:    10,
			FlingThreshold:   200,
			VelocityWindowMS: 1000,
			Friction:         scroll.DefaultFriction,
			Density:          1,
			SmoothMinMS:      300,
			SmoothMaxMS:      600,
			Easing:           "ease-out-cubic",
		},
	}
}

// LoadConfig reads a TOML or YAML config file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return DefaultConfig(), err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg, err := ParseConfig(data, format)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes data on top of DefaultConfig.
func ParseConfig(data []byte, format Format) (Config, error) {
	cfg := DefaultConfig()
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &cfg)
	case FormatYAML:
		err = yaml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
	if err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// MarshalConfig encodes cfg in the given format.
func MarshalConfig(cfg Config, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		return toml.Marshal(cfg)
	case FormatYAML:
		return yaml.Marshal(cfg)
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
}

// SaveConfig writes cfg to path, choosing the encoding from the extension.
func SaveConfig(path string, cfg Config) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := MarshalConfig(cfg, format)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Insets converts the padding block.
func (p PaddingConfig) Insets() layout.Insets {
	return layout.Insets{Left: p.Left, Top: p.Top, Right: p.Right, Bottom: p.Bottom}
}

// resolveGravity parses the gravity name, falling back to left.
func (c Config) resolveGravity(log *slog.Logger) layout.Gravity {
	g, err := layout.ParseGravity(c.Gravity)
	if err != nil {
		log.Warn("invalid gravity, using left", "gravity", c.Gravity, "error", err)
		return layout.GravityLeft
	}
	return g
}

// resolvePadding clears negative padding.
func (c Config) resolvePadding(log *slog.Logger) layout.Insets {
	p := c.Padding.Insets()
	if p.Left < 0 || p.Top < 0 || p.Right < 0 || p.Bottom < 0 {
		log.Warn("negative padding, using 0", "padding", p)
		p = clampInsets(p)
	}
	return p
}

// ScrollSettings converts the scroll block for a scroll.Controller,
// replacing unusable values with the defaults and logging a warning for each.
func (c Config) ScrollSettings(log *slog.Logger) scroll.Config {
	s := c.Scroll
	def := DefaultConfig().Scroll

	if s.DragThreshold < 0 {
		log.Warn("invalid drag threshold, using default", "drag_threshold", s.DragThreshold)
		s.DragThreshold = def.DragThreshold
	}
	if s.FlingThreshold < 0 {
		log.Warn("invalid fling threshold, using default", "fling_threshold", s.FlingThreshold)
		s.FlingThreshold = def.FlingThreshold
	}
	if s.VelocityWindowMS <= 0 {
		log.Warn("invalid velocity window, using default", "velocity_window_ms", s.VelocityWindowMS)
		s.VelocityWindowMS = def.VelocityWindowMS
	}
	if s.Friction <= 0 {
		log.Warn("invalid friction, using default", "friction", s.Friction)
		s.Friction = def.Friction
	}
	if s.Density <= 0 {
		log.Warn("invalid density, using default", "density", s.Density)
		s.Density = def.Density
	}
	if s.SmoothMinMS <= 0 {
		s.SmoothMinMS = def.SmoothMinMS
	}
	if s.SmoothMaxMS < s.SmoothMinMS {
		log.Warn("smooth scroll bounds out of order", "smooth_min_ms", s.SmoothMinMS, "smooth_max_ms", s.SmoothMaxMS)
		s.SmoothMaxMS = s.SmoothMinMS
	}
	easing := scroll.EasingByName(s.Easing)
	if easing == nil {
		log.Warn("unknown easing, using ease-out-cubic", "easing", s.Easing)
		easing = scroll.EaseOutCubic
	}

	return scroll.Config{
		DragThreshold:     s.DragThreshold,
		FlingThreshold:    s.FlingThreshold,
		VelocityWindow:    time.Duration(s.VelocityWindowMS) * time.Millisecond,
		Deceleration:      scroll.DecelerationFor(s.Friction, s.Density),
		MinSmoothDuration: time.Duration(s.SmoothMinMS) * time.Millisecond,
		MaxSmoothDuration: time.Duration(s.SmoothMaxMS) * time.Millisecond,
		Easing:            easing,
	}
}

func clampInsets(p layout.Insets) layout.Insets {
	p.Left = max(p.Left, 0)
	p.Top = max(p.Top, 0)
	p.Right = max(p.Right, 0)
	p.Bottom = max(p.Bottom, 0)
	return p
}
