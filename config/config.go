package config

import (
	"fmt"
	"strings"
)

// Canvas presets from the web front end. Explicit width/height wins over a preset.
var CanvasPresets = map[string][2]int{
	"reel":   {720, 1280},
	"shorts": {1080, 1920},
	"square": {1080, 1080},
}

// Known anchor values.
const (
	TextTop    = "top"
	TextCenter = "center"
	TextBottom = "bottom"
)

// LogoPositions lists the accepted logo anchor names.
var LogoPositions = []string{
	"top-left", "top-right", "bottom-left", "bottom-right", "top-center", "bottom-center",
}

// Config is the fully resolved configuration for a single pipeline run.
// Style presets are resolved into it before any rendering component sees it.
type Config struct {
	Input  string `mapstructure:"input"`  // text file, one passage per non-empty line
	Output string `mapstructure:"output"` // local path or s3://bucket/key

	Font  string `mapstructure:"font"`
	Voice string `mapstructure:"voice"`
	Rate  string `mapstructure:"rate"`

	Background string `mapstructure:"background"` // image file, directory of images, or empty
	Music      string `mapstructure:"music"`

	Width        int    `mapstructure:"width"`
	Height       int    `mapstructure:"height"`
	CanvasPreset string `mapstructure:"canvas"`

	FontSize  int     `mapstructure:"font-size"`
	FontColor string  `mapstructure:"font-color"`
	BoxColor  string  `mapstructure:"box-color"`
	BoxAlpha  float64 `mapstructure:"box-alpha"`

	TextPosition string `mapstructure:"text-position"`
	Style        string `mapstructure:"style"` // default | caption | subtitle

	EnableShadow  bool   `mapstructure:"enable-shadow"`
	ShadowColor   string `mapstructure:"shadow-color"`
	ShadowOffsetX int    `mapstructure:"shadow-offset-x"`
	ShadowOffsetY int    `mapstructure:"shadow-offset-y"`

	Logo         string  `mapstructure:"logo"`
	LogoPosition string  `mapstructure:"logo-position"`
	LogoOpacity  float64 `mapstructure:"logo-opacity"`

	MinDuration float64 `mapstructure:"min-duration"`

	EnableProgressBar bool   `mapstructure:"enable-progress-bar"`
	ProgressColor     string `mapstructure:"progress-color"`
	ProgressHeight    int    `mapstructure:"progress-height"`

	NarratorURL string `mapstructure:"narrator-url"`
}

// Default returns a Config with every optional field at its default value.
// Input, Font and Voice have no defaults and must be provided by the caller.
func Default() Config {
	return Config{
		Output:        "review_output.mp4",
		Rate:          "+10%",
		Width:         720,
		Height:        1280,
		FontSize:      60,
		FontColor:     "#FFFFFF",
		BoxColor:      "#000000",
		BoxAlpha:      0.6,
		TextPosition:  TextCenter,
		Style:         "default",
		ShadowColor:   "#000000",
		ShadowOffsetX: 2,
		ShadowOffsetY: 2,
		LogoPosition:  "top-center",
		LogoOpacity:   1.0,
		ProgressColor: "#FFFFFF",
		ProgressHeight: 6,
		NarratorURL:   "http://localhost:5002/api/tts",
	}
}

// ValidationError reports a bad or missing configuration field. It is fatal
// and raised before any pipeline work starts.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// ResolveStyle overlays the selected style preset onto the base fields so
// that layout and rendering never see preset names.
func (c *Config) ResolveStyle() {
	switch c.Style {
	case "caption":
		c.TextPosition = TextTop
		c.BoxColor = "#000000"
		c.BoxAlpha = 0.7
		c.FontColor = "#FFFF00"
	case "subtitle":
		c.TextPosition = TextBottom
		c.BoxColor = "#000000"
		c.BoxAlpha = 0.7
		c.FontColor = "#FFFFFF"
	}
}

// ResolveCanvas applies a named canvas preset unless explicit dimensions
// were given.
func (c *Config) ResolveCanvas() error {
	if c.CanvasPreset == "" {
		return nil
	}
	wh, ok := CanvasPresets[strings.ToLower(c.CanvasPreset)]
	if !ok {
		return &ValidationError{Field: "canvas", Reason: fmt.Sprintf("unknown preset %q", c.CanvasPreset)}
	}
	c.Width, c.Height = wh[0], wh[1]
	return nil
}

// Validate checks required fields and value ranges. It must pass before the
// pipeline starts; everything it rejects would otherwise fail mid-run.
func (c *Config) Validate() error {
	if c.Input == "" {
		return &ValidationError{Field: "input", Reason: "required"}
	}
	if c.Font == "" {
		return &ValidationError{Field: "font", Reason: "required"}
	}
	if c.Voice == "" {
		return &ValidationError{Field: "voice", Reason: "required"}
	}
	if c.Width <= 0 || c.Height <= 0 {
		return &ValidationError{Field: "width/height", Reason: "must be positive"}
	}
	if c.FontSize <= 0 {
		return &ValidationError{Field: "font-size", Reason: "must be positive"}
	}
	if c.MinDuration < 0 {
		return &ValidationError{Field: "min-duration", Reason: "must not be negative"}
	}
	if c.ProgressHeight <= 0 {
		return &ValidationError{Field: "progress-height", Reason: "must be positive"}
	}
	for field, hex := range map[string]string{
		"font-color":     c.FontColor,
		"box-color":      c.BoxColor,
		"shadow-color":   c.ShadowColor,
		"progress-color": c.ProgressColor,
	} {
		if _, err := ParseHexColor(hex); err != nil {
			return &ValidationError{Field: field, Reason: err.Error()}
		}
	}
	if c.TextPosition != TextTop && c.TextPosition != TextCenter && c.TextPosition != TextBottom {
		return &ValidationError{Field: "text-position", Reason: fmt.Sprintf("unknown position %q", c.TextPosition)}
	}
	if c.Logo != "" {
		valid := false
		for _, p := range LogoPositions {
			if c.LogoPosition == p {
				valid = true
				break
			}
		}
		if !valid {
			return &ValidationError{Field: "logo-position", Reason: fmt.Sprintf("unknown position %q", c.LogoPosition)}
		}
	}
	return nil
}

// ClampedBoxAlpha returns the box alpha limited to [0, 1].
func (c *Config) ClampedBoxAlpha() float64 { return clamp01(c.BoxAlpha) }

// ClampedLogoOpacity returns the logo opacity limited to [0, 1].
func (c *Config) ClampedLogoOpacity() float64 { return clamp01(c.LogoOpacity) }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
