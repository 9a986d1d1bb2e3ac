package config

import "testing"

func valid() Config {
	c := Default()
	c.Input = "passages.txt"
	c.Font = "font.ttf"
	c.Voice = "en-US-AriaNeural"
	return c
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing input", func(c *Config) { c.Input = "" }, "input"},
		{"missing font", func(c *Config) { c.Font = "" }, "font"},
		{"missing voice", func(c *Config) { c.Voice = "" }, "voice"},
		{"zero width", func(c *Config) { c.Width = 0 }, "width/height"},
		{"negative min duration", func(c *Config) { c.MinDuration = -1 }, "min-duration"},
		{"bad font color", func(c *Config) { c.FontColor = "red" }, "font-color"},
		{"bad text position", func(c *Config) { c.TextPosition = "middle" }, "text-position"},
		{"bad logo position", func(c *Config) { c.Logo = "l.png"; c.LogoPosition = "middle" }, "logo-position"},
		{"logo position ignored without logo", func(c *Config) { c.LogoPosition = "middle" }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			verr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Field != tt.wantErr {
				t.Fatalf("error field = %q, want %q", verr.Field, tt.wantErr)
			}
		})
	}
}

func TestResolveStyle(t *testing.T) {
	c := valid()
	c.Style = "caption"
	c.ResolveStyle()
	if c.TextPosition != TextTop || c.FontColor != "#FFFF00" || c.BoxAlpha != 0.7 {
		t.Fatalf("caption preset not applied: %+v", c)
	}

	c = valid()
	c.Style = "subtitle"
	c.ResolveStyle()
	if c.TextPosition != TextBottom || c.FontColor != "#FFFFFF" {
		t.Fatalf("subtitle preset not applied: %+v", c)
	}

	c = valid()
	c.TextPosition = TextTop
	c.ResolveStyle()
	if c.TextPosition != TextTop {
		t.Fatal("default style must not override position")
	}
}

func TestResolveCanvas(t *testing.T) {
	c := valid()
	c.CanvasPreset = "shorts"
	if err := c.ResolveCanvas(); err != nil {
		t.Fatal(err)
	}
	if c.Width != 1080 || c.Height != 1920 {
		t.Fatalf("shorts preset = %dx%d", c.Width, c.Height)
	}

	c = valid()
	c.CanvasPreset = "imax"
	if err := c.ResolveCanvas(); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}

func TestParseHexColor(t *testing.T) {
	col, err := ParseHexColor("#FF8000")
	if err != nil {
		t.Fatal(err)
	}
	if col.R != 0xFF || col.G != 0x80 || col.B != 0x00 || col.A != 0xFF {
		t.Fatalf("parsed %v", col)
	}
	if _, err := ParseHexColor("not-a-color"); err == nil {
		t.Fatal("expected error")
	}
}

func TestClamps(t *testing.T) {
	c := valid()
	c.BoxAlpha = 1.5
	c.LogoOpacity = -0.2
	if got := c.ClampedBoxAlpha(); got != 1 {
		t.Errorf("ClampedBoxAlpha() = %v", got)
	}
	if got := c.ClampedLogoOpacity(); got != 0 {
		t.Errorf("ClampedLogoOpacity() = %v", got)
	}
}
