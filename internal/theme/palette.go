package theme

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// EmbeddedPalettes contains all bundled palette files.
//
//go:embed palettes/*.toml
var EmbeddedPalettes embed.FS

// Default palette names per mode.
const (
	DefaultLightName = "light"
	DefaultDarkName  = "dark"
)

// PaletteExt is the file extension of palette files.
const PaletteExt = ".toml"

// Palette is the set of colours used to render one mode.
// Colours are anything lipgloss.Color accepts (hex or ANSI index).
type Palette struct {
	Name       string `toml:"name"`
	Background string `toml:"background"`
	Foreground string `toml:"foreground"`
	Accent     string `toml:"accent"`
	Muted      string `toml:"muted"`
	Border     string `toml:"border"`
	Error      string `toml:"error"`
	Icon       string `toml:"icon"` // Glyph for the theme toggle button

	Path      string `toml:"-"` // Source file (empty when embedded)
	IsBundled bool   `toml:"-"`
}

// Palette validation errors.
var (
	ErrMissingColor = errors.New("palette is missing a required colour")
	ErrMissingIcon  = errors.New("palette is missing the toggle icon")
)

// Validate checks that every field needed for rendering is set.
func (p *Palette) Validate() error {
	fields := map[string]string{
		"background": p.Background,
		"foreground": p.Foreground,
		"accent":     p.Accent,
		"muted":      p.Muted,
		"border":     p.Border,
		"error":      p.Error,
	}
	for name, v := range fields {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: %s", ErrMissingColor, name)
		}
	}
	if strings.TrimSpace(p.Icon) == "" {
		return ErrMissingIcon
	}
	return nil
}

// ParsePalette decodes TOML on top of base, so a file only needs the
// fields it changes. base may be nil.
func ParsePalette(data []byte, base *Palette) (*Palette, error) {
	p := &Palette{}
	if base != nil {
		*p = *base
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(p); err != nil {
		return nil, fmt.Errorf("failed to parse palette: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// GetEmbeddedPalette retrieves a bundled palette by name.
func GetEmbeddedPalette(name string) (*Palette, bool) {
	data, err := EmbeddedPalettes.ReadFile("palettes/" + name + PaletteExt)
	if err != nil {
		return nil, false
	}
	p, err := ParsePalette(data, nil)
	if err != nil {
		return nil, false
	}
	if p.Name == "" {
		p.Name = name
	}
	p.IsBundled = true
	return p, true
}

// MustEmbeddedPalette is GetEmbeddedPalette for the built-in defaults.
func MustEmbeddedPalette(name string) *Palette {
	p, ok := GetEmbeddedPalette(name)
	if !ok {
		panic("theme: bundled palette missing: " + name)
	}
	return p
}

// DefaultPalette returns the bundled palette for a mode.
func DefaultPalette(m Mode) *Palette {
	if m == Dark {
		return MustEmbeddedPalette(DefaultDarkName)
	}
	return MustEmbeddedPalette(DefaultLightName)
}

// ListEmbeddedPalettes returns names of all embedded palettes.
func ListEmbeddedPalettes() []string {
	var names []string

	entries, err := fs.ReadDir(EmbeddedPalettes, "palettes")
	if err != nil {
		return []string{DefaultLightName, DefaultDarkName}
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if filepath.Ext(name) == PaletteExt {
			names = append(names, strings.TrimSuffix(name, PaletteExt))
		}
	}
	return names
}

// Set holds the palette used for each mode.
type Set struct {
	Light *Palette
	Dark  *Palette
}

// DefaultSet returns the bundled light and dark palettes.
func DefaultSet() Set {
	return Set{Light: DefaultPalette(Light), Dark: DefaultPalette(Dark)}
}

// For returns the palette for m, falling back to the bundled default.
func (s Set) For(m Mode) *Palette {
	var p *Palette
	if m == Dark {
		p = s.Dark
	} else {
		p = s.Light
	}
	if p == nil {
		return DefaultPalette(m)
	}
	return p
}
