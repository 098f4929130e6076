package theme

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// Loader resolves palette names against the user palettes directory and
// the bundled palettes.
type Loader struct {
	logger      *slog.Logger
	palettesDir string
}

// NewLoader creates a loader for the user palettes directory dir.
// An empty dir means only bundled palettes are available.
func NewLoader(dir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}

	return &Loader{
		logger:      logger,
		palettesDir: dir,
	}
}

// Dir returns the user palettes directory the loader reads from.
func (l *Loader) Dir() string {
	return l.palettesDir
}

// LoadPalette loads a palette by name for use in mode m.
// Resolution order:
//  1. User palettes directory (<dir>/<name>.toml), layered over the
//     bundled palette of the same name or the mode's default
//  2. Bundled palettes
//  3. The bundled default for m
//
// LoadPalette never fails; problems are logged and the next source is used.
func (l *Loader) LoadPalette(name string, m Mode) *Palette {
	if name == "" {
		name = DefaultPalette(m).Name
	}

	base, bundled := GetEmbeddedPalette(name)
	if !bundled {
		base = DefaultPalette(m)
	}

	if l.palettesDir != "" {
		path := filepath.Join(l.palettesDir, name+PaletteExt)
		if data, err := os.ReadFile(path); err == nil {
			p, err := ParsePalette(data, base)
			if err != nil {
				l.logger.Warn("failed to load user palette, trying bundled", "palette", name, "error", err)
			} else {
				p.Name = name
				p.Path = path
				p.IsBundled = false
				l.logger.Debug("loaded user palette", "name", name, "path", path)
				return p
			}
		} else if !os.IsNotExist(err) {
			l.logger.Warn("failed to read user palette", "path", path, "error", err)
		}
	}

	if bundled {
		l.logger.Debug("loaded bundled palette", "name", name)
		return base
	}

	l.logger.Warn("palette not found, using default", "palette", name, "mode", m)
	return base
}

// LoadSet loads the palettes for both modes.
func (l *Loader) LoadSet(lightName, darkName string) Set {
	return Set{
		Light: l.LoadPalette(lightName, Light),
		Dark:  l.LoadPalette(darkName, Dark),
	}
}

// PaletteInfo provides basic palette information for listing.
type PaletteInfo struct {
	Name      string
	Path      string
	IsBundled bool
	Overrides bool // User file shadows a bundled palette
}

// ListPalettes lists bundled palettes followed by user-only palettes,
// sorted by name within each group.
func (l *Loader) ListPalettes() []PaletteInfo {
	bundled := ListEmbeddedPalettes()
	sort.Strings(bundled)

	byName := make(map[string]int)
	infos := make([]PaletteInfo, 0, len(bundled))
	for _, name := range bundled {
		byName[name] = len(infos)
		infos = append(infos, PaletteInfo{Name: name, IsBundled: true})
	}

	if l.palettesDir == "" {
		return infos
	}

	entries, err := os.ReadDir(l.palettesDir)
	if err != nil {
		if !os.IsNotExist(err) {
			l.logger.Debug("failed to read palettes directory", "error", err)
		}
		return infos
	}

	var user []PaletteInfo
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != PaletteExt {
			continue
		}
		name := entry.Name()[:len(entry.Name())-len(PaletteExt)]
		path := filepath.Join(l.palettesDir, entry.Name())
		if i, ok := byName[name]; ok {
			infos[i].Path = path
			infos[i].Overrides = true
			continue
		}
		user = append(user, PaletteInfo{Name: name, Path: path})
	}
	sort.Slice(user, func(i, j int) bool { return user[i].Name < user[j].Name })

	return append(infos, user...)
}

// CreatePalettesDir creates the user palettes directory if needed.
func (l *Loader) CreatePalettesDir() error {
	if l.palettesDir == "" {
		return os.ErrNotExist
	}
	return os.MkdirAll(l.palettesDir, 0755)
}
