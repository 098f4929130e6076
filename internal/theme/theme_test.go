package theme

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMode_Toggle(t *testing.T) {
	assert.Equal(t, Light, Mode(0), "zero value should be light")
	assert.Equal(t, Dark, Light.Toggle())
	assert.Equal(t, Light, Dark.Toggle())

	for _, m := range []Mode{Light, Dark} {
		assert.Equal(t, m, m.Toggle().Toggle())
	}
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "light", Light.String())
	assert.Equal(t, "dark", Dark.String())
}

func TestParsePalette_LayersOverBase(t *testing.T) {
	base := DefaultPalette(Light)

	p, err := ParsePalette([]byte(`accent = "#FF0000"`), base)
	require.NoError(t, err)

	assert.Equal(t, "#FF0000", p.Accent)
	assert.Equal(t, base.Background, p.Background)
	assert.Equal(t, base.Icon, p.Icon)
	// base is untouched
	assert.NotEqual(t, "#FF0000", base.Accent)
}

func TestParsePalette_Errors(t *testing.T) {
	t.Run("invalid toml", func(t *testing.T) {
		_, err := ParsePalette([]byte(`accent = `), DefaultPalette(Light))
		assert.Error(t, err)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := ParsePalette([]byte(`sparkle = "yes"`), DefaultPalette(Light))
		assert.Error(t, err)
	})

	t.Run("missing colours without base", func(t *testing.T) {
		_, err := ParsePalette([]byte(`icon = "*"`), nil)
		assert.ErrorIs(t, err, ErrMissingColor)
	})

	t.Run("blank icon", func(t *testing.T) {
		_, err := ParsePalette([]byte(`icon = " "`), DefaultPalette(Dark))
		assert.ErrorIs(t, err, ErrMissingIcon)
	})
}

func TestSet_For(t *testing.T) {
	set := DefaultSet()
	assert.Equal(t, "light", set.For(Light).Name)
	assert.Equal(t, "dark", set.For(Dark).Name)

	var empty Set
	assert.Equal(t, "dark", empty.For(Dark).Name)
}

func writePalette(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name+PaletteExt)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoader_PrefersUserPalette(t *testing.T) {
	dir := t.TempDir()
	path := writePalette(t, dir, "dark", `accent = "#00FF00"`)

	l := NewLoader(dir, nil)
	p := l.LoadPalette("dark", Dark)

	assert.Equal(t, "dark", p.Name)
	assert.Equal(t, "#00FF00", p.Accent)
	assert.Equal(t, path, p.Path)
	assert.False(t, p.IsBundled)
	// Unset fields come from the bundled palette of the same name.
	assert.Equal(t, DefaultPalette(Dark).Background, p.Background)
}

func TestLoader_UserOnlyPaletteUsesModeDefault(t *testing.T) {
	dir := t.TempDir()
	writePalette(t, dir, "mine", `background = "#123456"`)

	p := NewLoader(dir, nil).LoadPalette("mine", Dark)
	assert.Equal(t, "mine", p.Name)
	assert.Equal(t, "#123456", p.Background)
	assert.Equal(t, DefaultPalette(Dark).Icon, p.Icon)
}

func TestLoader_BrokenUserPaletteFallsBack(t *testing.T) {
	dir := t.TempDir()
	writePalette(t, dir, "light", `this is not toml [`)

	p := NewLoader(dir, nil).LoadPalette("light", Light)
	assert.True(t, p.IsBundled)
	assert.Equal(t, DefaultPalette(Light).Accent, p.Accent)
}

func TestLoader_UnknownPaletteUsesDefault(t *testing.T) {
	p := NewLoader(t.TempDir(), nil).LoadPalette("missing", Dark)
	assert.Equal(t, "dark", p.Name)
	assert.True(t, p.IsBundled)
}

func TestLoader_EmptyNameUsesDefault(t *testing.T) {
	p := NewLoader(t.TempDir(), nil).LoadPalette("", Light)
	assert.Equal(t, "light", p.Name)
}

func TestLoader_LoadSet(t *testing.T) {
	set := NewLoader(t.TempDir(), nil).LoadSet("solarized-light", "nord")
	assert.Equal(t, "solarized-light", set.Light.Name)
	assert.Equal(t, "nord", set.Dark.Name)
}

func TestLoader_ListPalettes(t *testing.T) {
	dir := t.TempDir()
	writePalette(t, dir, "light", `accent = "#000000"`)
	writePalette(t, dir, "zebra", `icon = "Z"`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	infos := NewLoader(dir, nil).ListPalettes()

	byName := make(map[string]PaletteInfo)
	for _, info := range infos {
		byName[info.Name] = info
	}

	require.Contains(t, byName, "light")
	assert.True(t, byName["light"].IsBundled)
	assert.True(t, byName["light"].Overrides)

	require.Contains(t, byName, "zebra")
	assert.False(t, byName["zebra"].IsBundled)
	assert.Equal(t, "zebra", infos[len(infos)-1].Name, "user-only palettes come last")

	assert.NotContains(t, byName, "notes")
}

func TestLoader_ListPalettes_MissingDir(t *testing.T) {
	infos := NewLoader(filepath.Join(t.TempDir(), "nope"), nil).ListPalettes()
	assert.Len(t, infos, len(ListEmbeddedPalettes()))
}

func TestNewLoader_EmptyDirIsBundledOnly(t *testing.T) {
	l := NewLoader("", nil)

	assert.Equal(t, "", l.Dir())
	assert.Len(t, l.ListPalettes(), len(ListEmbeddedPalettes()))
	assert.ErrorIs(t, l.CreatePalettesDir(), os.ErrNotExist)
	assert.Equal(t, "dark", l.LoadPalette("dark", Dark).Name)
}

func TestLoader_CreatePalettesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "palettes")
	require.NoError(t, NewLoader(dir, nil).CreatePalettesDir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewStyles(t *testing.T) {
	light := NewStyles(DefaultPalette(Light))
	dark := StylesFor(DefaultSet(), Dark)

	assert.Equal(t, "light", light.Palette.Name)
	assert.Equal(t, "dark", dark.Palette.Name)
	assert.NotEqual(t, light.Window.GetBackground(), dark.Window.GetBackground())
	assert.True(t, light.Header.GetBold())
}

func TestWatcher_ReportsChangedPalette(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher(dir, nil)
	require.NoError(t, err)

	changed := make(chan string, 4)
	w.SetChangeCallback(func(name string) {
		changed <- name
	})
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()
	assert.True(t, w.isRunning())

	// Non-palette files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte("x"), 0644))
	writePalette(t, dir, "dark", `accent = "#ABCDEF"`)

	select {
	case name := <-changed:
		assert.Equal(t, "dark", name)
	case <-time.After(2 * time.Second):
		t.Fatal("expected palette change callback")
	}
}

func TestWatcher_StartMissingDir(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "missing"), nil)
	require.NoError(t, err)

	assert.Error(t, w.Start(context.Background()))
	assert.False(t, w.isRunning())
	assert.NoError(t, w.Stop())
}

func TestWatcher_Stop(t *testing.T) {
	w, err := NewWatcher(t.TempDir(), nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	require.NoError(t, w.Stop())
	assert.False(t, w.isRunning())
}
