package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/meshmessenger/meshmessenger/internal/config"
	"github.com/meshmessenger/meshmessenger/internal/theme"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available colour palettes",
	Long: `List the bundled colour palettes and any palettes in the user palettes
directory (~/.config/meshmessenger/palettes).

A user palette named like a bundled one overrides it; only the colours it
sets are replaced. Select palettes in config.toml:

  [theme]
  light = "solarized-light"
  dark = "nord"`,
	Args: cobra.NoArgs,
	RunE: runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)
}

func runThemes(cmd *cobra.Command, args []string) error {
	loader := theme.NewLoader(config.PalettesPath(), logger)
	c := getConfig()

	out := cmd.OutOrStdout()
	for _, info := range loader.ListPalettes() {
		marker := " "
		if c != nil && (info.Name == c.Theme.Light || info.Name == c.Theme.Dark) {
			marker = "*"
		}

		var source string
		switch {
		case info.Overrides:
			source = "bundled, overridden" + modified(info.Path)
		case info.IsBundled:
			source = "bundled"
		default:
			source = "user" + modified(info.Path)
		}
		fmt.Fprintf(out, "%s %-20s (%s)\n", marker, info.Name, source)
	}

	if dir := loader.Dir(); dir != "" {
		fmt.Fprintf(out, "\nUser palettes: %s\n", dir)
	}
	return nil
}

func modified(path string) string {
	st, err := os.Stat(path)
	if err != nil {
		return ""
	}
	return ", modified " + humanize.Time(st.ModTime())
}
