// Package theme handles the light/dark colour modes of the chat window.
// Palettes are TOML files: bundled ones are embedded, and users can add or
// override palettes in ~/.config/meshmessenger/palettes/, which are
// hot-reloaded while the window is open.
package theme
