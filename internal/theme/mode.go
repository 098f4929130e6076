package theme

// Mode is the window's colour mode. The zero value is Light.
type Mode int

const (
	Light Mode = iota
	Dark
)

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

func (m Mode) String() string {
	if m == Dark {
		return "dark"
	}
	return "light"
}
