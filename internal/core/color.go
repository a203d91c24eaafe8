package core

// Color is a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// palette is the cycle used by ColorForLevel, coolest to hottest.
var palette = []Color{
	ColorBrightYellow,
	ColorOrange,
	ColorBrightRed,
	ColorBrightMagenta,
	ColorBrightBlue,
	ColorBrightCyan,
	ColorBrightGreen,
	ColorGreen,
	ColorCyan,
	ColorBlue,
	ColorMagenta,
	ColorRed,
}

// ColorForLevel returns a stable color for a zero-based level index.
// Levels past the end of the palette wrap around.
func ColorForLevel(level int) Color {
	if level < 0 {
		level = 0
	}
	return palette[level%len(palette)]
}
