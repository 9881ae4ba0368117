package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Base terminal colors.
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

// Palette of level elements.
const (
	ColorGround      = ColorGreen
	ColorPlatform    = ColorYellow
	ColorMoving      = ColorCyan
	ColorGoal        = ColorBrightMagenta
	ColorPit         = ColorGray
	ColorPlayer      = ColorBrightWhite
	ColorPlayerDead  = ColorGray
	ColorEye         = ColorBlue
	ColorEnemy       = ColorRed
	ColorCollectible = ColorBrightYellow
	ColorPickup      = ColorBrightRed
	ColorNote        = ColorBrightCyan
)
