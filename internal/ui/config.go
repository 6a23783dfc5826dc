package ui

import "github.com/hajimehoshi/ebiten/v2"

// Config contains window/input related settings.
type Config struct {
	Title   string // window title
	Scale   int    // integer upscaling factor
	ROMsDir string // directory to browse for ROM sets
	Overlay bool   // start with the colored gel overlay on
	Keys    *Keymap
}

// Keymap binds cabinet controls to keyboard keys.
type Keymap struct {
	Coin, P1Start, P2Start ebiten.Key
	Left, Right, Fire      ebiten.Key
	P2Left, P2Right        ebiten.Key
	P2Fire                 ebiten.Key
	Tilt                   ebiten.Key
}

// DefaultKeymap puts player one on the arrows and space, player two on
// A, D and W.
func DefaultKeymap() *Keymap {
	return &Keymap{
		Coin:    ebiten.KeyC,
		P1Start: ebiten.Key1,
		P2Start: ebiten.Key2,
		Left:    ebiten.KeyArrowLeft,
		Right:   ebiten.KeyArrowRight,
		Fire:    ebiten.KeySpace,
		P2Left:  ebiten.KeyA,
		P2Right: ebiten.KeyD,
		P2Fire:  ebiten.KeyW,
		Tilt:    ebiten.KeyT,
	}
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "invaders"
	}
	if c.Scale <= 0 {
		c.Scale = 3
	}
	if c.ROMsDir == "" {
		c.ROMsDir = "roms"
	}
	if c.Keys == nil {
		c.Keys = DefaultKeymap()
	}
}
