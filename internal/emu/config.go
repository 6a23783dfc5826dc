package emu

import "github.com/FabianRolfMatthiasNoll/InvadersEmulator/internal/logger"

// Config contains settings that affect emulation behavior.
type Config struct {
	Trace bool // log every instruction through Logger.Debugf
	// DIP switches
	Lives        int  // ships per game, 3-6
	BonusAt1000  bool // extra ship at 1000 points instead of 1500
	HideCoinInfo bool
	// Overlay tints the picture like the cabinet's colored gel strips.
	Overlay bool
	Logger  logger.Logger
}

// Defaults fills zero values.
func (c *Config) Defaults() {
	if c.Lives < 3 {
		c.Lives = 3
	}
	if c.Lives > 6 {
		c.Lives = 6
	}
	if c.Logger == nil {
		c.Logger = logger.NewNull()
	}
}
