package emu

import (
	"os"
	"path/filepath"
	"testing"
)

// romSetPath returns INVADERS_ROMS or testroms/invaders when present.
func romSetPath(t *testing.T) string {
	t.Helper()
	if p := os.Getenv("INVADERS_ROMS"); p != "" {
		return p
	}
	p := filepath.Join("..", "..", "testroms", "invaders")
	if _, err := os.Stat(p); err != nil {
		t.Skip("no Space Invaders ROM set; set INVADERS_ROMS to run")
	}
	return p
}

// TestInvaders_Attract runs the attract mode for a few seconds and
// expects the program to keep running and draw something.
func TestInvaders_Attract(t *testing.T) {
	m := New(Config{})
	if err := m.LoadROMSet(romSetPath(t)); err != nil {
		t.Fatalf("load ROM set: %v", err)
	}
	for i := 0; i < 300; i++ {
		if err := m.StepFrame(); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
	}
	lit := 0
	for _, v := range m.Bus().Slice(vramStart, vramEnd) {
		if v != 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Fatalf("video RAM empty after 300 frames")
	}
	if !m.CPU().InterruptsEnabled() && m.CPU().Halted() {
		t.Fatalf("program halted with interrupts off: %s", m.CPU().Debug())
	}
}
