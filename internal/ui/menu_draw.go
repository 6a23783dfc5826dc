package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/FabianRolfMatthiasNoll/InvadersEmulator/internal/emu"
)

// debug font cell
const (
	charW = 6
	lineH = 14
)

func (a *App) drawMenu(screen *ebiten.Image) {
	switch a.menuMode {
	case "rom":
		a.drawRomMenu(screen)
	case "keys":
		a.drawKeysMenu(screen)
	default:
		a.drawMainMenu(screen)
	}
}

func drawList(screen *ebiten.Image, title string, items []string, sel, y int) {
	ebitenutil.DebugPrintAt(screen, title, 10, y)
	max := maxCharsForText(emu.Width, 10) - 2
	for i, s := range items {
		prefix := "  "
		if i == sel {
			prefix = "> "
		}
		ebitenutil.DebugPrintAt(screen, prefix+truncateText(s, max), 10, y+(i+1)*lineH)
	}
}

func (a *App) drawMainMenu(screen *ebiten.Image) {
	items := make([]string, len(mainMenu))
	copy(items, mainMenu)
	items[2] = fmt.Sprintf("Overlay: %s", onOff(a.m.Overlay()))
	drawList(screen, "Menu:", items, a.menuIdx, 10)
}

func (a *App) drawRomMenu(screen *ebiten.Image) {
	d := truncateText("Dir: "+a.cfg.ROMsDir, maxCharsForText(emu.Width, 10))
	ebitenutil.DebugPrintAt(screen, d, 10, 10+lineH)
	if len(a.romList) == 0 {
		ebitenutil.DebugPrintAt(screen, "Select ROM set:", 10, 10)
		ebitenutil.DebugPrintAt(screen, "No ROM sets found", 10, 10+2*lineH)
		return
	}
	// keep the selection on screen
	rows := (emu.Height-10-2*lineH)/lineH - 1
	off := 0
	if a.romSel >= rows {
		off = a.romSel - rows + 1
	}
	end := off + rows
	if end > len(a.romList) {
		end = len(a.romList)
	}
	names := make([]string, 0, end-off)
	for _, p := range a.romList[off:end] {
		names = append(names, filepath.Base(p))
	}
	ebitenutil.DebugPrintAt(screen, "Select ROM set:", 10, 10)
	drawList(screen, "", names, a.romSel-off, 10+lineH)
}

func (a *App) drawKeysMenu(screen *ebiten.Image) {
	k := a.cfg.Keys
	rows := []string{
		"Coin: " + k.Coin.String(),
		"1P start: " + k.P1Start.String(),
		"2P start: " + k.P2Start.String(),
		"Left/Right: " + k.Left.String() + "/" + k.Right.String(),
		"Fire: " + k.Fire.String(),
		"2P Left/Right: " + k.P2Left.String() + "/" + k.P2Right.String(),
		"2P Fire: " + k.P2Fire.String(),
		"Tilt: " + k.Tilt.String(),
		"P: Pause  N: Step  Tab: Fast",
		"R: Reset  F12: Screenshot",
	}
	drawList(screen, "Keys (Backspace to return):", rows, -1, 10)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func maxCharsForText(width, marginX int) int {
	n := (width - 2*marginX) / charW
	if n < 1 {
		n = 1
	}
	return n
}

func truncateText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func wrapText(s string, max int) []string {
	var out []string
	line := ""
	for _, w := range strings.Fields(s) {
		switch {
		case line == "":
			line = w
		case len(line)+1+len(w) <= max:
			line += " " + w
		default:
			out = append(out, line)
			line = w
		}
	}
	if line != "" {
		out = append(out, line)
	}
	return out
}
