package ui

import (
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/FabianRolfMatthiasNoll/InvadersEmulator/internal/romset"
)

var mainMenu = []string{"Resume", "Reset", "Overlay", "Load ROM set", "Keybindings", "Quit"}

func (a *App) updateMenu() error {
	switch a.menuMode {
	case "rom":
		a.updateRomMenu()
	case "keys":
		if back() {
			a.menuMode = "main"
		}
	default:
		return a.updateMainMenu()
	}
	return nil
}

func back() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyBackspace)
}

func moveSel(sel, n int) int {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && sel > 0 {
		sel--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && sel < n-1 {
		sel++
	}
	return sel
}

func (a *App) updateMainMenu() error {
	a.menuIdx = moveSel(a.menuIdx, len(mainMenu))
	if back() {
		a.showMenu = false
		return nil
	}
	if !inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		return nil
	}
	switch a.menuIdx {
	case 0:
		a.showMenu = false
	case 1:
		a.m.Reset()
		a.toast("Reset")
		a.showMenu = false
	case 2:
		a.m.SetOverlay(!a.m.Overlay())
		if a.m.Overlay() {
			a.toast("Overlay on")
		} else {
			a.toast("Overlay off")
		}
	case 3:
		list, err := romset.Find(a.cfg.ROMsDir)
		if err != nil {
			a.log.Errorf("list %s: %v", a.cfg.ROMsDir, err)
		}
		a.romList = list
		a.romSel = 0
		a.menuMode = "rom"
	case 4:
		a.menuMode = "keys"
	case 5:
		return ebiten.Termination
	}
	return nil
}

func (a *App) updateRomMenu() {
	if back() {
		a.menuMode = "main"
		return
	}
	if len(a.romList) == 0 {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			a.menuMode = "main"
		}
		return
	}
	a.romSel = moveSel(a.romSel, len(a.romList))
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		path := a.romList[a.romSel]
		if err := a.m.LoadROMSet(path); err != nil {
			a.log.Errorf("load %s: %v", path, err)
			a.toast("Load failed: " + err.Error())
		} else {
			a.log.Infof("loaded ROM set %s", path)
			a.toast("Loaded " + filepath.Base(path))
			ebiten.SetWindowTitle(a.cfg.Title + " - [" + filepath.Base(path) + "]")
			a.showMenu = false
		}
		a.menuMode = "main"
	}
}
