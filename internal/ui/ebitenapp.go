package ui

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/FabianRolfMatthiasNoll/InvadersEmulator/internal/emu"
	"github.com/FabianRolfMatthiasNoll/InvadersEmulator/internal/logger"
)

const toastFrames = 120

type App struct {
	cfg    Config
	m      *emu.Machine
	log    logger.Logger
	tex    *ebiten.Image
	paused bool
	fast   bool
	err    error

	// overlay/menu
	showMenu bool
	menuMode string // "main", "rom", "keys"
	menuIdx  int
	romList  []string
	romSel   int

	toastMsg  string
	toastLeft int
}

func NewApp(cfg Config, m *emu.Machine, log logger.Logger) *App {
	cfg.Defaults()
	if log == nil {
		log = logger.NewNull()
	}
	m.SetOverlay(cfg.Overlay)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(emu.Width*cfg.Scale, emu.Height*cfg.Scale)
	ebiten.SetTPS(60)
	return &App{cfg: cfg, m: m, log: log, menuMode: "main"}
}

func (a *App) Run() error { return ebiten.RunGame(a) }

func (a *App) buttons() emu.Buttons {
	k := a.cfg.Keys
	return emu.Buttons{
		Coin:    ebiten.IsKeyPressed(k.Coin),
		P1Start: ebiten.IsKeyPressed(k.P1Start),
		P2Start: ebiten.IsKeyPressed(k.P2Start),
		Left:    ebiten.IsKeyPressed(k.Left),
		Right:   ebiten.IsKeyPressed(k.Right),
		Fire:    ebiten.IsKeyPressed(k.Fire),
		P2Left:  ebiten.IsKeyPressed(k.P2Left),
		P2Right: ebiten.IsKeyPressed(k.P2Right),
		P2Fire:  ebiten.IsKeyPressed(k.P2Fire),
		Tilt:    ebiten.IsKeyPressed(k.Tilt),
	}
}

func (a *App) Update() error {
	// a fault stops the machine; the window stays up showing it
	if a.err != nil {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			return ebiten.Termination
		}
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.showMenu = !a.showMenu
		a.menuMode = "main"
		a.menuIdx = 0
	}
	if a.showMenu {
		return a.updateMenu()
	}

	a.m.SetButtons(a.buttons())

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.paused = !a.paused
	}
	// Fast-forward (Tab): while held, run multiple frames per Ebiten update
	a.fast = ebiten.IsKeyPressed(ebiten.KeyTab)

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.m.Reset()
		a.toast("Reset")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		if name, err := a.saveScreenshot(); err != nil {
			a.toast("Screenshot failed: " + err.Error())
		} else {
			a.toast("Saved " + name)
		}
	}

	frames := 0
	switch {
	case a.paused && inpututil.IsKeyJustPressed(ebiten.KeyN):
		frames = 1
	case a.paused:
	case a.fast:
		frames = 5
	default:
		frames = 1
	}
	for i := 0; i < frames; i++ {
		if err := a.m.StepFrame(); err != nil {
			a.log.Errorf("%v", err)
			a.log.Errorf("%s", a.m.CPU().Debug())
			a.err = err
			break
		}
	}
	if s := a.m.SoundEvents(); s != 0 {
		a.log.Debugf("sound %s", s)
	}
	return nil
}

func (a *App) toast(msg string) {
	a.toastMsg = msg
	a.toastLeft = toastFrames
}

func (a *App) Draw(screen *ebiten.Image) {
	if a.tex == nil {
		a.tex = ebiten.NewImage(emu.Width, emu.Height)
	}
	a.tex.WritePixels(a.m.Framebuffer())
	screen.DrawImage(a.tex, nil)

	if a.showMenu {
		screen.Fill(color.RGBA{0, 0, 0, 0xC0})
		a.drawMenu(screen)
	}
	if a.err != nil {
		ebitenutil.DebugPrintAt(screen, "STOPPED (Esc quits)", 4, 4)
		for i, line := range wrapText(a.err.Error(), maxCharsForText(emu.Width, 4)) {
			ebitenutil.DebugPrintAt(screen, line, 4, 18+i*14)
		}
		return
	}
	if a.paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED", 4, emu.Height-16)
	}
	if a.toastLeft > 0 {
		a.toastLeft--
		ebitenutil.DebugPrintAt(screen, truncateText(a.toastMsg, maxCharsForText(emu.Width, 4)), 4, emu.Height-30)
	}
}

func (a *App) Layout(outW, outH int) (int, int) { return emu.Width, emu.Height }

func (a *App) saveScreenshot() (string, error) {
	fb := a.m.Framebuffer()
	img := &image.RGBA{
		Pix:    make([]byte, len(fb)),
		Stride: 4 * emu.Width,
		Rect:   image.Rect(0, 0, emu.Width, emu.Height),
	}
	copy(img.Pix, fb)
	ts := time.Now().Format("20060102_150405")
	name := fmt.Sprintf("screenshot_%s.png", ts)
	f, err := os.Create(name)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return name, png.Encode(f, img)
}
