package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/FabianRolfMatthiasNoll/InvadersEmulator/internal/emu"
	"github.com/FabianRolfMatthiasNoll/InvadersEmulator/internal/logger"
	"github.com/FabianRolfMatthiasNoll/InvadersEmulator/internal/ui"
)

type CLIFlags struct {
	ROMPath string
	ROMsDir string
	Scale   int
	Title   string
	Trace   bool
	Overlay bool

	// DIP switches
	Lives int
	Bonus bool

	// headless
	Headless bool
	Frames   int
	PNGOut   string
	Expect   string // expected state digest, hex
}

func parseFlags() CLIFlags {
	var f CLIFlags
	flag.StringVar(&f.ROMPath, "rom", "", "ROM set: directory, .zip, .7z or single 8KB image")
	flag.StringVar(&f.ROMsDir, "roms", "roms", "directory the in-game menu lists ROM sets from")
	flag.IntVar(&f.Scale, "scale", 3, "window scale")
	flag.StringVar(&f.Title, "title", "invaders", "window title")
	flag.BoolVar(&f.Trace, "trace", false, "CPU trace log (very slow)")
	flag.BoolVar(&f.Overlay, "overlay", true, "colored cabinet overlay")
	flag.IntVar(&f.Lives, "lives", 3, "ships per game (3-6)")
	flag.BoolVar(&f.Bonus, "bonus1000", false, "extra ship at 1000 points instead of 1500")

	// headless options
	flag.BoolVar(&f.Headless, "headless", false, "run without a window")
	flag.IntVar(&f.Frames, "frames", 300, "frames to run in headless mode")
	flag.StringVar(&f.PNGOut, "outpng", "", "write last framebuffer to PNG at path")
	flag.StringVar(&f.Expect, "expect", "", "assert machine state digest (hex)")
	flag.Parse()
	return f
}

func runHeadless(m *emu.Machine, frames int, pngPath, expect string) error {
	if frames <= 0 {
		frames = 1
	}

	start := time.Now()
	for i := 0; i < frames; i++ {
		if err := m.StepFrame(); err != nil {
			return err
		}
	}
	dur := time.Since(start)

	digest := m.Digest()
	fps := float64(frames) / dur.Seconds()

	log.Printf("headless: frames=%d elapsed=%s fps=%.2f digest=%016x fb=%016x",
		frames, dur.Truncate(time.Millisecond), fps, digest, m.FrameDigest())

	if pngPath != "" {
		if err := saveFramePNG(m.Framebuffer(), emu.Width, emu.Height, pngPath); err != nil {
			return fmt.Errorf("write PNG: %w", err)
		}
		log.Printf("wrote %s", pngPath)
	}

	if expect != "" {
		// allow with/without 0x, upper/lowercase
		want, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(expect), "0x"), 16, 64)
		if err != nil {
			return fmt.Errorf("bad -expect %q: %w", expect, err)
		}
		if digest != want {
			return fmt.Errorf("digest mismatch: got %016x, want %016x", digest, want)
		}
	}
	return nil
}

func saveFramePNG(pix []byte, w, h int, path string) error {
	img := &image.RGBA{
		Pix:    make([]byte, len(pix)),
		Stride: 4 * w,
		Rect:   image.Rect(0, 0, w, h),
	}
	copy(img.Pix, pix)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func main() {
	f := parseFlags()
	if f.ROMPath == "" && f.Headless {
		log.Fatal("-rom is required with -headless")
	}

	lg := logger.New(os.Stderr, f.Trace)
	m := emu.New(emu.Config{
		Trace:       f.Trace,
		Lives:       f.Lives,
		BonusAt1000: f.Bonus,
		Overlay:     f.Overlay,
		Logger:      lg,
	})
	if f.ROMPath != "" {
		if err := m.LoadROMSet(f.ROMPath); err != nil {
			log.Fatalf("load %s: %v", f.ROMPath, err)
		}
	}

	if f.Headless {
		if err := runHeadless(m, f.Frames, f.PNGOut, f.Expect); err != nil {
			log.Printf("%s", m.CPU().Debug())
			log.Fatal(err)
		}
		return
	}

	app := ui.NewApp(ui.Config{Title: f.Title, Scale: f.Scale, ROMsDir: f.ROMsDir, Overlay: f.Overlay}, m, lg)
	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
