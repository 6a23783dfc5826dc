package emu

import (
	"errors"
	"testing"

	"github.com/FabianRolfMatthiasNoll/InvadersEmulator/internal/cpu"
)

// interrupt counter program: main loop spins, RST 1 and RST 2 bump the
// counters at 2000 and 2001.
var counterProgram = func() []byte {
	p := make([]byte, 0x40)
	copy(p[0x00:], []byte{0x31, 0x00, 0x24, 0xFB, 0xC3, 0x04, 0x00}) // LXI SP,2400; EI; JMP 0004
	copy(p[0x08:], []byte{0xC3, 0x20, 0x00})                         // JMP 0020
	copy(p[0x10:], []byte{0xC3, 0x30, 0x00})                         // JMP 0030
	handler := func(addr byte) []byte {
		return []byte{0xF5, 0x3A, addr, 0x20, 0x3C, 0x32, addr, 0x20, 0xF1, 0xFB, 0xC9}
	}
	copy(p[0x20:], handler(0x00))
	copy(p[0x30:], handler(0x01))
	return p
}()

func newMachine(t *testing.T, prog []byte, cfg Config) *Machine {
	t.Helper()
	m := New(cfg)
	if err := m.LoadROM(prog); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	return m
}

func TestMachine_FrameInterrupts(t *testing.T) {
	m := newMachine(t, counterProgram, Config{})
	for i := 0; i < 3; i++ {
		if err := m.StepFrame(); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
	}
	// the third vblank request is still pending
	if got := m.Bus().Read(0x2000); got != 3 {
		t.Fatalf("RST 1 count got %d want 3", got)
	}
	if got := m.Bus().Read(0x2001); got != 2 {
		t.Fatalf("RST 2 count got %d want 2", got)
	}
	if m.Frames() != 3 {
		t.Fatalf("frames got %d want 3", m.Frames())
	}
}

func TestMachine_CycleBudget(t *testing.T) {
	m := newMachine(t, []byte{0xC3, 0x00, 0x00}, Config{}) // JMP 0000, 10 cycles
	if err := m.StepFrameNoRender(); err != nil {
		t.Fatal(err)
	}
	// 16666 is not a multiple of 10; the overrun carries into the next half
	if m.overrun < 0 || m.overrun >= 10 {
		t.Fatalf("overrun got %d want 0..9", m.overrun)
	}
}

func TestMachine_StopsOnBadOpcode(t *testing.T) {
	m := newMachine(t, []byte{0x00, 0x08}, Config{})
	err := m.StepFrame()
	if !errors.Is(err, cpu.ErrUnrecognizedOpcode) {
		t.Fatalf("StepFrame err got %v want ErrUnrecognizedOpcode", err)
	}
	if m.CPU().PC != 1 {
		t.Fatalf("PC after fault got %04x want 0001", m.CPU().PC)
	}
}

func TestMachine_ROMTooLarge(t *testing.T) {
	m := New(Config{})
	if err := m.LoadROM(make([]byte, 0x2001)); !errors.Is(err, ErrROMTooLarge) {
		t.Fatalf("LoadROM err got %v want ErrROMTooLarge", err)
	}
}

func TestBoard_ShiftRegister(t *testing.T) {
	var b board
	b.Out(4, 0xAA)
	b.Out(4, 0xFF)
	if b.shift != 0xFFAA {
		t.Fatalf("shift got %04x want ffaa", b.shift)
	}
	if got := b.In(3); got != 0xFF {
		t.Fatalf("offset 0 got %02x want ff", got)
	}
	b.Out(2, 2)
	if got := b.In(3); got != 0xFE {
		t.Fatalf("offset 2 got %02x want fe", got)
	}
	b.Out(2, 0x0F) // only the low three bits count
	if b.offset != 7 {
		t.Fatalf("offset got %d want 7", b.offset)
	}
	if got := b.In(3); got != 0xD5 {
		t.Fatalf("offset 7 got %02x want d5", got)
	}
}

func TestBoard_ShiftThroughCPU(t *testing.T) {
	prog := []byte{
		0x3E, 0x34, 0xD3, 0x04, // MVI A,34; OUT 4
		0x3E, 0x12, 0xD3, 0x04, // MVI A,12; OUT 4
		0x3E, 0x04, 0xD3, 0x02, // MVI A,04; OUT 2
		0xDB, 0x03, // IN 3
		0x76,       // HLT
	}
	m := newMachine(t, prog, Config{})
	for !m.CPU().Halted() {
		if _, err := m.CPU().Step(); err != nil {
			t.Fatal(err)
		}
	}
	if got := m.CPU().A(); got != 0x23 {
		t.Fatalf("IN 3 got %02x want 23", got)
	}
}

func TestBoard_Inputs(t *testing.T) {
	m := New(Config{Lives: 5, BonusAt1000: true})
	if got := m.board.In(1); got != in1Always {
		t.Fatalf("idle port 1 got %02x want 08", got)
	}
	if got := m.board.In(0); got != 0x0E {
		t.Fatalf("port 0 got %02x want 0e", got)
	}
	m.SetButtons(Buttons{Coin: true, Fire: true, P2Left: true})
	if got := m.board.In(1); got != in1Always|in1Coin|in1Fire {
		t.Fatalf("port 1 got %02x", got)
	}
	if got := m.board.In(2); got != 0x02|in2Bonus|in2P2Left {
		t.Fatalf("port 2 got %02x", got)
	}
}

func TestBoard_SoundLatches(t *testing.T) {
	m := New(Config{})
	m.board.Out(3, 0x01)
	m.board.Out(5, 0x10)
	m.board.Out(6, 0x00)
	if s1, s2 := m.SoundLatches(); s1 != 0x01 || s2 != 0x10 {
		t.Fatalf("sound latches got %02x %02x", s1, s2)
	}
	if m.board.watchdog != 1 {
		t.Fatalf("watchdog got %d want 1", m.board.watchdog)
	}
}

func TestConfig_Defaults(t *testing.T) {
	c := Config{Lives: 9}
	c.Defaults()
	if c.Lives != 6 || c.Logger == nil {
		t.Fatalf("defaults got lives=%d logger=%v", c.Lives, c.Logger)
	}
	c = Config{}
	c.Defaults()
	if c.Lives != 3 {
		t.Fatalf("default lives got %d want 3", c.Lives)
	}
}

func pixel(m *Machine, x, y int) (byte, byte, byte) {
	o := (y*Width + x) * 4
	fb := m.Framebuffer()
	return fb[o], fb[o+1], fb[o+2]
}

func TestRender_Rotation(t *testing.T) {
	m := newMachine(t, []byte{0x76}, Config{})
	m.Bus().Write(vramStart, 0x01)        // column 0, bottom pixel
	m.Bus().Write(vramStart+31, 0x80)     // column 0, top pixel
	m.Bus().Write(vramStart+32*223, 0x01) // last column, bottom pixel
	if err := m.StepFrame(); err != nil {
		t.Fatal(err)
	}
	for _, p := range []struct{ x, y int }{{0, 255}, {0, 0}, {223, 255}} {
		if r, g, b := pixel(m, p.x, p.y); r != 0xFF || g != 0xFF || b != 0xFF {
			t.Fatalf("pixel %d,%d got %02x%02x%02x want white", p.x, p.y, r, g, b)
		}
	}
	if r, _, _ := pixel(m, 1, 255); r != 0 {
		t.Fatalf("pixel 1,255 lit")
	}
	if a := m.Framebuffer()[3]; a != 0xFF {
		t.Fatalf("alpha got %02x want ff", a)
	}
}

func TestRender_Overlay(t *testing.T) {
	m := newMachine(t, []byte{0x76}, Config{Overlay: true})
	m.Bus().Write(vramStart+26, 0x80) // column 0, y = 255-215 = 40
	if err := m.StepFrame(); err != nil {
		t.Fatal(err)
	}
	if r, g, _ := pixel(m, 0, 40); r != red.r || g != red.g {
		t.Fatalf("overlay pixel got %02x%02x want red", r, g)
	}
}

func TestMachine_Digest(t *testing.T) {
	a := newMachine(t, counterProgram, Config{})
	b := newMachine(t, counterProgram, Config{})
	for i := 0; i < 5; i++ {
		if err := a.StepFrame(); err != nil {
			t.Fatal(err)
		}
		if err := b.StepFrame(); err != nil {
			t.Fatal(err)
		}
	}
	if a.Digest() != b.Digest() {
		t.Fatalf("identical runs digest %016x vs %016x", a.Digest(), b.Digest())
	}
	if a.FrameDigest() != b.FrameDigest() {
		t.Fatalf("identical runs frame digest differ")
	}
	b.Bus().Write(0x3000, 0x01)
	if a.Digest() == b.Digest() {
		t.Fatalf("digest ignores memory")
	}
}

func TestMachine_Reset(t *testing.T) {
	m := newMachine(t, counterProgram, Config{})
	m.StepFrame()
	m.Reset()
	if m.Frames() != 0 || m.CPU().PC != 0 || m.CPU().InterruptsEnabled() {
		t.Fatalf("after Reset frames=%d PC=%04x", m.Frames(), m.CPU().PC)
	}
}

func TestBoard_SoundEvents(t *testing.T) {
	m := New(Config{})
	m.board.Out(3, 0x22) // shot + amp
	m.board.Out(3, 0x22) // held, no retrigger
	m.board.Out(5, 0x01)
	got := m.SoundEvents()
	if got != SoundShot|SoundAmpEnable|SoundFleet1 {
		t.Fatalf("events got %s", got)
	}
	if m.SoundEvents() != 0 {
		t.Fatalf("events not cleared")
	}
	m.board.Out(3, 0x20)
	m.board.Out(3, 0x22)
	if got := m.SoundEvents(); got != SoundShot {
		t.Fatalf("retrigger got %s want shot", got)
	}
	if s := (SoundUFO | SoundUFOHit).String(); s != "ufo|ufo-hit" {
		t.Fatalf("String got %q", s)
	}
}
