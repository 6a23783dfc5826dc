package emu

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cespare/xxhash"

	"github.com/FabianRolfMatthiasNoll/InvadersEmulator/internal/bus"
	"github.com/FabianRolfMatthiasNoll/InvadersEmulator/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/InvadersEmulator/internal/romset"
)

const (
	// CyclesPerFrame is one 60 Hz frame of the 2 MHz clock.
	CyclesPerFrame = cpu.ClockSpeed / 60
	halfFrame      = CyclesPerFrame / 2

	romEnd     = 0x2000
	vramStart  = 0x2400
	vramEnd    = 0x4000
	midScanRST = 1
	vblankRST  = 2
)

var ErrROMTooLarge = errors.New("emu: program does not fit below work RAM")

type Machine struct {
	cfg   Config
	bus   *bus.Bus
	cpu   *cpu.CPU
	board board
	fb    []byte // RGBA Width*Height*4

	// cycles run past the end of the previous half frame
	overrun int
	frames  uint64
}

func New(cfg Config) *Machine {
	cfg.Defaults()
	m := &Machine{
		cfg: cfg,
		bus: bus.New(),
		fb:  make([]byte, Width*Height*4),
	}
	m.cpu = cpu.New(m.bus)
	m.cpu.SetPorts(&m.board)
	m.board.setDIPs(cfg)
	m.board.setButtons(Buttons{})
	return m
}

// LoadROM resets the machine and places img at address 0.
func (m *Machine) LoadROM(img []byte) error {
	if len(img) > romEnd {
		return fmt.Errorf("%w: %d bytes", ErrROMTooLarge, len(img))
	}
	m.bus.Clear()
	m.bus.Load(0, img)
	m.Reset()
	m.cfg.Logger.Infof("loaded %d byte program", len(img))
	return nil
}

// LoadROMSet reads the Space Invaders set at path (directory, archive or
// single image) and loads it.
func (m *Machine) LoadROMSet(path string) error {
	img, err := romset.Load(path, romset.Invaders)
	if err != nil {
		return err
	}
	if bad := romset.Invaders.Verify(img); len(bad) > 0 {
		m.cfg.Logger.Infof("%s: parts differ from the known dump: %v", path, bad)
	}
	return m.LoadROM(img)
}

// Reset restarts the program with work and video RAM left as they are.
func (m *Machine) Reset() {
	m.cpu.Reset()
	m.board.shift, m.board.offset = 0, 0
	m.board.sound1, m.board.sound2 = 0, 0
	m.board.started = 0
	m.overrun = 0
	m.frames = 0
}

func (m *Machine) CPU() *cpu.CPU { return m.cpu }
func (m *Machine) Bus() *bus.Bus { return m.bus }

// Frames returns the number of frames completed since the last reset.
func (m *Machine) Frames() uint64 { return m.frames }

func (m *Machine) SetButtons(b Buttons) { m.board.setButtons(b) }

// SetOverlay toggles the colored gel overlay from the next rendered frame.
func (m *Machine) SetOverlay(on bool) { m.cfg.Overlay = on }
func (m *Machine) Overlay() bool      { return m.cfg.Overlay }

// SoundLatches returns the last values written to the two sound ports.
func (m *Machine) SoundLatches() (byte, byte) { return m.board.sound1, m.board.sound2 }

// StepFrame runs one frame: half the budget, the mid-screen interrupt, the
// other half, then the vertical blank interrupt. The framebuffer is
// refreshed at the end.
func (m *Machine) StepFrame() error {
	if err := m.StepFrameNoRender(); err != nil {
		return err
	}
	m.render()
	return nil
}

// StepFrameNoRender is StepFrame without the framebuffer conversion.
func (m *Machine) StepFrameNoRender() error {
	if err := m.run(halfFrame); err != nil {
		return err
	}
	m.cpu.RequestInterrupt(midScanRST)
	if err := m.run(halfFrame); err != nil {
		return err
	}
	m.cpu.RequestInterrupt(vblankRST)
	m.frames++
	return nil
}

func (m *Machine) run(budget int) error {
	acc := m.overrun
	for acc < budget {
		if m.cfg.Trace {
			m.cfg.Logger.Debugf("%s", m.cpu.Debug())
		}
		n, err := m.cpu.Step()
		if err != nil {
			m.cfg.Logger.Errorf("frame %d: %v", m.frames, err)
			return fmt.Errorf("emu: frame %d: %w", m.frames, err)
		}
		acc += n
	}
	m.overrun = acc - budget
	return nil
}

// Digest hashes the processor state and the whole address space. Two
// machines with equal digests are in the same state.
func (m *Machine) Digest() uint64 {
	s := m.cpu.Snapshot()
	var regs [14]byte
	binary.LittleEndian.PutUint16(regs[0:], s.AF)
	binary.LittleEndian.PutUint16(regs[2:], s.BC)
	binary.LittleEndian.PutUint16(regs[4:], s.DE)
	binary.LittleEndian.PutUint16(regs[6:], s.HL)
	binary.LittleEndian.PutUint16(regs[8:], s.SP)
	binary.LittleEndian.PutUint16(regs[10:], s.PC)
	if s.Interrupts {
		regs[12] = 1
	}
	if s.Halted {
		regs[13] = 1
	}
	h := xxhash.New()
	h.Write(regs[:])
	h.Write(m.bus.Slice(0, bus.Size))
	return h.Sum64()
}

// FrameDigest hashes the current framebuffer.
func (m *Machine) FrameDigest() uint64 { return xxhash.Sum64(m.fb) }
