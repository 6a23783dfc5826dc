package main

import (
	"io"

	"github.com/FabianRolfMatthiasNoll/InvadersEmulator/internal/bus"
	"github.com/FabianRolfMatthiasNoll/InvadersEmulator/internal/cpu"
)

// Minimal CP/M environment for the classic 8080 exercisers: the program
// sits at the TPA, CALL 5 reaches a BDOS stub whose console functions are
// served here, and a jump to 0 (warm boot) ends the run.
const (
	tpa      = 0x0100
	bdosAddr = 0x0005
	warmBoot = 0x0000
	// reported to programs that size their stack from the BDOS vector
	memTop = 0xF000

	bdosConOut    = 2
	bdosPrintStr  = 9
	maxStringScan = 0x10000
)

type cpm struct {
	c    *cpu.CPU
	out  io.Writer
	done bool
}

func newCPM(prog []byte, out io.Writer) *cpm {
	b := bus.New()
	b.Load(tpa, prog)
	b.Write(warmBoot, 0x76) // HLT
	b.Write(bdosAddr, 0xC9) // RET
	b.Write(bdosAddr+1, memTop&0xFF)
	b.Write(bdosAddr+2, memTop>>8)
	c := cpu.New(b)
	c.SetPC(tpa)
	c.SP = memTop
	return &cpm{c: c, out: out}
}

// trap runs before each instruction and serves the BDOS call when the
// program has just entered it.
func (h *cpm) trap() error {
	switch h.c.PC {
	case warmBoot:
		h.done = true
	case bdosAddr:
		return h.bdos()
	}
	return nil
}

func (h *cpm) bdos() error {
	switch h.c.C() {
	case bdosConOut:
		_, err := h.out.Write([]byte{h.c.E()})
		return err
	case bdosPrintStr:
		var s []byte
		addr := h.c.DE.Uint16()
		for i := 0; i < maxStringScan; i++ {
			ch := h.c.Bus().Read(addr)
			if ch == '$' {
				break
			}
			s = append(s, ch)
			addr++
		}
		_, err := h.out.Write(s)
		return err
	}
	return nil
}
