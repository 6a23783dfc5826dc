package cpu

import (
	"fmt"

	"github.com/FabianRolfMatthiasNoll/InvadersEmulator/internal/bus"
)

// ClockSpeed is the processor clock in Hz on the arcade board.
const ClockSpeed = 2_000_000

const (
	// haltCycles is reported for each Step spent in the halted state.
	haltCycles = 4
	// interruptCycles is the cost of servicing an RST from the interrupt line.
	interruptCycles = 11
)

// Ports is the I/O space reached through IN and OUT.
type Ports interface {
	In(port byte) byte
	Out(port byte, value byte)
}

// CPU is an Intel 8080 core executing out of one exclusively owned Bus.
type CPU struct {
	AF, BC, DE, HL RegisterPair

	SP uint16
	PC uint16

	// inte is the interrupt enable flip-flop.
	inte bool
	// EI enables interrupts after the following instruction
	eiPending bool
	halted    bool

	irqPending bool
	irqVector  byte

	// address of the opcode being executed, for error reports
	opPC uint16

	bus   *bus.Bus
	ports Ports
}

// New creates a CPU that owns b. All registers start at zero, see Reset.
func New(b *bus.Bus) *CPU {
	return &CPU{bus: b}
}

// Reset puts the processor in its power-on state: PC, SP, registers and
// flags zero, interrupts disabled, not halted. Memory is left as loaded.
func (c *CPU) Reset() {
	c.AF, c.BC, c.DE, c.HL = 0, 0, 0, 0
	c.SP, c.PC = 0, 0
	c.inte = false
	c.eiPending = false
	c.halted = false
	c.irqPending = false
	c.irqVector = 0
}

// SetPC allows tests or a loader to set the program counter.
func (c *CPU) SetPC(pc uint16) { c.PC = pc }

// Bus exposes the underlying bus for tests/tools.
func (c *CPU) Bus() *bus.Bus { return c.bus }

// SetPorts attaches the I/O space. With no ports attached IN reads 0 and
// OUT is dropped.
func (c *CPU) SetPorts(p Ports) { c.ports = p }

// Halted reports whether HLT stopped the processor.
func (c *CPU) Halted() bool { return c.halted }

// InterruptsEnabled reports the state of the interrupt enable flip-flop.
func (c *CPU) InterruptsEnabled() bool { return c.inte }

// RequestInterrupt raises the interrupt line with RST rst (0-7). The
// request is taken at the start of the next Step. It is dropped, and false
// returned, when interrupts are disabled and no EI is pending.
func (c *CPU) RequestInterrupt(rst byte) bool {
	if !c.inte && !c.eiPending {
		return false
	}
	c.irqPending = true
	c.irqVector = rst & 7
	return true
}

func (c *CPU) read(addr uint16) byte     { return c.bus.Read(addr) }
func (c *CPU) write(addr uint16, v byte) { c.bus.Write(addr, v) }

func (c *CPU) fetchByte() byte {
	b := c.read(c.PC)
	c.PC++
	return b
}

func (c *CPU) fetchWord() uint16 {
	lo := uint16(c.fetchByte())
	hi := uint16(c.fetchByte())
	return hi<<8 | lo
}

func (c *CPU) readWord(addr uint16) uint16 {
	lo := uint16(c.read(addr))
	hi := uint16(c.read(addr + 1))
	return hi<<8 | lo
}

func (c *CPU) writeWord(addr uint16, v uint16) {
	c.write(addr, byte(v))
	c.write(addr+1, byte(v>>8))
}

func (c *CPU) pushByte(v byte) {
	c.SP--
	c.write(c.SP, v)
}

func (c *CPU) popByte() byte {
	v := c.read(c.SP)
	c.SP++
	return v
}

// pushWord stores the high byte first so the low byte sits at the lower
// address, where SP points afterwards.
func (c *CPU) pushWord(v uint16) {
	c.pushByte(byte(v >> 8))
	c.pushByte(byte(v))
}

func (c *CPU) popWord() uint16 {
	lo := uint16(c.popByte())
	hi := uint16(c.popByte())
	return hi<<8 | lo
}

// Step executes one instruction and returns the cycles it consumed.
//
// A pending interrupt is serviced instead of fetching when interrupts are
// enabled. While halted Step does not advance PC. Decode failures return an
// *UnrecognizedOpcodeError or *UnhandledOperandError with PC left at the
// faulting opcode.
func (c *CPU) Step() (int, error) {
	if c.irqPending && c.inte {
		return c.serviceInterrupt(), nil
	}
	if c.halted {
		return haltCycles, nil
	}

	enable := c.eiPending
	c.opPC = c.PC
	code := c.fetchByte()
	op, ok := Lookup(code)
	if !ok {
		c.PC = c.opPC
		return 0, &UnrecognizedOpcodeError{Opcode: code, PC: c.opPC}
	}

	cycles, err := c.execute(op)
	if err != nil {
		c.PC = c.opPC
		return 0, err
	}

	// EI takes effect once the instruction after it has completed
	if enable && c.eiPending {
		c.inte = true
		c.eiPending = false
	}
	return cycles, nil
}

func (c *CPU) serviceInterrupt() int {
	c.irqPending = false
	c.inte = false
	c.eiPending = false
	c.halted = false
	c.pushWord(c.PC)
	c.PC = uint16(c.irqVector) * 8
	return interruptCycles
}

func (c *CPU) unhandled(op Opcode) error {
	return &UnhandledOperandError{Opcode: op.Code, Operation: op.Operation, PC: c.opPC}
}

// execute dispatches a decoded opcode to its operation family.
func (c *CPU) execute(op Opcode) (int, error) {
	switch op.Operation {
	case OpNOP:
		return op.Cycles, nil
	case OpADD:
		return c.add(op, false)
	case OpADC:
		return c.add(op, true)
	case OpSUB:
		return c.sub(op, false)
	case OpSBB:
		return c.sub(op, true)
	case OpANA, OpXRA, OpORA:
		return c.logic(op)
	case OpCMP:
		return c.compare(op)
	case OpINR:
		return c.increment(op)
	case OpDCR:
		return c.decrement(op)
	case OpINX, OpDCX:
		return c.stepPair(op)
	case OpDAD:
		return c.addHL(op)
	case OpCMA:
		c.SetA(^c.A())
		return op.Cycles, nil
	case OpCMC:
		c.SetFlag(FlagCarry, !c.Flag(FlagCarry))
		return op.Cycles, nil
	case OpSTC:
		c.SetFlag(FlagCarry, true)
		return op.Cycles, nil
	case OpDAA:
		c.decimalAdjust()
		return op.Cycles, nil
	case OpRLC, OpRAL:
		c.rotateLeft(op.Operation == OpRAL)
		return op.Cycles, nil
	case OpRRC, OpRAR:
		c.rotateRight(op.Operation == OpRAR)
		return op.Cycles, nil
	case OpMOV:
		return c.move(op)
	case OpMVI:
		return c.moveImmediate(op)
	case OpLXI:
		return c.loadPairImmediate(op)
	case OpLDA, OpSTA, OpLHLD, OpSHLD:
		return c.direct(op)
	case OpLDAX, OpSTAX:
		return c.indirect(op)
	case OpXCHG, OpXTHL, OpSPHL:
		return c.exchange(op)
	case OpPUSH:
		return c.push(op)
	case OpPOP:
		return c.pop(op)
	case OpJMP, OpJCOND, OpPCHL:
		return c.jump(op)
	case OpCALL, OpCCOND:
		return c.call(op)
	case OpRET, OpRCOND:
		return c.ret(op)
	case OpRST:
		return c.restart(op)
	case OpEI:
		c.eiPending = true
		return op.Cycles, nil
	case OpDI:
		c.inte = false
		c.eiPending = false
		return op.Cycles, nil
	case OpHLT:
		c.halted = true
		return op.Cycles, nil
	case OpIN, OpOUT:
		return c.io(op)
	}
	return 0, c.unhandled(op)
}

// State is a value copy of the programmer-visible processor state.
type State struct {
	AF, BC, DE, HL uint16
	SP, PC         uint16
	Interrupts     bool
	Halted         bool
}

// Snapshot returns the current register state.
func (c *CPU) Snapshot() State {
	return State{
		AF: c.AF.Uint16(), BC: c.BC.Uint16(), DE: c.DE.Uint16(), HL: c.HL.Uint16(),
		SP: c.SP, PC: c.PC,
		Interrupts: c.inte,
		Halted:     c.halted,
	}
}

// Debug returns a one-line dump of the processor state.
func (c *CPU) Debug() string {
	next := "??"
	if op, ok := Lookup(c.read(c.PC)); ok {
		next = op.Mnemonic
	}
	return fmt.Sprintf("PC=%04X SP=%04X A=%02X F=%s BC=%04X DE=%04X HL=%04X INTE=%t HALT=%t  %s",
		c.PC, c.SP, c.A(), flagString(c.F()), c.BC.Uint16(), c.DE.Uint16(), c.HL.Uint16(),
		c.inte, c.halted, next)
}
