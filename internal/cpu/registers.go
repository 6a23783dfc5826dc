package cpu

// RegisterPair holds two 8-bit registers as one 16-bit word. The first
// named register of the pair (B of BC, A of AF) is the high byte. Writes
// through either view are visible through the other.
type RegisterPair uint16

func (p RegisterPair) Uint16() uint16 { return uint16(p) }
func (p RegisterPair) Hi() byte       { return byte(p >> 8) }
func (p RegisterPair) Lo() byte       { return byte(p) }

func (p *RegisterPair) SetUint16(v uint16) { *p = RegisterPair(v) }
func (p *RegisterPair) SetHi(v byte)       { *p = RegisterPair(uint16(v)<<8 | uint16(*p)&0x00FF) }
func (p *RegisterPair) SetLo(v byte)       { *p = RegisterPair(uint16(*p)&0xFF00 | uint16(v)) }

// Register operand codes as encoded in bits 0-2 (source) and 3-5
// (destination) of the opcode byte. regM addresses memory at HL.
const (
	regB byte = iota
	regC
	regD
	regE
	regH
	regL
	regM
	regA
)

var registerNames = [8]string{"B", "C", "D", "E", "H", "L", "M", "A"}

// Register pair codes as encoded in bits 4-5 of the opcode byte. The
// fourth code means SP for LXI/INX/DCX/DAD and PSW for PUSH/POP.
const (
	pairBC byte = iota
	pairDE
	pairHL
	pairSP
)

// A returns the accumulator.
func (c *CPU) A() byte { return c.AF.Hi() }

// F returns the flag register.
func (c *CPU) F() byte { return c.AF.Lo() }

func (c *CPU) B() byte { return c.BC.Hi() }
func (c *CPU) C() byte { return c.BC.Lo() }
func (c *CPU) D() byte { return c.DE.Hi() }
func (c *CPU) E() byte { return c.DE.Lo() }
func (c *CPU) H() byte { return c.HL.Hi() }
func (c *CPU) L() byte { return c.HL.Lo() }

func (c *CPU) SetA(v byte) { c.AF.SetHi(v) }
func (c *CPU) SetF(v byte) { c.AF.SetLo(v) }
func (c *CPU) SetB(v byte) { c.BC.SetHi(v) }
func (c *CPU) SetC(v byte) { c.BC.SetLo(v) }
func (c *CPU) SetD(v byte) { c.DE.SetHi(v) }
func (c *CPU) SetE(v byte) { c.DE.SetLo(v) }
func (c *CPU) SetH(v byte) { c.HL.SetHi(v) }
func (c *CPU) SetL(v byte) { c.HL.SetLo(v) }

// reg reads the 8-bit operand selected by a 3-bit register code.
func (c *CPU) reg(code byte) byte {
	switch code & 7 {
	case regB:
		return c.BC.Hi()
	case regC:
		return c.BC.Lo()
	case regD:
		return c.DE.Hi()
	case regE:
		return c.DE.Lo()
	case regH:
		return c.HL.Hi()
	case regL:
		return c.HL.Lo()
	case regM:
		return c.read(c.HL.Uint16())
	default:
		return c.AF.Hi()
	}
}

// setReg writes the 8-bit operand selected by a 3-bit register code.
func (c *CPU) setReg(code byte, v byte) {
	switch code & 7 {
	case regB:
		c.BC.SetHi(v)
	case regC:
		c.BC.SetLo(v)
	case regD:
		c.DE.SetHi(v)
	case regE:
		c.DE.SetLo(v)
	case regH:
		c.HL.SetHi(v)
	case regL:
		c.HL.SetLo(v)
	case regM:
		c.write(c.HL.Uint16(), v)
	default:
		c.AF.SetHi(v)
	}
}

// pair reads the register pair selected by a 2-bit code, with SP as the
// fourth pair.
func (c *CPU) pair(code byte) uint16 {
	switch code & 3 {
	case pairBC:
		return c.BC.Uint16()
	case pairDE:
		return c.DE.Uint16()
	case pairHL:
		return c.HL.Uint16()
	default:
		return c.SP
	}
}

func (c *CPU) setPair(code byte, v uint16) {
	switch code & 3 {
	case pairBC:
		c.BC.SetUint16(v)
	case pairDE:
		c.DE.SetUint16(v)
	case pairHL:
		c.HL.SetUint16(v)
	default:
		c.SP = v
	}
}
