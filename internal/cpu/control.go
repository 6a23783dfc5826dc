package cpu

// condition evaluates the 3-bit condition code of Jcc, Ccc and Rcc.
func (c *CPU) condition(code byte) bool {
	cc := code >> 3 & 7
	var f Flag
	switch cc >> 1 {
	case 0:
		f = FlagZero
	case 1:
		f = FlagCarry
	case 2:
		f = FlagParity
	default:
		f = FlagSign
	}
	// odd codes test for the flag set, even codes for clear
	return c.Flag(f) == (cc&1 == 1)
}

func (c *CPU) jump(op Opcode) (int, error) {
	switch {
	case op.Code == 0xC3:
		c.PC = c.fetchWord()
	case op.Code == 0xE9:
		c.PC = c.HL.Uint16()
	case op.Code&0xC7 == 0xC2:
		addr := c.fetchWord()
		if c.condition(op.Code) {
			c.PC = addr
		}
	default:
		return 0, c.unhandled(op)
	}
	return op.Cycles, nil
}

func (c *CPU) call(op Opcode) (int, error) {
	switch {
	case op.Code == 0xCD:
		addr := c.fetchWord()
		c.pushWord(c.PC)
		c.PC = addr
		return op.Cycles, nil
	case op.Code&0xC7 == 0xC4:
		addr := c.fetchWord()
		if !c.condition(op.Code) {
			return op.Cycles, nil
		}
		c.pushWord(c.PC)
		c.PC = addr
		return op.AltCycles, nil
	}
	return 0, c.unhandled(op)
}

func (c *CPU) ret(op Opcode) (int, error) {
	switch {
	case op.Code == 0xC9:
		c.PC = c.popWord()
		return op.Cycles, nil
	case op.Code&0xC7 == 0xC0:
		if !c.condition(op.Code) {
			return op.Cycles, nil
		}
		c.PC = c.popWord()
		return op.AltCycles, nil
	}
	return 0, c.unhandled(op)
}

func (c *CPU) restart(op Opcode) (int, error) {
	if op.Code&0xC7 != 0xC7 {
		return 0, c.unhandled(op)
	}
	c.pushWord(c.PC)
	c.PC = uint16(op.Code & 0x38)
	return op.Cycles, nil
}

func (c *CPU) io(op Opcode) (int, error) {
	port := c.fetchByte()
	switch op.Code {
	case 0xDB:
		var v byte
		if c.ports != nil {
			v = c.ports.In(port)
		}
		c.SetA(v)
	case 0xD3:
		if c.ports != nil {
			c.ports.Out(port, c.A())
		}
	default:
		return 0, c.unhandled(op)
	}
	return op.Cycles, nil
}
