package cpu

// Data transfer and stack handlers. None of these touch flags except
// POP PSW.

func (c *CPU) move(op Opcode) (int, error) {
	if op.Code&0xC0 != 0x40 || op.Code == 0x76 {
		return 0, c.unhandled(op)
	}
	c.setReg(op.Code>>3&7, c.reg(op.Code&7))
	return op.Cycles, nil
}

func (c *CPU) moveImmediate(op Opcode) (int, error) {
	if op.Code&0xC7 != 0x06 {
		return 0, c.unhandled(op)
	}
	c.setReg(op.Code>>3&7, c.fetchByte())
	return op.Cycles, nil
}

func (c *CPU) loadPairImmediate(op Opcode) (int, error) {
	if op.Code&0xCF != 0x01 {
		return 0, c.unhandled(op)
	}
	c.setPair(op.Code>>4&3, c.fetchWord())
	return op.Cycles, nil
}

// direct handles the absolute-address loads and stores.
func (c *CPU) direct(op Opcode) (int, error) {
	switch op.Code {
	case 0x3A: // LDA
		c.SetA(c.read(c.fetchWord()))
	case 0x32: // STA
		c.write(c.fetchWord(), c.A())
	case 0x2A: // LHLD
		c.HL.SetUint16(c.readWord(c.fetchWord()))
	case 0x22: // SHLD
		c.writeWord(c.fetchWord(), c.HL.Uint16())
	default:
		return 0, c.unhandled(op)
	}
	return op.Cycles, nil
}

// indirect is LDAX/STAX through BC or DE.
func (c *CPU) indirect(op Opcode) (int, error) {
	switch op.Code {
	case 0x0A:
		c.SetA(c.read(c.BC.Uint16()))
	case 0x1A:
		c.SetA(c.read(c.DE.Uint16()))
	case 0x02:
		c.write(c.BC.Uint16(), c.A())
	case 0x12:
		c.write(c.DE.Uint16(), c.A())
	default:
		return 0, c.unhandled(op)
	}
	return op.Cycles, nil
}

func (c *CPU) exchange(op Opcode) (int, error) {
	switch op.Code {
	case 0xEB: // XCHG
		c.HL, c.DE = c.DE, c.HL
	case 0xE3: // XTHL
		top := c.readWord(c.SP)
		c.writeWord(c.SP, c.HL.Uint16())
		c.HL.SetUint16(top)
	case 0xF9: // SPHL
		c.SP = c.HL.Uint16()
	default:
		return 0, c.unhandled(op)
	}
	return op.Cycles, nil
}

func (c *CPU) push(op Opcode) (int, error) {
	if op.Code&0xCF != 0xC5 {
		return 0, c.unhandled(op)
	}
	rp := op.Code >> 4 & 3
	if rp == pairSP {
		c.pushWord(uint16(c.A())<<8 | uint16(c.psw()))
	} else {
		c.pushWord(c.pair(rp))
	}
	return op.Cycles, nil
}

func (c *CPU) pop(op Opcode) (int, error) {
	if op.Code&0xCF != 0xC1 {
		return 0, c.unhandled(op)
	}
	v := c.popWord()
	rp := op.Code >> 4 & 3
	if rp == pairSP {
		c.SetA(byte(v >> 8))
		c.SetF(byte(v)&pswUsedFlags | pswFixedOnes)
	} else {
		c.setPair(rp, v)
	}
	return op.Cycles, nil
}
