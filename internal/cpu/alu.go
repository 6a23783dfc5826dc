package cpu

// aluOperand resolves the second operand of the eight accumulator
// operations. Register forms sit at 80-BF, the immediate forms at C6-FE,
// both ordered ADD ADC SUB SBB ANA XRA ORA CMP.
func (c *CPU) aluOperand(op Opcode) (byte, error) {
	idx := byte(op.Operation - OpADD)
	base := 0x80 | idx<<3
	switch {
	case op.Code >= base && op.Code <= base+7:
		return c.reg(op.Code & 7), nil
	case op.Code == 0xC6|idx<<3:
		return c.fetchByte(), nil
	}
	return 0, c.unhandled(op)
}

func (c *CPU) add(op Opcode, withCarry bool) (int, error) {
	v, err := c.aluOperand(op)
	if err != nil {
		return 0, err
	}
	var cin byte
	if withCarry {
		cin = c.carry()
	}
	a := c.A()
	sum := uint16(a) + uint16(v) + uint16(cin)
	c.SetFlag(FlagCarry, sum > 0xFF)
	c.SetFlag(FlagAuxCarry, a&0x0F+v&0x0F+cin > 0x0F)
	c.SetA(byte(sum))
	c.setZSP(byte(sum))
	return op.Cycles, nil
}

func (c *CPU) sub(op Opcode, withBorrow bool) (int, error) {
	v, err := c.aluOperand(op)
	if err != nil {
		return 0, err
	}
	var borrow byte
	if withBorrow {
		borrow = c.carry()
	}
	a := c.A()
	res := a - v - borrow
	c.SetFlag(FlagCarry, uint16(a) < uint16(v)+uint16(borrow))
	c.SetFlag(FlagAuxCarry, a&0x0F < v&0x0F+borrow)
	c.SetA(res)
	c.setZSP(res)
	return op.Cycles, nil
}

// logic covers ANA, XRA and ORA. Carry and auxiliary carry always clear.
func (c *CPU) logic(op Opcode) (int, error) {
	v, err := c.aluOperand(op)
	if err != nil {
		return 0, err
	}
	a := c.A()
	switch op.Operation {
	case OpANA:
		a &= v
	case OpXRA:
		a ^= v
	default:
		a |= v
	}
	c.SetA(a)
	c.setZSP(a)
	c.SetFlag(FlagCarry, false)
	c.SetFlag(FlagAuxCarry, false)
	return op.Cycles, nil
}

// compare sets flags as SUB would and leaves A alone.
func (c *CPU) compare(op Opcode) (int, error) {
	v, err := c.aluOperand(op)
	if err != nil {
		return 0, err
	}
	a := c.A()
	c.setZSP(a - v)
	c.SetFlag(FlagCarry, a < v)
	c.SetFlag(FlagAuxCarry, a&0x0F < v&0x0F)
	return op.Cycles, nil
}

func (c *CPU) increment(op Opcode) (int, error) {
	if op.Code&0xC7 != 0x04 {
		return 0, c.unhandled(op)
	}
	r := op.Code >> 3 & 7
	v := c.reg(r) + 1
	c.setReg(r, v)
	c.setZSP(v)
	c.SetFlag(FlagAuxCarry, v&0x0F == 0)
	return op.Cycles, nil
}

func (c *CPU) decrement(op Opcode) (int, error) {
	if op.Code&0xC7 != 0x05 {
		return 0, c.unhandled(op)
	}
	r := op.Code >> 3 & 7
	v := c.reg(r) - 1
	c.setReg(r, v)
	c.setZSP(v)
	c.SetFlag(FlagAuxCarry, v&0x0F == 0x0F)
	return op.Cycles, nil
}

// stepPair is INX and DCX. No flags change.
func (c *CPU) stepPair(op Opcode) (int, error) {
	rp := op.Code >> 4 & 3
	switch op.Code & 0xCF {
	case 0x03:
		c.setPair(rp, c.pair(rp)+1)
	case 0x0B:
		c.setPair(rp, c.pair(rp)-1)
	default:
		return 0, c.unhandled(op)
	}
	return op.Cycles, nil
}

// addHL is DAD: HL += rp, only carry is affected.
func (c *CPU) addHL(op Opcode) (int, error) {
	if op.Code&0xCF != 0x09 {
		return 0, c.unhandled(op)
	}
	sum := uint32(c.HL.Uint16()) + uint32(c.pair(op.Code>>4&3))
	c.HL.SetUint16(uint16(sum))
	c.SetFlag(FlagCarry, sum > 0xFFFF)
	return op.Cycles, nil
}

// decimalAdjust corrects A after a BCD addition. Carry is only ever set by
// the adjustment, never cleared.
func (c *CPU) decimalAdjust() {
	a := c.A()
	if c.Flag(FlagAuxCarry) || a&0x0F > 9 {
		c.SetFlag(FlagAuxCarry, a&0x0F+6 > 0x0F)
		a += 6
	}
	hi := a >> 4
	if c.Flag(FlagCarry) || hi > 9 {
		if hi+6 > 0x0F {
			c.SetFlag(FlagCarry, true)
		}
		hi = (hi + 6) & 0x0F
		a = hi<<4 | a&0x0F
	}
	c.SetA(a)
	c.setZSP(a)
}

// rotateLeft is RLC, or RAL when through is set.
func (c *CPU) rotateLeft(through bool) {
	a := c.A()
	out := a >> 7
	in := out
	if through {
		in = c.carry()
	}
	c.SetA(a<<1 | in)
	c.SetFlag(FlagCarry, out == 1)
}

// rotateRight is RRC, or RAR when through is set.
func (c *CPU) rotateRight(through bool) {
	a := c.A()
	out := a & 1
	in := out
	if through {
		in = c.carry()
	}
	c.SetA(a>>1 | in<<7)
	c.SetFlag(FlagCarry, out == 1)
}
