package cpu

import "github.com/FabianRolfMatthiasNoll/InvadersEmulator/internal/bits"

// Flag is a bit position in the F register.
type Flag = uint8

const (
	FlagCarry    Flag = 0
	FlagParity   Flag = 2
	FlagAuxCarry Flag = 4
	FlagZero     Flag = 6
	FlagSign     Flag = 7
)

// PSW layout when F is pushed: bit 1 always reads 1, bits 3 and 5 read 0.
const (
	pswFixedOnes byte = 0x02
	pswUsedFlags byte = 1<<FlagSign | 1<<FlagZero | 1<<FlagAuxCarry | 1<<FlagParity | 1<<FlagCarry
)

const flagLetters = "SZ-A-P-C"

// Flag reports whether flag f is set.
func (c *CPU) Flag(f Flag) bool {
	return bits.Test(c.AF.Lo(), f)
}

// SetFlag sets or clears flag f.
func (c *CPU) SetFlag(f Flag, on bool) {
	c.AF.SetLo(bits.Assign(c.AF.Lo(), f, on))
}

func (c *CPU) carry() byte {
	return bits.Val(c.AF.Lo(), FlagCarry)
}

// setZSP updates Zero, Sign and Parity from v.
func (c *CPU) setZSP(v byte) {
	c.SetFlag(FlagZero, v == 0)
	c.SetFlag(FlagSign, bits.Test(v, 7))
	c.SetFlag(FlagParity, bits.EvenParity(v))
}

// psw returns F as the processor pushes it.
func (c *CPU) psw() byte {
	return c.AF.Lo()&pswUsedFlags | pswFixedOnes
}

// flagString renders F as "SZ-A-P-C" with cleared flags shown as '.'.
func flagString(f byte) string {
	out := []byte(flagLetters)
	for i := range out {
		pos := uint8(7 - i)
		if out[i] == '-' {
			continue
		}
		if !bits.Test(f, pos) {
			out[i] = '.'
		}
	}
	return string(out)
}
