package emu

// Buttons is the state of the cabinet controls.
type Buttons struct {
	Coin            bool
	P1Start         bool
	P2Start         bool
	Left, Right     bool
	Fire            bool
	P2Left, P2Right bool
	P2Fire          bool
	Tilt            bool
}

// Input port bits.
const (
	in1Coin    = 1 << 0
	in1P2Start = 1 << 1
	in1P1Start = 1 << 2
	in1Always  = 1 << 3
	in1Fire    = 1 << 4
	in1Left    = 1 << 5
	in1Right   = 1 << 6

	in2Lives     = 0x03
	in2Tilt      = 1 << 2
	in2Bonus     = 1 << 3
	in2P2Fire    = 1 << 4
	in2P2Left    = 1 << 5
	in2P2Right   = 1 << 6
	in2NoCoinMsg = 1 << 7
)

// board is the I/O hardware behind the CPU's IN and OUT instructions.
// Besides the input latches it carries the external shift register used
// for sprite blitting.
type board struct {
	in1, in2 byte
	dips     byte

	shift  uint16
	offset byte

	// sound latches, bit per effect
	sound1, sound2 byte
	started        Sound // rising edges not yet collected
	watchdog       int
}

func (b *board) setDIPs(cfg Config) {
	b.dips = byte(cfg.Lives-3) & in2Lives
	if cfg.BonusAt1000 {
		b.dips |= in2Bonus
	}
	if cfg.HideCoinInfo {
		b.dips |= in2NoCoinMsg
	}
}

func (b *board) setButtons(btn Buttons) {
	b.in1 = in1Always
	if btn.Coin {
		b.in1 |= in1Coin
	}
	if btn.P2Start {
		b.in1 |= in1P2Start
	}
	if btn.P1Start {
		b.in1 |= in1P1Start
	}
	if btn.Fire {
		b.in1 |= in1Fire
	}
	if btn.Left {
		b.in1 |= in1Left
	}
	if btn.Right {
		b.in1 |= in1Right
	}

	b.in2 = 0
	if btn.Tilt {
		b.in2 |= in2Tilt
	}
	if btn.P2Fire {
		b.in2 |= in2P2Fire
	}
	if btn.P2Left {
		b.in2 |= in2P2Left
	}
	if btn.P2Right {
		b.in2 |= in2P2Right
	}
}

func (b *board) In(port byte) byte {
	switch port {
	case 0:
		return 0x0E
	case 1:
		return b.in1 | in1Always
	case 2:
		return b.in2 | b.dips
	case 3:
		return byte(b.shift >> (8 - b.offset))
	}
	return 0
}

func (b *board) Out(port, v byte) {
	switch port {
	case 2:
		b.offset = v & 7
	case 3:
		b.latchSound(v, b.sound2)
	case 4:
		b.shift = uint16(v)<<8 | b.shift>>8
	case 5:
		b.latchSound(b.sound1, v)
	case 6:
		b.watchdog++
	}
}

func (b *board) latchSound(p3, p5 byte) {
	old := decodeSound(b.sound1, b.sound2)
	b.sound1, b.sound2 = p3, p5
	b.started |= decodeSound(p3, p5) &^ old
}
