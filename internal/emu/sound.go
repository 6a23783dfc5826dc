package emu

import "strings"

// Sound is a set of the board's discrete sound circuits, one bit each,
// as triggered through OUT 3 and OUT 5.
type Sound uint16

const (
	SoundUFO Sound = 1 << iota
	SoundShot
	SoundPlayerDie
	SoundInvaderDie
	SoundExtraShip
	SoundAmpEnable
	SoundFleet1
	SoundFleet2
	SoundFleet3
	SoundFleet4
	SoundUFOHit
)

var soundNames = []string{
	"ufo", "shot", "player-die", "invader-die", "extra-ship", "amp",
	"fleet1", "fleet2", "fleet3", "fleet4", "ufo-hit",
}

func decodeSound(port3, port5 byte) Sound {
	return Sound(port3&0x3F) | Sound(port5&0x1F)<<6
}

func (s Sound) String() string {
	var names []string
	for i, n := range soundNames {
		if s&(1<<i) != 0 {
			names = append(names, n)
		}
	}
	return strings.Join(names, "|")
}

// SoundEvents returns the circuits switched on since the last call.
// Holding a latch bit high triggers once.
func (m *Machine) SoundEvents() Sound {
	s := m.board.started
	m.board.started = 0
	return s
}
