package bus

// Size is the number of addressable bytes: the full 16-bit address space.
const Size = 0x10000

// Bus is a flat 64KB memory. Every uint16 address is valid, so reads and
// writes never fail. Region semantics (ROM, video RAM) belong to the board.
type Bus struct {
	mem [Size]byte
}

func New() *Bus {
	return &Bus{}
}

func (b *Bus) Read(addr uint16) byte {
	return b.mem[addr]
}

func (b *Bus) Write(addr uint16, value byte) {
	b.mem[addr] = value
}

// Load copies data into memory starting at offset and returns the number
// of bytes written. Data that would run past 0xFFFF is dropped.
func (b *Bus) Load(offset uint16, data []byte) int {
	return copy(b.mem[offset:], data)
}

// Slice returns memory [from, to) without copying, clamped to the address
// space. Later writes through the bus are visible in the returned slice.
func (b *Bus) Slice(from, to int) []byte {
	if from < 0 {
		from = 0
	}
	if to > Size {
		to = Size
	}
	if from > to {
		return nil
	}
	return b.mem[from:to]
}

// Clear zeroes all of memory.
func (b *Bus) Clear() {
	b.mem = [Size]byte{}
}
