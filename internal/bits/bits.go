package bits

// Test reports whether the bit at position pos is set in b.
func Test(b byte, pos uint8) bool {
	return b&(1<<pos) != 0
}

// Set returns b with the bit at position pos set.
func Set(b byte, pos uint8) byte {
	return b | (1 << pos)
}

// Reset returns b with the bit at position pos cleared.
func Reset(b byte, pos uint8) byte {
	return b &^ (1 << pos)
}

// Val returns the bit at position pos as 0 or 1.
func Val(b byte, pos uint8) byte {
	return (b >> pos) & 1
}

// Assign sets or clears the bit at position pos depending on on.
func Assign(b byte, pos uint8, on bool) byte {
	if on {
		return Set(b, pos)
	}
	return Reset(b, pos)
}

// EvenParity reports whether b has an even number of set bits.
func EvenParity(b byte) bool {
	b ^= b >> 4
	b ^= b >> 2
	b ^= b >> 1
	return b&1 == 0
}
