package bits

import (
	mbits "math/bits"
	"testing"
)

func TestSetResetTest(t *testing.T) {
	for pos := uint8(0); pos < 8; pos++ {
		b := Set(0, pos)
		if b != 1<<pos {
			t.Fatalf("Set(0,%d) got %02x want %02x", pos, b, byte(1<<pos))
		}
		if !Test(b, pos) {
			t.Fatalf("Test(%02x,%d) got false want true", b, pos)
		}
		if Val(b, pos) != 1 {
			t.Fatalf("Val(%02x,%d) got %d want 1", b, pos, Val(b, pos))
		}
		r := Reset(0xFF, pos)
		if r != 0xFF&^(1<<pos) {
			t.Fatalf("Reset(FF,%d) got %02x", pos, r)
		}
		if Test(r, pos) || Val(r, pos) != 0 {
			t.Fatalf("bit %d still set after Reset: %02x", pos, r)
		}
	}
}

func TestAssign(t *testing.T) {
	if got := Assign(0x00, 4, true); got != 0x10 {
		t.Fatalf("Assign on got %02x want 10", got)
	}
	if got := Assign(0xFF, 4, false); got != 0xEF {
		t.Fatalf("Assign off got %02x want EF", got)
	}
}

func TestEvenParity(t *testing.T) {
	for v := 0; v < 256; v++ {
		want := mbits.OnesCount8(uint8(v))%2 == 0
		if got := EvenParity(byte(v)); got != want {
			t.Fatalf("EvenParity(%02x) got %v want %v", v, got, want)
		}
	}
}
