package main

import (
	"bytes"
	"regexp"
	"testing"
)

func runCPM(t *testing.T, prog []byte, maxSteps int) (*cpm, string) {
	t.Helper()
	var out bytes.Buffer
	h := newCPM(prog, &out)
	for i := 0; i < maxSteps; i++ {
		if err := h.trap(); err != nil {
			t.Fatalf("trap: %v", err)
		}
		if h.done {
			return h, out.String()
		}
		if _, err := h.c.Step(); err != nil {
			t.Fatalf("step: %v", err)
		}
	}
	t.Fatalf("no warm boot after %d steps; output %q", maxSteps, out.String())
	return nil, ""
}

func TestCPM_ConsoleCalls(t *testing.T) {
	prog := []byte{
		0x0E, 0x09, // MVI C,9
		0x11, 0x20, 0x01, // LXI D,0120
		0xCD, 0x05, 0x00, // CALL 5
		0x0E, 0x02, // MVI C,2
		0x1E, '!', // MVI E,'!'
		0xCD, 0x05, 0x00, // CALL 5
		0xC3, 0x00, 0x00, // JMP 0
	}
	// pad to the string at 0120
	for len(prog) < 0x20 {
		prog = append(prog, 0x00)
	}
	prog = append(prog, []byte("CPU IS OPERATIONAL$")...)

	_, out := runCPM(t, prog, 100)
	if out != "CPU IS OPERATIONAL!" {
		t.Fatalf("console got %q", out)
	}
	if !passRe.MatchString(out) || failRe.MatchString(out) {
		t.Fatalf("banner detection wrong for %q", out)
	}
}

func TestCPM_StackFromBDOSVector(t *testing.T) {
	prog := []byte{
		0x2A, 0x06, 0x00, // LHLD 6
		0xF9,             // SPHL
		0xC3, 0x00, 0x00, // JMP 0
	}
	h, _ := runCPM(t, prog, 10)
	if h.c.SP != memTop {
		t.Fatalf("SP got %04x want %04x", h.c.SP, memTop)
	}
}

func TestBanners(t *testing.T) {
	cases := []struct {
		out  string
		re   *regexp.Regexp
		want bool
	}{
		{"8080 Preliminary tests complete", passRe, true},
		{"CPU TESTS OK", passRe, true},
		{" CPU HAS FAILED! ERROR EXIT=0123", failRe, true},
		{"dad <b,d,h,sp>................  PASS! crc is:14474ba6", failRe, false},
		{"aluop nn.....  ERROR **** crc expected:9e922f9e found:cf762c86", failRe, true},
	}
	for _, tc := range cases {
		if got := tc.re.MatchString(tc.out); got != tc.want {
			t.Fatalf("%q match got %t want %t", tc.out, got, tc.want)
		}
	}
}
