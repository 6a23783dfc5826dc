package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)
	l.Infof("loaded %d bytes", 8192)
	l.Errorf("bad %s", "rom")
	l.Debugf("hidden")
	out := buf.String()
	if !strings.Contains(out, "[INFO]\tloaded 8192 bytes") {
		t.Fatalf("info line missing: %q", out)
	}
	if !strings.Contains(out, "[ERROR]\tbad rom") {
		t.Fatalf("error line missing: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug written without debug enabled: %q", out)
	}

	buf.Reset()
	New(&buf, true).Debugf("trace %04X", 0x1A2B)
	if !strings.Contains(buf.String(), "[DEBUG]\ttrace 1A2B") {
		t.Fatalf("debug line missing: %q", buf.String())
	}
}

func TestLogger_Null(t *testing.T) {
	l := NewNull()
	l.Infof("x")
	l.Errorf("x")
	l.Debugf("x")
}
