package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/FabianRolfMatthiasNoll/InvadersEmulator/internal/romset"
)

// Completion banners of TST8080, 8080PRE, CPUTEST and 8080EXM, and the
// ways they report failure.
var (
	passRe = regexp.MustCompile(`(?i)(cpu is operational|preliminary tests complete|cpu tests ok|tests complete)`)
	failRe = regexp.MustCompile(`(?i)(cpu has failed|error|failed)`)
)

func main() {
	progPath := flag.String("prog", "", "path to CP/M .COM program (.gz/.zip/.7z accepted)")
	steps := flag.Int("steps", 0, "max CPU steps to run; 0 runs until warm boot")
	trace := flag.Bool("trace", false, "print the processor state before each instruction")
	auto := flag.Bool("auto", false, "detect pass/fail banners in console output and exit with code 0/1")
	timeout := flag.Duration("timeout", 0, "optional wall-clock timeout (e.g. 30s, 2m); 0 disables")
	traceOnFail := flag.Bool("traceOnFail", false, "on failure, print a recent trace window (slows down)")
	traceWindow := flag.Int("traceWindow", 200, "number of recent instructions to include in 'traceOnFail' dump")
	flag.Parse()

	if *progPath == "" {
		log.Fatal("-prog is required")
	}
	prog, err := romset.ReadImage(*progPath)
	if err != nil {
		log.Fatalf("read program: %v", err)
	}
	if len(prog) > 0x10000-0x100 {
		log.Fatalf("program is %d bytes, does not fit above the TPA", len(prog))
	}

	// console goes to stdout and to a buffer the banner detection scans
	var con bytes.Buffer
	h := newCPM(prog, io.MultiWriter(os.Stdout, &con))
	c := h.c

	start := time.Now()
	var deadline time.Time
	if *timeout > 0 {
		deadline = start.Add(*timeout)
	}

	ring := make([]string, *traceWindow)
	ringIdx := 0
	ringFill := 0
	dumpRing := func() {
		if !*traceOnFail || ringFill == 0 {
			return
		}
		fmt.Printf("\n--- recent trace (last %d instructions) ---\n", ringFill)
		startIdx := (ringIdx - ringFill + *traceWindow) % *traceWindow
		for j := 0; j < ringFill; j++ {
			fmt.Println(ring[(startIdx+j)%*traceWindow])
		}
		fmt.Printf("--- end trace ---\n")
	}
	report := func(i int, cycles uint64) {
		fmt.Printf("\nDone: steps=%d cycles=%d elapsed=%s\n", i, cycles, time.Since(start).Truncate(time.Millisecond))
	}

	var cycles uint64
	scanned := 0
	for i := 0; *steps == 0 || i < *steps; i++ {
		if err := h.trap(); err != nil {
			log.Fatalf("console: %v", err)
		}
		if h.done {
			if *auto {
				if passRe.MatchString(con.String()) && !failRe.MatchString(con.String()) {
					fmt.Printf("\nDetected PASS in console output.\n")
					report(i, cycles)
					os.Exit(0)
				}
				fmt.Printf("\nWarm boot without a pass banner.\n")
				dumpRing()
				report(i, cycles)
				os.Exit(1)
			}
			report(i, cycles)
			return
		}
		if *trace || *traceOnFail {
			line := c.Debug()
			if *trace {
				fmt.Println(line)
			}
			if *traceOnFail && *traceWindow > 0 {
				ring[ringIdx] = line
				ringIdx = (ringIdx + 1) % *traceWindow
				if ringFill < *traceWindow {
					ringFill++
				}
			}
		}
		n, err := c.Step()
		if err != nil {
			fmt.Printf("\n%v\n%s\n", err, c.Debug())
			dumpRing()
			report(i, cycles)
			os.Exit(1)
		}
		cycles += uint64(n)
		if c.Halted() {
			fmt.Printf("\nHalted at %04X.\n", c.PC-1)
			report(i+1, cycles)
			os.Exit(1)
		}

		// only the new tail needs scanning; failure lines start fresh
		if *auto && con.Len() > scanned {
			tail := con.String()[scanned:]
			if nl := strings.LastIndexByte(tail, '\n'); nl >= 0 {
				if failRe.MatchString(tail[:nl]) {
					fmt.Printf("\nDetected failure in console output.\n")
					dumpRing()
					report(i+1, cycles)
					os.Exit(1)
				}
				scanned += nl + 1
			}
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			fmt.Printf("\nTimeout after %s.\n", time.Since(start).Truncate(time.Millisecond))
			report(i+1, cycles)
			os.Exit(2)
		}
	}
	report(*steps, cycles)
}
