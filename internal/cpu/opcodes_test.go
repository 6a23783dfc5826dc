package cpu

import "testing"

func TestOpcodes_Count(t *testing.T) {
	ops := Opcodes()
	if len(ops) != 244 {
		t.Fatalf("opcode count got %d want 244", len(ops))
	}
	for i := 1; i < len(ops); i++ {
		if ops[i-1].Code >= ops[i].Code {
			t.Fatalf("Opcodes not in code order at %02x", ops[i].Code)
		}
	}
}

func TestOpcodes_UndocumentedAbsent(t *testing.T) {
	for _, code := range []byte{0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38, 0xCB, 0xD9, 0xDD, 0xED, 0xFD} {
		if op, ok := Lookup(code); ok {
			t.Fatalf("opcode %02x present as %s", code, op.Mnemonic)
		}
	}
}

func TestOpcodes_Entries(t *testing.T) {
	cases := []struct {
		code     byte
		mnemonic string
		op       Operation
		length   uint8
		cycles   int
	}{
		{0x00, "NOP", OpNOP, 1, 4},
		{0x01, "LXI B", OpLXI, 3, 10},
		{0x1A, "LDAX D", OpLDAX, 1, 7},
		{0x31, "LXI SP", OpLXI, 3, 10},
		{0x36, "MVI M", OpMVI, 2, 10},
		{0x3C, "INR A", OpINR, 1, 5},
		{0x76, "HLT", OpHLT, 1, 7},
		{0x7E, "MOV A,M", OpMOV, 1, 7},
		{0x86, "ADD M", OpADD, 1, 7},
		{0xBF, "CMP A", OpCMP, 1, 4},
		{0xC3, "JMP", OpJMP, 3, 10},
		{0xC6, "ADI", OpADD, 2, 7},
		{0xDE, "SBI", OpSBB, 2, 7},
		{0xEB, "XCHG", OpXCHG, 1, 4},
		{0xF5, "PUSH PSW", OpPUSH, 1, 11},
		{0xFE, "CPI", OpCMP, 2, 7},
		{0xFF, "RST 7", OpRST, 1, 11},
	}
	for _, tc := range cases {
		op, ok := Lookup(tc.code)
		if !ok {
			t.Fatalf("opcode %02x missing", tc.code)
		}
		if op.Mnemonic != tc.mnemonic || op.Operation != tc.op || op.Length != tc.length || op.Cycles != tc.cycles {
			t.Fatalf("opcode %02x got %+v", tc.code, op)
		}
	}
}

func TestOpcodes_ConditionalAltCycles(t *testing.T) {
	for _, op := range Opcodes() {
		switch op.Operation {
		case OpCCOND:
			if op.Cycles != 11 || op.AltCycles != 17 {
				t.Fatalf("%s cycles got %d/%d want 11/17", op.Mnemonic, op.Cycles, op.AltCycles)
			}
		case OpRCOND:
			if op.Cycles != 5 || op.AltCycles != 11 {
				t.Fatalf("%s cycles got %d/%d want 5/11", op.Mnemonic, op.Cycles, op.AltCycles)
			}
		default:
			if op.AltCycles != 0 {
				t.Fatalf("%s has AltCycles %d", op.Mnemonic, op.AltCycles)
			}
		}
	}
}

// Every table entry must reach a handler that knows its encoding, and
// advance PC by its length unless it transfers control.
func TestOpcodes_AllHandled(t *testing.T) {
	for _, op := range Opcodes() {
		c := newCPUWithProgram([]byte{op.Code, 0x00, 0x00})
		c.SP = 0x2400
		c.HL.SetUint16(0x3000)
		cycles, err := c.Step()
		if err != nil {
			t.Fatalf("%s (%02x): %v", op.Mnemonic, op.Code, err)
		}
		if cycles != op.Cycles && cycles != op.AltCycles {
			t.Fatalf("%s cycles got %d want %d or %d", op.Mnemonic, cycles, op.Cycles, op.AltCycles)
		}
		switch op.Operation {
		case OpJMP, OpJCOND, OpCALL, OpCCOND, OpRET, OpRCOND, OpRST, OpPCHL:
			continue
		}
		if c.PC != uint16(op.Length) {
			t.Fatalf("%s PC got %04x want %04x", op.Mnemonic, c.PC, op.Length)
		}
	}
}

func TestOperation_String(t *testing.T) {
	if OpDAA.String() != "DAA" || OpCCOND.String() != "Ccc" {
		t.Fatalf("operation names got %s %s", OpDAA, OpCCOND)
	}
	if got := Operation(200).String(); got != "Operation(200)" {
		t.Fatalf("unknown operation got %q", got)
	}
}
