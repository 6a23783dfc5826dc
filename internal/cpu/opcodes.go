package cpu

import (
	"fmt"
	"sync"
)

// Operation identifies the handler family an opcode dispatches to.
// Immediate forms share the tag of their register form (ADI is ADD).
type Operation uint8

const (
	OpNOP Operation = iota
	OpADD
	OpADC
	OpSUB
	OpSBB
	OpANA
	OpXRA
	OpORA
	OpCMP
	OpINR
	OpDCR
	OpINX
	OpDCX
	OpDAD
	OpCMA
	OpCMC
	OpSTC
	OpDAA
	OpRLC
	OpRRC
	OpRAL
	OpRAR
	OpMOV
	OpMVI
	OpLXI
	OpLDA
	OpSTA
	OpLHLD
	OpSHLD
	OpLDAX
	OpSTAX
	OpXCHG
	OpXTHL
	OpSPHL
	OpPCHL
	OpPUSH
	OpPOP
	OpJMP
	OpJCOND
	OpCALL
	OpCCOND
	OpRET
	OpRCOND
	OpRST
	OpEI
	OpDI
	OpHLT
	OpIN
	OpOUT
	operationCount
)

var operationNames = [operationCount]string{
	"NOP", "ADD", "ADC", "SUB", "SBB", "ANA", "XRA", "ORA", "CMP",
	"INR", "DCR", "INX", "DCX", "DAD", "CMA", "CMC", "STC", "DAA",
	"RLC", "RRC", "RAL", "RAR", "MOV", "MVI", "LXI", "LDA", "STA",
	"LHLD", "SHLD", "LDAX", "STAX", "XCHG", "XTHL", "SPHL", "PCHL",
	"PUSH", "POP", "JMP", "Jcc", "CALL", "Ccc", "RET", "Rcc", "RST",
	"EI", "DI", "HLT", "IN", "OUT",
}

func (o Operation) String() string {
	if o < operationCount {
		return operationNames[o]
	}
	return fmt.Sprintf("Operation(%d)", uint8(o))
}

// Opcode describes one instruction encoding. AltCycles is the cost when a
// conditional CALL or RET is taken; it is zero for fixed-timing opcodes.
type Opcode struct {
	Code      byte
	Mnemonic  string
	Operation Operation
	Length    uint8
	Cycles    int
	AltCycles int
}

var (
	tableOnce sync.Once
	table     [256]*Opcode
)

// Lookup returns the table entry for code. ok is false for the bytes the
// processor does not document.
func Lookup(code byte) (op Opcode, ok bool) {
	tableOnce.Do(buildTable)
	if e := table[code]; e != nil {
		return *e, true
	}
	return Opcode{}, false
}

// Opcodes returns every defined entry in code order.
func Opcodes() []Opcode {
	tableOnce.Do(buildTable)
	out := make([]Opcode, 0, 244)
	for _, e := range table {
		if e != nil {
			out = append(out, *e)
		}
	}
	return out
}

func define(code byte, mnemonic string, op Operation, length uint8, cycles, alt int) {
	if table[code] != nil {
		panic(fmt.Sprintf("cpu: opcode %02X defined twice (%s, %s)", code, table[code].Mnemonic, mnemonic))
	}
	table[code] = &Opcode{
		Code:      code,
		Mnemonic:  mnemonic,
		Operation: op,
		Length:    length,
		Cycles:    cycles,
		AltCycles: alt,
	}
}

var (
	pairNames     = [4]string{"B", "D", "H", "SP"}
	stackNames    = [4]string{"B", "D", "H", "PSW"}
	conditionName = [8]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}
)

func buildTable() {
	define(0x00, "NOP", OpNOP, 1, 4, 0)

	define(0x07, "RLC", OpRLC, 1, 4, 0)
	define(0x0F, "RRC", OpRRC, 1, 4, 0)
	define(0x17, "RAL", OpRAL, 1, 4, 0)
	define(0x1F, "RAR", OpRAR, 1, 4, 0)
	define(0x27, "DAA", OpDAA, 1, 4, 0)
	define(0x2F, "CMA", OpCMA, 1, 4, 0)
	define(0x37, "STC", OpSTC, 1, 4, 0)
	define(0x3F, "CMC", OpCMC, 1, 4, 0)

	define(0x02, "STAX B", OpSTAX, 1, 7, 0)
	define(0x12, "STAX D", OpSTAX, 1, 7, 0)
	define(0x0A, "LDAX B", OpLDAX, 1, 7, 0)
	define(0x1A, "LDAX D", OpLDAX, 1, 7, 0)
	define(0x22, "SHLD", OpSHLD, 3, 16, 0)
	define(0x2A, "LHLD", OpLHLD, 3, 16, 0)
	define(0x32, "STA", OpSTA, 3, 13, 0)
	define(0x3A, "LDA", OpLDA, 3, 13, 0)

	// register pair families, rp in bits 4-5
	for rp := byte(0); rp < 4; rp++ {
		name := pairNames[rp]
		define(0x01|rp<<4, "LXI "+name, OpLXI, 3, 10, 0)
		define(0x03|rp<<4, "INX "+name, OpINX, 1, 5, 0)
		define(0x09|rp<<4, "DAD "+name, OpDAD, 1, 10, 0)
		define(0x0B|rp<<4, "DCX "+name, OpDCX, 1, 5, 0)
		define(0xC1|rp<<4, "POP "+stackNames[rp], OpPOP, 1, 10, 0)
		define(0xC5|rp<<4, "PUSH "+stackNames[rp], OpPUSH, 1, 11, 0)
	}

	// single register families, r in bits 3-5
	for r := byte(0); r < 8; r++ {
		name := registerNames[r]
		cycles, mvi := 5, 7
		if r == regM {
			cycles, mvi = 10, 10
		}
		define(0x04|r<<3, "INR "+name, OpINR, 1, cycles, 0)
		define(0x05|r<<3, "DCR "+name, OpDCR, 1, cycles, 0)
		define(0x06|r<<3, "MVI "+name, OpMVI, 2, mvi, 0)
	}

	// MOV d,s occupies 40-7F except 76, which is HLT
	for d := byte(0); d < 8; d++ {
		for s := byte(0); s < 8; s++ {
			code := 0x40 | d<<3 | s
			if d == regM && s == regM {
				define(code, "HLT", OpHLT, 1, 7, 0)
				continue
			}
			cycles := 5
			if d == regM || s == regM {
				cycles = 7
			}
			define(code, "MOV "+registerNames[d]+","+registerNames[s], OpMOV, 1, cycles, 0)
		}
	}

	// 80-BF register ALU forms and their immediates
	alu := [8]struct {
		reg, imm string
		op       Operation
	}{
		{"ADD", "ADI", OpADD}, {"ADC", "ACI", OpADC},
		{"SUB", "SUI", OpSUB}, {"SBB", "SBI", OpSBB},
		{"ANA", "ANI", OpANA}, {"XRA", "XRI", OpXRA},
		{"ORA", "ORI", OpORA}, {"CMP", "CPI", OpCMP},
	}
	for i, a := range alu {
		for r := byte(0); r < 8; r++ {
			cycles := 4
			if r == regM {
				cycles = 7
			}
			define(0x80|byte(i)<<3|r, a.reg+" "+registerNames[r], a.op, 1, cycles, 0)
		}
		define(0xC6|byte(i)<<3, a.imm, a.op, 2, 7, 0)
	}

	// conditional control flow, cc in bits 3-5
	for cc := byte(0); cc < 8; cc++ {
		name := conditionName[cc]
		define(0xC0|cc<<3, "R"+name, OpRCOND, 1, 5, 11)
		define(0xC2|cc<<3, "J"+name, OpJCOND, 3, 10, 0)
		define(0xC4|cc<<3, "C"+name, OpCCOND, 3, 11, 17)
		define(0xC7|cc<<3, fmt.Sprintf("RST %d", cc), OpRST, 1, 11, 0)
	}

	define(0xC3, "JMP", OpJMP, 3, 10, 0)
	define(0xC9, "RET", OpRET, 1, 10, 0)
	define(0xCD, "CALL", OpCALL, 3, 17, 0)
	define(0xD3, "OUT", OpOUT, 2, 10, 0)
	define(0xDB, "IN", OpIN, 2, 10, 0)
	define(0xE3, "XTHL", OpXTHL, 1, 18, 0)
	define(0xE9, "PCHL", OpPCHL, 1, 5, 0)
	define(0xEB, "XCHG", OpXCHG, 1, 4, 0)
	define(0xF3, "DI", OpDI, 1, 4, 0)
	define(0xF9, "SPHL", OpSPHL, 1, 5, 0)
	define(0xFB, "EI", OpEI, 1, 4, 0)
}
