package cpu

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecognizedOpcode matches decode failures for bytes with no table entry.
	ErrUnrecognizedOpcode = errors.New("unrecognized opcode")
	// ErrUnhandledOperand matches handlers invoked with an opcode outside
	// their operand encodings.
	ErrUnhandledOperand = errors.New("unhandled operand")
)

// UnrecognizedOpcodeError reports a fetched byte with no table entry. PC is
// the address the byte was fetched from.
type UnrecognizedOpcodeError struct {
	Opcode byte
	PC     uint16
}

func (e *UnrecognizedOpcodeError) Error() string {
	return fmt.Sprintf("opcode 0x%02X is not recognized at PC %04X", e.Opcode, e.PC)
}

func (e *UnrecognizedOpcodeError) Is(target error) bool { return target == ErrUnrecognizedOpcode }

// UnhandledOperandError reports a table entry whose handler does not know
// the opcode's operand encoding, which means the table and the handlers
// disagree.
type UnhandledOperandError struct {
	Opcode    byte
	Operation Operation
	PC        uint16
}

func (e *UnhandledOperandError) Error() string {
	return fmt.Sprintf("unexpected code 0x%02X for %s at PC %04X", e.Opcode, e.Operation, e.PC)
}

func (e *UnhandledOperandError) Is(target error) bool { return target == ErrUnhandledOperand }
