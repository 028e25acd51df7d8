// Package program contains the data model of a disassembled program.
package program

import "github.com/retroenv/z80godisasm/internal/symbols"

// RawDataDirective is the mnemonic used for byte values that do not map
// to a modeled instruction shape.
const RawDataDirective = "DB"

// OperandKind describes the variant of an instruction operand.
type OperandKind uint8

// Operand kinds.
const (
	RegisterOperand  OperandKind = iota // register, register pair or register-indirect text
	ConditionOperand                    // condition code (NZ, Z, NC, C, PO, PE, P, M)
	ImmediateByte                       // 8 bit literal
	ImmediateWord                       // 16 bit literal
	IndirectAddress                     // 16 bit memory address operand (&XXXX)
	IndirectPort                        // 8 bit I/O port operand (&XX)
	TargetOperand                       // resolved absolute control flow target address
	IndexedOperand                      // index register with signed displacement, (IX+d)
	BitNumber                           // bit index 0-7 of the CB bit operations
)

// Operand is a tagged variant over the operand kinds. Target operands
// always carry the resolved absolute address, never a raw displacement,
// so rendering never needs address arithmetic.
type Operand struct {
	Kind  OperandKind
	Text  string // register, condition or index register name
	Value uint16 // literal value, address or resolved target
}

// Reg returns a register or register-indirect operand.
func Reg(name string) Operand {
	return Operand{Kind: RegisterOperand, Text: name}
}

// Cond returns a condition code operand.
func Cond(name string) Operand {
	return Operand{Kind: ConditionOperand, Text: name}
}

// Imm8 returns an 8 bit immediate operand.
func Imm8(value byte) Operand {
	return Operand{Kind: ImmediateByte, Value: uint16(value)}
}

// Imm16 returns a 16 bit immediate operand.
func Imm16(value uint16) Operand {
	return Operand{Kind: ImmediateWord, Value: value}
}

// Indirect returns a memory address operand.
func Indirect(address uint16) Operand {
	return Operand{Kind: IndirectAddress, Value: address}
}

// Port returns an I/O port operand.
func Port(port byte) Operand {
	return Operand{Kind: IndirectPort, Value: uint16(port)}
}

// Target returns a control flow target operand carrying the resolved
// absolute address.
func Target(address uint16) Operand {
	return Operand{Kind: TargetOperand, Value: address}
}

// Indexed returns an index register operand with a displacement byte.
func Indexed(register string, displacement byte) Operand {
	return Operand{Kind: IndexedOperand, Text: register, Value: uint16(displacement)}
}

// Bit returns a bit index operand.
func Bit(index byte) Operand {
	return Operand{Kind: BitNumber, Value: uint16(index)}
}

// Instruction is one decoded instruction. It is immutable once produced;
// addresses are unique and strictly increasing across a decoded sequence.
type Instruction struct {
	Address  uint16
	Data     []byte // the exact encoding bytes, 1-4 bytes
	Mnemonic string
	Operands []Operand
}

// Size returns the encoding length in bytes.
func (i Instruction) Size() int {
	return len(i.Data)
}

// IsRawData returns whether the instruction is a raw data placeholder
// for an unmodeled or truncated byte.
func (i Instruction) IsRawData() bool {
	return i.Mnemonic == RawDataDirective
}

// Image is the raw binary input: an immutable byte sequence paired with
// the base load address of its first byte.
type Image struct {
	Data        []byte
	BaseAddress uint16
}

// Program is the result of pass 1: the ordered instruction sequence and
// the completed label registry. It is read-only once produced.
type Program struct {
	BaseAddress  uint16
	Instructions []Instruction
	Labels       *symbols.Registry
}
