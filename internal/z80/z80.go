// Package z80 implements the Z80 instruction decoder.
//
// Decoding is total: every byte sequence of every length decodes without
// failure. Opcodes without a modeled shape and encodings truncated by
// the end of the image degrade to one-byte raw data pseudo-instructions,
// so the decoded sequence always covers the image exactly and the sweep
// terminates in a single linear pass.
package z80

import (
	"github.com/retroenv/z80godisasm/internal/cursor"
	"github.com/retroenv/z80godisasm/internal/program"
)

// Prefix bytes selecting the alternate opcode tables.
const (
	PrefixBit      = 0xCB // bit, rotate and shift operations
	PrefixIX       = 0xDD // IX index register operations
	PrefixExtended = 0xED // extended instruction set
	PrefixIY       = 0xFD // IY index register operations
)

// MaxEncodingLength is the longest modeled instruction encoding in bytes.
const MaxEncodingLength = 4

// Decoder turns an image byte stream into a sequence of instructions.
// The cursor is owned exclusively by the decoder and driven forward
// only, one instruction per call to Next.
type Decoder struct {
	cur  *cursor.Cursor
	data []byte
	base uint16

	unmodeled int
	truncated int
}

// NewDecoder creates a decoder for the given image.
func NewDecoder(image program.Image) *Decoder {
	return &Decoder{
		cur:  cursor.New(image.Data),
		data: image.Data,
		base: image.BaseAddress,
	}
}

// Next decodes the next instruction. It returns false once the image is
// exhausted; no partial instruction is emitted in that case.
func (d *Decoder) Next() (program.Instruction, bool) {
	if d.cur.AtEnd() {
		return program.Instruction{}, false
	}

	start := d.cur.Pos()
	address := d.base + uint16(start)
	op, _ := d.cur.PeekByte(0)

	var ins program.Instruction
	switch op {
	case PrefixBit:
		ins = d.decodeBit(address, start)
	case PrefixExtended:
		ins = d.decodePrefixed(address, start, extendedOpcodes, "")
	case PrefixIX:
		ins = d.decodePrefixed(address, start, indexOpcodes, "IX")
	case PrefixIY:
		ins = d.decodePrefixed(address, start, indexOpcodes, "IY")
	default:
		ins = d.decodeBase(address, start, op)
	}
	return ins, true
}

// UnmodeledCount returns how many bytes were emitted as raw data because
// no instruction shape is modeled for them.
func (d *Decoder) UnmodeledCount() int {
	return d.unmodeled
}

// TruncatedCount returns how many bytes were emitted as raw data because
// their full encoding reached past the end of the image.
func (d *Decoder) TruncatedCount() int {
	return d.truncated
}

// decodeBase decodes an instruction of the unprefixed opcode table.
func (d *Decoder) decodeBase(address uint16, start int, op byte) program.Instruction {
	entry := baseOpcodes[op]
	if !entry.modeled() {
		d.unmodeled++
		return d.rawData(address, start)
	}
	if d.cur.Remaining() < 1+entry.operandSize() {
		d.truncated++
		return d.rawData(address, start)
	}

	d.cur.Skip(1)
	operands := d.materialize(entry, "")
	return d.finish(address, start, entry.mnemonic, operands)
}

// decodeBit decodes a 0xCB prefixed bit, rotate or shift instruction.
// The sub-opcode space is fully covered: a 2 bit class field selects
// rotate/shift, BIT, RES or SET, the remaining fields select the bit
// index and register.
func (d *Decoder) decodeBit(address uint16, start int) program.Instruction {
	if d.cur.Remaining() < 2 {
		d.truncated++
		return d.rawData(address, start)
	}

	d.cur.Skip(1)
	op, _ := d.cur.ReadByte()

	class := op >> 6
	field := (op >> 3) & 0x07
	register := program.Reg(reg8Names[op&0x07])

	var mnemonic string
	var operands []program.Operand
	switch class {
	case 0:
		mnemonic = rotateNames[field]
		operands = []program.Operand{register}
	case 1:
		mnemonic = "BIT"
		operands = []program.Operand{program.Bit(field), register}
	case 2:
		mnemonic = "RES"
		operands = []program.Operand{program.Bit(field), register}
	default:
		mnemonic = "SET"
		operands = []program.Operand{program.Bit(field), register}
	}
	return d.finish(address, start, mnemonic, operands)
}

// decodePrefixed decodes a 0xED, 0xDD or 0xFD prefixed instruction using
// the given sub-table. The follow-up opcode byte is peeked first: if it
// is missing or unmodeled, only the prefix byte is consumed as raw data
// and the following byte is decoded normally on the next call.
func (d *Decoder) decodePrefixed(address uint16, start int,
	table map[byte]template, indexRegisterName string) program.Instruction {

	sub, ok := d.cur.PeekByte(1)
	if !ok {
		d.truncated++
		return d.rawData(address, start)
	}
	entry, ok := table[sub]
	if !ok {
		d.unmodeled++
		return d.rawData(address, start)
	}
	if d.cur.Remaining() < 2+entry.operandSize() {
		d.truncated++
		return d.rawData(address, start)
	}

	d.cur.Skip(2)
	operands := d.materialize(entry, indexRegisterName)
	return d.finish(address, start, entry.mnemonic, operands)
}

// materialize reads the operand bytes of a shape and produces the
// operand list. Callers have verified that all bytes are available.
func (d *Decoder) materialize(entry template, indexRegisterName string) []program.Operand {
	operands := make([]program.Operand, 0, len(entry.operands))
	for _, t := range entry.operands {
		switch t.kind {
		case operandReg:
			operands = append(operands, program.Reg(d.registerText(t.text, indexRegisterName)))
		case operandCond:
			operands = append(operands, program.Cond(t.text))
		case operandFixedByte:
			operands = append(operands, program.Imm8(t.value))
		case operandFixedDigit:
			operands = append(operands, program.Bit(t.value))
		case operandImm8:
			b, _ := d.cur.ReadByte()
			operands = append(operands, program.Imm8(b))
		case operandPort:
			b, _ := d.cur.ReadByte()
			operands = append(operands, program.Port(b))
		case operandImm16:
			w, _ := d.cur.ReadWord()
			operands = append(operands, program.Imm16(w))
		case operandMem16:
			w, _ := d.cur.ReadWord()
			operands = append(operands, program.Indirect(w))
		case operandAddr:
			w, _ := d.cur.ReadWord()
			operands = append(operands, program.Target(w))
		case operandRel:
			b, _ := d.cur.ReadByte()
			// target relative to the address following the instruction,
			// displacement reinterpreted as two's complement, 16 bit wrap
			next := d.base + uint16(d.cur.Pos())
			target := next + uint16(int16(int8(b)))
			operands = append(operands, program.Target(target))
		case operandIndexed:
			b, _ := d.cur.ReadByte()
			operands = append(operands, program.Indexed(indexRegisterName, b))
		}
	}
	return operands
}

// registerText resolves the index register placeholders of the shared
// IX/IY sub-table.
func (d *Decoder) registerText(text, indexRegisterName string) string {
	switch text {
	case indexRegister:
		return indexRegisterName
	case indexRegisterIndirect:
		return "(" + indexRegisterName + ")"
	default:
		return text
	}
}

// rawData consumes exactly one byte and emits it as a raw data
// pseudo-instruction, keeping the cursor synchronized.
func (d *Decoder) rawData(address uint16, start int) program.Instruction {
	d.cur.Skip(1)
	value := d.data[start]
	return program.Instruction{
		Address:  address,
		Data:     d.data[start : start+1],
		Mnemonic: program.RawDataDirective,
		Operands: []program.Operand{program.Imm8(value)},
	}
}

func (d *Decoder) finish(address uint16, start int,
	mnemonic string, operands []program.Operand) program.Instruction {

	return program.Instruction{
		Address:  address,
		Data:     d.data[start:d.cur.Pos()],
		Mnemonic: mnemonic,
		Operands: operands,
	}
}
