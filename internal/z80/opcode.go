package z80

// Register, condition and operation name tables indexed by the 3 bit
// sub-fields of the regular opcode grids.
var (
	reg8Names      = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
	reg16Names     = [4]string{"BC", "DE", "HL", "SP"}
	stackPairNames = [4]string{"BC", "DE", "HL", "AF"}
	condNames      = [8]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}
	aluNames       = [8]string{"ADD", "ADC", "SUB", "SBC", "AND", "XOR", "OR", "CP"}
	rotateNames    = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SLL", "SRL"}
)

// aluImmediateAccumulator marks which ALU operations name the
// accumulator in their immediate form (ADD A,&xx versus SUB &xx).
var aluImmediateAccumulator = [8]bool{true, true, false, true, false, false, false, false}

// operandKind describes how an operand of an opcode shape is encoded.
type operandKind uint8

const (
	operandReg       operandKind = iota // fixed register or register-indirect text
	operandCond                         // fixed condition code text
	operandFixedByte                    // byte value embedded in the opcode (RST vector)
	operandFixedDigit                   // small number embedded in the opcode, rendered bare (IM mode)
	operandImm8                         // one immediate byte
	operandImm16                        // little-endian immediate word
	operandMem16                        // little-endian word used as memory address
	operandPort                         // one byte used as I/O port
	operandRel                          // one signed displacement byte, resolved to a target
	operandAddr                         // little-endian word used as control flow target
	operandIndexed                      // one displacement byte for the active index register
)

// operandTemplate is the encoding description of one operand.
type operandTemplate struct {
	kind  operandKind
	text  string
	value byte
}

// size returns how many bytes the operand consumes beyond the opcode.
func (t operandTemplate) size() int {
	switch t.kind {
	case operandImm8, operandPort, operandRel, operandIndexed:
		return 1
	case operandImm16, operandMem16, operandAddr:
		return 2
	default:
		return 0
	}
}

// template is the shape of one instruction: mnemonic plus the encoding
// of its operands. The zero value marks an unmodeled opcode.
type template struct {
	mnemonic string
	operands []operandTemplate
}

func (t template) modeled() bool {
	return t.mnemonic != ""
}

// operandSize returns the number of encoded bytes beyond the opcode byte.
func (t template) operandSize() int {
	size := 0
	for _, op := range t.operands {
		size += op.size()
	}
	return size
}

func ins(mnemonic string, operands ...operandTemplate) template {
	return template{mnemonic: mnemonic, operands: operands}
}

func reg(name string) operandTemplate {
	return operandTemplate{kind: operandReg, text: name}
}

func cond(name string) operandTemplate {
	return operandTemplate{kind: operandCond, text: name}
}

func fixedByte(value byte) operandTemplate {
	return operandTemplate{kind: operandFixedByte, value: value}
}

func digit(value byte) operandTemplate {
	return operandTemplate{kind: operandFixedDigit, value: value}
}

func imm8() operandTemplate   { return operandTemplate{kind: operandImm8} }
func imm16() operandTemplate  { return operandTemplate{kind: operandImm16} }
func mem16() operandTemplate  { return operandTemplate{kind: operandMem16} }
func port() operandTemplate   { return operandTemplate{kind: operandPort} }
func rel() operandTemplate    { return operandTemplate{kind: operandRel} }
func addr() operandTemplate   { return operandTemplate{kind: operandAddr} }
func indexed() operandTemplate { return operandTemplate{kind: operandIndexed} }

// baseOpcodes maps every opcode byte of the unprefixed state to its
// shape. The irregular 0x00-0x3F quadrant is enumerated explicitly, the
// regular grids above it are derived from bit fields in init. The four
// prefix bytes 0xCB/0xDD/0xED/0xFD stay unmodeled here, the decoder
// dispatches them to their sub-tables before consulting this table.
var baseOpcodes = [256]template{
	0x00: ins("NOP"),
	0x01: ins("LD", reg("BC"), imm16()),
	0x02: ins("LD", reg("(BC)"), reg("A")),
	0x03: ins("INC", reg("BC")),
	0x04: ins("INC", reg("B")),
	0x05: ins("DEC", reg("B")),
	0x06: ins("LD", reg("B"), imm8()),
	0x07: ins("RLCA"),
	0x08: ins("EX", reg("AF"), reg("AF'")),
	0x09: ins("ADD", reg("HL"), reg("BC")),
	0x0A: ins("LD", reg("A"), reg("(BC)")),
	0x0B: ins("DEC", reg("BC")),
	0x0C: ins("INC", reg("C")),
	0x0D: ins("DEC", reg("C")),
	0x0E: ins("LD", reg("C"), imm8()),
	0x0F: ins("RRCA"),
	0x10: ins("DJNZ", rel()),
	0x11: ins("LD", reg("DE"), imm16()),
	0x12: ins("LD", reg("(DE)"), reg("A")),
	0x13: ins("INC", reg("DE")),
	0x14: ins("INC", reg("D")),
	0x15: ins("DEC", reg("D")),
	0x16: ins("LD", reg("D"), imm8()),
	0x17: ins("RLA"),
	0x18: ins("JR", rel()),
	0x19: ins("ADD", reg("HL"), reg("DE")),
	0x1A: ins("LD", reg("A"), reg("(DE)")),
	0x1B: ins("DEC", reg("DE")),
	0x1C: ins("INC", reg("E")),
	0x1D: ins("DEC", reg("E")),
	0x1E: ins("LD", reg("E"), imm8()),
	0x1F: ins("RRA"),
	0x20: ins("JR", cond("NZ"), rel()),
	0x21: ins("LD", reg("HL"), imm16()),
	0x22: ins("LD", mem16(), reg("HL")),
	0x23: ins("INC", reg("HL")),
	0x24: ins("INC", reg("H")),
	0x25: ins("DEC", reg("H")),
	0x26: ins("LD", reg("H"), imm8()),
	0x27: ins("DAA"),
	0x28: ins("JR", cond("Z"), rel()),
	0x29: ins("ADD", reg("HL"), reg("HL")),
	0x2A: ins("LD", reg("HL"), mem16()),
	0x2B: ins("DEC", reg("HL")),
	0x2C: ins("INC", reg("L")),
	0x2D: ins("DEC", reg("L")),
	0x2E: ins("LD", reg("L"), imm8()),
	0x2F: ins("CPL"),
	0x30: ins("JR", cond("NC"), rel()),
	0x31: ins("LD", reg("SP"), imm16()),
	0x32: ins("LD", mem16(), reg("A")),
	0x33: ins("INC", reg("SP")),
	0x34: ins("INC", reg("(HL)")),
	0x35: ins("DEC", reg("(HL)")),
	0x36: ins("LD", reg("(HL)"), imm8()),
	0x37: ins("SCF"),
	0x38: ins("JR", cond("C"), rel()),
	0x39: ins("ADD", reg("HL"), reg("SP")),
	0x3A: ins("LD", reg("A"), mem16()),
	0x3B: ins("DEC", reg("SP")),
	0x3C: ins("INC", reg("A")),
	0x3D: ins("DEC", reg("A")),
	0x3E: ins("LD", reg("A"), imm8()),
	0x3F: ins("CCF"),
}

func init() {
	fillLoadGrid()
	fillALUGrid()
	fillControlGrid()
}

// fillLoadGrid fills the LD r,r' quadrant 0x40-0x7F: destination in
// bits 5-3, source in bits 2-0, HALT replacing the LD (HL),(HL) slot.
func fillLoadGrid() {
	for op := 0x40; op <= 0x7F; op++ {
		if op == 0x76 {
			baseOpcodes[op] = ins("HALT")
			continue
		}
		dst := reg8Names[(op>>3)&0x07]
		src := reg8Names[op&0x07]
		baseOpcodes[op] = ins("LD", reg(dst), reg(src))
	}
}

// fillALUGrid fills the accumulator arithmetic/logic quadrant 0x80-0xBF:
// operation in bits 5-3, source register in bits 2-0.
func fillALUGrid() {
	for op := 0x80; op <= 0xBF; op++ {
		operation := aluNames[(op>>3)&0x07]
		src := reg8Names[op&0x07]
		baseOpcodes[op] = ins(operation, reg("A"), reg(src))
	}
}

// fillControlGrid fills the 0xC0-0xFF quadrant from its bit fields:
// z = bits 2-0 selects the row kind, y = bits 5-3 the condition or
// operation, p/q split y for the register pair rows.
func fillControlGrid() {
	for op := 0xC0; op <= 0xFF; op++ {
		y := (op >> 3) & 0x07
		z := op & 0x07
		p := y >> 1
		q := y & 1

		switch z {
		case 0:
			baseOpcodes[op] = ins("RET", cond(condNames[y]))
		case 1:
			if q == 0 {
				baseOpcodes[op] = ins("POP", reg(stackPairNames[p]))
				continue
			}
			switch p {
			case 0:
				baseOpcodes[op] = ins("RET")
			case 1:
				baseOpcodes[op] = ins("EXX")
			case 2:
				baseOpcodes[op] = ins("JP", reg("(HL)"))
			case 3:
				baseOpcodes[op] = ins("LD", reg("SP"), reg("HL"))
			}
		case 2:
			baseOpcodes[op] = ins("JP", cond(condNames[y]), addr())
		case 3:
			switch y {
			case 0:
				baseOpcodes[op] = ins("JP", addr())
			case 1: // 0xCB bit operation prefix
			case 2:
				baseOpcodes[op] = ins("OUT", port(), reg("A"))
			case 3:
				baseOpcodes[op] = ins("IN", reg("A"), port())
			case 4:
				baseOpcodes[op] = ins("EX", reg("(SP)"), reg("HL"))
			case 5:
				baseOpcodes[op] = ins("EX", reg("DE"), reg("HL"))
			case 6:
				baseOpcodes[op] = ins("DI")
			case 7:
				baseOpcodes[op] = ins("EI")
			}
		case 4:
			baseOpcodes[op] = ins("CALL", cond(condNames[y]), addr())
		case 5:
			if q == 0 {
				baseOpcodes[op] = ins("PUSH", reg(stackPairNames[p]))
				continue
			}
			if p == 0 {
				baseOpcodes[op] = ins("CALL", addr())
			}
			// p 1-3 are the 0xDD/0xED/0xFD prefixes
		case 6:
			if aluImmediateAccumulator[y] {
				baseOpcodes[op] = ins(aluNames[y], reg("A"), imm8())
			} else {
				baseOpcodes[op] = ins(aluNames[y], imm8())
			}
		case 7:
			baseOpcodes[op] = ins("RST", fixedByte(byte(y*8)))
		}
	}
}
