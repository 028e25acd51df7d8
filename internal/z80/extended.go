package z80

// extendedOpcodes maps the second byte of the 0xED prefix to its shape.
// All modeled extended instructions are two bytes with no further
// operand bytes. Unlisted bytes fall back to a raw data byte for the
// prefix itself.
var extendedOpcodes = map[byte]template{
	0x45: ins("RETN"),
	0x47: ins("LD", reg("I"), reg("A")),
	0x4D: ins("RETI"),
	0x4F: ins("LD", reg("R"), reg("A")),
	0x57: ins("LD", reg("A"), reg("I")),
	0x5F: ins("LD", reg("A"), reg("R")),
	0x67: ins("RRD"),
	0x6F: ins("RLD"),

	// block transfer, compare and I/O primitives
	0xA0: ins("LDI"),
	0xA1: ins("CPI"),
	0xA2: ins("INI"),
	0xA3: ins("OUTI"),
	0xA8: ins("LDD"),
	0xA9: ins("CPD"),
	0xAA: ins("IND"),
	0xAB: ins("OUTD"),
	0xB0: ins("LDIR"),
	0xB1: ins("CPIR"),
	0xB2: ins("INIR"),
	0xB3: ins("OTIR"),
	0xB8: ins("LDDR"),
	0xB9: ins("CPDR"),
	0xBA: ins("INDR"),
	0xBB: ins("OTDR"),
}

func init() {
	// NEG and the interrupt mode family repeat at every mirror slot of
	// the 0x40-0x7F block.
	for _, op := range []byte{0x44, 0x4C, 0x54, 0x5C, 0x64, 0x6C, 0x74, 0x7C} {
		extendedOpcodes[op] = ins("NEG")
	}
	for _, op := range []byte{0x46, 0x4E, 0x56, 0x5E, 0x66, 0x6E, 0x76, 0x7E} {
		extendedOpcodes[op] = ins("IM", digit(0))
	}
}

// indexOpcodes maps the second byte of the 0xDD/0xFD prefixes to its
// shape. The modeled subset is intentionally narrow: load-immediate,
// stack operations, the indirect jump and the displacement-addressed
// immediate store; everything else falls back to a raw data byte for
// the prefix. Register placeholders are resolved to IX or IY by the
// active prefix during decoding.
var indexOpcodes = map[byte]template{
	0x21: ins("LD", reg(indexRegister), imm16()),
	0x36: ins("LD", indexed(), imm8()),
	0xE1: ins("POP", reg(indexRegister)),
	0xE5: ins("PUSH", reg(indexRegister)),
	0xE9: ins("JP", reg(indexRegisterIndirect)),
}

// Placeholder texts substituted with the active index register.
const (
	indexRegister         = "@"
	indexRegisterIndirect = "(@)"
)
