// Package options contains the program options.
package options

// Program contains the command line options.
type Program struct {
	Input  string
	Output string
	Batch  string

	Org     string
	Analyze bool
	Limit   int

	Debug bool
	Quiet bool

	NoHexComments bool
	NoOffsets     bool
}

// Disassembler defines options to control the disassembler core.
type Disassembler struct {
	BaseAddress uint16 // load address of the first image byte

	HexComments     bool
	OffsetComments  bool
	MaxInstructions int // cap on written instructions, 0 for no limit
}

// NewDisassembler returns a new options instance with default options.
func NewDisassembler(baseAddress uint16) Disassembler {
	return Disassembler{
		BaseAddress: baseAddress,

		HexComments:    true,
		OffsetComments: true,
	}
}
