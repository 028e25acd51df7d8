package disasm

import (
	"bytes"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/z80godisasm/internal/options"
	"github.com/retroenv/z80godisasm/internal/program"
)

func disassemble(t *testing.T, data []byte, opts options.Disassembler) (string, *program.Program) {
	t.Helper()

	logger := log.NewTestLogger(t)
	image := program.Image{Data: data, BaseAddress: opts.BaseAddress}
	dis := New(logger, image, opts)

	var buf bytes.Buffer
	app, err := dis.Process(&buf)
	assert.NoError(t, err)
	return buf.String(), app
}

func TestProcessBackwardReference(t *testing.T) {
	// LD A,&05 / JP &0000 - the jump lands on the first instruction,
	// so the label line must precede text that was conceptually already
	// emitted when the target was discovered
	listing, app := disassemble(t, []byte{0x3E, 0x05, 0xC3, 0x00, 0x00}, options.Disassembler{})

	expected := "ORG &0000\n\nL0000:\n  LD A,&05\n  JP L0000\n"
	assert.Equal(t, expected, listing)
	assert.Equal(t, 2, len(app.Instructions))
	assert.Equal(t, 1, app.Labels.Len())
}

func TestProcessSelfLoop(t *testing.T) {
	listing, _ := disassemble(t, []byte{0x10, 0xFE}, options.Disassembler{})

	expected := "ORG &0000\n\nL0000:\n  DJNZ L0000\n"
	assert.Equal(t, expected, listing)
}

func TestProcessForwardReference(t *testing.T) {
	// JR +0 skips nothing: the target is the following instruction
	listing, _ := disassemble(t, []byte{0x18, 0x00, 0x00}, options.Disassembler{})

	expected := "ORG &0000\n\n  JR L0002\nL0002:\n  NOP\n"
	assert.Equal(t, expected, listing)
}

func TestProcessBaseAddress(t *testing.T) {
	opts := options.Disassembler{BaseAddress: 0x8000}
	listing, app := disassemble(t, []byte{0xC3, 0x00, 0x80}, opts)

	expected := "ORG &8000\n\nL8000:\n  JP L8000\n"
	assert.Equal(t, expected, listing)
	assert.Equal(t, uint16(0x8000), app.BaseAddress)
}

func TestProcessOutOfRangeTarget(t *testing.T) {
	// the call target lies outside the image, no label line exists but
	// the operand still renders as the registered label name
	listing, app := disassemble(t, []byte{0xCD, 0x00, 0x40}, options.Disassembler{})

	expected := "ORG &0000\n\n  CALL L4000\n"
	assert.Equal(t, expected, listing)
	assert.True(t, app.Labels.Has(0x4000))
}

func TestProcessTargetInsideInstruction(t *testing.T) {
	// a jump into the middle of an encoding registers a label that no
	// instruction address matches, so no label line is written
	listing, _ := disassemble(t, []byte{0xC3, 0x01, 0x00}, options.Disassembler{})

	expected := "ORG &0000\n\n  JP L0001\n"
	assert.Equal(t, expected, listing)
}

func TestProcessRawDataFallback(t *testing.T) {
	// an unmodeled extended opcode turns the prefix byte into raw data
	// and resumes decoding at the next byte
	listing, _ := disassemble(t, []byte{0xED, 0x00, 0x76}, options.Disassembler{})

	expected := "ORG &0000\n\n  DB &ED\n  NOP\n  HALT\n"
	assert.Equal(t, expected, listing)
}

func TestProcessTruncatedTail(t *testing.T) {
	listing, _ := disassemble(t, []byte{0x00, 0x3E}, options.Disassembler{})

	expected := "ORG &0000\n\n  NOP\n  DB &3E\n"
	assert.Equal(t, expected, listing)
}

func TestProcessEmptyImage(t *testing.T) {
	listing, app := disassemble(t, nil, options.Disassembler{})

	assert.Equal(t, "ORG &0000\n\n", listing)
	assert.Equal(t, 0, len(app.Instructions))
	assert.Equal(t, 0, app.Labels.Len())
}

func TestProcessDeterministic(t *testing.T) {
	data := []byte{0x3E, 0x05, 0x10, 0xFC, 0xC3, 0x00, 0x00, 0xCB, 0x7E, 0xED, 0xB0}

	first, _ := disassemble(t, data, options.Disassembler{})
	second, _ := disassemble(t, data, options.Disassembler{})
	assert.Equal(t, first, second)
}

func TestDecodeLabelRegistry(t *testing.T) {
	logger := log.NewTestLogger(t)
	data := []byte{
		0xC3, 0x08, 0x00, // JP L0008
		0xC9,       // RET, no target operand
		0xFF,       // RST &38, vector is not a target operand
		0x18, 0x01, // JR L0008
		0x00, // NOP
		0x00, // NOP at L0008
	}
	dis := New(logger, program.Image{Data: data}, options.Disassembler{})

	app := dis.Decode()
	assert.Equal(t, 1, app.Labels.Len())
	assert.True(t, app.Labels.Has(0x0008))
}
