// Package disasm implements the two pass Z80 disassembler.
//
// Pass 1 drives the decoder once over the whole image, materializing the
// full instruction sequence and registering the resolved target address
// of every control transfer instruction. Pass 2 renders the listing from
// the immutable pass 1 results. Keeping the passes strictly separate is
// what guarantees that backward references receive their label lines:
// by the time any text is emitted, the registry is complete.
package disasm

import (
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/z80godisasm/internal/options"
	"github.com/retroenv/z80godisasm/internal/program"
	"github.com/retroenv/z80godisasm/internal/symbols"
	"github.com/retroenv/z80godisasm/internal/writer"
	"github.com/retroenv/z80godisasm/internal/z80"
)

// Disasm implements the disassembler.
type Disasm struct {
	logger  *log.Logger
	image   program.Image
	options options.Disassembler
}

// New creates a new disassembler for the given image.
func New(logger *log.Logger, image program.Image, opts options.Disassembler) *Disasm {
	return &Disasm{
		logger:  logger,
		image:   image,
		options: opts,
	}
}

// Decode runs pass 1: it drives the decoder to exhaustion and returns
// the decoded program with its completed label registry. The registry is
// not mutated after Decode returns.
func (dis *Disasm) Decode() *program.Program {
	decoder := z80.NewDecoder(dis.image)
	registry := symbols.NewRegistry()

	var instructions []program.Instruction
	for {
		ins, ok := decoder.Next()
		if !ok {
			break
		}
		registerTargets(registry, ins)
		instructions = append(instructions, ins)
	}

	if count := decoder.UnmodeledCount(); count > 0 {
		dis.logger.Debug("Unmodeled opcodes emitted as raw data", log.Int("count", count))
	}
	if count := decoder.TruncatedCount(); count > 0 {
		dis.logger.Debug("Truncated encodings emitted as raw data", log.Int("count", count))
	}

	return &program.Program{
		BaseAddress:  dis.image.BaseAddress,
		Instructions: instructions,
		Labels:       registry,
	}
}

// Process runs both passes and writes the listing to the given writer.
func (dis *Disasm) Process(output io.Writer) (*program.Program, error) {
	app := dis.Decode()

	w := writer.New(app, output, writer.Options{
		HexComments:     dis.options.HexComments,
		OffsetComments:  dis.options.OffsetComments,
		MaxInstructions: dis.options.MaxInstructions,
	})
	if err := w.Write(); err != nil {
		return nil, fmt.Errorf("writing listing: %w", err)
	}
	return app, nil
}

// registerTargets records the resolved absolute address of every control
// transfer operand in the registry. Registration is idempotent and
// happens for forward and backward references alike. Instructions whose
// destination is not statically encoded (RET variants, RST vectors,
// register-indirect jumps) carry no target operand and register nothing.
func registerTargets(registry *symbols.Registry, ins program.Instruction) {
	for _, operand := range ins.Operands {
		if operand.Kind == program.TargetOperand {
			registry.Register(operand.Value)
		}
	}
}
