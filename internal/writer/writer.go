// Package writer implements assembly listing writing functionality.
package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/z80godisasm/internal/program"
)

// Options of the writer.
type Options struct {
	HexComments     bool // output the encoding bytes as hex values in comments
	OffsetComments  bool // output instruction addresses in comments
	MaxInstructions int  // stop after this many instructions, 0 for no limit
}

// Writer renders a decoded program as an assembly listing.
type Writer struct {
	app     *program.Program
	options Options
	writer  io.Writer
}

// New creates a new writer.
func New(app *program.Program, writer io.Writer, options Options) *Writer {
	return &Writer{
		app:     app,
		options: options,
		writer:  writer,
	}
}

// Write writes the full listing: the origin directive, then for every
// instruction a label definition line if its address is a registered
// control flow target, followed by the instruction line itself. The
// label registry is complete before the first line is written, so
// forward and backward references render identically.
func (w *Writer) Write() error {
	if _, err := fmt.Fprintf(w.writer, "ORG &%04X\n\n", w.app.BaseAddress); err != nil {
		return fmt.Errorf("writing origin directive: %w", err)
	}

	for i, ins := range w.app.Instructions {
		if w.options.MaxInstructions > 0 && i >= w.options.MaxInstructions {
			break
		}
		if err := w.writeInstruction(ins); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeInstruction(ins program.Instruction) error {
	if name, ok := w.app.Labels.Name(ins.Address); ok {
		if _, err := fmt.Fprintf(w.writer, "%s:\n", name); err != nil {
			return fmt.Errorf("writing label: %w", err)
		}
	}

	line := w.formatInstruction(ins)
	comment := w.formatComment(ins)

	var err error
	if comment == "" {
		_, err = fmt.Fprintf(w.writer, "  %s\n", line)
	} else {
		_, err = fmt.Fprintf(w.writer, "  %-30s ; %s\n", line, comment)
	}
	if err != nil {
		return fmt.Errorf("writing instruction line: %w", err)
	}
	return nil
}

// formatInstruction renders the mnemonic and comma separated operands.
func (w *Writer) formatInstruction(ins program.Instruction) string {
	if len(ins.Operands) == 0 {
		return ins.Mnemonic
	}

	parts := make([]string, len(ins.Operands))
	for i, operand := range ins.Operands {
		parts[i] = w.formatOperand(operand)
	}
	return ins.Mnemonic + " " + strings.Join(parts, ",")
}

func (w *Writer) formatOperand(operand program.Operand) string {
	switch operand.Kind {
	case program.RegisterOperand, program.ConditionOperand:
		return operand.Text
	case program.ImmediateByte:
		return fmt.Sprintf("&%02X", operand.Value)
	case program.ImmediateWord:
		return fmt.Sprintf("&%04X", operand.Value)
	case program.IndirectAddress:
		return fmt.Sprintf("(&%04X)", operand.Value)
	case program.IndirectPort:
		return fmt.Sprintf("(&%02X)", operand.Value)
	case program.TargetOperand:
		if name, ok := w.app.Labels.Name(operand.Value); ok {
			return name
		}
		return fmt.Sprintf("&%04X", operand.Value)
	case program.IndexedOperand:
		displacement := int8(operand.Value)
		if displacement < 0 {
			return fmt.Sprintf("(%s-&%02X)", operand.Text, -int16(displacement))
		}
		return fmt.Sprintf("(%s+&%02X)", operand.Text, displacement)
	case program.BitNumber:
		return fmt.Sprintf("%d", operand.Value)
	default:
		return ""
	}
}

func (w *Writer) formatComment(ins program.Instruction) string {
	if !w.options.HexComments && !w.options.OffsetComments {
		return ""
	}

	var parts []string
	if w.options.OffsetComments {
		parts = append(parts, fmt.Sprintf("&%04X:", ins.Address))
	}
	if w.options.HexComments {
		for _, b := range ins.Data {
			parts = append(parts, fmt.Sprintf("%02X", b))
		}
	}
	return strings.Join(parts, " ")
}
