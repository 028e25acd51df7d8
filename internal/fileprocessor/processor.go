// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/z80godisasm/internal/analyzer"
	"github.com/retroenv/z80godisasm/internal/disasm"
	"github.com/retroenv/z80godisasm/internal/options"
	"github.com/retroenv/z80godisasm/internal/program"
)

// ProcessFile handles the complete processing workflow for one input
// file: load the image, disassemble it, write the listing and optionally
// the subroutine analysis report.
func ProcessFile(logger *log.Logger, opts options.Program, disasmOptions options.Disassembler) error {
	image, err := loadImage(opts, disasmOptions.BaseAddress)
	if err != nil {
		return err
	}

	output, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	defer func() {
		if closer, ok := output.(io.Closer); ok {
			_ = closer.Close()
		}
	}()

	dis := disasm.New(logger, image, disasmOptions)

	// buffer the listing so the analyzer can consume the exact produced text
	var listing bytes.Buffer
	app, err := dis.Process(&listing)
	if err != nil {
		return fmt.Errorf("disassembling: %w", err)
	}

	if _, err := output.Write(listing.Bytes()); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	logger.Debug("Disassembled image",
		log.Int("bytes", len(image.Data)),
		log.Int("instructions", len(app.Instructions)),
		log.Int("labels", app.Labels.Len()),
	)

	if opts.Analyze {
		if err := writeAnalysis(logger, opts, listing.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates output filename for a given input file
func GenerateOutputFilename(inputFile string) string {
	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + ".asm"
}

// GenerateAnalysisFilename generates the report filename for a given
// input file.
func GenerateAnalysisFilename(inputFile string) string {
	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + "_analysis.txt"
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}
	logger.Info("z80godisasm", log.String("version", buildinfo.Version(version, commit, date)))
}

// loadImage reads the raw binary input. Malformed caller input (an empty
// image) is rejected here, before decoding starts; the decoder itself
// never fails on any byte sequence.
func loadImage(opts options.Program, baseAddress uint16) (program.Image, error) {
	data, err := os.ReadFile(opts.Input)
	if err != nil {
		return program.Image{}, fmt.Errorf("reading file %s: %w", opts.Input, err)
	}
	if len(data) == 0 {
		return program.Image{}, fmt.Errorf("file %s is empty", opts.Input)
	}
	return program.Image{Data: data, BaseAddress: baseAddress}, nil
}

func createWriter(opts options.Program) (io.Writer, error) {
	if opts.Output == "" {
		return os.Stdout, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

func writeAnalysis(logger *log.Logger, opts options.Program, listing []byte) error {
	report, err := analyzer.Analyze(bytes.NewReader(listing))
	if err != nil {
		return fmt.Errorf("analyzing listing: %w", err)
	}

	name := GenerateAnalysisFilename(analysisBaseFile(opts))
	file, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("creating analysis file %s: %w", name, err)
	}
	defer func() { _ = file.Close() }()

	if err := report.Write(file); err != nil {
		return fmt.Errorf("writing analysis report: %w", err)
	}

	logger.Info("Wrote subroutine analysis",
		log.String("file", name),
		log.Int("subroutines", len(report.Subroutines)),
	)
	return nil
}

// analysisBaseFile picks the file the report name is derived from: the
// output file if one is written, the input file otherwise.
func analysisBaseFile(opts options.Program) string {
	if opts.Output != "" && !strings.EqualFold(opts.Output, os.Stdout.Name()) {
		return opts.Output
	}
	return opts.Input
}
