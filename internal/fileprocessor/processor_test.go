package fileprocessor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/z80godisasm/internal/options"
)

func TestGenerateOutputFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"game.bin", "game.asm"},
		{"game", "game.asm"},
		{"dir/game.rom", "dir/game.asm"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, GenerateOutputFilename(tt.input))
		})
	}
}

func TestGenerateAnalysisFilename(t *testing.T) {
	assert.Equal(t, "game_analysis.txt", GenerateAnalysisFilename("game.asm"))
	assert.Equal(t, "dir/game_analysis.txt", GenerateAnalysisFilename("dir/game.bin"))
}

func TestGetFilesToProcess(t *testing.T) {
	opts := &options.Program{Input: "game.bin"}

	files, err := GetFilesToProcess(opts)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(files))
	assert.Equal(t, "game.bin", files[0])
}

func TestGetFilesToProcessBatch(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.bin", "b.bin", "c.rom"} {
		assert.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte{0x00}, 0o644))
	}

	opts := &options.Program{Batch: filepath.Join(dir, "*.bin")}
	files, err := GetFilesToProcess(opts)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(files))
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "game.bin")
	output := filepath.Join(dir, "game.asm")
	assert.NoError(t, os.WriteFile(input, []byte{0x3E, 0x05, 0xC3, 0x00, 0x00}, 0o644))

	logger := log.NewTestLogger(t)
	opts := options.Program{Input: input, Output: output}

	err := ProcessFile(logger, opts, options.Disassembler{})
	assert.NoError(t, err)

	listing, err := os.ReadFile(output)
	assert.NoError(t, err)
	assert.Equal(t, "ORG &0000\n\nL0000:\n  LD A,&05\n  JP L0000\n", string(listing))
}

func TestProcessFileWithAnalysis(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "game.bin")
	output := filepath.Join(dir, "game.asm")
	assert.NoError(t, os.WriteFile(input, []byte{0xCD, 0x04, 0x00, 0x76, 0xC9}, 0o644))

	logger := log.NewTestLogger(t)
	opts := options.Program{Input: input, Output: output, Analyze: true}

	err := ProcessFile(logger, opts, options.Disassembler{})
	assert.NoError(t, err)

	report, err := os.ReadFile(filepath.Join(dir, "game_analysis.txt"))
	assert.NoError(t, err)
	assert.True(t, len(report) > 0)
}

func TestProcessFileEmptyInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "empty.bin")
	assert.NoError(t, os.WriteFile(input, nil, 0o644))

	logger := log.NewTestLogger(t)
	opts := options.Program{Input: input, Output: filepath.Join(dir, "empty.asm")}

	err := ProcessFile(logger, opts, options.Disassembler{})
	assert.Error(t, err)
}

func TestProcessFileMissingInput(t *testing.T) {
	logger := log.NewTestLogger(t)
	opts := options.Program{Input: filepath.Join(t.TempDir(), "missing.bin")}

	err := ProcessFile(logger, opts, options.Disassembler{})
	assert.Error(t, err)
}
