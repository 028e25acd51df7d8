// Package analyzer approximates subroutine boundaries and call frequency
// statistics from a disassembled listing.
//
// The analyzer consumes only the produced assembly text: labels and
// call/jump mnemonics as plain tokens. It performs no binary parsing and
// has no influence on decoding. It relies on the listing writer's stable
// output contract: label definitions as `Lxxxx:` at line start,
// instruction lines indented, targets rendered as label names.
package analyzer

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/retroenv/retrogolib/set"
)

var (
	labelPattern  = regexp.MustCompile(`(?i)^L([0-9A-F]+):`)
	callPattern   = regexp.MustCompile(`(?i)\bCALL\s+(?:NZ|Z|NC|C|PO|PE|P|M)?,?\s*L([0-9A-F]+)`)
	jumpPattern   = regexp.MustCompile(`(?i)\bJP\s+(?:NZ|Z|NC|C|PO|PE|P|M)?,?\s*L([0-9A-F]+)`)
	returnPattern = regexp.MustCompile(`(?i)^\s+RET\s*(?:NZ|Z|NC|C|PO|PE|P|M)?\s*$`)
)

// callSiteSample is the number of call sites listed per subroutine.
const callSiteSample = 5

// topCalledCount is the number of entries in the frequency ranking.
const topCalledCount = 20

// lineGroupSize groups subroutines by their approximate listing location.
const lineGroupSize = 1000

// Subroutine describes one called label and its approximated extent.
type Subroutine struct {
	Label      string
	StartLine  int
	EndLine    int // line of the next RET after the start, 0 if none found
	Calls      int
	CallSites  []int // sample of call site lines, capped at callSiteSample
	JumpTarget bool  // label is also referenced by a JP instruction
}

// Report is the result of analyzing a listing.
type Report struct {
	TotalLines  int
	Subroutines []Subroutine // sorted by start line
}

// Analyze scans a listing and extracts subroutine information: every
// label that is the target of a CALL becomes a subroutine, its extent
// approximated by the next RET line after its definition.
func Analyze(reader io.Reader) (*Report, error) {
	labels := map[string]int{}
	callSites := map[string][]int{}
	jumpTargets := set.New[string]()
	var returnLines []int

	lineNumber := 0
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()

		if match := labelPattern.FindStringSubmatch(line); match != nil {
			label := strings.ToUpper(match[1])
			if _, ok := labels[label]; !ok { // first occurrence wins
				labels[label] = lineNumber
			}
		}
		for _, match := range callPattern.FindAllStringSubmatch(line, -1) {
			label := strings.ToUpper(match[1])
			callSites[label] = append(callSites[label], lineNumber)
		}
		for _, match := range jumpPattern.FindAllStringSubmatch(line, -1) {
			jumpTargets.Add(strings.ToUpper(match[1]))
		}
		if returnPattern.MatchString(line) {
			returnLines = append(returnLines, lineNumber)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning listing: %w", err)
	}

	report := &Report{TotalLines: lineNumber}

	calledLabels := make([]string, 0, len(callSites))
	for label := range callSites {
		calledLabels = append(calledLabels, label)
	}
	sort.Strings(calledLabels)

	for _, label := range calledLabels {
		startLine, ok := labels[label]
		if !ok {
			continue // call target outside the listing
		}

		endLine := 0
		for _, returnLine := range returnLines {
			if returnLine > startLine {
				endLine = returnLine
				break
			}
		}

		sites := callSites[label]
		sample := sites
		if len(sample) > callSiteSample {
			sample = sample[:callSiteSample]
		}

		report.Subroutines = append(report.Subroutines, Subroutine{
			Label:      label,
			StartLine:  startLine,
			EndLine:    endLine,
			Calls:      len(sites),
			CallSites:  sample,
			JumpTarget: jumpTargets.Contains(label),
		})
	}

	sort.Slice(report.Subroutines, func(i, j int) bool {
		return report.Subroutines[i].StartLine < report.Subroutines[j].StartLine
	})
	return report, nil
}

// Write renders the report as a plain text document.
func (r *Report) Write(writer io.Writer) error {
	separator := strings.Repeat("=", 60)

	if _, err := fmt.Fprintf(writer, "Z80 Assembly Subroutine Analysis\n%s\n\n", separator); err != nil {
		return fmt.Errorf("writing report header: %w", err)
	}
	if _, err := fmt.Fprintf(writer, "Total lines in listing: %d\nTotal subroutines called: %d\n\n%s\n\n",
		r.TotalLines, len(r.Subroutines), separator); err != nil {
		return fmt.Errorf("writing report summary: %w", err)
	}

	if err := r.writeSubroutines(writer); err != nil {
		return err
	}
	return r.writeTopCalled(writer, separator)
}

func (r *Report) writeSubroutines(writer io.Writer) error {
	currentGroup := 0
	for _, sub := range r.Subroutines {
		group := sub.StartLine / lineGroupSize
		if group != currentGroup {
			if _, err := fmt.Fprintf(writer, "\n--- Subroutines in lines %05d-%05d ---\n\n",
				group*lineGroupSize, (group+1)*lineGroupSize); err != nil {
				return fmt.Errorf("writing group header: %w", err)
			}
			currentGroup = group
		}

		if err := writeSubroutine(writer, sub); err != nil {
			return err
		}
	}
	return nil
}

func writeSubroutine(writer io.Writer, sub Subroutine) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Subroutine L%s:\n", sub.Label)
	fmt.Fprintf(&b, "  Start line: %d\n", sub.StartLine)
	if sub.EndLine > 0 {
		fmt.Fprintf(&b, "  End line: %d (approx %d lines)\n", sub.EndLine, sub.EndLine-sub.StartLine)
	} else {
		fmt.Fprintf(&b, "  End line: Unknown\n")
	}
	fmt.Fprintf(&b, "  Called from: %d location(s)\n", sub.Calls)

	if len(sub.CallSites) > 0 {
		sites := make([]string, len(sub.CallSites))
		for i, site := range sub.CallSites {
			sites[i] = fmt.Sprintf("%d", site)
		}
		text := strings.Join(sites, ", ")
		if sub.Calls > len(sub.CallSites) {
			text += fmt.Sprintf(", ... (%d more)", sub.Calls-len(sub.CallSites))
		}
		fmt.Fprintf(&b, "  Call sites (sample): %s\n", text)
	}
	if sub.JumpTarget {
		fmt.Fprintf(&b, "  Also referenced by jumps\n")
	}
	b.WriteString("\n")

	if _, err := io.WriteString(writer, b.String()); err != nil {
		return fmt.Errorf("writing subroutine entry: %w", err)
	}
	return nil
}

func (r *Report) writeTopCalled(writer io.Writer, separator string) error {
	if _, err := fmt.Fprintf(writer, "\n%s\nMost Frequently Called Subroutines\n%s\n\n",
		separator, separator); err != nil {
		return fmt.Errorf("writing frequency header: %w", err)
	}

	ranked := make([]Subroutine, len(r.Subroutines))
	copy(ranked, r.Subroutines)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Calls > ranked[j].Calls
	})
	if len(ranked) > topCalledCount {
		ranked = ranked[:topCalledCount]
	}

	for _, sub := range ranked {
		if _, err := fmt.Fprintf(writer, "L%s: %d calls (starts at line %d)\n",
			sub.Label, sub.Calls, sub.StartLine); err != nil {
			return fmt.Errorf("writing frequency entry: %w", err)
		}
	}
	return nil
}
