// Package observability provides formatted console output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted console output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to width runes, marking the cut with "..."
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeList writes a bulleted list capped at limit items
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	for _, item := range items[:min(len(items), limit)] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
	sb.WriteString("\n")
}

// PrintAnalysis outputs a human-readable summary of one analysis.
func (p *Printer) PrintAnalysis(record *types.AnalysisRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder
	d := record.PersonalDetails
	fmt.Fprintf(&sb, "Name:     %s\n", d.Name)
	fmt.Fprintf(&sb, "Email:    %s\n", d.Email)
	if d.Phone != "" {
		fmt.Fprintf(&sb, "Phone:    %s\n", d.Phone)
	}
	if d.LinkedIn != "" {
		fmt.Fprintf(&sb, "LinkedIn: %s\n", d.LinkedIn)
	}
	if record.FileName != "" {
		fmt.Fprintf(&sb, "File:     %s\n", record.FileName)
	}
	fmt.Fprintf(&sb, "Rating:   %d/%d (%s)\n\n", record.Feedback.Rating, types.MaxRating, types.RatingLabel(record.Feedback.Rating))

	if len(record.Content.WorkExperience) > 0 {
		sb.WriteString("Experience:\n")
		for _, job := range record.Content.WorkExperience[:min(len(record.Content.WorkExperience), maxItemsToShow)] {
			fmt.Fprintf(&sb, "  • %s, %s (%s)\n", job.Position, job.Company, job.Duration)
		}
		sb.WriteString("\n")
	}
	if len(record.Content.Education) > 0 {
		sb.WriteString("Education:\n")
		for _, edu := range record.Content.Education {
			fmt.Fprintf(&sb, "  • %s, %s %s\n", edu.Degree, edu.Institution, edu.Year)
		}
		sb.WriteString("\n")
	}

	writeList(&sb, "Technical Skills", record.Skills.Technical, maxItemsToShow)
	writeList(&sb, "Improvements", record.Feedback.Improvements, maxItemsToShow)
	writeList(&sb, "Suggested Skills", record.Feedback.SuggestedSkills, 3)

	p.printBox("RÉSUMÉ ANALYSIS "+record.ID, strings.TrimSuffix(sb.String(), "\n\n"))
}

// PrintHistory outputs the history index as a table, newest first.
func (p *Printer) PrintHistory(history []types.HistoryIndexEntry) {
	if len(history) == 0 {
		p.printBox("ANALYSIS HISTORY", "No analyses yet. Upload a PDF to get started.")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%-13s  %-18s  %-6s  %s\n", "ID", "Name", "Rating", "File")
	for _, e := range history {
		fmt.Fprintf(&sb, "%-13s  %-18s  %-6s  %s\n",
			truncate(e.ID, 13), truncate(e.Name, 18), fmt.Sprintf("%d/%d", e.Rating, types.MaxRating), e.FileName)
	}
	fmt.Fprintf(&sb, "\n%d analyses", len(history))

	p.printBox("ANALYSIS HISTORY", sb.String())
}

// PrintProgress outputs one progress line
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProgress(pr analysis.Progress) {
	fmt.Fprintf(p.out, "[%3d%%] %s\n", pr.Percent, pr.Phase.Label())
}
