// Package observability provides formatted report output for one-shot CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/hr-dashboard/internal/analytics"
	"github.com/jonathan/hr-dashboard/internal/employee"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
)

// Printer handles formatted report output.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDepartmentReport outputs a human-readable summary of department
// performance.
func (p *Printer) PrintDepartmentReport(stats []analytics.DepartmentStat) {
	if len(stats) == 0 {
		p.printBox("Department Performance", "No employees loaded")
		return
	}

	var sb strings.Builder
	for _, s := range stats {
		sb.WriteString(fmt.Sprintf("%-12s %.1f avg  (%d employees)\n",
			s.Department, s.AvgRating, s.Count))
	}
	p.printBox("Department Performance", strings.TrimRight(sb.String(), "\n"))
}

// PrintTopPerformers outputs the top performer list.
func (p *Printer) PrintTopPerformers(top []employee.Employee) {
	if len(top) == 0 {
		p.printBox("Top Performers", "No employees loaded")
		return
	}

	var sb strings.Builder
	for i, e := range top {
		sb.WriteString(fmt.Sprintf("%d. %s - %s (%d/5)\n",
			i+1, e.FullName(), e.Department, e.Performance))
	}
	p.printBox("Top Performers", strings.TrimRight(sb.String(), "\n"))
}
