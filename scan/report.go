package scan

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/runes"
)

const reportRule = "============================================================"

// Report summarises a completed scan of one target.
type Report struct {
	Target       string
	Elapsed      time.Duration
	Open         []ProbeResult
	TotalScanned int
}

func (r Report) ElapsedSeconds() float64 {
	return r.Elapsed.Seconds()
}

func (r Report) String() string {

	lines := []string{
		reportRule,
		"PORT SCAN REPORT",
		reportRule,
		fmt.Sprintf("Target: %s", r.Target),
		fmt.Sprintf("Scan time: %.2f seconds", r.ElapsedSeconds()),
		fmt.Sprintf("Open ports: %d", len(r.Open)),
		"",
		"DETAILS:",
	}

	for _, result := range r.Open {
		banner := "None"
		if result.HasBanner() {
			banner = strings.TrimSpace(result.Banner)
		}
		lines = append(
			lines,
			fmt.Sprintf("Port %d (%s):", result.Port, result.Service),
			fmt.Sprintf("  Banner: %s", banner),
		)
	}

	return strings.Join(lines, "\n")
}

// Table writes the open ports as a console table, one row per result with
// the first line of its banner.
func (r Report) Table(w io.Writer) error {

	table := tablewriter.NewWriter(w)
	table.Header("Port", "State", "Service", "Banner")

	for _, result := range r.Open {
		if err := table.Append([]string{
			fmt.Sprintf("%d/tcp", result.Port),
			"open",
			result.Service,
			firstLine(result.Banner),
		}); err != nil {
			return fmt.Errorf("failed to add row for port %d: %w", result.Port, err)
		}
	}

	return table.Render()
}

// firstLine returns the first line of text with control characters removed,
// so escape sequences in a banner cannot garble the table.
func firstLine(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		text = text[:i]
	}
	return runes.Remove(runes.In(unicode.Cc)).String(text)
}
