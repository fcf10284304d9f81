package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/stackchart/pkg/pipeline"
)

// captureStdout redirects status output to a buffer for the test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

func TestPrintStats(t *testing.T) {
	tests := []struct {
		name   string
		stats  pipeline.Stats
		cached bool
		want   string
	}{
		{"fresh", pipeline.Stats{Rows: 42, Views: 3, Elements: 12, Shapes: 57}, false, "42 rows · 3 views · 12 elements · 57 shapes · fresh"},
		{"cache hit", pipeline.Stats{Rows: 42}, true, "42 rows · cached"},
		{"empty", pipeline.Stats{}, false, "fresh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureStdout(t)
			printStats(tt.stats, tt.cached)
			if got := strings.TrimSpace(buf.String()); got != tt.want {
				t.Errorf("printStats() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintStatus(t *testing.T) {
	buf := captureStdout(t)
	printSuccess("Rendered %s chart", "column")
	printWarning("no data dir")
	printFile("out/chart.svg")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{"✓ Rendered column chart", "! no data dir", "→ out/chart.svg"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(want), lines)
	}
	for i := range want {
		if got := strings.TrimSpace(lines[i]); got != want[i] {
			t.Errorf("line %d = %q, want %q", i, got, want[i])
		}
	}
}
