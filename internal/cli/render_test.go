package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/stackchart/pkg/pipeline"
	"github.com/matzehuels/stackchart/pkg/recipe"
)

const salesCSV = `genre,sold
Sports,10
Strategy,20
Action,30
Shooter,40
`

// writeSales writes the sales fixture into a temp dir and returns its path.
func writeSales(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	if err := os.WriteFile(path, []byte(salesCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// testCLI returns a CLI that logs nowhere and caches under a temp dir.
func testCLI(t *testing.T) *CLI {
	t.Helper()
	c := New(io.Discard, LogInfo)
	c.Config.Cache.Dir = t.TempDir()
	return c
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{"svg,png", []string{"svg", "png"}},
		{" SVG , pdf ,", []string{"svg", "pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseFormats(tt.input)
			if !slices.Equal(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"from input", "", "data/sales.csv", "sales"},
		{"remote input", "", "https://example.com/sales.csv", "chart"},
		{"output with format ext", "out/chart.svg", "sales.csv", "out/chart"},
		{"output with other ext", "out/chart.v2", "sales.csv", "out/chart.v2"},
		{"output without ext", "out/chart", "sales.csv", "out/chart"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{"svg": []byte("<svg/>"), "json": []byte("{}")}

	paths, err := writeArtifacts(artifacts, []string{"svg", "json"}, filepath.Join(dir, "nested", "chart"), "")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "nested", "chart.svg"), filepath.Join(dir, "nested", "chart.json")}
	if !slices.Equal(paths, want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	b, err := os.ReadFile(want[0])
	if err != nil || string(b) != "<svg/>" {
		t.Errorf("svg file = %q, %v", b, err)
	}

	single := filepath.Join(dir, "exact.out")
	paths, err = writeArtifacts(artifacts, []string{"svg"}, "ignored", single)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 1 || paths[0] != single {
		t.Errorf("single format paths = %v, want [%s]", paths, single)
	}
}

func TestRunRender(t *testing.T) {
	c := testCLI(t)
	out := filepath.Join(t.TempDir(), "sales")
	opts := pipeline.Options{
		Source:  writeSales(t),
		Recipe:  "column",
		Fields:  recipe.Fields{X: "genre", Y: "sold", Color: "genre"},
		Width:   400,
		Height:  300,
		Formats: []string{"svg", "json"},
		Scale:   1,
	}

	if err := c.runRender(context.Background(), opts, out, false); err != nil {
		t.Fatalf("runRender: %v", err)
	}
	svg, err := os.ReadFile(out + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(svg), `class="interval"`); got != 4 {
		t.Errorf("svg has %d interval shapes, want 4", got)
	}
	if _, err := os.Stat(out + ".json"); err != nil {
		t.Errorf("json artifact missing: %v", err)
	}
}

func TestRunRenderUnknownRecipe(t *testing.T) {
	c := testCLI(t)
	opts := pipeline.Options{
		Source:  writeSales(t),
		Recipe:  "sunburst",
		Fields:  recipe.Fields{X: "genre", Y: "sold"},
		Formats: []string{"svg"},
	}
	if err := c.runRender(context.Background(), opts, filepath.Join(t.TempDir(), "x"), true); err == nil {
		t.Fatal("expected an error for an unknown recipe")
	}
}

func TestRenderCommandFlags(t *testing.T) {
	c := testCLI(t)
	cmd := c.renderCommand()
	for _, name := range []string{"recipe", "x", "y", "color", "facet", "adjust", "width", "height", "theme", "format", "output", "scale", "refresh", "no-cache"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("render has no --%s flag", name)
		}
	}
}
