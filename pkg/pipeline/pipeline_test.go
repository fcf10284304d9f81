package pipeline

import (
	"bytes"
	"context"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/matzehuels/stackchart/pkg/cache"
	"github.com/matzehuels/stackchart/pkg/data"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/recipe"
)

const salesCSV = `genre,sold
Sports,275
Strategy,115
Action,120
Shooter,350
`

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Invalid format should fail with INVALID_FORMAT, got %v", err)
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsValidate(t *testing.T) {
	rows := []data.Datum{{"genre": "Sports", "sold": 1.0}}
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"valid", Options{Rows: rows, Recipe: "column"}, ""},
		{"no source", Options{Recipe: "column"}, errors.ErrCodeInvalidInput},
		{"bad data format", Options{Source: "x", DataFormat: "xml", Recipe: "column"}, errors.ErrCodeInvalidFormat},
		{"no recipe", Options{Rows: rows}, errors.ErrCodeInvalidRecipe},
		{"unknown recipe", Options{Rows: rows, Recipe: "sankey"}, errors.ErrCodeInvalidRecipe},
		{"too wide", Options{Rows: rows, Recipe: "column", Width: 50000}, errors.ErrCodeInvalidInput},
		{"bad scale", Options{Rows: rows, Recipe: "column", Scale: -1}, errors.ErrCodeInvalidInput},
		{"bad format", Options{Rows: rows, Recipe: "column", Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if tt.code == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("got %v, want %s", err, tt.code)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Source: "sales.csv", Recipe: "bar"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight || opts.Theme != DefaultTheme || opts.Scale != DefaultScale {
		t.Errorf("defaults not applied: %+v", opts)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger not defaulted")
	}

	opts.Width = 100
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if opts.Width != 100 {
		t.Error("second call changed the options")
	}
}

func TestChartHash(t *testing.T) {
	a := Options{Recipe: "column", Fields: recipe.Fields{X: "genre", Y: "sold"}}
	b := a
	b.Width, b.Theme, b.Formats = 300, "dark", []string{"png"}
	if a.ChartHash("h") != b.ChartHash("h") {
		t.Error("output settings changed the chart hash")
	}
	c := a
	c.Fields.Color = "genre"
	if a.ChartHash("h") == c.ChartHash("h") {
		t.Error("fields not part of the chart hash")
	}
	if a.ChartHash("h") == a.ChartHash("other") {
		t.Error("data hash not part of the chart hash")
	}
	if a.ArtifactKeyOpts(FormatSVG).Scale != 0 {
		t.Error("scale is only part of PNG keys")
	}
}

func TestContentType(t *testing.T) {
	if ContentType(FormatSVG) != "image/svg+xml" || ContentType("zip") != "application/octet-stream" {
		t.Error("unexpected content types")
	}
}

func writeSales(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	if err := os.WriteFile(path, []byte(salesCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Source:  writeSales(t),
		Recipe:  "column",
		Fields:  recipe.Fields{X: "genre", Y: "sold", Color: "genre"},
		Title:   "Sales",
		Formats: []string{FormatSVG, FormatPNG, FormatJSON, FormatDOT},
		Scale:   1,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Stats.Rows != 4 || res.Stats.Views != 1 || res.Stats.Elements != 4 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if res.Chart == nil {
		t.Fatal("chart not returned")
	}

	svg := string(res.Artifacts[FormatSVG])
	if !strings.Contains(svg, "<title>Sales</title>") || strings.Count(svg, `class="interval"`) != 4 {
		t.Errorf("svg missing title or bars")
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(res.Artifacts[FormatPNG]))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != int(DefaultWidth) || cfg.Height != int(DefaultHeight) {
		t.Errorf("png = %dx%d", cfg.Width, cfg.Height)
	}
	if !bytes.HasPrefix(res.Artifacts[FormatJSON], []byte("{")) {
		t.Error("json artifact is not an object")
	}
	if !strings.HasPrefix(string(res.Artifacts[FormatDOT]), "digraph G {") {
		t.Error("dot artifact is not a digraph")
	}
}

func TestExecuteArtifactCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	opts := Options{
		Source: writeSales(t),
		Recipe: "bar",
		Fields: recipe.Fields{X: "genre", Y: "sold"},
	}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first run hit the cache")
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.RenderHit || second.Chart != nil {
		t.Error("second run rebuilt the chart")
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs")
	}

	opts.Width = 320
	third, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.RenderHit {
		t.Error("a new size reused the cached artifact")
	}

	opts.Width = 0
	opts.Refresh = true
	fourth, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if fourth.CacheInfo.RenderHit {
		t.Error("refresh served the cache")
	}
}

func TestExecuteInlineRows(t *testing.T) {
	rows := []data.Datum{
		{"month": "Jan", "temp": 7.0},
		{"month": "Feb", "temp": 6.9},
		{"month": "Mar", "temp": 9.5},
	}
	res, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{
		Rows:   rows,
		Recipe: "line",
		Fields: recipe.Fields{X: "month", Y: "temp"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.DataHash == "" || res.Stats.Rows != 3 {
		t.Errorf("result = %+v", res.Stats)
	}
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"missing file", Options{Source: "/nonexistent/sales.csv", Recipe: "column", Fields: recipe.Fields{X: "a", Y: "b"}}, errors.ErrCodeFileNotFound},
		{"unknown extension", Options{Source: "sales.xls", Recipe: "column", Fields: recipe.Fields{X: "a", Y: "b"}}, errors.ErrCodeInvalidFormat},
		{"unknown field", Options{Rows: []data.Datum{{"a": 1.0}}, Recipe: "column", Fields: recipe.Fields{X: "a", Y: "b"}}, errors.ErrCodeInvalidRecipe},
		{"missing channel", Options{Rows: []data.Datum{{"a": 1.0}}, Recipe: "column", Fields: recipe.Fields{X: "a"}}, errors.ErrCodeInvalidRecipe},
		{"unknown theme", Options{Rows: []data.Datum{{"a": "x", "b": 1.0}}, Recipe: "column", Fields: recipe.Fields{X: "a", Y: "b"}, Theme: "neon"}, errors.ErrCodeInvalidTheme},
	}
	r := NewRunner(nil, nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Execute(context.Background(), tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("got %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoadRemote(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		hits.Add(1)
		if !strings.HasPrefix(req.UserAgent(), "stackchart/") {
			t.Errorf("user agent = %q", req.UserAgent())
		}
		switch req.URL.Path {
		case "/sales.csv":
			w.Write([]byte(salesCSV))
		case "/flaky.csv":
			if hits.Load() == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.Write([]byte(salesCSV))
		default:
			http.NotFound(w, req)
		}
	}))
	defer srv.Close()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	ctx := context.Background()

	rows, hash, hit, err := r.LoadWithCacheInfo(ctx, Options{Source: srv.URL + "/sales.csv"})
	if err != nil || hit || len(rows) != 4 || hash == "" {
		t.Fatalf("first load: rows=%d hit=%v err=%v", len(rows), hit, err)
	}
	_, hash2, hit, err := r.LoadWithCacheInfo(ctx, Options{Source: srv.URL + "/sales.csv"})
	if err != nil || !hit || hash2 != hash {
		t.Errorf("second load: hit=%v err=%v", hit, err)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hit %d times, want 1", got)
	}

	hits.Store(0)
	if _, err := r.Load(ctx, Options{Source: srv.URL + "/flaky.csv"}); err != nil {
		t.Errorf("flaky source not retried: %v", err)
	}
	if got := hits.Load(); got != 2 {
		t.Errorf("flaky source hit %d times, want 2", got)
	}

	hits.Store(0)
	_, err = r.Load(ctx, Options{Source: srv.URL + "/missing.csv"})
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing source: %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("404 retried: %d requests", got)
	}
}
