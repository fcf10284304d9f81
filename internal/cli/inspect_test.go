package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/recipe"
)

func TestViewTree(t *testing.T) {
	c := buildSales(t)
	out := viewTree(c.View).String()

	for _, want := range []string{"view0", "rendered", "interval", "(4 elements)", "4 rows"} {
		if !strings.Contains(out, want) {
			t.Errorf("view tree missing %q:\n%s", want, out)
		}
	}
}

func TestWriteViewTreeDOT(t *testing.T) {
	c := buildSales(t)
	path := filepath.Join(t.TempDir(), "tree.dot")

	if err := writeViewTree(context.Background(), c, path); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(b), "digraph") {
		t.Errorf("not a DOT file: %.40s", b)
	}
}

func TestWriteViewTreeBadExtension(t *testing.T) {
	c := buildSales(t)
	err := writeViewTree(context.Background(), c, filepath.Join(t.TempDir(), "tree.gif"))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestRecipeTable(t *testing.T) {
	out := recipeTable(recipe.All()).Render()
	for _, name := range recipe.Names() {
		if !strings.Contains(out, name) {
			t.Errorf("recipe table missing %q", name)
		}
	}
}
