package cli

import (
	"bytes"
	"slices"
	"strings"
	"testing"
)

func TestFormatCompletion(t *testing.T) {
	tests := []struct {
		toComplete string
		want       []string
	}{
		{"", []string{"svg", "png", "pdf", "json", "dot"}},
		{"p", []string{"png", "pdf"}},
		{"svg,p", []string{"svg,png", "svg,pdf"}},
		{"svg,png,", []string{"svg,png,pdf", "svg,png,json", "svg,png,dot"}},
		{"x", nil},
	}

	for _, tt := range tests {
		t.Run(tt.toComplete, func(t *testing.T) {
			got, _ := formatCompletion(nil, nil, tt.toComplete)
			if !slices.Equal(got, tt.want) {
				t.Errorf("formatCompletion(%q) = %v, want %v", tt.toComplete, got, tt.want)
			}
		})
	}
}

func runRoot(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out.String()
}

func TestCompletionScript(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			if out := runRoot(t, "completion", shell); !strings.Contains(out, "stackchart") {
				t.Errorf("%s script does not mention stackchart", shell)
			}
		})
	}
}

func TestRecipeFlagCompletion(t *testing.T) {
	out := runRoot(t, "__complete", "render", "sales.csv", "--recipe", "")
	for _, want := range []string{"column", "pie", "facet-column"} {
		if !strings.Contains(out, want+"\n") {
			t.Errorf("completion output missing %q:\n%s", want, out)
		}
	}
}
