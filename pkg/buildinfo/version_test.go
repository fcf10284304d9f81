package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	old := Version
	Version = "v9.9.9"
	defer func() { Version = old }()

	if got := Template(); !strings.Contains(got, "v9.9.9") || !strings.HasPrefix(got, "{{.Name}}") {
		t.Errorf("Template() = %q", got)
	}
	if got := UserAgent(); got != "stackchart/v9.9.9" {
		t.Errorf("UserAgent() = %q", got)
	}
}
