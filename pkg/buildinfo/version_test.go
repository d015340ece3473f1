package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	orig := [3]string{Version, Commit, Date}
	t.Cleanup(func() { Version, Commit, Date = orig[0], orig[1], orig[2] })

	Version, Commit, Date = "v1.2.3", "abc123", "2024-01-01T00:00:00Z"

	got := String()
	want := "version: v1.2.3\ncommit: abc123\nbuilt: 2024-01-01T00:00:00Z"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTemplate(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "v0.9.0"
	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} version v0.9.0\n") {
		t.Errorf("Template() = %q", tmpl)
	}
}

func TestResolvedVersionDev(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "dev"
	if v := resolvedVersion(); v == "" {
		t.Error("resolvedVersion() should never be empty")
	}
}
