package version

import (
	"testing"

	"github.com/fatih/color"
)

func override(t *testing.T, version, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = version, commit, date
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})
}

func withoutColor(t *testing.T) {
	t.Helper()
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })
}

func TestDefaultVersionIsSet(t *testing.T) {
	if Version == "" {
		t.Fatal("Version should have a default value")
	}
}

func TestColored(t *testing.T) {
	withoutColor(t)
	tests := []struct {
		version string
		want    string
	}{
		{"1.2.3", "1.2.3"},
		{"0.1.0-dev", "0.1.0-dev"},
		{"nightly", "nightly"},
		{"1.2", "1.2"},
	}
	for _, tt := range tests {
		override(t, tt.version, "", "")
		if got := Colored(); got != tt.want {
			t.Fatalf("Colored() for %q = %q, want %q", tt.version, got, tt.want)
		}
	}
}

func TestColoredAddsEscapes(t *testing.T) {
	orig := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = orig })
	override(t, "1.2.3", "", "")
	if got := Colored(); got == "1.2.3" {
		t.Fatal("expected color escapes")
	}
}

func TestDetails(t *testing.T) {
	override(t, "1.0.0", "", "")
	if got := Details(); len(got) != 0 {
		t.Fatalf("expected no details, got %q", got)
	}
	override(t, "1.0.0", "abc123", "2024-01-15T10:30:00Z")
	got := Details()
	if len(got) != 2 || got[0] != "commit: abc123" || got[1] != "built: 2024-01-15T10:30:00Z" {
		t.Fatalf("unexpected details %q", got)
	}
}
