package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	if GitCommit != "" || BuildDate != "" {
		t.Skip("build-time values injected")
	}
}

func TestColored_PlainWhenColorDisabled(t *testing.T) {
	origNoColor := color.NoColor
	origVersion := Version
	t.Cleanup(func() {
		color.NoColor = origNoColor
		Version = origVersion
	})
	color.NoColor = true

	cases := []string{
		"0.1.0",
		"1.2.3-rc.1+build.123",
		"2.0.0-alpha",
		"dev",
		"1.2",
	}
	for _, v := range cases {
		Version = v
		if got := Colored(); got != v {
			t.Errorf("Colored() with %q = %q", v, got)
		}
	}
}

func TestColored_KeepsSuffix(t *testing.T) {
	origNoColor := color.NoColor
	origVersion := Version
	t.Cleanup(func() {
		color.NoColor = origNoColor
		Version = origVersion
	})
	color.NoColor = false

	Version = "1.2.3-beta.1"
	got := Colored()
	if got == Version {
		t.Fatalf("expected escapes in %q", got)
	}
	if want := "-beta.1"; got[len(got)-len(want):] != want {
		t.Errorf("Colored() = %q, want suffix %q", got, want)
	}
}
