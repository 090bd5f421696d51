package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/evcraddock/gardet/internal/theme"
)

func TestThemeCommandColor(t *testing.T) {
	out, err := executeCommand("theme", "#C7A046")
	if err != nil {
		t.Fatalf("theme: %v", err)
	}
	if !strings.Contains(out, ":root{--brand-color:#C7A046;--brand-color-dark:#a47d23;--brand-color-light:#efc86e;}") {
		t.Errorf("output = %q", out)
	}
}

func TestThemeCommandDefaultsToEnv(t *testing.T) {
	t.Setenv("GARDET_THEME_COLOR", "#336699")

	out, err := executeCommand("theme")
	if err != nil {
		t.Fatalf("theme: %v", err)
	}
	if !strings.Contains(out, "--brand-color:#336699;") {
		t.Errorf("output = %q, want configured color", out)
	}
}

func TestThemeCommandJSON(t *testing.T) {
	out, err := executeCommand("--format", "json", "theme", "#C7A046")
	if err != nil {
		t.Fatalf("theme: %v", err)
	}

	var p theme.Palette
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if p.Dark != "#a47d23" || p.Light != "#efc86e" {
		t.Errorf("palette = %+v", p)
	}
}
