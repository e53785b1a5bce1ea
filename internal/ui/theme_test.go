package ui

import (
	"testing"

	"github.com/zhubert/noro/internal/ui/modals"
)

func TestThemeNames_AllBuiltin(t *testing.T) {
	names := ThemeNames()
	if len(names) != len(BuiltinThemes) {
		t.Errorf("ThemeNames() has %d entries, BuiltinThemes has %d", len(names), len(BuiltinThemes))
	}
	for _, n := range names {
		if !IsValidTheme(string(n)) {
			t.Errorf("%q listed but not built in", n)
		}
		th := BuiltinThemes[n]
		if th.Name == "" || th.Primary == "" || th.Text == "" || th.Bot == "" || th.User == "" {
			t.Errorf("theme %q has missing colors: %+v", n, th)
		}
	}
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme(DefaultTheme) })

	SetThemeByName("dracula")
	if CurrentThemeName() != ThemeDracula {
		t.Errorf("CurrentThemeName() = %q, want dracula", CurrentThemeName())
	}
	if CurrentTheme().Name != "Dracula" {
		t.Errorf("CurrentTheme().Name = %q", CurrentTheme().Name)
	}
	if modals.ColorPrimary != ColorPrimary {
		t.Error("SetTheme should push colors into the modals package")
	}

	SetThemeByName("no-such-theme")
	if CurrentThemeName() != DefaultTheme {
		t.Errorf("unknown theme should fall back to %q, got %q", DefaultTheme, CurrentThemeName())
	}
}

func TestTheme_Defaults(t *testing.T) {
	th := Theme{Primary: "#111111"}
	if th.GetBgSelected() != "#111111" || th.GetBorderFocus() != "#111111" {
		t.Error("empty BgSelected/BorderFocus should fall back to Primary")
	}
	th.BgSelected = "#222222"
	th.BorderFocus = "#333333"
	if th.GetBgSelected() != "#222222" || th.GetBorderFocus() != "#333333" {
		t.Error("explicit BgSelected/BorderFocus should be used")
	}
}

func TestThemeOptions(t *testing.T) {
	opts := ThemeOptions()
	if len(opts) != len(ThemeNames()) {
		t.Fatalf("ThemeOptions() = %d entries", len(opts))
	}
	if opts[0].Key != string(DefaultTheme) || opts[0].DisplayName != "Noro" {
		t.Errorf("first option = %+v", opts[0])
	}
	for _, o := range opts {
		if o.Key == "" || o.DisplayName == "" {
			t.Errorf("incomplete option %+v", o)
		}
	}
}
