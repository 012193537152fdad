package viz

import "testing"

func TestThemes(t *testing.T) {
	if GetTheme("retro").Name != "retro" {
		t.Error("retro theme not found")
	}
	if GetTheme("nope").Name != ThemeClassic.Name {
		t.Error("unknown theme must fall back to classic")
	}

	seen := map[string]bool{}
	th := ThemeClassic
	for range Themes {
		seen[th.Name] = true
		th = NextTheme(th)
	}
	if len(seen) != len(Themes) || th.Name != ThemeClassic.Name {
		t.Errorf("NextTheme does not cycle: %v", seen)
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("ThemeNames length mismatch")
	}
}
