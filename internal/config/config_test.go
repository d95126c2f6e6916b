package config

import "testing"

func TestIsIgnoredMatchesClassRegex(t *testing.T) {
	cfg := &Config{WindowIgnore: []WindowIgnore{{Class: "^dwm_splash$"}}}
	if !cfg.IsIgnored("dwm_splash", "") {
		t.Fatal("expected class match to be ignored")
	}
	if cfg.IsIgnored("firefox", "") {
		t.Fatal("non-matching class must not be ignored")
	}
}

func TestIsIgnoredNameOverridesClass(t *testing.T) {
	cfg := &Config{WindowIgnore: []WindowIgnore{{Class: "^firefox$", Name: "^Picture-in-Picture$"}}}
	if cfg.IsIgnored("firefox", "Picture-in-Picture") {
		t.Fatal("matching name override must not be ignored")
	}
	if !cfg.IsIgnored("firefox", "Mozilla Firefox") {
		t.Fatal("class match without name override must be ignored")
	}
}

func TestIsIgnoredAcceptsEmptyClass(t *testing.T) {
	cfg := Default()
	if cfg.IsIgnored("", "") {
		t.Fatal("a window with no class hint must still be manageable")
	}
}
