package cmd

import "testing"

func TestResolveVersionPrefersInjectedValue(t *testing.T) {
	old := version
	version = "v1.2.3"
	defer func() { version = old }()

	if got := resolveVersion(); got != "v1.2.3" {
		t.Fatalf("expected v1.2.3, got %q", got)
	}
}

func TestResolveVersionFallbackNeverEmpty(t *testing.T) {
	old := version
	version = "unknown"
	defer func() { version = old }()

	if got := resolveVersion(); got == "" {
		t.Fatalf("expected non-empty version")
	}
}
