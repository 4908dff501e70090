package config

import (
	"testing"
)

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("CONFIG_TEST_KEY", "  value  ")
	if got := getEnvOrDefault("CONFIG_TEST_KEY", "fallback"); got != "value" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
	if got := getEnvOrDefault("CONFIG_TEST_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestGetListEnvParsesCommaList(t *testing.T) {
	t.Setenv("CONFIG_TEST_LIST", "http://a.example, http://b.example ,,")
	got := getListEnv("CONFIG_TEST_LIST", []string{"default"})
	if len(got) != 2 || got[0] != "http://a.example" || got[1] != "http://b.example" {
		t.Fatalf("unexpected list %v", got)
	}
}

func TestGetListEnvFallsBackToDefault(t *testing.T) {
	got := getListEnv("CONFIG_TEST_LIST_MISSING", []string{"default"})
	if len(got) != 1 || got[0] != "default" {
		t.Fatalf("expected default list, got %v", got)
	}

	t.Setenv("CONFIG_TEST_LIST_BLANK", " , , ")
	got = getListEnv("CONFIG_TEST_LIST_BLANK", []string{"default"})
	if len(got) != 1 || got[0] != "default" {
		t.Fatalf("expected default list for blank entries, got %v", got)
	}
}
