package ui

import (
	"os"
	"testing"
)

// These tests mutate the package-level theme, so none of them run in
// parallel, and each restores dark before finishing.

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme("dark") })

	for _, name := range []string{"dark", "light", "studio", "none"} {
		SetTheme(name)
		if got := GetCurrentTheme().Name; got != name {
			t.Errorf("SetTheme(%q) activated %q", name, got)
		}
	}

	SetTheme("solarized")
	if got := GetCurrentTheme().Name; got != "dark" {
		t.Errorf("unknown name should fall back to dark, got %q", got)
	}
}

func TestGetCurrentTUITheme(t *testing.T) {
	t.Cleanup(func() { SetTheme("dark") })

	SetTheme("none")
	if got := GetCurrentTUITheme(); got != NoColorTUITheme {
		t.Error("colors off should select NoColorTUITheme")
	}

	SetTheme("studio")
	if got := GetCurrentTUITheme(); got != StudioTUITheme {
		t.Error("any colored theme should select StudioTUITheme")
	}
}

func TestInitTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme("dark") })

	t.Run("flag wins over environment", func(t *testing.T) {
		InitTheme(true)
		if got := GetCurrentTheme().Name; got != "none" {
			t.Errorf("theme = %q, want none", got)
		}
	})

	t.Run("NO_COLOR disables colors", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		InitTheme(false)
		if got := GetCurrentTheme().Name; got != "none" {
			t.Errorf("theme = %q, want none", got)
		}
	})

	t.Run("empty NO_COLOR still counts as set", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		InitTheme(false)
		if got := GetCurrentTheme().Name; got != "none" {
			t.Errorf("theme = %q, want none", got)
		}
	})

	t.Run("defaults to dark", func(t *testing.T) {
		if v, ok := os.LookupEnv("NO_COLOR"); ok {
			t.Cleanup(func() { os.Setenv("NO_COLOR", v) })
			os.Unsetenv("NO_COLOR")
		}
		InitTheme(false)
		if got := GetCurrentTheme().Name; got != "dark" {
			t.Errorf("theme = %q, want dark", got)
		}
	})
}
