package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
)

func TestDefaultKeyMapBindings(t *testing.T) {
	km := DefaultKeyMap()

	all := map[string]key.Binding{
		"Quit": km.Quit, "Run": km.Run, "Pause": km.Pause, "Reset": km.Reset,
		"Tab": km.Tab, "Add": km.Add, "Edit": km.Edit, "Delete": km.Delete,
		"MoveUp": km.MoveUp, "MoveDown": km.MoveDown, "Clear": km.Clear,
		"Theme": km.Theme, "Help": km.Help,
		"Up": km.Up, "Down": km.Down, "PageUp": km.PageUp, "PageDown": km.PageDown,
	}

	for name, b := range all {
		if !b.Enabled() {
			t.Errorf("%s binding is disabled", name)
		}
		if len(b.Keys()) == 0 {
			t.Errorf("%s binding has no keys", name)
		}
	}
}

func TestDefaultKeyMapKeyAssignments(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		binding key.Binding
		name    string
		wants   []string
	}{
		{km.Quit, "Quit", []string{"q", "ctrl+c"}},
		{km.Run, "Run", []string{"g", "enter"}},
	}
	for _, tt := range tests {
		have := map[string]bool{}
		for _, k := range tt.binding.Keys() {
			have[k] = true
		}
		for _, want := range tt.wants {
			if !have[want] {
				t.Errorf("%s binding should include %q, has %v", tt.name, want, tt.binding.Keys())
			}
		}
	}
}

func TestDefaultKeyMapHelp(t *testing.T) {
	km := DefaultKeyMap()

	if len(km.ShortHelp()) == 0 {
		t.Error("short help should list bindings")
	}

	groups := km.FullHelp()
	if len(groups) < 2 {
		t.Fatalf("full help has %d groups, want at least 2", len(groups))
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Errorf("full help group %d is empty", i)
		}
	}
}
