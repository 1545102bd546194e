package tui

import (
	"os"
	"path/filepath"
	"testing"
)

func TestUIStateManager_SaveAndLoad(t *testing.T) {
	manager := NewUIStateManager(t.TempDir(), nil)

	state := &UIState{
		CurrentScreen: ScreenOptions,
		Selection:     1,
		Values:        map[string]string{"ewbf_intensity": "60"},
		LastError:     "test error",
	}

	if err := manager.Save(state); err != nil {
		t.Fatalf("Failed to save state: %v", err)
	}

	loaded, err := manager.Load()
	if err != nil {
		t.Fatalf("Failed to load state: %v", err)
	}

	if loaded.CurrentScreen != ScreenOptions {
		t.Errorf("Expected screen options, got %s", loaded.CurrentScreen)
	}
	if loaded.Selection != 1 {
		t.Errorf("Expected selection 1, got %d", loaded.Selection)
	}
	if loaded.Values["ewbf_intensity"] != "60" {
		t.Errorf("Expected intensity 60, got %v", loaded.Values)
	}
	if loaded.LastError != "test error" {
		t.Errorf("Expected error 'test error', got %s", loaded.LastError)
	}
	if loaded.Updated.IsZero() {
		t.Error("Expected Updated timestamp to be set")
	}
}

func TestUIStateManager_LoadNonExistent(t *testing.T) {
	manager := NewUIStateManager(t.TempDir(), nil)

	state, err := manager.Load()
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if state.CurrentScreen != ScreenMenu {
		t.Errorf("Expected default screen menu, got %s", state.CurrentScreen)
	}
	if state.Values == nil {
		t.Error("Expected non-nil values map")
	}
}

func TestUIStateManager_LoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, UIStateFileName), []byte("{broken"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := NewUIStateManager(dir, nil).Load(); err == nil {
		t.Error("Expected error for corrupt state file")
	}
}

func TestUIStateManager_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "internals")
	manager := NewUIStateManager(dir, nil)

	if err := manager.Save(&UIState{CurrentScreen: ScreenMenu}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, UIStateFileName)); err != nil {
		t.Errorf("State file not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, UIStateFileName+".tmp")); !os.IsNotExist(err) {
		t.Error("Temp file should not remain after save")
	}
}

func TestDefaultMenuItems(t *testing.T) {
	items := DefaultMenuItems()
	if len(items) == 0 {
		t.Fatal("Expected menu items")
	}

	seen := make(map[string]bool)
	for _, item := range items {
		if item.Key == "" || item.Label == "" || item.Screen == "" {
			t.Errorf("Incomplete menu item: %+v", item)
		}
		if seen[item.Key] {
			t.Errorf("Duplicate menu key %s", item.Key)
		}
		seen[item.Key] = true
	}
}
