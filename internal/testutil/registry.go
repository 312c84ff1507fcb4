package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/oh-my-claude/menubar/internal/models"
)

// WriteRegistry writes entries as a proxy-sessions.json file in a temporary
// directory and returns its path.
func WriteRegistry(t testing.TB, entries []models.RegistryEntry) string {
	t.Helper()
	data, err := json.Marshal(entries)
	if err != nil {
		t.Fatalf("marshal registry: %v", err)
	}
	path := filepath.Join(t.TempDir(), "proxy-sessions.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write registry: %v", err)
	}
	return path
}
