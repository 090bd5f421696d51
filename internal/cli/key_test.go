package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/evcraddock/gardet/internal/auth"
	"github.com/evcraddock/gardet/internal/db"
)

func TestKeyListAndRevoke(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "gardet.db")

	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	raw, key, err := auth.NewAPIKeyStore(database).Create("cli", "ana@example.com")
	if err != nil {
		t.Fatalf("create key: %v", err)
	}
	if err := database.Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}

	out, err := executeCommand("--db", dbPath, "key", "list")
	if err != nil {
		t.Fatalf("key list: %v", err)
	}
	if !strings.Contains(out, key.KeyPrefix) || !strings.Contains(out, "ana@example.com") || !strings.Contains(out, "never") {
		t.Errorf("list output = %q", out)
	}
	if strings.Contains(out, raw) {
		t.Error("list must not print the raw key")
	}

	id := strings.TrimSpace(strings.Fields(strings.Split(out, "\n")[1])[0])
	if _, err := executeCommand("--db", dbPath, "key", "revoke", id); err != nil {
		t.Fatalf("key revoke: %v", err)
	}

	out, err = executeCommand("--db", dbPath, "key", "list")
	if err != nil {
		t.Fatalf("key list: %v", err)
	}
	if !strings.Contains(out, "No API keys.") {
		t.Errorf("list after revoke = %q", out)
	}

	if _, err := executeCommand("--db", dbPath, "key", "revoke", id); err == nil {
		t.Error("expected error revoking a missing key")
	}
}

func TestKeyRevokeInvalidID(t *testing.T) {
	if _, err := executeCommand("--db", filepath.Join(t.TempDir(), "gardet.db"), "key", "revoke", "abc"); err == nil {
		t.Error("expected error for non-numeric id")
	}
}
