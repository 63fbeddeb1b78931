package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestOpen_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "homecost.db")

	database, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer database.Close()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected database file at %s: %v", path, err)
	}

	var fk int
	if err := database.QueryRow(`PRAGMA foreign_keys`).Scan(&fk); err != nil {
		t.Fatalf("read pragma: %v", err)
	}
	if fk != 1 {
		t.Fatalf("expected foreign_keys on, got %d", fk)
	}
}

func TestPing_ClosedDatabase(t *testing.T) {
	database, err := Open(filepath.Join(t.TempDir(), "closed.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	database.Close()

	if err := Ping(context.Background(), database); err == nil {
		t.Fatal("expected an error pinging a closed database")
	}
}
