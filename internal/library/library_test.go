package library

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestScan(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"zork", "arkanoid", "lemmings"} {
		if err := os.MkdirAll(filepath.Join(dir, name), 0755); err != nil {
			t.Fatal(err)
		}
	}
	// Stray files at the top level are not titles.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "arkanoid", "metadata.ini"), []byte("[metadata]\ntitle = Arkanoid\n"), 0644); err != nil {
		t.Fatal(err)
	}

	games, err := Scan(context.Background(), dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	want := []string{"arkanoid", "lemmings", "zork"}
	if len(games) != len(want) {
		t.Fatalf("Scan found %d titles, want %d", len(games), len(want))
	}
	for i, id := range want {
		if games[i].Identifier != id {
			t.Errorf("games[%d] = %q, want %q", i, games[i].Identifier, id)
		}
	}
	if games[0].Title != "Arkanoid" {
		t.Errorf("metadata not loaded during scan: Title = %q", games[0].Title)
	}
}

func TestScanMissingDirectory(t *testing.T) {
	if _, err := Scan(context.Background(), filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Scan of a missing directory succeeded")
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a", "b"} {
		if err := os.MkdirAll(filepath.Join(dir, name), 0755); err != nil {
			t.Fatal(err)
		}
	}
	games, err := Scan(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}

	if g := Find(games, "b"); g == nil || g.Identifier != "b" {
		t.Errorf("Find(b) = %v", g)
	}
	if g := Find(games, "missing"); g != nil {
		t.Errorf("Find(missing) = %v, want nil", g)
	}
}
