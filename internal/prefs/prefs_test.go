package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "prefs.json"))
	want := Prefs{Language: "en", DarkMode: false, Seat: "12A"}
	if err := s.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := s.Load()
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestLoadMissingGivesDefaults(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "absent.json"))
	got := s.Load()
	if got != Default() {
		t.Fatalf("expected defaults, got %+v", got)
	}
	if got.Language != "ru" || !got.DarkMode {
		t.Fatalf("first launch is russian and dark, got %+v", got)
	}
}

func TestLoadCorruptGivesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	if err := os.WriteFile(path, []byte("]["), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := NewStore(path).Load(); got != Default() {
		t.Fatalf("corrupt prefs must default, got %+v", got)
	}
}
