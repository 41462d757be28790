package audio

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/jwulff/audiolabel/internal/testutil"
)

func TestDiscoverFiltersExtensions(t *testing.T) {
	dir := testutil.TempFiles(t, map[string]string{
		"a.wav": "",
		"b.mp3": "",
		"c.txt": "",
	})

	got, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := []string{filepath.Join(dir, "a.wav"), filepath.Join(dir, "b.mp3")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Discover = %v, want %v", got, want)
	}

	again, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover again: %v", err)
	}
	if !reflect.DeepEqual(got, again) {
		t.Errorf("Discover not stable: %v then %v", got, again)
	}
}

func TestDiscoverSkipsSubdirectories(t *testing.T) {
	dir := testutil.TempFiles(t, map[string]string{
		"top.WAV":         "",
		"nested/deep.wav": "",
		"clip.mp3.bak":    "",
	})

	got, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := []string{filepath.Join(dir, "top.WAV")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Discover = %v, want %v", got, want)
	}
}

func TestDiscoverMissingDir(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestSupported(t *testing.T) {
	tests := map[string]bool{
		"a.wav":          true,
		"a.MP3":          true,
		"dir/b.mp3":      true,
		"c.flac":         false,
		"wav":            false,
		"noext":          false,
		"tricky.wav.txt": false,
	}
	for path, want := range tests {
		if got := Supported(path); got != want {
			t.Errorf("Supported(%q) = %v, want %v", path, got, want)
		}
	}
}
