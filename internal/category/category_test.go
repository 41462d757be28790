package category

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "categories.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadKeepsOrder(t *testing.T) {
	path := writeFile(t, `["dog_bark", "siren", "car_horn"]`)

	set, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if set.Len() != 3 {
		t.Fatalf("Len = %d, want 3", set.Len())
	}
	want := []string{"dog_bark", "siren", "car_horn"}
	for i, w := range want {
		if set.At(i) != w {
			t.Errorf("At(%d) = %q, want %q", i, set.At(i), w)
		}
	}
	if set.Index("siren") != 1 {
		t.Errorf("Index(siren) = %d, want 1", set.Index("siren"))
	}
	if set.Index("cat") != -1 {
		t.Errorf("Index(cat) = %d, want -1", set.Index("cat"))
	}
	if !set.Contains("car_horn") || set.Contains("Car_Horn") {
		t.Error("Contains should be an exact match")
	}
}

func TestNamesReturnsCopy(t *testing.T) {
	set, err := New([]string{"a", "b"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	names := set.Names()
	names[0] = "mutated"
	if set.At(0) != "a" {
		t.Errorf("At(0) = %q after mutating Names(), want %q", set.At(0), "a")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", `dog_bark, siren`},
		{"object", `{"dog_bark": 1}`},
		{"numbers", `[1, 2, 3]`},
		{"empty", `[]`},
		{"blank entry", `["dog_bark", "  "]`},
		{"duplicate", `["siren", "siren"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			if !errors.Is(err, ErrConfig) {
				t.Errorf("err = %v, want ErrConfig", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("err = %v, want ErrConfig", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want wrapped os.ErrNotExist", err)
	}
}
