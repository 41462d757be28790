package cli

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jwulff/audiolabel/internal/category"
	"github.com/jwulff/audiolabel/internal/db"
	"github.com/jwulff/audiolabel/internal/testutil"
)

// setupEnv points every configurable path at a temp dir and returns it.
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("AUDIOLABEL_CATEGORIES", filepath.Join(dir, "categories.json"))
	t.Setenv("AUDIOLABEL_ANNOTATIONS_DIR", filepath.Join(dir, "annotations"))
	t.Setenv("AUDIOLABEL_DATA_DIR", filepath.Join(dir, ".audiolabel"))
	t.Setenv("AUDIOLABEL_DECODER", "")
	t.Setenv("AUDIOLABEL_SAMPLE_RATE", "")
	t.Setenv("AUDIOLABEL_OUTPUT_RATE", "")
	t.Setenv("AUDIOLABEL_STEP_SECONDS", "")
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestResolveInputs(t *testing.T) {
	dir := testutil.TempFiles(t, map[string]string{
		"a.wav":     "",
		"b.MP3":     "",
		"c.txt":     "",
		"sub/d.wav": "",
	})

	files, err := resolveInputs([]string{dir, filepath.Join(dir, "a.wav")})
	if err != nil {
		t.Fatalf("resolveInputs: %v", err)
	}
	want := []string{filepath.Join(dir, "a.wav"), filepath.Join(dir, "b.MP3")}
	if len(files) != len(want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestResolveInputsErrors(t *testing.T) {
	dir := testutil.TempFiles(t, map[string]string{"notes.txt": ""})

	if _, err := resolveInputs([]string{filepath.Join(dir, "notes.txt")}); err == nil {
		t.Error("unsupported file should be an error")
	}
	if _, err := resolveInputs([]string{filepath.Join(dir, "missing.wav")}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file err = %v, want not exist", err)
	}
}

func TestScanCommand(t *testing.T) {
	setupEnv(t)
	dir := testutil.TempFiles(t, map[string]string{"a.wav": "", "b.mp3": "", "c.txt": ""})

	out, err := execute(t, "scan", dir)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if !strings.Contains(out, "a.wav") || !strings.Contains(out, "b.mp3") || strings.Contains(out, "c.txt") {
		t.Errorf("scan output = %q", out)
	}
	if !strings.Contains(out, "2 audio file(s)") {
		t.Errorf("scan output missing count: %q", out)
	}
}

func TestCategoriesCommand(t *testing.T) {
	dir := setupEnv(t)
	os.WriteFile(filepath.Join(dir, "categories.json"), []byte(`["dog_bark","siren"]`), 0644)

	out, err := execute(t, "categories")
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if !strings.Contains(out, "1  dog_bark") || !strings.Contains(out, "2  siren") {
		t.Errorf("categories output = %q", out)
	}
}

func TestCategoriesMissingFile(t *testing.T) {
	setupEnv(t)
	_, err := execute(t, "categories")
	if !errors.Is(err, category.ErrConfig) {
		t.Errorf("err = %v, want ErrConfig", err)
	}
}

func TestCheckCommand(t *testing.T) {
	dir := setupEnv(t)
	os.WriteFile(filepath.Join(dir, "categories.json"), []byte(`["dog_bark","siren"]`), 0644)
	ann := filepath.Join(dir, "annotations")
	os.MkdirAll(ann, 0755)
	os.WriteFile(filepath.Join(ann, "good.json"), []byte(`[{"start":0,"end":0.5,"category":"siren"}]`), 0644)
	os.WriteFile(filepath.Join(ann, "bad.json"), []byte(`[{"start":0.7,"end":0.5,"category":"cat"}]`), 0644)

	out, err := execute(t, "check")
	if err == nil {
		t.Fatal("check should fail when a file has problems")
	}
	if !strings.Contains(out, "bad.json") || strings.Contains(out, "good.json") {
		t.Errorf("check output = %q", out)
	}
	if !strings.Contains(out, "2 file(s) checked, 1 with problems") {
		t.Errorf("check summary missing: %q", out)
	}

	os.Remove(filepath.Join(ann, "bad.json"))
	if _, err := execute(t, "check"); err != nil {
		t.Errorf("check with valid files: %v", err)
	}
}

func TestCheckNoFiles(t *testing.T) {
	dir := setupEnv(t)
	os.WriteFile(filepath.Join(dir, "categories.json"), []byte(`["siren"]`), 0644)

	out, err := execute(t, "check")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "No annotation files") {
		t.Errorf("check output = %q", out)
	}
}

func TestHistoryCommand(t *testing.T) {
	dir := setupEnv(t)

	store, err := db.Open(filepath.Join(dir, ".audiolabel", "history.sqlite"))
	if err != nil {
		t.Fatalf("db.Open: %v", err)
	}
	audioPath := filepath.Join(dir, "a.wav")
	if _, err := store.RecordSave(db.SaveEntry{AudioPath: audioPath, OutputPath: "annotations/a.json", Records: 3}); err != nil {
		t.Fatalf("RecordSave: %v", err)
	}
	store.Close()

	out, err := execute(t, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "3 label(s)") || !strings.Contains(out, "a.wav -> annotations/a.json") {
		t.Errorf("history output = %q", out)
	}

	out, err = execute(t, "history", filepath.Join(dir, "other.wav"))
	if err != nil {
		t.Fatalf("history other: %v", err)
	}
	if !strings.Contains(out, "No saves recorded.") {
		t.Errorf("history for unknown file = %q", out)
	}
}

func TestRootWithoutTTYPrintsGuidance(t *testing.T) {
	if IsTTY() {
		t.Skip("stdout is a terminal")
	}
	setupEnv(t)

	out, err := execute(t)
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	if !strings.Contains(out, "Non-TTY environment detected.") {
		t.Errorf("root output = %q", out)
	}
}
