package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ncruces/zenity"
	"golang.org/x/term"

	"github.com/jwulff/audiolabel/internal/audio"
)

// IsTTY returns true if stdout is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// resolveInputs expands folders into their audio files and returns absolute,
// de-duplicated paths in argument order. Unsupported files are an error.
func resolveInputs(inputs []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) error {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", p, err)
		}
		if !seen[abs] {
			seen[abs] = true
			files = append(files, abs)
		}
		return nil
	}

	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", in, err)
		}
		if !info.IsDir() {
			if !audio.Supported(in) {
				return nil, fmt.Errorf("%s: not a .wav or .mp3 file", in)
			}
			if err := add(in); err != nil {
				return nil, err
			}
			continue
		}

		found, err := audio.Discover(in)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			if err := add(f); err != nil {
				return nil, err
			}
		}
	}
	return files, nil
}

var audioFilter = zenity.FileFilter{Name: "Audio files", Patterns: []string{"*.wav", "*.mp3"}}

// pickFiles opens a native multi-file dialog. Cancelling returns no files.
func pickFiles() ([]string, error) {
	paths, err := zenity.SelectFileMultiple(zenity.Title("Select audio files"), audioFilter)
	if errors.Is(err, zenity.ErrCanceled) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file dialog: %w", err)
	}
	return paths, nil
}

// pickDir opens a native folder dialog. Cancelling is an error since there
// is nothing to open.
func pickDir() (string, error) {
	dir, err := zenity.SelectFile(zenity.Title("Select a folder of audio files"), zenity.Directory())
	if errors.Is(err, zenity.ErrCanceled) {
		return "", errors.New("no folder selected")
	}
	if err != nil {
		return "", fmt.Errorf("folder dialog: %w", err)
	}
	return dir, nil
}
