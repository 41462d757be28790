// Package cli defines Cobra command definitions for the audiolabel CLI.
// This file contains the root command, which opens the annotation TUI.
package cli

import (
	"fmt"
	stdlog "log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jwulff/audiolabel/internal/app"
	"github.com/jwulff/audiolabel/internal/audio"
	"github.com/jwulff/audiolabel/internal/category"
	"github.com/jwulff/audiolabel/internal/config"
	"github.com/jwulff/audiolabel/internal/db"
	eventlog "github.com/jwulff/audiolabel/internal/log"
	"github.com/jwulff/audiolabel/internal/playback"
	"github.com/jwulff/audiolabel/internal/playback/speaker"
)

var (
	configPath string
	debug      bool
	pick       bool
	pickFolder bool
	resume     bool
	version    = "dev" // set via ldflags at build time

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "audiolabel [files or folders...]",
	Short: "Label sound events in audio recordings",
	Long: `audiolabel opens WAV and MP3 files in a terminal UI where you select
a time range, pick a category and save the labels as JSON for training
audio event detection models.

Folders are expanded to the audio files they contain. With no arguments
the current directory is used.`,
	Version:           version,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runRoot,
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ./"+config.DefaultFile+" if present)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Write debug output to <data_dir>/debug.log")
	rootCmd.Flags().BoolVar(&pick, "pick", false, "Choose audio files with a file dialog")
	rootCmd.Flags().BoolVar(&pickFolder, "pick-folder", false, "Choose a folder of audio files with a dialog")
	rootCmd.Flags().BoolVar(&resume, "resume", false, "Reload previously saved labels when a file is opened")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(historyCmd)
}

// loadConfig resolves configuration for every command: .env first, then
// the YAML file and AUDIOLABEL_* variables.
func loadConfig(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	if !IsTTY() {
		printGuidance(cmd)
		return nil
	}

	inputs := args
	if pick {
		picked, err := pickFiles()
		if err != nil {
			return err
		}
		inputs = append(inputs, picked...)
	}
	if pickFolder {
		dir, err := pickDir()
		if err != nil {
			return err
		}
		inputs = append(inputs, dir)
	}
	if len(inputs) == 0 {
		inputs = []string{"."}
	}

	files, err := resolveInputs(inputs)
	if err != nil {
		return err
	}

	cats, err := category.Load(cfg.Categories)
	if err != nil {
		return err
	}
	decoder, err := audio.NewDecoder(cfg.Decoder, cfg.SampleRate)
	if err != nil {
		return err
	}
	logger, err := eventlog.NewLogger(cfg.DataDir)
	if err != nil {
		return err
	}

	if debug {
		f, err := tea.LogToFile(filepath.Join(cfg.DataDir, "debug.log"), "audiolabel")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer f.Close()
		stdlog.Printf("starting with %d file(s), %d categories, decoder %s", len(files), cats.Len(), cfg.Decoder)
	}

	// History is an audit trail; the UI works without it.
	store, err := db.Open(cfg.HistoryPath())
	if err != nil {
		logger.Append(eventlog.Event{Event: eventlog.EventUnhandledError, Error: err.Error()})
		store = nil
	} else {
		defer store.Close()
	}

	sessionID := db.NewSessionID()
	m := app.New(app.Options{
		Files:          files,
		Categories:     cats,
		Decoder:        decoder,
		Player:         playback.NewController(speaker.New(cfg.OutputRate)),
		Logger:         logger,
		History:        store,
		AnnotationsDir: cfg.AnnotationsDir,
		StepSeconds:    cfg.StepSeconds,
		Resume:         resume || cfg.Resume,
		SessionID:      sessionID,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Append(eventlog.Event{
			Event:     eventlog.EventUnhandledError,
			SessionID: sessionID,
			Error:     err.Error(),
		})
		return err
	}
	return nil
}

func printGuidance(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Non-TTY environment detected.")
	fmt.Fprintln(out, "The labelling UI needs an interactive terminal. Available commands:")
	fmt.Fprintln(out, "  audiolabel scan <dir>      list audio files audiolabel would open")
	fmt.Fprintln(out, "  audiolabel categories      show the configured categories")
	fmt.Fprintln(out, "  audiolabel check           validate saved annotation files")
	fmt.Fprintln(out, "  audiolabel history [file]  list recent saves")
}
