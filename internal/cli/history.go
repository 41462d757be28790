package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jwulff/audiolabel/internal/db"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [file]",
	Short: "List recent annotation saves",
	Long: `List saves recorded in the local history database, newest first.
With a file argument only saves of that audio file are shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum saves to list when no file is given")
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := db.Open(cfg.HistoryPath())
	if err != nil {
		return err
	}
	defer store.Close()

	var saves []db.SaveEntry
	if len(args) == 1 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolving %s: %w", args[0], err)
		}
		saves, err = store.SavesForFile(abs)
		if err != nil {
			return err
		}
	} else {
		saves, err = store.RecentSaves(historyLimit)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if len(saves) == 0 {
		fmt.Fprintln(out, "No saves recorded.")
		return nil
	}
	for _, s := range saves {
		fmt.Fprintf(out, "%s  %3d label(s)  %s -> %s\n",
			s.SavedAt.Format("2006-01-02 15:04:05"), s.Records, filepath.Base(s.AudioPath), s.OutputPath)
	}
	return nil
}
