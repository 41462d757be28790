package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwulff/audiolabel/internal/audio"
)

var scanCmd = &cobra.Command{
	Use:   "scan <dir>",
	Short: "List the audio files in a folder",
	Long: `List the .wav and .mp3 files directly inside a folder, in the order
the labelling UI shows them. Subfolders are not searched.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	files, err := audio.Discover(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, f := range files {
		fmt.Fprintln(out, f)
	}
	fmt.Fprintf(out, "%d audio file(s)\n", len(files))
	return nil
}
