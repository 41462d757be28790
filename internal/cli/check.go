package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/jwulff/audiolabel/internal/annotation"
	"github.com/jwulff/audiolabel/internal/category"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate saved annotation files",
	Long: `Validate every JSON file in the annotations directory: times must be
fractions in [0,1], start must not be after end and every category must
be in the configured list. Exits non-zero if any file has problems.`,
	RunE: runCheck,
}

type checkResult struct {
	path     string
	problems []string
}

func runCheck(cmd *cobra.Command, args []string) error {
	cats, err := category.Load(cfg.Categories)
	if err != nil {
		return err
	}

	paths, err := filepath.Glob(filepath.Join(cfg.AnnotationsDir, "*.json"))
	if err != nil {
		return fmt.Errorf("listing annotations: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(paths) == 0 {
		fmt.Fprintf(out, "No annotation files in %s\n", cfg.AnnotationsDir)
		return nil
	}

	p := mpb.New(mpb.WithWidth(64), mpb.WithOutput(cmd.ErrOrStderr()))
	bar := p.AddBar(int64(len(paths)),
		mpb.PrependDecorators(
			decor.Name("Checking: "),
			decor.CountersNoUnit("%d / %d"),
		),
		mpb.AppendDecorators(
			decor.Percentage(),
		),
	)

	var failed []checkResult
	for _, path := range paths {
		if problems := checkFile(path, cats); len(problems) > 0 {
			failed = append(failed, checkResult{path: path, problems: problems})
		}
		bar.Increment()
	}
	p.Wait()

	for _, r := range failed {
		fmt.Fprintln(out, r.path)
		for _, pr := range r.problems {
			fmt.Fprintf(out, "  %s\n", pr)
		}
	}
	fmt.Fprintf(out, "%d file(s) checked, %d with problems\n", len(paths), len(failed))

	if len(failed) > 0 {
		return fmt.Errorf("%d annotation file(s) failed validation", len(failed))
	}
	return nil
}

func checkFile(path string, cats *category.Set) []string {
	records, err := annotation.LoadExisting(path)
	if err != nil {
		return []string{err.Error()}
	}
	return annotation.Check(records, cats)
}
