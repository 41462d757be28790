package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwulff/audiolabel/internal/category"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Show the configured categories",
	RunE:  runCategories,
}

func runCategories(cmd *cobra.Command, args []string) error {
	cats, err := category.Load(cfg.Categories)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Categories (%s)\n", cfg.Categories)
	for i, name := range cats.Names() {
		fmt.Fprintf(out, "  %2d  %s\n", i+1, name)
	}
	return nil
}
