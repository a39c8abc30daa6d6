package cmakecheck

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmake-checker/cmake-checker/internal/engine"
	"github.com/cmake-checker/cmake-checker/internal/report"
	"github.com/cmake-checker/cmake-checker/internal/verifier"
)

func init() {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Manage baselines",
	}

	var file string
	update := &cobra.Command{
		Use:   "update [PATH...]",
		Short: "Accept every current violation by writing them to the baseline",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			cfg := engine.Config{DefaultExcludes: true, NoCache: true, Logger: log}
			res, err := engine.Check(cmd.Context(), cfg, args)
			if err != nil {
				return err
			}
			if err := report.SaveBaseline(file, res.Files, report.NewFileSnippets()); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Baseline updated: %d violation(s) in %s\n", verifier.CountViolations(res.Files), file)
			return nil
		},
	}
	update.Flags().StringVar(&file, "file", defaultBaseline, "baseline file to write")

	rootCmd.AddCommand(cmd)
	cmd.AddCommand(update)
}
