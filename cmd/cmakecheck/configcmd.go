package cmakecheck

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cmake-checker/cmake-checker/internal/config"
)

var (
	cfgOutput    string
	cfgReporter  string
	cfgFailOn    string
	cfgThreads   int
	cfgDisable   string
	cfgWhitelist []string
	cfgForce     bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .cmake-checker.yml with the selected options",
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)

	initCmd.Flags().StringVarP(&cfgOutput, "output", "o", ".cmake-checker.yml", "config file to write")
	initCmd.Flags().StringVar(&cfgReporter, "reporter", "console", "default report format")
	initCmd.Flags().StringVar(&cfgFailOn, "fail-on", "", "minimum severity that fails the check")
	initCmd.Flags().IntVar(&cfgThreads, "threads", 0, "worker count (0 = GOMAXPROCS)")
	initCmd.Flags().StringVar(&cfgDisable, "disable", "", "comma-separated violation kinds to ignore")
	initCmd.Flags().StringArrayVar(&cfgWhitelist, "whitelist", nil, "pattern of files to skip (repeatable)")
	initCmd.Flags().BoolVar(&cfgForce, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the global config file location",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), config.GlobalPath())
		},
	}
	cfgCmd.AddCommand(showCmd)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	if _, err := os.Stat(cfgOutput); err == nil && !cfgForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgOutput)
	}
	fc := config.FileConfig{
		Reporter:        optStrPtr(cfgReporter),
		FailOn:          optStrPtr(cfgFailOn),
		Threads:         intPtr(cfgThreads),
		Disable:         optStrPtr(cfgDisable),
		Whitelist:       cfgWhitelist,
		DefaultExcludes: boolPtr(true),
	}
	if err := fc.Validate(); err != nil {
		return err
	}

	b, err := yaml.Marshal(&fc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfgOutput, b, 0644); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Wrote", cfgOutput)
	return nil
}

func optStrPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
func intPtr(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
func boolPtr(v bool) *bool { return &v }
