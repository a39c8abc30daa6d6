package cmakecheck

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/cmake-checker/cmake-checker/internal/config"
	"github.com/cmake-checker/cmake-checker/internal/engine"
	"github.com/cmake-checker/cmake-checker/internal/ignore"
	"github.com/cmake-checker/cmake-checker/internal/logger"
	"github.com/cmake-checker/cmake-checker/internal/report"
	"github.com/cmake-checker/cmake-checker/internal/verifier"
)

// stdinPath as the only argument reads one script from standard input.
const stdinPath = "-"

const defaultBaseline = "cmake-checker.baseline.json"

var (
	flagWarnOnly        bool
	flagReporter        string
	flagOutput          string
	flagWhitelist       string
	flagInclude         string
	flagExclude         string
	flagThreads         int
	flagNoCache         bool
	flagDefaultExcludes bool
	flagBaseline        string
	flagFailOn          string
	flagDisable         string
	flagConfig          string
)

func init() {
	cmd := &cobra.Command{
		Use:   "check PATH...",
		Short: "Check CMake files and directories for anti-patterns",
		Long: "Check scans each file given and every *.cmake and CMakeLists.txt file below each " +
			"directory given. Use - to read a single script from standard input.",
		Args: cobra.MinimumNArgs(1),
		RunE: runCheck,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().BoolVar(&flagWarnOnly, "warn-only", false, "exit 0 even if violations are found")
	cmd.Flags().StringVarP(&flagReporter, "reporter", "r", "", "report format: console|junit|sarif|json|table (default console)")
	cmd.Flags().StringVarP(&flagOutput, "output-file", "o", "", "write the report to this file instead of stdout")
	cmd.Flags().StringVar(&flagWhitelist, "whitelist", "", "file with .gitignore style patterns of files to skip")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().IntVar(&flagThreads, "threads", 0, "worker count (0 = GOMAXPROCS)")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "disable the incremental scan cache")
	cmd.Flags().BoolVar(&flagDefaultExcludes, "default-excludes", true, "skip .git, CMakeFiles, _deps and generated build files")
	cmd.Flags().StringVar(&flagBaseline, "baseline", "", "baseline of accepted violations (default "+defaultBaseline+" when present)")
	cmd.Flags().StringVar(&flagFailOn, "fail-on", "", "fail only on violations at or above low|medium|high (default low)")
	cmd.Flags().StringVar(&flagDisable, "disable", "", "comma-separated violation kinds to ignore")
	cmd.Flags().StringVar(&flagConfig, "config", "", "config file (default: .cmake-checker.yml near the first path)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	gcfg, lcfg, err := loadConfigs(configRoot(args), flagConfig)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if !cmd.Flags().Changed("log-level") && (lcfg.LogLevel != nil || gcfg.LogLevel != nil) {
		log = logger.Stderr(pickString("", lcfg.LogLevel, gcfg.LogLevel), pickString(flagLogFormat, lcfg.LogFormat, gcfg.LogFormat))
	}

	reporter := pickString(flagReporter, lcfg.Reporter, gcfg.Reporter)
	if reporter == "" {
		reporter = "console"
	}
	write, err := report.Lookup(reporter)
	if err != nil {
		return err
	}
	failOn := pickString(flagFailOn, lcfg.FailOn, gcfg.FailOn)
	if err := (config.FileConfig{FailOn: optStrPtr(failOn)}).Validate(); err != nil {
		return err
	}
	disable, err := config.ParseKinds(pickString(flagDisable, lcfg.Disable, gcfg.Disable))
	if err != nil {
		return fmt.Errorf("--disable: %w", err)
	}
	patterns, err := readPatterns(flagWhitelist)
	if err != nil {
		return fmt.Errorf("whitelist: %w", err)
	}
	patterns = append(append(append([]string{}, gcfg.Whitelist...), lcfg.Whitelist...), patterns...)

	cfg := engine.Config{
		IncludeGlobs:    pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs:    pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		Whitelist:       ignore.New(patterns...),
		DefaultExcludes: pickBoolDefault(flagDefaultExcludes, cmd.Flags().Changed("default-excludes"), lcfg.DefaultExcludes, gcfg.DefaultExcludes, true),
		Threads:         pickInt(flagThreads, lcfg.Threads, gcfg.Threads),
		NoCache:         pickBool(flagNoCache, lcfg.NoCache, gcfg.NoCache),
		Disable:         disable,
		Logger:          log,
	}

	var results []verifier.Result
	var snippets report.Snippets
	if len(args) == 1 && args[0] == stdinPath {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		src := verifier.TextSource{Name: "<stdin>", Text: string(b)}
		results = verifier.New(verifier.Options{Logger: log}).Verify(cmd.Context(), []verifier.Source{src})
		engine.DropKinds(results, cfg.Disable)
		snippets = report.NewTextSnippets(map[string]string{src.Name: src.Text})
	} else {
		res, err := engine.Check(cmd.Context(), cfg, args)
		if err != nil {
			return err
		}
		results = res.Files
		snippets = report.NewFileSnippets()
		log.Info("check complete", zap.Int("files", res.FilesScanned), zap.Duration("duration", res.Duration))
	}

	baselinePath := pickString(flagBaseline, lcfg.Baseline, gcfg.Baseline)
	explicitBaseline := baselinePath != ""
	if !explicitBaseline {
		baselinePath = defaultBaseline
	}
	base, err := report.LoadBaseline(baselinePath)
	switch {
	case err == nil:
		results = report.FilterNew(results, base, snippets)
	case explicitBaseline || !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("baseline %s: %w", baselinePath, err)
	}

	out := cmd.OutOrStdout()
	color := false
	if flagOutput != "" {
		f, err := os.Create(flagOutput)
		if err != nil {
			return fmt.Errorf("output: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	} else if f, ok := out.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}
	if pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor) {
		color = false
	}

	if err := write(out, results, report.Options{Color: color, Snippets: snippets}); err != nil {
		return fmt.Errorf("%s report: %w", reporter, err)
	}
	for _, r := range verifier.Failed(results) {
		log.Error("file not checked", zap.String("path", r.ID), zap.Error(r.Err))
	}

	if code := report.ExitCode(results, pickBool(flagWarnOnly, lcfg.WarnOnly, gcfg.WarnOnly), failOn); code != report.ExitOK {
		return exitCode(code)
	}
	return nil
}
