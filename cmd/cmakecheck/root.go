package cmakecheck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cmake-checker/cmake-checker/internal/logger"
	"github.com/cmake-checker/cmake-checker/internal/report"
)

var (
	flagNoColor   bool
	flagLogLevel  string
	flagLogFormat string

	version = "0.1.0"

	log = zap.NewNop()
)

// rootCmd is the base Cobra command for the cmake-checker CLI.
var rootCmd = &cobra.Command{
	Use:   "cmake-checker",
	Short: "Find discouraged constructs in CMake build scripts",
	Long: "cmake-checker scans CMakeLists.txt and *.cmake files for global build settings, " +
		"non-deterministic globbing, environment mutation and other legacy patterns.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		log = logger.Stderr(flagLogLevel, flagLogFormat)
	},
}

// exitCode carries a non-zero status out of a command without printing an
// error message.
type exitCode int

func (e exitCode) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

// Execute runs the cmake-checker CLI. It should be called by the main package.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	err := rootCmd.ExecuteContext(ctx)
	_ = log.Sync()
	var ec exitCode
	if errors.As(err, &ec) {
		return int(ec)
	}
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return report.ExitError
	}
	return report.ExitOK
}

func init() {
	report.ToolVersion = version
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "diagnostic log level: debug|info|warn|error|off (env "+logger.EnvLevel+")")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "diagnostic log format: console|json (env "+logger.EnvFormat+")")
}
