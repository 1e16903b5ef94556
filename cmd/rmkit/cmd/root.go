package cmd

import (
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbosity int
	quiet     bool
)

// Build metadata, overridden via ldflags on release builds.
var (
	version = "dev"
	commit  = ""
	date    = ""
)

var rootCmd = &cobra.Command{
	Use:   "rmkit",
	Short: "RMK keyboard firmware project tool",
	Long: `rmkit scaffolds keyboard firmware projects running RMK and packages
the built firmware into flashable images.

Examples:
  rmkit create                                      # Scaffold from ./keyboard.toml + ./vial.json
  rmkit init --project-name corne --chip nrf52840   # Scaffold a bare project
  rmkit build                                       # Compile and package firmware
  rmkit chips --split                               # List chips usable in split keyboards`,
	Version: buildinfo.Version(version, commit, date),
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(app.Context()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"verbose output, repeat to echo external tool invocations")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"errors only, suppresses the banner")
}

// newLogger builds the logger for one command invocation. Verbosity wins
// over quiet when both are given.
func newLogger() *log.Logger {
	cfg := log.DefaultConfig()
	if verbosity > 0 {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// printBanner prints application version information
func printBanner(logger *log.Logger) {
	if quiet {
		return
	}
	logger.Info("rmkit", log.String("version", buildinfo.Version(version, commit, date)))
}
