package cmd

import (
	"github.com/spf13/cobra"

	"github.com/HaoboGu/rmkit/internal/pipeline"
)

var buildKeyboardToml string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile the firmware and package flashable images",
	Long: `Build runs cargo in the current project and converts the produced
executable through the chip's format chain, ending in the image the
chip's bootloader accepts. Split keyboards build the central and the
peripheral half back to back.

Examples:
  rmkit build
  rmkit build -vv                                 # echo cargo and objcopy invocations
  rmkit build --keyboard-toml-path boards/corne.toml`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVar(&buildKeyboardToml, "keyboard-toml-path", "./keyboard.toml",
		"path to the keyboard.toml device description")
}

func runBuild(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	printBanner(logger)

	return pipeline.New(logger, verbosity).Run(cmd.Context(), buildKeyboardToml)
}
