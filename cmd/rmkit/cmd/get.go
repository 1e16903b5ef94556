package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HaoboGu/rmkit/internal/config"
)

var (
	getChipKeyboardToml        string
	getProjectNameKeyboardToml string
)

var getChipCmd = &cobra.Command{
	Use:   "get-chip",
	Short: "Print the chip a keyboard.toml resolves to",
	Long: `Get-chip validates the device description and prints the effective chip,
whether it was configured directly or through a board name. Intended for
CI scripts that pick toolchains per target.

Examples:
  rmkit get-chip
  rmkit get-chip --keyboard-toml-path boards/corne.toml`,
	RunE: runGetChip,
}

var getProjectNameCmd = &cobra.Command{
	Use:   "get-project-name",
	Short: "Print the project name from a keyboard.toml",
	Long: `Get-project-name validates the device description and prints the project
name with spaces flattened to underscores, the form used for directories
and firmware file names.

Examples:
  rmkit get-project-name
  rmkit get-project-name --keyboard-toml-path boards/corne.toml`,
	RunE: runGetProjectName,
}

func init() {
	rootCmd.AddCommand(getChipCmd)
	rootCmd.AddCommand(getProjectNameCmd)

	getChipCmd.Flags().StringVar(&getChipKeyboardToml, "keyboard-toml-path", "./keyboard.toml",
		"path to the keyboard.toml device description")
	getProjectNameCmd.Flags().StringVar(&getProjectNameKeyboardToml, "keyboard-toml-path", "./keyboard.toml",
		"path to the keyboard.toml device description")
}

func runGetChip(cmd *cobra.Command, args []string) error {
	project, err := inspectConfig(getChipKeyboardToml)
	if err != nil {
		return err
	}
	fmt.Println(project.Chip)
	return nil
}

func runGetProjectName(cmd *cobra.Command, args []string) error {
	project, err := inspectConfig(getProjectNameKeyboardToml)
	if err != nil {
		return err
	}
	fmt.Println(project.Name)
	return nil
}

// inspectConfig loads and validates a device description without touching
// anything on disk beyond the read.
func inspectConfig(path string) (*config.Project, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return config.Inspect(cfg)
}
