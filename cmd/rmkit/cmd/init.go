package cmd

import (
	"errors"

	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/cobra"

	"github.com/HaoboGu/rmkit/internal/config"
	"github.com/HaoboGu/rmkit/internal/template"
)

var (
	initProjectName string
	initChip        string
	initBoard       string
	initSplit       bool
	initRow2Col     bool
	initLocalPath   string
	initVersion     string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a bare RMK project from flags",
	Long: `Init scaffolds a project before any keyboard.toml exists. The target is
named by exactly one of --chip or --board. The scaffolded keyboard.toml is
a starting point and still needs the matrix and layout filled in.

Examples:
  rmkit init --project-name corne --chip nrf52840 --split
  rmkit init --project-name macropad --board liatris
  rmkit init --project-name corne --chip rp2040 --local-path ../rmk-template/rp2040`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initProjectName, "project-name", "",
		"name of the project")
	initCmd.Flags().StringVar(&initChip, "chip", "",
		"target chip, e.g. nrf52840")
	initCmd.Flags().StringVar(&initBoard, "board", "",
		"target board, e.g. nice-nano-v2")
	initCmd.Flags().BoolVar(&initSplit, "split", false,
		"the keyboard is a two-board split")
	initCmd.Flags().BoolVar(&initRow2Col, "row2col", false,
		"matrix diodes run row to column")
	initCmd.Flags().StringVar(&initLocalPath, "local-path", "",
		"scaffold from a local template directory instead of fetching")
	initCmd.Flags().StringVar(&initVersion, "version", "",
		"RMK version pinning the template revision, defaults to the latest")
}

func runInit(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	printBanner(logger)

	if initProjectName == "" {
		return errors.New("a project name is required, pass --project-name")
	}

	project, err := config.NewProject(initProjectName, initBoard, initChip, initSplit, initRow2Col)
	if err != nil {
		return err
	}

	scaffolder := template.New(logger)
	if initLocalPath != "" {
		if err := template.CopyDir(initLocalPath, project.Dir); err != nil {
			return err
		}
	} else if err := scaffolder.Fetch(cmd.Context(), project, initVersion); err != nil {
		return err
	}
	if err := scaffolder.Finalize(cmd.Context(), project); err != nil {
		return err
	}

	logger.Info("Project initialized",
		log.String("name", project.Name),
		log.String("dir", project.Dir))
	return nil
}
