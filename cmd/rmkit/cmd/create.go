package cmd

import (
	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/cobra"

	"github.com/HaoboGu/rmkit/internal/config"
	"github.com/HaoboGu/rmkit/internal/template"
)

var (
	createKeyboardToml string
	createVialJSON     string
	createTargetDir    string
	createVersion      string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an RMK project from keyboard.toml and vial.json",
	Long: `Create scaffolds a complete firmware project from a keyboard.toml device
description and a vial.json layout. The template matching the configured
chip is fetched, both configuration files are copied in and the generated
Cargo manifest is rewritten for the device's feature set.

Examples:
  rmkit create
  rmkit create --keyboard-toml-path boards/corne.toml --vial-json-path boards/vial.json
  rmkit create --target-dir firmware --version 0.7.0`,
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().StringVar(&createKeyboardToml, "keyboard-toml-path", "./keyboard.toml",
		"path to the keyboard.toml device description")
	createCmd.Flags().StringVar(&createVialJSON, "vial-json-path", "./vial.json",
		"path to the vial.json layout")
	createCmd.Flags().StringVar(&createTargetDir, "target-dir", "",
		"directory to scaffold into, defaults to the project name")
	createCmd.Flags().StringVar(&createVersion, "version", "",
		"RMK version pinning the template revision, defaults to the latest")
}

func runCreate(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	printBanner(logger)

	cfg, err := config.Load(createKeyboardToml)
	if err != nil {
		return err
	}
	project, err := config.Resolve(cfg, createTargetDir)
	if err != nil {
		return err
	}

	scaffolder := template.New(logger)
	if err := scaffolder.Fetch(cmd.Context(), project, createVersion); err != nil {
		return err
	}
	if err := template.CopyConfig(createKeyboardToml, createVialJSON, project.Dir); err != nil {
		return err
	}
	if err := scaffolder.Finalize(cmd.Context(), project); err != nil {
		return err
	}

	logger.Info("Project created",
		log.String("name", project.Name),
		log.String("dir", project.Dir))
	return nil
}
