// Package config parses keyboard.toml device descriptions and resolves them
// into the concrete chip, matrix topology and feature set a firmware build
// needs. Validation is strict and ordered: the chip must be determined by
// exactly one of board or chip, and the matrix topology by exactly one of
// the unibody matrix or the split section.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/HaoboGu/rmkit/pkg/chips"
)

// DefaultPath is where a device description lives relative to the project
// root.
const DefaultPath = "keyboard.toml"

// Project is the resolved form of a device description, carrying everything
// the scaffolding and packaging steps need.
type Project struct {
	// Name is the project name with spaces flattened to underscores.
	Name string
	// Dir is the absolute project directory. Only set by Resolve.
	Dir string
	// Chip is the effective target chip.
	Chip chips.Chip
	// FamilyID is the chip's UF2 bootloader family identifier.
	FamilyID uint32
	// Split reports whether the device is a two-board split keyboard.
	Split bool
	// Row2Col reports the matrix wiring orientation, false by default.
	Row2Col bool
	// TemplateKey names the template folder for the chip, suffixed with
	// "_split" for split devices.
	TemplateKey string
	// UF2Key collapses stm32 variants onto their series for tools keyed
	// by UF2 family rather than exact part.
	UF2Key string
	// Features holds the firmware feature overrides derived from the
	// description.
	Features Features
}

// Load reads and parses a keyboard.toml file. Schema errors surface here,
// semantic validation happens in Resolve.
func Load(path string) (*KeyboardConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var cfg KeyboardConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// Inspect validates a device description and derives the project metadata
// without touching the filesystem. Queries that only need the chip or the
// project name use this directly.
func Inspect(cfg *KeyboardConfig) (*Project, error) {
	chip, err := resolveChip(&cfg.Keyboard)
	if err != nil {
		return nil, err
	}

	if cfg.Matrix == nil && cfg.Split == nil {
		return nil, ErrMissingMatrix
	}
	if cfg.Matrix != nil && cfg.Split != nil {
		return nil, ErrConflictingMatrix
	}

	if err := validateLayout(cfg); err != nil {
		return nil, err
	}

	if cfg.Keyboard.Name == "" {
		return nil, ErrMissingName
	}

	row2col := false
	if cfg.Matrix != nil {
		row2col = cfg.Matrix.Row2Col
	} else {
		row2col = cfg.Split.Central.Matrix.Row2Col
	}

	p := &Project{
		Name:     strings.ReplaceAll(cfg.Keyboard.Name, " ", "_"),
		Chip:     chip,
		FamilyID: chip.FamilyID(),
		Split:    cfg.Split != nil,
		Row2Col:  row2col,
		Features: deriveFeatures(cfg, row2col),
	}

	p.TemplateKey = chip.String()
	if p.Split {
		p.TemplateKey += "_split"
	}
	p.UF2Key = uf2Key(chip.String())

	return p, nil
}

// Resolve validates a device description and creates the project target
// directory. An empty targetDir defaults to the project name under the
// current directory. Directory creation failure is fatal for the caller but
// reported as an error like every other failure.
func Resolve(cfg *KeyboardConfig, targetDir string) (*Project, error) {
	p, err := Inspect(cfg)
	if err != nil {
		return nil, err
	}
	if err := p.prepareDir(targetDir); err != nil {
		return nil, err
	}
	return p, nil
}

// NewProject builds a resolved project directly from command line values,
// for initializing a project before any keyboard.toml exists. The chip and
// board rules match Inspect; split requires a chip with split support. The
// project directory is created under the current directory, named after the
// project.
func NewProject(name, board, chip string, split, row2col bool) (*Project, error) {
	if name == "" {
		return nil, ErrMissingName
	}

	k := Keyboard{Board: board, Chip: chip}
	c, err := resolveChip(&k)
	if err != nil {
		return nil, err
	}
	if split && !c.SplitSupport() {
		return nil, &SplitSupportError{Chip: c}
	}

	p := &Project{
		Name:     strings.ReplaceAll(name, " ", "_"),
		Chip:     c,
		FamilyID: c.FamilyID(),
		Split:    split,
		Row2Col:  row2col,
		Features: deriveFeatures(&KeyboardConfig{}, row2col),
	}
	p.TemplateKey = c.String()
	if split {
		p.TemplateKey += "_split"
	}
	p.UF2Key = uf2Key(c.String())

	if err := p.prepareDir(""); err != nil {
		return nil, err
	}
	return p, nil
}

// prepareDir creates the project directory and records its absolute path.
// An empty targetDir defaults to the project name under the current
// directory.
func (p *Project) prepareDir(targetDir string) error {
	if targetDir == "" {
		targetDir = p.Name
	}
	dir, err := filepath.Abs(targetDir)
	if err != nil {
		return &ProjectDirError{Dir: targetDir, Err: err}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &ProjectDirError{Dir: dir, Err: err}
	}
	p.Dir = dir
	return nil
}

// resolveChip determines the effective chip from the board and chip fields.
// Naming both is allowed only when they agree.
func resolveChip(k *Keyboard) (chips.Chip, error) {
	switch {
	case k.Board == "" && k.Chip == "":
		return 0, ErrMissingChip

	case k.Chip == "":
		board, err := chips.ParseBoard(k.Board)
		if err != nil {
			return 0, err
		}
		return board.Chip(), nil

	case k.Board == "":
		return chips.ParseChip(k.Chip)

	default:
		board, err := chips.ParseBoard(k.Board)
		if err != nil {
			return 0, err
		}
		chip, err := chips.ParseChip(k.Chip)
		if err != nil {
			return 0, err
		}
		if board.Chip() != chip {
			return 0, &ChipConflictError{Board: board, Chip: chip}
		}
		return chip, nil
	}
}

// uf2Key maps stm32 part numbers onto their series name. Other chips key by
// their own name.
func uf2Key(chip string) string {
	if strings.HasPrefix(chip, "stm32") && len(chip) >= 7 {
		return chip[:7]
	}
	return chip
}
