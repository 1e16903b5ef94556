package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/HaoboGu/rmkit/pkg/chips"
)

// Resolution failures with no variable parts. Everything the user needs is
// already in the message.
var (
	ErrMissingChip = errors.New(
		"config: either 'board' or 'chip' must be specified in keyboard.toml")
	ErrMissingMatrix = errors.New(
		"config: either 'matrix' or 'split' section must be specified in keyboard.toml")
	ErrConflictingMatrix = errors.New(
		"config: 'matrix' and 'split' cannot both be specified in keyboard.toml")
	ErrMissingName = errors.New(
		"config: 'keyboard.name' must be specified in keyboard.toml")
)

// ChipConflictError reports a device description naming both a board and a
// chip that disagree. The message includes the chip the board implies so the
// user knows which field to drop.
type ChipConflictError struct {
	Board chips.Board
	Chip  chips.Chip
}

func (e *ChipConflictError) Error() string {
	return fmt.Sprintf("config: board %q is built around chip %s but chip %q was also specified, drop one of the two",
		e.Board, e.Board.Chip(), e.Chip)
}

// SplitSupportError reports a split keyboard requested on a chip whose
// firmware support does not cover split operation. The message lists the
// chips that do.
type SplitSupportError struct {
	Chip chips.Chip
}

func (e *SplitSupportError) Error() string {
	var supported []string
	for _, c := range chips.All() {
		if c.SplitSupport() {
			supported = append(supported, c.String())
		}
	}
	return fmt.Sprintf("config: chip %s does not support split keyboards, chips that do: %s",
		e.Chip, strings.Join(supported, ", "))
}

// ProjectDirError reports a failure to create the project target directory.
type ProjectDirError struct {
	Dir string
	Err error
}

func (e *ProjectDirError) Error() string {
	return fmt.Sprintf("config: creating project directory %s: %v", e.Dir, e.Err)
}

func (e *ProjectDirError) Unwrap() error { return e.Err }

// LayoutError reports a structural problem in the layout section, such as a
// keymap whose dimensions disagree with the declared matrix size.
type LayoutError struct {
	Reason string
}

func (e *LayoutError) Error() string {
	return "config: layout: " + e.Reason
}

// KeymapError reports a key action that failed validation, locating it by
// layer, row and column.
type KeymapError struct {
	Layer  int
	Row    int
	Col    int
	Action string
	Err    error
}

func (e *KeymapError) Error() string {
	return fmt.Sprintf("config: keymap action %q at layer %d row %d col %d: %v",
		e.Action, e.Layer, e.Row, e.Col, e.Err)
}

func (e *KeymapError) Unwrap() error { return e.Err }
