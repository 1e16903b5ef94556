package template

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// replaceInDir substitutes one placeholder in every file with the given
// extension under dir.
func replaceInDir(dir, ext, from, to string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("template: walking %s: %w", dir, err)
		}
		if d.IsDir() || filepath.Ext(path) != "."+ext {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("template: reading %s: %w", path, err)
		}
		replaced := strings.ReplaceAll(string(data), from, to)
		if replaced == string(data) {
			return nil
		}
		if err := os.WriteFile(path, []byte(replaced), 0o644); err != nil {
			return fmt.Errorf("template: writing %s: %w", path, err)
		}
		return nil
	})
}

// CopyConfig places the device description and the Vial layout into the
// project. The layout must be well-formed JSON.
func CopyConfig(keyboardToml, vialJSON, dir string) error {
	layout, err := os.ReadFile(vialJSON)
	if err != nil {
		return fmt.Errorf("template: reading %s: %w", vialJSON, err)
	}
	if !json.Valid(layout) {
		return fmt.Errorf("template: %s is not valid JSON", vialJSON)
	}

	if err := copyFile(keyboardToml, filepath.Join(dir, "keyboard.toml")); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "vial.json"), layout, 0o644); err != nil {
		return fmt.Errorf("template: writing vial.json: %w", err)
	}
	return nil
}
