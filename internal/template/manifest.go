package template

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/pelletier/go-toml/v2"

	"github.com/HaoboGu/rmkit/internal/config"
)

// ErrNoRMKDependency reports a scaffolded manifest without a detailed rmk
// dependency entry to rewrite.
var ErrNoRMKDependency = errors.New("template: no valid rmk dependency found in Cargo.toml")

// rewriteManifest pins the rmk dependency's feature set in the scaffolded
// Cargo.toml: default features off, the feature list set to the crate's
// defaults minus the disabled ones, merged with the template's own entries
// and the enabled overrides, sorted and deduplicated.
func rewriteManifest(dir string, defaults []string, features config.Features) error {
	path := filepath.Join(dir, "Cargo.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("template: reading %s: %w", path, err)
	}

	var manifest map[string]any
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return fmt.Errorf("template: parsing %s: %w", path, err)
	}

	deps, ok := manifest["dependencies"].(map[string]any)
	if !ok {
		return ErrNoRMKDependency
	}
	// A bare version string carries no feature list; only the detailed
	// form can be rewritten.
	rmk, ok := deps["rmk"].(map[string]any)
	if !ok {
		return ErrNoRMKDependency
	}

	list := featureList(rmk["features"])
	for _, f := range defaults {
		if !slices.Contains(features.Disable, f) {
			list = append(list, f)
		}
	}
	list = append(list, features.Enable...)
	slices.Sort(list)
	list = slices.Compact(list)

	rmk["features"] = list
	rmk["default-features"] = false

	out, err := toml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("template: serializing %s: %w", path, err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("template: writing %s: %w", path, err)
	}
	return nil
}

// featureList converts a decoded TOML feature array into strings. Anything
// that is not a string array yields an empty list.
func featureList(raw any) []string {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	list := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			list = append(list, s)
		}
	}
	return list
}
