package template

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/HaoboGu/rmkit/internal/config"
)

// rewrittenManifest is the subset of a rewritten Cargo.toml the tests check.
type rewrittenManifest struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Dependencies struct {
		RMK struct {
			Version         string   `toml:"version"`
			DefaultFeatures *bool    `toml:"default-features"`
			Features        []string `toml:"features"`
		} `toml:"rmk"`
	} `toml:"dependencies"`
}

func rewriteFixture(t *testing.T, content string, defaults []string, features config.Features) (rewrittenManifest, error) {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	err := rewriteManifest(dir, defaults, features)
	if err != nil {
		return rewrittenManifest{}, err
	}

	data, readErr := os.ReadFile(filepath.Join(dir, "Cargo.toml"))
	if readErr != nil {
		t.Fatal(readErr)
	}
	var m rewrittenManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		t.Fatalf("rewritten manifest does not parse: %v", err)
	}
	return m, nil
}

func TestRewriteManifest(t *testing.T) {
	content := `[package]
name = "corne"

[dependencies]
embassy-nrf = "0.3"
rmk = { version = "0.7", features = ["nrf52840_ble", "async_matrix"] }
`
	m, err := rewriteFixture(t, content,
		[]string{"col2row", "defmt", "storage", "vial"},
		config.Features{Disable: []string{"col2row"}, Enable: []string{"controller"}},
	)
	if err != nil {
		t.Fatalf("rewriteManifest returned error: %v", err)
	}

	rmk := m.Dependencies.RMK
	if rmk.DefaultFeatures == nil || *rmk.DefaultFeatures {
		t.Fatalf("default-features = %v, want false", rmk.DefaultFeatures)
	}
	if rmk.Version != "0.7" {
		t.Fatalf("version = %q, want the original 0.7", rmk.Version)
	}

	want := []string{"async_matrix", "controller", "defmt", "nrf52840_ble", "storage", "vial"}
	if len(rmk.Features) != len(want) {
		t.Fatalf("features = %v, want %v", rmk.Features, want)
	}
	for i, f := range want {
		if rmk.Features[i] != f {
			t.Fatalf("features = %v, want %v", rmk.Features, want)
		}
	}
	if m.Package.Name != "corne" {
		t.Fatalf("package name = %q, want untouched corne", m.Package.Name)
	}
}

func TestRewriteManifestDeduplicates(t *testing.T) {
	content := `[dependencies]
rmk = { version = "0.7", features = ["defmt"] }
`
	m, err := rewriteFixture(t, content,
		[]string{"defmt", "storage"},
		config.Features{Disable: []string{"storage"}},
	)
	if err != nil {
		t.Fatalf("rewriteManifest returned error: %v", err)
	}

	rmk := m.Dependencies.RMK
	if len(rmk.Features) != 1 || rmk.Features[0] != "defmt" {
		t.Fatalf("features = %v, want [defmt]", rmk.Features)
	}
}

func TestRewriteManifestRequiresDetailedDependency(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bare version string", content: "[dependencies]\nrmk = \"0.7\"\n"},
		{name: "no rmk dependency", content: "[dependencies]\nembassy-nrf = \"0.3\"\n"},
		{name: "no dependencies section", content: "[package]\nname = \"x\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rewriteFixture(t, tt.content, []string{"defmt"}, config.Features{Disable: []string{"defmt"}})
			if !errors.Is(err, ErrNoRMKDependency) {
				t.Fatalf("error = %v, want %v", err, ErrNoRMKDependency)
			}
		})
	}
}
