package build

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
)

// Metadata is the subset of cargo workspace metadata the tool consumes.
type Metadata struct {
	Packages         []Package `json:"packages"`
	WorkspaceMembers []string  `json:"workspace_members"`
}

// Package carries one resolved package with its feature table.
type Package struct {
	Name     string              `json:"name"`
	Features map[string][]string `json:"features"`
}

// LoadMetadata runs cargo metadata in dir and parses the result. The
// dependency graph is included so feature tables of dependencies can be
// inspected.
func LoadMetadata(ctx context.Context, dir string) (*Metadata, error) {
	cargo := cargoCommand()
	if _, err := exec.LookPath(cargo); err != nil {
		return nil, fmt.Errorf("%s is not installed", cargo)
	}

	cmd := exec.CommandContext(ctx, cargo, "metadata", "--format-version", "1")
	cmd.Dir = dir
	cmd.Stderr = os.Stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("build: running cargo metadata: %w", err)
	}

	var metadata Metadata
	if err := json.Unmarshal(out, &metadata); err != nil {
		return nil, fmt.Errorf("build: parsing cargo metadata: %w", err)
	}
	if len(metadata.WorkspaceMembers) == 0 {
		return nil, fmt.Errorf("build: unable to find workspace members")
	}
	return &metadata, nil
}

// DefaultFeatures returns the default feature list of a package in the
// metadata, typically a dependency of the workspace.
func (m *Metadata) DefaultFeatures(pkg string) ([]string, error) {
	for _, p := range m.Packages {
		if p.Name != pkg {
			continue
		}
		features, ok := p.Features["default"]
		if !ok {
			return nil, fmt.Errorf("build: package %s declares no default features", pkg)
		}
		return features, nil
	}
	return nil, fmt.Errorf("build: package %s not found in cargo metadata", pkg)
}
