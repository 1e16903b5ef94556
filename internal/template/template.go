// Package template acquires and instantiates RMK project templates. A
// template is one folder of the rmk-template repository, keyed by chip name
// (with a _split suffix for split keyboards). The folder is extracted from a
// repository archive or copied from a local tree, then specialized for the
// project through placeholder substitution and a manifest feature rewrite.
package template

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/retroenv/retrogolib/log"

	"github.com/HaoboGu/rmkit/internal/build"
	"github.com/HaoboGu/rmkit/internal/config"
)

const (
	// defaultRepoURL is the repository holding one template folder per
	// chip or board key.
	defaultRepoURL = "https://github.com/HaoboGu/rmk-template"

	// defaultMappingURL maps released template versions onto repository
	// commits.
	defaultMappingURL = "https://raw.githubusercontent.com/HaoboGu/rmk-template/main/version-mapping.json"
)

// TemplateNotFoundError reports that the template repository carries no
// folder for a chip or board key.
type TemplateNotFoundError struct {
	Key string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("template: chip/board %q does not exist in the template repository", e.Key)
}

// featuresFunc loads the rmk crate's default feature list for a scaffolded
// project directory.
type featuresFunc func(ctx context.Context, dir string) ([]string, error)

// Scaffolder instantiates project templates into a project directory.
type Scaffolder struct {
	logger   *log.Logger
	client   *http.Client
	features featuresFunc

	// RepoURL and MappingURL locate the template repository. Tests point
	// them at local servers.
	RepoURL    string
	MappingURL string
}

// New creates a scaffolder logging through logger.
func New(logger *log.Logger) *Scaffolder {
	return &Scaffolder{
		logger:     logger,
		client:     &http.Client{},
		features:   rmkDefaultFeatures,
		RepoURL:    defaultRepoURL,
		MappingURL: defaultMappingURL,
	}
}

// rmkDefaultFeatures asks cargo for the default feature list of the rmk
// crate the scaffolded project depends on.
func rmkDefaultFeatures(ctx context.Context, dir string) ([]string, error) {
	meta, err := build.LoadMetadata(ctx, dir)
	if err != nil {
		return nil, err
	}
	return meta.DefaultFeatures("rmk")
}

// Fetch downloads the template repository and extracts the project's
// template folder into the project directory. The directory is recreated
// from scratch; a previously scaffolded tree is replaced wholesale.
func (s *Scaffolder) Fetch(ctx context.Context, project *config.Project, version string) error {
	url := s.archiveURL(s.resolveVersion(ctx, version))

	if err := os.RemoveAll(project.Dir); err != nil {
		return fmt.Errorf("template: cleaning %s: %w", project.Dir, err)
	}
	if err := os.MkdirAll(project.Dir, 0o755); err != nil {
		return fmt.Errorf("template: creating %s: %w", project.Dir, err)
	}

	s.logger.Info("Downloading project template",
		log.String("template", project.TemplateKey),
	)

	archive, err := s.download(ctx, url, project.Dir)
	if err != nil {
		return err
	}
	defer os.Remove(archive)

	return s.extract(archive, project.Dir, project.TemplateKey)
}

// Finalize specializes a scaffolded tree for the project: placeholder
// substitution in the template's manifest and configuration files, then the
// firmware feature rewrite when the description moved any feature off its
// default.
func (s *Scaffolder) Finalize(ctx context.Context, project *config.Project) error {
	replacements := []struct {
		ext, from, to string
	}{
		{"toml", "{{ project_name }}", project.Name},
		{"json", "{{ project_name }}", project.Name},
		{"toml", "{{ chip_name }}", project.Chip.String()},
		{"toml", "{{ uf2_key }}", project.UF2Key},
	}
	for _, r := range replacements {
		if err := replaceInDir(project.Dir, r.ext, r.from, r.to); err != nil {
			return err
		}
	}

	if project.Features.Empty() {
		return nil
	}

	s.logger.Info("Adjusting firmware features",
		log.String("disable", strings.Join(project.Features.Disable, " ")),
		log.String("enable", strings.Join(project.Features.Enable, " ")),
	)
	defaults, err := s.features(ctx, project.Dir)
	if err != nil {
		return err
	}
	return rewriteManifest(project.Dir, defaults, project.Features)
}
