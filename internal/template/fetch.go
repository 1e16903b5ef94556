package template

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/retroenv/retrogolib/log"
)

// download stores the archive at url in a temporary file inside dir and
// returns its path. The caller removes the file; failed downloads leave
// nothing behind.
func (s *Scaffolder) download(ctx context.Context, url, dir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("template: building download request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("template: downloading %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("template: downloading %s: %s", url, resp.Status)
	}

	tmp, err := os.CreateTemp(dir, "template-*.zip")
	if err != nil {
		return "", fmt.Errorf("template: creating archive file: %w", err)
	}

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("template: storing archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("template: storing archive: %w", err)
	}
	return tmp.Name(), nil
}

// resolveVersion maps a template version onto a repository commit. An
// unknown or unreachable mapping falls back to the main branch with a
// warning; a pinned template is a convenience, not a guarantee. An empty
// version selects main directly.
func (s *Scaffolder) resolveVersion(ctx context.Context, version string) string {
	if version == "" {
		return ""
	}

	commit, err := s.lookupVersion(ctx, version)
	if err != nil {
		s.logger.Warn("Falling back to the main branch template",
			log.String("version", version),
			log.Err(err),
		)
		return ""
	}

	s.logger.Info("Pinned template commit",
		log.String("version", version),
		log.String("commit", commit),
	)
	return commit
}

// lookupVersion fetches the version mapping document and resolves version
// against it.
func (s *Scaffolder) lookupVersion(ctx context.Context, version string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.MappingURL, nil)
	if err != nil {
		return "", fmt.Errorf("building version mapping request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching version mapping: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching version mapping: %s", resp.Status)
	}

	var mapping map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&mapping); err != nil {
		return "", fmt.Errorf("parsing version mapping: %w", err)
	}

	commit, ok := mapping[version]
	if !ok {
		return "", fmt.Errorf("version %s not found in mapping", version)
	}
	return commit, nil
}

// archiveURL builds the repository archive location for a commit, or for
// the main branch when commit is empty.
func (s *Scaffolder) archiveURL(commit string) string {
	if commit == "" {
		return s.RepoURL + "/archive/refs/heads/main.zip"
	}
	return s.RepoURL + "/archive/" + commit + ".zip"
}
