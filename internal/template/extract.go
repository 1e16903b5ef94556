package template

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/log"
)

// extract unpacks the archive folder matching key into dir. stm32 keys
// cascade onto their series folder and finally the generic stm32 template,
// the repository does not carry every part number.
func (s *Scaffolder) extract(archive, dir, key string) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("template: opening archive: %w", err)
	}
	defer r.Close()

	found, err := extractFolder(&r.Reader, dir, key)
	if err != nil || found {
		return err
	}

	if strings.HasPrefix(key, "stm32") {
		if len(key) > 7 {
			if found, err = extractFolder(&r.Reader, dir, key[:7]); err != nil || found {
				return err
			}
		}

		s.logger.Warn("No template for this chip, using the generic stm32 template, further edits may be needed",
			log.String("key", key),
		)
		if found, err = extractFolder(&r.Reader, dir, "stm32"); err != nil || found {
			return err
		}
	}

	return &TemplateNotFoundError{Key: key}
}

// extractFolder writes every archive entry under the named second-level
// folder into dir, reporting whether any entry matched. The first path
// segment is the archive root the forge generates; entries that would
// escape dir abort the extraction.
func extractFolder(r *zip.Reader, dir, folder string) (bool, error) {
	found := false
	for _, f := range r.File {
		name := strings.TrimSuffix(f.Name, "/")
		if name == "" || !filepath.IsLocal(filepath.FromSlash(name)) {
			return found, fmt.Errorf("template: invalid entry path %q in archive", f.Name)
		}

		segments := strings.Split(name, "/")
		if len(segments) < 2 || segments[1] != folder {
			continue
		}
		found = true

		out := filepath.Join(dir, filepath.FromSlash(path.Join(segments[2:]...)))
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(out, 0o755); err != nil {
				return found, fmt.Errorf("template: extracting %s: %w", f.Name, err)
			}
			continue
		}
		if err := writeEntry(f, out); err != nil {
			return found, err
		}
	}
	return found, nil
}

// writeEntry copies one archive file to disk, creating parent directories
// as needed.
func writeEntry(f *zip.File, out string) error {
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("template: extracting %s: %w", f.Name, err)
	}

	in, err := f.Open()
	if err != nil {
		return fmt.Errorf("template: extracting %s: %w", f.Name, err)
	}
	defer in.Close()

	outFile, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("template: extracting %s: %w", f.Name, err)
	}
	if _, err := io.Copy(outFile, in); err != nil {
		outFile.Close()
		return fmt.Errorf("template: extracting %s: %w", f.Name, err)
	}
	return outFile.Close()
}
