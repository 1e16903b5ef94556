package build

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoArtifact is returned when the compiler finished but produced nothing
// the selection rule matches, leaving the pipeline with nothing to package.
var ErrNoArtifact = errors.New("build: could not determine the artifact to package")

// BuildFailedError reports a compiler run that exited non-zero. It takes
// precedence over artifact selection; a nominally selected artifact from a
// failed build is never packaged.
type BuildFailedError struct {
	ExitCode int
}

func (e *BuildFailedError) Error() string {
	return fmt.Sprintf("build: cargo exited with status %d", e.ExitCode)
}

// AmbiguousArtifactError reports a build where the selection rule matched
// more than one artifact. Picking either silently would package an arbitrary
// binary.
type AmbiguousArtifactError struct {
	Targets []string
}

func (e *AmbiguousArtifactError) Error() string {
	return fmt.Sprintf("build: expected exactly one matching artifact, found %d: %s",
		len(e.Targets), strings.Join(e.Targets, ", "))
}

// UnexpectedArtifactError reports a library target whose output files do not
// look like a compiled library object.
type UnexpectedArtifactError struct {
	Target string
	Path   string
}

func (e *UnexpectedArtifactError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("build: target %s produced no output files", e.Target)
	}
	return fmt.Sprintf("build: target %s output %s is neither an executable nor a library object",
		e.Target, e.Path)
}
