package build

import (
	"path/filepath"
)

// Message reasons emitted by cargo's JSON message stream.
const (
	reasonCompilerArtifact = "compiler-artifact"
	reasonCompilerMessage  = "compiler-message"
)

// Target identifies one build target inside a cargo package.
type Target struct {
	Name string   `json:"name"`
	Kind []string `json:"kind"`
}

// diagnostic is the part of a compiler diagnostic the tool consumes.
type diagnostic struct {
	Rendered string `json:"rendered"`
}

// message is one line of cargo's JSON message stream. Artifact fields sit at
// the top level; diagnostics nest under "message".
type message struct {
	Reason     string      `json:"reason"`
	PackageID  string      `json:"package_id"`
	Target     Target      `json:"target"`
	Filenames  []string    `json:"filenames"`
	Executable string      `json:"executable"`
	Message    *diagnostic `json:"message"`
}

// Artifact is one compiler-produced build output, the unit the packaging
// pipeline consumes.
type Artifact struct {
	PackageID  string
	Target     Target
	Filenames  []string
	Executable string
}

func (m *message) artifact() Artifact {
	return Artifact{
		PackageID:  m.PackageID,
		Target:     m.Target,
		Filenames:  m.Filenames,
		Executable: m.Executable,
	}
}

// libraryExts are the output extensions accepted for targets without a
// direct executable.
var libraryExts = map[string]bool{
	".rlib":  true,
	".a":     true,
	".so":    true,
	".dylib": true,
}

// File returns the path to package. Targets without a direct executable fall
// back to their first declared output file, which cargo documents as the
// compiled library object; anything else fails loudly instead of packaging
// the wrong file.
func (a *Artifact) File() (string, error) {
	if a.Executable != "" {
		return a.Executable, nil
	}
	if len(a.Filenames) == 0 {
		return "", &UnexpectedArtifactError{Target: a.Target.Name}
	}
	path := a.Filenames[0]
	if !libraryExts[filepath.Ext(path)] {
		return "", &UnexpectedArtifactError{Target: a.Target.Name, Path: path}
	}
	return path, nil
}
