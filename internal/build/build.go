// Package build invokes the cargo toolchain and selects the firmware
// artifact to package. Cargo's JSON message stream is drained concurrently
// with the running process so a large message volume can never fill the pipe
// buffer and deadlock the build.
package build

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/google/shlex"
	"github.com/retroenv/retrogolib/log"
)

// cargoArgsEnv lets users pass extra cargo arguments, split like a shell
// command line.
const cargoArgsEnv = "RMKIT_CARGO_ARGS"

// Builder runs release builds in a firmware project directory.
type Builder struct {
	logger *log.Logger

	// Dir is the project directory, the process working directory when
	// empty.
	Dir string
	// Verbosity above 1 adds cargo -v flags and echoes compiler
	// diagnostics to stderr.
	Verbosity int
}

// New creates a builder logging through logger.
func New(logger *log.Logger) *Builder {
	return &Builder{logger: logger}
}

// Build compiles the project in release mode and returns the single artifact
// matching bin. An empty bin selects the project's sole executable target.
func (b *Builder) Build(ctx context.Context, bin string) (*Artifact, error) {
	cargo := cargoCommand()
	if _, err := exec.LookPath(cargo); err != nil {
		return nil, fmt.Errorf("%s is not installed", cargo)
	}

	args := []string{"build", "--release"}
	if bin != "" {
		args = append(args, "--bin", bin)
	}
	if b.Verbosity > 1 {
		args = append(args, "-"+strings.Repeat("v", b.Verbosity-1))
	}
	if extra := os.Getenv(cargoArgsEnv); extra != "" {
		words, err := shlex.Split(extra)
		if err != nil {
			return nil, fmt.Errorf("build: parsing %s: %w", cargoArgsEnv, err)
		}
		args = append(args, words...)
	}
	args = append(args, "--message-format=json")

	cmd := exec.CommandContext(ctx, cargo, args...)
	cmd.Dir = b.Dir
	cmd.Stderr = os.Stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("build: opening cargo output pipe: %w", err)
	}

	b.logger.Debug("Running cargo",
		log.String("command", cargo+" "+strings.Join(args, " ")),
	)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("build: starting %s: %w", cargo, err)
	}

	// Drain all messages while cargo runs, wait afterwards. Waiting first
	// would deadlock once the pipe buffer fills.
	type drained struct {
		messages []message
		err      error
	}
	done := make(chan drained, 1)
	go func() {
		messages, err := readMessages(stdout)
		done <- drained{messages: messages, err: err}
	}()

	output := <-done
	waitErr := cmd.Wait()

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return nil, &BuildFailedError{ExitCode: exitErr.ExitCode()}
		}
		return nil, fmt.Errorf("build: running %s: %w", cargo, waitErr)
	}
	if output.err != nil {
		return nil, fmt.Errorf("build: reading cargo output: %w", output.err)
	}

	if b.Verbosity > 1 {
		for _, m := range output.messages {
			if m.Reason == reasonCompilerMessage && m.Message != nil {
				fmt.Fprint(os.Stderr, m.Message.Rendered)
			}
		}
	}

	artifact, err := selectArtifact(output.messages, bin)
	if err != nil {
		return nil, err
	}

	b.logger.Debug("Selected build artifact",
		log.String("target", artifact.Target.Name),
		log.String("executable", artifact.Executable),
	)
	return artifact, nil
}

// readMessages decodes the JSON message stream until it ends.
func readMessages(r io.Reader) ([]message, error) {
	var messages []message
	dec := json.NewDecoder(r)
	for {
		var m message
		if err := dec.Decode(&m); err != nil {
			if errors.Is(err, io.EOF) {
				return messages, nil
			}
			return nil, err
		}
		messages = append(messages, m)
	}
}

// selectArtifact applies the selection rule to a drained message stream:
// with a target name, the artifact of that name carrying a direct
// executable; without one, the artifact whose target kind is "bin". Exactly
// one artifact may match.
func selectArtifact(messages []message, bin string) (*Artifact, error) {
	var selected *Artifact
	var names []string

	for i := range messages {
		m := &messages[i]
		if m.Reason != reasonCompilerArtifact || !matchesTarget(m, bin) {
			continue
		}
		names = append(names, m.Target.Name)
		if selected == nil {
			a := m.artifact()
			selected = &a
		}
	}

	if len(names) > 1 {
		return nil, &AmbiguousArtifactError{Targets: names}
	}
	if selected == nil {
		return nil, ErrNoArtifact
	}
	return selected, nil
}

func matchesTarget(m *message, bin string) bool {
	if bin != "" {
		return m.Target.Name == bin && m.Executable != ""
	}
	return slices.Contains(m.Target.Kind, "bin")
}

// cargoCommand returns the cargo executable, honoring the CARGO override
// cargo itself sets when running wrappers and subcommands.
func cargoCommand() string {
	if cargo := os.Getenv("CARGO"); cargo != "" {
		return cargo
	}
	return "cargo"
}
