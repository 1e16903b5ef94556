package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"

	"github.com/HaoboGu/rmkit/internal/build"
	"github.com/HaoboGu/rmkit/internal/config"
	"github.com/HaoboGu/rmkit/internal/convert"
	"github.com/HaoboGu/rmkit/pkg/chips"
)

const unibodyConfig = `
[keyboard]
name = "corne"
chip = "nrf52840"

[matrix]
rows = 4
cols = 6
input_pins = ["P0_03", "P0_28", "P0_29", "P0_30"]
output_pins = ["P0_31", "P0_02", "P1_15", "P1_13", "P1_11", "P0_10"]
`

const splitConfig = `
[keyboard]
name = "corne"
chip = "nrf52840"

[split]
connection = "ble"

[split.central]
rows = 4
cols = 6

[split.central.matrix]
input_pins = ["P0_03", "P0_28", "P0_29", "P0_30"]
output_pins = ["P0_31", "P0_02", "P1_15", "P1_13", "P1_11", "P0_10"]

[[split.peripheral]]
rows = 4
cols = 6
col_offset = 6

[split.peripheral.matrix]
input_pins = ["P0_03", "P0_28", "P0_29", "P0_30"]
output_pins = ["P0_31", "P0_02", "P1_15", "P1_13", "P1_11", "P0_10"]
`

// stubBuilder returns canned artifacts per binary target and records the
// targets requested.
type stubBuilder struct {
	artifacts map[string]*build.Artifact
	errs      map[string]error
	bins      []string
}

func (s *stubBuilder) Build(_ context.Context, bin string) (*build.Artifact, error) {
	s.bins = append(s.bins, bin)
	if err := s.errs[bin]; err != nil {
		return nil, err
	}
	return s.artifacts[bin], nil
}

// stubConverter claims success for every request and records them.
type stubConverter struct {
	requests []convert.Request
	err      error
}

func (s *stubConverter) Convert(_ context.Context, req convert.Request) (string, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return "", s.err
	}
	return req.Name + ".uf2", nil
}

func binArtifact(name string) *build.Artifact {
	return &build.Artifact{
		Target:     build.Target{Name: name, Kind: []string{"bin"}},
		Filenames:  []string{"/build/" + name},
		Executable: "/build/" + name,
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keyboard.toml")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNew(t *testing.T) {
	p := New(log.NewTestLogger(t), 0)
	assert.NotNil(t, p.builder)
	assert.NotNil(t, p.converter)
}

func TestRunUnibody(t *testing.T) {
	b := &stubBuilder{artifacts: map[string]*build.Artifact{"": binArtifact("rmk-corne")}}
	c := &stubConverter{}
	p := &Pipeline{logger: log.NewTestLogger(t), builder: b, converter: c}

	assert.NoError(t, p.Run(context.Background(), writeConfig(t, unibodyConfig)))

	assert.Len(t, b.bins, 1)
	assert.Equal(t, "", b.bins[0])
	assert.Len(t, c.requests, 1)

	req := c.requests[0]
	assert.Equal(t, "corne", req.Name)
	assert.Equal(t, chips.NRF52840, req.Chip)
	assert.True(t, req.Executable)
	assert.Equal(t, "/build/rmk-corne", req.File)
}

func TestRunSplit(t *testing.T) {
	b := &stubBuilder{artifacts: map[string]*build.Artifact{
		"central":    binArtifact("central"),
		"peripheral": binArtifact("peripheral"),
	}}
	c := &stubConverter{}
	p := &Pipeline{logger: log.NewTestLogger(t), builder: b, converter: c}

	assert.NoError(t, p.Run(context.Background(), writeConfig(t, splitConfig)))

	assert.Len(t, b.bins, 2)
	assert.Equal(t, "central", b.bins[0])
	assert.Equal(t, "peripheral", b.bins[1])
	assert.Len(t, c.requests, 2)
	assert.Equal(t, "corne_central", c.requests[0].Name)
	assert.Equal(t, "corne_peripheral", c.requests[1].Name)
}

func TestRunSplitHalfFailure(t *testing.T) {
	b := &stubBuilder{
		artifacts: map[string]*build.Artifact{"central": binArtifact("central")},
		errs:      map[string]error{"peripheral": build.ErrNoArtifact},
	}
	c := &stubConverter{}
	p := &Pipeline{logger: log.NewTestLogger(t), builder: b, converter: c}

	err := p.Run(context.Background(), writeConfig(t, splitConfig))
	assert.True(t, errors.Is(err, build.ErrNoArtifact))
	assert.ErrorContains(t, err, "peripheral")

	// The central half finished and stays finished.
	assert.Len(t, c.requests, 1)
	assert.Equal(t, "corne_central", c.requests[0].Name)
}

func TestRunSplitBothHalvesFail(t *testing.T) {
	b := &stubBuilder{errs: map[string]error{
		"central":    &build.BuildFailedError{ExitCode: 101},
		"peripheral": build.ErrNoArtifact,
	}}
	c := &stubConverter{}
	p := &Pipeline{logger: log.NewTestLogger(t), builder: b, converter: c}

	err := p.Run(context.Background(), writeConfig(t, splitConfig))
	assert.Error(t, err)
	assert.ErrorContains(t, err, "central half")
	assert.ErrorContains(t, err, "peripheral half")

	var failed *build.BuildFailedError
	assert.True(t, errors.As(err, &failed))
	assert.True(t, errors.Is(err, build.ErrNoArtifact))
}

func TestRunResolutionError(t *testing.T) {
	b := &stubBuilder{}
	p := &Pipeline{logger: log.NewTestLogger(t), builder: b, converter: &stubConverter{}}

	cfg := `
[keyboard]
name = "corne"

[matrix]
rows = 1
cols = 1
input_pins = ["P0_00"]
output_pins = ["P0_01"]
`
	err := p.Run(context.Background(), writeConfig(t, cfg))
	assert.True(t, errors.Is(err, config.ErrMissingChip))
	assert.Len(t, b.bins, 0)
}

func TestRunLibraryArtifact(t *testing.T) {
	b := &stubBuilder{artifacts: map[string]*build.Artifact{"": {
		Target:    build.Target{Name: "rmk", Kind: []string{"lib"}},
		Filenames: []string{"/build/librmk.rlib"},
	}}}
	c := &stubConverter{}
	p := &Pipeline{logger: log.NewTestLogger(t), builder: b, converter: c}

	assert.NoError(t, p.Run(context.Background(), writeConfig(t, unibodyConfig)))

	req := c.requests[0]
	assert.False(t, req.Executable)
	assert.Equal(t, "/build/librmk.rlib", req.File)
}
