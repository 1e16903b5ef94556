// Package pipeline orchestrates the firmware build workflow: resolve the
// device description once, compile with cargo, then package the compiler
// output into the chip's flashable container. Split keyboards run the
// workflow twice, once per half.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/retroenv/retrogolib/log"

	"github.com/HaoboGu/rmkit/internal/build"
	"github.com/HaoboGu/rmkit/internal/config"
	"github.com/HaoboGu/rmkit/internal/convert"
	"github.com/HaoboGu/rmkit/pkg/chips"
)

// Split halves build as separate cargo binary targets with fixed names.
const (
	sideCentral    = "central"
	sidePeripheral = "peripheral"
)

// builder compiles the project and selects the artifact to package.
type builder interface {
	Build(ctx context.Context, bin string) (*build.Artifact, error)
}

// converter packages a compiler output into the chip's container format.
type converter interface {
	Convert(ctx context.Context, req convert.Request) (string, error)
}

// Pipeline runs the complete build and packaging workflow.
type Pipeline struct {
	logger    *log.Logger
	builder   builder
	converter converter
}

// New creates a pipeline running real cargo builds. Verbosity above 1
// echoes external command lines and compiler diagnostics.
func New(logger *log.Logger, verbosity int) *Pipeline {
	b := build.New(logger)
	b.Verbosity = verbosity
	c := convert.New(logger)
	c.Verbosity = verbosity

	return &Pipeline{
		logger:    logger,
		builder:   b,
		converter: c,
	}
}

// Run builds and packages the firmware described by the keyboard.toml at
// cfgPath. A split keyboard produces one image per half, named
// {project}_central and {project}_peripheral; the halves are independent, a
// finished half stays on disk even when the other one fails and both
// failures are reported together.
func (p *Pipeline) Run(ctx context.Context, cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	project, err := config.Inspect(cfg)
	if err != nil {
		return err
	}

	p.logger.Info("Building firmware",
		log.String("project", project.Name),
		log.Stringer("chip", project.Chip),
		log.Bool("split", project.Split),
	)

	if !project.Split {
		return p.runPass(ctx, project, "", project.Name)
	}

	var errs []error
	for _, side := range []string{sideCentral, sidePeripheral} {
		if err := p.runPass(ctx, project, side, project.Name+"_"+side); err != nil {
			errs = append(errs, fmt.Errorf("pipeline: %s half: %w", side, err))
		}
	}
	return errors.Join(errs...)
}

// runPass compiles one binary target and packages its output under name.
// An empty bin selects the project's sole executable target.
func (p *Pipeline) runPass(ctx context.Context, project *config.Project, bin, name string) error {
	artifact, err := p.builder.Build(ctx, bin)
	if err != nil {
		return err
	}
	file, err := artifact.File()
	if err != nil {
		return err
	}

	out, err := p.converter.Convert(ctx, convert.Request{
		File:       file,
		Executable: artifact.Executable != "",
		Chip:       project.Chip,
		Name:       name,
	})
	if err != nil {
		return err
	}

	p.logger.Info("Firmware ready",
		log.String("file", out),
		log.Uint32("family", chips.Lookup(project.Chip).FamilyID),
	)
	return nil
}
