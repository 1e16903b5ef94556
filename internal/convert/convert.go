// Package convert turns a compiled firmware object into the container
// format the target chip's bootloader consumes. The chain of stages is
// driven by the chip registry, not hardcoded: an ELF may pass through an
// Intel HEX or raw binary intermediate before being packaged into a UF2
// image tagged with the chip's family identifier.
package convert

import (
	"context"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/log"

	"github.com/HaoboGu/rmkit/pkg/chips"
	"github.com/HaoboGu/rmkit/pkg/uf2"
)

// Request describes one firmware image to package.
type Request struct {
	// File is the compiler output to convert.
	File string
	// Executable reports whether File is a directly flashable image.
	// Library objects walk the same chain but skip the final byte
	// output.
	Executable bool
	// Chip selects the container chain and the family identifier.
	Chip chips.Chip
	// Name is the output base name; each stage appends its extension.
	Name string
}

// ConversionFailedError reports a failed conversion stage together with the
// output path it attempted to produce.
type ConversionFailedError struct {
	Format chips.Format
	Path   string
	Err    error
}

func (e *ConversionFailedError) Error() string {
	return fmt.Sprintf("convert: converting to %s at %s: %v", e.Format, e.Path, e.Err)
}

func (e *ConversionFailedError) Unwrap() error { return e.Err }

type objcopyFunc func(ctx context.Context, in, format, out string) error

// Converter walks a chip's firmware container chain.
type Converter struct {
	logger  *log.Logger
	objcopy objcopyFunc

	// Verbosity above 1 echoes external converter command lines.
	Verbosity int
}

// New creates a converter logging through logger.
func New(logger *log.Logger) *Converter {
	c := &Converter{logger: logger}
	c.objcopy = c.runObjcopy
	return c
}

// Convert runs the chip's chain on the compiler output and returns the path
// of the final image. A chip whose chain ends at the compiler's own format
// needs no conversion; the input is the package.
func (c *Converter) Convert(ctx context.Context, req Request) (string, error) {
	info := chips.Lookup(req.Chip)

	current := req.File
	for i := 1; i < len(info.Formats); i++ {
		format := info.Formats[i]
		out := req.Name + "." + format.Ext()

		switch format {
		case chips.Hex:
			if err := c.objcopy(ctx, current, "ihex", out); err != nil {
				return "", &ConversionFailedError{Format: format, Path: out, Err: err}
			}

		case chips.Bin:
			if err := c.objcopy(ctx, current, "binary", out); err != nil {
				return "", &ConversionFailedError{Format: format, Path: out, Err: err}
			}

		case chips.Uf2:
			if !req.Executable {
				// Library objects carry no flashable image. The
				// chain still ran so intermediate outputs exist
				// for inspection.
				c.logger.Warn("Skipping bootloader image for library output",
					log.String("file", current),
				)
				continue
			}
			if err := c.packageUF2(info.Formats[i-1], current, out, info); err != nil {
				return "", &ConversionFailedError{Format: format, Path: out, Err: err}
			}

		default:
			return "", &ConversionFailedError{Format: format, Path: out,
				Err: fmt.Errorf("no converter stage for this format")}
		}

		c.logger.Info("Converted firmware",
			log.Stringer("format", format),
			log.String("file", out),
		)
		current = out
	}

	return current, nil
}

// packageUF2 wraps an intermediate container into a UF2 image tagged with
// the chip's family identifier. Partial output is removed on failure so a
// broken image can never be mistaken for a flashable one.
func (c *Converter) packageUF2(from chips.Format, in, out string, info chips.Info) error {
	outFile, err := os.Create(out)
	if err != nil {
		return err
	}

	switch from {
	case chips.Hex:
		var inFile *os.File
		if inFile, err = os.Open(in); err == nil {
			err = uf2.FromHex(outFile, inFile, info.FamilyID)
			inFile.Close()
		}

	case chips.Bin:
		var data []byte
		if data, err = os.ReadFile(in); err == nil {
			err = uf2.FromBin(outFile, data, info.FlashBase, info.FamilyID)
		}

	default:
		err = fmt.Errorf("no packager from %s to uf2", from)
	}

	if err != nil {
		outFile.Close()
		os.Remove(out)
		return err
	}
	return outFile.Close()
}
