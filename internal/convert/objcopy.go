package convert

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/retroenv/retrogolib/log"
)

const objcopyName = "llvm-objcopy"

// runObjcopy converts an object file with the external llvm-objcopy tool.
// format is objcopy's output target, "ihex" or "binary".
func (c *Converter) runObjcopy(ctx context.Context, in, format, out string) error {
	if _, err := exec.LookPath(objcopyName); err != nil {
		return fmt.Errorf("%s is not installed", objcopyName)
	}

	args := []string{in, "-O", format, out}
	if c.Verbosity > 1 {
		c.logger.Debug("Running objcopy",
			log.String("command", objcopyName+" "+strings.Join(args, " ")),
		)
	}

	cmd := exec.CommandContext(ctx, objcopyName, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %s: %w", objcopyName, strings.TrimSpace(string(output)), err)
	}
	return nil
}
