package completion_helper

import (
	"context"
	"fmt"

	"github.com/level12/pyp/internal/cli/cliutil"
	"github.com/urfave/cli/v3"
)

// DefaultFlagComplete lists the flags of the current command for shell completion.
func DefaultFlagComplete(_ context.Context, cmd *cli.Command) {
	w := cliutil.Writer(cmd)
	for _, f := range cmd.Flags {
		for _, name := range f.Names() {
			if len(name) == 1 {
				_, _ = fmt.Fprintln(w, "-"+name)
			} else {
				_, _ = fmt.Fprintln(w, "--"+name)
			}
		}
	}
}
