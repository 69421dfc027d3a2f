package version

import (
	"context"
	"fmt"

	"github.com/level12/pyp/internal/cli/cliutil"
	"github.com/level12/pyp/internal/i18n"
	appVersion "github.com/level12/pyp/internal/version"
	"github.com/urfave/cli/v3"
)

type VersionCommandFactory struct{}

func NewVersionCommandFactory() *VersionCommandFactory {
	return &VersionCommandFactory{}
}

func (f *VersionCommandFactory) CreateCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: t.GetMessage("version.command_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, err := fmt.Fprintln(cliutil.Writer(cmd), t.GetMessage("version.output", 0, map[string]interface{}{
				"Version": appVersion.Version,
			}))
			return err
		},
	}
}
