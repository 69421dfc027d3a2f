package status

import (
	"context"

	"github.com/level12/pyp/internal/cli/cliutil"
	"github.com/level12/pyp/internal/i18n"
	"github.com/level12/pyp/internal/infrastructure/factory"
	"github.com/level12/pyp/internal/models"
	"github.com/level12/pyp/internal/ui"
	"github.com/urfave/cli/v3"
)

type statusService interface {
	Status(ctx context.Context) (*models.ProjectStatus, error)
}

type StatusCommandFactory struct {
	services *factory.ReleaseServiceFactory
}

func NewStatusCommandFactory(services *factory.ReleaseServiceFactory) *StatusCommandFactory {
	return &StatusCommandFactory{services: services}
}

func (f *StatusCommandFactory) CreateCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:        "status",
		Usage:       t.GetMessage("status.command_usage", 0, nil),
		Description: t.GetMessage("repo_path_arg", 0, nil),
		ArgsUsage:   "[repo_path]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx = cliutil.Setup(ctx, cmd, t)
			repoPath, err := cliutil.RepoPath(cmd, 0)
			if err != nil {
				return err
			}
			svc, _, err := f.services.CreateForRepo(repoPath)
			if err != nil {
				return err
			}
			return statusAction(svc, t)(ctx, cmd)
		},
	}
}

func statusAction(svc statusService, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		status, err := svc.Status(ctx)
		if err != nil {
			return err
		}

		w := cliutil.Writer(cmd)
		ui.PrintKeyValue(w, t.GetMessage("status.name", 0, nil), status.Name)
		ui.PrintKeyValue(w, t.GetMessage("status.url", 0, nil), status.URL)
		ui.PrintKeyValue(w, t.GetMessage("status.version", 0, nil), status.Version)
		return nil
	}
}
