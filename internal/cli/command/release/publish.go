package release

import (
	"context"

	"github.com/level12/pyp/internal/cli/cliutil"
	"github.com/level12/pyp/internal/i18n"
	"github.com/level12/pyp/internal/infrastructure/factory"
	"github.com/level12/pyp/internal/models"
	"github.com/level12/pyp/internal/services"
	"github.com/level12/pyp/internal/ui"
	"github.com/urfave/cli/v3"
)

type publishService interface {
	Status(ctx context.Context) (*models.ProjectStatus, error)
	Publish(ctx context.Context) error
}

// publishServiceBuilder creates the service once the progress callback
// exists, so publish steps can drive the spinner.
type publishServiceBuilder func(progress func(models.PublishStep)) (publishService, error)

type PublishCommandFactory struct {
	services *factory.ReleaseServiceFactory
}

func NewPublishCommandFactory(services *factory.ReleaseServiceFactory) *PublishCommandFactory {
	return &PublishCommandFactory{services: services}
}

func (f *PublishCommandFactory) CreateCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:        "publish",
		Usage:       t.GetMessage("publish.command_usage", 0, nil),
		Description: t.GetMessage("repo_path_arg", 0, nil),
		ArgsUsage:   "[repo_path]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx = cliutil.Setup(ctx, cmd, t)
			repoPath, err := cliutil.RepoPath(cmd, 0)
			if err != nil {
				return err
			}
			build := func(progress func(models.PublishStep)) (publishService, error) {
				svc, _, err := f.services.CreateForRepo(repoPath, services.WithProgress(progress))
				if err != nil {
					return nil, err
				}
				return svc, nil
			}
			return publishAction(build, t)(ctx, cmd)
		},
	}
}

func publishAction(build publishServiceBuilder, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		var spin *ui.SmartSpinner
		svc, err := build(func(step models.PublishStep) {
			if spin != nil {
				spin.UpdateMessage(t.GetMessage("publish.step_"+string(step), 0, nil))
			}
		})
		if err != nil {
			return err
		}

		project, err := svc.Status(ctx)
		if err != nil {
			return err
		}

		w := cliutil.Writer(cmd)
		return ui.WithSpinner(w, t.GetMessage("publish.spinner", 0, map[string]interface{}{
			"Version": project.Version,
		}), func(s *ui.SmartSpinner) error {
			spin = s
			if err := svc.Publish(ctx); err != nil {
				return err
			}
			s.Success(t.GetMessage("publish.success", 0, map[string]interface{}{
				"Name":    project.Name,
				"Version": project.Version,
			}))
			return nil
		})
	}
}
