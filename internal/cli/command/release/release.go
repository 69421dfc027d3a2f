package release

import (
	"context"
	"strings"
	"time"

	"github.com/level12/pyp/internal/cli/cliutil"
	"github.com/level12/pyp/internal/cli/completion_helper"
	"github.com/level12/pyp/internal/config"
	"github.com/level12/pyp/internal/errors"
	"github.com/level12/pyp/internal/i18n"
	"github.com/level12/pyp/internal/infrastructure/factory"
	"github.com/level12/pyp/internal/logger"
	"github.com/level12/pyp/internal/models"
	"github.com/level12/pyp/internal/ui"
	"github.com/urfave/cli/v3"
)

type releaseService interface {
	Release(ctx context.Context, sourceDir, version string, date time.Time) error
}

type ReleaseCommandFactory struct {
	services *factory.ReleaseServiceFactory
}

func NewReleaseCommandFactory(services *factory.ReleaseServiceFactory) *ReleaseCommandFactory {
	return &ReleaseCommandFactory{services: services}
}

func (f *ReleaseCommandFactory) CreateCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:        "release",
		Usage:       t.GetMessage("release.command_usage", 0, nil),
		Description: t.GetMessage("repo_path_arg", 0, nil),
		ArgsUsage:   "<version> [repo_path]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "source-dir",
				Aliases: []string{"s"},
				Usage:   t.GetMessage("release.source_dir_flag", 0, nil),
			},
			&cli.StringFlag{
				Name:    "date",
				Aliases: []string{"d"},
				Usage:   t.GetMessage("release.date_flag", 0, nil),
			},
		},
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx = cliutil.Setup(ctx, cmd, t)
			repoPath, err := cliutil.RepoPath(cmd, 1)
			if err != nil {
				return err
			}
			svc, cfg, err := f.services.CreateForRepo(repoPath)
			if err != nil {
				return err
			}
			return releaseAction(svc, cfg, t, time.Now)(ctx, cmd)
		},
	}
}

func releaseAction(svc releaseService, cfg *config.Config, t *i18n.Translations, now func() time.Time) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		version := strings.TrimSpace(cmd.Args().First())
		if version == "" {
			return errors.NewAppError(errors.TypeConfiguration, t.GetMessage("release.version_required", 0, nil), nil)
		}

		date, err := releaseDate(cmd.String("date"), now)
		if err != nil {
			return err
		}

		if cfg.PathFile != "" {
			logger.Debug(ctx, "using configuration", "path", cfg.PathFile)
		}
		sourceDir, err := cfg.ResolveSourceDir(cmd.String("source-dir"))
		if err != nil {
			return err
		}

		if err := svc.Release(ctx, sourceDir, version, date); err != nil {
			return err
		}

		w := cliutil.Writer(cmd)
		ui.PrintSuccess(w, t.GetMessage("release.success", 0, map[string]interface{}{
			"Version": version,
		}))
		ui.PrintInfo(w, t.GetMessage("release.next_steps", 0, nil))
		return nil
	}
}

func releaseDate(value string, now func() time.Time) (time.Time, error) {
	if value == "" {
		return now(), nil
	}
	date, err := time.ParseInLocation(models.ReleaseDateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, errors.ErrInvalidReleaseDate.WithError(err).WithContext("date", value)
	}
	return date, nil
}
