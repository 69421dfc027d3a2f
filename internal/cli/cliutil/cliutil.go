// Package cliutil holds the pieces every pyp command shares: logging
// setup from the global flags, the output writer and the repo_path argument.
package cliutil

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/level12/pyp/internal/errors"
	"github.com/level12/pyp/internal/i18n"
	"github.com/level12/pyp/internal/logger"
	"github.com/urfave/cli/v3"
)

const (
	FlagDebug   = "debug"
	FlagVerbose = "verbose"
	FlagLang    = "lang"
)

// GlobalFlags are declared on the root command.
func GlobalFlags(t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  FlagDebug,
			Usage: t.GetMessage("debug_flag", 0, nil),
		},
		&cli.BoolFlag{
			Name:  FlagVerbose,
			Usage: t.GetMessage("verbose_flag", 0, nil),
		},
		&cli.StringFlag{
			Name:  FlagLang,
			Usage: t.GetMessage("lang_flag", 0, nil),
		},
	}
}

// Setup applies the global flags: logger level and output language.
func Setup(ctx context.Context, cmd *cli.Command, t *i18n.Translations) context.Context {
	root := cmd.Root()
	logger.Initialize(root.Bool(FlagDebug), root.Bool(FlagVerbose))

	if lang := root.String(FlagLang); lang != "" && t != nil {
		if err := t.SetLanguage(lang); err != nil {
			logger.Warn(ctx, "unsupported language, keeping the default", "lang", lang)
		}
	}

	return logger.WithLogger(ctx, slog.Default())
}

// Writer is where command output goes.
func Writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// RepoPath reads the optional repo_path positional argument at index,
// defaulting to the current directory.
func RepoPath(cmd *cli.Command, index int) (string, error) {
	path := cmd.Args().Get(index)
	if path == "" {
		path = "."
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.ErrFileSystem.WithError(err).WithContext("path", path)
	}
	return abs, nil
}
