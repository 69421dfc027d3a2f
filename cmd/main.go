package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/level12/pyp/internal/cli/cliutil"
	"github.com/level12/pyp/internal/cli/command/completion"
	"github.com/level12/pyp/internal/cli/command/release"
	"github.com/level12/pyp/internal/cli/command/status"
	versionCmd "github.com/level12/pyp/internal/cli/command/version"
	"github.com/level12/pyp/internal/cli/registry"
	"github.com/level12/pyp/internal/i18n"
	"github.com/level12/pyp/internal/infrastructure/factory"
	"github.com/level12/pyp/internal/runner"
	"github.com/level12/pyp/internal/ui"
	"github.com/level12/pyp/internal/version"
	"github.com/urfave/cli/v3"
)

const langEnv = "PYP_LANG"

func main() {
	translations, err := i18n.NewTranslations(language())
	if err != nil {
		log.Fatalf("error loading translations: %v", err)
	}

	app, err := initializeApp(translations)
	if err != nil {
		log.Fatalf("error starting pyp: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		ui.HandleAppError(os.Stderr, err, translations)
		os.Exit(1)
	}
}

func language() string {
	if lang := os.Getenv(langEnv); lang != "" {
		return lang
	}
	return "en"
}

func initializeApp(translations *i18n.Translations) (*cli.Command, error) {
	services := factory.NewReleaseServiceFactory(runner.WithLogging(runner.NewExecRunner()))

	registerCommand := registry.NewRegistry(translations)
	factories := []struct {
		name    string
		factory registry.CommandFactory
	}{
		{"version", versionCmd.NewVersionCommandFactory()},
		{"status", status.NewStatusCommandFactory(services)},
		{"release", release.NewReleaseCommandFactory(services)},
		{"publish", release.NewPublishCommandFactory(services)},
		{"completion", completion.NewCompletionCommandFactory()},
	}
	for _, f := range factories {
		if err := registerCommand.Register(f.name, f.factory); err != nil {
			return nil, fmt.Errorf("registering command '%s': %w", f.name, err)
		}
	}

	return &cli.Command{
		Name:                  "pyp",
		Usage:                 translations.GetMessage("app_usage", 0, nil),
		Version:               version.FullVersion(),
		Description:           translations.GetMessage("app_description", 0, nil),
		Flags:                 cliutil.GlobalFlags(translations),
		Commands:              registerCommand.CreateCommands(),
		EnableShellCompletion: true,
	}, nil
}
