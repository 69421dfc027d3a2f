package factory

import (
	"github.com/level12/pyp/internal/config"
	"github.com/level12/pyp/internal/git"
	"github.com/level12/pyp/internal/python"
	"github.com/level12/pyp/internal/runner"
	"github.com/level12/pyp/internal/services"
)

// ReleaseServiceFactory wires a ReleaseService for one repository from its
// configuration. All external commands go through the same runner.
type ReleaseServiceFactory struct {
	runner runner.Runner
}

func NewReleaseServiceFactory(r runner.Runner) *ReleaseServiceFactory {
	if r == nil {
		r = runner.WithLogging(runner.NewExecRunner())
	}
	return &ReleaseServiceFactory{runner: r}
}

func (f *ReleaseServiceFactory) CreateReleaseService(repoPath string, cfg *config.Config, opts ...services.ReleaseOption) *services.ReleaseService {
	if cfg == nil {
		cfg = config.Default()
	}

	gitSvc := git.NewGitService(f.runner, repoPath)
	project := python.NewProjectService(f.runner, repoPath,
		python.WithPython(cfg.Python),
		python.WithTwine(cfg.Twine),
		python.WithRepository(cfg.Repository),
	)

	opts = append([]services.ReleaseOption{services.WithChangelogFile(cfg.Changelog)}, opts...)
	return services.NewReleaseService(repoPath, gitSvc, project, opts...)
}

// CreateForRepo loads the repository's pyp.ini, falling back to defaults,
// and builds the service from it.
func (f *ReleaseServiceFactory) CreateForRepo(repoPath string, opts ...services.ReleaseOption) (*services.ReleaseService, *config.Config, error) {
	cfg, err := config.LoadOrDefault(repoPath)
	if err != nil {
		return nil, nil, err
	}
	return f.CreateReleaseService(repoPath, cfg, opts...), cfg, nil
}
