// Package python drives the packaging tools of a Python project: setup.py
// for metadata and builds, twine for uploads.
package python

import (
	"context"
	"strings"

	"github.com/level12/pyp/internal/errors"
	"github.com/level12/pyp/internal/logger"
	"github.com/level12/pyp/internal/models"
	"github.com/level12/pyp/internal/runner"
)

const (
	DefaultPython = "python"
	DefaultTwine  = "twine"

	SetupFile = "setup.py"
)

type ProjectService struct {
	run        *runner.Scoped
	python     string
	twine      string
	repository string
}

type Option func(*ProjectService)

func WithPython(bin string) Option {
	return func(s *ProjectService) {
		if bin != "" {
			s.python = bin
		}
	}
}

func WithTwine(bin string) Option {
	return func(s *ProjectService) {
		if bin != "" {
			s.twine = bin
		}
	}
}

// WithRepository selects a named package index from ~/.pypirc.
func WithRepository(name string) Option {
	return func(s *ProjectService) {
		s.repository = name
	}
}

func NewProjectService(r runner.Runner, repoPath string, opts ...Option) *ProjectService {
	s := &ProjectService{
		run:    runner.InDir(r, repoPath),
		python: DefaultPython,
		twine:  DefaultTwine,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Status asks setup.py for the project name, url and version.
func (s *ProjectService) Status(ctx context.Context) (*models.ProjectStatus, error) {
	res, err := s.setup(ctx, "--name", "--url", "--version")
	if err != nil {
		return nil, err
	}

	raw := res.Stdout
	var lines []string
	if trimmed := strings.TrimRight(raw, "\r\n"); trimmed != "" {
		lines = strings.Split(trimmed, "\n")
	}
	if len(lines) != 3 {
		return nil, errors.NewMetadataError(raw)
	}

	status := &models.ProjectStatus{
		Name:    strings.TrimSpace(lines[0]),
		URL:     strings.TrimSpace(lines[1]),
		Version: strings.TrimSpace(lines[2]),
	}

	logger.Debug(ctx, "project status read",
		"name", status.Name,
		"url", status.URL,
		"version", status.Version)

	return status, nil
}

// Check validates the package metadata and that the long description
// renders as reStructuredText.
func (s *ProjectService) Check(ctx context.Context) error {
	_, err := s.setup(ctx, "check", "--metadata", "--restructuredtext", "--strict")
	return err
}

// Build produces the source distribution and wheel under dist/.
func (s *ProjectService) Build(ctx context.Context) error {
	_, err := s.setup(ctx, "sdist", "bdist_wheel")
	return err
}

// Upload sends the given artifacts to the package index.
func (s *ProjectService) Upload(ctx context.Context, files []string) error {
	args := []string{"upload"}
	if s.repository != "" {
		args = append(args, "--repository", s.repository)
	}
	args = append(args, files...)

	_, err := s.run.Run(ctx, s.twine, args...)
	return err
}

func (s *ProjectService) setup(ctx context.Context, args ...string) (*runner.Result, error) {
	return s.run.Run(ctx, s.python, append([]string{SetupFile}, args...)...)
}
