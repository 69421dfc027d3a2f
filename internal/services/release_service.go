package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/level12/pyp/internal/changelog"
	"github.com/level12/pyp/internal/errors"
	"github.com/level12/pyp/internal/git"
	"github.com/level12/pyp/internal/logger"
	"github.com/level12/pyp/internal/models"
	"github.com/level12/pyp/internal/python"
)

const (
	VersionFile = "version.py"

	buildDir = "build"
	distDir  = "dist"
)

// releaseGitService defines only the git queries the release cycle needs.
type releaseGitService interface {
	StatusLines(ctx context.Context) ([]string, error)
	LastTag(ctx context.Context) (models.TagLookup, error)
	RootCommits(ctx context.Context) ([]string, error)
	FirstParentLog(ctx context.Context, span models.RevisionSpan) ([]models.Commit, error)
	CreateTag(ctx context.Context, name, message string) error
	PushTags(ctx context.Context) error
}

type projectService interface {
	Status(ctx context.Context) (*models.ProjectStatus, error)
	Check(ctx context.Context) error
	Build(ctx context.Context) error
	Upload(ctx context.Context, files []string) error
}

// ReleaseService runs the verify, release and publish steps against one
// repository. It keeps no state between commands: everything it needs is
// read back from setup.py, git and the files it writes.
type ReleaseService struct {
	repoPath      string
	git           releaseGitService
	project       projectService
	changelogFile string
	progress      func(models.PublishStep)
}

type ReleaseOption func(*ReleaseService)

// WithChangelogFile sets the changelog path relative to the repository root.
func WithChangelogFile(name string) ReleaseOption {
	return func(s *ReleaseService) {
		if name != "" {
			s.changelogFile = name
		}
	}
}

// WithProgress registers a callback invoked before each publish step.
func WithProgress(fn func(models.PublishStep)) ReleaseOption {
	return func(s *ReleaseService) {
		s.progress = fn
	}
}

func NewReleaseService(repoPath string, gitSvc releaseGitService, project projectService, opts ...ReleaseOption) *ReleaseService {
	s := &ReleaseService{
		repoPath:      repoPath,
		git:           gitSvc,
		project:       project,
		changelogFile: changelog.DefaultFile,
		progress:      func(models.PublishStep) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Verify checks that the repository holds a setup.py and has a clean
// working tree.
func (s *ReleaseService) Verify(ctx context.Context) error {
	log := logger.FromContext(ctx)

	setupPath := filepath.Join(s.repoPath, python.SetupFile)
	if _, err := os.Stat(setupPath); err != nil {
		if os.IsNotExist(err) {
			return errors.NewMissingDescriptorError(s.repoPath)
		}
		return errors.ErrFileSystem.WithError(err).WithContext("path", setupPath)
	}

	lines, err := s.git.StatusLines(ctx)
	if err != nil {
		return err
	}
	if len(lines) > 0 {
		log.Debug("working tree has changes", "count", len(lines))
		return errors.ErrRepoNotClean.WithContext("changes", lines)
	}

	log.Info("repository verified", "stage", models.StageVerified, "repo", s.repoPath)
	return nil
}

// Status reads the project metadata.
func (s *ReleaseService) Status(ctx context.Context) (*models.ProjectStatus, error) {
	return s.project.Status(ctx)
}

// Release writes the new version and prepends a changelog section listing
// the first-parent commits since the last release. A failure after the
// version file is written leaves that file updated.
func (s *ReleaseService) Release(ctx context.Context, sourceDir, version string, date time.Time) error {
	ctx = logger.With(ctx, "version", version)
	log := logger.FromContext(ctx)
	start := time.Now()

	if err := s.Verify(ctx); err != nil {
		return err
	}

	if err := s.writeVersionFile(sourceDir, version); err != nil {
		return err
	}
	log.Info("version file written", "stage", models.StageVersionWritten, "source_dir", sourceDir)

	project, err := s.project.Status(ctx)
	if err != nil {
		return err
	}

	span, err := git.ResolveSpan(ctx, s.git)
	if err != nil {
		return err
	}

	commits, err := s.git.FirstParentLog(ctx, span)
	if err != nil {
		return err
	}
	if len(commits) == 0 {
		log.Warn("no commits since the last release", "span", span.String())
	}

	composer := changelog.NewComposer(filepath.Join(s.repoPath, s.changelogFile))
	err = composer.Update(ctx, models.ReleaseSection{
		Version:    version,
		Date:       date,
		ProjectURL: project.URL,
		Commits:    commits,
	})
	if err != nil {
		return err
	}

	log.Info("release prepared",
		"stage", models.StageChangelogUpdated,
		"span", span.String(),
		"count", len(commits),
		"duration_ms", time.Since(start).Milliseconds())

	return nil
}

// Publish builds, uploads and tags the version currently declared by
// setup.py. The first failing step stops the sequence; nothing is retried.
func (s *ReleaseService) Publish(ctx context.Context) error {
	start := time.Now()

	project, err := s.project.Status(ctx)
	if err != nil {
		return err
	}
	ctx = logger.With(ctx, "version", project.Version)
	log := logger.FromContext(ctx)

	s.progress(models.StepCleanup)
	for _, dir := range []string{buildDir, distDir} {
		path := filepath.Join(s.repoPath, dir)
		if err := os.RemoveAll(path); err != nil {
			return errors.ErrFileSystem.WithError(err).WithContext("path", path)
		}
	}

	s.progress(models.StepCheck)
	if err := s.project.Check(ctx); err != nil {
		return err
	}

	s.progress(models.StepBuild)
	if err := s.project.Build(ctx); err != nil {
		return err
	}

	artifacts, err := s.distArtifacts()
	if err != nil {
		return err
	}
	log.Debug("artifacts built", "count", len(artifacts))

	s.progress(models.StepUpload)
	if err := s.project.Upload(ctx, artifacts); err != nil {
		return err
	}

	s.progress(models.StepTag)
	if err := s.git.CreateTag(ctx, project.Version, fmt.Sprintf("Release %s", project.Version)); err != nil {
		return err
	}

	s.progress(models.StepPush)
	if err := s.git.PushTags(ctx); err != nil {
		return err
	}

	log.Info("release published",
		"stage", models.StagePublished,
		"name", project.Name,
		"duration_ms", time.Since(start).Milliseconds())

	return nil
}

func (s *ReleaseService) writeVersionFile(sourceDir, version string) error {
	path := filepath.Join(s.repoPath, sourceDir, VersionFile)
	content := fmt.Sprintf("VERSION = '%s'\n", version)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.ErrFileSystem.WithError(err).WithContext("path", path)
	}
	return nil
}

// distArtifacts lists the files under dist/, relative to the repository
// root and sorted so uploads are deterministic.
func (s *ReleaseService) distArtifacts() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.repoPath, distDir))
	if err != nil {
		return nil, errors.ErrFileSystem.WithError(err).WithContext("path", distDir)
	}

	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			files = append(files, filepath.Join(distDir, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, errors.ErrNoArtifacts
	}
	sort.Strings(files)
	return files, nil
}
