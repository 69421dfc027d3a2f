package git

import (
	"context"
	"strings"

	"github.com/level12/pyp/internal/errors"
	"github.com/level12/pyp/internal/models"
	"github.com/level12/pyp/internal/runner"
)

const (
	gitBin = "git"

	// git describe exits with 128 when no tag is reachable from HEAD.
	describeNoTagsExitCode = 128

	fieldSep = "\x1f"
)

// GitService runs git queries against a single repository.
type GitService struct {
	run *runner.Scoped
}

func NewGitService(r runner.Runner, repoPath string) *GitService {
	return &GitService{run: runner.InDir(r, repoPath)}
}

// StatusLines returns the porcelain status lines; an empty result means a
// clean working tree.
func (s *GitService) StatusLines(ctx context.Context) ([]string, error) {
	res, err := s.run.Run(ctx, gitBin, "status", "--porcelain")
	if err != nil {
		return nil, err
	}
	return splitLines(res.Stdout), nil
}

// LastTag looks up the most recent tag reachable from HEAD. A repository
// without tags is a normal outcome, reported through TagLookup.Found.
func (s *GitService) LastTag(ctx context.Context) (models.TagLookup, error) {
	res, err := s.run.RunAccepting(ctx, []int{0, describeNoTagsExitCode},
		gitBin, "describe", "--tags", "--abbrev=0")
	if err != nil {
		return models.TagLookup{}, err
	}
	if res.ExitCode == describeNoTagsExitCode {
		return models.TagLookup{}, nil
	}

	tag := strings.TrimSpace(res.Stdout)
	if tag == "" {
		return models.TagLookup{}, errors.ErrUnexpectedGitOutput.
			WithContext("command", "git describe --tags --abbrev=0")
	}
	return models.TagLookup{Name: tag, Found: true}, nil
}

// RootCommits lists the commits reachable from HEAD that have no parents.
func (s *GitService) RootCommits(ctx context.Context) ([]string, error) {
	res, err := s.run.Run(ctx, gitBin, "rev-list", "--max-parents=0", "HEAD")
	if err != nil {
		return nil, err
	}
	return splitLines(res.Stdout), nil
}

// FirstParentLog returns the commits of span following only first parents,
// newest first.
func (s *GitService) FirstParentLog(ctx context.Context, span models.RevisionSpan) ([]models.Commit, error) {
	res, err := s.run.Run(ctx, gitBin, "log", "--first-parent",
		"--pretty=format:%h%x1f%s", span.String())
	if err != nil {
		return nil, err
	}

	lines := splitLines(res.Stdout)
	commits := make([]models.Commit, 0, len(lines))
	for _, line := range lines {
		hash, subject, ok := strings.Cut(line, fieldSep)
		if !ok {
			return nil, errors.ErrUnexpectedGitOutput.
				WithContext("command", "git log --first-parent").
				WithContext("line", line)
		}
		commits = append(commits, models.Commit{ShortHash: hash, Subject: subject})
	}
	return commits, nil
}

// CreateTag creates an annotated tag on HEAD.
func (s *GitService) CreateTag(ctx context.Context, name, message string) error {
	_, err := s.run.Run(ctx, gitBin, "tag", "-a", name, "-m", message)
	return err
}

func (s *GitService) PushTags(ctx context.Context) error {
	_, err := s.run.Run(ctx, gitBin, "push", "--tags")
	return err
}

func splitLines(out string) []string {
	out = strings.TrimRight(out, "\r\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}
