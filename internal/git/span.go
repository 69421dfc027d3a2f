package git

import (
	"context"
	"strings"

	"github.com/level12/pyp/internal/errors"
	"github.com/level12/pyp/internal/logger"
	"github.com/level12/pyp/internal/models"
)

type spanGitService interface {
	LastTag(ctx context.Context) (models.TagLookup, error)
	RootCommits(ctx context.Context) ([]string, error)
}

// ResolveSpan returns the range of commits released since the last tag, or
// since the repository's first commit when nothing has been tagged yet.
// Disconnected histories with several root commits are rejected.
func ResolveSpan(ctx context.Context, g spanGitService) (models.RevisionSpan, error) {
	log := logger.FromContext(ctx)

	tag, err := g.LastTag(ctx)
	if err != nil {
		return models.RevisionSpan{}, err
	}
	if tag.Found {
		span := models.NewRevisionSpan(tag.Name)
		log.Debug("revision span resolved from tag", "tag", tag.Name, "span", span.String())
		return span, nil
	}

	roots, err := g.RootCommits(ctx)
	if err != nil {
		return models.RevisionSpan{}, err
	}

	switch len(roots) {
	case 1:
		span := models.NewRevisionSpan(roots[0])
		log.Debug("revision span resolved from root commit", "span", span.String())
		return span, nil
	case 0:
		return models.RevisionSpan{}, errors.ErrUnexpectedGitOutput.
			WithContext("command", "git rev-list --max-parents=0 HEAD")
	default:
		return models.RevisionSpan{}, errors.ErrMultipleRootCommits.
			WithContext("roots", strings.Join(roots, ", "))
	}
}
