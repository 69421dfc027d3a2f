package git

import (
	"context"
	"testing"

	"github.com/level12/pyp/internal/errors"
	"github.com/level12/pyp/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResolveSpan(t *testing.T) {
	ctx := context.Background()

	t.Run("uses the last tag", func(t *testing.T) {
		mockGit := new(MockGitService)
		mockGit.On("LastTag", mock.Anything).Return(models.TagLookup{Name: "release-0.1", Found: true}, nil)

		span, err := ResolveSpan(ctx, mockGit)

		require.NoError(t, err)
		assert.Equal(t, "release-0.1..HEAD", span.String())
		mockGit.AssertNotCalled(t, "RootCommits", mock.Anything)
	})

	t.Run("falls back to the single root commit", func(t *testing.T) {
		mockGit := new(MockGitService)
		mockGit.On("LastTag", mock.Anything).Return(models.TagLookup{}, nil)
		mockGit.On("RootCommits", mock.Anything).Return([]string{"deadbeef"}, nil)

		span, err := ResolveSpan(ctx, mockGit)

		require.NoError(t, err)
		assert.Equal(t, "deadbeef..HEAD", span.String())
		mockGit.AssertExpectations(t)
	})

	t.Run("several root commits are rejected", func(t *testing.T) {
		mockGit := new(MockGitService)
		mockGit.On("LastTag", mock.Anything).Return(models.TagLookup{}, nil)
		mockGit.On("RootCommits", mock.Anything).Return([]string{"aaa", "bbb"}, nil)

		_, err := ResolveSpan(ctx, mockGit)

		assert.ErrorIs(t, err, errors.ErrMultipleRootCommits)
		assert.ErrorIs(t, err, errors.ErrInternal)
	})

	t.Run("tag lookup failure is propagated", func(t *testing.T) {
		mockGit := new(MockGitService)
		mockGit.On("LastTag", mock.Anything).Return(models.TagLookup{}, errors.ErrCommandFailed)

		_, err := ResolveSpan(ctx, mockGit)

		assert.ErrorIs(t, err, errors.ErrExecution)
	})
}

func TestResolveSpan_RealRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("untagged repository", func(t *testing.T) {
		repo := setupTestRepo(t)
		repo.commit("a.txt", "a", "initial")
		root := repo.git("rev-parse", "HEAD")
		repo.commit("a.txt", "ab", "second")

		span, err := ResolveSpan(ctx, repo.service())

		require.NoError(t, err)
		assert.Equal(t, root+"..HEAD", span.String())
	})

	t.Run("tagged repository", func(t *testing.T) {
		repo := setupTestRepo(t)
		repo.commit("a.txt", "a", "initial")
		repo.git("tag", "release-0.1")
		repo.commit("a.txt", "ab", "second")

		span, err := ResolveSpan(ctx, repo.service())

		require.NoError(t, err)
		assert.Equal(t, "release-0.1..HEAD", span.String())
	})

	t.Run("disconnected histories", func(t *testing.T) {
		repo := setupTestRepo(t)
		repo.commit("a.txt", "a", "initial")
		repo.git("checkout", "--orphan", "other")
		repo.git("rm", "-rf", ".")
		repo.commit("b.txt", "b", "other root")
		repo.git("checkout", "master")
		repo.git("merge", "--no-edit", "--allow-unrelated-histories", "other")

		_, err := ResolveSpan(ctx, repo.service())

		assert.ErrorIs(t, err, errors.ErrMultipleRootCommits)
	})
}
