package factory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/level12/pyp/internal/config"
	"github.com/level12/pyp/internal/errors"
	"github.com/level12/pyp/internal/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReleaseServiceFactory_CreateReleaseService(t *testing.T) {
	t.Run("uses the configured python executable", func(t *testing.T) {
		repo := t.TempDir()
		mockRunner := new(runner.MockRunner)
		mockRunner.On("Run", mock.Anything, mock.MatchedBy(func(c runner.Command) bool {
			return c.Name == "python3.12" && c.Dir == repo
		})).Return(&runner.Result{Stdout: "pkg\nhttps://example.com/pkg\n1.0\n"}, nil)

		cfg := config.Default()
		cfg.Python = "python3.12"

		svc := NewReleaseServiceFactory(mockRunner).CreateReleaseService(repo, cfg)
		status, err := svc.Status(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "pkg", status.Name)
		assert.Equal(t, "1.0", status.Version)
		mockRunner.AssertExpectations(t)
	})

	t.Run("falls back to defaults without a config", func(t *testing.T) {
		repo := t.TempDir()
		mockRunner := new(runner.MockRunner)
		mockRunner.On("Run", mock.Anything, mock.MatchedBy(func(c runner.Command) bool {
			return c.Name == "python"
		})).Return(&runner.Result{Stdout: "pkg\nhttps://example.com\n2.0\n"}, nil)

		svc := NewReleaseServiceFactory(mockRunner).CreateReleaseService(repo, nil)
		status, err := svc.Status(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "2.0", status.Version)
	})
}

func TestReleaseServiceFactory_CreateForRepo(t *testing.T) {
	t.Run("reads pyp.ini", func(t *testing.T) {
		repo := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(repo, config.FileName),
			[]byte("[pyp]\nsource_dir = mypkg\ntwine = /opt/twine\n"), 0o644))

		svc, cfg, err := NewReleaseServiceFactory(new(runner.MockRunner)).CreateForRepo(repo)

		require.NoError(t, err)
		assert.NotNil(t, svc)
		assert.Equal(t, "mypkg", cfg.SourceDir)
		assert.Equal(t, "/opt/twine", cfg.Twine)
	})

	t.Run("surfaces a broken pyp.ini", func(t *testing.T) {
		repo := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(repo, config.FileName),
			[]byte("[other]\nkey = value\n"), 0o644))

		svc, cfg, err := NewReleaseServiceFactory(new(runner.MockRunner)).CreateForRepo(repo)

		assert.ErrorIs(t, err, errors.ErrConfigSectionMissing)
		assert.Nil(t, svc)
		assert.Nil(t, cfg)
	})
}
