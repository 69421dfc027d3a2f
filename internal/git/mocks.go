package git

import (
	"context"

	"github.com/level12/pyp/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockGitService struct {
	mock.Mock
}

func (m *MockGitService) StatusLines(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockGitService) LastTag(ctx context.Context) (models.TagLookup, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.TagLookup), args.Error(1)
}

func (m *MockGitService) RootCommits(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockGitService) FirstParentLog(ctx context.Context, span models.RevisionSpan) ([]models.Commit, error) {
	args := m.Called(ctx, span)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Commit), args.Error(1)
}

func (m *MockGitService) CreateTag(ctx context.Context, name, message string) error {
	args := m.Called(ctx, name, message)
	return args.Error(0)
}

func (m *MockGitService) PushTags(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
