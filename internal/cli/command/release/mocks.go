package release

import (
	"context"
	"time"

	"github.com/level12/pyp/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockReleaseService struct {
	mock.Mock
}

func (m *MockReleaseService) Status(ctx context.Context) (*models.ProjectStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProjectStatus), args.Error(1)
}

func (m *MockReleaseService) Release(ctx context.Context, sourceDir, version string, date time.Time) error {
	args := m.Called(ctx, sourceDir, version, date)
	return args.Error(0)
}

func (m *MockReleaseService) Publish(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
