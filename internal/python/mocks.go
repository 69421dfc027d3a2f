package python

import (
	"context"

	"github.com/level12/pyp/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) Status(ctx context.Context) (*models.ProjectStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProjectStatus), args.Error(1)
}

func (m *MockProjectService) Check(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockProjectService) Build(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockProjectService) Upload(ctx context.Context, files []string) error {
	return m.Called(ctx, files).Error(0)
}
