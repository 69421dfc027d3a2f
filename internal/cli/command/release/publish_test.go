package release

import (
	"bytes"
	"context"
	"testing"

	"github.com/level12/pyp/internal/errors"
	"github.com/level12/pyp/internal/i18n"
	"github.com/level12/pyp/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func runPublishTest(t *testing.T, build publishServiceBuilder) (string, error) {
	trans, err := i18n.NewTranslations("en")
	require.NoError(t, err)

	var out bytes.Buffer
	app := &cli.Command{
		Name:   "pyp",
		Writer: &out,
		Commands: []*cli.Command{
			{
				Name:   "publish",
				Action: publishAction(build, trans),
			},
		},
	}

	err = app.Run(context.Background(), []string{"pyp", "publish"})
	return out.String(), err
}

func TestPublishCommand_Success(t *testing.T) {
	mockService := new(MockReleaseService)
	mockService.On("Status", mock.Anything).Return(&models.ProjectStatus{
		Name:    "KegElements",
		URL:     "https://github.com/level12/keg-elements",
		Version: "0.5.3",
	}, nil)

	var progress func(models.PublishStep)
	mockService.On("Publish", mock.Anything).Run(func(args mock.Arguments) {
		for _, step := range []models.PublishStep{models.StepCleanup, models.StepBuild, models.StepPush} {
			progress(step)
		}
	}).Return(nil)

	out, err := runPublishTest(t, func(p func(models.PublishStep)) (publishService, error) {
		progress = p
		return mockService, nil
	})

	require.NoError(t, err)
	assert.Contains(t, out, "Published KegElements 0.5.3.")
	mockService.AssertExpectations(t)
}

func TestPublishCommand_PublishFails(t *testing.T) {
	mockService := new(MockReleaseService)
	mockService.On("Status", mock.Anything).Return(&models.ProjectStatus{Name: "pkg", Version: "1.0"}, nil)

	uploadErr := errors.NewExecutionError(&errors.ExecError{
		Executable: "twine",
		Args:       []string{"upload", "dist/pkg-1.0.tar.gz"},
		ExitCode:   1,
		Stderr:     "403 Forbidden",
	})
	mockService.On("Publish", mock.Anything).Return(uploadErr)

	out, err := runPublishTest(t, func(func(models.PublishStep)) (publishService, error) {
		return mockService, nil
	})

	assert.ErrorIs(t, err, errors.ErrCommandFailed)
	assert.NotContains(t, out, "Published")
}

func TestPublishCommand_StatusFails(t *testing.T) {
	mockService := new(MockReleaseService)
	mockService.On("Status", mock.Anything).Return(nil, errors.NewMetadataError(""))

	_, err := runPublishTest(t, func(func(models.PublishStep)) (publishService, error) {
		return mockService, nil
	})

	assert.ErrorIs(t, err, errors.ErrMetadata)
	mockService.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestPublishCommand_BuildFails(t *testing.T) {
	_, err := runPublishTest(t, func(func(models.PublishStep)) (publishService, error) {
		return nil, errors.ErrConfigSectionMissing
	})

	assert.ErrorIs(t, err, errors.ErrConfigSectionMissing)
}
