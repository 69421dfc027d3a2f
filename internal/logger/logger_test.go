package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestContextLogger(t *testing.T) {
	color.NoColor = true

	t.Run("falls back to the default logger", func(t *testing.T) {
		assert.Equal(t, slog.Default(), FromContext(context.Background()))
	})

	t.Run("carries attributes through the context", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := WithLogger(context.Background(), New(&buf, false, true))
		ctx = With(ctx, "version", "1.2")

		Info(ctx, "version file written")
		Debug(ctx, "hidden")

		assert.Contains(t, buf.String(), "version file written version=1.2")
		assert.NotContains(t, buf.String(), "hidden")
	})

	t.Run("error attaches the cause", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := WithLogger(context.Background(), New(&buf, false, false))

		Error(ctx, "publish failed", assert.AnError)
		Warn(ctx, "no commits")

		assert.Contains(t, buf.String(), "publish failed")
		assert.Contains(t, buf.String(), assert.AnError.Error())
		assert.Contains(t, buf.String(), "no commits")
	})
}
