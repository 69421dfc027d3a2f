package completion

import (
	"bytes"
	"context"
	"testing"

	"github.com/level12/pyp/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func runCompletion(t *testing.T, shell string) string {
	t.Helper()
	trans, err := i18n.NewTranslations("en")
	require.NoError(t, err)

	var out bytes.Buffer
	app := &cli.Command{
		Name:     "pyp",
		Writer:   &out,
		Commands: []*cli.Command{NewCompletionCommandFactory().CreateCommand(trans)},
	}
	require.NoError(t, app.Run(context.Background(), []string{"pyp", "completion", shell}))
	return out.String()
}

func TestCompletionCommand(t *testing.T) {
	t.Run("bash", func(t *testing.T) {
		out := runCompletion(t, "bash")
		assert.Contains(t, out, "complete -o bashdefault -o default -o nospace -F _pyp_bash_autocomplete pyp")
	})

	t.Run("zsh", func(t *testing.T) {
		out := runCompletion(t, "zsh")
		assert.Contains(t, out, "#compdef pyp")
		assert.Contains(t, out, "compdef _pyp pyp")
	})
}
