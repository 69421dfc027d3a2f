// Package changelog renders release sections in reStructuredText and
// splices them into an existing changelog document, newest first.
package changelog

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/level12/pyp/internal/errors"
	"github.com/level12/pyp/internal/logger"
	"github.com/level12/pyp/internal/models"
)

const (
	DefaultFile = "changelog.rst"

	// Header opens every changelog document.
	Header = "Changelog\n=========\n"
)

// FormatEntries renders one bullet per commit: "- <subject> (<hash>_)".
func FormatEntries(commits []models.Commit) string {
	var sb strings.Builder
	for _, c := range commits {
		fmt.Fprintf(&sb, "- %s (%s_)\n", c.Subject, c.ShortHash)
	}
	return sb.String()
}

// FormatLinks renders the link targets the bullets refer to.
func FormatLinks(projectURL string, commits []models.Commit) string {
	var sb strings.Builder
	for _, c := range commits {
		fmt.Fprintf(&sb, ".. _%s: %s\n", c.ShortHash, models.CommitURL(projectURL, c.ShortHash))
	}
	return sb.String()
}

// ComposeSection renders the titled block for one release.
func ComposeSection(section models.ReleaseSection) string {
	title := fmt.Sprintf("%s released %s", section.Version, section.Date.Format(models.ReleaseDateLayout))

	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", utf8.RuneCountInString(title)))
	sb.WriteString("\n")

	if len(section.Commits) > 0 {
		sb.WriteString("\n")
		sb.WriteString(FormatEntries(section.Commits))
		sb.WriteString("\n")
		sb.WriteString(FormatLinks(section.ProjectURL, section.Commits))
	}
	return sb.String()
}

// Merge places section right after the document header, ahead of every
// earlier release. It reports false when the header is missing.
func Merge(document, section string) (string, bool) {
	at := headerIndex(document)
	if at < 0 {
		return "", false
	}
	rest := document[:at] + document[at+len(Header):]

	var sb strings.Builder
	sb.Grow(len(document) + len(section) + 2)
	sb.WriteString(Header)
	sb.WriteString("\n")
	sb.WriteString(section)
	sb.WriteString("\n")
	sb.WriteString(rest)
	return sb.String(), true
}

// headerIndex finds the first Header that starts a line.
func headerIndex(document string) int {
	if strings.HasPrefix(document, Header) {
		return 0
	}
	if i := strings.Index(document, "\n"+Header); i >= 0 {
		return i + 1
	}
	return -1
}

// Composer rewrites one changelog file.
type Composer struct {
	path string
}

func NewComposer(path string) *Composer {
	return &Composer{path: path}
}

// Update reads the whole document, then rewrites it in place with the new
// section inserted. Running it twice stacks two sections.
func (c *Composer) Update(ctx context.Context, section models.ReleaseSection) error {
	log := logger.FromContext(ctx)

	info, err := os.Stat(c.path)
	if err != nil {
		return errors.ErrFileSystem.WithError(err).WithContext("path", c.path)
	}

	content, err := os.ReadFile(c.path)
	if err != nil {
		return errors.ErrFileSystem.WithError(err).WithContext("path", c.path)
	}

	merged, ok := Merge(string(content), ComposeSection(section))
	if !ok {
		return errors.NewContentError(c.path, Header)
	}

	if err := os.WriteFile(c.path, []byte(merged), info.Mode().Perm()); err != nil {
		return errors.ErrFileSystem.WithError(err).WithContext("path", c.path)
	}

	log.Info("changelog updated",
		"file", c.path,
		"version", section.Version,
		"count", len(section.Commits))

	return nil
}
