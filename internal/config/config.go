package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/level12/pyp/internal/changelog"
	"github.com/level12/pyp/internal/errors"
	"github.com/level12/pyp/internal/python"
	"gopkg.in/ini.v1"
)

const (
	FileName    = "pyp.ini"
	SectionName = "pyp"
)

// Config is the [pyp] section of a repository's pyp.ini.
type Config struct {
	// SourceDir is the package directory, relative to the repository root,
	// that holds version.py.
	SourceDir  string
	Changelog  string
	Python     string
	Twine      string
	Repository string

	PathFile string
}

// Load reads <repoPath>/pyp.ini. A missing file is not an error: it
// returns nil so callers can tell "no configuration" from a broken one.
func Load(repoPath string) (*Config, error) {
	path := filepath.Join(repoPath, FileName)

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.ErrConfigInvalid.WithError(err).WithContext("path", path)
	}

	file, err := ini.Load(path)
	if err != nil {
		return nil, errors.ErrConfigInvalid.WithError(err).WithContext("path", path)
	}

	section, err := file.GetSection(SectionName)
	if err != nil {
		return nil, errors.ErrConfigSectionMissing.WithContext("path", path)
	}

	return &Config{
		SourceDir:  section.Key("source_dir").String(),
		Changelog:  section.Key("changelog").MustString(changelog.DefaultFile),
		Python:     section.Key("python").MustString(python.DefaultPython),
		Twine:      section.Key("twine").MustString(python.DefaultTwine),
		Repository: section.Key("repository").String(),
		PathFile:   path,
	}, nil
}

// Default is the configuration used when a repository has no pyp.ini.
func Default() *Config {
	return &Config{
		Changelog: changelog.DefaultFile,
		Python:    python.DefaultPython,
		Twine:     python.DefaultTwine,
	}
}

// LoadOrDefault is Load with the defaults substituted for a missing file.
func LoadOrDefault(repoPath string) (*Config, error) {
	cfg, err := Load(repoPath)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return Default(), nil
	}
	return cfg, nil
}

// ResolveSourceDir picks the flag value over the configured one and
// rejects paths outside the repository.
func (c *Config) ResolveSourceDir(override string) (string, error) {
	dir := c.SourceDir
	if override != "" {
		dir = override
	}
	if dir == "" {
		return "", errors.ErrSourceDirMissing
	}
	if filepath.IsAbs(dir) || !filepath.IsLocal(dir) {
		return "", errors.NewAppError(errors.TypeConfiguration,
			fmt.Sprintf("source_dir must be a relative path inside the repository: %s", dir), nil)
	}
	return dir, nil
}
