package errors

import (
	"fmt"
	"strings"
)

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeVerification  ErrorType = "VERIFICATION"
	TypeExecution     ErrorType = "EXECUTION"
	TypeMetadata      ErrorType = "METADATA"
	TypeContent       ErrorType = "CONTENT"
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if stderr, ok := e.Context["stderr"].(string); ok && stderr != "" {
			msg += fmt.Sprintf(" - %s", stderr)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on type, and on message when the target carries one. Kind
// sentinels (ErrVerification, ErrExecution...) have no message and match
// every error of their type.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	if e.Type != t.Type {
		return false
	}
	return t.Message == "" || e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// ExecError describes an external command that exited with an unaccepted
// status or could not be started at all.
type ExecError struct {
	Executable string
	Args       []string
	Dir        string
	ExitCode   int
	Stdout     string
	Stderr     string
	Err        error
}

func (e *ExecError) Error() string {
	cmdline := strings.TrimSpace(e.Executable + " " + strings.Join(e.Args, " "))
	msg := fmt.Sprintf("command %q failed with exit code %d", cmdline, e.ExitCode)
	if e.Err != nil && e.ExitCode < 0 {
		msg = fmt.Sprintf("command %q could not be run: %v", cmdline, e.Err)
	}
	return msg
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// NewExecutionError wraps an ExecError into the EXECUTION kind, keeping the
// captured output in the context so it is printed verbatim.
func NewExecutionError(execErr *ExecError) *AppError {
	return ErrCommandFailed.WithError(execErr).
		WithContext("command", execErr.Executable).
		WithContext("args", execErr.Args).
		WithContext("stdout", execErr.Stdout).
		WithContext("stderr", strings.TrimSpace(execErr.Stderr))
}

// Kind sentinels, for errors.Is matching on the category alone.
var (
	ErrVerification  = &AppError{Type: TypeVerification}
	ErrExecution     = &AppError{Type: TypeExecution}
	ErrMetadata      = &AppError{Type: TypeMetadata}
	ErrContent       = &AppError{Type: TypeContent}
	ErrConfiguration = &AppError{Type: TypeConfiguration}
	ErrInternal      = &AppError{Type: TypeInternal}
)

// Verification errors
var (
	ErrRepoNotClean = NewAppError(TypeVerification, "Git repo is not clean", nil).
			WithSuggestion("Commit or stash your changes first: git status")
)

// NewMissingDescriptorError reports a repository without setup.py at its root.
func NewMissingDescriptorError(repoPath string) *AppError {
	return NewAppError(TypeVerification,
		fmt.Sprintf(`No "setup.py" file found in source directory: %s`, repoPath), nil).
		WithContext("path", repoPath).
		WithSuggestion("Run pyp from the root of a Python package repository")
}

// Execution errors
var (
	ErrCommandFailed = NewAppError(TypeExecution, "External command failed", nil)
)

// NewMetadataError reports setup.py output that is not exactly name, url and version.
func NewMetadataError(raw string) *AppError {
	return NewAppError(TypeMetadata,
		fmt.Sprintf("Could not get name, url, and version from setup.py.  Got: %s", raw), nil).
		WithContext("output", raw).
		WithSuggestion("Make sure setup.py declares name, url and version")
}

// NewContentError reports a changelog that lacks the expected document header.
func NewContentError(path, header string) *AppError {
	return NewAppError(TypeContent,
		fmt.Sprintf("Could not find the changelog header %q in %s", header, path), nil).
		WithContext("path", path).
		WithContext("header", header).
		WithSuggestion("The changelog must start with:\n" + header)
}

// Configuration errors
var (
	ErrSourceDirMissing = NewAppError(TypeConfiguration, "Source directory is not configured", nil).
				WithSuggestion("Add source_dir to the [pyp] section of pyp.ini or pass --source-dir")

	ErrConfigSectionMissing = NewAppError(TypeConfiguration, "pyp.ini has no [pyp] section", nil).
				WithSuggestion("Add a [pyp] section to pyp.ini")

	ErrConfigInvalid = NewAppError(TypeConfiguration, "pyp.ini could not be parsed", nil)

	ErrInvalidReleaseDate = NewAppError(TypeConfiguration, "Release date must use the YYYY-MM-DD format", nil)
)

// Internal errors
var (
	ErrMultipleRootCommits = NewAppError(TypeInternal, "Repository has more than one root commit", nil).
				WithSuggestion("Disconnected histories are not supported; tag the commit the changelog should start from")

	ErrUnexpectedGitOutput = NewAppError(TypeInternal, "Unexpected git output", nil)

	ErrFileSystem = NewAppError(TypeInternal, "File system operation failed", nil)

	ErrNoArtifacts = NewAppError(TypeInternal, "Build produced no files under dist/", nil).
			WithSuggestion("Check the output of: python setup.py sdist bdist_wheel")
)
