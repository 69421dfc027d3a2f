// Package runner executes external commands and captures their output.
package runner

import (
	"bytes"
	"context"
	stderrors "errors"
	"os/exec"
	"slices"
	"time"

	"github.com/level12/pyp/internal/errors"
	"github.com/level12/pyp/internal/logger"
)

// Command is a single external invocation. Dir is the working directory
// for that invocation only; the process working directory is never changed.
type Command struct {
	Name string
	Args []string
	Dir  string

	// AcceptExitCodes lists the exit statuses treated as success. Empty
	// means only 0.
	AcceptExitCodes []int
}

type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) Run(ctx context.Context, c Command) (*Result, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &Result{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !stderrors.As(err, &exitErr) {
			return nil, errors.NewExecutionError(&errors.ExecError{
				Executable: c.Name,
				Args:       c.Args,
				Dir:        c.Dir,
				ExitCode:   -1,
				Stdout:     res.Stdout,
				Stderr:     res.Stderr,
				Err:        err,
			})
		}
		res.ExitCode = exitErr.ExitCode()
	}

	if !accepted(c.AcceptExitCodes, res.ExitCode) {
		return res, errors.NewExecutionError(&errors.ExecError{
			Executable: c.Name,
			Args:       c.Args,
			Dir:        c.Dir,
			ExitCode:   res.ExitCode,
			Stdout:     res.Stdout,
			Stderr:     res.Stderr,
			Err:        err,
		})
	}

	return res, nil
}

func accepted(codes []int, code int) bool {
	if len(codes) == 0 {
		return code == 0
	}
	return slices.Contains(codes, code)
}

type loggingRunner struct {
	next Runner
}

// WithLogging logs every invocation at debug level.
func WithLogging(next Runner) Runner {
	return &loggingRunner{next: next}
}

func (r *loggingRunner) Run(ctx context.Context, c Command) (*Result, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	log.Debug("running command",
		"command", c.Name,
		"args", c.Args,
		"dir", c.Dir)

	res, err := r.next.Run(ctx, c)

	exitCode := -1
	if res != nil {
		exitCode = res.ExitCode
	}

	if err != nil {
		log.Debug("command failed",
			"command", c.Name,
			"exit_code", exitCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err)
		return res, err
	}

	log.Debug("command finished",
		"command", c.Name,
		"exit_code", exitCode,
		"duration_ms", time.Since(start).Milliseconds())

	return res, nil
}

// Scoped binds a runner to one repository directory, so call sites only
// name the executable and its arguments.
type Scoped struct {
	runner Runner
	dir    string
}

func InDir(r Runner, dir string) *Scoped {
	return &Scoped{runner: r, dir: dir}
}

func (s *Scoped) Dir() string {
	return s.dir
}

func (s *Scoped) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	return s.runner.Run(ctx, Command{Name: name, Args: args, Dir: s.dir})
}

// RunAccepting is Run with an explicit set of exit statuses treated as success.
func (s *Scoped) RunAccepting(ctx context.Context, codes []int, name string, args ...string) (*Result, error) {
	return s.runner.Run(ctx, Command{Name: name, Args: args, Dir: s.dir, AcceptExitCodes: codes})
}
