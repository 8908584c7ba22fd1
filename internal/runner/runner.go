package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a single command invocation.
const DefaultTimeout = 60 * time.Second

// Result is the outcome of one command invocation.
// Output holds trimmed stdout on success, or a human-readable failure
// message otherwise.
type Result struct {
	OK     bool   `json:"ok"`
	Output string `json:"output"`
}

// Runner executes one command and reports the outcome. Implementations must
// be total: every failure mode (missing interpreter, timeout, non-zero exit,
// OS error) collapses into Result.OK == false, never an error or a panic.
type Runner interface {
	Run(ctx context.Context, command string) Result
}

// Func adapts a function to the Runner interface. Used by tests and
// embedders that stub out command execution.
type Func func(ctx context.Context, command string) Result

func (f Func) Run(ctx context.Context, command string) Result { return f(ctx, command) }

// Shell runs commands through the platform shell: PowerShell on Windows,
// /bin/sh elsewhere.
type Shell struct {
	// Timeout per invocation; DefaultTimeout when zero.
	Timeout time.Duration
}

func NewShell() *Shell { return &Shell{Timeout: DefaultTimeout} }

func (s *Shell) Run(ctx context.Context, command string) Result {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := shellCommand(cctx, command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return Result{OK: true, Output: strings.TrimSpace(stdout.String())}
	}

	switch {
	case errors.Is(cctx.Err(), context.DeadlineExceeded):
		return Result{Output: fmt.Sprintf("command timed out after %s", timeout)}
	case errors.Is(err, exec.ErrNotFound):
		return Result{Output: shellNotFoundMsg}
	}
	msg := strings.TrimSpace(stderr.String())
	if msg == "" {
		msg = strings.TrimSpace(stdout.String())
	}
	if msg == "" {
		msg = err.Error()
	}
	return Result{Output: msg}
}
