// Package engine runs compiled scripts through gnuplot.
//
// The engine is an external line-oriented interpreter with no error
// recovery. A script is piped to its standard input; a non-zero exit status
// means the script was rejected and the error carries whatever the engine
// wrote to standard error. Scripts are never retried or repaired.
//
//	eng, err := engine.New("gnuplot -d")
//	res, err := eng.Run(ctx, script)
package engine

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os/exec"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"

	perrors "github.com/matzehuels/plotscript/pkg/errors"
)

// DefaultCommand is the engine command line used when none is configured.
const DefaultCommand = "gnuplot"

// DefaultTimeout bounds one engine invocation.
const DefaultTimeout = 30 * time.Second

// Engine invokes the plotting engine.
type Engine struct {
	// Command is the program and its arguments.
	Command []string

	// Timeout bounds each Run. Zero means no limit beyond the caller's context.
	Timeout time.Duration

	// Dir is the working directory; relative data file paths resolve here.
	Dir string
}

// Result is the output of one engine run.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	Duration time.Duration
}

// Warnings returns the non-empty lines the engine wrote to stderr.
// gnuplot reports warnings there even when it accepts the script.
func (r *Result) Warnings() []string {
	var lines []string
	for _, l := range strings.Split(string(r.Stderr), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// New parses a shell-style command line such as `gnuplot -e "set term dumb"`.
// An empty command line selects DefaultCommand.
func New(cmdline string) (*Engine, error) {
	if strings.TrimSpace(cmdline) == "" {
		cmdline = DefaultCommand
	}
	args, err := shellquote.Split(cmdline)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "parse engine command %q", cmdline)
	}
	if len(args) == 0 {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "engine command is empty")
	}
	return &Engine{Command: args, Timeout: DefaultTimeout}, nil
}

// String returns the command line, quoted for a shell.
func (e *Engine) String() string {
	return shellquote.Join(e.Command...)
}

// Run pipes script to the engine and waits for it to exit.
func (e *Engine) Run(ctx context.Context, script string) (*Result, error) {
	return e.run(ctx, strings.NewReader(script))
}

// Version returns the first line the engine prints for --version.
func (e *Engine) Version(ctx context.Context) (string, error) {
	v := &Engine{Command: append(e.Command[:1:1], "--version"), Timeout: e.Timeout, Dir: e.Dir}
	res, err := v.run(ctx, nil)
	if err != nil {
		return "", err
	}
	first, _, _ := strings.Cut(strings.TrimSpace(string(res.Stdout)), "\n")
	return first, nil
}

func (e *Engine) run(ctx context.Context, stdin *strings.Reader) (*Result, error) {
	if len(e.Command) == 0 {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "engine command is empty")
	}
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.Command[0], e.Command[1:]...)
	if stdin != nil {
		cmd.Stdin = stdin
	}
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Dir = e.Dir

	start := time.Now()
	err := cmd.Run()
	res := &Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes(), Duration: time.Since(start)}

	switch {
	case err == nil:
		return res, nil
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return res, perrors.Wrap(perrors.ErrCodeTimeout, ctx.Err(), "%s did not finish within %s", e.Command[0], e.Timeout)
	case errors.Is(ctx.Err(), context.Canceled):
		return res, ctx.Err()
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return res, perrors.Wrap(perrors.ErrCodeEngineNotFound, err, "%s not found", e.Command[0])
	}

	msg := strings.TrimSpace(stderr.String())
	if msg == "" {
		msg = "no diagnostics"
	}
	return res, perrors.Wrap(perrors.ErrCodeEngineFailed, err, "%s rejected script: %s", e.Command[0], msg)
}
