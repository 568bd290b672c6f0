// Package vcs runs the git client. kilm never implements version control
// itself; it shells out for pull and config lookups.
package vcs

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/arthur-debert/kilm/pkg/logging"
)

// Runner executes git with args in dir and returns trimmed stdout
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// Git runs the git binary found on PATH
type Git struct {
	// Binary defaults to "git"
	Binary string
}

// Run implements Runner
func (g Git) Run(ctx context.Context, dir string, args ...string) (string, error) {
	logger := logging.GetLogger("vcs")
	bin := g.Binary
	if bin == "" {
		bin = "git"
	}
	logging.LogCommand(logger, bin, args)

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		kerr := errors.Wrapf(err, errors.ErrCommandFailed, "%s %s failed", bin, strings.Join(args, " ")).
			WithDetail("dir", dir).
			WithDetail("stderr", strings.TrimSpace(stderr.String()))
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			kerr.WithDetail("exit_code", exitErr.ExitCode())
		}
		return "", kerr
	}
	return strings.TrimSpace(stdout.String()), nil
}

// ConfigGet reads a git config value. A key that is not set is not an error.
func ConfigGet(ctx context.Context, r Runner, dir, key string) (string, bool, error) {
	out, err := r.Run(ctx, dir, "config", "--get", key)
	if err != nil {
		// git config exits 1 when the key is missing
		if code, ok := errors.GetErrorDetails(err)["exit_code"].(int); ok && code == 1 {
			return "", false, nil
		}
		return "", false, err
	}
	return out, true, nil
}

// Pull fast-forwards the repository at dir and returns git's output
func Pull(ctx context.Context, r Runner, dir string) (string, error) {
	return r.Run(ctx, dir, "pull", "--ff-only")
}

// TopLevel returns the working tree root containing dir
func TopLevel(ctx context.Context, r Runner, dir string) (string, error) {
	out, err := r.Run(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrNotAGitRepository, "%s is not inside a git repository", dir).
			WithDetail("path", dir)
	}
	return out, nil
}
