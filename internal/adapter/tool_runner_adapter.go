package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"

	m "potlint/internal/model"
)

// ErrToolUnavailable marks a required external tool that is missing and was
// not (or could not be) installed. The CLI maps it to its own exit code so
// callers can tell "check failed" from "tooling unavailable".
var ErrToolUnavailable = errors.New("required tool unavailable")

// ToolSpec describes an external dependency and how to install it when the
// user consents.
type ToolSpec struct {
	// Name is the executable looked up on PATH.
	Name string

	// InstallArgs is the command line that installs the tool, e.g.
	// ["pip3", "install", "--user", "blueprint-compiler"].
	InstallArgs []string

	// Hint is shown alongside the prompt when the tool is missing.
	Hint string
}

// ToolRunnerAdapter abstracts external tool execution: binary lookup, the
// install-prompt protocol for missing tools, and the git helpers used by
// staged mode.
type ToolRunnerAdapter interface {
	// EnsureTool makes sure spec.Name is runnable. When the tool is missing
	// it installs it outright if forceInstall is set, otherwise asks the
	// user first; refusal (or a non-interactive session) yields
	// ErrToolUnavailable.
	EnsureTool(ctx context.Context, spec ToolSpec, forceInstall bool) error

	// Run executes the tool and returns its combined stdout/stderr output.
	Run(ctx context.Context, workDir m.Path, name string, args ...string) (string, error)

	// GitStagedFiles lists the paths currently staged in the repository at
	// root, relative to root.
	GitStagedFiles(ctx context.Context, root m.Path) ([]m.Path, error)
}

// LocalToolRunnerAdapter provides a concrete implementation using os/exec.
type LocalToolRunnerAdapter struct {
	timeout     time.Duration
	interactive bool

	// lookPath and ask are swappable for tests.
	lookPath func(name string) (string, error)
	ask      func(prompt survey.Prompt, response any, opts ...survey.AskOpt) error
}

// NewLocalToolRunnerAdapter constructs a LocalToolRunnerAdapter. The
// interactive flag gates the install prompt: without a terminal the adapter
// never blocks waiting for an answer.
func NewLocalToolRunnerAdapter(interactive bool) *LocalToolRunnerAdapter {
	return &LocalToolRunnerAdapter{
		timeout:     5 * time.Minute,
		interactive: interactive,
		lookPath:    exec.LookPath,
		ask:         survey.AskOne,
	}
}

// EnsureTool implements the fallback/install-prompt protocol for a missing
// external dependency.
func (a *LocalToolRunnerAdapter) EnsureTool(ctx context.Context, spec ToolSpec, forceInstall bool) error {
	if _, err := a.lookPath(spec.Name); err == nil {
		return nil
	}

	slog.Info("external tool not found", "tool", spec.Name)

	if len(spec.InstallArgs) == 0 {
		return fmt.Errorf("%w: %s", ErrToolUnavailable, spec.Name)
	}

	if !forceInstall {
		if !a.interactive {
			return fmt.Errorf("%w: %s (re-run with --force-install to install it)", ErrToolUnavailable, spec.Name)
		}

		message := fmt.Sprintf("%s is not installed. Install it now?", spec.Name)
		if spec.Hint != "" {
			message = fmt.Sprintf("%s is not installed (%s). Install it now?", spec.Name, spec.Hint)
		}

		confirmed := false
		if err := a.ask(&survey.Confirm{Message: message}, &confirmed); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrToolUnavailable, spec.Name, err)
		}

		if !confirmed {
			return fmt.Errorf("%w: %s (installation refused)", ErrToolUnavailable, spec.Name)
		}
	}

	if output, err := a.Run(ctx, "", spec.InstallArgs[0], spec.InstallArgs[1:]...); err != nil {
		slog.Error("tool installation failed", "tool", spec.Name, "output", output, "error", err)
		return fmt.Errorf("%w: %s (install failed: %v)", ErrToolUnavailable, spec.Name, err)
	}

	if _, err := a.lookPath(spec.Name); err != nil {
		return fmt.Errorf("%w: %s (still missing after install)", ErrToolUnavailable, spec.Name)
	}

	return nil
}

// Run executes an external command and returns its combined output.
func (a *LocalToolRunnerAdapter) Run(ctx context.Context, workDir m.Path, name string, args ...string) (string, error) {
	runCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, name, args...)
	if workDir != "" {
		cmd.Dir = string(workDir)
	}

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	output := stdout.String() + stderr.String()

	slog.Debug("ran external tool", "tool", name, "args", args, "error", err)

	return output, err
}

// GitStagedFiles returns the repository-relative paths staged in the index.
func (a *LocalToolRunnerAdapter) GitStagedFiles(ctx context.Context, root m.Path) ([]m.Path, error) {
	if _, err := a.lookPath("git"); err != nil {
		return nil, fmt.Errorf("%w: git", ErrToolUnavailable)
	}

	output, err := a.Run(ctx, root, "git", "diff", "--cached", "--name-only", "--diff-filter=ACMR")
	if err != nil {
		return nil, fmt.Errorf("listing staged files: %w", err)
	}

	var paths []m.Path

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		paths = append(paths, m.Path(line))
	}

	return paths, nil
}
