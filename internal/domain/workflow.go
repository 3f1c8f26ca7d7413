package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"potlint/internal/adapter"
	"potlint/internal/controller"
	m "potlint/internal/model"
)

// ErrCheckFailed marks a completed check that found discrepancies. The CLI
// maps it to exit code 1, distinct from the tooling-unavailable code.
var ErrCheckFailed = errors.New("translation manifest check failed")

// blueprintCompiler is the external dependency of the blueprints command,
// installable through the prompt protocol.
var blueprintCompiler = adapter.ToolSpec{
	Name:        "blueprint-compiler",
	InstallArgs: []string{"pip3", "install", "--user", "blueprint-compiler"},
	Hint:        "needed to compile .blp sources to .ui",
}

// CheckArgs parametrizes a manifest check.
type CheckArgs struct {
	// Root anchors the check; empty means "discover from the working
	// directory by walking up to the manifest".
	Root m.Path

	// Manifest and Skip are root-relative. A missing skip file is an empty
	// skip list; a missing manifest is an error.
	Manifest m.Path
	Skip     m.Path

	// Paths are the root-relative subtrees to scan (default: the whole
	// tree).
	Paths   []m.Path
	Exclude []string

	// GitStaged restricts the content scan to the files staged in git.
	GitStaged bool

	// Report, when set, is where the YAML copy of the check report goes.
	Report m.Path
}

// DiscoverArgs parametrizes a discovery listing.
type DiscoverArgs struct {
	Root     m.Path
	Manifest m.Path
	Paths    []m.Path
	Exclude  []string
}

// BlueprintArgs parametrizes blueprint batch compilation.
type BlueprintArgs struct {
	Root         m.Path
	Manifest     m.Path
	Paths        []m.Path
	Exclude      []string
	OutputDir    m.Path
	ForceInstall bool
}

// Workflow is the top-level orchestration behind the CLI commands.
type Workflow interface {
	// Check validates the manifest against the content scan. It returns
	// ErrCheckFailed when discrepancies were found and reported.
	Check(ctx context.Context, args CheckArgs) error

	// Discover lists every marker-carrying file found by the scan.
	Discover(ctx context.Context, args DiscoverArgs) error

	// CompileBlueprints batch-compiles .blp sources with blueprint-compiler.
	CompileBlueprints(ctx context.Context, args BlueprintArgs) error
}

type workflow struct {
	fs    adapter.SourceFSAdapter
	tools adapter.ToolRunnerAdapter
	store adapter.ReportStore
	ui    controller.UI
}

// NewWorkflow wires the workflow with its adapters and output controller.
func NewWorkflow(
	fs adapter.SourceFSAdapter,
	tools adapter.ToolRunnerAdapter,
	store adapter.ReportStore,
	ui controller.UI,
) Workflow {
	return &workflow{fs: fs, tools: tools, store: store, ui: ui}
}

func (w *workflow) Check(ctx context.Context, args CheckArgs) error {
	root, err := w.resolveRoot(args.Root, args.Manifest)
	if err != nil {
		return err
	}

	manifest, err := LoadManifest(w.fs, root, args.Manifest, true)
	if err != nil {
		return err
	}

	skip, err := LoadManifest(w.fs, root, args.Skip, false)
	if err != nil {
		return err
	}

	scanner, err := NewScanner(w.fs, args.Exclude)
	if err != nil {
		return err
	}

	w.ui.BeginScan(ctx, root)

	var scan ScanResult

	if args.GitStaged {
		staged, err := w.tools.GitStagedFiles(ctx, root)
		if err != nil {
			w.ui.EndScan(ctx)
			return err
		}

		scan, err = scanner.ScanFiles(ctx, root, staged)
		if err != nil {
			w.ui.EndScan(ctx)
			return err
		}
	} else {
		scan, err = scanner.Scan(ctx, root, args.Paths)
		if err != nil {
			w.ui.EndScan(ctx)
			return err
		}
	}

	w.ui.EndScan(ctx)

	slog.Debug("content scan finished",
		"root", root, "scanned", scan.FilesScanned, "found", scan.FoundTotal(), "macros", len(scan.Macros))

	report := NewValidator(w.fs, root).Validate(ValidateInput{
		Manifest:  manifest,
		Skip:      skip,
		Scan:      scan,
		SkipStale: args.GitStaged,
	})

	w.ui.DisplayCheckReport(ctx, report, args.GitStaged)

	if args.Report != "" {
		if err := w.store.SaveReport(args.Report, report); err != nil {
			return err
		}

		slog.Info("report saved", "path", args.Report)
	}

	if !report.Passed() {
		return ErrCheckFailed
	}

	return nil
}

func (w *workflow) Discover(ctx context.Context, args DiscoverArgs) error {
	root, err := w.resolveRoot(args.Root, args.Manifest)
	if err != nil {
		return err
	}

	scanner, err := NewScanner(w.fs, args.Exclude)
	if err != nil {
		return err
	}

	w.ui.BeginScan(ctx, root)
	scan, err := scanner.Scan(ctx, root, args.Paths)
	w.ui.EndScan(ctx)

	if err != nil {
		return err
	}

	return w.ui.DisplayDiscovered(ctx, scan.Found, scan.FilesScanned)
}

func (w *workflow) CompileBlueprints(ctx context.Context, args BlueprintArgs) error {
	root, err := w.resolveRoot(args.Root, args.Manifest)
	if err != nil {
		return err
	}

	if err := w.tools.EnsureTool(ctx, blueprintCompiler, args.ForceInstall); err != nil {
		return err
	}

	scanner, err := NewScanner(w.fs, args.Exclude)
	if err != nil {
		return err
	}

	blueprints, err := scanner.Blueprints(root, args.Paths)
	if err != nil {
		return err
	}

	if len(blueprints) == 0 {
		w.ui.DisplayBlueprints(ctx, 0, args.OutputDir)
		return nil
	}

	outputDir := w.fs.JoinPath(string(root), string(args.OutputDir))
	if err := w.fs.MkdirAll(outputDir, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	runArgs := []string{"batch-compile", string(outputDir), string(root)}
	for _, blueprint := range blueprints {
		runArgs = append(runArgs, string(w.fs.JoinPath(string(root), string(blueprint))))
	}

	output, err := w.tools.Run(ctx, root, blueprintCompiler.Name, runArgs...)
	if err != nil {
		return fmt.Errorf("blueprint compilation failed: %w\n%s", err, output)
	}

	w.ui.DisplayBlueprints(ctx, len(blueprints), args.OutputDir)

	return nil
}

// resolveRoot anchors the run: an explicit root wins, otherwise walk up
// from the working directory until the manifest (or a .git dir) appears.
func (w *workflow) resolveRoot(root, manifest m.Path) (m.Path, error) {
	if root != "" {
		return root, nil
	}

	return w.fs.FindProjectRoot(".", manifest)
}
