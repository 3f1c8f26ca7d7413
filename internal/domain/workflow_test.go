package domain

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"potlint/internal/adapter"
	m "potlint/internal/model"
)

// recordingUI captures what the workflow displays.
type recordingUI struct {
	reports    []m.CheckReport
	staged     []bool
	discovered map[m.Category][]m.Path
	blueprints int
	scans      int
}

func (r *recordingUI) BeginScan(context.Context, m.Path) { r.scans++ }
func (r *recordingUI) EndScan(context.Context)           {}

func (r *recordingUI) DisplayCheckReport(_ context.Context, report m.CheckReport, staged bool) {
	r.reports = append(r.reports, report)
	r.staged = append(r.staged, staged)
}

func (r *recordingUI) DisplayDiscovered(_ context.Context, found map[m.Category][]m.Path, _ int) error {
	r.discovered = found
	return nil
}

func (r *recordingUI) DisplayBlueprints(_ context.Context, count int, _ m.Path) {
	r.blueprints = count
}

// stubToolRunner satisfies the tool runner without reaching for real tools.
type stubToolRunner struct {
	staged    []m.Path
	ensureErr error
	runCalls  [][]string
	runOutput string
}

func (s *stubToolRunner) EnsureTool(context.Context, adapter.ToolSpec, bool) error {
	return s.ensureErr
}

func (s *stubToolRunner) Run(_ context.Context, _ m.Path, name string, args ...string) (string, error) {
	s.runCalls = append(s.runCalls, append([]string{name}, args...))
	return s.runOutput, nil
}

func (s *stubToolRunner) GitStagedFiles(context.Context, m.Path) ([]m.Path, error) {
	return s.staged, nil
}

func newTestProject(t *testing.T, manifest string, files map[string]string) m.Path {
	t.Helper()

	root := t.TempDir()

	tree := map[string]string{"po/POTFILES.in": manifest}
	for path, content := range files {
		tree[path] = content
	}

	writeTree(t, root, tree)

	return m.Path(root)
}

func TestWorkflowCheck(t *testing.T) {
	t.Run("clean project passes", func(t *testing.T) {
		root := newTestProject(t, "data/ui/window.ui\nsrc/login.rs\n", map[string]string{
			"data/ui/window.ui": `translatable="yes"`,
			"src/login.rs":      `gettext("Log in")`,
		})

		ui := &recordingUI{}
		w := NewWorkflow(adapter.NewLocalSourceFSAdapter(), &stubToolRunner{}, adapter.NewReportStore(), ui)

		err := w.Check(context.Background(), CheckArgs{
			Root:     root,
			Manifest: "po/POTFILES.in",
			Skip:     "po/POTFILES.skip",
		})

		require.NoError(t, err)
		require.Len(t, ui.reports, 1)
		require.True(t, ui.reports[0].Passed())
		require.Equal(t, 1, ui.scans)
	})

	t.Run("undeclared file fails the check", func(t *testing.T) {
		root := newTestProject(t, "src/login.rs\n", map[string]string{
			"src/login.rs": `gettext("Log in")`,
			"src/extra.rs": `gettext("Surprise")`,
		})

		ui := &recordingUI{}
		w := NewWorkflow(adapter.NewLocalSourceFSAdapter(), &stubToolRunner{}, adapter.NewReportStore(), ui)

		err := w.Check(context.Background(), CheckArgs{
			Root:     root,
			Manifest: "po/POTFILES.in",
			Skip:     "po/POTFILES.skip",
		})

		require.ErrorIs(t, err, ErrCheckFailed)
		require.Len(t, ui.reports, 1)
		require.Equal(t, []m.Discrepancy{{
			Class:    m.UndeclaredFile,
			Category: m.CategorySource,
			Path:     "src/extra.rs",
		}}, ui.reports[0].Discrepancies)
	})

	t.Run("missing manifest file is an error, not a failed check", func(t *testing.T) {
		root := m.Path(t.TempDir())

		ui := &recordingUI{}
		w := NewWorkflow(adapter.NewLocalSourceFSAdapter(), &stubToolRunner{}, adapter.NewReportStore(), ui)

		err := w.Check(context.Background(), CheckArgs{
			Root:     root,
			Manifest: "po/POTFILES.in",
			Skip:     "po/POTFILES.skip",
		})

		require.Error(t, err)
		require.NotErrorIs(t, err, ErrCheckFailed)
		require.Empty(t, ui.reports)
	})

	t.Run("staged mode scans only staged files and tolerates stale entries", func(t *testing.T) {
		root := newTestProject(t, "data/ui/window.ui\nsrc/login.rs\n", map[string]string{
			"data/ui/window.ui": `translatable="yes"`,
			"src/login.rs":      `gettext("Log in")`,
		})

		ui := &recordingUI{}
		tools := &stubToolRunner{staged: []m.Path{"src/login.rs"}}
		w := NewWorkflow(adapter.NewLocalSourceFSAdapter(), tools, adapter.NewReportStore(), ui)

		err := w.Check(context.Background(), CheckArgs{
			Root:      root,
			Manifest:  "po/POTFILES.in",
			Skip:      "po/POTFILES.skip",
			GitStaged: true,
		})

		require.NoError(t, err)
		require.Equal(t, []bool{true}, ui.staged)
		require.True(t, ui.reports[0].Passed())
	})

	t.Run("saves the report when asked", func(t *testing.T) {
		root := newTestProject(t, "src/login.rs\n", map[string]string{
			"src/login.rs": `gettext("Log in")`,
		})

		store := adapter.NewReportStore()
		ui := &recordingUI{}
		w := NewWorkflow(adapter.NewLocalSourceFSAdapter(), &stubToolRunner{}, store, ui)

		reportPath := m.Path(filepath.Join(t.TempDir(), "report.yaml"))

		err := w.Check(context.Background(), CheckArgs{
			Root:     root,
			Manifest: "po/POTFILES.in",
			Skip:     "po/POTFILES.skip",
			Report:   reportPath,
		})
		require.NoError(t, err)

		loaded, err := store.LoadReport(reportPath)
		require.NoError(t, err)

		if diff := cmp.Diff(ui.reports[0], loaded); diff != "" {
			t.Fatalf("saved report differs from displayed report (-want +got):\n%s", diff)
		}
	})
}

func TestWorkflowDiscover(t *testing.T) {
	root := newTestProject(t, "", map[string]string{
		"data/ui/window.ui": `translatable="yes"`,
		"src/login.rs":      `gettext("Log in")`,
	})

	ui := &recordingUI{}
	w := NewWorkflow(adapter.NewLocalSourceFSAdapter(), &stubToolRunner{}, adapter.NewReportStore(), ui)

	err := w.Discover(context.Background(), DiscoverArgs{Root: root, Manifest: "po/POTFILES.in"})
	require.NoError(t, err)

	require.Equal(t, []m.Path{"data/ui/window.ui"}, ui.discovered[m.CategoryUI])
	require.Equal(t, []m.Path{"src/login.rs"}, ui.discovered[m.CategorySource])
}

func TestWorkflowCompileBlueprints(t *testing.T) {
	t.Run("runs the batch compiler over every blueprint", func(t *testing.T) {
		root := newTestProject(t, "", map[string]string{
			"data/ui/a.blp": `Box {}`,
			"data/ui/b.blp": `Box {}`,
		})

		ui := &recordingUI{}
		tools := &stubToolRunner{}
		w := NewWorkflow(adapter.NewLocalSourceFSAdapter(), tools, adapter.NewReportStore(), ui)

		err := w.CompileBlueprints(context.Background(), BlueprintArgs{
			Root:      root,
			Manifest:  "po/POTFILES.in",
			OutputDir: "builddir/ui",
		})
		require.NoError(t, err)

		require.Len(t, tools.runCalls, 1)
		require.Equal(t, "blueprint-compiler", tools.runCalls[0][0])
		require.Equal(t, "batch-compile", tools.runCalls[0][1])
		require.Equal(t, 2, ui.blueprints)
	})

	t.Run("unavailable compiler propagates the sentinel", func(t *testing.T) {
		root := newTestProject(t, "", map[string]string{"data/ui/a.blp": `Box {}`})

		tools := &stubToolRunner{ensureErr: adapter.ErrToolUnavailable}
		w := NewWorkflow(adapter.NewLocalSourceFSAdapter(), tools, adapter.NewReportStore(), &recordingUI{})

		err := w.CompileBlueprints(context.Background(), BlueprintArgs{
			Root:      root,
			Manifest:  "po/POTFILES.in",
			OutputDir: "builddir/ui",
		})

		require.ErrorIs(t, err, adapter.ErrToolUnavailable)
	})

	t.Run("no blueprints is a no-op", func(t *testing.T) {
		root := newTestProject(t, "", map[string]string{"src/a.rs": `fn main() {}`})

		ui := &recordingUI{}
		tools := &stubToolRunner{}
		w := NewWorkflow(adapter.NewLocalSourceFSAdapter(), tools, adapter.NewReportStore(), ui)

		err := w.CompileBlueprints(context.Background(), BlueprintArgs{
			Root:      root,
			Manifest:  "po/POTFILES.in",
			OutputDir: "builddir/ui",
		})
		require.NoError(t, err)
		require.Empty(t, tools.runCalls)
		require.Equal(t, 0, ui.blueprints)
	})
}
