package controller

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"potlint/internal/i18n"
	m "potlint/internal/model"
)

func newBufferedUI(t *testing.T) (*SimpleUI, *bytes.Buffer) {
	t.Helper()

	out := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(out)

	return NewSimpleUI(cmd, i18n.NewTranslator("en"), false), out
}

func TestDisplayCheckReport(t *testing.T) {
	t.Run("passing report", func(t *testing.T) {
		ui, out := newBufferedUI(t)

		ui.DisplayCheckReport(context.Background(), m.CheckReport{
			Manifest:   "po/POTFILES.in",
			Declared:   2,
			Discovered: 2,
		}, false)

		output := out.String()
		require.Contains(t, output, "Checking po/POTFILES.in")
		require.Contains(t, output, "Scanned 2 translatable files against 2 declared entries")
		require.Contains(t, output, "Translation manifest check passed")
	})

	t.Run("discrepancies are grouped by class, one per line", func(t *testing.T) {
		ui, out := newBufferedUI(t)

		ui.DisplayCheckReport(context.Background(), m.CheckReport{
			Manifest: "po/POTFILES.in",
			Discrepancies: []m.Discrepancy{
				{Class: m.UndeclaredFile, Category: m.CategoryBlueprint, Path: "src/d.blp"},
				{Class: m.MissingFile, Category: m.CategorySource, Path: "src/gone.rs"},
				{Class: m.OrderingViolation, Path: "src/b.rs", Expected: "src/a.rs"},
			},
		}, false)

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")

		require.Equal(t, "Checking po/POTFILES.in", lines[0])
		// Missing before undeclared before ordering, regardless of the
		// order in the report.
		require.Equal(t, "  src/gone.rs is declared but does not exist", lines[1])
		require.Equal(t, "  src/d.blp contains translatable strings but is not declared", lines[2])
		require.Equal(t, "  src/b.rs appears before src/a.rs", lines[3])
		require.Contains(t, out.String(), "Translation manifest check failed")
	})

	t.Run("staged mode prints a notice", func(t *testing.T) {
		ui, out := newBufferedUI(t)

		ui.DisplayCheckReport(context.Background(), m.CheckReport{Manifest: "po/POTFILES.in"}, true)

		require.Contains(t, out.String(), "Staged mode")
	})
}

func TestDisplayDiscovered(t *testing.T) {
	ui, out := newBufferedUI(t)

	err := ui.DisplayDiscovered(context.Background(), map[m.Category][]m.Path{
		m.CategoryUI:     {"data/ui/window.ui"},
		m.CategorySource: {"src/login.rs"},
	}, 7)
	require.NoError(t, err)

	output := out.String()
	require.Contains(t, output, "data/ui/window.ui")
	require.Contains(t, output, "src/login.rs")
	// tablewriter renders footers uppercased.
	require.Contains(t, strings.ToLower(output), "total 2 (scanned 7)")
	require.Contains(t, strings.ToLower(output), "ui 1, blueprint 0, source 1")
}

func TestDisplayBlueprints(t *testing.T) {
	ui, out := newBufferedUI(t)

	ui.DisplayBlueprints(context.Background(), 3, "builddir/ui")

	require.Contains(t, out.String(), "Compiled 3 blueprint files to builddir/ui")
}

func TestDisplayHonorsCancelledContext(t *testing.T) {
	ui, out := newBufferedUI(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ui.DisplayCheckReport(ctx, m.CheckReport{Manifest: "po/POTFILES.in"}, false)
	ui.DisplayBlueprints(ctx, 1, "builddir/ui")

	require.Empty(t, out.String())
}
