// Package controller provides output adapters for displaying check results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"potlint/internal/i18n"
	m "potlint/internal/model"
)

// UI defines the interface for presenting scan progress and check results.
// Implementations can use different output methods (plain text, TUI).
type UI interface {
	// BeginScan and EndScan bracket the content scan so interactive
	// sessions can show progress.
	BeginScan(ctx context.Context, root m.Path)
	EndScan(ctx context.Context)

	// DisplayCheckReport prints the discrepancies grouped by class, headed
	// by the manifest being checked, then the verdict.
	DisplayCheckReport(ctx context.Context, report m.CheckReport, staged bool)

	// DisplayDiscovered lists every marker-carrying file per category.
	DisplayDiscovered(ctx context.Context, found map[m.Category][]m.Path, scanned int) error

	// DisplayBlueprints reports the outcome of blueprint batch compilation.
	DisplayBlueprints(ctx context.Context, count int, outputDir m.Path)
}

// NewUI builds the default UI: plain line output, with styling and a scan
// spinner when attached to a terminal.
func NewUI(cmd *cobra.Command, translator *i18n.Translator, tty bool) UI {
	return NewSimpleUI(cmd, translator, tty)
}

// IsTTY reports whether the file is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
