package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"potlint/internal/i18n"
	m "potlint/internal/model"
)

// Discrepancy classes in reporting order, with their message keys.
var classMessages = []struct {
	class m.DiscrepancyClass
	key   string
}{
	{m.MissingFile, "DiscrepancyMissing"},
	{m.StaleEntry, "DiscrepancyStale"},
	{m.UndeclaredFile, "DiscrepancyUndeclared"},
	{m.MacroUsage, "DiscrepancyMacro"},
	{m.OrderingViolation, "DiscrepancyOrdering"},
}

var (
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true)
)

// SimpleUI prints line-oriented results through the cobra command's output,
// one discrepancy per line, grouped by class. On a terminal it adds styling
// and a scan spinner.
type SimpleUI struct {
	cmd     *cobra.Command
	tr      *i18n.Translator
	tty     bool
	spinner *scanSpinner
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command, translator *i18n.Translator, tty bool) *SimpleUI {
	return &SimpleUI{cmd: cmd, tr: translator, tty: tty}
}

// BeginScan starts the scan spinner on interactive sessions.
func (s *SimpleUI) BeginScan(ctx context.Context, root m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	if !s.tty {
		return
	}

	s.spinner = newScanSpinner(s.cmd.OutOrStdout(), string(root))
	s.spinner.Start()
}

// EndScan stops the scan spinner if one is running.
func (s *SimpleUI) EndScan(_ context.Context) {
	if s.spinner != nil {
		s.spinner.Stop()
		s.spinner = nil
	}
}

// DisplayCheckReport prints the report: a header naming the manifest, the
// discrepancies grouped by class, a scan summary and the verdict.
func (s *SimpleUI) DisplayCheckReport(ctx context.Context, report m.CheckReport, staged bool) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.println(s.style(headerStyle, s.tr.T("CheckHeader", map[string]any{"Manifest": string(report.Manifest)})))

	for _, cm := range classMessages {
		for _, d := range report.ByClass(cm.class) {
			s.printf("  %s\n", s.tr.T(cm.key, map[string]any{
				"Path":     string(d.Path),
				"Expected": string(d.Expected),
			}))
		}
	}

	if staged {
		s.println(s.tr.T("StagedModeNotice", nil))
	}

	s.println(s.tr.T("ScanSummary", map[string]any{
		"Discovered": report.Discovered,
		"Declared":   report.Declared,
	}))

	if report.Passed() {
		s.println(s.style(passStyle, s.tr.T("CheckPassed", nil)))
	} else {
		s.println(s.style(failStyle, s.tr.T("CheckFailed", nil)))
	}
}

// DisplayDiscovered renders the per-category file list as a table. On a
// terminal, long lists go through the pager.
func (s *SimpleUI) DisplayDiscovered(ctx context.Context, found map[m.Category][]m.Path, scanned int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rendered := renderDiscoveredTable(found, scanned)

	if s.tty {
		return displayPaged(s.cmd.OutOrStdout(), rendered)
	}

	s.printf("%s", rendered)

	return nil
}

// DisplayBlueprints reports how many blueprint files were compiled.
func (s *SimpleUI) DisplayBlueprints(ctx context.Context, count int, outputDir m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.println(s.tr.T("BlueprintsCompiled", map[string]any{
		"Count":     count,
		"OutputDir": string(outputDir),
	}))
}

func renderDiscoveredTable(found map[m.Category][]m.Path, scanned int) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Category"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	total := 0
	counts := make([]string, 0, len(m.Categories))

	for _, category := range m.Categories {
		for _, path := range found[category] {
			table.Append([]string{string(path), string(category)})

			total++
		}

		counts = append(counts, fmt.Sprintf("%s %d", category, len(found[category])))
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total %d (scanned %d)", total, scanned),
		strings.Join(counts, ", "),
	})

	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) style(style lipgloss.Style, text string) string {
	if !s.tty {
		return text
	}

	return style.Render(text)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func (s *SimpleUI) println(line string) {
	_, _ = fmt.Fprintln(s.cmd.OutOrStdout(), line)
}
