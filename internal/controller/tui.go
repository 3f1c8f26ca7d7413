package controller

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// scanSpinner shows progress while the content scan walks the tree. It runs
// its own Bubble Tea program in the background and is stopped once the scan
// returns.
type scanSpinner struct {
	program *tea.Program
	done    chan struct{}
}

func newScanSpinner(output io.Writer, root string) *scanSpinner {
	model := spinModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		label:   fmt.Sprintf("Scanning %s for translatable strings...", root),
	}

	return &scanSpinner{
		program: tea.NewProgram(model, tea.WithOutput(output)),
		done:    make(chan struct{}),
	}
}

// Start runs the spinner program until Stop is called.
func (s *scanSpinner) Start() {
	go func() {
		defer close(s.done)

		_, _ = s.program.Run()
	}()
}

// Stop quits the spinner program and waits for its final repaint.
func (s *scanSpinner) Stop() {
	s.program.Send(scanDoneMsg{})
	<-s.done
}

// scanDoneMsg tells the spinner model the scan finished.
type scanDoneMsg struct{}

type spinModel struct {
	spinner  spinner.Model
	label    string
	quitting bool
}

func (sm spinModel) Init() tea.Cmd {
	return sm.spinner.Tick
}

func (sm spinModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			sm.quitting = true
			return sm, tea.Quit
		}

		return sm, nil

	case scanDoneMsg:
		sm.quitting = true
		return sm, tea.Quit

	default:
		var cmd tea.Cmd
		sm.spinner, cmd = sm.spinner.Update(msg)

		return sm, cmd
	}
}

func (sm spinModel) View() string {
	if sm.quitting {
		return ""
	}

	return fmt.Sprintf("%s %s", sm.spinner.View(), sm.label)
}

// displayPaged shows pre-rendered content, scrolling when it exceeds the
// terminal height.
func displayPaged(output io.Writer, content string) error {
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")

	model := pagerModel{lines: lines}

	// Get initial terminal size
	if f, ok := output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.height = height
			model.width = width
		}
	}

	// If the content fits, just print and exit
	if !model.needsPagination() {
		_, err := fmt.Fprint(output, content)
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// pagerModel represents the Bubble Tea model for scrolling rendered output.
type pagerModel struct {
	lines    []string
	height   int
	width    int
	offset   int // Current scroll offset
	quitting bool
}

func (pm pagerModel) Init() tea.Cmd {
	return nil
}

func (pm pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pm.height = msg.Height
		pm.width = msg.Width

		return pm, nil

	case tea.KeyMsg:
		return pm.handleKeyPress(msg)
	}

	return pm, nil
}

func (pm pagerModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		pm.quitting = true
		return pm, tea.Quit
	default:
	}

	switch msg.String() {
	case "q":
		pm.quitting = true
		return pm, tea.Quit

	case "down", "j":
		pm.offset++
		if pm.offset > pm.maxOffset() {
			pm.offset = pm.maxOffset()
		}

		return pm, nil

	case "up", "k":
		pm.offset--
		if pm.offset < 0 {
			pm.offset = 0
		}

		return pm, nil

	case "g", "home":
		pm.offset = 0
		return pm, nil

	case "G", "end":
		pm.offset = pm.maxOffset()
		return pm, nil
	}

	return pm, nil
}

func (pm pagerModel) View() string {
	if pm.quitting {
		return ""
	}

	visible := pm.visibleLines()

	var b strings.Builder

	end := pm.offset + visible
	if end > len(pm.lines) {
		end = len(pm.lines)
	}

	for _, line := range pm.lines[pm.offset:end] {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("  %d-%d/%d  (j/k scroll, q quit)", pm.offset+1, end, len(pm.lines)))

	return b.String()
}

func (pm pagerModel) needsPagination() bool {
	return pm.height > 0 && len(pm.lines) > pm.visibleLines()
}

func (pm pagerModel) visibleLines() int {
	// One line reserved for the status footer.
	visible := pm.height - 1
	if visible < 1 {
		visible = 1
	}

	return visible
}

func (pm pagerModel) maxOffset() int {
	max := len(pm.lines) - pm.visibleLines()
	if max < 0 {
		max = 0
	}

	return max
}
