package cli

import (
	"fmt"
	"path/filepath"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the color scheme for the progress display.
type Theme struct {
	Status  string
	Success string
	Error   string
	Hint    string
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Status:  "#5FAFD7", // light blue
	Success: "#00D787", // green
	Error:   "#FF005F", // red
	Hint:    "#6C6C6C", // dim gray
}

// Style functions for dynamic theming
func (t Theme) statusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Status))
}

func (t Theme) completedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Error)).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Hint)).Italic(true)
}

// batchResult is the outcome of analyzing one ticket file.
type batchResult struct {
	file     string
	ticketID string
	err      error
}

// batchDoneMsg signals that all files have been processed.
type batchDoneMsg struct{}

// batchModel is the bubbletea model for batch analysis progress.
type batchModel struct {
	results   chan batchResult
	total     int
	completed int
	current   string
	failures  []string
	progress  progress.Model
	theme     Theme
	done      bool
	quitting  bool
}

// newBatchModel creates a new batch progress model.
func newBatchModel(total int, results chan batchResult) batchModel {
	prog := progress.New(
		progress.WithDefaultBlend(),
		progress.WithWidth(40),
	)

	return batchModel{
		results:  results,
		total:    total,
		progress: prog,
		theme:    defaultTheme,
	}
}

// Init returns the initial command (wait for the first result).
func (m batchModel) Init() tea.Cmd {
	return tea.Batch(
		waitForResult(m.results),
		m.progress.Init(),
	)
}

// Update handles messages and returns the updated model.
func (m batchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}

	case batchResult:
		m.completed++
		m.current = filepath.Base(msg.file)
		if msg.err != nil {
			m.failures = append(m.failures, fmt.Sprintf("%s: %v", filepath.Base(msg.file), msg.err))
		}
		return m, waitForResult(m.results)

	case batchDoneMsg:
		m.done = true
		return m, tea.Quit

	case progress.FrameMsg:
		// Update progress bar animation
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the progress display.
func (m batchModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

// renderContent builds the display string.
func (m batchModel) renderContent() string {
	if m.done || m.quitting {
		return m.finalView()
	}

	var pct float64
	if m.total > 0 {
		pct = float64(m.completed) / float64(m.total)
	}

	status := m.theme.statusStyle().Render("[analyzing]")
	progressBar := m.progress.ViewAs(pct)
	counts := fmt.Sprintf("%d/%d tickets", m.completed, m.total)

	line := fmt.Sprintf("%s %s %s", status, progressBar, counts)
	if m.current != "" {
		line += " " + m.theme.hintStyle().Render(m.current)
	}
	return line + "\n"
}

// finalView renders the completion message.
func (m batchModel) finalView() string {
	if m.quitting {
		return m.theme.hintStyle().Render(fmt.Sprintf("\nCancelled after %d/%d tickets.\n", m.completed, m.total))
	}

	output := m.theme.completedStyle().Render(fmt.Sprintf("✓ Analyzed %d tickets", m.completed)) + "\n"
	if len(m.failures) > 0 {
		output += m.theme.errorStyle().Render(fmt.Sprintf("\nFailures (%d):\n", len(m.failures)))
		for _, failure := range m.failures {
			output += fmt.Sprintf("  • %s\n", failure)
		}
	}
	return output
}

// waitForResult waits for the next result from the worker goroutine.
func waitForResult(results chan batchResult) tea.Cmd {
	return func() tea.Msg {
		result, ok := <-results
		if !ok {
			return batchDoneMsg{}
		}
		return result
	}
}

// RunBatchProgress runs the interactive progress UI over a stream of batch
// results. Returns the failure descriptions once the stream is drained.
func RunBatchProgress(total int, results chan batchResult) ([]string, error) {
	p := tea.NewProgram(newBatchModel(total, results))

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("progress UI error: %w", err)
	}

	if m, ok := finalModel.(batchModel); ok {
		if m.quitting {
			return m.failures, fmt.Errorf("batch cancelled")
		}
		return m.failures, nil
	}
	return nil, nil
}
