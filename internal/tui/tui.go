// Package tui provides a Bubble Tea terminal user interface for tunesort.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tunesort/tunesort/internal/config"
	"github.com/tunesort/tunesort/internal/organize"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// maxPreviewEntries limits how many planned moves the preview lists.
const maxPreviewEntries = 15

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateScanning
	StatePreview
	StateApplying
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   organize.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	err       error

	// Organize context
	ctx    context.Context
	cancel context.CancelFunc

	// Organize manager reference
	manager *organize.Manager
	entries []organize.Entry

	// Apply progress
	totalFiles     int32
	processedFiles int32

	// Options
	copyFiles bool
	playlists bool
	verbose   bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel(settings *config.Settings) Model {
	ti := textinput.New()
	ti.Placeholder = settings.LibraryPath
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		logs:      make([]LogEntry, 0),
		copyFiles: settings.CopyInsteadOfMove,
		playlists: settings.CreatePlaylists,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent when organizing progress updates.
	ProgressMsg struct {
		Event organize.ProgressEvent
	}

	// ScanDoneMsg is sent when scanning and planning complete.
	ScanDoneMsg struct {
		Entries []organize.Entry
		Manager *organize.Manager
		Err     error
	}

	// ApplyDoneMsg is sent when all file operations complete.
	ApplyDoneMsg struct {
		Processed int32
		Total     int32
		Err       error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput || m.state == StatePreview {
				return m, tea.Quit
			}
			if m.state == StateScanning || m.state == StateApplying {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateInput {
				m.state = StateScanning
				return m, tea.Batch(m.startScan(), m.spinner.Tick)
			}
			if m.state == StatePreview {
				m.state = StateApplying
				return m, tea.Batch(m.startApply(), m.tickProgress())
			}

		case "c":
			if m.state == StateInput {
				m.copyFiles = !m.copyFiles
			}

		case "p":
			if m.state == StateInput {
				m.playlists = !m.playlists
			}

		case "v":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for another run
				m.state = StateInput
				m.logs = nil
				m.entries = nil
				m.err = nil
				m.processedFiles = 0
				m.totalFiles = 0
				m.manager = nil
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.SetValue("")
				m.textInput.Focus()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		// Filter verbose messages if not in verbose mode
		if msg.Event.Level == organize.LevelVerbose && !m.verbose {
			return m, nil
		}
		m.logs = append(m.logs, LogEntry{
			Message: msg.Event.Message,
			Level:   msg.Event.Level,
		})
		// Keep only last 10 logs
		if len(m.logs) > 10 {
			m.logs = m.logs[len(m.logs)-10:]
		}

	case ScanDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.entries = msg.Entries
			m.manager = msg.Manager
			m.state = StatePreview
		}

	case ApplyDoneMsg:
		m.processedFiles = msg.Processed
		m.totalFiles = msg.Total
		if msg.Err != nil && m.ctx.Err() == nil {
			m.state = StateError
			m.err = msg.Err
		} else if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else {
			m.state = StateComplete
		}

	case TickMsg:
		// Update progress from manager
		if m.manager != nil && m.state == StateApplying {
			processed, total := m.manager.GetProgress()
			m.processedFiles = processed
			m.totalFiles = total

			var percent float64
			if total > 0 {
				percent = float64(processed) / float64(total)
			}
			progressCmd := m.progress.SetPercent(percent)
			cmds = append(cmds, progressCmd, m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("tunesort"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Organize your music library"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateScanning:
		b.WriteString(m.viewScanning())
	case StatePreview:
		b.WriteString(m.viewPreview())
	case StateApplying:
		b.WriteString(m.viewApplying())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Library path to scan:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	// Options
	copyCheck := "[ ]"
	if m.copyFiles {
		copyCheck = "[x]"
	}
	playlistCheck := "[ ]"
	if m.playlists {
		playlistCheck = "[x]"
	}
	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[x]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Copy instead of move (c)\n", copyCheck))
	b.WriteString(fmt.Sprintf("  %s Create playlists (p)\n", playlistCheck))
	b.WriteString(fmt.Sprintf("  %s Verbose output (v)\n", verboseCheck))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Template:    %s", m.settings.Template)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Destination: %s", m.settings.DestinationPath)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewScanning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Scanning library..."))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewPreview() string {
	var b strings.Builder

	if len(m.entries) == 0 {
		b.WriteString(warningStyle.Render("Nothing to organize."))
		b.WriteString("\n\n")
		b.WriteString(m.renderLogs())
		return b.String()
	}

	b.WriteString(successStyle.Render(fmt.Sprintf("Planned %d file(s):", len(m.entries))))
	b.WriteString("\n")

	shown := m.entries
	if len(shown) > maxPreviewEntries {
		shown = shown[:maxPreviewEntries]
	}
	for _, entry := range shown {
		b.WriteString(pathStyle.Render(fmt.Sprintf("  %s", entry.Destination)))
		b.WriteString("\n")
	}
	if len(m.entries) > maxPreviewEntries {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  ... and %d more", len(m.entries)-maxPreviewEntries)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewApplying() string {
	var b strings.Builder

	var percent float64
	if m.totalFiles > 0 {
		percent = float64(m.processedFiles) / float64(m.totalFiles)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf("Files: %d/%d", m.processedFiles, m.totalFiles)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	box := boxStyle.Render(fmt.Sprintf(
		"Done!\n\n"+
			"Organized: %d/%d files\n"+
			"Library:   %s",
		m.processedFiles,
		m.totalFiles,
		m.settings.DestinationPath,
	))
	b.WriteString(box)

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "-"
		switch log.Level {
		case organize.LevelError:
			style = errorStyle
			prefix = "x"
		case organize.LevelWarning:
			style = warningStyle
			prefix = "!"
		case organize.LevelSuccess:
			style = successStyle
			prefix = "+"
		case organize.LevelInfo:
			style = infoStyle
			prefix = ">"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: scan | c: copy | p: playlists | v: verbose | esc: quit"
	case StateScanning, StateApplying:
		return "esc: cancel"
	case StatePreview:
		return "enter: apply | esc: quit"
	case StateComplete, StateError:
		return "r: another run | q: quit"
	}
	return ""
}

// startScan scans the library, plans destinations and creates the manager.
func (m *Model) startScan() tea.Cmd {
	return func() tea.Msg {
		settings := *m.settings
		if value := strings.TrimSpace(m.textInput.Value()); value != "" {
			settings.LibraryPath = filepath.Clean(value)
		}
		settings.CopyInsteadOfMove = m.copyFiles
		settings.CreatePlaylists = m.playlists

		manager := organize.NewManager(&settings, func(event organize.ProgressEvent) {
			// Progress events are collected but not sent directly.
			// The TUI polls for progress via TickMsg.
		})

		if err := manager.Scan(m.ctx); err != nil {
			return ScanDoneMsg{Err: err}
		}

		return ScanDoneMsg{
			Entries: manager.Plan(),
			Manager: manager,
		}
	}
}

// startApply executes the plan in the background.
func (m *Model) startApply() tea.Cmd {
	return func() tea.Msg {
		if m.manager == nil {
			return ApplyDoneMsg{Err: fmt.Errorf("no manager")}
		}

		err := m.manager.Apply(m.ctx)
		processed, total := m.manager.GetProgress()

		return ApplyDoneMsg{
			Processed: processed,
			Total:     total,
			Err:       err,
		}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
