// Package tui is the interactive terminal front end: a file picker, a SQL
// editor, a result grid, modal notices and a status label, all driven by a
// querydesk.Controller inside one bubbletea update loop.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nao1215/querydesk"
	"github.com/nao1215/querydesk/domain/model"
)

const (
	appTitle          = "AI QUERY ANALYSER"
	loadButtonLabel   = "Load CSV File"
	runButtonLabel    = "Run Query"
	resultFrameTitle  = "Query Result"
	pickerTitle       = "Open File"
	editorHeight      = 8
	defaultGridHeight = 10
	// lines taken by everything except the grid body
	chromeHeight = 18
	minGridLines = 3
)

type focus int

const (
	focusEditor focus = iota
	focusGrid
)

// Options configures the terminal front end.
type Options struct {
	// ColumnWidth is the fixed width of every result column.
	ColumnWidth int
	// StartDir is where the file picker opens. Defaults to ".".
	StartDir string
	// InitialFile is loaded before the first frame when set.
	InitialFile string
}

// Model is the bubbletea model of the application window.
type Model struct {
	ctx        context.Context
	controller *querydesk.Controller

	editor     textarea.Model
	grid       *resultGrid
	picker     filepicker.Model
	showPicker bool
	allFiles   bool
	focus      focus
	notice     querydesk.Notice

	width  int
	height int
}

// New returns the initial model. When opts.InitialFile is set it is loaded
// right away and the resulting notice is the first thing shown.
func New(ctx context.Context, controller *querydesk.Controller, opts Options) Model {
	if opts.ColumnWidth <= 0 {
		opts.ColumnWidth = 100
	}
	if opts.StartDir == "" {
		opts.StartDir = "."
	}

	editor := textarea.New()
	editor.CharLimit = 0
	editor.ShowLineNumbers = false
	editor.Placeholder = querydesk.PlaceholderQuery
	editor.SetHeight(editorHeight)
	editor.SetValue(controller.DefaultQuery())
	editor.Focus()

	picker := filepicker.New()
	picker.CurrentDirectory = opts.StartDir

	m := Model{
		ctx:        ctx,
		controller: controller,
		editor:     editor,
		grid:       newResultGrid(opts.ColumnWidth),
		picker:     picker,
		focus:      focusEditor,
	}
	m.picker.AllowedTypes = m.allowedTypes()

	if opts.InitialFile != "" {
		m.load(opts.InitialFile)
	}
	return m
}

// Init sets the window title and starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle(appTitle), textarea.Blink)
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	if m.showPicker {
		m.picker, cmd = m.picker.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.editor, cmd = m.editor.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// A notice is modal.
	if !m.notice.IsZero() {
		switch msg.String() {
		case "enter", "esc":
			m.notice = querydesk.Notice{}
		}
		return m, nil
	}

	if m.showPicker {
		return m.updatePicker(msg)
	}

	switch msg.String() {
	case "ctrl+o":
		return m.openPicker()
	case "ctrl+r":
		m.runQuery()
		return m, nil
	case "tab":
		return m, m.toggleFocus()
	}

	var cmd tea.Cmd
	if m.focus == focusEditor {
		m.editor, cmd = m.editor.Update(msg)
	} else {
		m.grid.table, cmd = m.grid.table.Update(msg)
	}
	return m, cmd
}

func (m Model) openPicker() (tea.Model, tea.Cmd) {
	m.showPicker = true
	m.picker.AllowedTypes = m.allowedTypes()
	return m, m.picker.Init()
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+o":
		m.showPicker = false
		return m, nil
	case "a":
		m.allFiles = !m.allFiles
		m.picker.AllowedTypes = m.allowedTypes()
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.showPicker = false
		m.load(path)
		return m, cmd
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.notice = disabledFileNotice(path)
	}
	return m, cmd
}

// disabledFileNotice explains why the picker refused path. Formats the
// loader still understands get a hint that they can be opened anyway.
func disabledFileNotice(path string) querydesk.Notice {
	hint := "Press 'a' to show all files."
	if model.IsSupportedFile(path) {
		hint = "It can still be loaded: press 'a' to show all files."
	}
	return querydesk.Notice{
		Level:   querydesk.NoticeWarning,
		Title:   "Warning",
		Message: fmt.Sprintf("%s is not a CSV file.\n%s", filepath.Base(path), hint),
	}
}

// allowedTypes is nil when every file may be picked.
func (m Model) allowedTypes() []string {
	if m.allFiles {
		return nil
	}
	return model.SupportedExtensions()
}

// load replaces the dataset. The editor is reset to the default query only
// when the load succeeds.
func (m *Model) load(path string) {
	m.notice = m.controller.Load(m.ctx, path)
	if m.notice.Level == querydesk.NoticeInfo {
		m.editor.SetValue(m.controller.DefaultQuery())
	}
}

func (m *Model) runQuery() {
	m.notice = m.controller.RunQuery(m.ctx, m.editor.Value(), m.grid)
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == focusEditor {
		m.focus = focusGrid
		m.editor.Blur()
		m.grid.table.Focus()
		return nil
	}
	m.focus = focusEditor
	m.grid.table.Blur()
	return m.editor.Focus()
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	inner := max(width-4, 10)
	m.editor.SetWidth(inner)
	m.grid.table.SetWidth(inner)
	m.grid.table.SetHeight(max(height-chromeHeight, minGridLines))
}

// View renders the window.
func (m Model) View() string {
	if !m.notice.IsZero() {
		return m.place(m.viewNotice())
	}
	if m.showPicker {
		return m.viewPicker()
	}
	return m.viewMain()
}

func (m Model) place(s string) string {
	if m.width == 0 || m.height == 0 {
		return s
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, s)
}

func (m Model) viewMain() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(appTitle))
	b.WriteString("\n")

	status := statusErrorStyle.Render(m.controller.StatusLabel())
	if m.controller.Session().Loaded() {
		status = statusSuccessStyle.Render(m.controller.StatusLabel())
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
		buttonStyle.Render("ctrl+o "+loadButtonLabel), " ", status))
	b.WriteString("\n")

	b.WriteString(frameTitleStyle.Render(m.controller.QueryTitle()))
	b.WriteString("\n")
	b.WriteString(m.frame(focusEditor).Render(m.editor.View()))
	b.WriteString("\n")
	b.WriteString(buttonStyle.Render("ctrl+r " + runButtonLabel))
	b.WriteString("\n")

	b.WriteString(frameTitleStyle.Render(resultFrameTitle))
	b.WriteString("\n")
	grid := dimStyle.Render("(no result)")
	if !m.grid.empty() {
		grid = m.grid.table.View()
	}
	b.WriteString(m.frame(focusGrid).Render(grid))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("ctrl+o open  ctrl+r run  tab switch focus  ctrl+c quit"))
	return b.String()
}

func (m Model) frame(f focus) lipgloss.Style {
	if m.focus == f {
		return focusedFrameStyle
	}
	return frameStyle
}

func (m Model) viewPicker() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(pickerTitle))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.picker.CurrentDirectory))
	b.WriteString("\n\n")
	b.WriteString(m.picker.View())
	b.WriteString("\n")
	filter := "CSV files"
	if m.allFiles {
		filter = "All files"
	}
	b.WriteString(dimStyle.Render("showing: " + filter + "  a toggle  enter select  q cancel"))
	return b.String()
}

func (m Model) viewNotice() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		frameTitleStyle.Render(m.notice.Title),
		"",
		m.notice.Message,
		"",
		dimStyle.Render("enter/esc to close"),
	)
	return dialogStyle.BorderForeground(dialogBorderColor(m.notice.Level)).Render(body)
}

// Run starts the terminal front end and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, controller *querydesk.Controller, opts Options) error {
	p := tea.NewProgram(New(ctx, controller, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal ui: %w", err)
	}
	return nil
}
