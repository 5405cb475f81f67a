package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tilegen/internal/config"
	"github.com/vovakirdan/tui-tilegen/internal/wfc"
)

// Inspector layout constants
const (
	maxIssueLines = 6 // Lint findings shown below the table
	chromeLines   = 8 // Title, borders, issues header and help
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

// inspectColumns are the catalog table columns.
var inspectColumns = []table.Column{
	{Title: "Code", Width: 6},
	{Title: "Asset", Width: 18},
	{Title: "Glyph", Width: 5},
	{Title: "Top", Width: 12},
	{Title: "Right", Width: 12},
	{Title: "Bottom", Width: 12},
	{Title: "Left", Width: 12},
}

// CatalogRows renders one table row per tile of ts, in code order.
func CatalogRows(ts *config.Tileset) []table.Row {
	p := NewPainter(ts)
	domain := ts.Catalog.Domain()
	rows := make([]table.Row, 0, len(domain))
	for _, code := range domain {
		m, err := ts.Catalog.Lookup(code)
		if err != nil {
			continue
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", code),
			m.Asset,
			string(p.Cell(m.Asset).Rune),
			m.Forbidden.Side(wfc.DirTop).String(),
			m.Forbidden.Side(wfc.DirRight).String(),
			m.Forbidden.Side(wfc.DirBottom).String(),
			m.Forbidden.Side(wfc.DirLeft).String(),
		})
	}
	return rows
}

// InspectModel is the Bubble Tea model for browsing a tileset catalog.
type InspectModel struct {
	tileset   *config.Tileset
	issues    []wfc.Issue
	table     table.Model
	help      help.Model
	keys      ListKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool // True if user pressed back (not quit)
}

// NewInspectModel creates a new inspector for ts.
func NewInspectModel(ts *config.Tileset, width, height int) InspectModel {
	keys := DefaultListKeyMap()
	keys.Select.SetEnabled(false)
	keys.Inspect.SetEnabled(false)

	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := InspectModel{
		tileset: ts,
		issues:  ts.Catalog.Lint(),
		keys:    keys,
		help:    h,
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	return m
}

// createTable creates the catalog table sized to the window.
func (m *InspectModel) createTable() table.Model {
	height := m.height - chromeLines - min(len(m.issues), maxIssueLines)
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(inspectColumns),
		table.WithRows(CatalogRows(m.tileset)),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Init initializes the inspector.
func (m InspectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the inspector.
func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the inspector.
func (m InspectModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf("%s  (%d tiles, %s)", m.tileset.Name, m.tileset.Catalog.Len(), m.tileset.Source)
	b.WriteString(titleStyle.MarginBottom(1).Render(title))
	b.WriteString("\n")
	if m.tileset.Description != "" {
		b.WriteString(dimStyle.Render(m.tileset.Description))
		b.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.table.View()))
	b.WriteString("\n")

	b.WriteString(m.renderIssues())

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderIssues lists lint findings, or a note that there are none.
func (m InspectModel) renderIssues() string {
	if len(m.issues) == 0 {
		return okStyle.Render("rules are symmetric") + "\n"
	}

	var b strings.Builder
	b.WriteString(warnStyle.Render(fmt.Sprintf("%d lint finding(s):", len(m.issues))))
	b.WriteString("\n")
	for i, issue := range m.issues {
		if i == maxIssueLines {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  ... %d more", len(m.issues)-maxIssueLines)))
			b.WriteString("\n")
			break
		}
		b.WriteString("  " + issue.String())
		b.WriteString("\n")
	}
	return b.String()
}

// IsGoingBack returns true if user wants to go back to the menu.
func (m InspectModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m InspectModel) IsQuitting() bool {
	return m.quitting
}

// RunInspect runs the inspector screen.
// Returns true if user wants to go back to the menu, false if quitting.
func RunInspect(ts *config.Tileset, width, height int) (goBack bool, err error) {
	model := NewInspectModel(ts, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(InspectModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
