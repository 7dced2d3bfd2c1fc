package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mfpinhal/extrato/internal/recurring"
)

// RecurringModel lists detected recurring patterns and can trigger a fresh
// detection run over the workspace's history.
type RecurringModel struct {
	CommonModel
	svc         *recurring.Service
	workspaceID int64

	table    table.Model
	patterns []*recurring.Pattern

	loading bool
	status  string
}

func NewRecurringModel(svc *recurring.Service, workspaceID int64) RecurringModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Description", Width: 40},
			{Title: "Frequency", Width: 10},
			{Title: "Type", Width: 8},
			{Title: "Avg", Width: 12},
			{Title: "Count", Width: 6},
			{Title: "Active", Width: 6},
		}),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	return RecurringModel{
		svc:         svc,
		workspaceID: workspaceID,
		table:       t,
		loading:     true,
		status:      "Loading...",
	}
}

func (m RecurringModel) Init() tea.Cmd {
	return m.loadPatternsCmd()
}

func (m RecurringModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "esc":
			return m, Back
		case "d":
			m.loading = true
			m.status = "Running detection..."

			return m, m.detectCmd()
		}

	case recurringLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.patterns = msg.patterns
		m.refreshRows()
		m.status = fmt.Sprintf("%d recurring patterns", len(m.patterns))

		return m, nil

	case detectDoneMsg:
		if msg.err != nil {
			m.loading = false
			m.status = fmt.Sprintf("Detection failed: %v", msg.err)

			return m, nil
		}

		m.status = fmt.Sprintf("Detection done: %d new patterns", msg.detected)

		return m, m.loadPatternsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 8)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m RecurringModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	}

	statusLine := lipgloss.NewStyle().Faint(true).Render(m.status)

	return lipgloss.NewStyle().Padding(1).Render(
		statusLine + "\n" + m.table.View() + "\n\n(d to run detection, Esc to back)",
	)
}

func (m *RecurringModel) refreshRows() {
	rows := make([]table.Row, len(m.patterns))

	for i, p := range m.patterns {
		active := "no"
		if p.IsActive {
			active = "yes"
		}

		rows[i] = table.Row{
			p.DescriptionPattern,
			string(p.Frequency),
			string(p.Type),
			FormatAmount(p.AvgAmount),
			fmt.Sprintf("%d", p.OccurrenceCount),
			active,
		}
	}

	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

type recurringLoadedMsg struct {
	patterns []*recurring.Pattern
	err      error
}

func (m RecurringModel) loadPatternsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		patterns, err := m.svc.ListPatterns(ctx, m.workspaceID)

		return recurringLoadedMsg{patterns: patterns, err: err}
	}
}

type detectDoneMsg struct {
	detected int
	err      error
}

func (m RecurringModel) detectCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		result, err := m.svc.Detect(ctx, m.workspaceID)
		if err != nil {
			return detectDoneMsg{err: err}
		}

		return detectDoneMsg{detected: result.Detected}
	}
}
