package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/mfpinhal/extrato/internal/category"
	"github.com/mfpinhal/extrato/internal/transaction"
)

type txState int

const (
	txStateTimeframe txState = iota
	txStateTable
	txStateEditing
)

const noCategory = "(none)"

type TransactionsModel struct {
	CommonModel
	txService   *transaction.Service
	catService  *category.Service
	workspaceID int64

	state           txState
	timeframePicker TimeframePicker
	table           table.Model
	form            *huh.Form
	txs             []*transaction.Transaction
	categories      []*category.Category
	selectedTx      *transaction.Transaction

	startDate time.Time
	endDate   time.Time
	allTime   bool
	loading   bool
	status    string

	formDesc     string
	formCategory string
}

func NewTransactionsModel(txSvc *transaction.Service, catSvc *category.Service, workspaceID int64) TransactionsModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 10},
			{Title: "Bank", Width: 10},
			{Title: "Amount", Width: 12},
			{Title: "Category", Width: 18},
			{Title: "Description", Width: 48},
		}),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	return TransactionsModel{
		txService:       txSvc,
		catService:      catSvc,
		workspaceID:     workspaceID,
		timeframePicker: NewTimeframePicker(TimeframeThisWeek),
		table:           t,
	}
}

func (m TransactionsModel) Init() tea.Cmd {
	return nil
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.startDate = msg.Start
		m.endDate = msg.End
		m.allTime = msg.All
		m.loading = true
		m.state = txStateTable

		return m, m.loadTxsCmd()

	case loadTxsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.txs = msg.txs
		m.categories = msg.categories
		m.refreshRows()

		if len(msg.txs) == 0 {
			m.status = "No transactions found."
		} else {
			m.status = fmt.Sprintf("%d transactions", len(msg.txs))
		}

		return m, nil

	case saveTxResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			m.state = txStateTable

			return m, nil
		}

		m.status = "Saved."
		m.state = txStateTable
		m.loading = true

		return m, m.loadTxsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 8)
		return m, nil
	}

	switch m.state {
	case txStateTimeframe:
		return m.updateTimeframe(msg)
	case txStateTable:
		return m.updateTable(msg)
	case txStateEditing:
		return m.updateEditing(msg)
	}

	return m, nil
}

func (m TransactionsModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m TransactionsModel) updateTable(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			return m, Back
		case tea.KeyEnter:
			return m.startEditing()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TransactionsModel) startEditing() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return m, nil
	}

	m.selectedTx = m.txs[idx]
	m.formDesc = m.selectedTx.Description
	m.formCategory = noCategory

	if m.selectedTx.CategoryName != "" {
		m.formCategory = m.selectedTx.CategoryName
	}

	options := make([]huh.Option[string], 0, len(m.categories)+1)
	options = append(options, huh.NewOption(noCategory, noCategory))

	for _, c := range m.categories {
		options = append(options, huh.NewOption(c.Name, c.Name))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDesc).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("description cannot be empty")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(options...).
				Value(&m.formCategory),
		),
	).WithWidth(60).WithShowHelp(false)

	m.state = txStateEditing

	return m, m.form.Init()
}

func (m TransactionsModel) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = txStateTable
			m.form = nil

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveTxCmd()
}

func (m TransactionsModel) View() string {
	switch m.state {
	case txStateTimeframe:
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())

	case txStateTable:
		if m.loading {
			return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
		}

		statusLine := lipgloss.NewStyle().Faint(true).Render(m.status)

		return lipgloss.NewStyle().Padding(1).Render(
			statusLine + "\n" + m.table.View() + "\n\n(Enter to edit, Esc to back)",
		)

	case txStateEditing:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(
			m.txInfoView() + "\n" + m.form.View(),
		)
	}

	return ""
}

func (m TransactionsModel) txInfoView() string {
	if m.selectedTx == nil {
		return ""
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(fmt.Sprintf(
			"Date: %s  |  Type: %s  |  Amount: %s\nRaw: %s",
			FormatDate(m.selectedTx.Date),
			m.selectedTx.Type,
			FormatAmount(m.selectedTx.Amount),
			m.selectedTx.RawDescription,
		))
}

func (m *TransactionsModel) refreshRows() {
	rows := make([]table.Row, len(m.txs))

	for i, tx := range m.txs {
		amount := FormatAmount(tx.Amount)
		if tx.Type == transaction.TypeExpense {
			amount = "-" + amount
		}

		cat := tx.CategoryName
		if cat == "" {
			cat = noCategory
		}

		rows[i] = table.Row{FormatDate(tx.Date), tx.Bank, amount, cat, tx.Description}
	}

	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

type loadTxsMsg struct {
	txs        []*transaction.Transaction
	categories []*category.Category
	err        error
}

func (m TransactionsModel) loadTxsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		filter := transaction.ListFilter{}

		if !m.allTime {
			start, end := m.startDate, m.endDate
			filter.StartDate = &start
			filter.EndDate = &end
		}

		txs, err := m.txService.List(ctx, m.workspaceID, filter)
		if err != nil {
			return loadTxsMsg{err: err}
		}

		cats, err := m.catService.ListCategories(ctx, m.workspaceID)
		if err != nil {
			return loadTxsMsg{err: err}
		}

		return loadTxsMsg{txs: txs, categories: cats}
	}
}

type saveTxResultMsg struct {
	err error
}

func (m TransactionsModel) saveTxCmd() tea.Cmd {
	tx := m.selectedTx
	desc := m.formDesc
	catName := m.formCategory
	categories := m.categories
	txSvc := m.txService
	workspaceID := m.workspaceID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if desc != tx.Description {
			tx.Description = desc

			if err := txSvc.Update(ctx, tx); err != nil {
				return saveTxResultMsg{err: err}
			}
		}

		if catName == tx.CategoryName || (catName == noCategory && tx.CategoryName == "") {
			return saveTxResultMsg{}
		}

		var categoryID *uuid.UUID

		for _, c := range categories {
			if c.Name == catName {
				categoryID = &c.ID
				break
			}
		}

		return saveTxResultMsg{err: txSvc.Categorize(ctx, workspaceID, tx.ID, categoryID)}
	}
}
