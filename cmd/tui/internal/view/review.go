package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/mfpinhal/extrato/internal/category"
	"github.com/mfpinhal/extrato/internal/statement"
	"github.com/mfpinhal/extrato/internal/transaction"
)

// ReviewModel steps through uncategorized transactions one at a time. The
// matcher's suggestion is pre-filled; the user accepts it with Enter or types
// another category name. Unknown names create the category on the fly.
type ReviewModel struct {
	CommonModel
	txService   *transaction.Service
	catService  *category.Service
	workspaceID int64

	queue      []*transaction.Transaction
	currentTx  *transaction.Transaction
	categories map[string]uuid.UUID

	catInput textinput.Model

	status     string
	loading    bool
	totalCount int
}

func NewReviewModel(txSvc *transaction.Service, catSvc *category.Service, workspaceID int64) ReviewModel {
	ti := textinput.New()
	ti.Placeholder = "Category"
	ti.Width = 40

	return ReviewModel{
		txService:   txSvc,
		catService:  catSvc,
		workspaceID: workspaceID,
		catInput:    ti,
		status:      "Loading...",
		loading:     true,
	}
}

func (m ReviewModel) Init() tea.Cmd {
	return m.loadQueueCmd()
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.Type {
		case tea.KeyEsc:
			return m, Back

		case tea.KeyEnter:
			if m.currentTx != nil {
				return m, m.saveAndNextCmd(m.catInput.Value())
			}

		case tea.KeyCtrlS:
			// Skip without categorizing.
			if m.currentTx != nil {
				m.nextTx()
				return m, textinput.Blink
			}
		}

	case reviewQueueMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error loading transactions: %v", msg.err)
			break
		}

		m.queue = msg.txs
		m.totalCount = len(m.queue)
		m.categories = msg.categories

		if len(m.queue) > 0 {
			m.nextTx()
			return m, textinput.Blink
		}

		m.status = "Nothing left to review."

	case reviewSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			break
		}

		if msg.createdID != uuid.Nil {
			m.categories[strings.ToLower(msg.createdName)] = msg.createdID
		}

		if len(m.queue) > 0 {
			m.nextTx()
			return m, textinput.Blink
		}

		m.currentTx = nil
		m.status = "All done!"
		m.catInput.SetValue("")
	}

	m.catInput, cmd = m.catInput.Update(msg)

	return m, cmd
}

func (m ReviewModel) View() string {
	content := ""

	switch {
	case m.loading:
		content = "Loading uncategorized transactions..."
	case m.currentTx != nil:
		sign := ""
		if m.currentTx.Type == transaction.TypeExpense {
			sign = "-"
		}

		flag := ""
		if m.currentTx.DirectionInferred {
			flag = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render("  (direction inferred, check the sign)")
		}

		info := fmt.Sprintf(
			"Date:   %s\nBank:   %s\nAmount: %s%s%s\nDesc:   %s\n",
			FormatDate(m.currentTx.Date),
			m.currentTx.Bank,
			sign,
			FormatAmount(m.currentTx.Amount),
			flag,
			m.currentTx.Description,
		)
		content = fmt.Sprintf(
			"%s\n%s\nCategory:\n%s\n\n(Enter to save & next, Ctrl+S to skip, Esc to back)",
			m.status, info, m.catInput.View(),
		)
	default:
		content = m.status + "\n\n(Esc to back)"
	}

	return lipgloss.NewStyle().Padding(2).Render(content)
}

type reviewQueueMsg struct {
	txs        []*transaction.Transaction
	categories map[string]uuid.UUID
	err        error
}

func (m ReviewModel) loadQueueCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := m.txService.List(ctx, m.workspaceID, transaction.ListFilter{Uncategorized: true})
		if err != nil {
			return reviewQueueMsg{err: err}
		}

		cats, err := m.catService.ListCategories(ctx, m.workspaceID)
		if err != nil {
			return reviewQueueMsg{err: err}
		}

		byName := make(map[string]uuid.UUID, len(cats))
		for _, c := range cats {
			byName[strings.ToLower(c.Name)] = c.ID
		}

		return reviewQueueMsg{txs: txs, categories: byName}
	}
}

func (m *ReviewModel) nextTx() {
	if len(m.queue) == 0 {
		m.currentTx = nil
		m.status = "All done!"
		m.catInput.Blur()

		return
	}

	tx := m.queue[0]
	m.queue = m.queue[1:]
	m.currentTx = tx

	m.status = fmt.Sprintf("Reviewing %d/%d", m.totalCount-len(m.queue), m.totalCount)
	m.catInput.Focus()

	suggestion := ""

	ctx, cancel := DbCtx()
	defer cancel()

	if tx.Type == transaction.TypeIncome {
		suggestion = category.NameIncome
	} else if match, err := m.catService.Match(ctx, m.workspaceID, statement.Bank(tx.Bank), tx.Description); err == nil && match != nil {
		suggestion = match.CategoryName
	}

	m.catInput.SetValue(suggestion)
}

type reviewSavedMsg struct {
	createdName string
	createdID   uuid.UUID
	err         error
}

func (m ReviewModel) saveAndNextCmd(name string) tea.Cmd {
	tx := m.currentTx
	categories := m.categories

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		name = strings.TrimSpace(name)
		if name == "" {
			// Empty input leaves the transaction uncategorized.
			return reviewSavedMsg{}
		}

		msg := reviewSavedMsg{}

		id, ok := categories[strings.ToLower(name)]
		if !ok {
			c, err := m.catService.CreateCategory(ctx, m.workspaceID, name)
			if err != nil {
				return reviewSavedMsg{err: err}
			}

			id = c.ID
			msg.createdName = c.Name
			msg.createdID = c.ID
		}

		msg.err = m.txService.Categorize(ctx, m.workspaceID, tx.ID, &id)

		return msg
	}
}
