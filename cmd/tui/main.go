package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/mfpinhal/extrato/cmd/tui/internal/view"
	"github.com/mfpinhal/extrato/internal/category"
	categoryStore "github.com/mfpinhal/extrato/internal/category/store"
	"github.com/mfpinhal/extrato/internal/config"
	"github.com/mfpinhal/extrato/internal/database"
	"github.com/mfpinhal/extrato/internal/recurring"
	recurringStore "github.com/mfpinhal/extrato/internal/recurring/store"
	"github.com/mfpinhal/extrato/internal/transaction"
	txStore "github.com/mfpinhal/extrato/internal/transaction/store"
)

type model struct {
	txService        *transaction.Service
	categoryService  *category.Service
	recurringService *recurring.Service
	workspaceID      int64

	currentView View

	reviewView       view.ReviewModel
	transactionsView view.TransactionsModel
	recurringView    view.RecurringModel
}

type View int

const (
	ViewMenu         View = 0
	ViewReview       View = 1
	ViewTransactions View = 2
	ViewRecurring    View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	transactions := txStore.New(db)

	txSvc := transaction.NewService(transactions)
	catSvc := category.NewService(categoryStore.New(db), transactions, cfg.Category.PatternCacheTTL)
	recSvc := recurring.NewService(recurringStore.New(db), transactions)
	workspaceID := cfg.TUI.WorkspaceID

	return model{
		txService:        txSvc,
		categoryService:  catSvc,
		recurringService: recSvc,
		workspaceID:      workspaceID,
		currentView:      ViewMenu,
		reviewView:       view.NewReviewModel(txSvc, catSvc, workspaceID),
		transactionsView: view.NewTransactionsModel(txSvc, catSvc, workspaceID),
		recurringView:    view.NewRecurringModel(recSvc, workspaceID),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewReview
				m.reviewView = view.NewReviewModel(m.txService, m.categoryService, m.workspaceID)

				return m, m.reviewView.Init()
			case "2":
				m.currentView = ViewTransactions
				m.transactionsView = view.NewTransactionsModel(m.txService, m.categoryService, m.workspaceID)

				return m, m.transactionsView.Init()
			case "3":
				m.currentView = ViewRecurring
				m.recurringView = view.NewRecurringModel(m.recurringService, m.workspaceID)

				return m, m.recurringView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewReview:
		var newModel tea.Model
		newModel, cmd = m.reviewView.Update(msg)
		m.reviewView = newModel.(view.ReviewModel)
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewRecurring:
		var newModel tea.Model
		newModel, cmd = m.recurringView.Update(msg)
		m.recurringView = newModel.(view.RecurringModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Extrato TUI\n\n" +
				"1. Review Categories\n" +
				"2. Browse Transactions\n" +
				"3. Recurring Patterns\n\n" +
				"q. Quit",
		)
	case ViewReview:
		return m.reviewView.View()
	case ViewTransactions:
		return m.transactionsView.View()
	case ViewRecurring:
		return m.recurringView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
