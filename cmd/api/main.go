package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/mfpinhal/extrato/internal/auth"
	"github.com/mfpinhal/extrato/internal/category"
	categoryStore "github.com/mfpinhal/extrato/internal/category/store"
	"github.com/mfpinhal/extrato/internal/config"
	"github.com/mfpinhal/extrato/internal/database"
	"github.com/mfpinhal/extrato/internal/export"
	extratoHttp "github.com/mfpinhal/extrato/internal/http"
	categoryHandler "github.com/mfpinhal/extrato/internal/http/category"
	exportHandler "github.com/mfpinhal/extrato/internal/http/export"
	recurringHandler "github.com/mfpinhal/extrato/internal/http/recurring"
	statementHandler "github.com/mfpinhal/extrato/internal/http/statement"
	txHandler "github.com/mfpinhal/extrato/internal/http/transaction"
	workspaceHandler "github.com/mfpinhal/extrato/internal/http/workspace"
	"github.com/mfpinhal/extrato/internal/recurring"
	recurringStore "github.com/mfpinhal/extrato/internal/recurring/store"
	"github.com/mfpinhal/extrato/internal/statement"
	"github.com/mfpinhal/extrato/internal/transaction"
	txStore "github.com/mfpinhal/extrato/internal/transaction/store"
	"github.com/mfpinhal/extrato/internal/workspace"
	workspaceStore "github.com/mfpinhal/extrato/internal/workspace/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.Auth.JWTSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	transactions := txStore.New(db)

	var (
		authService        = auth.NewService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		workspaceService   = workspace.NewService(workspaceStore.New(db))
		transactionService = transaction.NewService(transactions)
		statementService   = statement.NewService()
		categoryService    = category.NewService(categoryStore.New(db), transactions, cfg.Category.PatternCacheTTL)
		recurringService   = recurring.NewService(recurringStore.New(db), transactions)
		exportService      = export.NewService(transactionService)
	)

	if cfg.Auth.BootstrapUserID != "" {
		userID, err := uuid.Parse(cfg.Auth.BootstrapUserID)
		if err != nil {
			slog.Error("invalid BOOTSTRAP_USER_ID", "error", err)
			os.Exit(1)
		}

		token, err := authService.IssueToken(userID)
		if err != nil {
			slog.Error("failed to issue bootstrap token", "error", err)
			os.Exit(1)
		}

		slog.Info("issued bootstrap token", "user_id", userID, "token", token)
	}

	var (
		workspaceH   = workspaceHandler.NewHandler(workspaceService)
		statementH   = statementHandler.NewHandler(statementService, categoryService, transactionService)
		transactionH = txHandler.NewHandler(transactionService)
		categoryH    = categoryHandler.NewHandler(categoryService)
		recurringH   = recurringHandler.NewHandler(recurringService)
		exportH      = exportHandler.NewHandler(exportService)
	)

	router := extratoHttp.New(authService, workspaceH, statementH, transactionH, categoryH, recurringH, exportH)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "addr", server.Addr)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
