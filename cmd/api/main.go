package main

import (
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/fkhayef/friendpay/docs"
	"github.com/fkhayef/friendpay/internal/account"
	"github.com/fkhayef/friendpay/internal/auth"
	"github.com/fkhayef/friendpay/internal/config"
	"github.com/fkhayef/friendpay/internal/dashboard"
	"github.com/fkhayef/friendpay/internal/database"
	"github.com/fkhayef/friendpay/internal/expense"
	expensesplit "github.com/fkhayef/friendpay/internal/expense/split"
	"github.com/fkhayef/friendpay/internal/invitation"
	"github.com/fkhayef/friendpay/internal/ledger"
	"github.com/fkhayef/friendpay/internal/notification"
	"github.com/fkhayef/friendpay/internal/receipt"
	"github.com/fkhayef/friendpay/internal/settlement"
	mw "github.com/fkhayef/friendpay/pkg/middleware"
)

// @title FriendPay API
// @version 1.0
// @description Bill-splitting ledger: debt invitations via deep links, atomic settlements, dashboards.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		logger.Info().Msg("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := database.RunMigrations(db, cfg.MigrationsPath); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Info().Msg("Connected to database successfully")

	// Identity (token issuing and password hashing)
	identity := auth.NewService(auth.Config{
		Secret:   cfg.JWTSecret,
		TokenTTL: time.Duration(cfg.TokenTTLHours) * time.Hour,
	})
	authMW := mw.Auth(identity)

	// Split Strategy Factory (Factory Pattern)
	splitFactory := expensesplit.NewFactory()

	// Repositories
	accountRepo := account.NewRepository(db)
	invitationRepo := invitation.NewRepository(db)
	settlementRepo := settlement.NewRepository(db)

	// Invitation feature (with mock SMS delivery)
	smsSender := notification.NewSMSLogSender(logger)
	invitationService := invitation.NewService(invitationRepo, accountRepo, smsSender, cfg.DeepLinkScheme, logger)
	invitationHandler := invitation.NewHandler(invitationService)

	// Ledger engine owns every multi-row balance transaction
	engine := ledger.NewEngine(db, accountRepo, invitationRepo, logger)

	// Account feature (registration claims pending debts through the engine)
	accountService := account.NewService(accountRepo, identity, engine)
	accountHandler := account.NewHandler(accountService, authMW)

	// Settlement feature
	settlementService := settlement.NewService(engine, settlementRepo, accountRepo)
	settlementHandler := settlement.NewHandler(settlementService)

	// Dashboard feature
	dashboardService := dashboard.NewService(accountRepo)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	// Expense splitting (fans out one invitation per participant)
	expenseService := expense.NewService(splitFactory, invitationService, accountRepo)
	expenseHandler := expense.NewHandler(expenseService)

	// Receipt scanning (mock OCR)
	receiptService := receipt.NewService(receipt.NewMockExtractor())
	receiptHandler := receipt.NewHandler(receiptService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/users", accountHandler.Routes())

		r.Group(func(r chi.Router) {
			r.Use(authMW)
			r.Mount("/invitations", invitationHandler.Routes())
			r.Mount("/settlements", settlementHandler.Routes())
			r.Mount("/dashboard", dashboardHandler.Routes())
			r.Mount("/splits", expenseHandler.Routes())
			r.Mount("/receipts", receiptHandler.Routes())
		})
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	logger.Info().Str("port", port).Msg("Server starting")
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Fatal().Err(err).Msg("Server failed to start")
	}
}
