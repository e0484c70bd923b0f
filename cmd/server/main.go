package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/voyagedesk/tripquote/internal/config"
	httpserver "github.com/voyagedesk/tripquote/internal/interfaces/http"
	"github.com/voyagedesk/tripquote/internal/pdf"
	"github.com/voyagedesk/tripquote/internal/repository"
	"github.com/voyagedesk/tripquote/internal/service"
	"github.com/voyagedesk/tripquote/internal/storage"
	"github.com/voyagedesk/tripquote/pkg/database"
	"github.com/voyagedesk/tripquote/pkg/utils"
)

func main() {
	// Load .env if present, environment wins over file values
	_ = gotenv.Load()

	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting trip quotation service",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	// Initialize database
	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Create the PDF output directory
	if err := os.MkdirAll(cfg.PDF.OutputDir, 0755); err != nil {
		logger.Fatal("Failed to create output directory", zap.Error(err))
	}

	// Initialize repositories
	leadRepo := repository.NewLeadRepository(db.DB, logger)
	quotationRepo := repository.NewQuotationRepository(db.DB, logger)
	draftRepo := repository.NewDraftRepository(db.DB, logger)

	// Initialize services
	leadService := service.NewLeadService(leadRepo, logger)
	documentStore := storage.NewDocumentStore(cfg.PDF.OutputDir, logger)
	renderer := pdf.NewRenderer(documentStore, logger)
	quotationService := service.NewQuotationService(
		draftRepo,
		leadService,
		quotationRepo,
		renderer,
		cfg.Draft.DebounceInterval,
		logger,
	)

	// Initialize HTTP server
	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, leadService, quotationService, logger)

	// Run until interrupted
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Error("HTTP server error", zap.Error(err))
	}

	// Flush pending draft saves before exit so the last edits survive
	logger.Info("Flushing open quotation sessions")
	quotationService.Shutdown()

	logger.Info("Server exited successfully")
}
