package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/trexivo/tinova-pos/internal/application/service"
	"github.com/trexivo/tinova-pos/internal/config"
	"github.com/trexivo/tinova-pos/internal/domain/entity"
	"github.com/trexivo/tinova-pos/internal/infrastructure/repository"
	"github.com/trexivo/tinova-pos/internal/presentation/http/handler"
	"github.com/trexivo/tinova-pos/internal/presentation/http/routes"
	"github.com/trexivo/tinova-pos/pkg/logger"
	"github.com/trexivo/tinova-pos/pkg/printer"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if err := logger.Setup(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up logging")
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize the in-memory ledger
	orderRepo := repository.NewOrderRepository()
	if cfg.App.SeedDemoData {
		if err := repository.SeedDemoOrders(context.Background(), orderRepo); err != nil {
			log.Warn().Err(err).Msg("Failed to seed demo orders")
		}
	}

	// Initialize the text generator; missing credential fails closed into
	// the insight service's local fallback.
	var generator service.TextGenerator
	if cfg.Insight.OpenAIAPIKey != "" {
		generator = service.NewOpenAIGenerator(cfg.Insight.OpenAIAPIKey, cfg.Insight.Model)
	} else {
		log.Warn().Msg("OPENAI_API_KEY not set, insights will use the local fallback")
	}

	// Initialize the receipt printer
	receiptPrinter, err := printer.NewPrinterFromConfig(cfg.Printer.Type, cfg.Printer.Address)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize printer")
		receiptPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	ledgerService := service.NewLedgerService(orderRepo)
	dashboardService := service.NewDashboardService(ledgerService)
	insightService := service.NewInsightService(generator, cfg.Insight.Timeout)
	printerService := service.NewPrinterService(receiptPrinter, ledgerService, entity.ReceiptHeader{
		StoreName: "TI NOVA POS",
		Tagline:   "Enterprise Hub",
	})

	// Initialize handlers
	handlers := &routes.Handlers{
		Order:     handler.NewOrderHandler(ledgerService, printerService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Insight:   handler.NewInsightHandler(insightService, ledgerService),
	}

	// Setup routes
	router := routes.Setup(handlers, cfg)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Info().
		Str("service", cfg.App.Name).
		Str("port", port).
		Str("env", cfg.App.Env).
		Msg("Starting server")

	if err := router.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
