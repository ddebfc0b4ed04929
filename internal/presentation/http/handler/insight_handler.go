package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/trexivo/tinova-pos/internal/application/service"
	"github.com/trexivo/tinova-pos/internal/presentation/http/dto/response"
)

// InsightHandler handles AI insight HTTP requests
type InsightHandler struct {
	insightService *service.InsightService
	ledgerService  *service.LedgerService
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(insightService *service.InsightService, ledgerService *service.LedgerService) *InsightHandler {
	return &InsightHandler{
		insightService: insightService,
		ledgerService:  ledgerService,
	}
}

// Get handles returning the last generated insight
func (h *InsightHandler) Get(c *gin.Context) {
	response.OK(c, "Insight retrieved successfully", gin.H{
		"insight": h.insightService.Last(),
	})
}

// Generate handles generating a fresh insight over the current ledger stats.
// Returns 409 while a previous generation is still in flight.
func (h *InsightHandler) Generate(c *gin.Context) {
	stats, err := h.ledgerService.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	insight, err := h.insightService.Generate(c.Request.Context(), stats)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Insight generated successfully", gin.H{
		"insight": insight,
		"stats":   stats,
	})
}
