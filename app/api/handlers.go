package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storescope/storescope/app/brand"
	"github.com/storescope/storescope/app/competitor"
	"github.com/storescope/storescope/app/database"
	"github.com/storescope/storescope/app/scraper"
)

// maxCompetitorsLimit caps how many competitors one request may ask for.
const maxCompetitorsLimit = 10

func NewHandler(s ScraperInterface, finder FinderInterface, analyzer AnalyzerInterface,
	storeRepo database.StoreRepository, maxCompetitors int) *Handler {
	return &Handler{
		scraper:        s,
		finder:         finder,
		analyzer:       analyzer,
		storeRepo:      storeRepo,
		maxCompetitors: maxCompetitors,
	}
}

// GetStoreInsights extracts (or returns cached) brand insights for a
// storefront URL.
func (h *Handler) GetStoreInsights(c *gin.Context) {
	var req StoreInsightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, StoreInsightsResponse{
			Success:   false,
			Error:     err.Error(),
			ErrorCode: ErrorCodeInvalidURL,
			Message:   "Invalid request body",
		})
		return
	}

	storeURL, err := scraper.NormalizeURL(req.WebsiteURL)
	if err != nil {
		h.renderError(c, err, "Failed to extract store insights")
		return
	}

	cached, err := h.storeRepo.GetByURL(storeURL)
	if err != nil {
		slog.Error("Database error", "operation", "get_by_url", "url", storeURL, "error", err)
	}
	if cached != nil {
		c.JSON(http.StatusOK, StoreInsightsResponse{
			Success: true,
			Data:    cached,
			Message: "Store insights retrieved from cache",
		})
		return
	}

	insights, err := h.scraper.FetchStoreInsights(c.Request.Context(), storeURL)
	if err != nil {
		h.renderError(c, err, "Failed to extract store insights")
		return
	}

	message := "Store insights successfully extracted"
	if !h.saveInsights(insights) {
		message += " (not cached - database not available)"
	}

	c.JSON(http.StatusOK, StoreInsightsResponse{
		Success: true,
		Data:    insights,
		Message: message,
	})
}

// AnalyzeCompetitors resolves the main brand, discovers competitor
// storefronts and returns their insights with a comparative summary.
func (h *Handler) AnalyzeCompetitors(c *gin.Context) {
	var req CompetitorAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, StoreInsightsResponse{
			Success:   false,
			Error:     err.Error(),
			ErrorCode: ErrorCodeInvalidURL,
			Message:   "Invalid request body",
		})
		return
	}

	storeURL, err := scraper.NormalizeURL(req.WebsiteURL)
	if err != nil {
		h.renderError(c, err, "Failed to analyze competitors")
		return
	}

	maxCompetitors := req.MaxCompetitors
	if maxCompetitors < 1 {
		maxCompetitors = h.maxCompetitors
	}
	if maxCompetitors > maxCompetitorsLimit {
		maxCompetitors = maxCompetitorsLimit
	}

	mainBrand, err := h.storeRepo.GetByURL(storeURL)
	if err != nil {
		slog.Error("Database error", "operation", "get_by_url", "url", storeURL, "error", err)
	}
	if mainBrand == nil {
		mainBrand, err = h.scraper.FetchStoreInsights(c.Request.Context(), storeURL)
		if err != nil {
			h.renderError(c, err, "Failed to analyze competitors")
			return
		}
		h.saveInsights(mainBrand)
	}

	candidates := h.finder.FindCompetitors(c.Request.Context(), storeURL, maxCompetitors)
	competitors := h.analyzer.AnalyzeCompetitors(c.Request.Context(), candidates)

	for _, insight := range competitors {
		h.saveInsights(insight)
	}

	c.JSON(http.StatusOK, CompetitorAnalysisResponse{
		MainBrand:       mainBrand,
		Competitors:     competitors,
		AnalysisSummary: competitor.GenerateSummary(mainBrand, competitors),
	})
}

// GetCachedStoreInsights returns previously extracted insights only.
func (h *Handler) GetCachedStoreInsights(c *gin.Context) {
	rawURL := strings.TrimPrefix(c.Param("url"), "/")
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, StoreInsightsResponse{
			Success:   false,
			ErrorCode: ErrorCodeInvalidURL,
			Message:   "Store URL is required",
		})
		return
	}

	// Records are keyed by the normalized URL, so the lookup key must go
	// through the same normalization as the extraction path.
	storeURL, err := scraper.NormalizeURL(rawURL)
	if err != nil {
		c.JSON(http.StatusBadRequest, StoreInsightsResponse{
			Success:   false,
			Error:     err.Error(),
			ErrorCode: ErrorCodeInvalidURL,
			Message:   "Invalid store URL",
		})
		return
	}

	insight, err := h.storeRepo.GetByURL(storeURL)
	if err != nil {
		slog.Error("Database error", "operation", "get_by_url", "url", storeURL, "error", err)
		c.JSON(http.StatusInternalServerError, StoreInsightsResponse{
			Success:   false,
			Error:     err.Error(),
			ErrorCode: ErrorCodeInternalError,
			Message:   "Failed to retrieve cached store insights",
		})
		return
	}

	if insight == nil {
		c.JSON(http.StatusNotFound, StoreInsightsResponse{
			Success:   false,
			ErrorCode: ErrorCodeWebsiteNotFound,
			Message:   "Store insights not found in cache",
		})
		return
	}

	c.JSON(http.StatusOK, StoreInsightsResponse{
		Success: true,
		Data:    insight,
		Message: "Store insights retrieved from cache",
	})
}

// DeleteStoreInsights is a reserved endpoint.
func (h *Handler) DeleteStoreInsights(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{
		"error":   "not implemented",
		"message": "Delete functionality not implemented yet",
	})
}

// APIListStoreInsights returns every stored brand context.
func (h *Handler) APIListStoreInsights(c *gin.Context) {
	insights, err := h.storeRepo.ListAll()
	if err != nil {
		slog.Error("Database error", "operation", "list_all", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   err.Error(),
			"message": "Failed to retrieve store insights",
		})
		return
	}

	if insights == nil {
		insights = []*brand.Context{}
	}

	c.JSON(http.StatusOK, insights)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp":   time.Now().In(time.Local).Format(time.RFC3339),
		"persistence": h.storeRepo.Enabled(),
	}

	if insights, err := h.storeRepo.ListAll(); err == nil {
		health["stored_insights"] = len(insights)
	}

	c.JSON(http.StatusOK, health)
}

// saveInsights persists best-effort and reports whether the record was
// actually stored.
func (h *Handler) saveInsights(insights *brand.Context) bool {
	id, err := h.storeRepo.Save(insights)
	if err != nil {
		slog.Error("Database error", "operation", "save", "url", insights.StoreURL, "error", err)
		return false
	}
	return id != ""
}

// renderError maps the scraper error taxonomy to HTTP status codes.
func (h *Handler) renderError(c *gin.Context, err error, message string) {
	status := http.StatusInternalServerError
	code := ErrorCodeInternalError

	switch {
	case errors.Is(err, scraper.ErrInvalidURL):
		status = http.StatusBadRequest
		code = ErrorCodeInvalidURL
	case errors.Is(err, scraper.ErrWebsiteNotFound):
		status = http.StatusNotFound
		code = ErrorCodeWebsiteNotFound
	case errors.Is(err, scraper.ErrTimeout):
		status = http.StatusRequestTimeout
		code = ErrorCodeTimeout
	case errors.Is(err, scraper.ErrParse):
		status = http.StatusInternalServerError
		code = ErrorCodeParseError
	}

	slog.Error("Extraction failed", "error", err, "status", status)

	c.JSON(status, StoreInsightsResponse{
		Success:   false,
		Error:     err.Error(),
		ErrorCode: code,
		Message:   message,
	})
}
