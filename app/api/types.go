package api

import (
	"context"

	"github.com/storescope/storescope/app/brand"
	"github.com/storescope/storescope/app/competitor"
	"github.com/storescope/storescope/app/database"
	"github.com/storescope/storescope/app/scraper"
)

type ScraperInterface interface {
	FetchStoreInsights(ctx context.Context, rawURL string) (*brand.Context, error)
}

var _ ScraperInterface = (*scraper.Scraper)(nil)

type FinderInterface interface {
	FindCompetitors(ctx context.Context, brandURL string, max int) []string
}

var _ FinderInterface = (*competitor.Finder)(nil)

type AnalyzerInterface interface {
	AnalyzeCompetitors(ctx context.Context, candidates []string) []*brand.Context
}

var _ AnalyzerInterface = (*competitor.Analyzer)(nil)

type Handler struct {
	scraper        ScraperInterface
	finder         FinderInterface
	analyzer       AnalyzerInterface
	storeRepo      database.StoreRepository
	maxCompetitors int
}

// ErrorCode identifies the externally visible failure kind.
type ErrorCode string

const (
	ErrorCodeWebsiteNotFound ErrorCode = "WEBSITE_NOT_FOUND"
	ErrorCodeInvalidURL      ErrorCode = "INVALID_URL"
	ErrorCodeInternalError   ErrorCode = "INTERNAL_ERROR"
	ErrorCodeTimeout         ErrorCode = "TIMEOUT_ERROR"
	ErrorCodeParseError      ErrorCode = "PARSE_ERROR"
)

type StoreInsightsRequest struct {
	WebsiteURL string `json:"website_url" binding:"required"`
}

type StoreInsightsResponse struct {
	Success   bool           `json:"success"`
	Data      *brand.Context `json:"data,omitempty"`
	Error     string         `json:"error,omitempty"`
	ErrorCode ErrorCode      `json:"error_code,omitempty"`
	Message   string         `json:"message"`
}

type CompetitorAnalysisRequest struct {
	WebsiteURL     string `json:"website_url" binding:"required"`
	MaxCompetitors int    `json:"max_competitors"`
}

type CompetitorAnalysisResponse struct {
	MainBrand       *brand.Context   `json:"main_brand"`
	Competitors     []*brand.Context `json:"competitors"`
	AnalysisSummary string           `json:"analysis_summary,omitempty"`
}
