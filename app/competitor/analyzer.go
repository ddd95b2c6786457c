package competitor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/storescope/storescope/app/brand"
	"github.com/storescope/storescope/app/scraper"
)

// Analyzer fans the extraction engine out across candidate competitor
// storefronts.
type Analyzer struct {
	scraper      *scraper.Scraper
	workers      int
	perCandidate time.Duration
}

// NewAnalyzer creates an analyzer. workers bounds concurrent candidate
// extractions; perCandidate caps how long one candidate may take before
// it is treated as failed.
func NewAnalyzer(s *scraper.Scraper, workers int, perCandidate time.Duration) *Analyzer {
	if workers < 1 {
		workers = 1
	}

	return &Analyzer{
		scraper:      s,
		workers:      workers,
		perCandidate: perCandidate,
	}
}

// AnalyzeCompetitors extracts a brand context for each candidate URL.
// A candidate whose extraction fails is skipped, never fatal to the
// batch. Result order follows the candidate order.
func (a *Analyzer) AnalyzeCompetitors(ctx context.Context, candidates []string) []*brand.Context {
	if len(candidates) == 0 {
		return nil
	}

	results := make([]*brand.Context, len(candidates))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for i := 0; i < a.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					continue
				}
				results[idx] = a.analyzeCandidate(ctx, candidates[idx])
			}
		}()
	}

	for idx := range candidates {
		jobs <- idx
	}
	close(jobs)

	wg.Wait()

	insights := make([]*brand.Context, 0, len(candidates))
	for _, result := range results {
		if result != nil {
			insights = append(insights, result)
		}
	}

	return insights
}

func (a *Analyzer) analyzeCandidate(ctx context.Context, candidateURL string) *brand.Context {
	candidateCtx, cancel := context.WithTimeout(ctx, a.perCandidate)
	defer cancel()

	insight, err := a.scraper.FetchStoreInsights(candidateCtx, candidateURL)
	if err != nil {
		slog.Warn("Skipping competitor", "url", candidateURL, "error", err)
		return nil
	}

	return insight
}
