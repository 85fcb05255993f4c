// Package engine fans a price query out to every configured retail source,
// waits for all of them to settle and assembles the aggregate response. One
// source failing, timing out or matching nothing never disturbs another
// source's in-flight work.
package engine

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/gametrade/backend/internal/match"
	"github.com/gametrade/backend/internal/price"
	"github.com/gametrade/backend/internal/source"
	"github.com/gametrade/backend/pkg/logger"
)

// ErrEmptyTitle is the only error the engine surfaces to callers; every
// per-source failure is absorbed into the aggregate instead.
var ErrEmptyTitle = errors.New("missing title")

const defaultOverallTimeout = 90 * time.Second

// OpenFunc acquires a source together with its cleanup. The engine calls it
// at the start of a task and runs the cleanup on every exit path, so each
// task owns its browser session end-to-end.
type OpenFunc func(ctx context.Context) (source.Source, func(), error)

// SourceSpec declares one configured source. Order matters: the first spec
// that yields a per-source recommendation becomes the aggregate one.
type SourceSpec struct {
	Name string
	Open OpenFunc
}

type Engine struct {
	specs          []SourceSpec
	overallTimeout time.Duration
}

func New(specs []SourceSpec, overallTimeout time.Duration) *Engine {
	if overallTimeout <= 0 {
		overallTimeout = defaultOverallTimeout
	}
	return &Engine{specs: specs, overallTimeout: overallTimeout}
}

// Recommend runs all sources concurrently and blocks until every one has
// settled or the overall ceiling elapses. Sources still running at the
// ceiling are recorded as timed out.
func (e *Engine) Recommend(ctx context.Context, title string) (*AggregateResult, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}

	ctx, cancel := context.WithTimeout(ctx, e.overallTimeout)
	defer cancel()

	start := time.Now()
	results := make([]SourceResult, len(e.specs))

	var wg sync.WaitGroup
	for i, spec := range e.specs {
		wg.Add(1)
		go func(i int, spec SourceSpec) {
			defer wg.Done()
			results[i] = e.querySource(ctx, spec, title)
		}(i, spec)
	}
	wg.Wait()

	agg := &AggregateResult{
		Title:   title,
		Sources: make(map[string]SourceResult, len(e.specs)),
	}
	titleSet := false
	for i, spec := range e.specs {
		res := results[i]
		agg.Sources[spec.Name] = res
		if agg.RecommendedPrice == nil && res.RecommendedPrice != nil {
			agg.RecommendedPrice = res.RecommendedPrice
		}
		if !titleSet && res.MatchedTitle != "" {
			agg.Title = res.MatchedTitle
			titleSet = true
		}
	}

	logger.Log.Info().
		Str("query", title).
		Int("sources", len(e.specs)).
		Bool("recommended", agg.RecommendedPrice != nil).
		Dur("elapsed", time.Since(start)).
		Msg("recommendation assembled")

	return agg, nil
}

// querySource runs the full per-source pipeline: acquire a session, search,
// pick the best candidate, extract prices, derive the per-source
// recommendation. Every failure collapses into the result's Error field.
func (e *Engine) querySource(ctx context.Context, spec SourceSpec, title string) SourceResult {
	log := logger.Log.With().Str("source", spec.Name).Logger()
	start := time.Now()

	src, cleanup, err := spec.Open(ctx)
	if err != nil {
		log.Error().Err(err).Msg("source unavailable")
		return e.failed(ctx, err)
	}
	defer cleanup()

	candidates, err := src.Search(ctx, title)
	if err != nil {
		log.Warn().Err(err).Msg("search failed")
		return e.failed(ctx, err)
	}

	best, ok := match.SelectBest(candidates, title)
	if !ok {
		log.Info().Float64("best_score", best.Score).Msg("no confident match")
		return e.failed(ctx, source.NewError(source.KindNoConfidentMatch,
			"no high-confidence match (best similarity %.2f)", best.Similarity))
	}

	prices, err := src.FetchPrices(ctx, best.Candidate)
	if err != nil {
		log.Warn().Err(err).Str("matched", best.Candidate.DisplayText).Msg("price fetch failed")
		return e.failed(ctx, err)
	}

	rec := price.Recommend(prices.Sell, prices.TradeIn)

	log.Info().
		Str("matched", best.Candidate.DisplayText).
		Float64("score", best.Score).
		Bool("recommended", rec != nil).
		Dur("elapsed", time.Since(start)).
		Msg("source settled")

	return SourceResult{
		MatchedTitle:     best.Candidate.DisplayText,
		SellPrice:        prices.Sell,
		TradeInPrice:     prices.TradeIn,
		RecommendedPrice: rec,
	}
}

// failed maps a pipeline error to the failed result variant. Untyped errors
// surfaced because the overall ceiling cancelled a still-running source are
// recorded as timeouts, not transport failures.
func (e *Engine) failed(ctx context.Context, err error) SourceResult {
	se := source.Classify(err)
	if se.Kind == source.KindSourceUnavailable && ctx.Err() == context.DeadlineExceeded {
		se = source.NewError(source.KindTimeout, "overall deadline exceeded")
	}
	return SourceResult{Error: se.Error()}
}
