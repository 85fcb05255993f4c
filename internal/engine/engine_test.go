package engine_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gametrade/backend/internal/engine"
	"github.com/gametrade/backend/internal/source"
)

func f(v float64) *float64 { return &v }

// stubSource settles instantly unless block is set, in which case it hangs
// until its context is cancelled, the way a stalled retail site would.
type stubSource struct {
	name      string
	cands     []source.Candidate
	searchErr error
	prices    source.Prices
	pricesErr error
	block     bool
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Search(ctx context.Context, query string) ([]source.Candidate, error) {
	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return s.cands, nil
}

func (s *stubSource) FetchPrices(ctx context.Context, c source.Candidate) (source.Prices, error) {
	if s.pricesErr != nil {
		return source.Prices{}, s.pricesErr
	}
	return s.prices, nil
}

func open(s *stubSource) engine.OpenFunc {
	return func(ctx context.Context) (source.Source, func(), error) {
		return s, func() {}, nil
	}
}

func matching(title string) []source.Candidate {
	return []source.Candidate{{DisplayText: title, Ref: "https://example.com/p/123.html"}}
}

func TestRecommend_EmptyTitle(t *testing.T) {
	eng := engine.New(nil, time.Second)

	_, err := eng.Recommend(context.Background(), "   ")
	require.ErrorIs(t, err, engine.ErrEmptyTitle)
}

func TestRecommend_PartialFailure(t *testing.T) {
	hanging := &stubSource{name: "a", block: true}
	healthy := &stubSource{
		name:   "b",
		cands:  matching("Elden Ring"),
		prices: source.Prices{Sell: f(50), TradeIn: f(12.5)},
	}

	eng := engine.New([]engine.SourceSpec{
		{Name: "a", Open: open(hanging)},
		{Name: "b", Open: open(healthy)},
	}, 200*time.Millisecond)

	agg, err := eng.Recommend(context.Background(), "Elden Ring")
	require.NoError(t, err)

	// 50 - (50-12.5)*0.66 = 25.25 -> 25
	require.NotNil(t, agg.RecommendedPrice)
	assert.Equal(t, 25.0, *agg.RecommendedPrice)

	assert.Contains(t, agg.Sources["a"].Error, string(source.KindTimeout))
	assert.Empty(t, agg.Sources["b"].Error)
	assert.Equal(t, "Elden Ring", agg.Sources["b"].MatchedTitle)
}

func TestRecommend_AllSourcesFail(t *testing.T) {
	noResults := &stubSource{
		name:      "a",
		searchErr: source.NewError(source.KindNoCandidates, "no product links found"),
	}
	hanging := &stubSource{name: "b", block: true}

	eng := engine.New([]engine.SourceSpec{
		{Name: "a", Open: open(noResults)},
		{Name: "b", Open: open(hanging)},
	}, 200*time.Millisecond)

	agg, err := eng.Recommend(context.Background(), "Elden Ring")
	require.NoError(t, err, "all-sources-fail must still return normally")

	assert.Nil(t, agg.RecommendedPrice)
	assert.Contains(t, agg.Sources["a"].Error, string(source.KindNoCandidates))
	assert.Contains(t, agg.Sources["b"].Error, string(source.KindTimeout))
}

func TestRecommend_PrimarySourceWins(t *testing.T) {
	primary := &stubSource{
		name:   "gamestop",
		cands:  matching("Elden Ring"),
		prices: source.Prices{Sell: f(60), TradeIn: f(30)},
	}
	secondary := &stubSource{
		name:   "other",
		cands:  matching("Elden Ring"),
		prices: source.Prices{Sell: f(100), TradeIn: f(50)},
	}

	eng := engine.New([]engine.SourceSpec{
		{Name: "gamestop", Open: open(primary)},
		{Name: "other", Open: open(secondary)},
	}, time.Second)

	agg, err := eng.Recommend(context.Background(), "Elden Ring")
	require.NoError(t, err)

	// First configured source with a recommendation decides; the other is
	// surfaced for display only.
	require.NotNil(t, agg.RecommendedPrice)
	assert.Equal(t, 40.0, *agg.RecommendedPrice)
	require.NotNil(t, agg.Sources["other"].RecommendedPrice)
	assert.Equal(t, 67.0, *agg.Sources["other"].RecommendedPrice)
}

func TestRecommend_SellPriceAloneIsNotEnough(t *testing.T) {
	sellOnly := &stubSource{
		name:   "amazon",
		cands:  matching("Elden Ring"),
		prices: source.Prices{Sell: f(50)},
	}

	eng := engine.New([]engine.SourceSpec{
		{Name: "amazon", Open: open(sellOnly)},
	}, time.Second)

	agg, err := eng.Recommend(context.Background(), "Elden Ring")
	require.NoError(t, err)

	res := agg.Sources["amazon"]
	assert.Nil(t, agg.RecommendedPrice)
	assert.Nil(t, res.RecommendedPrice)
	assert.Nil(t, res.TradeInPrice)
	require.NotNil(t, res.SellPrice)
	assert.Equal(t, 50.0, *res.SellPrice)
}

func TestRecommend_NoConfidentMatch(t *testing.T) {
	unrelated := &stubSource{
		name:  "a",
		cands: []source.Candidate{{DisplayText: "Garden Hose 50ft", Ref: "https://example.com/hose"}},
	}

	eng := engine.New([]engine.SourceSpec{
		{Name: "a", Open: open(unrelated)},
	}, time.Second)

	agg, err := eng.Recommend(context.Background(), "Elden Ring")
	require.NoError(t, err)

	assert.Nil(t, agg.RecommendedPrice)
	assert.Contains(t, agg.Sources["a"].Error, string(source.KindNoConfidentMatch))
}

func TestRecommend_SourceOpenFailure(t *testing.T) {
	eng := engine.New([]engine.SourceSpec{
		{Name: "a", Open: func(ctx context.Context) (source.Source, func(), error) {
			return nil, nil, errors.New("start browser: executable not found")
		}},
	}, time.Second)

	agg, err := eng.Recommend(context.Background(), "Elden Ring")
	require.NoError(t, err)

	assert.Contains(t, agg.Sources["a"].Error, string(source.KindSourceUnavailable))
	assert.True(t, strings.Contains(agg.Sources["a"].Error, "start browser"))
}

func TestRecommend_MatchedTitleReplacesQueryTitle(t *testing.T) {
	src := &stubSource{
		name: "gamestop",
		cands: []source.Candidate{
			{DisplayText: "Elden Ring - PlayStation 5", Ref: "https://example.com/p/1.html"},
		},
		prices: source.Prices{Sell: f(60), TradeIn: f(30)},
	}

	eng := engine.New([]engine.SourceSpec{
		{Name: "gamestop", Open: open(src)},
	}, time.Second)

	agg, err := eng.Recommend(context.Background(), "Elden Ring")
	require.NoError(t, err)
	assert.Equal(t, "Elden Ring - PlayStation 5", agg.Title)
}
