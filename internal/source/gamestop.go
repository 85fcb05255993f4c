package source

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gametrade/backend/internal/browser"
	"github.com/gametrade/backend/internal/price"
)

const (
	gamestopBaseURL   = "https://www.gamestop.com"
	gamestopSearchFmt = gamestopBaseURL + "/search/?q=%s"
	gamestopTradeFmt  = gamestopBaseURL + "/trade/details/?pid=%s"

	gamestopTileSel  = "a.product-tile-link.render-tile-link.pdp-link"
	gamestopPriceSel = "div.primary-details-row span.actual-price"
	gamestopTradeSel = ".trade-value span"
)

var (
	// Product id at the tail of a PDP URL, e.g. /products/game/224588.html
	gamestopPIDRe = regexp.MustCompile(`/(\d+)\.html$`)

	// First numeric run in a trade-value label ("$25.00 cash" -> "25.00")
	tradeValueRe = regexp.MustCompile(`[\d.]+`)
)

type gamestop struct {
	sess *browser.Session
}

// NewGameStop returns the GameStop adapter bound to a browser session. It is
// the only source that exposes a trade-in program, which makes it the
// designated primary for recommendations.
func NewGameStop(sess *browser.Session) Source {
	return &gamestop{sess: sess}
}

func (g *gamestop) Name() string { return "gamestop" }

func (g *gamestop) Search(ctx context.Context, query string) ([]Candidate, error) {
	searchURL := fmt.Sprintf(gamestopSearchFmt, url.QueryEscape(query))
	res, err := g.sess.FetchPage(ctx, searchURL, gamestopTileSel)
	if err != nil {
		return nil, fmt.Errorf("gamestop search: %w", err)
	}

	cands, err := parseGamestopTiles(res.HTML)
	if err != nil {
		return nil, fmt.Errorf("gamestop search: %w", err)
	}
	if len(cands) == 0 {
		return nil, NewError(KindNoCandidates, "no product links found on gamestop")
	}
	return cands, nil
}

func (g *gamestop) FetchPrices(ctx context.Context, c Candidate) (Prices, error) {
	pid, ok := extractGamestopPID(c.Ref)
	if !ok {
		return Prices{}, NewError(KindIdentifierNotFound, "could not extract pid from product url %q", c.Ref)
	}

	detail, err := g.sess.FetchPage(ctx, c.Ref, gamestopPriceSel)
	if err != nil {
		return Prices{}, fmt.Errorf("gamestop detail: %w", err)
	}
	sell, ok := parseGamestopSellPrice(detail.HTML)
	if !ok {
		return Prices{}, NewError(KindMissingPriceData, "sell price not found on gamestop product page")
	}

	trade, err := g.sess.FetchPage(ctx, fmt.Sprintf(gamestopTradeFmt, pid), "")
	if err != nil {
		return Prices{}, fmt.Errorf("gamestop trade page: %w", err)
	}

	prices := Prices{Sell: &sell}
	if tradeIn, ok := parseGamestopTradeIn(trade.HTML); ok {
		prices.TradeIn = &tradeIn
	}
	return prices, nil
}

func extractGamestopPID(ref string) (string, bool) {
	m := gamestopPIDRe.FindStringSubmatch(ref)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func parseGamestopTiles(html string) ([]Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse search page: %w", err)
	}

	var cands []Candidate
	doc.Find(gamestopTileSel).Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		text := strings.TrimSpace(s.Text())
		if href == "" || text == "" {
			return
		}
		if strings.HasPrefix(href, "/") {
			href = gamestopBaseURL + href
		}
		cands = append(cands, Candidate{DisplayText: text, Ref: href})
	})
	return cands, nil
}

func parseGamestopSellPrice(html string) (float64, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 0, false
	}
	return price.Parse(doc.Find(gamestopPriceSel).First().Text())
}

// parseGamestopTradeIn returns the minimum of all trade values on the page.
// GameStop quotes one value per condition tier; the worst case is the only
// estimate safe to recommend against.
func parseGamestopTradeIn(html string) (float64, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 0, false
	}

	var values []float64
	doc.Find(gamestopTradeSel).Each(func(_ int, s *goquery.Selection) {
		m := tradeValueRe.FindString(s.Text())
		if m == "" {
			return
		}
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			values = append(values, v)
		}
	})
	return price.Min(values)
}
