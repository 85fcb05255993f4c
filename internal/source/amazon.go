package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gametrade/backend/internal/browser"
	"github.com/gametrade/backend/internal/price"
)

const (
	amazonBaseURL   = "https://www.amazon.com"
	amazonSearchFmt = amazonBaseURL + "/s?k=%s"

	amazonResultSel    = ".s-result-item"
	amazonTitleSel     = "h2 a span"
	amazonLinkSel      = "h2 a"
	amazonListPriceSel = ".a-price-whole"
	amazonOffscreenSel = "span.a-price span.a-offscreen"
)

type amazon struct {
	sess *browser.Session
}

// NewAmazon returns the Amazon adapter bound to a browser session. Amazon
// has no trade-in program, so it contributes a sell price for display but
// never a per-source recommendation.
func NewAmazon(sess *browser.Session) Source {
	return &amazon{sess: sess}
}

func (a *amazon) Name() string { return "amazon" }

func (a *amazon) Search(ctx context.Context, query string) ([]Candidate, error) {
	searchURL := fmt.Sprintf(amazonSearchFmt, url.QueryEscape(query))
	res, err := a.sess.FetchPage(ctx, searchURL, amazonResultSel)
	if err != nil {
		return nil, fmt.Errorf("amazon search: %w", err)
	}

	cands, err := parseAmazonResults(res.HTML)
	if err != nil {
		return nil, fmt.Errorf("amazon search: %w", err)
	}
	if len(cands) == 0 {
		return nil, NewError(KindNoCandidates, "no product found on amazon")
	}
	return cands, nil
}

func (a *amazon) FetchPrices(ctx context.Context, c Candidate) (Prices, error) {
	detail, err := a.sess.FetchPage(ctx, c.Ref, "")
	if err != nil {
		return Prices{}, fmt.Errorf("amazon detail: %w", err)
	}

	sell, ok := parseAmazonSellPrice(detail.HTML)
	if !ok {
		return Prices{}, NewError(KindMissingPriceData, "sell price not found on amazon product page")
	}
	// Amazon exposes no trade-in value; the field stays absent.
	return Prices{Sell: &sell}, nil
}

// parseAmazonResults keeps only result tiles that carry both a title and a
// price; sponsored shells and separator rows have neither.
func parseAmazonResults(html string) ([]Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse search page: %w", err)
	}

	var cands []Candidate
	doc.Find(amazonResultSel).Each(func(_ int, s *goquery.Selection) {
		title := strings.TrimSpace(s.Find(amazonTitleSel).First().Text())
		href := s.Find(amazonLinkSel).First().AttrOr("href", "")
		if title == "" || href == "" {
			return
		}
		if s.Find(amazonListPriceSel).Length() == 0 {
			return
		}
		if strings.HasPrefix(href, "/") {
			href = amazonBaseURL + href
		}
		cands = append(cands, Candidate{DisplayText: title, Ref: href})
	})
	return cands, nil
}

func parseAmazonSellPrice(html string) (float64, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 0, false
	}

	if v, ok := price.Parse(doc.Find(amazonOffscreenSel).First().Text()); ok {
		return v, true
	}

	// Some layouts split whole and fraction into separate spans.
	whole := doc.Find(amazonListPriceSel).First().Text()
	fraction := doc.Find(".a-price-fraction").First().Text()
	return price.Parse(whole + fraction)
}
