package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/gametrade/backend/pkg/logger"
)

// FetchResult is the outcome of loading one page.
type FetchResult struct {
	HTML     string
	FinalURL string
}

// FetchPage loads a page in a new tab and returns its rendered HTML. When
// waitSelector is non-empty the fetch waits for that element before reading
// the document, the way a shopper-visible page would have it. The fetch is
// bounded by the session's page timeout.
func (s *Session) FetchPage(ctx context.Context, pageURL, waitSelector string) (*FetchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tabCtx, tabCancel := chromedp.NewContext(s.browserCtx)
	defer tabCancel()

	timeoutCtx, timeoutCancel := context.WithTimeout(tabCtx, s.pageTimeout)
	defer timeoutCancel()

	var html, finalURL string

	tasks := chromedp.Tasks{
		chromedp.ActionFunc(func(ctx context.Context) error {
			return emulation.SetUserAgentOverride(userAgent).
				WithAcceptLanguage("en-US,en;q=0.9").
				WithPlatform("macOS").
				Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			return network.SetBlockedURLS(blockedURLPatterns()).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(stealthScript()).Do(ctx)
			return err
		}),
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
	if waitSelector != "" {
		tasks = append(tasks, chromedp.WaitReady(waitSelector, chromedp.ByQuery))
	}
	tasks = append(tasks,
		chromedp.Sleep(s.pageLoadDelay),
		chromedp.Location(&finalURL),
		chromedp.OuterHTML("html", &html),
	)

	start := time.Now()
	if err := chromedp.Run(timeoutCtx, tasks); err != nil {
		if timeoutCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("fetch %s: %w", pageURL, context.DeadlineExceeded)
		}
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}

	logger.Log.Debug().
		Str("url", pageURL).
		Str("final_url", finalURL).
		Int("html_len", len(html)).
		Dur("elapsed", time.Since(start)).
		Msg("page fetched")

	return &FetchResult{HTML: html, FinalURL: finalURL}, nil
}
