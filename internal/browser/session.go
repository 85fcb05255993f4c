// Package browser wraps chromedp in a scoped, per-call session. Each source
// adapter task creates its own session and tears it down on every exit path;
// sessions are never shared or pooled across tasks or calls.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/gametrade/backend/pkg/logger"
)

const (
	defaultPageTimeout   = 10 * time.Second
	defaultPageLoadDelay = 2 * time.Second
)

type Options struct {
	// PageTimeout bounds a single page fetch, navigation included.
	PageTimeout time.Duration
	// PageLoadDelay is a settle delay after the page body is ready, giving
	// client-side price widgets time to render.
	PageLoadDelay time.Duration
}

// Session owns one headless browser instance. Cancellation of the context
// passed to NewSession propagates into every fetch.
type Session struct {
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	pageTimeout   time.Duration
	pageLoadDelay time.Duration
}

// NewSession launches a dedicated browser. Callers must Close the session;
// typically `defer sess.Close()` right after this call.
func NewSession(ctx context.Context, opts Options) (*Session, error) {
	if opts.PageTimeout <= 0 {
		opts.PageTimeout = defaultPageTimeout
	}
	if opts.PageLoadDelay <= 0 {
		opts.PageLoadDelay = defaultPageLoadDelay
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, execAllocatorOptions()...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("start browser: %w", err)
	}

	logger.Log.Debug().Dur("page_timeout", opts.PageTimeout).Msg("browser session started")

	return &Session{
		allocCtx:      allocCtx,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		pageTimeout:   opts.PageTimeout,
		pageLoadDelay: opts.PageLoadDelay,
	}, nil
}

// Close shuts the browser down. Safe to call once per session.
func (s *Session) Close() {
	if s.browserCancel != nil {
		s.browserCancel()
	}
	if s.allocCancel != nil {
		s.allocCancel()
	}
	logger.Log.Debug().Msg("browser session closed")
}
