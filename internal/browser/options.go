package browser

import (
	"os"

	"github.com/chromedp/chromedp"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36"

// execAllocatorOptions returns chromedp options that work both locally and
// in Docker.
func execAllocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", "new"),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("enable-automation", false),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-hang-monitor", true),
		chromedp.Flag("disable-popup-blocking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("window-size", "1920,1080"),
		chromedp.UserAgent(userAgent),
	)

	// In a container, find the Chrome/Chromium executable
	chromePaths := []string{
		"/headless-shell/headless-shell",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
	}
	for _, p := range chromePaths {
		if _, err := os.Stat(p); err == nil {
			opts = append(opts, chromedp.ExecPath(p))
			break
		}
	}

	return opts
}

// blockedURLPatterns lists resource types the scrapers never need. Skipping
// them keeps page loads well inside the per-source timeout.
func blockedURLPatterns() []string {
	return []string{
		"*.png", "*.jpg", "*.jpeg", "*.gif", "*.webp", "*.svg", "*.ico",
		"*.mp4", "*.webm", "*.avi", "*.mov",
		"*.woff", "*.woff2", "*.ttf", "*.eot", "*.otf",
		"*google-analytics*", "*googletagmanager*", "*facebook*",
		"*ads*", "*analytics*", "*tracking*",
	}
}

// stealthScript hides the most common headless markers from bot detection.
func stealthScript() string {
	return `
		Object.defineProperty(navigator, 'webdriver', {
			get: () => undefined,
		});
		Object.defineProperty(navigator, 'vendor', {
			get: () => 'Google Inc.',
		});
		Object.defineProperty(navigator, 'platform', {
			get: () => 'MacIntel',
		});
		Object.defineProperty(navigator, 'hardwareConcurrency', {
			get: () => 8,
		});
	`
}
