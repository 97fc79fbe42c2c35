// Package rod implements companyintel.Fetcher with a headless Chrome browser,
// for sites that render their content with JavaScript.
package rod

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/companyintel"
	"github.com/go-rod/rod"
)

// DefaultFetchTimeout bounds a single page load.
const DefaultFetchTimeout = 30 * time.Second

// serializeJS inlines open shadow roots into the light DOM so that the
// returned HTML contains the text and links of web components.
const serializeJS = `() => {
	const inline = (root) => {
		for (const el of root.querySelectorAll('*')) {
			if (!el.shadowRoot || el.hasAttribute('data-shadow-inlined')) {
				continue;
			}
			inline(el.shadowRoot);
			const div = document.createElement('div');
			div.setAttribute('data-shadow-root', '');
			div.innerHTML = el.shadowRoot.innerHTML;
			el.setAttribute('data-shadow-inlined', '');
			el.appendChild(div);
		}
	};
	inline(document);
	return '<!DOCTYPE html>\n' + document.documentElement.outerHTML;
}`

// Ensure Fetcher implements companyintel.Fetcher at compile time.
var _ companyintel.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// At most the configured number of tabs load pages at once; further calls
// wait for a free tab. Fetcher is safe for concurrent use by multiple
// goroutines.
type Fetcher struct {
	browser *browser
	timeout time.Duration
	closed  atomic.Bool
}

// Option configures a Fetcher.
type Option func(*fetcherConfig)

type fetcherConfig struct {
	timeout time.Duration
	tabs    int
	bin     string
}

// WithFetchTimeout sets the per-page load timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *fetcherConfig) {
		c.timeout = d
	}
}

// WithTabs sets how many pages may load concurrently. Size it to the
// number of fetch workers.
func WithTabs(n int) Option {
	return func(c *fetcherConfig) {
		c.tabs = n
	}
}

// WithBin sets the Chrome executable. By default the launcher looks for an
// installed browser and downloads Chromium if none is found.
func WithBin(path string) Option {
	return func(c *fetcherConfig) {
		c.bin = path
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	cfg := fetcherConfig{
		timeout: DefaultFetchTimeout,
		tabs:    DefaultTabs,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	b, err := launchBrowser(cfg.bin, cfg.tabs)
	if err != nil {
		return nil, err
	}
	return &Fetcher{browser: b, timeout: cfg.timeout}, nil
}

// Fetch navigates to the URL and returns the rendered HTML, including the
// content of open shadow roots.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", companyintel.Errorf(companyintel.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	tab, release, err := f.browser.acquire()
	if err != nil {
		return "", err
	}

	html, err := render(ctx, tab.Context(ctx), url)
	release(err != nil)
	return html, err
}

func render(ctx context.Context, page *rod.Page, url string) (string, error) {
	if err := page.Navigate(url); err != nil {
		return "", contextError(ctx, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", contextError(ctx, err)
	}

	res, err := page.Eval(serializeJS)
	if err != nil {
		return "", contextError(ctx, err)
	}
	return res.Value.Str(), nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.browser.close()
}

// LauncherPID returns the process ID of the browser launcher, or 0 after
// Close.
func (f *Fetcher) LauncherPID() int {
	return f.browser.pid()
}

// contextError prefers the context's error so callers can match
// context.DeadlineExceeded and context.Canceled.
func contextError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %v", ctxErr, err)
	}
	return err
}
