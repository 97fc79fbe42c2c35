package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultTabs is the default number of tabs open at once. It matches the
// default related-page worker count.
const DefaultTabs = 5

// browser owns one headless Chrome process for the length of a run and
// lends out tabs from a bounded pool. Tabs are reused across fetches and
// closed together with the browser.
type browser struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	tabs     rod.Pool[rod.Page]
}

// launchBrowser starts Chrome with flags that keep background tabs
// rendering at full speed. An empty bin lets the launcher find or download
// a Chromium build.
func launchBrowser(bin string, tabs int) (*browser, error) {
	if tabs < 1 {
		tabs = 1
	}

	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)
	if bin != "" {
		l = l.Bin(bin)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connect to browser: %w", err)
	}

	return &browser{
		browser:  b,
		launcher: l,
		tabs:     rod.NewPagePool(tabs),
	}, nil
}

// acquire blocks until a tab is free. The returned release func must be
// called exactly once; pass true when the tab is unusable so that it is
// closed and its slot refilled with a fresh tab on the next acquire.
func (b *browser) acquire() (*rod.Page, func(broken bool), error) {
	page, err := b.tabs.Get(b.newTab)
	if err != nil {
		b.tabs.Put(nil)
		return nil, nil, fmt.Errorf("open tab: %w", err)
	}
	release := func(broken bool) {
		if broken {
			_ = page.Close()
			b.tabs.Put(nil)
			return
		}
		b.tabs.Put(page)
	}
	return page, release, nil
}

func (b *browser) newTab() (*rod.Page, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.browser == nil {
		return nil, fmt.Errorf("browser is closed")
	}
	return b.browser.Page(proto.TargetCreateTarget{})
}

// close shuts down the browser and kills the launcher process.
func (b *browser) close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var err error
	if b.browser != nil {
		err = b.browser.Close()
		b.browser = nil
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher = nil
	}
	return err
}

func (b *browser) pid() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.launcher == nil {
		return 0
	}
	return b.launcher.PID()
}
