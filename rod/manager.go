package rod

import (
	"sync"

	"github.com/fwojciec/epaper"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultMaxPages is the default number of tabs a browser serves before it
// is relaunched. Chrome's memory use only grows over a long session.
const DefaultMaxPages = 75

// BrowserManager owns a headless Chrome process and hands out tabs,
// relaunching the browser after maxPages tabs.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu        sync.Mutex
	browser   *rod.Browser
	launcher  *launcher.Launcher
	opened    int64
	launches  int
	maxPages  int64
	userAgent string
	closed    bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets how many tabs are opened before the browser is
// relaunched. Defaults to DefaultMaxPages.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// WithManagerUserAgent overrides the user agent of every tab.
func WithManagerUserAgent(ua string) ManagerOption {
	return func(bm *BrowserManager) {
		bm.userAgent = ua
	}
}

// NewBrowserManager launches a headless Chrome browser.
// Close must be called when the BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(bm)
	}

	if err := bm.launch(); err != nil {
		return nil, err
	}
	return bm, nil
}

// OpenPage opens a blank tab. The caller must close it.
// Returns EINVALID once the manager is closed.
func (bm *BrowserManager) OpenPage() (*rod.Page, error) {
	bm.mu.Lock()
	if bm.closed {
		bm.mu.Unlock()
		return nil, epaper.Errorf(epaper.EINVALID, "browser is closed")
	}
	if bm.maxPages > 0 && bm.opened >= bm.maxPages {
		bm.relaunch()
	}
	bm.opened++
	browser := bm.browser
	bm.mu.Unlock()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, epaper.Wrapf(err, epaper.EINTERNAL, "opening tab")
	}

	if bm.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: bm.userAgent}); err != nil {
			_ = page.Close()
			return nil, epaper.Wrapf(err, epaper.EINTERNAL, "setting user agent")
		}
	}

	return page, nil
}

// Launches reports how many browser processes have been started.
func (bm *BrowserManager) Launches() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.launches
}

// LauncherPID returns the process ID of the current browser launcher, or 0
// after Close.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.launcher == nil {
		return 0
	}
	return bm.launcher.PID()
}

// Close shuts the browser down. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil
	}
	bm.closed = true
	return bm.shutdown(bm.browser, bm.launcher)
}

// launch starts Chrome with flags that keep background tabs rendering.
// Must be called with mu held or before the manager is shared.
func (bm *BrowserManager) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return epaper.Wrapf(err, epaper.EINTERNAL, "launching browser")
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return epaper.Wrapf(err, epaper.EINTERNAL, "connecting to browser")
	}

	bm.browser = browser
	bm.launcher = l
	bm.opened = 0
	bm.launches++
	return nil
}

// relaunch swaps in a fresh browser. The old one is kept if the new one
// fails to start. Must be called with mu held.
func (bm *BrowserManager) relaunch() {
	oldBrowser, oldLauncher := bm.browser, bm.launcher
	if err := bm.launch(); err != nil {
		return
	}
	_ = bm.shutdown(oldBrowser, oldLauncher)
}

func (bm *BrowserManager) shutdown(browser *rod.Browser, l *launcher.Launcher) error {
	var err error
	if browser != nil {
		err = browser.Close()
	}
	if l != nil {
		l.Kill()
	}
	if browser == bm.browser {
		bm.browser, bm.launcher = nil, nil
	}
	return err
}
