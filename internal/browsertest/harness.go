// Package browsertest replays the touch-to-click fast-click scenarios
// against a real headless browser via go-rod, rather than internal/domfake,
// to confirm internal/fastclick's timing-sensitive transitions against an
// actual browser's touch/mouse event cascade (spec.md §9: "this subsystem
// in particular should be confirmed against real traffic"). Grounded on the
// teacher-adjacent domwatch example's launcher.New()+rod.New() lifecycle
// (domwatch/internal/browser/manager.go in the reference pack).
package browsertest

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Harness drives one headless Chrome instance against a demo page serving a
// WASM-compiled Contract (internal/demoserver).
type Harness struct {
	browser *rod.Browser
	page    *rod.Page
}

// Launch starts headless Chrome and navigates to url (typically
// http://localhost:<port>/ served by internal/demoserver).
func Launch(url string) (*Harness, error) {
	path, _ := launcher.LookPath()
	u, err := launcher.New().Bin(path).Headless(true).Launch()
	if err != nil {
		return nil, fmt.Errorf("launching chrome: %w", err)
	}
	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connecting to chrome: %w", err)
	}
	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}
	page.MustWaitLoad()
	return &Harness{browser: browser, page: page}, nil
}

// Close tears down the browser.
func (h *Harness) Close() error { return h.browser.Close() }

// Tap replays a fast-click-eligible tap sequence on selector: touchstart,
// a short dwell well under fastclick's 400ms long-press window, then
// touchend at the same point (spec.md §8 scenario 6).
func (h *Harness) Tap(selector string, dwell time.Duration) error {
	el, err := h.page.Element(selector)
	if err != nil {
		return fmt.Errorf("locating %s: %w", selector, err)
	}
	box, err := el.Shape()
	if err != nil {
		return fmt.Errorf("shape of %s: %w", selector, err)
	}
	pt := box.Box().Center()

	touch := h.page.Touch()
	if err := touch.Start(pt); err != nil {
		return fmt.Errorf("touchstart: %w", err)
	}
	time.Sleep(dwell)
	if err := touch.End(); err != nil {
		return fmt.Errorf("touchend: %w", err)
	}
	return nil
}

// LongPress replays a tap that exceeds the 400ms long-press window, which
// must NOT synthesize a click (spec.md §8 scenario 7).
func (h *Harness) LongPress(selector string, hold time.Duration) error {
	return h.Tap(selector, hold)
}

// RecordedEvents reads the Event Record log a demo page's inspector client
// accumulates on window.__jsactionRecords, for assertions.
func (h *Harness) RecordedEvents() ([]string, error) {
	var out []string
	res, err := h.page.Eval(`() => window.__jsactionRecords || []`)
	if err != nil {
		return nil, err
	}
	if err := res.Value.Unmarshal(&out); err != nil {
		return nil, fmt.Errorf("unmarshaling recorded events: %w", err)
	}
	return out, nil
}

// PressEnter replays an Enter keydown on selector, for a11y-click
// conformance checks (spec.md §4.4's Enter/Space activation rule).
func (h *Harness) PressEnter(selector string) error {
	return h.pressKey(selector, input.Enter)
}

// PressSpace replays a Space keydown on selector.
func (h *Harness) PressSpace(selector string) error {
	return h.pressKey(selector, input.Space)
}

func (h *Harness) pressKey(selector string, key input.Key) error {
	el, err := h.page.Element(selector)
	if err != nil {
		return err
	}
	return el.Type(key)
}

// JSActionBindings parses the page's current HTML with goquery and returns
// the raw jsaction attribute of every element matching selector, letting a
// conformance test assert on the declared bindings actually rendered to the
// DOM before replaying any interaction against them.
func (h *Harness) JSActionBindings(selector string) ([]string, error) {
	html, err := h.page.HTML()
	if err != nil {
		return nil, fmt.Errorf("reading page HTML: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing page HTML: %w", err)
	}

	var out []string
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		if attr, ok := sel.Attr("jsaction"); ok {
			out = append(out, attr)
		}
	})
	return out, nil
}
