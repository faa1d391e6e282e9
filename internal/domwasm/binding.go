//go:build js && wasm

package domwasm

import (
	"strings"
	"syscall/js"

	"github.com/jsaction-go/contract/internal/core"
)

// Binding is the real-browser jsaction.Binding, backed by
// addEventListener/dispatchEvent.
type Binding struct {
	userAgent string
}

// NewBinding creates a browser binding, sniffing navigator.userAgent once
// for the Gecko caret-positioning quirk (spec.md §4.6 step 5).
func NewBinding() *Binding {
	ua := js.Global().Get("navigator").Get("userAgent").String()
	return &Binding{userAgent: ua}
}

// listenerHandle keeps the js.Func alive so it can be Released on removal;
// syscall/js callbacks are not garbage collected automatically.
type listenerHandle struct {
	node    js.Value
	evtType string
	fn      js.Func
}

func (b *Binding) AddEventListener(el core.Element, eventType string, handler func(core.DOMEvent)) any {
	node := el.(*Node).v
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		handler(WrapEvent(args[0]))
		return nil
	})
	node.Call("addEventListener", eventType, fn, map[string]any{"capture": false})
	return &listenerHandle{node: node, evtType: eventType, fn: fn}
}

func (b *Binding) RemoveEventListener(el core.Element, eventType string, listenerRef any) {
	h, ok := listenerRef.(*listenerHandle)
	if !ok {
		return
	}
	h.node.Call("removeEventListener", h.evtType, h.fn)
	h.fn.Release()
}

// NewSyntheticClick constructs (but does not dispatch through the DOM) a
// click event at (x, y) targeting el; internal/delegate resolves it
// directly via the contract pipeline rather than redelivering it through
// addEventListener, so no native MouseEvent construction is needed here.
func (b *Binding) NewSyntheticClick(el core.Element, x, y float64) core.DOMEvent {
	return &Event{
		target: el.(*Node),
		cached: &snapshot{
			typ:       "click",
			x:         x,
			y:         y,
			hasCoords: true,
			synthTag:  "_fastclick",
			hasSynth:  true,
		},
	}
}

// BlurActiveElement implements the optional blurrer interface contract.go
// checks for via type assertion, blurring document.activeElement after a
// fast-click synthesis that was not itself defaultPrevented.
func (b *Binding) BlurActiveElement() {
	active := js.Global().Get("document").Get("activeElement")
	if active.IsUndefined() || active.IsNull() {
		return
	}
	active.Call("blur")
}

// ClearSelection implements the optional selectionClearer interface
// contract.go checks for, dropping any active text selection the synthetic
// click's dismissed touch may have left behind.
func (b *Binding) ClearSelection() {
	sel := js.Global().Call("getSelection")
	if sel.IsUndefined() || sel.IsNull() {
		return
	}
	sel.Call("removeAllRanges")
}

// GeckoFocusCaretException implements the Gecko + focus/focusin + native
// input/textarea stopPropagation exception (spec.md §4.6 step 5): some
// Gecko versions reposition the text caret using focus event bubbling, so
// stopping propagation on an input/textarea's own focus/focusin breaks
// click-to-position-cursor.
func (b *Binding) GeckoFocusCaretException(semanticType string, target core.Element) bool {
	if semanticType != "focus" && semanticType != "focusin" {
		return false
	}
	if !strings.Contains(b.userAgent, "Gecko") || strings.Contains(b.userAgent, "like Gecko") {
		return false
	}
	switch target.TagName() {
	case "INPUT", "TEXTAREA":
		return true
	default:
		return false
	}
}

// IsIOS implements the iOS cursor:pointer bubble-fix gate (spec.md §4.7):
// a user-agent match for iPhone/iPad/iPod.
func (b *Binding) IsIOS() bool {
	return strings.Contains(b.userAgent, "iPhone") ||
		strings.Contains(b.userAgent, "iPad") ||
		strings.Contains(b.userAgent, "iPod")
}
