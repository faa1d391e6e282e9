//go:build js && wasm

// Command jsaction-wasm is the real deployment target: compiled with
// GOOS=js GOARCH=wasm into contract.wasm and started by the bootstrap shim
// in internal/buildtools, it wires a Contract to the browser's actual DOM
// (internal/domwasm), registers the document element as its only
// container, and forwards every Event Record to the page as a
// "jsaction-dispatch" CustomEvent. It exports no Go functions to JS.
package main

import (
	"encoding/json"
	"log"
	"syscall/js"
	"time"

	jsaction "github.com/jsaction-go/contract"
	"github.com/jsaction-go/contract/internal/domwasm"
	"github.com/jsaction-go/contract/internal/reporting"
)

// jsDispatcher forwards every Event Record to the embedding page as a
// "jsaction-dispatch" CustomEvent on window, carrying the resolved action
// name and target tag as detail; the page's own action router decides what
// to actually call. DispatchBatch's isGlobal pre-match notification and its
// queue-drain backlog both flow through the same CustomEvent.
type jsDispatcher struct{}

type wireRecord struct {
	EventType string `json:"eventType"`
	Action    string `json:"action"`
	TargetTag string `json:"targetTag"`
	Global    bool   `json:"global"`
}

func (jsDispatcher) DispatchOne(r jsaction.EventRecord) {
	dispatchToPage(r, false)
}

func (jsDispatcher) DispatchBatch(records []jsaction.EventRecord, isGlobal bool) {
	for _, r := range records {
		dispatchToPage(r, isGlobal)
	}
}

func dispatchToPage(r jsaction.EventRecord, isGlobal bool) {
	wire := wireRecord{EventType: r.EventType, Action: r.Action, Global: isGlobal}
	if r.TargetElement != nil {
		wire.TargetTag = r.TargetElement.TagName()
	}
	payload, err := json.Marshal(wire)
	if err != nil {
		return
	}
	detail := js.Global().Get("JSON").Call("parse", string(payload))
	event := js.Global().Get("CustomEvent").New("jsaction-dispatch", map[string]any{"detail": detail})
	js.Global().Get("window").Call("dispatchEvent", event)
}

// defaultEvents are registered unconditionally; a host page wanting fewer
// native listeners installed can fork this list, it is intentionally not
// configurable from JS (spec.md's contract is the attribute grammar, not a
// runtime event-type negotiation protocol).
var defaultEvents = []string{
	"click", "clickonly", "mouseenter", "mouseleave", "focus", "focusin", "blur", "focusout",
}

func main() {
	dsn := js.Global().Get("window").Get("__JSACTION_SENTRY_DSN__").String()

	cfg := jsaction.DefaultConfig()
	if dsn != "" {
		report, flush, err := reporting.NewSentryReporter(dsn)
		if err != nil {
			log.Printf("jsaction-wasm: sentry disabled: %v", err)
		} else {
			cfg.ErrorReporter = report
			defer flush(2 * time.Second)
		}
	}

	doc, err := domwasm.Document()
	if err != nil {
		log.Fatalf("jsaction-wasm: %v", err)
	}

	binding := domwasm.NewBinding()
	contract := jsaction.NewContract(cfg, binding)
	for _, name := range defaultEvents {
		contract.AddEvent(name)
	}
	contract.AddContainer(doc)
	contract.DispatchTo(jsDispatcher{})

	log.Print("jsaction-wasm: contract attached to document")
	select {} // keep the wasm module's goroutine alive; listeners run on JS callbacks
}
