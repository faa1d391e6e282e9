// Package classify implements the event classifier (C4): mapping a raw DOM
// event to the contract's semantic event type. Modeled as a function
// producing a tagged value, per spec.md §9's "polymorphism over event
// kinds" note, rather than dispatching on strings scattered through the
// caller.
package classify

import "github.com/jsaction-go/contract/internal/core"

// Semantic event type tags.
const (
	Click      = "click"
	ClickMod   = "clickmod"
	ClickOnly  = "clickonly"
	ClickKey   = "clickkey" // internal only; never appears in a jsaction attribute
	Focus      = "focus"
	FocusIn    = "focusin"
	Blur       = "blur"
	FocusOut   = "focusout"
	MouseEnter = "mouseenter"
	MouseLeave = "mouseleave"
	MouseOver  = "mouseover"
	MouseOut   = "mouseout"
	MouseDown  = "mousedown"
	MouseUp    = "mouseup"
	TouchStart = "touchstart"
	TouchMove  = "touchmove"
	TouchEnd   = "touchend"
	KeyDown    = "keydown"
	KeyPress   = "keypress"
	Custom     = "custom"
)

// nativeFocusableControls are native HTML controls; an Enter or Space
// keydown on one of these (and a Space keydown on any element) must
// preventDefault to suppress native scrolling/activation (spec.md §4.4).
var nativeFocusableControls = map[string]bool{
	"BUTTON":   true,
	"INPUT":    true,
	"SELECT":   true,
	"TEXTAREA": true,
	"A":        true,
}

const (
	keyEnter = 13
	keySpace = 32
)

// Result is the tagged classification of one raw DOM event.
type Result struct {
	// Tag is the semantic event type, or "" if the event is silently
	// dropped (e.g. a custom event missing its inner _type).
	Tag string

	// Ignore means the fast-click machine is mid-sequence and the walk
	// should abort with no match, rather than resolve Tag normally
	// (spec.md §4.3).
	Ignore bool

	// Dropped means no record should be produced at all.
	Dropped bool

	// PreventDefault is set when the classifier itself determines the raw
	// event's default action must be suppressed (e.g. Space/native-control
	// keydown promoted to clickkey).
	PreventDefault bool
}

// FastClickQuery lets the classifier ask the fast-click machine whether it
// is mid-sequence for this event, without classify importing fastclick
// directly.
type FastClickQuery func(event core.DOMEvent) bool

// Classify maps a raw DOM event of the given native type to its semantic
// classification. a11yClick/mouseSpecial/customEvents gate the optional
// subsystems (Config.A11yClickSupport etc.); isMidFastClick should be nil
// when FastClickSupport is disabled.
func Classify(nativeType string, event core.DOMEvent, a11yClick, mouseSpecial, customEvents bool, isMidFastClick FastClickQuery) Result {
	if isMidFastClick != nil && isMidFastClick(event) {
		return Result{Ignore: true}
	}

	switch nativeType {
	case "click":
		if hasModifier(event) {
			return Result{Tag: ClickMod}
		}
		return Result{Tag: Click}

	case "keydown":
		if !a11yClick {
			return Result{Tag: KeyDown}
		}
		code := event.KeyCode()
		if code != keyEnter && code != keySpace {
			return Result{Tag: KeyDown}
		}
		prevent := code == keySpace || nativeFocusableControls[event.Target().TagName()]
		return Result{Tag: ClickKey, PreventDefault: prevent}

	case "keypress":
		return Result{Tag: KeyPress}

	case "mouseover":
		if mouseSpecial && leftSubtree(event) {
			return Result{Tag: MouseEnter}
		}
		return Result{Tag: MouseOver}

	case "mouseout":
		if mouseSpecial && leftSubtree(event) {
			return Result{Tag: MouseLeave}
		}
		return Result{Tag: MouseOut}

	case "touchend":
		return Result{Tag: TouchEnd}
	case "touchstart":
		return Result{Tag: TouchStart}
	case "touchmove":
		return Result{Tag: TouchMove}

	case "focus":
		return Result{Tag: Focus}
	case "focusin":
		return Result{Tag: FocusIn}
	case "blur":
		return Result{Tag: Blur}
	case "focusout":
		return Result{Tag: FocusOut}
	case "mousedown":
		return Result{Tag: MouseDown}
	case "mouseup":
		return Result{Tag: MouseUp}

	default:
		if customEvents {
			if t, ok := event.CustomType(); ok && t != "" {
				return Result{Tag: t}
			}
			return Result{Dropped: true}
		}
		return Result{Tag: nativeType}
	}
}

// hasModifier reports whether the click carries any of ctrl/meta/shift/alt
// or was a middle-button click, all of which yield "clickmod" so the
// browser's native new-tab/new-window behavior on modified link clicks is
// left alone.
func hasModifier(event core.DOMEvent) bool {
	return event.CtrlKey() || event.MetaKey() || event.ShiftKey() || event.AltKey() || event.Button() == 1
}

// leftSubtree tests whether relatedTarget actually left the bound element's
// subtree, used to emulate mouseenter/mouseleave from mouseover/mouseout.
// Emulation has no bound element to test against at classification time
// (that's resolved by the walker later), so this only checks the simple
// case: relatedTarget is nil (left the document) or distinct from target.
func leftSubtree(event core.DOMEvent) bool {
	related, ok := event.RelatedTarget()
	if !ok {
		return true
	}
	return !related.Same(event.Target())
}
