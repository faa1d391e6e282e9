//go:build js && wasm

package domwasm

import (
	"syscall/js"

	"github.com/jsaction-go/contract/internal/core"
)

// syntheticTagAttr is the property read on a live event to recognize a
// fast-click-synthesized click so the suppression sweep passes it through
// (spec.md §4.5). NewSyntheticClick's own events are snapshot-backed and
// carry the tag in their snapshot instead.
const syntheticTagAttr = "__jsaction_synthetic__"

// Event wraps a js.Value DOM event.
type Event struct {
	v      js.Value
	target *Node

	// cached is set once Clone() snapshots the live event's field values,
	// because the underlying js.Value may be invalidated by the host once
	// the synchronous dispatch that delivered it returns. NewSyntheticClick
	// also sets it, since its events have no js.Value at all.
	cached *snapshot
}

type snapshot struct {
	typ                    string
	ctrl, meta, shift, alt bool
	button                 int
	keyCode                int
	touchCount             int
	x, y                   float64
	hasCoords              bool
	timeStamp              float64
	prevented              bool
	customType             string
	hasCustom              bool
	synthTag               string
	hasSynth               bool
}

// WrapEvent adapts a raw DOM event js.Value.
func WrapEvent(v js.Value) *Event {
	target := v.Get("target")
	var t *Node
	if !target.IsNull() && !target.IsUndefined() {
		t = Wrap(target)
	}
	return &Event{v: v, target: t}
}

func (e *Event) live() bool { return e.cached == nil }

func (e *Event) Type() string {
	if !e.live() {
		return e.cached.typ
	}
	return e.v.Get("type").String()
}

func (e *Event) Target() core.Element { return e.target }

func (e *Event) RelatedTarget() (core.Element, bool) {
	if !e.live() {
		return nil, false
	}
	rt := e.v.Get("relatedTarget")
	if rt.IsNull() || rt.IsUndefined() {
		return nil, false
	}
	return Wrap(rt), true
}

func (e *Event) CtrlKey() bool {
	if !e.live() {
		return e.cached.ctrl
	}
	return boolProp(e.v, "ctrlKey")
}
func (e *Event) MetaKey() bool {
	if !e.live() {
		return e.cached.meta
	}
	return boolProp(e.v, "metaKey")
}
func (e *Event) ShiftKey() bool {
	if !e.live() {
		return e.cached.shift
	}
	return boolProp(e.v, "shiftKey")
}
func (e *Event) AltKey() bool {
	if !e.live() {
		return e.cached.alt
	}
	return boolProp(e.v, "altKey")
}

func boolProp(v js.Value, name string) bool {
	p := v.Get(name)
	return !p.IsUndefined() && p.Truthy()
}

func (e *Event) Button() int {
	if !e.live() {
		return e.cached.button
	}
	b := e.v.Get("button")
	if b.IsUndefined() {
		return 0
	}
	return b.Int()
}

func (e *Event) KeyCode() int {
	if !e.live() {
		return e.cached.keyCode
	}
	kc := e.v.Get("keyCode")
	if kc.IsUndefined() || kc.IsNull() {
		kc = e.v.Get("which")
	}
	if kc.IsUndefined() || kc.IsNull() {
		return 0
	}
	return kc.Int()
}

func (e *Event) TouchCount() int {
	if !e.live() {
		return e.cached.touchCount
	}
	tt := e.v.Get("targetTouches")
	if tt.IsUndefined() || tt.IsNull() {
		return 0
	}
	return tt.Get("length").Int()
}

func (e *Event) Coordinates() (float64, float64, bool) {
	if !e.live() {
		return e.cached.x, e.cached.y, e.cached.hasCoords
	}
	x, y := e.v.Get("clientX"), e.v.Get("clientY")
	if x.IsUndefined() || y.IsUndefined() {
		if touches := e.v.Get("changedTouches"); !touches.IsUndefined() && touches.Get("length").Int() > 0 {
			t0 := touches.Index(0)
			return t0.Get("clientX").Float(), t0.Get("clientY").Float(), true
		}
		return 0, 0, false
	}
	return x.Float(), y.Float(), true
}

func (e *Event) TimeStamp() float64 {
	if !e.live() {
		return e.cached.timeStamp
	}
	return e.v.Get("timeStamp").Float()
}

func (e *Event) DefaultPrevented() bool {
	if !e.live() {
		return e.cached.prevented
	}
	return e.v.Get("defaultPrevented").Truthy()
}

func (e *Event) PreventDefault() {
	if e.live() {
		e.v.Call("preventDefault")
	}
}

func (e *Event) StopPropagation() {
	if e.live() {
		e.v.Call("stopPropagation")
	}
}

// PropagationPath uses composedPath(), when the host supports it, for
// event-path walking mode.
func (e *Event) PropagationPath() ([]core.Element, bool) {
	if !e.live() {
		return nil, false
	}
	fn := e.v.Get("composedPath")
	if fn.IsUndefined() {
		return nil, false
	}
	path := e.v.Call("composedPath")
	n := path.Get("length").Int()
	out := make([]core.Element, 0, n)
	for i := 0; i < n; i++ {
		node := path.Index(i)
		if node.Get("nodeType").Int() == 1 {
			out = append(out, Wrap(node))
		}
	}
	return out, true
}

// CustomType extracts detail._type from a CustomEvent.
func (e *Event) CustomType() (string, bool) {
	if !e.live() {
		return e.cached.customType, e.cached.hasCustom
	}
	detail := e.v.Get("detail")
	if detail.IsUndefined() || detail.IsNull() {
		return "", false
	}
	t := detail.Get("_type")
	if t.IsUndefined() || t.IsNull() {
		return "", false
	}
	return t.String(), true
}

// SyntheticTag reports the fast-click sentinel: from the snapshot for a
// cloned or NewSyntheticClick-built event, otherwise from the
// syntheticTagAttr property of the live event object.
func (e *Event) SyntheticTag() (string, bool) {
	if !e.live() {
		return e.cached.synthTag, e.cached.hasSynth
	}
	tag := e.v.Get(syntheticTagAttr)
	if tag.IsUndefined() || tag.IsNull() {
		return "", false
	}
	return tag.String(), true
}

// Clone snapshots every field value so they survive past the live event
// object's validity window (spec.md §4.9: queued records must not hold a
// reference the host may recycle).
func (e *Event) Clone() core.DOMEvent {
	if !e.live() {
		clone := *e
		return &clone
	}
	x, y, hasCoords := e.Coordinates()
	customType, hasCustom := e.CustomType()
	synthTag, hasSynth := e.SyntheticTag()
	return &Event{
		target: e.target,
		cached: &snapshot{
			typ:        e.Type(),
			ctrl:       e.CtrlKey(),
			meta:       e.MetaKey(),
			shift:      e.ShiftKey(),
			alt:        e.AltKey(),
			button:     e.Button(),
			keyCode:    e.KeyCode(),
			touchCount: e.TouchCount(),
			x:          x,
			y:          y,
			hasCoords:  hasCoords,
			timeStamp:  e.TimeStamp(),
			prevented:  e.DefaultPrevented(),
			customType: customType,
			hasCustom:  hasCustom,
			synthTag:   synthTag,
			hasSynth:   hasSynth,
		},
	}
}

var _ core.DOMEvent = (*Event)(nil)
