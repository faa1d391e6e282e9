package classify_test

import (
	"testing"

	"github.com/jsaction-go/contract/internal/classify"
	"github.com/jsaction-go/contract/internal/core"
	"github.com/jsaction-go/contract/internal/domfake"
)

func TestClassify_PlainClick(t *testing.T) {
	root, _ := domfake.Parse(`<span id="t"></span>`)
	target, _ := root.Query("span", "t")
	event := domfake.NewEvent("click", target)

	r := classify.Classify("click", event, false, false, false, nil)
	if r.Tag != classify.Click {
		t.Errorf("Tag = %q, want click", r.Tag)
	}
}

func TestClassify_ModifiedClickIsClickMod(t *testing.T) {
	root, _ := domfake.Parse(`<span id="t"></span>`)
	target, _ := root.Query("span", "t")
	event := domfake.NewEvent("click", target).WithModifiers(true, false, false, false)

	r := classify.Classify("click", event, false, false, false, nil)
	if r.Tag != classify.ClickMod {
		t.Errorf("Tag = %q, want clickmod", r.Tag)
	}
}

func TestClassify_MiddleButtonClickIsClickMod(t *testing.T) {
	root, _ := domfake.Parse(`<span id="t"></span>`)
	target, _ := root.Query("span", "t")
	event := domfake.NewEvent("click", target).WithButton(1)

	r := classify.Classify("click", event, false, false, false, nil)
	if r.Tag != classify.ClickMod {
		t.Errorf("Tag = %q, want clickmod", r.Tag)
	}
}

func TestClassify_KeydownWithoutA11yClickStaysKeyDown(t *testing.T) {
	root, _ := domfake.Parse(`<span id="t"></span>`)
	target, _ := root.Query("span", "t")
	event := domfake.NewEvent("keydown", target).WithKeyCode(13)

	r := classify.Classify("keydown", event, false, false, false, nil)
	if r.Tag != classify.KeyDown {
		t.Errorf("Tag = %q, want keydown", r.Tag)
	}
}

func TestClassify_EnterKeydownPromotedToClickKey(t *testing.T) {
	root, _ := domfake.Parse(`<span id="t"></span>`)
	target, _ := root.Query("span", "t")
	event := domfake.NewEvent("keydown", target).WithKeyCode(13)

	r := classify.Classify("keydown", event, true, false, false, nil)
	if r.Tag != classify.ClickKey {
		t.Errorf("Tag = %q, want clickkey", r.Tag)
	}
	if r.PreventDefault {
		t.Errorf("PreventDefault = true on non-control Enter, want false")
	}
}

func TestClassify_SpaceKeydownAlwaysPreventsDefault(t *testing.T) {
	root, _ := domfake.Parse(`<span id="t"></span>`)
	target, _ := root.Query("span", "t")
	event := domfake.NewEvent("keydown", target).WithKeyCode(32)

	r := classify.Classify("keydown", event, true, false, false, nil)
	if r.Tag != classify.ClickKey || !r.PreventDefault {
		t.Errorf("got Tag=%q PreventDefault=%v, want clickkey/true", r.Tag, r.PreventDefault)
	}
}

func TestClassify_EnterOnButtonPreventsDefault(t *testing.T) {
	root, _ := domfake.Parse(`<button id="t"></button>`)
	target, _ := root.Query("button", "t")
	event := domfake.NewEvent("keydown", target).WithKeyCode(13)

	r := classify.Classify("keydown", event, true, false, false, nil)
	if r.Tag != classify.ClickKey || !r.PreventDefault {
		t.Errorf("got Tag=%q PreventDefault=%v, want clickkey/true", r.Tag, r.PreventDefault)
	}
}

func TestClassify_OtherKeyStaysKeyDown(t *testing.T) {
	root, _ := domfake.Parse(`<span id="t"></span>`)
	target, _ := root.Query("span", "t")
	event := domfake.NewEvent("keydown", target).WithKeyCode(9) // Tab

	r := classify.Classify("keydown", event, true, false, false, nil)
	if r.Tag != classify.KeyDown {
		t.Errorf("Tag = %q, want keydown", r.Tag)
	}
}

func TestClassify_MouseoverWithoutSpecialStaysMouseOver(t *testing.T) {
	root, _ := domfake.Parse(`<span id="t"></span>`)
	target, _ := root.Query("span", "t")
	event := domfake.NewEvent("mouseover", target)

	r := classify.Classify("mouseover", event, false, false, false, nil)
	if r.Tag != classify.MouseOver {
		t.Errorf("Tag = %q, want mouseover", r.Tag)
	}
}

func TestClassify_MouseoverFromOutsideBecomesMouseEnter(t *testing.T) {
	root, _ := domfake.Parse(`<div id="other"></div><span id="t"></span>`)
	target, _ := root.Query("span", "t")
	other, _ := root.Query("div", "other")
	event := domfake.NewEvent("mouseover", target).WithRelatedTarget(other)

	r := classify.Classify("mouseover", event, false, true, false, nil)
	if r.Tag != classify.MouseEnter {
		t.Errorf("Tag = %q, want mouseenter", r.Tag)
	}
}

func TestClassify_MouseoverFromSameTargetIsNotMouseEnter(t *testing.T) {
	root, _ := domfake.Parse(`<span id="t"></span>`)
	target, _ := root.Query("span", "t")
	event := domfake.NewEvent("mouseover", target).WithRelatedTarget(target)

	r := classify.Classify("mouseover", event, false, true, false, nil)
	if r.Tag != classify.MouseOver {
		t.Errorf("Tag = %q, want mouseover (relatedTarget == target)", r.Tag)
	}
}

func TestClassify_MouseoutBecomesMouseLeave(t *testing.T) {
	root, _ := domfake.Parse(`<span id="t"></span>`)
	target, _ := root.Query("span", "t")
	event := domfake.NewEvent("mouseout", target)

	r := classify.Classify("mouseout", event, false, true, false, nil)
	if r.Tag != classify.MouseLeave {
		t.Errorf("Tag = %q, want mouseleave", r.Tag)
	}
}

func TestClassify_CustomEventUsesInnerType(t *testing.T) {
	root, _ := domfake.Parse(`<span id="t"></span>`)
	target, _ := root.Query("span", "t")
	event := domfake.NewEvent("my-widget-event", target).WithCustomType("widget.open")

	r := classify.Classify("my-widget-event", event, false, false, true, nil)
	if r.Tag != "widget.open" {
		t.Errorf("Tag = %q, want widget.open", r.Tag)
	}
}

func TestClassify_CustomEventMissingInnerTypeDropped(t *testing.T) {
	root, _ := domfake.Parse(`<span id="t"></span>`)
	target, _ := root.Query("span", "t")
	event := domfake.NewEvent("my-widget-event", target)

	r := classify.Classify("my-widget-event", event, false, false, true, nil)
	if !r.Dropped {
		t.Errorf("want Dropped=true for missing custom type")
	}
}

func TestClassify_UnknownNativeTypeWithoutCustomEventsPassesThrough(t *testing.T) {
	root, _ := domfake.Parse(`<span id="t"></span>`)
	target, _ := root.Query("span", "t")
	event := domfake.NewEvent("my-widget-event", target)

	r := classify.Classify("my-widget-event", event, false, false, false, nil)
	if r.Tag != "my-widget-event" {
		t.Errorf("Tag = %q, want raw native type passthrough", r.Tag)
	}
}

func TestClassify_MidFastClickSequenceIgnored(t *testing.T) {
	root, _ := domfake.Parse(`<span id="t"></span>`)
	target, _ := root.Query("span", "t")
	event := domfake.NewEvent("click", target)

	r := classify.Classify("click", event, false, false, false, func(core.DOMEvent) bool { return true })
	if !r.Ignore {
		t.Errorf("want Ignore=true when isMidFastClick reports true")
	}
}
