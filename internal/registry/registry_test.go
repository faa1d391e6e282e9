package registry_test

import (
	"testing"

	"github.com/jsaction-go/contract/internal/core"
	"github.com/jsaction-go/contract/internal/domfake"
	"github.com/jsaction-go/contract/internal/registry"
)

func newInstaller(installed *[]core.Element) registry.Installer {
	return func(c core.Element) any {
		*installed = append(*installed, c)
		return "ref"
	}
}

func TestAddContainer_SingleContainerIsActive(t *testing.T) {
	root, _ := domfake.Parse(`<div id="c"></div>`)
	container, _ := root.Query("div", "c")

	r := registry.New(false, false, nil)
	r.AddContainer(container)

	active, nested := r.Counts()
	if active != 1 || nested != 0 {
		t.Errorf("Counts = (%d, %d), want (1, 0)", active, nested)
	}
}

func TestAddContainer_NestedWithoutStopPropagationStaysInactive(t *testing.T) {
	root, _ := domfake.Parse(`<div id="outer"><div id="inner"></div></div>`)
	outer, _ := root.Query("div", "outer")
	inner, _ := root.Query("div", "inner")

	r := registry.New(false, false, nil)
	r.AddContainer(outer)
	r.AddContainer(inner)

	active, nested := r.Counts()
	if active != 1 || nested != 1 {
		t.Errorf("Counts = (%d, %d), want (1, 1)", active, nested)
	}
	got := r.ActiveContainers()
	if len(got) != 1 || !got[0].Same(outer) {
		t.Errorf("ActiveContainers = %v, want [outer]", got)
	}
}

func TestAddContainer_NestedWithStopPropagationBothActive(t *testing.T) {
	root, _ := domfake.Parse(`<div id="outer"><div id="inner"></div></div>`)
	outer, _ := root.Query("div", "outer")
	inner, _ := root.Query("div", "inner")

	r := registry.New(true, false, nil)
	r.AddContainer(outer)
	r.AddContainer(inner)

	active, nested := r.Counts()
	if active != 2 || nested != 0 {
		t.Errorf("Counts = (%d, %d), want (2, 0) with stopPropagation enabled", active, nested)
	}
}

func TestRemoveContainer_PromotesFormerlyNestedContainer(t *testing.T) {
	root, _ := domfake.Parse(`<div id="outer"><div id="inner"></div></div>`)
	outer, _ := root.Query("div", "outer")
	inner, _ := root.Query("div", "inner")

	r := registry.New(false, false, nil)
	hOuter := r.AddContainer(outer)
	r.AddContainer(inner)

	r.RemoveContainer(hOuter)

	active, nested := r.Counts()
	if active != 1 || nested != 0 {
		t.Errorf("Counts = (%d, %d), want (1, 0) after removing the outer container", active, nested)
	}
	got := r.ActiveContainers()
	if len(got) != 1 || !got[0].Same(inner) {
		t.Errorf("ActiveContainers = %v, want [inner] promoted to active", got)
	}
}

func TestAddEvent_ReplaysOntoActiveContainers(t *testing.T) {
	root, _ := domfake.Parse(`<div id="c"></div>`)
	container, _ := root.Query("div", "c")

	r := registry.New(false, false, nil)
	r.AddContainer(container)

	var installed []core.Element
	r.AddEvent("click", newInstaller(&installed))

	if len(installed) != 1 || !installed[0].Same(container) {
		t.Errorf("installed = %v, want installer replayed onto the active container", installed)
	}
}

func TestAddEvent_NotReplayedOntoNestedContainers(t *testing.T) {
	root, _ := domfake.Parse(`<div id="outer"><div id="inner"></div></div>`)
	outer, _ := root.Query("div", "outer")
	inner, _ := root.Query("div", "inner")

	r := registry.New(false, false, nil)
	r.AddContainer(outer)
	r.AddContainer(inner)

	var installed []core.Element
	r.AddEvent("click", newInstaller(&installed))

	if len(installed) != 1 || !installed[0].Same(outer) {
		t.Errorf("installed = %v, want installer only on the active outer container", installed)
	}
}

func TestAddEvent_IdempotentForSameEventType(t *testing.T) {
	root, _ := domfake.Parse(`<div id="c"></div>`)
	container, _ := root.Query("div", "c")

	r := registry.New(false, false, nil)
	r.AddContainer(container)

	var installed []core.Element
	install := newInstaller(&installed)
	r.AddEvent("click", install)
	r.AddEvent("click", install)

	if len(installed) != 1 {
		t.Errorf("installed count = %d, want 1 (second AddEvent for the same type is a no-op)", len(installed))
	}
}

func TestRemoveContainer_CallsRemoverForEachInstalledListener(t *testing.T) {
	root, _ := domfake.Parse(`<div id="c"></div>`)
	container, _ := root.Query("div", "c")

	var removedTypes []string
	r := registry.New(false, false, func(c core.Element, eventType string, ref any) {
		removedTypes = append(removedTypes, eventType)
	})
	h := r.AddContainer(container)
	r.AddEvent("click", func(core.Element) any { return "ref-click" })
	r.AddEvent("touchstart", func(core.Element) any { return "ref-touch" })

	r.RemoveContainer(h)

	if len(removedTypes) != 2 {
		t.Errorf("removedTypes = %v, want 2 entries", removedTypes)
	}
}

func TestRemoveContainer_UnknownHandleIsNoop(t *testing.T) {
	r := registry.New(false, false, nil)
	r.RemoveContainer(registry.Handle("does-not-exist"))

	active, nested := r.Counts()
	if active != 0 || nested != 0 {
		t.Errorf("Counts = (%d, %d), want (0, 0)", active, nested)
	}
}

func TestAddContainer_GrandchildPromotesOnMiddleRemoval(t *testing.T) {
	root, _ := domfake.Parse(`<div id="a"><div id="b"><div id="c"></div></div></div>`)
	a, _ := root.Query("div", "a")
	b, _ := root.Query("div", "b")
	c, _ := root.Query("div", "c")

	r := registry.New(false, false, nil)
	r.AddContainer(a)
	hb := r.AddContainer(b)
	r.AddContainer(c)

	active, _ := r.Counts()
	if active != 1 {
		t.Fatalf("precondition: active = %d, want 1 (only a)", active)
	}

	r.RemoveContainer(hb)

	got := r.ActiveContainers()
	if len(got) != 1 || !got[0].Same(a) {
		t.Errorf("ActiveContainers = %v, want [a] still active (c is still nested under a)", got)
	}
}
