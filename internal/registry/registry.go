// Package registry implements the container registry (C7): the set of
// contract containers, collapsed so nested containers are not
// double-handled, with install/remove of per-event-type listeners across
// containers.
package registry

import (
	"sync"

	"golang.org/x/exp/slices"

	"github.com/google/uuid"

	"github.com/jsaction-go/contract/internal/core"
)

// Handle identifies a registered container for later removal. Backed by
// google/uuid rather than a bare pointer so handles remain stable and
// loggable across the inspector/metrics tooling.
type Handle string

// Installer wires one registered event type onto one container, returning
// an opaque listener reference used later for exact removal (the registry
// must never call "remove" with a freshly-built closure).
type Installer func(container core.Element) (listenerRef any)

// Remover detaches a previously installed listener.
type Remover func(container core.Element, eventType string, listenerRef any)

type installedListener struct {
	eventType string
	ref       any
}

type container struct {
	handle Handle
	root   core.Element
	active bool
	listen []installedListener
}

// Registry tracks every registered container and partitions them into
// active (listeners installed) and nested (descendant of an active
// container, no listeners, tracked only so add/remove stays consistent).
type Registry struct {
	mu sync.Mutex

	stopPropagation bool
	iosBubbleFix    bool

	containers map[Handle]*container
	order      []Handle // stable iteration order, insertion order

	installers map[string]Installer // eventType -> installer, replayed on new containers
	remove     Remover
}

// New creates a container registry. stopPropagation mirrors
// Config.StopPropagation: when true every container gets every handler
// (nesting is harmless, the inner handler stops the bubble); when false at
// most one container per subtree carries handlers. iosBubbleFix applies
// the cursor:pointer workaround (spec.md §4.7) to active container roots.
func New(stopPropagation, iosBubbleFix bool, remove Remover) *Registry {
	return &Registry{
		stopPropagation: stopPropagation,
		iosBubbleFix:    iosBubbleFix,
		containers:      make(map[Handle]*container),
		installers:      make(map[string]Installer),
		remove:          remove,
	}
}

// AddEvent registers a new installer for eventType and replays it onto
// every currently active container, per spec.md §4.8.
func (r *Registry) AddEvent(eventType string, install Installer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.installers[eventType]; exists {
		return // idempotent
	}
	r.installers[eventType] = install

	for _, h := range r.order {
		c := r.containers[h]
		if c.active {
			c.listen = append(c.listen, installedListener{eventType, install(c.root)})
		}
	}
}

// AddContainer registers root as a new container and returns its handle.
// Active/nested partitioning is recomputed immediately.
func (r *Registry) AddContainer(root core.Element) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	h := Handle(uuid.NewString())
	r.containers[h] = &container{handle: h, root: root}
	r.order = append(r.order, h)
	r.repartitionLocked()
	return h
}

// RemoveContainer uninstalls root's listeners (if any) and drops it from
// the registry, repartitioning the remaining containers.
func (r *Registry) RemoveContainer(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.containers[h]
	if !ok {
		return
	}
	r.uninstallLocked(c)
	delete(r.containers, h)
	if i := slices.Index(r.order, h); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	r.repartitionLocked()
}

// ActiveContainers returns the roots of every currently active container,
// for introspection/metrics.
func (r *Registry) ActiveContainers() []core.Element {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []core.Element
	for _, h := range r.order {
		if c := r.containers[h]; c.active {
			out = append(out, c.root)
		}
	}
	return out
}

// Counts returns (active, nested) container counts, for metrics.
func (r *Registry) Counts() (active, nested int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range r.order {
		if r.containers[h].active {
			active++
		} else {
			nested++
		}
	}
	return active, nested
}

// repartitionLocked re-derives the active/nested split from scratch:
// stop-propagation on means every container is active (nesting is
// harmless); stop-propagation off means a container is active only if no
// other registered container is its ancestor (spec.md §4.7 invariant: for
// every registered container C, either C is active or some active
// container A contains C as a descendant).
func (r *Registry) repartitionLocked() {
	if r.stopPropagation {
		for _, h := range r.order {
			c := r.containers[h]
			if !c.active {
				c.active = true
				r.installLocked(c)
			}
		}
		return
	}

	for _, h := range r.order {
		c := r.containers[h]
		shouldBeActive := !r.hasRegisteredAncestor(c)

		switch {
		case shouldBeActive && !c.active:
			c.active = true
			r.installLocked(c)
		case !shouldBeActive && c.active:
			c.active = false
			r.uninstallLocked(c)
		}
	}
}

// hasRegisteredAncestor reports whether some other registered container is
// an ancestor of c's root.
func (r *Registry) hasRegisteredAncestor(c *container) bool {
	for _, h := range r.order {
		other := r.containers[h]
		if other == c {
			continue
		}
		if isDescendant(c.root, other.root) {
			return true
		}
	}
	return false
}

// isDescendant walks up from el looking for ancestor.
func isDescendant(el, ancestor core.Element) bool {
	cur := el
	for {
		parent, ok := cur.ParentNode()
		if !ok {
			return false
		}
		parentEl, isEl := parent.Element()
		if !isEl {
			return false
		}
		if parentEl.Same(ancestor) {
			return true
		}
		cur = parentEl
	}
}

func (r *Registry) installLocked(c *container) {
	c.listen = c.listen[:0]
	for eventType, install := range r.installers {
		c.listen = append(c.listen, installedListener{eventType, install(c.root)})
	}
	if r.iosBubbleFix {
		applyIOSBubbleFix(c.root)
	}
}

func (r *Registry) uninstallLocked(c *container) {
	if r.remove != nil {
		for _, l := range c.listen {
			r.remove(c.root, l.eventType, l.ref)
		}
	}
	c.listen = nil
}

// applyIOSBubbleFix sets style.cursor = 'pointer' on the container root;
// without it, iOS Safari suppresses event bubbling through arbitrary
// elements (spec.md §4.7). No-op if the element doesn't expose a style
// setter (the fake DOM used in tests does not need this workaround).
func applyIOSBubbleFix(root core.Element) {
	type styleSetter interface {
		SetStyle(prop, value string)
	}
	if s, ok := root.(styleSetter); ok {
		s.SetStyle("cursor", "pointer")
	}
}
