// Package nsresolve implements the namespace resolver (C2): qualifying a
// bare action name by walking ancestors for a jsnamespace attribute, with a
// per-element cache that distinguishes "queried, no namespace" from "never
// queried" so repeated resolutions cost at most one walk per element.
package nsresolve

import (
	"strings"
	"sync"

	"github.com/jsaction-go/contract/internal/core"
)

const namespaceAttr = "jsnamespace"

// noNamespace is the sentinel cached value meaning "this element was
// queried and has no jsnamespace ancestor", distinct from "never queried"
// (a missing map entry).
const noNamespace = ""

// Resolver caches resolved namespaces per starting element.
type Resolver struct {
	cache sync.Map // core.Element -> string ("" means none)
}

// New creates a namespace resolver.
func New() *Resolver {
	return &Resolver{}
}

// Resolve qualifies name relative to start, walking from start up through
// and including container. If name already contains '.', it is returned
// unchanged (already qualified). If no jsnamespace ancestor is found before
// leaving container, name is returned unchanged (interpreted as global).
func (r *Resolver) Resolve(name string, start core.Element, container core.Element) string {
	if strings.Contains(name, ".") {
		return name
	}

	ns := r.namespaceFor(start, container)
	if ns == noNamespace {
		return name
	}
	return ns + "." + name
}

// namespaceFor returns the jsnamespace in effect at start, querying
// ancestors up to and including container and caching the result per
// element walked.
func (r *Resolver) namespaceFor(start core.Element, container core.Element) string {
	if cached, ok := r.cache.Load(start); ok {
		return cached.(string)
	}

	ns := noNamespace
	if v, ok := start.GetAttribute(namespaceAttr); ok && strings.TrimSpace(v) != "" {
		ns = v
	} else if container == nil || !start.Same(container) {
		if parent, ok := start.ParentNode(); ok {
			if parentEl, isEl := parent.Element(); isEl {
				ns = r.namespaceFor(parentEl, container)
			}
		}
	}

	r.cache.Store(start, ns)
	return ns
}
