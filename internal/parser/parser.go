// Package parser implements the jsaction attribute grammar (C1): parsing a
// raw attribute string into an core.ActionMap, with a per-node cache and a
// per-raw-string cache so repeated parses of the same attribute value are
// free. Grounded on the teacher's sync.Map-backed caches (engine.go's
// pools/sources maps) for the same "parse once, reuse by key" shape.
package parser

import (
	"strings"
	"sync"

	"github.com/jsaction-go/contract/internal/core"
)

// clauseSeparator and typeSeparator implement the grammar in spec.md §6:
//
//	jsaction-attr := clause (';' clause)* ';'?
//	clause        := (event-type ':')? action-name
const (
	clauseSeparator = ";"
	typeSeparator   = ":"
)

// Cache is the process-(per-Contract-)wide parsed-attribute cache plus the
// per-node cache. Safe for concurrent use: WASM callback re-entrancy from
// timers (fast-click) means two goroutines can observe the same node.
type Cache struct {
	defaultEventType string

	attrCache sync.Map // raw string -> core.ActionMap
	nodeCache sync.Map // core.Element -> core.ActionMap

	resolveNamespace NamespaceResolver
}

// NamespaceResolver qualifies a bare action name by walking ancestors for a
// jsnamespace attribute. Implemented by internal/nsresolve; passed in here
// rather than imported directly to avoid a parser<->nsresolve import cycle
// (nsresolve itself has no need to parse attributes).
type NamespaceResolver func(name string, start core.Element, container core.Element) string

// New creates an attribute parser cache. defaultEventType seeds the clause
// default (spec.md §4.1 step 5); resolveNamespace may be nil, in which case
// namespace qualification is skipped entirely regardless of the map's own
// contents (equivalent to JSNAMESPACE_SUPPORT off).
func New(defaultEventType string, resolveNamespace NamespaceResolver) *Cache {
	if defaultEventType == "" {
		defaultEventType = "click"
	}
	return &Cache{defaultEventType: defaultEventType, resolveNamespace: resolveNamespace}
}

// SetDefaultEventType changes the default event type used for clauses with
// no explicit "type:" prefix. It does not invalidate already-cached maps
// (those were parsed under the previous default), matching the source's
// "mutable process-wide setting" semantics applied going forward only.
func (c *Cache) SetDefaultEventType(t string) {
	if t != "" {
		c.defaultEventType = t
	}
}

// ActionMapFor returns el's Action Map, computing and caching it on first
// request. container is used for namespace resolution only; pass a nil
// container (or the element itself) when namespaces are disabled.
func (c *Cache) ActionMapFor(el core.Element, container core.Element) core.ActionMap {
	if cached, ok := c.nodeCache.Load(el); ok {
		return cached.(core.ActionMap)
	}

	raw, ok := el.GetAttribute("jsaction")
	if !ok || strings.TrimSpace(raw) == "" {
		c.nodeCache.Store(el, core.EmptyActionMap)
		return core.EmptyActionMap
	}

	var base core.ActionMap
	if cached, ok := c.attrCache.Load(raw); ok {
		base = cached.(core.ActionMap)
	} else {
		base = parse(raw, c.defaultEventType)
		c.attrCache.Store(raw, base)
	}

	final := base
	if c.resolveNamespace != nil {
		final = base.Clone()
		for etype, action := range final {
			final[etype] = c.resolveNamespace(action, el, container)
		}
	}

	c.nodeCache.Store(el, final)
	return final
}

// parse implements spec.md §4.1 step 5: split on ';', then on the first
// ':'. Duplicate event types within one attribute: last wins. Whitespace-
// only clauses are skipped. Never returns an error; a malformed clause is
// silently dropped (spec.md §7).
func parse(raw, defaultEventType string) core.ActionMap {
	clauses := strings.Split(raw, clauseSeparator)
	m := make(core.ActionMap, len(clauses))

	for _, clause := range clauses {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}

		etype := defaultEventType
		action := clause
		if idx := strings.Index(clause, typeSeparator); idx >= 0 {
			etype = strings.TrimSpace(clause[:idx])
			action = strings.TrimSpace(clause[idx+1:])
			if etype == "" {
				continue
			}
		}
		if action == "" {
			continue
		}
		m[etype] = action
	}

	if len(m) == 0 {
		return core.EmptyActionMap
	}
	return m
}
