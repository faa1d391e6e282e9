//go:build js && wasm

// Package domwasm is the real browser DOM binding, implemented on
// syscall/js. It backs a Contract running in an actual WASM-compiled page;
// internal/domfake stands in for it in tests.
package domwasm

import (
	"errors"
	"syscall/js"

	"github.com/jsaction-go/contract/internal/core"
)

// Node wraps a js.Value, implementing core.Node and, for element nodes,
// core.Element.
type Node struct {
	v js.Value
}

// Wrap adapts a raw js.Value into a domwasm Node.
func Wrap(v js.Value) *Node { return &Node{v: v} }

// Document returns the page's document element, or an error if this binary
// is not actually running inside a browser's document/window globals (the
// only system-boundary error this package produces; every DOM query past
// this point assumes those globals exist).
func Document() (*Node, error) {
	global := js.Global()
	if global.IsUndefined() || global.Get("window").IsUndefined() {
		return nil, errors.New("domwasm: no window global; not running in a browser")
	}
	doc := global.Get("document")
	if doc.IsUndefined() || doc.IsNull() {
		return nil, errors.New("domwasm: no document global")
	}
	root := doc.Get("documentElement")
	if root.IsUndefined() || root.IsNull() {
		return nil, errors.New("domwasm: document has no documentElement")
	}
	return Wrap(root), nil
}

// ParentNode implements core.Node.
func (n *Node) ParentNode() (core.Node, bool) {
	p := n.v.Get("parentNode")
	if p.IsNull() || p.IsUndefined() {
		return nil, false
	}
	return Wrap(p), true
}

// Element implements core.Node: nodeType 1 is Node.ELEMENT_NODE.
func (n *Node) Element() (core.Element, bool) {
	if n.v.Get("nodeType").Int() != 1 {
		return nil, false
	}
	return n, true
}

// TagName implements core.Element; the DOM already upper-cases it for HTML
// elements.
func (n *Node) TagName() string { return n.v.Get("tagName").String() }

// GetAttribute implements core.Element.
func (n *Node) GetAttribute(name string) (string, bool) {
	has := n.v.Call("hasAttribute", name)
	if !has.Truthy() {
		return "", false
	}
	return n.v.Call("getAttribute", name).String(), true
}

// Same implements core.Element via JS reference equality.
func (n *Node) Same(other core.Element) bool {
	o, ok := other.(*Node)
	return ok && n.v.Equal(o.v)
}

// SetStyle implements the registry's optional styleSetter interface (the
// iOS bubble-fix workaround).
func (n *Node) SetStyle(prop, value string) {
	n.v.Get("style").Call("setProperty", prop, value)
}
