// Package domfake is an in-memory implementation of internal/core's DOM
// abstraction, built for tests rather than a real browser.
// Fixtures are authored as HTML and parsed with golang.org/x/net/html, the
// same parser the teacher's internal/webapi/htmlrewriter.go drives. Element
// lookups here use the minimal tag/id Query helper below rather than full
// CSS selectors; internal/browsertest's conformance fixtures use
// github.com/PuerkitoBio/goquery instead, against a real rendered page.
package domfake

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/jsaction-go/contract/internal/core"
)

// Node wraps an *html.Node, implementing core.Node and, for element nodes,
// core.Element.
type Node struct {
	n     *html.Node
	owner *Node // logical reparenting override, nil if none set
}

// Wrap adapts a parsed *html.Node into a domfake Node.
func Wrap(n *html.Node) *Node { return &Node{n: n} }

// Parse parses an HTML fragment and returns its root element, ready to
// drive parser/walker/registry tests.
func Parse(fragment string) (*Node, error) {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return nil, err
	}
	root := findFirstElement(doc)
	return Wrap(root), nil
}

func findFirstElement(n *html.Node) *html.Node {
	if n.Type == html.ElementNode {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirstElement(c); found != nil {
			return found
		}
	}
	return nil
}

// SetOwner installs a logical-reparenting override: ParentNode will return
// owner instead of n's real DOM parent. Used to test the "Owner() override"
// clause of core.Node.ParentNode's contract.
func (n *Node) SetOwner(owner *Node) { n.owner = owner }

// ParentNode implements core.Node.
func (n *Node) ParentNode() (core.Node, bool) {
	if n.owner != nil {
		return n.owner, true
	}
	if n.n.Parent == nil {
		return nil, false
	}
	return Wrap(n.n.Parent), true
}

// Element implements core.Node.
func (n *Node) Element() (core.Element, bool) {
	if n.n.Type != html.ElementNode {
		return nil, false
	}
	return n, true
}

// TagName implements core.Element.
func (n *Node) TagName() string {
	return strings.ToUpper(n.n.Data)
}

// GetAttribute implements core.Element.
func (n *Node) GetAttribute(name string) (string, bool) {
	for _, a := range n.n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttribute mutates the fixture, for tests that need to flip a jsaction
// attribute mid-test.
func (n *Node) SetAttribute(name, value string) {
	for i, a := range n.n.Attr {
		if strings.EqualFold(a.Key, name) {
			n.n.Attr[i].Val = value
			return
		}
	}
	n.n.Attr = append(n.n.Attr, html.Attribute{Key: name, Val: value})
}

// Same implements core.Element by underlying-node identity.
func (n *Node) Same(other core.Element) bool {
	o, ok := other.(*Node)
	return ok && o.n == n.n
}

// Query returns the first descendant (or self) element matching tag and,
// optionally, an id attribute value, depth-first. A minimal stand-in for a
// CSS selector engine, enough for fixture authoring in tests without
// dragging goquery into every _test.go file; goquery itself backs the
// richer queries in internal/browsertest fixtures.
func (n *Node) Query(tag, id string) (*Node, bool) {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if found != nil {
			return
		}
		if cur.Type == html.ElementNode {
			matchesTag := tag == "" || strings.EqualFold(cur.Data, tag)
			matchesID := id == ""
			if !matchesID {
				for _, a := range cur.Attr {
					if a.Key == "id" && a.Val == id {
						matchesID = true
						break
					}
				}
			}
			if matchesTag && matchesID {
				found = cur
				return
			}
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n.n)
	if found == nil {
		return nil, false
	}
	return Wrap(found), true
}

// Body locates the first <body> element in n's document, the usual
// container root for registry tests.
func (n *Node) Body() (*Node, bool) {
	root := n.n
	for root.Parent != nil {
		root = root.Parent
	}
	return Wrap(root).Query("body", "")
}
