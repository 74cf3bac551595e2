package ooxml

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Document is a parsed XML part together with the default namespace of its
// document element. Queries take the namespace explicitly; it is derived once
// here and passed along by the caller.
type Document struct {
	Root      Element
	Namespace string
}

// Parse reads an XML document from r.
func Parse(r io.Reader) (*Document, error) {
	top, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}

	var root *xmlquery.Node
	for n := top.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			root = n
			break
		}
	}
	if root == nil {
		return nil, fmt.Errorf("parsing XML: no document element")
	}
	if root.NamespaceURI == "" {
		return nil, fmt.Errorf("%w: <%s>", ErrNoNamespace, root.Data)
	}

	return &Document{
		Root:      Element{node: root},
		Namespace: root.NamespaceURI,
	}, nil
}

// Select is shorthand for d.Root.Select(d.Namespace, path).
func (d *Document) Select(path string) []Element {
	return d.Root.Select(d.Namespace, path)
}

// Element is a node in a parsed part. The zero Element matches nothing.
type Element struct {
	node *xmlquery.Node
}

// IsZero reports whether e refers to no node.
func (e Element) IsZero() bool {
	return e.node == nil
}

// Name returns the element's local name.
func (e Element) Name() string {
	if e.node == nil {
		return ""
	}
	return e.node.Data
}

// Namespace returns the element's namespace URI.
func (e Element) Namespace() string {
	if e.node == nil {
		return ""
	}
	return e.node.NamespaceURI
}

// Select returns the elements reached by path, in document order. Each
// slash-separated step searches all descendants of the previous step's
// results for elements with that local name in namespace ns, so "sheets/sheet"
// finds every sheet below any sheets element. A path that is not a sequence
// of names selects nothing.
func (e Element) Select(ns, path string) []Element {
	if e.node == nil {
		return nil
	}

	expr, err := compileDescendantPath(ns, path)
	if err != nil {
		return nil
	}

	nodes := xmlquery.QuerySelectorAll(e.node, expr)
	out := make([]Element, len(nodes))
	for i, n := range nodes {
		out[i] = Element{node: n}
	}
	return out
}

// compileDescendantPath turns "a/b" into ".//x:a//x:b" with x bound to ns.
func compileDescendantPath(ns, path string) (*xpath.Expr, error) {
	var expr strings.Builder
	expr.WriteString(".")
	for _, step := range strings.Split(path, "/") {
		if step == "" {
			continue
		}
		expr.WriteString("//")
		if ns != "" {
			expr.WriteString(nsPrefix + ":")
		}
		expr.WriteString(step)
	}
	if expr.Len() == 1 {
		return nil, fmt.Errorf("empty path %q", path)
	}
	if ns == "" {
		return xpath.Compile(expr.String())
	}
	return xpath.CompileWithNS(expr.String(), map[string]string{nsPrefix: ns})
}

const nsPrefix = "x"

// First returns the first element reached by path.
func (e Element) First(ns, path string) (Element, bool) {
	found := e.Select(ns, path)
	if len(found) == 0 {
		return Element{}, false
	}
	return found[0], true
}

// Elements returns all direct child elements in document order.
func (e Element) Elements() []Element {
	if e.node == nil {
		return nil
	}
	var out []Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			out = append(out, Element{node: c})
		}
	}
	return out
}

// Children returns the direct child elements named local in namespace ns.
func (e Element) Children(ns, local string) []Element {
	if e.node == nil {
		return nil
	}
	var out []Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == local && c.NamespaceURI == ns {
			out = append(out, Element{node: c})
		}
	}
	return out
}

// Attr returns the value of the named attribute, or "" if absent.
func (e Element) Attr(name string) string {
	if e.node == nil {
		return ""
	}
	return e.node.SelectAttr(name)
}

// HasAttr reports whether the element carries the named attribute, with any
// or no namespace prefix.
func (e Element) HasAttr(local string) bool {
	_, ok := e.attrLocal(local)
	return ok
}

// AttrLocal returns the first attribute whose local name matches, regardless
// of its namespace prefix. Relationship ids are written as r:id, but the
// prefix is chosen by the producer.
func (e Element) AttrLocal(local string) string {
	v, _ := e.attrLocal(local)
	return v
}

func (e Element) attrLocal(local string) (string, bool) {
	if e.node == nil {
		return "", false
	}
	for _, a := range e.node.Attr {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// AttrInt returns the named attribute as an integer, or 0 if it is absent or
// not a valid integer.
func (e Element) AttrInt(name string) int {
	n, err := strconv.Atoi(strings.TrimSpace(e.Attr(name)))
	if err != nil {
		return 0
	}
	return n
}

// Text returns the concatenated character data of the element and its
// descendants.
func (e Element) Text() string {
	if e.node == nil {
		return ""
	}
	return e.node.InnerText()
}
