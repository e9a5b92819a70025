package etree

import (
	"sort"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/patview"
)

type axis int

const (
	axisChild axis = iota
	axisDescendant
)

// step is one location step of a path, e.g. the "pat:Claim" in ".//pat:Claim".
type step struct {
	axis   axis
	prefix string
	local  string // "*" matches any name
	attr   bool
}

// branch is one alternative of a union expression.
type branch struct {
	fromRoot bool
	steps    []step
}

// Path is a compiled path expression. It supports the subset of XPath used
// to navigate ST96 documents:
//
//	//pat:Claims                      anywhere in the document
//	.//com:P | .//pat:P               union, merged in document order
//	./pat:Claim/pat:ClaimText         child steps
//	.//com:P/@com:pNumber             trailing attribute step
//
// A Path is immutable and safe for concurrent use.
type Path struct {
	expr     string
	branches []branch
	resolve  func(prefix string) string

	// absolute is set when any branch starts at the document root.
	absolute bool
}

// Compile parses expr, resolving prefixes through the patview namespace
// registry. Returns EINVALID if expr cannot be parsed.
func Compile(expr string) (*Path, error) {
	return compile(expr, func(prefix string) string {
		uri, _ := patview.NamespaceURI(prefix)
		return uri
	})
}

// CompileWithNamespaces is like Compile but resolves prefixes through ns.
func CompileWithNamespaces(expr string, ns map[string]string) (*Path, error) {
	m := make(map[string]string, len(ns))
	for k, v := range ns {
		m[k] = v
	}
	return compile(expr, func(prefix string) string { return m[prefix] })
}

// MustCompile is like Compile but panics if expr cannot be parsed.
func MustCompile(expr string) *Path {
	p, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// QueryText compiles expr and returns the trimmed string value of its first
// match in ctx. Invalid expressions and absent contexts yield "".
func QueryText(expr string, ctx Node) string {
	p, err := Compile(expr)
	if err != nil {
		return ""
	}
	return p.Text(ctx)
}

// QueryNodes compiles expr and returns all element matches in ctx in
// document order. Invalid expressions and absent contexts yield an empty
// slice.
func QueryNodes(expr string, ctx Node) []Node {
	p, err := Compile(expr)
	if err != nil {
		return []Node{}
	}
	return p.Nodes(ctx)
}

// String returns the source expression.
func (p *Path) String() string {
	return p.expr
}

// Nodes returns the elements matched by the path in document order, without
// duplicates. Attribute matches are not included.
func (p *Path) Nodes(ctx Node) []Node {
	nodes := []Node{}
	if p == nil || ctx.IsZero() {
		return nodes
	}
	for _, it := range p.evaluate(ctx.el) {
		if it.attr == nil {
			nodes = append(nodes, Node{el: it.el})
		}
	}
	return nodes
}

// First returns the first element matched by the path, or the zero Node.
func (p *Path) First(ctx Node) Node {
	nodes := p.Nodes(ctx)
	if len(nodes) == 0 {
		return Node{}
	}
	return nodes[0]
}

// Text returns the trimmed string value of the first match in document
// order: the text content of an element or the value of an attribute.
// Returns "" when nothing matches.
func (p *Path) Text(ctx Node) string {
	if p == nil || ctx.IsZero() {
		return ""
	}
	items := p.evaluate(ctx.el)
	if len(items) == 0 {
		return ""
	}
	it := items[0]
	if it.attr != nil {
		return strings.TrimSpace(it.attr.Value)
	}
	return strings.TrimSpace(textContent(it.el, nil))
}

// item is a match: an element, or one of its attributes when attr is set.
type item struct {
	el   *etree.Element
	attr *etree.Attr
}

func (p *Path) evaluate(ctx *etree.Element) []item {
	var items []item
	for _, b := range p.branches {
		items = append(items, p.evaluateBranch(b, ctx)...)
	}
	if len(items) < 2 {
		return items
	}
	// Relative branches only match ctx and its descendants.
	scope := ctx
	if p.absolute {
		scope = top(ctx)
	}
	return documentOrder(scope, items)
}

func (p *Path) evaluateBranch(b branch, ctx *etree.Element) []item {
	current := []*etree.Element{ctx}
	if b.fromRoot {
		current = []*etree.Element{top(ctx)}
	}

	for _, s := range b.steps {
		if s.attr {
			return p.selectAttrs(current, s)
		}
		var next []*etree.Element
		for _, el := range current {
			switch s.axis {
			case axisChild:
				for _, c := range el.ChildElements() {
					if p.match(c, s) {
						next = append(next, c)
					}
				}
			case axisDescendant:
				walk(el, func(c *etree.Element) {
					if p.match(c, s) {
						next = append(next, c)
					}
				})
			}
		}
		if len(next) == 0 {
			return nil
		}
		current = next
	}

	items := make([]item, 0, len(current))
	for _, el := range current {
		items = append(items, item{el: el})
	}
	return items
}

func (p *Path) selectAttrs(elems []*etree.Element, s step) []item {
	var owners []*etree.Element
	for _, el := range elems {
		owners = append(owners, el)
		if s.axis == axisDescendant {
			walk(el, func(c *etree.Element) { owners = append(owners, c) })
		}
	}

	var items []item
	for _, el := range owners {
		for i := range el.Attr {
			a := &el.Attr[i]
			if isNamespaceDecl(a) {
				continue
			}
			if s.local != "*" && a.Key != s.local {
				continue
			}
			if s.local == "*" && s.prefix == "" {
				items = append(items, item{el: el, attr: a})
				continue
			}
			if attrNamespace(el, a) == p.resolve(s.prefix) {
				items = append(items, item{el: el, attr: a})
			}
		}
	}
	return items
}

// match reports whether el satisfies the name test of s. Unprefixed names
// match elements in no namespace; unknown prefixes resolve to no namespace.
func (p *Path) match(el *etree.Element, s step) bool {
	if s.local == "*" && s.prefix == "" {
		return true
	}
	if s.local != "*" && el.Tag != s.local {
		return false
	}
	return elementNamespace(el) == p.resolve(s.prefix)
}

// walk calls fn for every descendant element of el in document order.
func walk(el *etree.Element, fn func(*etree.Element)) {
	for _, c := range el.ChildElements() {
		fn(c)
		walk(c, fn)
	}
}

// top returns the document node that contains el.
func top(el *etree.Element) *etree.Element {
	for el.Parent() != nil {
		el = el.Parent()
	}
	return el
}

// documentOrder sorts items by the position of their element within the
// scope subtree and drops duplicates. Every item must lie in scope. An
// element sorts before its attributes.
func documentOrder(scope *etree.Element, items []item) []item {
	pos := make(map[*etree.Element]int)
	pos[scope] = 0
	walk(scope, func(el *etree.Element) { pos[el] = len(pos) })

	attrIndex := func(it item) int {
		if it.attr == nil {
			return -1
		}
		for i := range it.el.Attr {
			if &it.el.Attr[i] == it.attr {
				return i
			}
		}
		return len(it.el.Attr)
	}

	sort.SliceStable(items, func(i, j int) bool {
		pi, pj := pos[items[i].el], pos[items[j].el]
		if pi != pj {
			return pi < pj
		}
		return attrIndex(items[i]) < attrIndex(items[j])
	})

	out := items[:0]
	for i, it := range items {
		if i > 0 && it == items[i-1] {
			continue
		}
		out = append(out, it)
	}
	return out
}

func compile(expr string, resolve func(string) string) (*Path, error) {
	p := &Path{expr: expr, resolve: resolve}
	for _, alt := range strings.Split(expr, "|") {
		b, err := parseBranch(strings.TrimSpace(alt))
		if err != nil {
			return nil, patview.Errorf(patview.EINVALID, "invalid path %q: %s", expr, err.Message)
		}
		p.branches = append(p.branches, b)
		p.absolute = p.absolute || b.fromRoot
	}
	return p, nil
}

func parseBranch(s string) (branch, *patview.Error) {
	var b branch
	if s == "" {
		return b, patview.Errorf(patview.EINVALID, "empty expression")
	}
	if s == "." {
		return b, nil
	}

	ax := axisChild
	switch {
	case strings.HasPrefix(s, "//"):
		b.fromRoot, ax, s = true, axisDescendant, s[2:]
	case strings.HasPrefix(s, "/"):
		b.fromRoot, s = true, s[1:]
	case strings.HasPrefix(s, ".//"):
		ax, s = axisDescendant, s[3:]
	case strings.HasPrefix(s, "./"):
		s = s[2:]
	}

	for {
		var name string
		i := strings.IndexByte(s, '/')
		if i < 0 {
			name, s = s, ""
		} else {
			name, s = s[:i], s[i:]
		}

		st, err := parseStep(name, ax)
		if err != nil {
			return b, err
		}
		if len(b.steps) > 0 && b.steps[len(b.steps)-1].attr {
			return b, patview.Errorf(patview.EINVALID, "attribute step must be last")
		}
		b.steps = append(b.steps, st)

		switch {
		case s == "":
			return b, nil
		case strings.HasPrefix(s, "//"):
			ax, s = axisDescendant, s[2:]
		default:
			ax, s = axisChild, s[1:]
		}
	}
}

func parseStep(name string, ax axis) (step, *patview.Error) {
	st := step{axis: ax}
	if strings.HasPrefix(name, "@") {
		st.attr = true
		name = name[1:]
	}
	if name == "" {
		return st, patview.Errorf(patview.EINVALID, "empty step")
	}
	if strings.ContainsAny(name, " \t\n[]()=\"',@/") {
		return st, patview.Errorf(patview.EINVALID, "unsupported step %q", name)
	}

	if i := strings.IndexByte(name, ':'); i >= 0 {
		st.prefix, st.local = name[:i], name[i+1:]
		if st.prefix == "" || st.local == "" || strings.Contains(st.local, ":") {
			return st, patview.Errorf(patview.EINVALID, "malformed name %q", name)
		}
	} else {
		st.local = name
	}
	return st, nil
}
