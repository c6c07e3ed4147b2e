// Package policy implements the canonical policy tree of spec.md §3.2
// and §4.4: monotone boolean formulas over attribute leaves, reduced
// to a canonical string form in which the order of a gate's children
// does not matter. The expression parser that turns
// human-readable syntax into a Node tree is an external collaborator
// (policyparser); this package only accepts already-built trees.
package policy

import (
	"sort"
	"strconv"
	"strings"

	"github.com/openabe-go/abe-core/errs"
)

// Node is either a Leaf (an opaque attribute literal) or a Threshold
// gate over child Nodes. AND is Threshold{T: len(Children)}; OR is
// Threshold{T: 1}.
type Node struct {
	Attribute string // set iff this is a leaf
	T         int    // threshold; zero for a leaf
	Children  []*Node
	// LeafID is assigned by AssignLeafIDs and used by the LSSS engine
	// to key share/coefficient maps. It is not part of the canonical
	// form — renumbering leaves must never change canonical bytes.
	LeafID int
}

// IsLeaf reports whether n is an attribute literal.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Leaf builds a leaf node for attribute literal attr.
func Leaf(attr string) *Node { return &Node{Attribute: attr} }

// Threshold builds a t-of-children gate node.
func Threshold(t int, children ...*Node) *Node {
	return &Node{T: t, Children: children}
}

// And builds an AND gate (t = len(children)).
func And(children ...*Node) *Node { return Threshold(len(children), children...) }

// Or builds an OR gate (t = 1).
func Or(children ...*Node) *Node { return Threshold(1, children...) }

// AssignLeafIDs walks the tree depth-first in canonical child order
// and assigns each leaf a stable integer id, used as the map key by
// the lsss package. It must be called once after construction, before
// any LSSS operation, and canonical order is what makes the ids
// reproducible across independent builds of an equal tree.
func AssignLeafIDs(n *Node) {
	next := 0
	var walk func(*Node)
	walk = func(m *Node) {
		if m.IsLeaf() {
			m.LeafID = next
			next++
			return
		}
		for _, c := range sortedChildren(m.Children) {
			walk(c)
		}
	}
	walk(n)
}

// Validate checks structural invariants: every threshold's t is in
// [1, len(children)], and the tree has at least one leaf.
func Validate(n *Node) error {
	if n.IsLeaf() {
		if n.Attribute == "" {
			return errs.New(errs.InvalidParameter, "policy.Validate", "leaf with empty attribute")
		}
		return nil
	}
	if n.T < 1 || n.T > len(n.Children) {
		return errs.New(errs.InvalidParameter, "policy.Validate", "threshold out of range")
	}
	for _, c := range n.Children {
		if err := Validate(c); err != nil {
			return err
		}
	}
	return nil
}

// SortedChildren returns children ordered by their own canonical
// string. The lsss package uses this same order to assign polynomial
// evaluation points, so it must be exported and used consistently by
// both packages.
func SortedChildren(children []*Node) []*Node { return sortedChildren(children) }

// sortedChildren returns children ordered by their own canonical
// string, giving every threshold node a single, reproducible child
// order regardless of construction order.
func sortedChildren(children []*Node) []*Node {
	out := make([]*Node, len(children))
	copy(out, children)
	sort.Slice(out, func(i, j int) bool {
		return Canonical(out[i]) < Canonical(out[j])
	})
	return out
}

// Canonical produces the single canonical string form of n: infix,
// parenthesized, children sorted lexicographically by their own
// canonical form, threshold gates written "t of {child, child, ...}".
// Two trees that differ only in child order produce identical output;
// trees of different shape (for example an AND nested in an AND versus
// one flat AND) produce different strings even when logically equal.
func Canonical(n *Node) string {
	if n.IsLeaf() {
		return n.Attribute
	}
	parts := make([]string, len(n.Children))
	for i, c := range n.Children {
		parts[i] = Canonical(c)
	}
	sort.Strings(parts)
	return strconv.Itoa(n.T) + " of {" + strings.Join(parts, ", ") + "}"
}

// Satisfies reports whether attribute set s satisfies policy n.
func Satisfies(n *Node, s *AttributeList) bool {
	if n.IsLeaf() {
		return s.Has(n.Attribute)
	}
	count := 0
	for _, c := range n.Children {
		if Satisfies(c, s) {
			count++
		}
	}
	return count >= n.T
}

// SatisfyingLeaves returns, for a policy that s satisfies, one
// minimal-by-construction set of leaves witnessing satisfaction: for
// each threshold node, the first t satisfied children encountered are
// kept and the rest are discarded. The lsss package does not call it;
// it chooses its own subset while computing coefficients. Returns
// false if s does not satisfy n.
func SatisfyingLeaves(n *Node, s *AttributeList) ([]*Node, bool) {
	if n.IsLeaf() {
		if s.Has(n.Attribute) {
			return []*Node{n}, true
		}
		return nil, false
	}
	var leaves []*Node
	satisfiedChildren := 0
	for _, c := range n.Children {
		if sub, ok := SatisfyingLeaves(c, s); ok {
			leaves = append(leaves, sub...)
			satisfiedChildren++
			if satisfiedChildren == n.T {
				break
			}
		}
	}
	if satisfiedChildren < n.T {
		return nil, false
	}
	return leaves, true
}
