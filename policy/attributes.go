package policy

import (
	"sort"

	"github.com/openabe-go/abe-core/errs"
)

// AttributeList is the canonical-sorted, duplicate-free attribute set
// of spec.md §3.3. Construct with NewAttributeList rather than
// building the struct directly, so the duplicate check always runs.
type AttributeList struct {
	sorted []string
	set    map[string]struct{}
}

// NewAttributeList builds an AttributeList from attrs, canonically
// sorting it. Duplicate attributes are a hard error.
func NewAttributeList(attrs ...string) (*AttributeList, error) {
	set := make(map[string]struct{}, len(attrs))
	for _, a := range attrs {
		if _, dup := set[a]; dup {
			return nil, errs.New(errs.InvalidParameter, "policy.NewAttributeList", "duplicate attribute: "+a)
		}
		set[a] = struct{}{}
	}
	sorted := make([]string, 0, len(attrs))
	for a := range set {
		sorted = append(sorted, a)
	}
	sort.Strings(sorted)
	return &AttributeList{sorted: sorted, set: set}, nil
}

// Has reports whether attr is a member.
func (l *AttributeList) Has(attr string) bool {
	_, ok := l.set[attr]
	return ok
}

// Attributes returns the canonical-sorted attribute slice. The caller
// must not mutate the returned slice.
func (l *AttributeList) Attributes() []string { return l.sorted }

// Len returns the number of attributes.
func (l *AttributeList) Len() int { return len(l.sorted) }
