package policy

import "testing"

func TestCanonicalOrderIndependent(t *testing.T) {
	ab := And(Leaf("a"), Leaf("b"))
	ba := And(Leaf("b"), Leaf("a"))
	if Canonical(ab) != Canonical(ba) {
		t.Fatalf("canonical forms differ: %q vs %q", Canonical(ab), Canonical(ba))
	}
}

func TestCanonicalDistinguishesThreshold(t *testing.T) {
	and := And(Leaf("a"), Leaf("b"))
	or := Or(Leaf("a"), Leaf("b"))
	if Canonical(and) == Canonical(or) {
		t.Fatal("AND and OR over the same leaves produced the same canonical form")
	}
}

func TestValidateRejectsBadThreshold(t *testing.T) {
	n := Threshold(3, Leaf("a"), Leaf("b"))
	if err := Validate(n); err == nil {
		t.Fatal("expected error for threshold exceeding child count")
	}
}

func TestSatisfiesAnd(t *testing.T) {
	n := And(Leaf("a"), Leaf("b"))
	full, _ := NewAttributeList("a", "b")
	partial, _ := NewAttributeList("a")
	if !Satisfies(n, full) {
		t.Fatal("expected AND to be satisfied by {a,b}")
	}
	if Satisfies(n, partial) {
		t.Fatal("expected AND to be unsatisfied by {a}")
	}
}

func TestSatisfiesThresholdOfThree(t *testing.T) {
	n := Threshold(2, Leaf("a"), Leaf("b"), Leaf("c"))
	s, _ := NewAttributeList("a", "c")
	if !Satisfies(n, s) {
		t.Fatal("expected 2-of-3 to be satisfied by {a,c}")
	}
}

func TestSatisfyingLeavesCount(t *testing.T) {
	n := Threshold(2, Leaf("a"), Leaf("b"), Leaf("c"))
	s, _ := NewAttributeList("a", "b", "c")
	leaves, ok := SatisfyingLeaves(n, s)
	if !ok {
		t.Fatal("expected satisfaction")
	}
	if len(leaves) != 2 {
		t.Fatalf("expected exactly 2 witnessing leaves, got %d", len(leaves))
	}
}

func TestAttributeListRejectsDuplicates(t *testing.T) {
	if _, err := NewAttributeList("a", "a"); err == nil {
		t.Fatal("expected error for duplicate attribute")
	}
}

func TestAttributeListSorted(t *testing.T) {
	l, err := NewAttributeList("c", "a", "b")
	if err != nil {
		t.Fatalf("NewAttributeList: %v", err)
	}
	attrs := l.Attributes()
	if attrs[0] != "a" || attrs[1] != "b" || attrs[2] != "c" {
		t.Fatalf("expected sorted attributes, got %v", attrs)
	}
}
