package lsss_test

import (
	"bytes"
	"testing"

	_ "github.com/openabe-go/abe-core/pairing/gnarkbk"

	"github.com/openabe-go/abe-core/drbg"
	"github.com/openabe-go/abe-core/lsss"
	"github.com/openabe-go/abe-core/pairing"
	"github.com/openabe-go/abe-core/policy"
)

func testBackend(t *testing.T) pairing.Backend {
	t.Helper()
	b, err := pairing.NewBackend(pairing.BLS12_381, pairing.Reference)
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}
	return b
}

func TestShareAndReconstructAnd(t *testing.T) {
	b := testBackend(t)
	rng, err := drbg.New(bytes.Repeat([]byte{0x42}, 32))
	if err != nil {
		t.Fatalf("drbg.New: %v", err)
	}

	tree := policy.And(policy.Leaf("a"), policy.Leaf("b"))
	policy.AssignLeafIDs(tree)

	secret, err := b.ZrRandom(rng)
	if err != nil {
		t.Fatalf("ZrRandom: %v", err)
	}
	shares, err := lsss.Share(b, rng, tree, secret)
	if err != nil {
		t.Fatalf("Share: %v", err)
	}

	attrs, _ := policy.NewAttributeList("a", "b")
	coeffs, ok, err := lsss.Coefficients(b, tree, attrs)
	if err != nil {
		t.Fatalf("Coefficients: %v", err)
	}
	if !ok {
		t.Fatal("expected satisfaction")
	}

	reconstructed := b.ZrZero()
	for leafID, omega := range coeffs {
		reconstructed = reconstructed.Add(shares[leafID].Mul(omega))
	}
	if !reconstructed.Equal(secret) {
		t.Fatal("reconstructed secret does not match original")
	}
}

func TestShareAndReconstructThreshold(t *testing.T) {
	b := testBackend(t)
	rng, err := drbg.New(bytes.Repeat([]byte{0x07}, 32))
	if err != nil {
		t.Fatalf("drbg.New: %v", err)
	}

	tree := policy.Threshold(2, policy.Leaf("a"), policy.Leaf("b"), policy.Leaf("c"))
	policy.AssignLeafIDs(tree)

	secret, err := b.ZrRandom(rng)
	if err != nil {
		t.Fatalf("ZrRandom: %v", err)
	}
	shares, err := lsss.Share(b, rng, tree, secret)
	if err != nil {
		t.Fatalf("Share: %v", err)
	}

	attrs, _ := policy.NewAttributeList("a", "c")
	coeffs, ok, err := lsss.Coefficients(b, tree, attrs)
	if err != nil {
		t.Fatalf("Coefficients: %v", err)
	}
	if !ok {
		t.Fatal("expected satisfaction with 2 of 3 attributes")
	}

	reconstructed := b.ZrZero()
	for leafID, omega := range coeffs {
		reconstructed = reconstructed.Add(shares[leafID].Mul(omega))
	}
	if !reconstructed.Equal(secret) {
		t.Fatal("reconstructed secret does not match original for threshold gate")
	}
}

func TestCoefficientsUnsatisfied(t *testing.T) {
	b := testBackend(t)
	tree := policy.And(policy.Leaf("a"), policy.Leaf("b"))
	policy.AssignLeafIDs(tree)

	attrs, _ := policy.NewAttributeList("a")
	_, ok, err := lsss.Coefficients(b, tree, attrs)
	if err != nil {
		t.Fatalf("Coefficients: %v", err)
	}
	if ok {
		t.Fatal("expected unsatisfied policy to report false")
	}
}

func TestZeroShareStaysInMap(t *testing.T) {
	b := testBackend(t)
	rng, err := drbg.New(bytes.Repeat([]byte{0x00}, 32))
	if err != nil {
		t.Fatalf("drbg.New: %v", err)
	}

	tree := policy.Or(policy.Leaf("a"), policy.Leaf("b"))
	policy.AssignLeafIDs(tree)

	shares, err := lsss.Share(b, rng, tree, b.ZrZero())
	if err != nil {
		t.Fatalf("Share: %v", err)
	}
	if len(shares) != 2 {
		t.Fatalf("expected 2 entries in share map even with a zero secret, got %d", len(shares))
	}
}
