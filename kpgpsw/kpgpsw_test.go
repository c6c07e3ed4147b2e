package kpgpsw_test

import (
	"bytes"
	"testing"

	_ "github.com/openabe-go/abe-core/pairing/gnarkbk"

	"github.com/openabe-go/abe-core/drbg"
	"github.com/openabe-go/abe-core/errs"
	"github.com/openabe-go/abe-core/kpgpsw"
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

func TestEncapDecapRoundTrip(t *testing.T) {
	b := testBackend(t)
	rng, err := drbg.New(bytes.Repeat([]byte{0x33}, 32))
	if err != nil {
		t.Fatalf("drbg.New: %v", err)
	}

	universe := []string{"role:admin", "dept:eng", "region:eu"}
	mpk, msk, err := kpgpsw.Setup(b, rng, universe)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	tree := policy.And(policy.Leaf("role:admin"), policy.Leaf("dept:eng"))
	policy.AssignLeafIDs(tree)
	sk, err := kpgpsw.KeyGen(b, rng, mpk, msk, tree)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}

	attrs, _ := policy.NewAttributeList("role:admin", "dept:eng", "region:eu")
	ct, kgt, err := kpgpsw.Encap(b, rng, mpk, attrs)
	if err != nil {
		t.Fatalf("Encap: %v", err)
	}

	recovered, err := kpgpsw.Decap(b, sk, ct)
	if err != nil {
		t.Fatalf("Decap: %v", err)
	}
	if !recovered.Equal(kgt) {
		t.Fatal("decapsulated key does not match encapsulated key")
	}
}

func TestDecapFailsWhenAttributesInsufficient(t *testing.T) {
	b := testBackend(t)
	rng, err := drbg.New(bytes.Repeat([]byte{0x44}, 32))
	if err != nil {
		t.Fatalf("drbg.New: %v", err)
	}

	universe := []string{"role:admin", "dept:eng"}
	mpk, msk, err := kpgpsw.Setup(b, rng, universe)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	tree := policy.And(policy.Leaf("role:admin"), policy.Leaf("dept:eng"))
	policy.AssignLeafIDs(tree)
	sk, err := kpgpsw.KeyGen(b, rng, mpk, msk, tree)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}

	attrs, _ := policy.NewAttributeList("role:admin")
	ct, _, err := kpgpsw.Encap(b, rng, mpk, attrs)
	if err != nil {
		t.Fatalf("Encap: %v", err)
	}

	_, err = kpgpsw.Decap(b, sk, ct)
	if !errs.Is(err, errs.PolicyUnsatisfied) {
		t.Fatalf("expected PolicyUnsatisfied, got %v", err)
	}
}
