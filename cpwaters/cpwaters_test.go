package cpwaters_test

import (
	"bytes"
	"testing"

	_ "github.com/openabe-go/abe-core/pairing/gnarkbk"

	"github.com/openabe-go/abe-core/cpwaters"
	"github.com/openabe-go/abe-core/drbg"
	"github.com/openabe-go/abe-core/errs"
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
	rng, err := drbg.New(bytes.Repeat([]byte{0x11}, 32))
	if err != nil {
		t.Fatalf("drbg.New: %v", err)
	}

	mpk, msk, err := cpwaters.Setup(b, rng)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	attrs, _ := policy.NewAttributeList("role:admin", "dept:eng")
	sk, err := cpwaters.KeyGen(b, rng, mpk, msk, attrs)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}

	tree := policy.And(policy.Leaf("role:admin"), policy.Leaf("dept:eng"))
	policy.AssignLeafIDs(tree)

	ct, kgt, err := cpwaters.Encap(b, rng, mpk, tree)
	if err != nil {
		t.Fatalf("Encap: %v", err)
	}

	recovered, err := cpwaters.Decap(b, mpk, sk, ct, tree)
	if err != nil {
		t.Fatalf("Decap: %v", err)
	}
	if !recovered.Equal(kgt) {
		t.Fatal("decapsulated key does not match encapsulated key")
	}
}

func TestDecapFailsOnUnsatisfiedPolicy(t *testing.T) {
	b := testBackend(t)
	rng, err := drbg.New(bytes.Repeat([]byte{0x22}, 32))
	if err != nil {
		t.Fatalf("drbg.New: %v", err)
	}

	mpk, msk, err := cpwaters.Setup(b, rng)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	attrs, _ := policy.NewAttributeList("role:guest")
	sk, err := cpwaters.KeyGen(b, rng, mpk, msk, attrs)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}

	tree := policy.And(policy.Leaf("role:admin"), policy.Leaf("dept:eng"))
	policy.AssignLeafIDs(tree)

	ct, _, err := cpwaters.Encap(b, rng, mpk, tree)
	if err != nil {
		t.Fatalf("Encap: %v", err)
	}

	_, err = cpwaters.Decap(b, mpk, sk, ct, tree)
	if !errs.Is(err, errs.PolicyUnsatisfied) {
		t.Fatalf("expected PolicyUnsatisfied, got %v", err)
	}
}

func TestEncapDeterministicUnderFixedSeed(t *testing.T) {
	b := testBackend(t)
	seed := bytes.Repeat([]byte{0x00}, 32)

	setupRng, err := drbg.New(seed)
	if err != nil {
		t.Fatalf("drbg.New: %v", err)
	}
	mpk, _, err := cpwaters.Setup(b, setupRng)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	tree := policy.Leaf("x")
	policy.AssignLeafIDs(tree)

	rngA, err := drbg.New(seed)
	if err != nil {
		t.Fatalf("drbg.New: %v", err)
	}
	ctA, kgtA, err := cpwaters.Encap(b, rngA, mpk, tree)
	if err != nil {
		t.Fatalf("Encap: %v", err)
	}

	rngB, err := drbg.New(seed)
	if err != nil {
		t.Fatalf("drbg.New: %v", err)
	}
	ctB, kgtB, err := cpwaters.Encap(b, rngB, mpk, tree)
	if err != nil {
		t.Fatalf("Encap: %v", err)
	}

	bufA, err := ctA.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	bufB, err := ctB.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(bufA, bufB) {
		t.Fatal("two Encap calls under the same DRBG seed produced different ciphertexts")
	}
	if !kgtA.Equal(kgtB) {
		t.Fatal("two Encap calls under the same DRBG seed produced different session keys")
	}
}
