package abe_test

import (
	"bytes"
	"testing"

	_ "github.com/openabe-go/abe-core/pairing/gnarkbk"

	"github.com/openabe-go/abe-core/abe"
	"github.com/openabe-go/abe-core/drbg"
	"github.com/openabe-go/abe-core/errs"
	"github.com/openabe-go/abe-core/policy"
)

func TestCPWatersEndToEnd(t *testing.T) {
	cfg := abe.Config{Scheme: abe.CPWaters}
	rng, err := drbg.New(bytes.Repeat([]byte{0x01}, 32))
	if err != nil {
		t.Fatalf("drbg.New: %v", err)
	}

	mpk, msk, err := abe.Setup(cfg, rng, nil)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	tree := policy.And(policy.Leaf("role:admin"), policy.Leaf("dept:eng"))
	policy.AssignLeafIDs(tree)
	attrs, _ := policy.NewAttributeList("role:admin", "dept:eng")

	sk, err := abe.KeyGen(cfg, rng, mpk, msk, attrs, nil)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}

	plaintext := []byte("attribute-based payload")
	ct, err := abe.Encrypt(cfg, rng, mpk, tree, nil, plaintext)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	got, err := abe.Decrypt(cfg, mpk, sk, tree, nil, ct)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatal("round-tripped plaintext mismatch")
	}
}

func TestKPGPSWEndToEnd(t *testing.T) {
	cfg := abe.Config{Scheme: abe.KPGPSW}
	rng, err := drbg.New(bytes.Repeat([]byte{0x02}, 32))
	if err != nil {
		t.Fatalf("drbg.New: %v", err)
	}

	universe := []string{"role:admin", "dept:eng", "region:eu"}
	mpk, msk, err := abe.Setup(cfg, rng, universe)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	tree := policy.And(policy.Leaf("role:admin"), policy.Leaf("dept:eng"))
	policy.AssignLeafIDs(tree)
	sk, err := abe.KeyGen(cfg, rng, mpk, msk, nil, tree)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}

	attrs, _ := policy.NewAttributeList("role:admin", "dept:eng", "region:eu")
	plaintext := []byte("key-policy payload")
	ct, err := abe.Encrypt(cfg, rng, mpk, nil, attrs, plaintext)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	got, err := abe.Decrypt(cfg, mpk, sk, nil, nil, ct)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatal("round-tripped plaintext mismatch")
	}
}

func TestCCAOffUsesHybridPath(t *testing.T) {
	cfg := abe.Config{Scheme: abe.CPWaters, CCA: abe.CCAOff}
	rng, err := drbg.New(bytes.Repeat([]byte{0x03}, 32))
	if err != nil {
		t.Fatalf("drbg.New: %v", err)
	}
	mpk, msk, err := abe.Setup(cfg, rng, nil)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	tree := policy.And(policy.Leaf("a"), policy.Leaf("b"))
	policy.AssignLeafIDs(tree)
	attrs, _ := policy.NewAttributeList("a", "b")
	sk, err := abe.KeyGen(cfg, rng, mpk, msk, attrs, nil)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}

	plaintext := []byte("no re-encryption check here")
	ct, err := abe.Encrypt(cfg, rng, mpk, tree, nil, plaintext)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	got, err := abe.Decrypt(cfg, mpk, sk, tree, nil, ct)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatal("round-tripped plaintext mismatch")
	}
}

func TestStandardEncodingRoundTrip(t *testing.T) {
	cfg := abe.Config{Scheme: abe.CPWaters, Encoding: abe.StandardFramed}
	rng, err := drbg.New(bytes.Repeat([]byte{0x04}, 32))
	if err != nil {
		t.Fatalf("drbg.New: %v", err)
	}
	mpk, msk, err := abe.Setup(cfg, rng, nil)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	tree := policy.And(policy.Leaf("a"), policy.Leaf("b"))
	policy.AssignLeafIDs(tree)
	attrs, _ := policy.NewAttributeList("a", "b")
	sk, err := abe.KeyGen(cfg, rng, mpk, msk, attrs, nil)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}

	plaintext := []byte("framed payload")
	ct, err := abe.Encrypt(cfg, rng, mpk, tree, nil, plaintext)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	got, err := abe.Decrypt(cfg, mpk, sk, tree, nil, ct)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatal("round-tripped plaintext mismatch")
	}
}

func TestDecryptFailsForUnsatisfiedPolicy(t *testing.T) {
	cfg := abe.Config{Scheme: abe.CPWaters}
	rng, err := drbg.New(bytes.Repeat([]byte{0x05}, 32))
	if err != nil {
		t.Fatalf("drbg.New: %v", err)
	}
	mpk, msk, err := abe.Setup(cfg, rng, nil)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	tree := policy.And(policy.Leaf("a"), policy.Leaf("b"))
	policy.AssignLeafIDs(tree)

	weakAttrs, _ := policy.NewAttributeList("a")
	sk, err := abe.KeyGen(cfg, rng, mpk, msk, weakAttrs, nil)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}

	ct, err := abe.Encrypt(cfg, rng, mpk, tree, nil, []byte("secret"))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	_, err = abe.Decrypt(cfg, mpk, sk, tree, nil, ct)
	if !errs.Is(err, errs.PolicyUnsatisfied) {
		t.Fatalf("expected PolicyUnsatisfied, got %v", err)
	}
}

func TestSetupUnknownSchemeRejected(t *testing.T) {
	cfg := abe.Config{Scheme: "NOT_A_SCHEME"}
	rng, err := drbg.New(bytes.Repeat([]byte{0x06}, 32))
	if err != nil {
		t.Fatalf("drbg.New: %v", err)
	}
	_, _, err = abe.Setup(cfg, rng, nil)
	if !errs.Is(err, errs.InvalidParameter) {
		t.Fatalf("expected InvalidParameter, got %v", err)
	}
}
