package abe_test

import (
	"bytes"
	"testing"

	_ "github.com/openabe-go/abe-core/pairing/gnarkbk"

	"github.com/openabe-go/abe-core/abe"
	"github.com/openabe-go/abe-core/drbg"
	"github.com/openabe-go/abe-core/policy"
)

func TestMPKMSKSKRoundTripCPWaters(t *testing.T) {
	cfg := abe.Config{Scheme: abe.CPWaters}
	rng, err := drbg.New(bytes.Repeat([]byte{0x10}, 32))
	if err != nil {
		t.Fatalf("drbg.New: %v", err)
	}
	mpk, msk, err := abe.Setup(cfg, rng, nil)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	attrs, _ := policy.NewAttributeList("role:admin", "dept:eng")
	sk, err := abe.KeyGen(cfg, rng, mpk, msk, attrs, nil)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}

	mpkBytes, err := abe.EncodeMPK(mpk)
	if err != nil {
		t.Fatalf("EncodeMPK: %v", err)
	}
	mpk2, err := abe.DecodeMPK(mpkBytes)
	if err != nil {
		t.Fatalf("DecodeMPK: %v", err)
	}

	mskBytes, err := abe.EncodeMSK(msk)
	if err != nil {
		t.Fatalf("EncodeMSK: %v", err)
	}
	msk2, err := abe.DecodeMSK(mskBytes)
	if err != nil {
		t.Fatalf("DecodeMSK: %v", err)
	}

	skBytes, err := abe.EncodeSK(sk)
	if err != nil {
		t.Fatalf("EncodeSK: %v", err)
	}
	sk2, err := abe.DecodeSK(skBytes)
	if err != nil {
		t.Fatalf("DecodeSK: %v", err)
	}

	tree := policy.And(policy.Leaf("role:admin"), policy.Leaf("dept:eng"))
	policy.AssignLeafIDs(tree)

	plaintext := []byte("round-tripped key material")
	ct, err := abe.Encrypt(cfg, rng, mpk2, tree, nil, plaintext)
	if err != nil {
		t.Fatalf("Encrypt with decoded mpk: %v", err)
	}
	got, err := abe.Decrypt(cfg, mpk2, sk2, tree, nil, ct)
	if err != nil {
		t.Fatalf("Decrypt with decoded mpk/sk: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatal("round-tripped plaintext mismatch")
	}
	_ = msk2
}

func TestMPKMSKSKRoundTripKPGPSW(t *testing.T) {
	cfg := abe.Config{Scheme: abe.KPGPSW}
	rng, err := drbg.New(bytes.Repeat([]byte{0x11}, 32))
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

	mpkBytes, err := abe.EncodeMPK(mpk)
	if err != nil {
		t.Fatalf("EncodeMPK: %v", err)
	}
	mpk2, err := abe.DecodeMPK(mpkBytes)
	if err != nil {
		t.Fatalf("DecodeMPK: %v", err)
	}

	skBytes, err := abe.EncodeSK(sk)
	if err != nil {
		t.Fatalf("EncodeSK: %v", err)
	}
	sk2, err := abe.DecodeSK(skBytes)
	if err != nil {
		t.Fatalf("DecodeSK: %v", err)
	}

	attrs, _ := policy.NewAttributeList("role:admin", "dept:eng", "region:eu")
	plaintext := []byte("key-policy round trip")
	ct, err := abe.Encrypt(cfg, rng, mpk2, nil, attrs, plaintext)
	if err != nil {
		t.Fatalf("Encrypt with decoded mpk: %v", err)
	}
	got, err := abe.Decrypt(cfg, mpk2, sk2, nil, nil, ct)
	if err != nil {
		t.Fatalf("Decrypt with decoded mpk/sk: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatal("round-tripped plaintext mismatch")
	}
}
