package hybrid_test

import (
	"bytes"
	"testing"

	_ "github.com/openabe-go/abe-core/pairing/gnarkbk"

	"github.com/openabe-go/abe-core/cca"
	"github.com/openabe-go/abe-core/cpwaters"
	"github.com/openabe-go/abe-core/drbg"
	"github.com/openabe-go/abe-core/errs"
	"github.com/openabe-go/abe-core/hybrid"
	"github.com/openabe-go/abe-core/pairing"
	"github.com/openabe-go/abe-core/policy"
)

func TestRoundTrip(t *testing.T) {
	b, err := pairing.NewBackend(pairing.BLS12_381, pairing.Reference)
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}
	rng, err := drbg.New(bytes.Repeat([]byte{0x12}, 32))
	if err != nil {
		t.Fatalf("drbg.New: %v", err)
	}
	mpk, msk, err := cpwaters.Setup(b, rng)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	tree := policy.And(policy.Leaf("role:admin"), policy.Leaf("dept:eng"))
	policy.AssignLeafIDs(tree)
	attrs, _ := policy.NewAttributeList("role:admin", "dept:eng")
	sk, err := cpwaters.KeyGen(b, rng, mpk, msk, attrs)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}

	encryptSide := &cca.CPWatersKEM{B: b, MPK: mpk, Tree: tree}
	decryptSide := &cca.CPWatersKEM{B: b, MPK: mpk, Tree: tree, SK: sk}

	plaintext := []byte("hybrid record payload")
	ct, err := hybrid.Encrypt(encryptSide, plaintext, rng)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	got, err := hybrid.Decrypt(decryptSide, ct)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatal("round-tripped plaintext mismatch")
	}
}

func TestDecryptFailsOnTamperedPayload(t *testing.T) {
	b, err := pairing.NewBackend(pairing.BLS12_381, pairing.Reference)
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}
	rng, err := drbg.New(bytes.Repeat([]byte{0x34}, 32))
	if err != nil {
		t.Fatalf("drbg.New: %v", err)
	}
	mpk, msk, err := cpwaters.Setup(b, rng)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	tree := policy.And(policy.Leaf("role:admin"), policy.Leaf("dept:eng"))
	policy.AssignLeafIDs(tree)
	attrs, _ := policy.NewAttributeList("role:admin", "dept:eng")
	sk, err := cpwaters.KeyGen(b, rng, mpk, msk, attrs)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}

	encryptSide := &cca.CPWatersKEM{B: b, MPK: mpk, Tree: tree}
	decryptSide := &cca.CPWatersKEM{B: b, MPK: mpk, Tree: tree, SK: sk}

	ct, err := hybrid.Encrypt(encryptSide, []byte("hello"), rng)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	sealed, _ := ct.Get("_ED")
	tampered := append([]byte(nil), sealed...)
	tampered[len(tampered)-1] ^= 0xFF
	ct.Set("_ED", tampered)

	_, err = hybrid.Decrypt(decryptSide, ct)
	if !errs.Is(err, errs.DecryptionFailed) {
		t.Fatalf("expected DecryptionFailed, got %v", err)
	}
}
