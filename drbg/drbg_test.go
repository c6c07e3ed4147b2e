package drbg

import (
	"bytes"
	"testing"
)

func TestDeterministic(t *testing.T) {
	seed := make([]byte, 32)
	a, err := New(seed)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b, err := New(seed)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !bytes.Equal(a.Getrandom(64), b.Getrandom(64)) {
		t.Fatal("two DRBGs from the same seed diverged")
	}
}

func TestReseedReplacesState(t *testing.T) {
	d, err := New([]byte("seed-a"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_ = d.Getrandom(128) // advance state

	if err := d.Reseed([]byte("seed-b")); err != nil {
		t.Fatalf("Reseed: %v", err)
	}
	got := d.Getrandom(32)

	fresh, err := New([]byte("seed-b"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	want := fresh.Getrandom(32)

	if !bytes.Equal(got, want) {
		t.Fatal("reseed did not fully replace prior state")
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a, _ := New([]byte("seed-a"))
	b, _ := New([]byte("seed-b"))
	if bytes.Equal(a.Getrandom(32), b.Getrandom(32)) {
		t.Fatal("distinct seeds produced identical output")
	}
}

func TestDeriveNonceDependsOnAllInputs(t *testing.T) {
	base := DeriveNonce([]byte("r"), []byte("k"), []byte("policy"))
	if bytes.Equal(base, DeriveNonce([]byte("r2"), []byte("k"), []byte("policy"))) {
		t.Fatal("nonce did not depend on r")
	}
	if bytes.Equal(base, DeriveNonce([]byte("r"), []byte("k2"), []byte("policy"))) {
		t.Fatal("nonce did not depend on K")
	}
	if bytes.Equal(base, DeriveNonce([]byte("r"), []byte("k"), []byte("policy2"))) {
		t.Fatal("nonce did not depend on the canonical policy")
	}
}

func TestDeriveKeyLength(t *testing.T) {
	key, err := DeriveKey([]byte("some-gt-bytes"), "cca-kem", 32)
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	if len(key) != 32 {
		t.Fatalf("expected 32-byte key, got %d", len(key))
	}
}
