package aead_test

import (
	"bytes"
	"testing"

	"github.com/openabe-go/abe-core/aead"
	"github.com/openabe-go/abe-core/errs"
)

func TestSealOpenRoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte{0x09}, aead.KeySize)
	plaintext := []byte("the session key travels inside here")

	sealed, err := aead.Seal(key, plaintext, []byte("aad"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	got, err := aead.Open(key, sealed, []byte("aad"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatal("round-tripped plaintext mismatch")
	}
}

func TestOpenFailsOnTamperedCiphertext(t *testing.T) {
	key := bytes.Repeat([]byte{0x09}, aead.KeySize)
	sealed, err := aead.Seal(key, []byte("hello"), nil)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	sealed[len(sealed)-1] ^= 0xFF

	_, err = aead.Open(key, sealed, nil)
	if !errs.Is(err, errs.DecryptionFailed) {
		t.Fatalf("expected DecryptionFailed, got %v", err)
	}
}

func TestRejectsWrongKeyLength(t *testing.T) {
	_, err := aead.Seal([]byte("too short"), []byte("x"), nil)
	if !errs.Is(err, errs.InvalidParameter) {
		t.Fatalf("expected InvalidParameter, got %v", err)
	}
}
