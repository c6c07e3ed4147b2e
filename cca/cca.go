package cca

import (
	"crypto/subtle"
	"io"

	"github.com/openabe-go/abe-core/aead"
	"github.com/openabe-go/abe-core/drbg"
	"github.com/openabe-go/abe-core/errs"
	"github.com/openabe-go/abe-core/wire"
)

const (
	rLen     = 16
	kLen     = 32
	kdfLabel = "abe-core/cca/kem"
)

// Encrypt runs spec.md §4.8's CCA Encrypt: draw r and K from rng,
// derive a nonce u from r, K and kem's access structure, seed an
// inner DRBG from u, and run the KEM under that inner DRBG so that
// Decrypt's re-encryption check can reproduce it byte for byte.
func Encrypt(kem KEM, plaintext []byte, rng io.Reader) (*wire.Container, error) {
	r := make([]byte, rLen)
	if _, err := io.ReadFull(rng, r); err != nil {
		return nil, errs.Wrap(errs.BackendError, "cca.Encrypt", err)
	}
	k := make([]byte, kLen)
	if _, err := io.ReadFull(rng, k); err != nil {
		return nil, errs.Wrap(errs.BackendError, "cca.Encrypt", err)
	}

	u := drbg.DeriveNonce(r, k, kem.AccessStructure())
	inner, err := drbg.New(u)
	if err != nil {
		return nil, err
	}

	ctKem, kgt, err := kem.Encap(inner)
	if err != nil {
		return nil, err
	}

	aeadKey, err := drbg.DeriveKey(kgt.Bytes(), kdfLabel, aead.KeySize)
	if err != nil {
		return nil, err
	}

	payload := make([]byte, 0, rLen+kLen+len(plaintext))
	payload = append(payload, r...)
	payload = append(payload, k...)
	payload = append(payload, plaintext...)

	sealed, err := aead.Seal(aeadKey, payload, nil)
	if err != nil {
		return nil, err
	}

	out := &wire.Container{SchemeID: kem.SchemeID()}
	for _, e := range ctKem.Entries {
		out.Set(e.Label, e.Value)
	}
	out.Set("_ED", sealed)
	return out, nil
}

// Decrypt runs spec.md §4.8's CCA Decrypt: decapsulate, open the AEAD
// payload to recover r, K and the plaintext, then redo the whole
// encapsulation deterministically from r and K and compare every KEM
// field against what was actually received. Any mismatch, at any
// step, surfaces as errs.DecryptionFailed — the same kind an AEAD tag
// failure produces, so a caller cannot distinguish the two. A key that
// does not satisfy the access structure is reported as
// errs.PolicyUnsatisfied.
func Decrypt(kem KEM, ct *wire.Container) ([]byte, error) {
	kgt, err := kem.Decap(ct)
	if err != nil {
		if errs.Is(err, errs.PolicyUnsatisfied) {
			return nil, err
		}
		return nil, errs.Wrap(errs.DecryptionFailed, "cca.Decrypt", err)
	}

	aeadKey, err := drbg.DeriveKey(kgt.Bytes(), kdfLabel, aead.KeySize)
	if err != nil {
		return nil, err
	}

	sealed, found := ct.Get("_ED")
	if !found {
		return nil, errs.New(errs.SerializationFailure, "cca.Decrypt", "missing _ED entry")
	}
	payload, err := aead.Open(aeadKey, sealed, nil)
	if err != nil {
		return nil, err
	}
	if len(payload) < rLen+kLen {
		return nil, errs.New(errs.DecryptionFailed, "cca.Decrypt", "recovered payload shorter than r||K")
	}
	r := payload[:rLen]
	k := payload[rLen : rLen+kLen]
	plaintext := payload[rLen+kLen:]

	u := drbg.DeriveNonce(r, k, kem.AccessStructure())
	inner, err := drbg.New(u)
	if err != nil {
		return nil, err
	}
	ctPrime, _, err := kem.Encap(inner)
	if err != nil {
		return nil, err
	}

	var received []wire.Entry
	for _, e := range ct.Entries {
		if e.Label == "_ED" {
			continue
		}
		received = append(received, e)
	}
	if !entriesEqual(received, ctPrime.Entries) {
		return nil, errs.New(errs.DecryptionFailed, "cca.Decrypt", "re-encryption check failed")
	}

	return plaintext, nil
}

// entriesEqual compares two entry sets by label and value, ignoring
// order and any surrounding container's scheme id — the re-encryption
// check cares about the KEM fields alone, not about which
// discriminator byte the outer container happens to carry. Value
// comparison is constant-time per spec.md §7: the re-encryption check
// has equal rank to the AEAD tag check and must not leak timing.
func entriesEqual(a, b []wire.Entry) bool {
	if len(a) != len(b) {
		return false
	}
	idx := make(map[string][]byte, len(b))
	for _, e := range b {
		idx[e.Label] = e.Value
	}
	ok := true
	for _, e := range a {
		v, found := idx[e.Label]
		if !found || len(v) != len(e.Value) {
			ok = false
			continue
		}
		if subtle.ConstantTimeCompare(v, e.Value) != 1 {
			ok = false
		}
	}
	return ok
}
