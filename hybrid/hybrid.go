// Package hybrid implements the thin hybrid record of spec.md §4.9:
// KEM output fed through a KDF into an AEAD key, with the payload
// sealed directly under it. Unlike cca, there is no re-encryption
// check here — this is the plain IND-CPA composition, exposed for
// completeness rather than as the module's primary construction.
// This package's KEM interface is a subset of cca.KEM, so anything
// satisfying cca.KEM also satisfies it, and the same cpwaters/kpgpsw
// adapters work with both.
package hybrid

import (
	"io"

	"github.com/openabe-go/abe-core/aead"
	"github.com/openabe-go/abe-core/drbg"
	"github.com/openabe-go/abe-core/errs"
	"github.com/openabe-go/abe-core/pairing"
	"github.com/openabe-go/abe-core/wire"
)

const kdfLabel = "abe-core/hybrid/kem"

// KEM is the capability hybrid needs: encapsulate and decapsulate a
// session key. It is a subset of cca.KEM.
type KEM interface {
	SchemeID() byte
	Encap(rng io.Reader) (*wire.Container, pairing.GT, error)
	Decap(ct *wire.Container) (pairing.GT, error)
}

// Encrypt runs KEM Encap under rng, derives an AEAD key from the
// encapsulated element, and seals plaintext under it.
func Encrypt(kem KEM, plaintext []byte, rng io.Reader) (*wire.Container, error) {
	ctKem, kgt, err := kem.Encap(rng)
	if err != nil {
		return nil, err
	}

	aeadKey, err := drbg.DeriveKey(kgt.Bytes(), kdfLabel, aead.KeySize)
	if err != nil {
		return nil, err
	}

	sealed, err := aead.Seal(aeadKey, plaintext, nil)
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

// Decrypt reverses Encrypt: Decap to recover the session key, derive
// the same AEAD key, and open the payload. Any failure surfaces as
// errs.DecryptionFailed.
func Decrypt(kem KEM, ct *wire.Container) ([]byte, error) {
	kgt, err := kem.Decap(ct)
	if err != nil {
		return nil, errs.Wrap(errs.DecryptionFailed, "hybrid.Decrypt", err)
	}

	aeadKey, err := drbg.DeriveKey(kgt.Bytes(), kdfLabel, aead.KeySize)
	if err != nil {
		return nil, errs.Wrap(errs.DecryptionFailed, "hybrid.Decrypt", err)
	}

	sealed, found := ct.Get("_ED")
	if !found {
		return nil, errs.New(errs.DecryptionFailed, "hybrid.Decrypt", "missing _ED entry")
	}
	plaintext, err := aead.Open(aeadKey, sealed, nil)
	if err != nil {
		return nil, errs.Wrap(errs.DecryptionFailed, "hybrid.Decrypt", err)
	}
	return plaintext, nil
}
