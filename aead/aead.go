// Package aead is the concrete authenticated-encryption collaborator
// spec.md treats as external (§1, §6.3): a fixed-key-length AEAD
// trait with encrypt/decrypt entry points. The KEM packages
// (cpwaters, kpgpsw) never import this package; cca and hybrid are the
// packages that wire this concrete implementation in.
package aead

import (
	"crypto/rand"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/openabe-go/abe-core/errs"
)

// KeySize is the fixed AEAD key length spec.md §6.3 requires.
const KeySize = chacha20poly1305.KeySize

// NonceSize is the nonce length this adapter generates and expects.
const NonceSize = chacha20poly1305.NonceSize

// Seal encrypts plaintext under key, generating a fresh random nonce
// via crypto/rand (this package sits outside the DRBG determinism
// contract — spec.md scopes that contract to the arithmetic backend,
// not to the AEAD collaborator). Returns nonce ‖ ciphertext ‖ tag.
func Seal(key, plaintext, additionalData []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, errs.New(errs.InvalidParameter, "aead.Seal", "key must be 32 bytes")
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, errs.Wrap(errs.BackendError, "aead.Seal", err)
	}
	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, errs.Wrap(errs.BackendError, "aead.Seal", err)
	}
	sealed := aead.Seal(nil, nonce, plaintext, additionalData)
	return append(nonce, sealed...), nil
}

// Open reverses Seal. Any authentication failure is reported as
// DecryptionFailed, the same kind the CCA re-encryption check uses —
// spec.md §7 requires these two failure modes to be indistinguishable
// to the caller.
func Open(key, sealedWithNonce, additionalData []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, errs.New(errs.InvalidParameter, "aead.Open", "key must be 32 bytes")
	}
	if len(sealedWithNonce) < NonceSize {
		return nil, errs.New(errs.DecryptionFailed, "aead.Open", "ciphertext shorter than nonce")
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, errs.Wrap(errs.BackendError, "aead.Open", err)
	}
	nonce := sealedWithNonce[:NonceSize]
	ct := sealedWithNonce[NonceSize:]
	plaintext, err := aead.Open(nil, nonce, ct, additionalData)
	if err != nil {
		return nil, errs.Wrap(errs.DecryptionFailed, "aead.Open", err)
	}
	return plaintext, nil
}
