package drbg

import "crypto/sha256"

// DeriveNonce computes H1(r ‖ K ‖ canonicalPolicy) = SHA-256(r ‖ K ‖
// canonicalPolicy), spec.md §4.3's nonce-derivation function. Callers
// pass already-serialized r and K and the policy's canonical byte
// form; this function does no canonicalization of its own.
func DeriveNonce(r, k, canonicalPolicy []byte) []byte {
	h := sha256.New()
	h.Write(r)
	h.Write(k)
	h.Write(canonicalPolicy)
	sum := h.Sum(nil)
	return sum[:]
}
