package gnarkbk

import (
	"crypto/sha256"

	"github.com/openabe-go/abe-core/pairing"
)

// hashToG1 implements spec.md §4.1's prescribed construction:
// SHA-256(domain || msg) interpreted as a field element, then a fixed
// hash-to-curve map. The map used here is exponentiation of the
// generator, which is deterministic and collision-resistant under the
// random-oracle model assuming SHA-256 and the discrete-log
// assumption — the same "H(x) = g^{H'(x)}" construction used by
// reference ABE implementations when a full SWU hash-to-curve isn't
// wired in. It is shared by both curve backends in this package.
func hashToG1(b pairing.Backend, domainSeparator string, msg []byte) (pairing.G1, error) {
	h := sha256.New()
	h.Write([]byte(domainSeparator))
	h.Write(msg)
	digest := h.Sum(nil)
	s := b.ZrFromBytesLEModR(digest)
	return b.G1Generator().ScalarMul(s), nil
}
