package pairing

import (
	"crypto/sha256"
	"io"

	"github.com/openabe-go/abe-core/errs"
)

// DrawScalarBytes reads exactly n bytes from rng. Backends call this
// from ZrRandom with n = ceil(log2(r)/8) + 8, eight bytes beyond the
// scalar width, then reduce the result mod r themselves.
func DrawScalarBytes(rng io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(rng, buf); err != nil {
		return nil, errs.Wrap(errs.BackendError, "pairing.DrawScalarBytes", err)
	}
	return buf, nil
}

// zrFromTag derives a fixed (non-secret) scalar from a domain tag by
// hashing it into the scalar field. It is used to derive fixed,
// non-canonical base points, never to derive a secret.
func zrFromTag(b Backend, tag string) Zr {
	h := sha256.Sum256([]byte("abe-core/fixed-base/" + tag))
	return b.ZrFromBytesLEModR(h[:])
}

// FixedBaseG1 returns a deterministic point in G1: the backend's
// generator scalar-multiplied by a fixed exponent hashed from tag. The
// point therefore depends on which generator the backend uses; it is
// not hashed into the group independently of it.
func FixedBaseG1(b Backend, tag string) G1 {
	return b.G1Generator().ScalarMul(zrFromTag(b, tag))
}

// FixedBaseG2 is the G2 analogue of FixedBaseG1.
func FixedBaseG2(b Backend, tag string) G2 {
	return b.G2Generator().ScalarMul(zrFromTag(b, tag))
}

// RandomG1 implements the spec.md §4.1 determinism recipe for
// sampling a "random" G1 element from an io.Reader: draw a scalar
// from rng, then exponentiate a fixed base. Backends call this from
// their G1Random method rather than re-implementing it.
func RandomG1(b Backend, rng io.Reader) (G1, error) {
	s, err := b.ZrRandom(rng)
	if err != nil {
		return nil, err
	}
	return FixedBaseG1(b, "random-g1").ScalarMul(s), nil
}

// RandomG2 is the G2 analogue of RandomG1.
func RandomG2(b Backend, rng io.Reader) (G2, error) {
	s, err := b.ZrRandom(rng)
	if err != nil {
		return nil, err
	}
	return FixedBaseG2(b, "random-g2").ScalarMul(s), nil
}
