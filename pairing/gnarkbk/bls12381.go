// Package gnarkbk is the reference pairing backend, wrapping
// github.com/consensys/gnark-crypto's bls12-381 and bn254 packages
// behind the pairing.Backend capability set.
//
// gnark-crypto's own fr.Element.SetRandom draws from crypto/rand
// internally and ignores any caller-supplied source — exactly the
// hidden-CSPRNG pitfall spec.md §9 calls out. This package never
// calls it; every random scalar is built from bytes read through the
// rng parameter via pairing.DrawScalarBytes, reduced mod r with
// math/big, and only then converted into the field's internal
// (Montgomery) representation with SetBigInt.
package gnarkbk

import (
	"io"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	blsfr "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/openabe-go/abe-core/errs"
	"github.com/openabe-go/abe-core/pairing"
)

func init() {
	pairing.RegisterBackend(pairing.BLS12_381, pairing.Reference, func() pairing.Backend {
		return &bls12381Backend{}
	})
}

type bls12381Backend struct{}

func (bk *bls12381Backend) Curve() pairing.Curve {
	c, _ := pairing.LookupCurve(pairing.BLS12_381)
	return c
}

// --- Zr ---

type bls12381Zr struct{ e blsfr.Element }

func (z *bls12381Zr) Add(o pairing.Zr) pairing.Zr {
	var r blsfr.Element
	r.Add(&z.e, &o.(*bls12381Zr).e)
	return &bls12381Zr{r}
}
func (z *bls12381Zr) Sub(o pairing.Zr) pairing.Zr {
	var r blsfr.Element
	r.Sub(&z.e, &o.(*bls12381Zr).e)
	return &bls12381Zr{r}
}
func (z *bls12381Zr) Mul(o pairing.Zr) pairing.Zr {
	var r blsfr.Element
	r.Mul(&z.e, &o.(*bls12381Zr).e)
	return &bls12381Zr{r}
}
func (z *bls12381Zr) Div(o pairing.Zr) (pairing.Zr, error) {
	ov := &o.(*bls12381Zr).e
	if ov.IsZero() {
		return nil, errs.New(errs.BackendError, "gnarkbk.Zr.Div", "division by zero")
	}
	var inv, r blsfr.Element
	inv.Inverse(ov)
	r.Mul(&z.e, &inv)
	return &bls12381Zr{r}, nil
}
func (z *bls12381Zr) Neg() pairing.Zr {
	var r blsfr.Element
	r.Neg(&z.e)
	return &bls12381Zr{r}
}
func (z *bls12381Zr) Inv() (pairing.Zr, error) {
	if z.e.IsZero() {
		return nil, errs.New(errs.BackendError, "gnarkbk.Zr.Inv", "zero has no inverse")
	}
	var r blsfr.Element
	r.Inverse(&z.e)
	return &bls12381Zr{r}, nil
}
func (z *bls12381Zr) IsZero() bool { return z.e.IsZero() }
func (z *bls12381Zr) Equal(o pairing.Zr) bool {
	ov, ok := o.(*bls12381Zr)
	if !ok {
		return false
	}
	return z.e.Equal(&ov.e)
}
func (z *bls12381Zr) Bytes() []byte {
	var bi big.Int
	z.e.BigInt(&bi)
	return bi.Bytes()
}

func (bk *bls12381Backend) ZrZero() pairing.Zr {
	var e blsfr.Element
	e.SetZero()
	return &bls12381Zr{e}
}
func (bk *bls12381Backend) ZrOne() pairing.Zr {
	var e blsfr.Element
	e.SetOne()
	return &bls12381Zr{e}
}
func (bk *bls12381Backend) ZrFromUint64(v uint64) pairing.Zr {
	var e blsfr.Element
	e.SetUint64(v)
	return &bls12381Zr{e}
}
func (bk *bls12381Backend) ZrFromBytesLEModR(b []byte) pairing.Zr {
	be := make([]byte, len(b))
	for i, c := range b {
		be[len(b)-1-i] = c
	}
	var bi big.Int
	bi.SetBytes(be)
	bi.Mod(&bi, blsfr.Modulus())
	var e blsfr.Element
	e.SetBigInt(&bi)
	return &bls12381Zr{e}
}
func (bk *bls12381Backend) ZrFromBytesBE(b []byte) (pairing.Zr, error) {
	var bi big.Int
	bi.SetBytes(b)
	if bi.Cmp(blsfr.Modulus()) >= 0 {
		return nil, errs.New(errs.SerializationFailure, "gnarkbk.ZrFromBytesBE", "scalar out of range")
	}
	var e blsfr.Element
	e.SetBigInt(&bi)
	return &bls12381Zr{e}, nil
}
func (bk *bls12381Backend) ZrRandom(rng io.Reader) (pairing.Zr, error) {
	n := (blsfr.Modulus().BitLen() + 7) / 8
	buf, err := pairing.DrawScalarBytes(rng, n+8) // extra bytes reduce modulo bias
	if err != nil {
		return nil, err
	}
	var bi big.Int
	bi.SetBytes(buf)
	bi.Mod(&bi, blsfr.Modulus())
	var e blsfr.Element
	e.SetBigInt(&bi)
	return &bls12381Zr{e}, nil
}

// --- G1 ---

type bls12381G1 struct{ p bls12381.G1Affine }

func (g *bls12381G1) Add(o pairing.G1) pairing.G1 {
	var r bls12381.G1Affine
	r.Add(&g.p, &o.(*bls12381G1).p)
	return &bls12381G1{r}
}
func (g *bls12381G1) Neg() pairing.G1 {
	var r bls12381.G1Affine
	r.Neg(&g.p)
	return &bls12381G1{r}
}
func (g *bls12381G1) ScalarMul(s pairing.Zr) pairing.G1 {
	var bi big.Int
	s.(*bls12381Zr).e.BigInt(&bi)
	var r bls12381.G1Affine
	r.ScalarMultiplication(&g.p, &bi)
	return &bls12381G1{r}
}
func (g *bls12381G1) Equal(o pairing.G1) bool {
	ov, ok := o.(*bls12381G1)
	if !ok {
		return false
	}
	return g.p.Equal(&ov.p)
}
func (g *bls12381G1) IsIdentity() bool { return g.p.X.IsZero() && g.p.Y.IsZero() }
func (g *bls12381G1) IsOnCurve() bool  { return g.p.IsOnCurve() && g.p.IsInSubGroup() }
func (g *bls12381G1) Bytes() []byte {
	b := g.p.Marshal()
	return b[:]
}

func (bk *bls12381Backend) G1Identity() pairing.G1 { return &bls12381G1{} }
func (bk *bls12381Backend) G1Generator() pairing.G1 {
	_, _, g1, _ := bls12381.Generators()
	return &bls12381G1{g1}
}
func (bk *bls12381Backend) G1Random(rng io.Reader) (pairing.G1, error) {
	return pairing.RandomG1(bk, rng)
}
func (bk *bls12381Backend) G1FromBytes(b []byte) (pairing.G1, error) {
	var p bls12381.G1Affine
	if err := p.Unmarshal(b); err != nil {
		return nil, errs.Wrap(errs.SerializationFailure, "gnarkbk.G1FromBytes", err)
	}
	return &bls12381G1{p}, nil
}

// --- G2 ---

type bls12381G2 struct{ p bls12381.G2Affine }

func (g *bls12381G2) Add(o pairing.G2) pairing.G2 {
	var r bls12381.G2Affine
	r.Add(&g.p, &o.(*bls12381G2).p)
	return &bls12381G2{r}
}
func (g *bls12381G2) Neg() pairing.G2 {
	var r bls12381.G2Affine
	r.Neg(&g.p)
	return &bls12381G2{r}
}
func (g *bls12381G2) ScalarMul(s pairing.Zr) pairing.G2 {
	var bi big.Int
	s.(*bls12381Zr).e.BigInt(&bi)
	var r bls12381.G2Affine
	r.ScalarMultiplication(&g.p, &bi)
	return &bls12381G2{r}
}
func (g *bls12381G2) Equal(o pairing.G2) bool {
	ov, ok := o.(*bls12381G2)
	if !ok {
		return false
	}
	return g.p.Equal(&ov.p)
}
func (g *bls12381G2) IsIdentity() bool { return g.p.X.IsZero() && g.p.Y.IsZero() }
func (g *bls12381G2) IsOnCurve() bool  { return g.p.IsOnCurve() && g.p.IsInSubGroup() }
func (g *bls12381G2) Bytes() []byte {
	b := g.p.Marshal()
	return b[:]
}

func (bk *bls12381Backend) G2Identity() pairing.G2 { return &bls12381G2{} }
func (bk *bls12381Backend) G2Generator() pairing.G2 {
	_, _, _, g2 := bls12381.Generators()
	return &bls12381G2{g2}
}
func (bk *bls12381Backend) G2Random(rng io.Reader) (pairing.G2, error) {
	return pairing.RandomG2(bk, rng)
}
func (bk *bls12381Backend) G2FromBytes(b []byte) (pairing.G2, error) {
	var p bls12381.G2Affine
	if err := p.Unmarshal(b); err != nil {
		return nil, errs.Wrap(errs.SerializationFailure, "gnarkbk.G2FromBytes", err)
	}
	return &bls12381G2{p}, nil
}

// --- GT ---

type bls12381GT struct{ e bls12381.GT }

func (g *bls12381GT) Mul(o pairing.GT) pairing.GT {
	var r bls12381.GT
	r.Mul(&g.e, &o.(*bls12381GT).e)
	return &bls12381GT{r}
}
func (g *bls12381GT) Div(o pairing.GT) (pairing.GT, error) {
	var r bls12381.GT
	r.Div(&g.e, &o.(*bls12381GT).e)
	return &bls12381GT{r}, nil
}
func (g *bls12381GT) Exp(s pairing.Zr) pairing.GT {
	var bi big.Int
	s.(*bls12381Zr).e.BigInt(&bi)
	var r bls12381.GT
	r.Exp(g.e, &bi)
	return &bls12381GT{r}
}
func (g *bls12381GT) Inverse() pairing.GT {
	var one, r bls12381.GT
	one.SetOne()
	r.Div(&one, &g.e)
	return &bls12381GT{r}
}
func (g *bls12381GT) IsIdentity() bool {
	var one bls12381.GT
	one.SetOne()
	return g.e.Equal(&one)
}
func (g *bls12381GT) Equal(o pairing.GT) bool {
	ov, ok := o.(*bls12381GT)
	if !ok {
		return false
	}
	return g.e.Equal(&ov.e)
}
func (g *bls12381GT) Bytes() []byte {
	b := g.e.Marshal()
	return b[:]
}

func (bk *bls12381Backend) GTIdentity() pairing.GT {
	var e bls12381.GT
	e.SetOne()
	return &bls12381GT{e}
}
func (bk *bls12381Backend) GTFromBytes(b []byte) (pairing.GT, error) {
	var e bls12381.GT
	if err := e.Unmarshal(b); err != nil {
		return nil, errs.Wrap(errs.SerializationFailure, "gnarkbk.GTFromBytes", err)
	}
	return &bls12381GT{e}, nil
}

func (bk *bls12381Backend) Pair(g pairing.G1, h pairing.G2) pairing.GT {
	gt, _ := bls12381.Pair([]bls12381.G1Affine{g.(*bls12381G1).p}, []bls12381.G2Affine{h.(*bls12381G2).p})
	return &bls12381GT{gt}
}
func (bk *bls12381Backend) MultiPair(pairs []pairing.PairTerm) pairing.GT {
	g1s := make([]bls12381.G1Affine, len(pairs))
	g2s := make([]bls12381.G2Affine, len(pairs))
	for i, t := range pairs {
		g1s[i] = t.G1.(*bls12381G1).p
		g2s[i] = t.G2.(*bls12381G2).p
	}
	gt, _ := bls12381.Pair(g1s, g2s)
	return &bls12381GT{gt}
}

func (bk *bls12381Backend) HashToG1(domainSeparator string, msg []byte) (pairing.G1, error) {
	return hashToG1(bk, domainSeparator, msg)
}
