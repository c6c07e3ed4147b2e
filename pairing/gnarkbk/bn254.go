package gnarkbk

import (
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	bnfr "github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/openabe-go/abe-core/errs"
	"github.com/openabe-go/abe-core/pairing"
)

func init() {
	pairing.RegisterBackend(pairing.BN254, pairing.Reference, func() pairing.Backend {
		return &bn254Backend{}
	})
}

type bn254Backend struct{}

func (bk *bn254Backend) Curve() pairing.Curve {
	c, _ := pairing.LookupCurve(pairing.BN254)
	return c
}

// --- Zr ---

type bn254Zr struct{ e bnfr.Element }

func (z *bn254Zr) Add(o pairing.Zr) pairing.Zr {
	var r bnfr.Element
	r.Add(&z.e, &o.(*bn254Zr).e)
	return &bn254Zr{r}
}
func (z *bn254Zr) Sub(o pairing.Zr) pairing.Zr {
	var r bnfr.Element
	r.Sub(&z.e, &o.(*bn254Zr).e)
	return &bn254Zr{r}
}
func (z *bn254Zr) Mul(o pairing.Zr) pairing.Zr {
	var r bnfr.Element
	r.Mul(&z.e, &o.(*bn254Zr).e)
	return &bn254Zr{r}
}
func (z *bn254Zr) Div(o pairing.Zr) (pairing.Zr, error) {
	ov := &o.(*bn254Zr).e
	if ov.IsZero() {
		return nil, errs.New(errs.BackendError, "gnarkbk.Zr.Div", "division by zero")
	}
	var inv, r bnfr.Element
	inv.Inverse(ov)
	r.Mul(&z.e, &inv)
	return &bn254Zr{r}, nil
}
func (z *bn254Zr) Neg() pairing.Zr {
	var r bnfr.Element
	r.Neg(&z.e)
	return &bn254Zr{r}
}
func (z *bn254Zr) Inv() (pairing.Zr, error) {
	if z.e.IsZero() {
		return nil, errs.New(errs.BackendError, "gnarkbk.Zr.Inv", "zero has no inverse")
	}
	var r bnfr.Element
	r.Inverse(&z.e)
	return &bn254Zr{r}, nil
}
func (z *bn254Zr) IsZero() bool { return z.e.IsZero() }
func (z *bn254Zr) Equal(o pairing.Zr) bool {
	ov, ok := o.(*bn254Zr)
	if !ok {
		return false
	}
	return z.e.Equal(&ov.e)
}
func (z *bn254Zr) Bytes() []byte {
	var bi big.Int
	z.e.BigInt(&bi)
	return bi.Bytes()
}

func (bk *bn254Backend) ZrZero() pairing.Zr {
	var e bnfr.Element
	e.SetZero()
	return &bn254Zr{e}
}
func (bk *bn254Backend) ZrOne() pairing.Zr {
	var e bnfr.Element
	e.SetOne()
	return &bn254Zr{e}
}
func (bk *bn254Backend) ZrFromUint64(v uint64) pairing.Zr {
	var e bnfr.Element
	e.SetUint64(v)
	return &bn254Zr{e}
}
func (bk *bn254Backend) ZrFromBytesLEModR(b []byte) pairing.Zr {
	be := make([]byte, len(b))
	for i, c := range b {
		be[len(b)-1-i] = c
	}
	var bi big.Int
	bi.SetBytes(be)
	bi.Mod(&bi, bnfr.Modulus())
	var e bnfr.Element
	e.SetBigInt(&bi)
	return &bn254Zr{e}
}
func (bk *bn254Backend) ZrFromBytesBE(b []byte) (pairing.Zr, error) {
	var bi big.Int
	bi.SetBytes(b)
	if bi.Cmp(bnfr.Modulus()) >= 0 {
		return nil, errs.New(errs.SerializationFailure, "gnarkbk.ZrFromBytesBE", "scalar out of range")
	}
	var e bnfr.Element
	e.SetBigInt(&bi)
	return &bn254Zr{e}, nil
}
func (bk *bn254Backend) ZrRandom(rng io.Reader) (pairing.Zr, error) {
	n := (bnfr.Modulus().BitLen() + 7) / 8
	buf, err := pairing.DrawScalarBytes(rng, n+8) // extra bytes reduce modulo bias
	if err != nil {
		return nil, err
	}
	var bi big.Int
	bi.SetBytes(buf)
	bi.Mod(&bi, bnfr.Modulus())
	var e bnfr.Element
	e.SetBigInt(&bi)
	return &bn254Zr{e}, nil
}

// --- G1 ---

type bn254G1 struct{ p bn254.G1Affine }

func (g *bn254G1) Add(o pairing.G1) pairing.G1 {
	var r bn254.G1Affine
	r.Add(&g.p, &o.(*bn254G1).p)
	return &bn254G1{r}
}
func (g *bn254G1) Neg() pairing.G1 {
	var r bn254.G1Affine
	r.Neg(&g.p)
	return &bn254G1{r}
}
func (g *bn254G1) ScalarMul(s pairing.Zr) pairing.G1 {
	var bi big.Int
	s.(*bn254Zr).e.BigInt(&bi)
	var r bn254.G1Affine
	r.ScalarMultiplication(&g.p, &bi)
	return &bn254G1{r}
}
func (g *bn254G1) Equal(o pairing.G1) bool {
	ov, ok := o.(*bn254G1)
	if !ok {
		return false
	}
	return g.p.Equal(&ov.p)
}
func (g *bn254G1) IsIdentity() bool { return g.p.X.IsZero() && g.p.Y.IsZero() }
func (g *bn254G1) IsOnCurve() bool  { return g.p.IsOnCurve() && g.p.IsInSubGroup() }
func (g *bn254G1) Bytes() []byte {
	b := g.p.Marshal()
	return b[:]
}

func (bk *bn254Backend) G1Identity() pairing.G1 { return &bn254G1{} }
func (bk *bn254Backend) G1Generator() pairing.G1 {
	_, _, g1, _ := bn254.Generators()
	return &bn254G1{g1}
}
func (bk *bn254Backend) G1Random(rng io.Reader) (pairing.G1, error) {
	return pairing.RandomG1(bk, rng)
}
func (bk *bn254Backend) G1FromBytes(b []byte) (pairing.G1, error) {
	var p bn254.G1Affine
	if err := p.Unmarshal(b); err != nil {
		return nil, errs.Wrap(errs.SerializationFailure, "gnarkbk.G1FromBytes", err)
	}
	return &bn254G1{p}, nil
}

// --- G2 ---

type bn254G2 struct{ p bn254.G2Affine }

func (g *bn254G2) Add(o pairing.G2) pairing.G2 {
	var r bn254.G2Affine
	r.Add(&g.p, &o.(*bn254G2).p)
	return &bn254G2{r}
}
func (g *bn254G2) Neg() pairing.G2 {
	var r bn254.G2Affine
	r.Neg(&g.p)
	return &bn254G2{r}
}
func (g *bn254G2) ScalarMul(s pairing.Zr) pairing.G2 {
	var bi big.Int
	s.(*bn254Zr).e.BigInt(&bi)
	var r bn254.G2Affine
	r.ScalarMultiplication(&g.p, &bi)
	return &bn254G2{r}
}
func (g *bn254G2) Equal(o pairing.G2) bool {
	ov, ok := o.(*bn254G2)
	if !ok {
		return false
	}
	return g.p.Equal(&ov.p)
}
func (g *bn254G2) IsIdentity() bool { return g.p.X.IsZero() && g.p.Y.IsZero() }
func (g *bn254G2) IsOnCurve() bool  { return g.p.IsOnCurve() && g.p.IsInSubGroup() }
func (g *bn254G2) Bytes() []byte {
	b := g.p.Marshal()
	return b[:]
}

func (bk *bn254Backend) G2Identity() pairing.G2 { return &bn254G2{} }
func (bk *bn254Backend) G2Generator() pairing.G2 {
	_, _, _, g2 := bn254.Generators()
	return &bn254G2{g2}
}
func (bk *bn254Backend) G2Random(rng io.Reader) (pairing.G2, error) {
	return pairing.RandomG2(bk, rng)
}
func (bk *bn254Backend) G2FromBytes(b []byte) (pairing.G2, error) {
	var p bn254.G2Affine
	if err := p.Unmarshal(b); err != nil {
		return nil, errs.Wrap(errs.SerializationFailure, "gnarkbk.G2FromBytes", err)
	}
	return &bn254G2{p}, nil
}

// --- GT ---

type bn254GT struct{ e bn254.GT }

func (g *bn254GT) Mul(o pairing.GT) pairing.GT {
	var r bn254.GT
	r.Mul(&g.e, &o.(*bn254GT).e)
	return &bn254GT{r}
}
func (g *bn254GT) Div(o pairing.GT) (pairing.GT, error) {
	var r bn254.GT
	r.Div(&g.e, &o.(*bn254GT).e)
	return &bn254GT{r}, nil
}
func (g *bn254GT) Exp(s pairing.Zr) pairing.GT {
	var bi big.Int
	s.(*bn254Zr).e.BigInt(&bi)
	var r bn254.GT
	r.Exp(g.e, &bi)
	return &bn254GT{r}
}
func (g *bn254GT) Inverse() pairing.GT {
	var one, r bn254.GT
	one.SetOne()
	r.Div(&one, &g.e)
	return &bn254GT{r}
}
func (g *bn254GT) IsIdentity() bool {
	var one bn254.GT
	one.SetOne()
	return g.e.Equal(&one)
}
func (g *bn254GT) Equal(o pairing.GT) bool {
	ov, ok := o.(*bn254GT)
	if !ok {
		return false
	}
	return g.e.Equal(&ov.e)
}
func (g *bn254GT) Bytes() []byte {
	b := g.e.Marshal()
	return b[:]
}

func (bk *bn254Backend) GTIdentity() pairing.GT {
	var e bn254.GT
	e.SetOne()
	return &bn254GT{e}
}
func (bk *bn254Backend) GTFromBytes(b []byte) (pairing.GT, error) {
	var e bn254.GT
	if err := e.Unmarshal(b); err != nil {
		return nil, errs.Wrap(errs.SerializationFailure, "gnarkbk.GTFromBytes", err)
	}
	return &bn254GT{e}, nil
}

func (bk *bn254Backend) Pair(g pairing.G1, h pairing.G2) pairing.GT {
	gt, _ := bn254.Pair([]bn254.G1Affine{g.(*bn254G1).p}, []bn254.G2Affine{h.(*bn254G2).p})
	return &bn254GT{gt}
}
func (bk *bn254Backend) MultiPair(pairs []pairing.PairTerm) pairing.GT {
	g1s := make([]bn254.G1Affine, len(pairs))
	g2s := make([]bn254.G2Affine, len(pairs))
	for i, t := range pairs {
		g1s[i] = t.G1.(*bn254G1).p
		g2s[i] = t.G2.(*bn254G2).p
	}
	gt, _ := bn254.Pair(g1s, g2s)
	return &bn254GT{gt}
}

func (bk *bn254Backend) HashToG1(domainSeparator string, msg []byte) (pairing.G1, error) {
	return hashToG1(bk, domainSeparator, msg)
}
