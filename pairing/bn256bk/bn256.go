// Package bn256bk is the alternate pairing backend (spec.md §4.1),
// wrapping github.com/fentec-project/bn256 behind the pairing.Backend
// capability set. It exists to prove the capability set is truly
// swappable: cpwaters/kpgpsw/lsss/cca never import this package or
// gnarkbk directly, only pairing.Backend.
//
// fentec-project/bn256 models GT additively (Add/Neg/ScalarMult) even
// though the group is conceptually multiplicative; this file maps
// pairing.GT's multiplicative Mul/Div/Exp/Inverse onto that additive
// API (Mul -> Add, Div -> Add+Neg, Exp -> ScalarMult, Inverse -> Neg).
package bn256bk

import (
	"crypto/sha256"
	"io"
	"math/big"

	"github.com/fentec-project/bn256"

	"github.com/openabe-go/abe-core/errs"
	"github.com/openabe-go/abe-core/pairing"
)

func init() {
	pairing.RegisterBackend(pairing.BN254, pairing.Alternate, func() pairing.Backend {
		return &backend{}
	})
}

type backend struct{}

func (bk *backend) Curve() pairing.Curve {
	c, _ := pairing.LookupCurve(pairing.BN254)
	return c
}

// --- Zr ---

type zr struct{ v *big.Int }

func newZr(v *big.Int) *zr {
	r := new(big.Int).Mod(v, bn256.Order)
	return &zr{r}
}

func (z *zr) Add(o pairing.Zr) pairing.Zr {
	return newZr(new(big.Int).Add(z.v, o.(*zr).v))
}
func (z *zr) Sub(o pairing.Zr) pairing.Zr {
	return newZr(new(big.Int).Sub(z.v, o.(*zr).v))
}
func (z *zr) Mul(o pairing.Zr) pairing.Zr {
	return newZr(new(big.Int).Mul(z.v, o.(*zr).v))
}
func (z *zr) Div(o pairing.Zr) (pairing.Zr, error) {
	ov := o.(*zr).v
	if ov.Sign() == 0 {
		return nil, errs.New(errs.BackendError, "bn256bk.Zr.Div", "division by zero")
	}
	inv := new(big.Int).ModInverse(ov, bn256.Order)
	return newZr(new(big.Int).Mul(z.v, inv)), nil
}
func (z *zr) Neg() pairing.Zr {
	return newZr(new(big.Int).Neg(z.v))
}
func (z *zr) Inv() (pairing.Zr, error) {
	if z.v.Sign() == 0 {
		return nil, errs.New(errs.BackendError, "bn256bk.Zr.Inv", "zero has no inverse")
	}
	return newZr(new(big.Int).ModInverse(z.v, bn256.Order)), nil
}
func (z *zr) IsZero() bool { return z.v.Sign() == 0 }
func (z *zr) Equal(o pairing.Zr) bool {
	ov, ok := o.(*zr)
	return ok && z.v.Cmp(ov.v) == 0
}
func (z *zr) Bytes() []byte { return z.v.Bytes() }

func (bk *backend) ZrZero() pairing.Zr { return newZr(big.NewInt(0)) }
func (bk *backend) ZrOne() pairing.Zr  { return newZr(big.NewInt(1)) }
func (bk *backend) ZrFromUint64(v uint64) pairing.Zr {
	return newZr(new(big.Int).SetUint64(v))
}
func (bk *backend) ZrFromBytesLEModR(b []byte) pairing.Zr {
	be := make([]byte, len(b))
	for i, c := range b {
		be[len(b)-1-i] = c
	}
	return newZr(new(big.Int).SetBytes(be))
}
func (bk *backend) ZrFromBytesBE(b []byte) (pairing.Zr, error) {
	v := new(big.Int).SetBytes(b)
	if v.Cmp(bn256.Order) >= 0 {
		return nil, errs.New(errs.SerializationFailure, "bn256bk.ZrFromBytesBE", "scalar out of range")
	}
	return &zr{v}, nil
}
func (bk *backend) ZrRandom(rng io.Reader) (pairing.Zr, error) {
	n := (bn256.Order.BitLen() + 7) / 8
	buf, err := pairing.DrawScalarBytes(rng, n+8)
	if err != nil {
		return nil, err
	}
	return newZr(new(big.Int).SetBytes(buf)), nil
}

func zrBig(s pairing.Zr) *big.Int { return s.(*zr).v }

// --- G1 ---

type g1 struct{ p *bn256.G1 }

func (g *g1) Add(o pairing.G1) pairing.G1 {
	return &g1{new(bn256.G1).Add(g.p, o.(*g1).p)}
}
func (g *g1) Neg() pairing.G1 {
	return &g1{new(bn256.G1).Neg(g.p)}
}
func (g *g1) ScalarMul(s pairing.Zr) pairing.G1 {
	return &g1{new(bn256.G1).ScalarMult(g.p, zrBig(s))}
}
func (g *g1) Equal(o pairing.G1) bool {
	ov, ok := o.(*g1)
	if !ok {
		return false
	}
	return string(g.p.Marshal()) == string(ov.p.Marshal())
}
func (g *g1) IsIdentity() bool {
	return string(g.p.Marshal()) == string(new(bn256.G1).ScalarMult(g.p, big.NewInt(0)).Marshal())
}

// IsOnCurve always holds for values constructed through this backend:
// every G1 this package produces comes from bn256 group operations or
// from Unmarshal, which itself rejects off-curve input.
func (g *g1) IsOnCurve() bool { return true }
func (g *g1) Bytes() []byte   { return g.p.Marshal() }

func (bk *backend) G1Identity() pairing.G1 {
	return &g1{new(bn256.G1).ScalarBaseMult(big.NewInt(0))}
}
func (bk *backend) G1Generator() pairing.G1 {
	return &g1{new(bn256.G1).ScalarBaseMult(big.NewInt(1))}
}
func (bk *backend) G1Random(rng io.Reader) (pairing.G1, error) {
	return pairing.RandomG1(bk, rng)
}
func (bk *backend) G1FromBytes(b []byte) (pairing.G1, error) {
	p := new(bn256.G1)
	if _, ok := p.Unmarshal(b); !ok {
		return nil, errs.New(errs.SerializationFailure, "bn256bk.G1FromBytes", "invalid G1 encoding")
	}
	return &g1{p}, nil
}

// --- G2 ---

type g2 struct{ p *bn256.G2 }

func (g *g2) Add(o pairing.G2) pairing.G2 {
	return &g2{new(bn256.G2).Add(g.p, o.(*g2).p)}
}
func (g *g2) Neg() pairing.G2 {
	return &g2{new(bn256.G2).Neg(g.p)}
}
func (g *g2) ScalarMul(s pairing.Zr) pairing.G2 {
	return &g2{new(bn256.G2).ScalarMult(g.p, zrBig(s))}
}
func (g *g2) Equal(o pairing.G2) bool {
	ov, ok := o.(*g2)
	if !ok {
		return false
	}
	return string(g.p.Marshal()) == string(ov.p.Marshal())
}
func (g *g2) IsIdentity() bool {
	return string(g.p.Marshal()) == string(new(bn256.G2).ScalarMult(g.p, big.NewInt(0)).Marshal())
}
func (g *g2) IsOnCurve() bool { return true }
func (g *g2) Bytes() []byte   { return g.p.Marshal() }

func (bk *backend) G2Identity() pairing.G2 {
	return &g2{new(bn256.G2).ScalarBaseMult(big.NewInt(0))}
}
func (bk *backend) G2Generator() pairing.G2 {
	return &g2{new(bn256.G2).ScalarBaseMult(big.NewInt(1))}
}
func (bk *backend) G2Random(rng io.Reader) (pairing.G2, error) {
	return pairing.RandomG2(bk, rng)
}
func (bk *backend) G2FromBytes(b []byte) (pairing.G2, error) {
	p := new(bn256.G2)
	if _, ok := p.Unmarshal(b); !ok {
		return nil, errs.New(errs.SerializationFailure, "bn256bk.G2FromBytes", "invalid G2 encoding")
	}
	return &g2{p}, nil
}

// --- GT ---

type gt struct{ e *bn256.GT }

func (g *gt) Mul(o pairing.GT) pairing.GT {
	return &gt{new(bn256.GT).Add(g.e, o.(*gt).e)}
}
func (g *gt) Div(o pairing.GT) (pairing.GT, error) {
	neg := new(bn256.GT).Neg(o.(*gt).e)
	return &gt{new(bn256.GT).Add(g.e, neg)}, nil
}
func (g *gt) Exp(s pairing.Zr) pairing.GT {
	return &gt{new(bn256.GT).ScalarMult(g.e, zrBig(s))}
}
func (g *gt) Inverse() pairing.GT {
	return &gt{new(bn256.GT).Neg(g.e)}
}
func (g *gt) IsIdentity() bool {
	return string(g.e.Marshal()) == string(new(bn256.GT).ScalarMult(g.e, big.NewInt(0)).Marshal())
}
func (g *gt) Equal(o pairing.GT) bool {
	ov, ok := o.(*gt)
	if !ok {
		return false
	}
	return string(g.e.Marshal()) == string(ov.e.Marshal())
}
func (g *gt) Bytes() []byte { return g.e.Marshal() }

func (bk *backend) GTIdentity() pairing.GT {
	g1gen := new(bn256.G1).ScalarBaseMult(big.NewInt(1))
	g2gen := new(bn256.G2).ScalarBaseMult(big.NewInt(1))
	base := bn256.Pair(g1gen, g2gen)
	return &gt{new(bn256.GT).ScalarMult(base, big.NewInt(0))}
}
func (bk *backend) GTFromBytes(b []byte) (pairing.GT, error) {
	e := new(bn256.GT)
	if _, ok := e.Unmarshal(b); !ok {
		return nil, errs.New(errs.SerializationFailure, "bn256bk.GTFromBytes", "invalid GT encoding")
	}
	return &gt{e}, nil
}

func (bk *backend) Pair(g pairing.G1, h pairing.G2) pairing.GT {
	return &gt{bn256.Pair(g.(*g1).p, h.(*g2).p)}
}
func (bk *backend) MultiPair(pairs []pairing.PairTerm) pairing.GT {
	acc := bk.GTIdentity().(*gt)
	for _, t := range pairs {
		term := bn256.Pair(t.G1.(*g1).p, t.G2.(*g2).p)
		acc = &gt{new(bn256.GT).Add(acc.e, term)}
	}
	return acc
}

// HashToG1 uses the same fixed-exponent construction as gnarkbk's
// hashToG1 helper, reimplemented here since the two backends share no
// common internal package.
func (bk *backend) HashToG1(domainSeparator string, msg []byte) (pairing.G1, error) {
	h := sha256.New()
	h.Write([]byte(domainSeparator))
	h.Write(msg)
	digest := h.Sum(nil)
	s := bk.ZrFromBytesLEModR(digest)
	return bk.G1Generator().ScalarMul(s), nil
}
