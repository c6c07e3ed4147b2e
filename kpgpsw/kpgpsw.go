// Package kpgpsw implements the Goyal-Pandey-Sahai-Waters key-policy
// KEM of spec.md §4.7: the dual of cpwaters — the access policy lives
// in the user key, the ciphertext carries a plain attribute set. It
// follows the small-universe GPSW construction (grounded on
// fentec-project/gofe's abe-gpsw.go, generalized from its integer
// attribute universe to arbitrary attribute strings and from its flat
// MSP matrix to the lsss package's policy tree).
package kpgpsw

import (
	"io"
	"strconv"
	"strings"

	"github.com/openabe-go/abe-core/errs"
	"github.com/openabe-go/abe-core/lsss"
	"github.com/openabe-go/abe-core/pairing"
	"github.com/openabe-go/abe-core/policy"
	"github.com/openabe-go/abe-core/wire"
)

// MPK is the KP-GPSW master public key: one G2 element T_x per
// attribute in the declared universe, plus Y = e(g,g2)^y.
type MPK struct {
	Curve pairing.CurveID
	G     pairing.G1
	G2    pairing.G2
	Y     pairing.GT
	T     map[string]pairing.G2
}

// MSK is the KP-GPSW master secret key: the secret exponent y and,
// per attribute in the universe, the discrete log t_x of T_x.
type MSK struct {
	Y  pairing.Zr
	Tx map[string]pairing.Zr
}

// SK is a KP-GPSW user secret key, bound to a policy tree. D maps
// each leaf id to its key share g^(λ_i / t_{x_i}).
type SK struct {
	Tree *policy.Node
	D    map[int]pairing.G1
}

// Setup runs KP-GPSW setup over a declared attribute universe: pick
// y ← Zr and, for each attribute x in universe, t_x ← Zr with
// T_x = g2^{t_x}.
func Setup(b pairing.Backend, rng io.Reader, universe []string) (*MPK, *MSK, error) {
	g, err := b.G1Random(rng)
	if err != nil {
		return nil, nil, err
	}
	g2, err := b.G2Random(rng)
	if err != nil {
		return nil, nil, err
	}
	y, err := b.ZrRandom(rng)
	if err != nil {
		return nil, nil, err
	}
	egg2 := b.Pair(g, g2)
	yGT := egg2.Exp(y)

	t := make(map[string]pairing.G2, len(universe))
	tx := make(map[string]pairing.Zr, len(universe))
	for _, x := range universe {
		txi, err := b.ZrRandom(rng)
		if err != nil {
			return nil, nil, err
		}
		tx[x] = txi
		t[x] = g2.ScalarMul(txi)
	}

	return &MPK{Curve: b.Curve().ID, G: g, G2: g2, Y: yGT, T: t},
		&MSK{Y: y, Tx: tx}, nil
}

// KeyGen runs KP-GPSW key generation for policy tree: share y across
// tree via the lsss engine, then for each leaf with attribute x_i set
// D_i = g^(λ_i · t_{x_i}^{-1}). tree must already have leaf ids
// assigned via policy.AssignLeafIDs, and every leaf attribute must be
// present in the universe Setup was called with.
func KeyGen(b pairing.Backend, rng io.Reader, mpk *MPK, msk *MSK, tree *policy.Node) (*SK, error) {
	shares, err := lsss.Share(b, rng, tree, msk.Y)
	if err != nil {
		return nil, err
	}

	d := make(map[int]pairing.G1)
	for _, leaf := range collectLeaves(tree) {
		txi, ok := msk.Tx[leaf.Attribute]
		if !ok {
			return nil, errs.New(errs.InvalidParameter, "kpgpsw.KeyGen", "attribute not in universe: "+leaf.Attribute)
		}
		inv, err := txi.Inv()
		if err != nil {
			return nil, errs.Wrap(errs.BackendError, "kpgpsw.KeyGen", err)
		}
		lambda := shares[leaf.LeafID]
		d[leaf.LeafID] = mpk.G.ScalarMul(lambda.Mul(inv))
	}

	return &SK{Tree: tree, D: d}, nil
}

// Encap runs KP-GPSW encapsulation over attribute set attrs: pick
// s ← Zr, Kgt = Y^s, and for each x in attrs, E_x = T_x^s.
func Encap(b pairing.Backend, rng io.Reader, mpk *MPK, attrs *policy.AttributeList) (*wire.Container, pairing.GT, error) {
	s, err := b.ZrRandom(rng)
	if err != nil {
		return nil, nil, err
	}
	kgt := mpk.Y.Exp(s)

	c := &wire.Container{SchemeID: wire.SchemeKPGPSW}
	c.Set("attrs", []byte(strings.Join(attrs.Attributes(), "\n")))
	for idx, x := range attrs.Attributes() {
		tx, ok := mpk.T[x]
		if !ok {
			return nil, nil, errs.New(errs.InvalidParameter, "kpgpsw.Encap", "attribute not in universe: "+x)
		}
		ex := tx.ScalarMul(s)
		c.Set("E_"+strconv.Itoa(idx), wire.EncodeG2(ex))
	}

	return c, kgt, nil
}

// Decap runs KP-GPSW decapsulation: parse the attribute set embedded
// in ct, check it satisfies sk's policy, reconstruct LSSS
// coefficients, and recompute Kgt = Π_i e(D_i, E_{x_i})^{ω_i}.
func Decap(b pairing.Backend, sk *SK, ct *wire.Container) (pairing.GT, error) {
	attrsRaw, found := ct.Get("attrs")
	if !found {
		return nil, errs.New(errs.SerializationFailure, "kpgpsw.Decap", "missing attrs entry")
	}
	var names []string
	if len(attrsRaw) > 0 {
		names = strings.Split(string(attrsRaw), "\n")
	}
	attrs, err := policy.NewAttributeList(names...)
	if err != nil {
		return nil, err
	}

	coeffs, ok, err := lsss.Coefficients(b, sk.Tree, attrs)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.New(errs.PolicyUnsatisfied, "kpgpsw.Decap", "attribute set does not satisfy policy")
	}

	attrIndex := make(map[string]int, len(names))
	for idx, x := range attrs.Attributes() {
		attrIndex[x] = idx
	}

	result := b.GTIdentity()
	for _, leaf := range collectLeaves(sk.Tree) {
		omega, needed := coeffs[leaf.LeafID]
		if !needed {
			continue
		}
		idx, present := attrIndex[leaf.Attribute]
		if !present {
			return nil, errs.New(errs.PolicyUnsatisfied, "kpgpsw.Decap", "ciphertext missing attribute "+leaf.Attribute)
		}
		exBytes, found := ct.Get("E_" + strconv.Itoa(idx))
		if !found {
			return nil, errs.New(errs.SerializationFailure, "kpgpsw.Decap", "missing E_"+strconv.Itoa(idx)+" entry")
		}
		ex, _, err := wire.DecodeG2(b, exBytes)
		if err != nil {
			return nil, err
		}
		di, present := sk.D[leaf.LeafID]
		if !present {
			return nil, errs.New(errs.InvalidKey, "kpgpsw.Decap", "secret key missing share for leaf")
		}
		term := b.Pair(di, ex).Exp(omega)
		result = result.Mul(term)
	}

	return result, nil
}

func collectLeaves(n *policy.Node) []*policy.Node {
	if n.IsLeaf() {
		return []*policy.Node{n}
	}
	var out []*policy.Node
	for _, c := range policy.SortedChildren(n.Children) {
		out = append(out, collectLeaves(c)...)
	}
	return out
}
