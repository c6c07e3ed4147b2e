// Package cpwaters implements the Waters ciphertext-policy KEM of
// spec.md §4.6: an IND-CPA key-encapsulation mechanism over the
// pairing.Backend capability set and the lsss package's tree-based
// secret sharing. The CCA transform lives one layer up, in cca.
package cpwaters

import (
	"io"
	"strconv"

	"github.com/openabe-go/abe-core/errs"
	"github.com/openabe-go/abe-core/lsss"
	"github.com/openabe-go/abe-core/pairing"
	"github.com/openabe-go/abe-core/policy"
	"github.com/openabe-go/abe-core/wire"
)

const hashDomain = "abe-core/cpwaters/H1"

// MPK is the CP-Waters master public key, spec.md §3.5/§6.2.
type MPK struct {
	Curve     pairing.CurveID
	G         pairing.G1
	GA        pairing.G1
	G2        pairing.G2
	EGG2Alpha pairing.GT
}

// MSK is the CP-Waters master secret key.
type MSK struct {
	Alpha pairing.Zr
	A     pairing.Zr
}

// SK is a CP-Waters user secret key, bound to an attribute set.
type SK struct {
	Attributes *policy.AttributeList
	K          pairing.G2
	L          pairing.G2
	Kx         map[string]pairing.G1
}

// Setup runs spec.md §4.6's Setup: pick α, a ← Zr, g ← G1, g2 ← G2,
// MPK = (g, g^a, g2, e(g,g2)^α), MSK = (α, a).
func Setup(b pairing.Backend, rng io.Reader) (*MPK, *MSK, error) {
	alpha, err := b.ZrRandom(rng)
	if err != nil {
		return nil, nil, err
	}
	a, err := b.ZrRandom(rng)
	if err != nil {
		return nil, nil, err
	}
	g, err := b.G1Random(rng)
	if err != nil {
		return nil, nil, err
	}
	g2, err := b.G2Random(rng)
	if err != nil {
		return nil, nil, err
	}
	gA := g.ScalarMul(a)
	egg2 := b.Pair(g, g2)
	egg2Alpha := egg2.Exp(alpha)

	return &MPK{
			Curve:     b.Curve().ID,
			G:         g,
			GA:        gA,
			G2:        g2,
			EGG2Alpha: egg2Alpha,
		}, &MSK{
			Alpha: alpha,
			A:     a,
		}, nil
}

// KeyGen runs spec.md §4.6's KeyGen for attribute set attrs: pick
// t ← Zr, K = g2^α · g2^(a·t), L = g2^t, and K_x = H1_to_G1(x)^t for
// each x in attrs. L lives in G2 so Decap can pair it against the
// ciphertext's G1 components.
func KeyGen(b pairing.Backend, rng io.Reader, mpk *MPK, msk *MSK, attrs *policy.AttributeList) (*SK, error) {
	t, err := b.ZrRandom(rng)
	if err != nil {
		return nil, err
	}
	k := mpk.G2.ScalarMul(msk.Alpha).Add(mpk.G2.ScalarMul(msk.A.Mul(t)))
	l := mpk.G2.ScalarMul(t)

	kx := make(map[string]pairing.G1, attrs.Len())
	for _, x := range attrs.Attributes() {
		hx, err := b.HashToG1(hashDomain, []byte(x))
		if err != nil {
			return nil, err
		}
		kx[x] = hx.ScalarMul(t)
	}

	return &SK{Attributes: attrs, K: k, L: l, Kx: kx}, nil
}

// Encap runs spec.md §4.6's Encap under access policy tree over MPK,
// returning a wire container and the encapsulated session key Kgt.
// tree must already have leaf ids assigned via policy.AssignLeafIDs.
func Encap(b pairing.Backend, rng io.Reader, mpk *MPK, tree *policy.Node) (*wire.Container, pairing.GT, error) {
	s, err := b.ZrRandom(rng)
	if err != nil {
		return nil, nil, err
	}
	kgt := mpk.EGG2Alpha.Exp(s)

	shares, err := lsss.Share(b, rng, tree, s)
	if err != nil {
		return nil, nil, err
	}

	leaves := collectLeaves(tree)
	c := &wire.Container{SchemeID: wire.SchemeCPWaters}
	c.Set("policy", []byte(policy.Canonical(tree)))
	c.Set("Cprime", wire.EncodeG1(mpk.G.ScalarMul(s)))

	for _, leaf := range leaves {
		lambda := shares[leaf.LeafID]
		r, err := b.ZrRandom(rng)
		if err != nil {
			return nil, nil, err
		}
		hx, err := b.HashToG1(hashDomain, []byte(leaf.Attribute))
		if err != nil {
			return nil, nil, err
		}
		ci := mpk.GA.ScalarMul(lambda).Add(hx.ScalarMul(r.Neg()))
		di := mpk.G2.ScalarMul(r)

		label := leafLabel(leaf.LeafID)
		c.Set("C_"+label, wire.EncodeG1(ci))
		c.Set("D_"+label, wire.EncodeG2(di))
	}

	return c, kgt, nil
}

// Decap runs spec.md §4.6's Decap: check that sk's attribute set
// satisfies tree, reconstruct the LSSS coefficients, and recompute Kgt
// as a pairing product. The policy is taken from the tree argument;
// ct's own policy entry is not read. Returns errs.PolicyUnsatisfied if
// the attribute set does not satisfy tree.
func Decap(b pairing.Backend, mpk *MPK, sk *SK, ct *wire.Container, tree *policy.Node) (pairing.GT, error) {
	coeffs, ok, err := lsss.Coefficients(b, tree, sk.Attributes)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.New(errs.PolicyUnsatisfied, "cpwaters.Decap", "attribute set does not satisfy policy")
	}

	cprimeBytes, found := ct.Get("Cprime")
	if !found {
		return nil, errs.New(errs.SerializationFailure, "cpwaters.Decap", "missing Cprime entry")
	}
	cprime, _, err := wire.DecodeG1(b, cprimeBytes)
	if err != nil {
		return nil, err
	}

	numerator := b.Pair(cprime, sk.K)
	denominator := b.GTIdentity()

	leaves := collectLeaves(tree)
	for _, leaf := range leaves {
		omega, needed := coeffs[leaf.LeafID]
		if !needed {
			continue
		}
		label := leafLabel(leaf.LeafID)
		ciBytes, found := ct.Get("C_" + label)
		if !found {
			return nil, errs.New(errs.SerializationFailure, "cpwaters.Decap", "missing C_"+label+" entry")
		}
		diBytes, found := ct.Get("D_" + label)
		if !found {
			return nil, errs.New(errs.SerializationFailure, "cpwaters.Decap", "missing D_"+label+" entry")
		}
		ci, _, err := wire.DecodeG1(b, ciBytes)
		if err != nil {
			return nil, err
		}
		di, _, err := wire.DecodeG2(b, diBytes)
		if err != nil {
			return nil, err
		}
		kx, present := sk.Kx[leaf.Attribute]
		if !present {
			return nil, errs.New(errs.InvalidKey, "cpwaters.Decap", "secret key missing component for attribute "+leaf.Attribute)
		}

		term := b.Pair(ci, sk.L).Mul(b.Pair(kx, di))
		term = term.Exp(omega)
		denominator = denominator.Mul(term)
	}

	kgt, err := numerator.Div(denominator)
	if err != nil {
		return nil, errs.Wrap(errs.BackendError, "cpwaters.Decap", err)
	}
	return kgt, nil
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

func leafLabel(id int) string {
	return strconv.Itoa(id)
}
