// Package lsss implements the Waters linear secret-sharing scheme
// over a policy.Node tree (spec.md §4.5): share generation by random
// polynomials per threshold gate, and reconstruction by Lagrange
// interpolation at x=0 over a satisfying subset of leaves.
package lsss

import (
	"io"

	"github.com/openabe-go/abe-core/errs"
	"github.com/openabe-go/abe-core/pairing"
	"github.com/openabe-go/abe-core/policy"
)

// Share distributes secret s over the policy tree n, returning a map
// from leaf id to that leaf's share. n must already have leaf ids
// assigned via policy.AssignLeafIDs. A leaf whose share evaluates to
// exactly zero is still present in the returned map — spec.md §4.5
// calls this out explicitly because dropping it breaks reconstruction.
func Share(b pairing.Backend, rng io.Reader, n *policy.Node, s pairing.Zr) (map[int]pairing.Zr, error) {
	out := make(map[int]pairing.Zr)
	if err := shareRec(b, rng, n, s, out); err != nil {
		return nil, err
	}
	return out, nil
}

func shareRec(b pairing.Backend, rng io.Reader, n *policy.Node, secret pairing.Zr, out map[int]pairing.Zr) error {
	if n.IsLeaf() {
		out[n.LeafID] = secret
		return nil
	}
	children := policy.SortedChildren(n.Children)
	coeffs := make([]pairing.Zr, n.T)
	coeffs[0] = secret
	for i := 1; i < n.T; i++ {
		c, err := b.ZrRandom(rng)
		if err != nil {
			return err
		}
		coeffs[i] = c
	}
	for idx, child := range children {
		x := b.ZrFromUint64(uint64(idx + 1)) // positions start at 1; x=0 is reserved for the secret
		value := evalPoly(b, coeffs, x)
		if err := shareRec(b, rng, child, value, out); err != nil {
			return err
		}
	}
	return nil
}

func evalPoly(b pairing.Backend, coeffs []pairing.Zr, x pairing.Zr) pairing.Zr {
	result := b.ZrZero()
	xPow := b.ZrOne()
	for _, c := range coeffs {
		result = result.Add(c.Mul(xPow))
		xPow = xPow.Mul(x)
	}
	return result
}

// Coefficients computes reconstruction coefficients ω over policy
// tree n for a satisfying attribute set s: a map from leaf id to ω_i
// such that Σ ω_i · share_i = s for any share vector produced by
// Share with the same tree. Returns (nil, false) if s does not
// satisfy n — spec.md §4.5's "zero satisfying assignments" edge case.
func Coefficients(b pairing.Backend, n *policy.Node, s *policy.AttributeList) (map[int]pairing.Zr, bool, error) {
	out := make(map[int]pairing.Zr)
	ok, err := coefficientsRec(b, n, s, b.ZrOne(), out)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	return out, true, nil
}

func coefficientsRec(b pairing.Backend, n *policy.Node, s *policy.AttributeList, factor pairing.Zr, out map[int]pairing.Zr) (bool, error) {
	if n.IsLeaf() {
		if !s.Has(n.Attribute) {
			return false, nil
		}
		out[n.LeafID] = factor
		return true, nil
	}

	children := policy.SortedChildren(n.Children)
	type satisfiedChild struct {
		node *policy.Node
		x    pairing.Zr
	}
	var satisfied []satisfiedChild
	for idx, child := range children {
		if policy.Satisfies(child, s) {
			x := b.ZrFromUint64(uint64(idx + 1))
			satisfied = append(satisfied, satisfiedChild{child, x})
			if len(satisfied) == n.T {
				break
			}
		}
	}
	if len(satisfied) < n.T {
		return false, nil
	}

	xs := make([]pairing.Zr, len(satisfied))
	for i, sc := range satisfied {
		xs[i] = sc.x
	}
	omegas, err := lagrangeAtZero(b, xs)
	if err != nil {
		return false, err
	}

	for i, sc := range satisfied {
		childFactor := factor.Mul(omegas[i])
		ok, err := coefficientsRec(b, sc.node, s, childFactor, out)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, errs.New(errs.BackendError, "lsss.coefficientsRec", "child reported satisfied but yielded no leaves")
		}
	}
	return true, nil
}

// lagrangeAtZero computes, for each x_i in xs, the Lagrange basis
// coefficient ω_i = Π_{j≠i} (0 - x_j) / (x_i - x_j), i.e. the weight
// that reconstructs the constant term of the unique degree-(len(xs)-1)
// polynomial passing through (x_i, y_i) at x=0.
func lagrangeAtZero(b pairing.Backend, xs []pairing.Zr) ([]pairing.Zr, error) {
	out := make([]pairing.Zr, len(xs))
	zero := b.ZrZero()
	for i, xi := range xs {
		num := b.ZrOne()
		den := b.ZrOne()
		for j, xj := range xs {
			if i == j {
				continue
			}
			num = num.Mul(zero.Sub(xj))
			den = den.Mul(xi.Sub(xj))
		}
		frac, err := num.Div(den)
		if err != nil {
			return nil, errs.Wrap(errs.BackendError, "lsss.lagrangeAtZero", err)
		}
		out[i] = frac
	}
	return out, nil
}
