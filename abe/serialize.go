package abe

import (
	"sort"
	"strconv"
	"strings"

	"github.com/openabe-go/abe-core/cpwaters"
	"github.com/openabe-go/abe-core/errs"
	"github.com/openabe-go/abe-core/kpgpsw"
	"github.com/openabe-go/abe-core/pairing"
	"github.com/openabe-go/abe-core/policy"
	"github.com/openabe-go/abe-core/wire"
)

// Key material (MPK/MSK/SK) is not ciphertext, so spec.md §4.2 does
// not pin its wire format. It is encoded here with the same
// wire.Container/EncodeG1/EncodeG2/EncodeGT/EncodeZr primitives the
// ciphertext path uses, so a keystore blob and a ciphertext blob are
// read by the same tools. This is purely for cmd/abectl's benefit —
// the facade's cryptographic operations never call these functions.

func joinAttrs(attrs []string) string { return strings.Join(attrs, "\n") }

func splitAttrs(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func backendFor(curve pairing.CurveID) (pairing.Backend, error) {
	return pairing.NewBackend(curve, pairing.Reference)
}

// EncodeMPK serializes a master public key to bytes.
func EncodeMPK(mpk *MPK) ([]byte, error) {
	cfg := mpk.Config.normalize()
	switch cfg.Scheme {
	case CPWaters:
		if mpk.CPWaters == nil {
			return nil, errs.New(errs.InvalidKey, "abe.EncodeMPK", "mpk not configured for CP_WATERS")
		}
		m := mpk.CPWaters
		c := &wire.Container{SchemeID: wire.SchemeCPWaters}
		c.Set("curve", []byte(cfg.Curve))
		c.Set("G", wire.EncodeG1(m.G))
		c.Set("GA", wire.EncodeG1(m.GA))
		c.Set("G2", wire.EncodeG2(m.G2))
		c.Set("EGG2Alpha", wire.EncodeGT(m.EGG2Alpha))
		return c.Encode()
	case KPGPSW:
		if mpk.KPGPSW == nil {
			return nil, errs.New(errs.InvalidKey, "abe.EncodeMPK", "mpk not configured for KP_GPSW")
		}
		m := mpk.KPGPSW
		c := &wire.Container{SchemeID: wire.SchemeKPGPSW}
		c.Set("curve", []byte(cfg.Curve))
		c.Set("G", wire.EncodeG1(m.G))
		c.Set("G2", wire.EncodeG2(m.G2))
		c.Set("Y", wire.EncodeGT(m.Y))
		universe := make([]string, 0, len(m.T))
		for attr := range m.T {
			universe = append(universe, attr)
		}
		sort.Strings(universe)
		c.Set("universe", []byte(joinAttrs(universe)))
		for _, attr := range universe {
			c.Set("T_"+attr, wire.EncodeG2(m.T[attr]))
		}
		return c.Encode()
	default:
		return nil, errs.New(errs.InvalidParameter, "abe.EncodeMPK", "unknown scheme: "+string(cfg.Scheme))
	}
}

// DecodeMPK reverses EncodeMPK.
func DecodeMPK(buf []byte) (*MPK, error) {
	c, err := wire.DecodeContainer(buf)
	if err != nil {
		return nil, err
	}
	curveBytes, ok := c.Get("curve")
	if !ok {
		return nil, errs.New(errs.SerializationFailure, "abe.DecodeMPK", "missing curve entry")
	}
	curve := pairing.CurveID(curveBytes)
	b, err := backendFor(curve)
	if err != nil {
		return nil, err
	}

	switch c.SchemeID {
	case wire.SchemeCPWaters:
		g, _, err := getG1(b, c, "G")
		if err != nil {
			return nil, err
		}
		ga, _, err := getG1(b, c, "GA")
		if err != nil {
			return nil, err
		}
		g2, _, err := getG2(b, c, "G2")
		if err != nil {
			return nil, err
		}
		eggAlpha, _, err := getGT(b, c, "EGG2Alpha")
		if err != nil {
			return nil, err
		}
		cfg := Config{Curve: curve, Scheme: CPWaters}
		return &MPK{Config: cfg, CPWaters: &cpwaters.MPK{Curve: curve, G: g, GA: ga, G2: g2, EGG2Alpha: eggAlpha}}, nil
	case wire.SchemeKPGPSW:
		g, _, err := getG1(b, c, "G")
		if err != nil {
			return nil, err
		}
		g2, _, err := getG2(b, c, "G2")
		if err != nil {
			return nil, err
		}
		y, _, err := getGT(b, c, "Y")
		if err != nil {
			return nil, err
		}
		universeBytes, _ := c.Get("universe")
		universe := splitAttrs(string(universeBytes))
		t := make(map[string]pairing.G2, len(universe))
		for _, attr := range universe {
			tx, _, err := getG2(b, c, "T_"+attr)
			if err != nil {
				return nil, err
			}
			t[attr] = tx
		}
		cfg := Config{Curve: curve, Scheme: KPGPSW}
		return &MPK{Config: cfg, KPGPSW: &kpgpsw.MPK{Curve: curve, G: g, G2: g2, Y: y, T: t}}, nil
	default:
		return nil, errs.New(errs.SerializationFailure, "abe.DecodeMPK", "unknown container scheme id")
	}
}

// EncodeMSK serializes a master secret key to bytes.
func EncodeMSK(msk *MSK) ([]byte, error) {
	cfg := msk.Config.normalize()
	switch cfg.Scheme {
	case CPWaters:
		if msk.CPWaters == nil {
			return nil, errs.New(errs.InvalidKey, "abe.EncodeMSK", "msk not configured for CP_WATERS")
		}
		m := msk.CPWaters
		c := &wire.Container{SchemeID: wire.SchemeCPWaters}
		c.Set("curve", []byte(cfg.Curve))
		c.Set("Alpha", wire.EncodeZr(m.Alpha))
		c.Set("A", wire.EncodeZr(m.A))
		return c.Encode()
	case KPGPSW:
		if msk.KPGPSW == nil {
			return nil, errs.New(errs.InvalidKey, "abe.EncodeMSK", "msk not configured for KP_GPSW")
		}
		m := msk.KPGPSW
		c := &wire.Container{SchemeID: wire.SchemeKPGPSW}
		c.Set("curve", []byte(cfg.Curve))
		c.Set("Y", wire.EncodeZr(m.Y))
		universe := make([]string, 0, len(m.Tx))
		for attr := range m.Tx {
			universe = append(universe, attr)
		}
		sort.Strings(universe)
		c.Set("universe", []byte(joinAttrs(universe)))
		for _, attr := range universe {
			c.Set("Tx_"+attr, wire.EncodeZr(m.Tx[attr]))
		}
		return c.Encode()
	default:
		return nil, errs.New(errs.InvalidParameter, "abe.EncodeMSK", "unknown scheme: "+string(cfg.Scheme))
	}
}

// DecodeMSK reverses EncodeMSK. The curve is taken from the
// container's own curve entry; MSK carries no group elements, so it is
// not cross-checked against any MPK.
func DecodeMSK(buf []byte) (*MSK, error) {
	c, err := wire.DecodeContainer(buf)
	if err != nil {
		return nil, err
	}
	curveBytes, ok := c.Get("curve")
	if !ok {
		return nil, errs.New(errs.SerializationFailure, "abe.DecodeMSK", "missing curve entry")
	}
	curve := pairing.CurveID(curveBytes)
	b, err := backendFor(curve)
	if err != nil {
		return nil, err
	}

	switch c.SchemeID {
	case wire.SchemeCPWaters:
		alpha, _, err := getZr(b, c, "Alpha")
		if err != nil {
			return nil, err
		}
		a, _, err := getZr(b, c, "A")
		if err != nil {
			return nil, err
		}
		cfg := Config{Curve: curve, Scheme: CPWaters}
		return &MSK{Config: cfg, CPWaters: &cpwaters.MSK{Alpha: alpha, A: a}}, nil
	case wire.SchemeKPGPSW:
		y, _, err := getZr(b, c, "Y")
		if err != nil {
			return nil, err
		}
		universeBytes, _ := c.Get("universe")
		universe := splitAttrs(string(universeBytes))
		tx := make(map[string]pairing.Zr, len(universe))
		for _, attr := range universe {
			txi, _, err := getZr(b, c, "Tx_"+attr)
			if err != nil {
				return nil, err
			}
			tx[attr] = txi
		}
		cfg := Config{Curve: curve, Scheme: KPGPSW}
		return &MSK{Config: cfg, KPGPSW: &kpgpsw.MSK{Y: y, Tx: tx}}, nil
	default:
		return nil, errs.New(errs.SerializationFailure, "abe.DecodeMSK", "unknown container scheme id")
	}
}

// EncodeSK serializes a user secret key to bytes.
func EncodeSK(sk *SK) ([]byte, error) {
	cfg := sk.Config.normalize()
	switch cfg.Scheme {
	case CPWaters:
		if sk.CPWaters == nil {
			return nil, errs.New(errs.InvalidKey, "abe.EncodeSK", "sk not configured for CP_WATERS")
		}
		s := sk.CPWaters
		c := &wire.Container{SchemeID: wire.SchemeCPWaters}
		c.Set("curve", []byte(cfg.Curve))
		c.Set("attrs", []byte(joinAttrs(s.Attributes.Attributes())))
		c.Set("K", wire.EncodeG2(s.K))
		c.Set("L", wire.EncodeG2(s.L))
		for _, attr := range s.Attributes.Attributes() {
			c.Set("Kx_"+attr, wire.EncodeG1(s.Kx[attr]))
		}
		return c.Encode()
	case KPGPSW:
		if sk.KPGPSW == nil {
			return nil, errs.New(errs.InvalidKey, "abe.EncodeSK", "sk not configured for KP_GPSW")
		}
		s := sk.KPGPSW
		c := &wire.Container{SchemeID: wire.SchemeKPGPSW}
		c.Set("curve", []byte(cfg.Curve))
		c.Set("tree", policy.Encode(s.Tree))
		leaves := collectLeafIDs(s.Tree)
		for _, id := range leaves {
			c.Set("D_"+strconv.Itoa(id), wire.EncodeG1(s.D[id]))
		}
		return c.Encode()
	default:
		return nil, errs.New(errs.InvalidParameter, "abe.EncodeSK", "unknown scheme: "+string(cfg.Scheme))
	}
}

// DecodeSK reverses EncodeSK.
func DecodeSK(buf []byte) (*SK, error) {
	c, err := wire.DecodeContainer(buf)
	if err != nil {
		return nil, err
	}
	curveBytes, ok := c.Get("curve")
	if !ok {
		return nil, errs.New(errs.SerializationFailure, "abe.DecodeSK", "missing curve entry")
	}
	curve := pairing.CurveID(curveBytes)
	b, err := backendFor(curve)
	if err != nil {
		return nil, err
	}

	switch c.SchemeID {
	case wire.SchemeCPWaters:
		attrsBytes, _ := c.Get("attrs")
		attrs, err := policy.NewAttributeList(splitAttrs(string(attrsBytes))...)
		if err != nil {
			return nil, err
		}
		k, _, err := getG2(b, c, "K")
		if err != nil {
			return nil, err
		}
		l, _, err := getG2(b, c, "L")
		if err != nil {
			return nil, err
		}
		kx := make(map[string]pairing.G1, attrs.Len())
		for _, attr := range attrs.Attributes() {
			kxi, _, err := getG1(b, c, "Kx_"+attr)
			if err != nil {
				return nil, err
			}
			kx[attr] = kxi
		}
		cfg := Config{Curve: curve, Scheme: CPWaters}
		return &SK{Config: cfg, CPWaters: &cpwaters.SK{Attributes: attrs, K: k, L: l, Kx: kx}}, nil
	case wire.SchemeKPGPSW:
		treeBytes, _ := c.Get("tree")
		tree, rest, err := policy.Decode(treeBytes)
		if err != nil {
			return nil, err
		}
		if len(rest) != 0 {
			return nil, errs.New(errs.SerializationFailure, "abe.DecodeSK", "trailing bytes after tree")
		}
		policy.AssignLeafIDs(tree)
		d := make(map[int]pairing.G1)
		for _, id := range collectLeafIDs(tree) {
			di, _, err := getG1(b, c, "D_"+strconv.Itoa(id))
			if err != nil {
				return nil, err
			}
			d[id] = di
		}
		cfg := Config{Curve: curve, Scheme: KPGPSW}
		return &SK{Config: cfg, KPGPSW: &kpgpsw.SK{Tree: tree, D: d}}, nil
	default:
		return nil, errs.New(errs.SerializationFailure, "abe.DecodeSK", "unknown container scheme id")
	}
}

func getZr(b pairing.Backend, c *wire.Container, label string) (pairing.Zr, []byte, error) {
	raw, ok := c.Get(label)
	if !ok {
		return nil, nil, errs.New(errs.SerializationFailure, "abe", "missing "+label+" entry")
	}
	return wire.DecodeZr(b, raw)
}

func getG1(b pairing.Backend, c *wire.Container, label string) (pairing.G1, []byte, error) {
	raw, ok := c.Get(label)
	if !ok {
		return nil, nil, errs.New(errs.SerializationFailure, "abe", "missing "+label+" entry")
	}
	return wire.DecodeG1(b, raw)
}

func getG2(b pairing.Backend, c *wire.Container, label string) (pairing.G2, []byte, error) {
	raw, ok := c.Get(label)
	if !ok {
		return nil, nil, errs.New(errs.SerializationFailure, "abe", "missing "+label+" entry")
	}
	return wire.DecodeG2(b, raw)
}

func getGT(b pairing.Backend, c *wire.Container, label string) (pairing.GT, []byte, error) {
	raw, ok := c.Get(label)
	if !ok {
		return nil, nil, errs.New(errs.SerializationFailure, "abe", "missing "+label+" entry")
	}
	return wire.DecodeGT(b, raw)
}

func collectLeafIDs(n *policy.Node) []int {
	var ids []int
	var walk func(*policy.Node)
	walk = func(m *policy.Node) {
		if m.IsLeaf() {
			ids = append(ids, m.LeafID)
			return
		}
		for _, c := range m.Children {
			walk(c)
		}
	}
	walk(n)
	return ids
}
