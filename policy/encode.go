package policy

import (
	"encoding/binary"

	"github.com/openabe-go/abe-core/errs"
)

// Encode serializes a tree to a compact binary form: a leaf is
// 0x00 | uvarint(len(attr)) | attr; a threshold gate is
// 0x01 | uvarint(t) | uvarint(len(children)) | children... . LeafID is
// not carried — Decode's caller is expected to call AssignLeafIDs,
// which reproduces the same ids from tree shape alone.
func Encode(n *Node) []byte {
	var out []byte
	buf := make([]byte, binary.MaxVarintLen64)
	if n.IsLeaf() {
		out = append(out, 0x00)
		m := binary.PutUvarint(buf, uint64(len(n.Attribute)))
		out = append(out, buf[:m]...)
		out = append(out, n.Attribute...)
		return out
	}
	out = append(out, 0x01)
	m := binary.PutUvarint(buf, uint64(n.T))
	out = append(out, buf[:m]...)
	m = binary.PutUvarint(buf, uint64(len(n.Children)))
	out = append(out, buf[:m]...)
	for _, c := range n.Children {
		out = append(out, Encode(c)...)
	}
	return out
}

// Decode reverses Encode, returning the tree and the unconsumed
// remainder of buf.
func Decode(buf []byte) (*Node, []byte, error) {
	if len(buf) < 1 {
		return nil, nil, errs.New(errs.SerializationFailure, "policy.Decode", "empty buffer")
	}
	kind := buf[0]
	rest := buf[1:]
	switch kind {
	case 0x00:
		l, n := binary.Uvarint(rest)
		if n <= 0 {
			return nil, nil, errs.New(errs.SerializationFailure, "policy.Decode", "invalid leaf length varint")
		}
		rest = rest[n:]
		if uint64(len(rest)) < l {
			return nil, nil, errs.New(errs.SerializationFailure, "policy.Decode", "truncated leaf attribute")
		}
		attr := string(rest[:l])
		return Leaf(attr), rest[l:], nil
	case 0x01:
		t, n := binary.Uvarint(rest)
		if n <= 0 {
			return nil, nil, errs.New(errs.SerializationFailure, "policy.Decode", "invalid threshold varint")
		}
		rest = rest[n:]
		count, n := binary.Uvarint(rest)
		if n <= 0 {
			return nil, nil, errs.New(errs.SerializationFailure, "policy.Decode", "invalid child count varint")
		}
		rest = rest[n:]
		children := make([]*Node, 0, count)
		for i := uint64(0); i < count; i++ {
			var child *Node
			var err error
			child, rest, err = Decode(rest)
			if err != nil {
				return nil, nil, err
			}
			children = append(children, child)
		}
		return Threshold(int(t), children...), rest, nil
	default:
		return nil, nil, errs.New(errs.SerializationFailure, "policy.Decode", "unknown node kind byte")
	}
}
