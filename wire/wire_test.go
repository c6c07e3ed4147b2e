package wire

import "testing"

func TestFrameRoundTrip(t *testing.T) {
	body := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	framed := EncodeFrame(TagG1, body)
	tag, got, rest, err := DecodeFrame(framed)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if tag != TagG1 {
		t.Fatalf("tag = %x, want %x", tag, TagG1)
	}
	if len(rest) != 0 {
		t.Fatalf("unexpected trailing bytes: %v", rest)
	}
	if string(got) != string(body) {
		t.Fatalf("body round-trip mismatch: got %v want %v", got, body)
	}
}

func TestFrameTruncated(t *testing.T) {
	framed := EncodeFrame(TagZr, []byte{1, 2, 3})
	if _, _, _, err := DecodeFrame(framed[:2]); err == nil {
		t.Fatal("expected error decoding truncated frame")
	}
}

func TestContainerRoundTrip(t *testing.T) {
	c := &Container{SchemeID: SchemeCPWaters}
	c.Set("Cprime", EncodeFrame(TagGT, []byte{0xAA, 0xBB}))
	c.Set("policy", []byte("(a and b)"))
	c.Set("C_1", EncodeFrame(TagG1, []byte{0x01}))

	buf, err := c.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := DecodeContainer(buf)
	if err != nil {
		t.Fatalf("DecodeContainer: %v", err)
	}
	if !c.Equal(got) {
		t.Fatal("round-tripped container not structurally equal to original")
	}
}

func TestContainerEqualDetectsByteDiff(t *testing.T) {
	a := &Container{SchemeID: SchemeCPWaters}
	a.Set("Cprime", []byte{0x01})
	b := &Container{SchemeID: SchemeCPWaters}
	b.Set("Cprime", []byte{0x02})
	if a.Equal(b) {
		t.Fatal("containers with differing bytes compared equal")
	}
}

func TestContainerEqualDetectsMissingLabel(t *testing.T) {
	a := &Container{SchemeID: SchemeCPWaters}
	a.Set("Cprime", []byte{0x01})
	a.Set("policy", []byte("x"))
	b := &Container{SchemeID: SchemeCPWaters}
	b.Set("Cprime", []byte{0x01})
	if a.Equal(b) {
		t.Fatal("containers with differing label sets compared equal")
	}
}

func TestDecodeContainerRejectsTrailingBytes(t *testing.T) {
	c := &Container{SchemeID: SchemeCPWaters}
	c.Set("C_1", []byte{0x01})
	buf, err := c.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := DecodeContainer(append(buf, 0xFF)); err == nil {
		t.Fatal("expected error decoding buffer with trailing bytes")
	}
}
