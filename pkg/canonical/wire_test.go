package canonical

import "testing"

func TestProtoWriterVarintFieldOmitsZero(t *testing.T) {
	w := &protoWriter{}
	w.VarintField(1, 0)
	if len(w.Bytes()) != 0 {
		t.Fatalf("expected zero-value varint field to be omitted, got %v", w.Bytes())
	}
}

func TestProtoWriterVarintFieldEncodesTagAndValue(t *testing.T) {
	w := &protoWriter{}
	w.VarintField(1, 2) // field 1, wire type 0 -> tag byte (1<<3)|0 = 0x08
	want := []byte{0x08, 0x02}
	if string(w.Bytes()) != string(want) {
		t.Fatalf("got %v, want %v", w.Bytes(), want)
	}
}

func TestProtoWriterSFixed64FieldAlwaysWrites(t *testing.T) {
	w := &protoWriter{}
	w.SFixed64Field(2, 0) // field 2, wire type 1 -> tag byte (2<<3)|1 = 0x11
	if len(w.Bytes()) != 9 {
		t.Fatalf("expected a 1-byte tag + 8-byte fixed64, got %d bytes", len(w.Bytes()))
	}
	if w.Bytes()[0] != 0x11 {
		t.Fatalf("expected tag 0x11, got 0x%02x", w.Bytes()[0])
	}
}

func TestProtoWriterBytesFieldOmitsEmpty(t *testing.T) {
	w := &protoWriter{}
	w.BytesField(3, nil)
	if len(w.Bytes()) != 0 {
		t.Fatalf("expected empty bytes field to be omitted, got %v", w.Bytes())
	}
}

func TestProtoWriterEmbeddedFieldRespectsPresent(t *testing.T) {
	w := &protoWriter{}
	w.EmbeddedField(4, []byte{0x01}, false)
	if len(w.Bytes()) != 0 {
		t.Fatalf("expected absent embedded field to be omitted, got %v", w.Bytes())
	}

	w2 := &protoWriter{}
	w2.EmbeddedField(4, []byte{0x01}, true)
	if len(w2.Bytes()) == 0 {
		t.Fatal("expected present embedded field to be written")
	}
}

func TestVarintMultiByteEncoding(t *testing.T) {
	w := &protoWriter{}
	w.varint(300) // requires 2 bytes: 0xAC 0x02
	want := []byte{0xAC, 0x02}
	if string(w.Bytes()) != string(want) {
		t.Fatalf("got %v, want %v", w.Bytes(), want)
	}
}
