package binary

import (
	"bytes"
	"errors"
	"testing"
)

func TestReaderPosition(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x01, 0x02, 0x03}))
	if r.Position() != 0 {
		t.Fatalf("initial position: got %d", r.Position())
	}
	if _, err := r.ReadByte(); err != nil {
		t.Fatalf("ReadByte: %v", err)
	}
	if r.Position() != 1 {
		t.Errorf("position after read: got %d", r.Position())
	}
	if _, err := r.ReadBytes(2); err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if r.Position() != 3 {
		t.Errorf("position after ReadBytes: got %d", r.Position())
	}
}

func TestReaderU32(t *testing.T) {
	// 624485 encoded in unsigned LEB128
	r := NewReader(bytes.NewReader([]byte{0xE5, 0x8E, 0x26}))
	v, err := r.ReadU32()
	if err != nil {
		t.Fatalf("ReadU32: %v", err)
	}
	if v != 624485 {
		t.Errorf("got %d, want 624485", v)
	}
}

func TestReaderS32SignExtension(t *testing.T) {
	// -1 encoded as 0x7F
	r := NewReader(bytes.NewReader([]byte{0x7F}))
	v, err := r.ReadS32()
	if err != nil {
		t.Fatalf("ReadS32: %v", err)
	}
	if v != -1 {
		t.Errorf("got %d, want -1", v)
	}
}

func TestReaderOverflow(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80}))
	_, err := r.ReadU32()
	if !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
}

func TestReaderName(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x05, 'h', 'e', 'l', 'l', 'o'}))
	name, err := r.ReadName()
	if err != nil {
		t.Fatalf("ReadName: %v", err)
	}
	if name != "hello" {
		t.Errorf("got %q", name)
	}
}

func TestReaderNameInvalidUTF8(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x02, 0xFF, 0xFE}))
	if _, err := r.ReadName(); err == nil {
		t.Fatal("expected invalid UTF-8 error")
	}
}

func TestReaderRemaining(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x01, 0x02, 0x03, 0x04}))
	if _, err := r.ReadByte(); err != nil {
		t.Fatalf("ReadByte: %v", err)
	}
	rest, err := r.ReadRemaining()
	if err != nil {
		t.Fatalf("ReadRemaining: %v", err)
	}
	if !bytes.Equal(rest, []byte{0x02, 0x03, 0x04}) {
		t.Errorf("got %x", rest)
	}
}

func TestParseErrorFormatting(t *testing.T) {
	r := NewReader(bytes.NewReader(nil))
	err := r.WrapError("type section", errors.New("boom"))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %T", err)
	}
	if pe.Section != "type section" || pe.Position != 0 {
		t.Errorf("unexpected fields: %+v", pe)
	}
}
