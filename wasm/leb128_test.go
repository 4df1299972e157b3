package wasm

import (
	"bytes"
	"testing"
)

func TestLEB128uRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 127, 128, 300, 16384, 0xFFFFFFFF}
	for _, v := range values {
		var buf bytes.Buffer
		WriteLEB128u(&buf, v)
		got, err := ReadLEB128u(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("ReadLEB128u(%d): %v", v, err)
		}
		if got != v {
			t.Errorf("round trip %d: got %d", v, got)
		}
	}
}

func TestLEB128sRoundTrip(t *testing.T) {
	values := []int32{0, 1, -1, 63, 64, -64, -65, 127, 128, -12345, 2147483647, -2147483648}
	for _, v := range values {
		var buf bytes.Buffer
		WriteLEB128s(&buf, v)
		got, err := ReadLEB128s(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("ReadLEB128s(%d): %v", v, err)
		}
		if got != v {
			t.Errorf("round trip %d: got %d", v, got)
		}
	}
}

func TestLEB128s64RoundTrip(t *testing.T) {
	values := []int64{0, -1, 9223372036854775807, -9223372036854775808, 1 << 40}
	for _, v := range values {
		var buf bytes.Buffer
		WriteLEB128s64(&buf, v)
		got, err := ReadLEB128s64(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("ReadLEB128s64(%d): %v", v, err)
		}
		if got != v {
			t.Errorf("round trip %d: got %d", v, got)
		}
	}
}

func TestLEB128uKnownEncodings(t *testing.T) {
	var buf bytes.Buffer
	WriteLEB128u(&buf, 624485)
	want := []byte{0xE5, 0x8E, 0x26}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("encoding of 624485: got %x, want %x", buf.Bytes(), want)
	}
}

func TestLEB128uOverflow(t *testing.T) {
	data := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80}
	if _, err := ReadLEB128u(bytes.NewReader(data)); err == nil {
		t.Fatal("expected overflow error")
	}
}

func TestFloatRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	WriteFloat32(&buf, 3.14)
	WriteFloat64(&buf, -2.718281828)

	r := bytes.NewReader(buf.Bytes())
	f32, err := ReadFloat32(r)
	if err != nil {
		t.Fatalf("ReadFloat32: %v", err)
	}
	if f32 != 3.14 {
		t.Errorf("float32: got %v", f32)
	}
	f64, err := ReadFloat64(r)
	if err != nil {
		t.Fatalf("ReadFloat64: %v", err)
	}
	if f64 != -2.718281828 {
		t.Errorf("float64: got %v", f64)
	}
}
