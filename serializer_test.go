package kestrel

import (
	"reflect"
	"testing"
)

func TestNativeBlobMsgPackRoundTrip(t *testing.T) {
	payloads := []any{
		map[string]any{"b": int64(2), "a": int64(1)},
		[]any{int64(1), "two", true},
		"plain string",
		int64(-7),
	}
	for _, payload := range payloads {
		data, err := MsgPack.encodeBlob(nil, payload)
		if err != nil {
			t.Errorf("** encodeBlob(%#v) failed: %v", payload, err)
			continue
		}
		got, err := MsgPack.decodeBlob(data)
		if err != nil {
			t.Errorf("** decodeBlob(%x) failed: %v", data, err)
			continue
		}
		if !reflect.DeepEqual(got, payload) {
			t.Errorf("** round trip = %#v, wanted %#v", got, payload)
		}
	}
}

func TestNativeBlobThroughPacker(t *testing.T) {
	payload := map[string]any{"x": int64(5), "y": "z"}
	pk := NewPacker()
	if err := pk.PackBlob(payload); err != nil {
		t.Fatalf("PackBlob failed: %v", err)
	}
	got, err := NewUnpacker(pk.Bytes()).UnpackObject()
	if err != nil {
		t.Fatalf("UnpackObject failed: %v", err)
	}
	if !reflect.DeepEqual(got, payload) {
		t.Fatalf("round trip = %#v, wanted %#v", got, payload)
	}
}

func TestNativeBlobCBOR(t *testing.T) {
	SetNativeBlobEncoding(CBOR)
	defer SetNativeBlobEncoding(MsgPack)

	pk := NewPacker()
	if err := pk.PackBlob("hello cbor"); err != nil {
		t.Fatalf("PackBlob failed: %v", err)
	}
	got, err := NewUnpacker(pk.Bytes()).UnpackObject()
	if err != nil {
		t.Fatalf("UnpackObject failed: %v", err)
	}
	if got != "hello cbor" {
		t.Fatalf("round trip = %#v, wanted hello cbor", got)
	}
}

func TestSetNativeBlobEncodingRejectsUnknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("SetNativeBlobEncoding(99) did not panic")
		}
	}()
	SetNativeBlobEncoding(encodingMethod(99))
}
