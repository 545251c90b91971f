package kestrel

import (
	"bytes"
	"reflect"
	"testing"
)

func TestCTXZeroEntriesMatchesPlain(t *testing.T) {
	args := []Value{IntegerValue(ListReturnValue), IntegerValue(3)}

	plain := NewPacker()
	if err := packCDTCommand(plain, cdtListGetByIndex, args); err != nil {
		t.Fatalf("packCDTCommand failed: %v", err)
	}
	wrapped := NewPacker()
	if err := packCDTOperation(wrapped, cdtListGetByIndex, nil, false, args); err != nil {
		t.Fatalf("packCDTOperation failed: %v", err)
	}
	if !bytes.Equal(plain.Bytes(), wrapped.Bytes()) {
		t.Fatalf("zero-context encoding %x differs from plain %x", wrapped.Bytes(), plain.Bytes())
	}
}

func TestCTXWrapper(t *testing.T) {
	args := []Value{NewValue(5)}
	ctx := []*CDTContext{CtxMapKey(StringValue("a")), CtxListIndex(2)}

	pk := NewPacker()
	if err := packCDTOperation(pk, cdtListAppend, ctx, false, args); err != nil {
		t.Fatalf("packCDTOperation failed: %v", err)
	}
	obj, err := NewUnpacker(pk.Bytes()).UnpackObject()
	if err != nil {
		t.Fatalf("UnpackObject failed: %v", err)
	}
	wrapper, ok := obj.([]any)
	if !ok || len(wrapper) != 3 {
		t.Fatalf("wrapper = %#v, wanted 3-element array", obj)
	}
	if wrapper[0] != int64(ctxWrapperMarker) {
		t.Fatalf("wrapper marker = %v, wanted %d", wrapper[0], ctxWrapperMarker)
	}
	wantPairs := []any{int64(ctxTypeMapKey), "a", int64(ctxTypeListIndex), int64(2)}
	if !reflect.DeepEqual(wrapper[1], wantPairs) {
		t.Fatalf("context pairs = %#v, wanted %#v", wrapper[1], wantPairs)
	}

	// the inner command matches the plain encoding of the same command
	plain := NewPacker()
	if err := packCDTCommand(plain, cdtListAppend, args); err != nil {
		t.Fatalf("packCDTCommand failed: %v", err)
	}
	plainObj, err := NewUnpacker(plain.Bytes()).UnpackObject()
	if err != nil {
		t.Fatalf("UnpackObject(plain) failed: %v", err)
	}
	if !reflect.DeepEqual(wrapper[2], plainObj) {
		t.Fatalf("inner command = %#v, wanted %#v", wrapper[2], plainObj)
	}
}

func TestCTXCreateFlag(t *testing.T) {
	ctx := []*CDTContext{CtxMapKey(StringValue("a")), CtxListIndex(0)}

	pk := NewPacker()
	if err := packCDTOperation(pk, cdtListAppend, ctx, true, []Value{NewValue(1)}); err != nil {
		t.Fatalf("packCDTOperation failed: %v", err)
	}
	obj, err := NewUnpacker(pk.Bytes()).UnpackObject()
	if err != nil {
		t.Fatalf("UnpackObject failed: %v", err)
	}
	pairs := obj.([]any)[1].([]any)
	if pairs[0] != int64(ctxTypeMapKey) {
		t.Fatalf("first id = %v, create flag must only mark the last selector", pairs[0])
	}
	if pairs[2] != int64(ctxTypeListIndex|ctxFlagCreate) {
		t.Fatalf("last id = %v, wanted %d", pairs[2], ctxTypeListIndex|ctxFlagCreate)
	}
}
