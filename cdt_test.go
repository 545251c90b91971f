package kestrel

import (
	"reflect"
	"testing"
)

func decodePayload(t *testing.T, op *Operation) any {
	t.Helper()
	got, err := NewUnpacker(op.Payload()).UnpackObject()
	if err != nil {
		t.Fatalf("UnpackObject(%x) failed: %v", op.Payload(), err)
	}
	return got
}

func TestListAppendOpPayload(t *testing.T) {
	op, err := ListAppendOp("tags", 5)
	if err != nil {
		t.Fatalf("ListAppendOp failed: %v", err)
	}
	if op.OpType != OpCDTModify || op.BinName != "tags" {
		t.Fatalf("op = %+v", op)
	}
	want := []any{int64(cdtListAppend), int64(5)}
	if got := decodePayload(t, op); !reflect.DeepEqual(got, want) {
		t.Fatalf("payload decoded to %#v, wanted %#v", got, want)
	}
}

func TestListAppendOpWithContext(t *testing.T) {
	op, err := ListAppendOp("tags", "x", CtxMapKey(StringValue("inner")))
	if err != nil {
		t.Fatalf("ListAppendOp failed: %v", err)
	}
	wrapper := decodePayload(t, op).([]any)
	if wrapper[0] != int64(ctxWrapperMarker) {
		t.Fatalf("wrapper marker = %v", wrapper[0])
	}
	// append creates missing nested structures: the single selector carries
	// the create flag
	wantPairs := []any{int64(ctxTypeMapKey | ctxFlagCreate), "inner"}
	if !reflect.DeepEqual(wrapper[1], wantPairs) {
		t.Fatalf("context pairs = %#v, wanted %#v", wrapper[1], wantPairs)
	}
	wantInner := []any{int64(cdtListAppend), "x"}
	if !reflect.DeepEqual(wrapper[2], wantInner) {
		t.Fatalf("inner command = %#v, wanted %#v", wrapper[2], wantInner)
	}
}

func TestListReadOps(t *testing.T) {
	op, err := ListGetByIndexRangeOp("tags", 2, 3, ListReturnValue)
	if err != nil {
		t.Fatalf("ListGetByIndexRangeOp failed: %v", err)
	}
	if op.OpType != OpCDTRead {
		t.Fatalf("OpType = %d, wanted OpCDTRead", op.OpType)
	}
	want := []any{int64(cdtListGetByIndexRange), int64(ListReturnValue), int64(2), int64(3)}
	if got := decodePayload(t, op); !reflect.DeepEqual(got, want) {
		t.Fatalf("payload decoded to %#v, wanted %#v", got, want)
	}

	op, err = ListSizeOp("tags")
	if err != nil {
		t.Fatalf("ListSizeOp failed: %v", err)
	}
	want = []any{int64(cdtListSize)}
	if got := decodePayload(t, op); !reflect.DeepEqual(got, want) {
		t.Fatalf("payload decoded to %#v, wanted %#v", got, want)
	}
}

func TestMapPutOpPayload(t *testing.T) {
	op, err := MapPutOp(DefaultMapPolicy(), "profile", "name", "ada")
	if err != nil {
		t.Fatalf("MapPutOp failed: %v", err)
	}
	want := []any{int64(cdtMapPut), "name", "ada", int64(MapUnordered), int64(0)}
	if got := decodePayload(t, op); !reflect.DeepEqual(got, want) {
		t.Fatalf("payload decoded to %#v, wanted %#v", got, want)
	}
}

func TestMapPutItemsOpPacksOrderedPairs(t *testing.T) {
	policy := &MapPolicy{Order: MapKeyOrdered}
	op, err := MapPutItemsOp(policy, "profile", []MapPair{{"a", 1}, {"b", 2}})
	if err != nil {
		t.Fatalf("MapPutItemsOp failed: %v", err)
	}
	got := decodePayload(t, op).([]any)
	if got[0] != int64(cdtMapPutItems) {
		t.Fatalf("command = %v, wanted %d", got[0], cdtMapPutItems)
	}
	// pairs were packed with the key-ordered marker, so the generic decoder
	// sees the real entries only
	wantItems := map[any]any{"a": int64(1), "b": int64(2)}
	if !reflect.DeepEqual(got[1], wantItems) {
		t.Fatalf("items = %#v, wanted %#v", got[1], wantItems)
	}
}

func TestMapGetByKeyRangeWithInfinity(t *testing.T) {
	op, err := MapGetByKeyRangeOp("profile", StringValue("a"), InfinityValue{}, MapReturnKeyValue)
	if err != nil {
		t.Fatalf("MapGetByKeyRangeOp failed: %v", err)
	}
	got := decodePayload(t, op).([]any)
	want := []any{int64(cdtMapGetByKeyRange), int64(MapReturnKeyValue), "a", nil}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("payload decoded to %#v, wanted %#v", got, want)
	}
}

func TestMapRemoveByKeyOp(t *testing.T) {
	op, err := MapRemoveByKeyOp("profile", "name", MapReturnValue)
	if err != nil {
		t.Fatalf("MapRemoveByKeyOp failed: %v", err)
	}
	want := []any{int64(cdtMapRemoveByKey), int64(MapReturnValue), "name"}
	if got := decodePayload(t, op); !reflect.DeepEqual(got, want) {
		t.Fatalf("payload decoded to %#v, wanted %#v", got, want)
	}
}
