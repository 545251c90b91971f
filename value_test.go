package kestrel

import (
	"encoding/hex"
	"errors"
	"reflect"
	"testing"
)

func TestNewValueDispatch(t *testing.T) {
	tests := []struct {
		input    any
		expected Value
	}{
		{nil, NullValue{}},
		{42, IntegerValue(42)},
		{int8(-1), IntegerValue(-1)},
		{int64(1 << 40), IntegerValue(1 << 40)},
		{uint8(255), IntegerValue(255)},
		{uint32(7), IntegerValue(7)},
		{uint64(9), UnsignedValue(9)},
		{uint(9), UnsignedValue(9)},
		{float32(1.5), FloatValue(1.5)},
		{2.5, DoubleValue(2.5)},
		{"s", StringValue("s")},
		{true, BoolValue(true)},
		{[]byte{1}, BytesValue{1}},
		{[]any{1, "a"}, ListValue{1, "a"}},
		{[]string{"a", "b"}, ListValue{"a", "b"}},
		{map[any]any{"k": 1}, MapValue{"k": 1}},
		{map[string]any{"k": 1}, MapValue{"k": 1}},
		{[]MapPair{{"k", 1}}, SortedMapValue{{"k", 1}}},
		{StringValue("passthrough"), StringValue("passthrough")},
		{struct{ X int }{5}, NativeBlobValue{struct{ X int }{5}}},
	}
	for _, test := range tests {
		got := NewValue(test.input)
		if !reflect.DeepEqual(got, test.expected) {
			t.Errorf("** NewValue(%#v) = %#v, wanted %#v", test.input, got, test.expected)
		}
	}
}

func TestParticleTypes(t *testing.T) {
	tests := []struct {
		val      Value
		expected int
	}{
		{NullValue{}, ParticleTypeNull},
		{IntegerValue(1), ParticleTypeInteger},
		{UnsignedValue(1), ParticleTypeInteger},
		{FloatValue(1), ParticleTypeDouble},
		{DoubleValue(1), ParticleTypeDouble},
		{StringValue("x"), ParticleTypeString},
		{BoolValue(true), ParticleTypeBool},
		{BytesValue{}, ParticleTypeBlob},
		{GeoJSONValue("{}"), ParticleTypeGeoJSON},
		{ListValue{}, ParticleTypeList},
		{MapValue{}, ParticleTypeMap},
		{SortedMapValue{}, ParticleTypeMap},
		{NativeBlobValue{1}, ParticleTypeNativeBlob},
	}
	for _, test := range tests {
		if got := test.val.ParticleType(); got != test.expected {
			t.Errorf("** %T.ParticleType() = %d, wanted %d", test.val, got, test.expected)
		}
	}
}

func TestValueWrite(t *testing.T) {
	tests := []struct {
		val      Value
		expected string
	}{
		{IntegerValue(1), "0000000000000001"},
		{IntegerValue(-1), "ffffffffffffffff"},
		{UnsignedValue(1 << 63), "8000000000000000"},
		{DoubleValue(1.0), "3ff0000000000000"},
		{FloatValue(1.0), "3ff0000000000000"},
		{StringValue("abc"), "616263"},
		{BoolValue(true), "01"},
		{BoolValue(false), "00"},
		{BytesValue{0xaa, 0xbb}, "aabb"},
		{GeoJSONValue("{}"), "7b7d"},
		{NullValue{}, ""},
	}
	for _, test := range tests {
		sz, err := test.val.EstimateSize()
		if err != nil {
			t.Errorf("** %T.EstimateSize failed: %v", test.val, err)
			continue
		}
		buf := make([]byte, sz)
		n, err := test.val.Write(buf)
		if err != nil {
			t.Errorf("** %T.Write failed: %v", test.val, err)
			continue
		}
		if got := hex.EncodeToString(buf[:n]); got != test.expected {
			t.Errorf("** %T.Write = %s, wanted %q", test.val, got, test.expected)
		}
	}
}

func TestContainerEstimateSizeMatchesPack(t *testing.T) {
	vals := []Value{
		ListValue{int64(1), "a", []byte{2}},
		MapValue{"k": int64(1)},
		SortedMapValue{{"a", int64(1)}, {"b", int64(2)}},
	}
	for _, v := range vals {
		sz, err := v.EstimateSize()
		if err != nil {
			t.Fatalf("%T.EstimateSize failed: %v", v, err)
		}
		pk := NewPacker()
		if err := v.Pack(pk); err != nil {
			t.Fatalf("%T.Pack failed: %v", v, err)
		}
		if sz != len(pk.Bytes()) {
			t.Fatalf("%T.EstimateSize = %d, packed %d bytes", v, sz, len(pk.Bytes()))
		}

		buf := make([]byte, sz)
		n, err := v.Write(buf)
		if err != nil || n != sz {
			t.Fatalf("%T.Write = (%d, %v), wanted %d bytes", v, n, err, sz)
		}
	}
}

func TestSentinelsNotStorable(t *testing.T) {
	for _, v := range []Value{WildCardValue{}, InfinityValue{}} {
		if _, err := v.EstimateSize(); !errors.Is(err, ErrNotStorable) {
			t.Errorf("%T.EstimateSize err = %v, wanted ErrNotStorable", v, err)
		}
		if _, err := v.Write(nil); !errors.Is(err, ErrNotStorable) {
			t.Errorf("%T.Write err = %v, wanted ErrNotStorable", v, err)
		}
	}
}
