package kestrel

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
)

// Value is one of the closed set of typed variants the database can store or
// that can appear as an expression literal. Variants are immutable once
// constructed.
//
// EstimateSize and Write deal with the particle payload representation used
// for record bins (for example an integer is 8 big-endian bytes); Pack emits
// the wire-format representation used inside CDTs, commands and expressions.
type Value interface {
	ParticleType() int
	EstimateSize() (int, error)
	Write(buf []byte) (int, error)
	Pack(pk *Packer) error
	GetObject() any
	String() string
}

// MapPair is one key/value entry of a map whose entry order is significant.
type MapPair struct {
	Key   any
	Value any
}

// NewValue wraps a Go value in its Value variant. Types with no dedicated
// variant fall back to NativeBlobValue.
func NewValue(v any) Value {
	switch v := v.(type) {
	case nil:
		return NullValue{}
	case Value:
		return v
	case int:
		return IntegerValue(v)
	case int8:
		return IntegerValue(v)
	case int16:
		return IntegerValue(v)
	case int32:
		return IntegerValue(v)
	case int64:
		return IntegerValue(v)
	case uint:
		return UnsignedValue(v)
	case uint8:
		return IntegerValue(v)
	case uint16:
		return IntegerValue(v)
	case uint32:
		return IntegerValue(v)
	case uint64:
		return UnsignedValue(v)
	case float32:
		return FloatValue(v)
	case float64:
		return DoubleValue(v)
	case string:
		return StringValue(v)
	case bool:
		return BoolValue(v)
	case []byte:
		return BytesValue(v)
	case []any:
		return ListValue(v)
	case []Value:
		lst := make(ListValue, len(v))
		for i, el := range v {
			lst[i] = el
		}
		return lst
	case []string:
		lst := make(ListValue, len(v))
		for i, el := range v {
			lst[i] = el
		}
		return lst
	case map[any]any:
		return MapValue(v)
	case map[string]any:
		m := make(MapValue, len(v))
		for k, el := range v {
			m[k] = el
		}
		return m
	case []MapPair:
		return SortedMapValue(v)
	case MapPair:
		return SortedMapValue{v}
	}
	return NativeBlobValue{Object: v}
}

// NullValue is the null sentinel.
type NullValue struct{}

func (NullValue) ParticleType() int           { return ParticleTypeNull }
func (NullValue) EstimateSize() (int, error)  { return 0, nil }
func (NullValue) Write(buf []byte) (int, error) { return 0, nil }
func (NullValue) Pack(pk *Packer) error       { pk.PackNil(); return nil }
func (NullValue) GetObject() any              { return nil }
func (NullValue) String() string              { return "<null>" }

// IntegerValue holds a 64-bit signed integer.
type IntegerValue int64

func (v IntegerValue) ParticleType() int          { return ParticleTypeInteger }
func (v IntegerValue) EstimateSize() (int, error) { return 8, nil }

func (v IntegerValue) Write(buf []byte) (int, error) {
	binary.BigEndian.PutUint64(buf, uint64(v))
	return 8, nil
}

func (v IntegerValue) Pack(pk *Packer) error {
	pk.PackInt64(int64(v))
	return nil
}

func (v IntegerValue) GetObject() any { return int64(v) }
func (v IntegerValue) String() string { return strconv.FormatInt(int64(v), 10) }

// UnsignedValue holds a 64-bit unsigned integer. It exists on the encode side
// only: the decoder always yields int64, and callers reinterpret the bits.
type UnsignedValue uint64

func (v UnsignedValue) ParticleType() int          { return ParticleTypeInteger }
func (v UnsignedValue) EstimateSize() (int, error) { return 8, nil }

func (v UnsignedValue) Write(buf []byte) (int, error) {
	binary.BigEndian.PutUint64(buf, uint64(v))
	return 8, nil
}

func (v UnsignedValue) Pack(pk *Packer) error {
	pk.PackUint64(uint64(v))
	return nil
}

func (v UnsignedValue) GetObject() any { return uint64(v) }
func (v UnsignedValue) String() string { return strconv.FormatUint(uint64(v), 10) }

// FloatValue holds a 32-bit float.
type FloatValue float32

func (v FloatValue) ParticleType() int          { return ParticleTypeDouble }
func (v FloatValue) EstimateSize() (int, error) { return 8, nil }

func (v FloatValue) Write(buf []byte) (int, error) {
	binary.BigEndian.PutUint64(buf, math.Float64bits(float64(v)))
	return 8, nil
}

func (v FloatValue) Pack(pk *Packer) error {
	pk.PackFloat32(float32(v))
	return nil
}

func (v FloatValue) GetObject() any { return float32(v) }
func (v FloatValue) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 32) }

// DoubleValue holds a 64-bit float.
type DoubleValue float64

func (v DoubleValue) ParticleType() int          { return ParticleTypeDouble }
func (v DoubleValue) EstimateSize() (int, error) { return 8, nil }

func (v DoubleValue) Write(buf []byte) (int, error) {
	binary.BigEndian.PutUint64(buf, math.Float64bits(float64(v)))
	return 8, nil
}

func (v DoubleValue) Pack(pk *Packer) error {
	pk.PackFloat64(float64(v))
	return nil
}

func (v DoubleValue) GetObject() any { return float64(v) }
func (v DoubleValue) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }

// StringValue holds a UTF-8 string.
type StringValue string

func (v StringValue) ParticleType() int          { return ParticleTypeString }
func (v StringValue) EstimateSize() (int, error) { return len(v), nil }

func (v StringValue) Write(buf []byte) (int, error) {
	return copy(buf, v), nil
}

func (v StringValue) Pack(pk *Packer) error {
	pk.PackString(string(v))
	return nil
}

func (v StringValue) GetObject() any { return string(v) }
func (v StringValue) String() string { return string(v) }

// BoolValue holds a boolean.
type BoolValue bool

func (v BoolValue) ParticleType() int          { return ParticleTypeBool }
func (v BoolValue) EstimateSize() (int, error) { return 1, nil }

func (v BoolValue) Write(buf []byte) (int, error) {
	if v {
		buf[0] = 1
	} else {
		buf[0] = 0
	}
	return 1, nil
}

func (v BoolValue) Pack(pk *Packer) error {
	pk.PackBool(bool(v))
	return nil
}

func (v BoolValue) GetObject() any { return bool(v) }
func (v BoolValue) String() string { return strconv.FormatBool(bool(v)) }

// BytesValue holds a byte blob.
type BytesValue []byte

func (v BytesValue) ParticleType() int          { return ParticleTypeBlob }
func (v BytesValue) EstimateSize() (int, error) { return len(v), nil }

func (v BytesValue) Write(buf []byte) (int, error) {
	return copy(buf, v), nil
}

func (v BytesValue) Pack(pk *Packer) error {
	pk.PackBytes(v)
	return nil
}

func (v BytesValue) GetObject() any { return []byte(v) }
func (v BytesValue) String() string { return fmt.Sprintf("%x", []byte(v)) }

// GeoJSONValue holds a geo-JSON document as its textual form.
type GeoJSONValue string

func (v GeoJSONValue) ParticleType() int          { return ParticleTypeGeoJSON }
func (v GeoJSONValue) EstimateSize() (int, error) { return len(v), nil }

func (v GeoJSONValue) Write(buf []byte) (int, error) {
	return copy(buf, v), nil
}

func (v GeoJSONValue) Pack(pk *Packer) error {
	pk.PackGeoJSON(string(v))
	return nil
}

func (v GeoJSONValue) GetObject() any { return v }
func (v GeoJSONValue) String() string { return string(v) }

// ListValue holds an ordered list of values.
type ListValue []any

func (v ListValue) ParticleType() int { return ParticleTypeList }

func (v ListValue) EstimateSize() (int, error) {
	return packedSize(v)
}

func (v ListValue) Write(buf []byte) (int, error) {
	return writePacked(buf, v)
}

func (v ListValue) Pack(pk *Packer) error {
	pk.PackArrayBegin(len(v))
	for _, el := range v {
		if err := pk.PackObject(el); err != nil {
			return err
		}
	}
	return nil
}

func (v ListValue) GetObject() any { return []any(v) }
func (v ListValue) String() string { return fmt.Sprintf("%v", []any(v)) }

// MapValue holds an unordered map.
type MapValue map[any]any

func (v MapValue) ParticleType() int { return ParticleTypeMap }

func (v MapValue) EstimateSize() (int, error) {
	return packedSize(v)
}

func (v MapValue) Write(buf []byte) (int, error) {
	return writePacked(buf, v)
}

func (v MapValue) Pack(pk *Packer) error {
	pk.PackMapBegin(len(v), MapUnordered)
	for k, el := range v {
		if err := pk.PackObject(k); err != nil {
			return err
		}
		if err := pk.PackObject(el); err != nil {
			return err
		}
	}
	return nil
}

func (v MapValue) GetObject() any { return map[any]any(v) }
func (v MapValue) String() string { return fmt.Sprintf("%v", map[any]any(v)) }

// SortedMapValue holds a key-ordered map as an ordered pair sequence. The
// caller supplies pairs in key order; packing emits the key-ordered marker.
type SortedMapValue []MapPair

func (v SortedMapValue) ParticleType() int { return ParticleTypeMap }

func (v SortedMapValue) EstimateSize() (int, error) {
	return packedSize(v)
}

func (v SortedMapValue) Write(buf []byte) (int, error) {
	return writePacked(buf, v)
}

func (v SortedMapValue) Pack(pk *Packer) error {
	pk.PackMapBegin(len(v), MapKeyOrdered)
	for _, p := range v {
		if err := pk.PackObject(p.Key); err != nil {
			return err
		}
		if err := pk.PackObject(p.Value); err != nil {
			return err
		}
	}
	return nil
}

func (v SortedMapValue) GetObject() any { return []MapPair(v) }
func (v SortedMapValue) String() string { return fmt.Sprintf("%v", []MapPair(v)) }

// WildCardValue is the "don't care" sentinel. Expression trees only; not
// storable as record data.
type WildCardValue struct{}

func (WildCardValue) ParticleType() int          { return ParticleTypeNull }
func (WildCardValue) EstimateSize() (int, error) { return 0, ErrNotStorable }
func (WildCardValue) Write([]byte) (int, error)  { return 0, ErrNotStorable }
func (WildCardValue) Pack(pk *Packer) error      { pk.PackWildCard(); return nil }
func (WildCardValue) GetObject() any             { return nil }
func (WildCardValue) String() string             { return "*" }

// InfinityValue is the "unbounded" sentinel. Expression trees only; not
// storable as record data.
type InfinityValue struct{}

func (InfinityValue) ParticleType() int          { return ParticleTypeNull }
func (InfinityValue) EstimateSize() (int, error) { return 0, ErrNotStorable }
func (InfinityValue) Write([]byte) (int, error)  { return 0, ErrNotStorable }
func (InfinityValue) Pack(pk *Packer) error      { pk.PackInfinity(); return nil }
func (InfinityValue) GetObject() any             { return nil }
func (InfinityValue) String() string             { return "INF" }

// NativeBlobValue wraps a value with no dedicated wire representation; it
// round-trips through the native-blob serializer.
type NativeBlobValue struct {
	Object any
}

func (v NativeBlobValue) ParticleType() int { return ParticleTypeNativeBlob }

func (v NativeBlobValue) EstimateSize() (int, error) {
	data, err := nativeBlobEncoding.encodeBlob(nil, v.Object)
	if err != nil {
		return 0, err
	}
	return len(data), nil
}

func (v NativeBlobValue) Write(buf []byte) (int, error) {
	data, err := nativeBlobEncoding.encodeBlob(nil, v.Object)
	if err != nil {
		return 0, err
	}
	return copy(buf, data), nil
}

func (v NativeBlobValue) Pack(pk *Packer) error {
	return pk.PackBlob(v.Object)
}

func (v NativeBlobValue) GetObject() any { return v.Object }
func (v NativeBlobValue) String() string { return fmt.Sprintf("%v", v.Object) }

// packedSize measures a container's wire size by packing it into a scratch
// packer.
func packedSize(v Value) (int, error) {
	pk := packerPool.Get().(*Packer)
	defer releasePacker(pk)
	if err := v.Pack(pk); err != nil {
		return 0, err
	}
	return len(pk.Bytes()), nil
}

func writePacked(buf []byte, v Value) (int, error) {
	pk := packerPool.Get().(*Packer)
	defer releasePacker(pk)
	if err := v.Pack(pk); err != nil {
		return 0, err
	}
	return copy(buf, pk.Bytes()), nil
}
