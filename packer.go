package kestrel

import (
	"encoding/binary"
	"fmt"
	"math"
)

// maxRawLen bounds a single raw/string element: the 32-bit length header must
// cover the payload plus the particle type byte.
const maxRawLen = uint64(math.MaxUint32) - 1

// Packer is a stateful forward-only encoder for the Kestrel wire format.
// One instance encodes one top-level value (or one command's fixed sequence
// of values) and must not be shared across goroutines.
type Packer struct {
	buf []byte
}

func NewPacker() *Packer {
	return &Packer{}
}

// Bytes returns the encoded buffer. The slice aliases the Packer's internal
// storage; copy it if the Packer is returned to a pool.
func (pk *Packer) Bytes() []byte {
	return pk.buf
}

func (pk *Packer) Reset() {
	pk.buf = pk.buf[:0]
}

func (pk *Packer) grow(n int) int {
	off, buf := grow(pk.buf, n)
	pk.buf = buf
	return off
}

func (pk *Packer) writeByte(b byte) {
	off := pk.grow(1)
	pk.buf[off] = b
}

func (pk *Packer) writeCodeUint16(code byte, v uint16) {
	off := pk.grow(3)
	pk.buf[off] = code
	binary.BigEndian.PutUint16(pk.buf[off+1:], v)
}

func (pk *Packer) writeCodeUint32(code byte, v uint32) {
	off := pk.grow(5)
	pk.buf[off] = code
	binary.BigEndian.PutUint32(pk.buf[off+1:], v)
}

func (pk *Packer) writeCodeUint64(code byte, v uint64) {
	off := pk.grow(9)
	pk.buf[off] = code
	binary.BigEndian.PutUint64(pk.buf[off+1:], v)
}

func (pk *Packer) PackNil() {
	pk.writeByte(codeNil)
}

func (pk *Packer) PackBool(v bool) {
	if v {
		pk.writeByte(codeTrue)
	} else {
		pk.writeByte(codeFalse)
	}
}

// PackInt64 emits the smallest exact representation: non-negative values use
// the unsigned codes, negative values the signed codes.
func (pk *Packer) PackInt64(v int64) {
	if v >= 0 {
		pk.PackUint64(uint64(v))
		return
	}
	switch {
	case v >= -32:
		pk.writeByte(byte(v)) // negative fixint
	case v >= math.MinInt8:
		off := pk.grow(2)
		pk.buf[off] = codeInt8
		pk.buf[off+1] = byte(v)
	case v >= math.MinInt16:
		pk.writeCodeUint16(codeInt16, uint16(v))
	case v >= math.MinInt32:
		pk.writeCodeUint32(codeInt32, uint32(v))
	default:
		pk.writeCodeUint64(codeInt64, uint64(v))
	}
}

func (pk *Packer) PackUint64(v uint64) {
	switch {
	case v < 0x80:
		pk.writeByte(byte(v)) // positive fixint
	case v <= math.MaxUint8:
		off := pk.grow(2)
		pk.buf[off] = codeUint8
		pk.buf[off+1] = byte(v)
	case v <= math.MaxUint16:
		pk.writeCodeUint16(codeUint16, uint16(v))
	case v <= math.MaxUint32:
		pk.writeCodeUint32(codeUint32, uint32(v))
	default:
		pk.writeCodeUint64(codeUint64, v)
	}
}

func (pk *Packer) PackFloat32(v float32) {
	pk.writeCodeUint32(codeFloat32, math.Float32bits(v))
}

func (pk *Packer) PackFloat64(v float64) {
	pk.writeCodeUint64(codeFloat64, math.Float64bits(v))
}

// PackArrayBegin emits an array header for n elements. The caller must
// append exactly n encoded elements afterwards.
func (pk *Packer) PackArrayBegin(n int) {
	switch {
	case n < 0 || int64(n) > math.MaxUint32:
		panic(fmt.Errorf("array count %d out of wire format range", n))
	case n < 16:
		pk.writeByte(codeFixArrayMin | byte(n))
	case n < math.MaxUint16+1:
		pk.writeCodeUint16(codeArray16, uint16(n))
	default:
		pk.writeCodeUint32(codeArray32, uint32(n))
	}
}

// PackMapBegin emits a map header for n key/value pairs. A non-unordered
// order costs one extra declared slot, filled by the 3-byte ordering marker.
func (pk *Packer) PackMapBegin(n int, order MapOrder) {
	if order != MapUnordered {
		pk.packMapHeader(n + 1)
		off := pk.grow(3)
		pk.buf[off] = codeExt8
		pk.buf[off+1] = 0x00
		pk.buf[off+2] = byte(order)
		return
	}
	pk.packMapHeader(n)
}

func (pk *Packer) packMapHeader(n int) {
	switch {
	case n < 0 || int64(n) > math.MaxUint32:
		panic(fmt.Errorf("map count %d out of wire format range", n))
	case n < 16:
		pk.writeByte(codeFixMapMin | byte(n))
	case n < math.MaxUint16+1:
		pk.writeCodeUint16(codeMap16, uint16(n))
	default:
		pk.writeCodeUint32(codeMap32, uint32(n))
	}
}

// packRawBegin emits a string header declaring n payload bytes. Decoders
// also accept the bin8/16/32 aliases, but we always emit string codes.
func (pk *Packer) packRawBegin(n int) {
	switch {
	case n < 32:
		pk.writeByte(codeFixStrMin | byte(n))
	case n < 256:
		off := pk.grow(2)
		pk.buf[off] = codeStr8
		pk.buf[off+1] = byte(n)
	case n < math.MaxUint16+1:
		pk.writeCodeUint16(codeStr16, uint16(n))
	default:
		pk.writeCodeUint32(codeStr32, uint32(n))
	}
}

// packParticle wraps payload in a raw/string element whose first byte is the
// particle type. This framing is what distinguishes Kestrel-typed data from
// generic MessagePack raw bytes.
func (pk *Packer) packParticle(particleType byte, payload []byte) {
	if uint64(len(payload)) > maxRawLen {
		panic(fmt.Errorf("raw element of %d bytes exceeds wire format range", len(payload)))
	}
	pk.packRawBegin(len(payload) + 1)
	pk.writeByte(particleType)
	off := pk.grow(len(payload))
	copy(pk.buf[off:], payload)
}

func (pk *Packer) PackString(v string) {
	if uint64(len(v)) > maxRawLen {
		panic(fmt.Errorf("string of %d bytes exceeds wire format range", len(v)))
	}
	pk.packRawBegin(len(v) + 1)
	pk.writeByte(ParticleTypeString)
	off := pk.grow(len(v))
	copy(pk.buf[off:], v)
}

func (pk *Packer) PackBytes(v []byte) {
	pk.packParticle(ParticleTypeBlob, v)
}

func (pk *Packer) PackGeoJSON(v string) {
	pk.packRawBegin(len(v) + 1)
	pk.writeByte(ParticleTypeGeoJSON)
	off := pk.grow(len(v))
	copy(pk.buf[off:], v)
}

// PackBlob is the fallback for values with no dedicated wire representation:
// the value is run through the native-blob serializer and tagged so the
// decoder can reverse the round-trip exactly.
func (pk *Packer) PackBlob(v any) error {
	data, err := nativeBlobEncoding.encodeBlob(nil, v)
	if err != nil {
		return err
	}
	pk.packParticle(ParticleTypeNativeBlob, data)
	return nil
}

// PackWildCard emits the "don't care" sentinel used in expression trees.
// Never valid as stored record data.
func (pk *Packer) PackWildCard() {
	off := pk.grow(3)
	pk.buf[off] = codeFixExt1
	pk.buf[off+1] = extTypeSentinel
	pk.buf[off+2] = 0x00
}

// PackInfinity emits the "unbounded" sentinel used in expression trees.
func (pk *Packer) PackInfinity() {
	off := pk.grow(3)
	pk.buf[off] = codeFixExt1
	pk.buf[off+1] = extTypeSentinel
	pk.buf[off+2] = 0x01
}

// PackObject packs an arbitrary Go value via the Value variant dispatch.
func (pk *Packer) PackObject(v any) error {
	return NewValue(v).Pack(pk)
}
