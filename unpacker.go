package kestrel

import (
	"encoding/binary"
	"math"
)

// Unpacker is a stateful forward-only decoder mirroring Packer. One instance
// decodes one buffer and must not be shared across goroutines.
//
// All integer wire codes decode to int64 regardless of source width and
// signedness; callers needing unsigned 64-bit semantics reinterpret the bits.
type Unpacker struct {
	buf    []byte
	offset int
}

func NewUnpacker(buf []byte) *Unpacker {
	return &Unpacker{buf: buf}
}

// Offset returns the cursor position within the buffer.
func (u *Unpacker) Offset() int {
	return u.offset
}

func (u *Unpacker) readByte() (byte, error) {
	if u.offset >= len(u.buf) {
		return 0, parseErrf(u.buf, u.offset, 0, nil, "unexpected end of buffer")
	}
	b := u.buf[u.offset]
	u.offset++
	return b, nil
}

func (u *Unpacker) readBytes(n int) ([]byte, error) {
	if n < 0 || u.offset+n > len(u.buf) {
		return nil, parseErrf(u.buf, u.offset, 0, nil, "unexpected end of buffer: %d bytes wanted, %d remaining", n, len(u.buf)-u.offset)
	}
	v := u.buf[u.offset : u.offset+n]
	u.offset += n
	return v, nil
}

func (u *Unpacker) readUint16() (uint16, error) {
	b, err := u.readBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (u *Unpacker) readUint32() (uint32, error) {
	b, err := u.readBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (u *Unpacker) readUint64() (uint64, error) {
	b, err := u.readBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// UnpackObject reads one generic value, recursing into arrays and maps.
// Extension elements other than the map-ordering marker are opaque: they are
// skipped and yield nil for their slot. An unrecognized leading byte is the
// only fatal format error in this subsystem.
func (u *Unpacker) UnpackObject() (any, error) {
	start := u.offset
	b, err := u.readByte()
	if err != nil {
		return nil, err
	}
	switch {
	case b <= codeFixIntMax:
		return int64(b), nil
	case b >= codeNegFixInt:
		return int64(int8(b)), nil
	case b >= codeFixStrMin && b <= codeFixStrMax:
		return u.unpackParticle(int(b & 0x1f))
	case b >= codeFixArrayMin && b <= codeFixArrayMax:
		return u.unpackList(int(b & 0x0f))
	case b >= codeFixMapMin && b <= codeFixMapMax:
		return u.unpackMap(int(b & 0x0f))
	}

	switch b {
	case codeNil:
		return nil, nil
	case codeFalse:
		return false, nil
	case codeTrue:
		return true, nil
	case codeFloat32:
		v, err := u.readUint32()
		if err != nil {
			return nil, err
		}
		return math.Float32frombits(v), nil
	case codeFloat64:
		v, err := u.readUint64()
		if err != nil {
			return nil, err
		}
		return math.Float64frombits(v), nil
	case codeUint8:
		v, err := u.readByte()
		if err != nil {
			return nil, err
		}
		return int64(v), nil
	case codeUint16:
		v, err := u.readUint16()
		if err != nil {
			return nil, err
		}
		return int64(v), nil
	case codeUint32:
		v, err := u.readUint32()
		if err != nil {
			return nil, err
		}
		return int64(v), nil
	case codeUint64:
		v, err := u.readUint64()
		if err != nil {
			return nil, err
		}
		return int64(v), nil
	case codeInt8:
		v, err := u.readByte()
		if err != nil {
			return nil, err
		}
		return int64(int8(v)), nil
	case codeInt16:
		v, err := u.readUint16()
		if err != nil {
			return nil, err
		}
		return int64(int16(v)), nil
	case codeInt32:
		v, err := u.readUint32()
		if err != nil {
			return nil, err
		}
		return int64(int32(v)), nil
	case codeInt64:
		v, err := u.readUint64()
		if err != nil {
			return nil, err
		}
		return int64(v), nil
	case codeBin8, codeStr8:
		n, err := u.readByte()
		if err != nil {
			return nil, err
		}
		return u.unpackParticle(int(n))
	case codeBin16, codeStr16:
		n, err := u.readUint16()
		if err != nil {
			return nil, err
		}
		return u.unpackParticle(int(n))
	case codeBin32, codeStr32:
		n, err := u.readUint32()
		if err != nil {
			return nil, err
		}
		return u.unpackParticle(int(n))
	case codeArray16:
		n, err := u.readUint16()
		if err != nil {
			return nil, err
		}
		return u.unpackList(int(n))
	case codeArray32:
		n, err := u.readUint32()
		if err != nil {
			return nil, err
		}
		return u.unpackList(int(n))
	case codeMap16:
		n, err := u.readUint16()
		if err != nil {
			return nil, err
		}
		return u.unpackMap(int(n))
	case codeMap32:
		n, err := u.readUint32()
		if err != nil {
			return nil, err
		}
		return u.unpackMap(int(n))
	case codeFixExt1, codeFixExt2, codeFixExt4, codeFixExt8, codeFixExt16:
		_, err := u.readBytes(1 + fixExtSize(b))
		return nil, err
	case codeExt8, codeExt16, codeExt32:
		return nil, u.skipExtBody(b)
	}
	return nil, parseErrf(u.buf, start, b, nil, "unknown wire type code")
}

func fixExtSize(code byte) int {
	return 1 << (code - codeFixExt1)
}

func (u *Unpacker) skipExtBody(code byte) error {
	var n int
	switch code {
	case codeExt8:
		v, err := u.readByte()
		if err != nil {
			return err
		}
		n = int(v)
	case codeExt16:
		v, err := u.readUint16()
		if err != nil {
			return err
		}
		n = int(v)
	case codeExt32:
		v, err := u.readUint32()
		if err != nil {
			return err
		}
		n = int(v)
	}
	_, err := u.readBytes(1 + n) // type byte + payload
	return err
}

// unpackParticle decodes a raw/string element of n payload bytes whose first
// byte is the particle type. Decoded blobs are copied; they do not alias the
// input buffer.
func (u *Unpacker) unpackParticle(n int) (any, error) {
	if n == 0 {
		return []byte{}, nil
	}
	raw, err := u.readBytes(n)
	if err != nil {
		return nil, err
	}
	payload := raw[1:]
	switch raw[0] {
	case ParticleTypeString:
		return string(payload), nil
	case ParticleTypeGeoJSON:
		return GeoJSONValue(payload), nil
	case ParticleTypeNativeBlob:
		return nativeBlobEncoding.decodeBlob(payload)
	default:
		cp := make([]byte, len(payload))
		copy(cp, payload)
		return cp, nil
	}
}

func (u *Unpacker) unpackList(count int) ([]any, error) {
	out := make([]any, count)
	for i := 0; i < count; i++ {
		v, err := u.UnpackObject()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// consumeOrderMarker consumes the 3-byte map-ordering marker if present at
// the cursor, returning the signaled order.
func (u *Unpacker) consumeOrderMarker() (MapOrder, bool) {
	if u.offset+3 <= len(u.buf) && u.buf[u.offset] == codeExt8 && u.buf[u.offset+1] == 0x00 {
		order := MapOrder(u.buf[u.offset+2])
		u.offset += 3
		return order, true
	}
	return MapUnordered, false
}

// unpackMap decodes count declared map slots. A leading ordering marker
// consumes one slot. Results preserving entry order (index/rank ranges) and
// maps with unhashable keys decode to []MapPair; everything else decodes to
// map[any]any.
func (u *Unpacker) unpackMap(count int) (any, error) {
	if count <= 0 {
		return map[any]any{}, nil
	}
	order, found := u.consumeOrderMarker()
	if found {
		count--
	}
	if order&mapPreserveOrder != 0 {
		return u.unpackPairs(count)
	}
	pairs, err := u.unpackPairs(count)
	if err != nil {
		return nil, err
	}
	for _, p := range pairs {
		if !hashableKey(p.Key) {
			return pairs, nil
		}
	}
	m := make(map[any]any, len(pairs))
	for _, p := range pairs {
		m[p.Key] = p.Value
	}
	return m, nil
}

func (u *Unpacker) unpackPairs(count int) ([]MapPair, error) {
	pairs := make([]MapPair, 0, count)
	for i := 0; i < count; i++ {
		k, err := u.UnpackObject()
		if err != nil {
			return nil, err
		}
		v, err := u.UnpackObject()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, MapPair{Key: k, Value: v})
	}
	return pairs, nil
}

func hashableKey(k any) bool {
	switch k.(type) {
	case nil, int64, float32, float64, bool, string, GeoJSONValue:
		return true
	default:
		return false
	}
}

// UnpackInt64 reads one integer, failing if the byte at the cursor is not an
// integer code.
func (u *Unpacker) UnpackInt64() (int64, error) {
	start := u.offset
	b, err := u.readByte()
	if err != nil {
		return 0, err
	}
	switch {
	case b <= codeFixIntMax:
		return int64(b), nil
	case b >= codeNegFixInt:
		return int64(int8(b)), nil
	}
	switch b {
	case codeUint8:
		v, err := u.readByte()
		return int64(v), err
	case codeUint16:
		v, err := u.readUint16()
		return int64(v), err
	case codeUint32:
		v, err := u.readUint32()
		return int64(v), err
	case codeUint64:
		v, err := u.readUint64()
		return int64(v), err
	case codeInt8:
		v, err := u.readByte()
		return int64(int8(v)), err
	case codeInt16:
		v, err := u.readUint16()
		return int64(int16(v)), err
	case codeInt32:
		v, err := u.readUint32()
		return int64(int32(v)), err
	case codeInt64:
		v, err := u.readUint64()
		return int64(v), err
	}
	u.offset = start
	return 0, parseErrf(u.buf, start, b, nil, "expected integer")
}

// UnpackBool reads one boolean, failing on any other code.
func (u *Unpacker) UnpackBool() (bool, error) {
	start := u.offset
	b, err := u.readByte()
	if err != nil {
		return false, err
	}
	switch b {
	case codeTrue:
		return true, nil
	case codeFalse:
		return false, nil
	}
	u.offset = start
	return false, parseErrf(u.buf, start, b, nil, "expected boolean")
}

// UnpackFloat64 reads one float32 or float64, failing on any other code.
func (u *Unpacker) UnpackFloat64() (float64, error) {
	start := u.offset
	b, err := u.readByte()
	if err != nil {
		return 0, err
	}
	switch b {
	case codeFloat32:
		v, err := u.readUint32()
		return float64(math.Float32frombits(v)), err
	case codeFloat64:
		v, err := u.readUint64()
		return math.Float64frombits(v), err
	}
	u.offset = start
	return 0, parseErrf(u.buf, start, b, nil, "expected float")
}

// UnpackString reads one particle-tagged string, failing if the cursor is not
// at a raw/string element carrying a string or geo-JSON particle.
func (u *Unpacker) UnpackString() (string, error) {
	start := u.offset
	n, ok, err := u.readRawHeader()
	if err != nil {
		return "", err
	}
	if !ok {
		u.offset = start
		return "", parseErrf(u.buf, start, u.buf[start], nil, "expected string")
	}
	if n == 0 {
		return "", nil
	}
	raw, err := u.readBytes(n)
	if err != nil {
		return "", err
	}
	switch raw[0] {
	case ParticleTypeString, ParticleTypeGeoJSON:
		return string(raw[1:]), nil
	}
	u.offset = start
	return "", parseErrf(u.buf, start, raw[0], nil, "expected string particle")
}

// readRawHeader reads a raw/string header (including the bin aliases),
// returning the payload length. ok=false if the code is not a raw element.
func (u *Unpacker) readRawHeader() (int, bool, error) {
	b, err := u.readByte()
	if err != nil {
		return 0, false, err
	}
	if b >= codeFixStrMin && b <= codeFixStrMax {
		return int(b & 0x1f), true, nil
	}
	switch b {
	case codeBin8, codeStr8:
		v, err := u.readByte()
		return int(v), true, err
	case codeBin16, codeStr16:
		v, err := u.readUint16()
		return int(v), true, err
	case codeBin32, codeStr32:
		v, err := u.readUint32()
		return int(v), true, err
	}
	u.offset--
	return 0, false, nil
}

// UnpackList reads one array header and its elements.
func (u *Unpacker) UnpackList() ([]any, error) {
	start := u.offset
	n, ok, err := u.readArrayHeader()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, parseErrf(u.buf, start, u.buf[start], nil, "expected array")
	}
	return u.unpackList(n)
}

// UnpackMap reads one map header and its entries. See unpackMap for the
// result representation.
func (u *Unpacker) UnpackMap() (any, error) {
	start := u.offset
	n, ok, err := u.readMapHeader()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, parseErrf(u.buf, start, u.buf[start], nil, "expected map")
	}
	return u.unpackMap(n)
}

func (u *Unpacker) readArrayHeader() (int, bool, error) {
	b, err := u.readByte()
	if err != nil {
		return 0, false, err
	}
	if b >= codeFixArrayMin && b <= codeFixArrayMax {
		return int(b & 0x0f), true, nil
	}
	switch b {
	case codeArray16:
		v, err := u.readUint16()
		return int(v), true, err
	case codeArray32:
		v, err := u.readUint32()
		return int(v), true, err
	}
	u.offset--
	return 0, false, nil
}

func (u *Unpacker) readMapHeader() (int, bool, error) {
	b, err := u.readByte()
	if err != nil {
		return 0, false, err
	}
	if b >= codeFixMapMin && b <= codeFixMapMax {
		return int(b & 0x0f), true, nil
	}
	switch b {
	case codeMap16:
		v, err := u.readUint16()
		return int(v), true, err
	case codeMap32:
		v, err := u.readUint32()
		return int(v), true, err
	}
	u.offset--
	return 0, false, nil
}

// MapItemCount reads only a map header, returning the real pair count and the
// signaled order. Leading extension pseudo-entries (ordering marker, index
// metadata) are consumed and do not count as data elements.
func (u *Unpacker) MapItemCount() (int, MapOrder, error) {
	start := u.offset
	count, ok, err := u.readMapHeader()
	if err != nil {
		return 0, MapUnordered, err
	}
	if !ok {
		return 0, MapUnordered, parseErrf(u.buf, start, u.buf[start], nil, "expected map")
	}
	order := MapUnordered
	for count > 0 {
		o, found := u.consumeOrderMarker()
		if found {
			order = o
			count--
			continue
		}
		skipped, err := u.skipLeadingExt()
		if err != nil {
			return 0, MapUnordered, err
		}
		if !skipped {
			break
		}
		count--
	}
	return count, order, nil
}

// ListItemCount reads only an array header, returning the element count with
// any leading extension pseudo-entries consumed and excluded.
func (u *Unpacker) ListItemCount() (int, error) {
	start := u.offset
	count, ok, err := u.readArrayHeader()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, parseErrf(u.buf, start, u.buf[start], nil, "expected array")
	}
	for count > 0 {
		skipped, err := u.skipLeadingExt()
		if err != nil {
			return 0, err
		}
		if !skipped {
			break
		}
		count--
	}
	return count, nil
}

// skipLeadingExt skips one extension element at the cursor, if any.
func (u *Unpacker) skipLeadingExt() (bool, error) {
	if u.offset >= len(u.buf) {
		return false, nil
	}
	b := u.buf[u.offset]
	switch b {
	case codeFixExt1, codeFixExt2, codeFixExt4, codeFixExt8, codeFixExt16:
		u.offset++
		_, err := u.readBytes(1 + fixExtSize(b))
		return true, err
	case codeExt8, codeExt16, codeExt32:
		u.offset++
		return true, u.skipExtBody(b)
	}
	return false, nil
}

// SkipObjects advances the cursor past n encoded values.
func (u *Unpacker) SkipObjects(n int) error {
	for i := 0; i < n; i++ {
		if err := u.SkipObject(); err != nil {
			return err
		}
	}
	return nil
}

// SkipObject advances the cursor past one encoded value without
// materializing it. Handles every wire code identically to UnpackObject for
// offset advancement.
func (u *Unpacker) SkipObject() error {
	start := u.offset
	b, err := u.readByte()
	if err != nil {
		return err
	}
	switch {
	case b <= codeFixIntMax || b >= codeNegFixInt:
		return nil
	case b >= codeFixStrMin && b <= codeFixStrMax:
		_, err := u.readBytes(int(b & 0x1f))
		return err
	case b >= codeFixArrayMin && b <= codeFixArrayMax:
		return u.SkipObjects(int(b & 0x0f))
	case b >= codeFixMapMin && b <= codeFixMapMax:
		return u.skipMapBody(int(b & 0x0f))
	}

	switch b {
	case codeNil, codeFalse, codeTrue:
		return nil
	case codeUint8, codeInt8:
		_, err := u.readBytes(1)
		return err
	case codeUint16, codeInt16:
		_, err := u.readBytes(2)
		return err
	case codeUint32, codeInt32, codeFloat32:
		_, err := u.readBytes(4)
		return err
	case codeUint64, codeInt64, codeFloat64:
		_, err := u.readBytes(8)
		return err
	case codeBin8, codeStr8:
		n, err := u.readByte()
		if err != nil {
			return err
		}
		_, err = u.readBytes(int(n))
		return err
	case codeBin16, codeStr16:
		n, err := u.readUint16()
		if err != nil {
			return err
		}
		_, err = u.readBytes(int(n))
		return err
	case codeBin32, codeStr32:
		n, err := u.readUint32()
		if err != nil {
			return err
		}
		_, err = u.readBytes(int(n))
		return err
	case codeFixExt1, codeFixExt2, codeFixExt4, codeFixExt8, codeFixExt16:
		_, err := u.readBytes(1 + fixExtSize(b))
		return err
	case codeExt8, codeExt16, codeExt32:
		return u.skipExtBody(b)
	case codeArray16:
		n, err := u.readUint16()
		if err != nil {
			return err
		}
		return u.SkipObjects(int(n))
	case codeArray32:
		n, err := u.readUint32()
		if err != nil {
			return err
		}
		return u.SkipObjects(int(n))
	case codeMap16:
		n, err := u.readUint16()
		if err != nil {
			return err
		}
		return u.skipMapBody(int(n))
	case codeMap32:
		n, err := u.readUint32()
		if err != nil {
			return err
		}
		return u.skipMapBody(int(n))
	}
	return parseErrf(u.buf, start, b, nil, "unknown wire type code")
}

// skipMapBody skips count declared map slots. A leading ordering marker
// occupies one slot on its own, the remaining slots are key/value pairs.
func (u *Unpacker) skipMapBody(count int) error {
	if count > 0 {
		if _, found := u.consumeOrderMarker(); found {
			count--
		}
	}
	return u.SkipObjects(2 * count)
}
