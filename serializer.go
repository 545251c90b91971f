package kestrel

import (
	"bytes"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// encodingMethod selects the serializer behind native-blob particles.
type encodingMethod int

const (
	// MsgPack is the default native-blob encoding.
	MsgPack encodingMethod = iota
	// CBOR is an alternative for callers interoperating with CBOR tooling.
	CBOR
)

// nativeBlobEncoding is consulted by PackBlob and by the unpacker when it
// meets a native-blob particle. Both sides of a round-trip must agree.
var nativeBlobEncoding = MsgPack

// SetNativeBlobEncoding switches the serializer used for native-blob
// particles. Not safe to call concurrently with packing or unpacking.
func SetNativeBlobEncoding(enc encodingMethod) {
	switch enc {
	case MsgPack, CBOR:
		nativeBlobEncoding = enc
	default:
		panic(fmt.Errorf("unsupported native blob encoding %d", enc))
	}
}

func (enc encodingMethod) encodeBlob(buf []byte, v any) ([]byte, error) {
	switch enc {
	case MsgPack:
		bb := bytesBuilder{buf}
		e := msgpack.GetEncoder()
		e.ResetDict(&bb, nil)
		e.SetSortMapKeys(true)
		err := e.Encode(v)
		msgpack.PutEncoder(e)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %T using MsgPack: %w", v, err)
		}
		return bb.Buf, nil
	case CBOR:
		raw, err := cbor.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %T using CBOR: %w", v, err)
		}
		return appendRaw(buf, raw), nil
	default:
		panic("unsupported encoding")
	}
}

func (enc encodingMethod) decodeBlob(data []byte) (any, error) {
	switch enc {
	case MsgPack:
		var r bytes.Reader
		r.Reset(data)
		d := msgpack.GetDecoder()
		d.ResetDict(&r, nil)
		v, err := d.DecodeInterfaceLoose()
		msgpack.PutDecoder(d)
		if err != nil {
			return nil, parseErrf(data, 0, ParticleTypeNativeBlob, err, "failed to decode MsgPack native blob")
		}
		return v, nil
	case CBOR:
		var v any
		if err := cbor.Unmarshal(data, &v); err != nil {
			return nil, parseErrf(data, 0, ParticleTypeNativeBlob, err, "failed to decode CBOR native blob")
		}
		return v, nil
	default:
		panic("unsupported encoding")
	}
}
