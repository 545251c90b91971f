package kestrel

// Wire-format byte codes. The format is a MessagePack superset; the codes
// below must match the MessagePack spec byte for byte.
const (
	codeFixIntMax   = 0x7f
	codeFixMapMin   = 0x80
	codeFixMapMax   = 0x8f
	codeFixArrayMin = 0x90
	codeFixArrayMax = 0x9f
	codeFixStrMin   = 0xa0
	codeFixStrMax   = 0xbf
	codeNil         = 0xc0
	codeUnused      = 0xc1
	codeFalse       = 0xc2
	codeTrue        = 0xc3
	codeBin8        = 0xc4
	codeBin16       = 0xc5
	codeBin32       = 0xc6
	codeExt8        = 0xc7
	codeExt16       = 0xc8
	codeExt32       = 0xc9
	codeFloat32     = 0xca
	codeFloat64     = 0xcb
	codeUint8       = 0xcc
	codeUint16      = 0xcd
	codeUint32      = 0xce
	codeUint64      = 0xcf
	codeInt8        = 0xd0
	codeInt16       = 0xd1
	codeInt32       = 0xd2
	codeInt64       = 0xd3
	codeFixExt1     = 0xd4
	codeFixExt2     = 0xd5
	codeFixExt4     = 0xd6
	codeFixExt8     = 0xd7
	codeFixExt16    = 0xd8
	codeStr8        = 0xd9
	codeStr16       = 0xda
	codeStr32       = 0xdb
	codeArray16     = 0xdc
	codeArray32     = 0xdd
	codeMap16       = 0xde
	codeMap32       = 0xdf
	codeNegFixInt   = 0xe0
)

// Ext type byte for the expression-tree sentinels (wildcard, infinity) and
// the CDT context wrapper marker.
const extTypeSentinel = 0xff

// MapOrder describes the key ordering of a packed map. A non-unordered map
// carries a 3-byte ext marker (codeExt8, 0x00, order byte) as its first
// pseudo-entry.
type MapOrder byte

const (
	MapUnordered       MapOrder = 0
	MapKeyOrdered      MapOrder = 1
	MapKeyValueOrdered MapOrder = 3

	// mapPreserveOrder marks index/rank-range results whose entry order is
	// significant; such maps decode to an ordered pair sequence.
	mapPreserveOrder MapOrder = 0x08
)
