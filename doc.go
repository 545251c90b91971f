/*
Package kestrel implements the wire-level value codec of the Kestrel
distributed key-value database client.

We implement:

1. Values, a closed set of typed variants (integers, floats, strings,
booleans, blobs, lists, maps, geo-JSON, plus the wildcard/infinity
sentinels used in expression trees) that the database can store or that
can appear as expression literals.

2. Packer and Unpacker, a symmetric encoder/decoder pair for the
MessagePack-derived wire format Kestrel speaks, extended with
particle-typed raw elements, a sorted-map marker and context-path
wrappers.

3. CDT operations, builders that compose list/map sub-operations
(optionally addressed through a context path into nested structures)
into packed command payloads.

4. Filter expressions, a tree of predicate nodes serialized through the
same wire format.

# Technical Details

**Particle types.**
Every raw/string wire element carries a one-byte particle type as the
first payload byte. The outer MessagePack header only says “N raw
bytes”; the particle byte tells the decoder whether those bytes are a
string, a generic blob, geo-JSON, or a native-serialized object. This
is a Kestrel protocol extension, not a MessagePack feature, which is
why the codec is hand-rolled rather than delegated to a MessagePack
library.

**Sorted maps.**
A map packed with an explicit order carries a reserved ext entry
(0xc7 0x00 <order byte>) as its first pseudo-entry. The entry occupies
one declared map slot and must be consumed (and the advertised count
decremented) before reading real pairs.

**Context paths.**
Operations on nested list/map structures are wrapped as
[0xff, [id0, value0, ...], inner-command]. With zero context entries no
wrapper is emitted and the bytes equal the plain command encoding.

**Native blobs.**
Values with no dedicated wire representation fall back to a generic
serializer (MessagePack by default, CBOR as an alternative), tagged
with the native-blob particle type so the decoder can reverse the
round-trip exactly.

Packer and Unpacker instances are single-use, single-goroutine cursors;
a Packer can be Reset and reused to amortize buffer allocations.
*/
package kestrel
