package kestrel

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Key identifies a record: a namespace, an optional set name, and a user key
// value. The digest is computed once at construction and is the stable
// cluster-wide identity of the record; it must not depend on anything but the
// set name and the user key's particle representation.
type Key struct {
	namespace string
	setName   string
	userKey   Value
	digest    [16]byte
}

// NewKey builds a key from a user key value. Lists, maps and the expression
// sentinels are not valid key types.
func NewKey(namespace, setName string, key any) (*Key, error) {
	v := NewValue(key)
	switch v.(type) {
	case ListValue, MapValue, SortedMapValue, WildCardValue, InfinityValue, NullValue:
		return nil, fmt.Errorf("invalid key value of type %T", key)
	}
	k := &Key{namespace: namespace, setName: setName, userKey: v}
	if err := k.computeDigest(); err != nil {
		return nil, err
	}
	return k, nil
}

func (k *Key) Namespace() string { return k.namespace }
func (k *Key) SetName() string   { return k.setName }
func (k *Key) Value() Value      { return k.userKey }

// Digest returns the 16-byte record digest.
func (k *Key) Digest() []byte {
	return k.digest[:]
}

// PartitionID maps the digest to a partition in [0, partitionCount).
func (k *Key) PartitionID(partitionCount int) int {
	return int(binary.LittleEndian.Uint32(k.digest[:4])&0xffff) % partitionCount
}

func (k *Key) String() string {
	return fmt.Sprintf("%s:%s:%s:%x", k.namespace, k.setName, k.userKey, k.digest)
}

// computeDigest hashes the set name, the key's particle type and its particle
// payload through two seeded xxhash lanes.
func (k *Key) computeDigest() error {
	sz, err := k.userKey.EstimateSize()
	if err != nil {
		return err
	}
	buf := payloadBytesPool.Get().([]byte)
	defer func() { releasePayloadBytes(buf) }()
	buf = ensureCapacity(buf, sz)[:sz]
	n, err := k.userKey.Write(buf)
	if err != nil {
		return err
	}

	h := xxhash.New()
	lane := func(seed byte) uint64 {
		h.Reset()
		h.Write([]byte{seed, byte(k.userKey.ParticleType())})
		h.WriteString(k.setName)
		h.Write(buf[:n])
		return h.Sum64()
	}
	binary.BigEndian.PutUint64(k.digest[0:8], lane(0))
	binary.BigEndian.PutUint64(k.digest[8:16], lane(1))
	return nil
}
