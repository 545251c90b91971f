package kestrel

import (
	"bytes"
	"testing"
)

func TestKeyDigestStability(t *testing.T) {
	k1, err := NewKey("test", "users", "alice")
	if err != nil {
		t.Fatalf("NewKey failed: %v", err)
	}
	k2, err := NewKey("test", "users", "alice")
	if err != nil {
		t.Fatalf("NewKey failed: %v", err)
	}
	if !bytes.Equal(k1.Digest(), k2.Digest()) {
		t.Fatalf("same key produced digests %x and %x", k1.Digest(), k2.Digest())
	}
	if len(k1.Digest()) != 16 {
		t.Fatalf("digest is %d bytes, wanted 16", len(k1.Digest()))
	}
}

func TestKeyDigestDiscriminates(t *testing.T) {
	base, _ := NewKey("test", "users", "alice")
	otherKey, _ := NewKey("test", "users", "bob")
	otherSet, _ := NewKey("test", "admins", "alice")
	if bytes.Equal(base.Digest(), otherKey.Digest()) {
		t.Fatalf("different user keys collided: %x", base.Digest())
	}
	if bytes.Equal(base.Digest(), otherSet.Digest()) {
		t.Fatalf("different sets collided: %x", base.Digest())
	}

	// the particle type participates: int 1 and string "..." must differ even
	// if payload bytes matched
	intKey, _ := NewKey("test", "users", int64(1))
	strKey, _ := NewKey("test", "users", "\x00\x00\x00\x00\x00\x00\x00\x01")
	if bytes.Equal(intKey.Digest(), strKey.Digest()) {
		t.Fatalf("int and string keys collided: %x", intKey.Digest())
	}
}

func TestKeyTypes(t *testing.T) {
	for _, v := range []any{"s", int64(1), 3.5, []byte{1, 2}, true} {
		if _, err := NewKey("test", "users", v); err != nil {
			t.Errorf("NewKey(%T) failed: %v", v, err)
		}
	}
	for _, v := range []any{nil, []any{1}, map[any]any{"a": 1}} {
		if _, err := NewKey("test", "users", v); err == nil {
			t.Errorf("NewKey(%T) did not fail", v)
		}
	}
}

func TestKeyPartitionID(t *testing.T) {
	const partitions = 4096
	seen := make(map[int]bool)
	for _, name := range []string{"a", "b", "c", "dddd", "eeeee"} {
		k, err := NewKey("test", "users", name)
		if err != nil {
			t.Fatalf("NewKey failed: %v", err)
		}
		p := k.PartitionID(partitions)
		if p < 0 || p >= partitions {
			t.Fatalf("PartitionID(%s) = %d, out of range", name, p)
		}
		seen[p] = true
	}
	if len(seen) < 2 {
		t.Fatalf("all test keys fell into one partition")
	}
}

func TestKeyAccessors(t *testing.T) {
	k, err := NewKey("ns", "set", "user")
	if err != nil {
		t.Fatalf("NewKey failed: %v", err)
	}
	if k.Namespace() != "ns" || k.SetName() != "set" {
		t.Fatalf("accessors = (%q, %q)", k.Namespace(), k.SetName())
	}
	if k.Value().GetObject() != "user" {
		t.Fatalf("Value = %v", k.Value())
	}
}
