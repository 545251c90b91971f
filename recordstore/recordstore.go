// Package recordstore persists packed wire payloads keyed by record digest in
// an embedded Bolt database. It backs offline tooling and integration tests
// that capture encoded records and replay them through the codec.
package recordstore

import (
	"encoding/hex"
	"errors"
	"log/slog"

	"go.etcd.io/bbolt"

	kestrel "github.com/kestreldb/kestrel-go"
)

// ErrNotFound is returned by Get for a digest with no stored payload.
var ErrNotFound = errors.New("record not found")

var bucketRecords = []byte("records")

type Store struct {
	bdb    *bbolt.DB
	logger *slog.Logger
}

type Option func(*Store)

// WithLogger enables debug logging of store operations.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Open opens or creates the store file.
func Open(path string, opts ...Option) (*Store, error) {
	bdb, err := bbolt.Open(path, 0o644, nil)
	if err != nil {
		return nil, err
	}
	err = bdb.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRecords)
		return err
	})
	if err != nil {
		bdb.Close()
		return nil, err
	}
	s := &Store{bdb: bdb}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.bdb.Close()
}

// Put stores a packed payload under the key's digest, replacing any previous
// payload.
func (s *Store) Put(key *kestrel.Key, payload []byte) error {
	digest := key.Digest()
	err := s.bdb.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRecords).Put(digest, payload)
	})
	if err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.Debug("stored record",
			slog.String("digest", hex.EncodeToString(digest)),
			slog.Int("size", len(payload)))
	}
	return nil
}

// Get returns a copy of the payload stored under the key's digest.
func (s *Store) Get(key *kestrel.Key) ([]byte, error) {
	var payload []byte
	err := s.bdb.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketRecords).Get(key.Digest())
		if v == nil {
			return ErrNotFound
		}
		payload = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// Delete removes the payload stored under the key's digest, if any.
func (s *Store) Delete(key *kestrel.Key) error {
	return s.bdb.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRecords).Delete(key.Digest())
	})
}

// Each calls fn for every stored digest/payload pair in digest order.
// Returning an error from fn stops the iteration.
func (s *Store) Each(fn func(digest, payload []byte) error) error {
	return s.bdb.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRecords).ForEach(fn)
	})
}
