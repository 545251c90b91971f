package kestrel

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// Compressed payload layout: 8-byte big-endian uncompressed size, then a
// gzip stream. The size header lets the receiver allocate exactly once.

// CompressPayload compresses a packed command payload.
func CompressPayload(payload []byte) ([]byte, error) {
	var out bytes.Buffer
	var hdr [8]byte
	binary.BigEndian.PutUint64(hdr[:], uint64(len(payload)))
	out.Write(hdr[:])

	zw, err := gzip.NewWriterLevel(&out, gzip.BestSpeed)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(payload); err != nil {
		zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// DecompressPayload reverses CompressPayload, verifying the declared size.
func DecompressPayload(data []byte) ([]byte, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("compressed payload too short: %d bytes", len(data))
	}
	size := binary.BigEndian.Uint64(data[:8])

	zr, err := gzip.NewReader(bytes.NewReader(data[8:]))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	out := bytes.NewBuffer(make([]byte, 0, size))
	if _, err := io.Copy(out, zr); err != nil {
		return nil, err
	}
	if uint64(out.Len()) != size {
		return nil, fmt.Errorf("compressed payload declares %d bytes, got %d", size, out.Len())
	}
	return out.Bytes(), nil
}
