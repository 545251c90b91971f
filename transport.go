package kestrel

import "context"

// Transport delivers packed command payloads to a cluster node and returns
// the raw response bytes. Implementations (TCP, TLS, proxy) live outside this
// package; the codec consumes them only as "bytes out, bytes in".
type Transport interface {
	// Exchange sends one packed request and returns the response payload.
	Exchange(ctx context.Context, request []byte) (response []byte, err error)

	// Close releases the underlying connection resources.
	Close() error
}

// BufferProvider lets the surrounding system pool the byte buffers the codec
// writes into. Implementations must return a buffer of at least minSize
// capacity; Return may be a no-op.
type BufferProvider interface {
	Borrow(minSize int) []byte
	Return(buf []byte)
}
