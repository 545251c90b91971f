package kestrel

import (
	"errors"
	"fmt"
)

// ErrNotStorable is returned when a value that only exists for expression
// trees (wildcard, infinity) is written as record data.
var ErrNotStorable = errors.New("value is not storable")

// ParseError reports a wire-format decode failure: an unrecognized or
// unexpected byte code at a given cursor position. The usual real-world cause
// is format version skew between client and server.
type ParseError struct {
	Data []byte
	Off  int
	Code byte
	Err  error
	Msg  string
}

func parseErrf(data []byte, off int, code byte, err error, format string, args ...any) error {
	return &ParseError{data, off, code, err, fmt.Sprintf(format, args...)}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Error() string {
	const prefixLen = 64
	const suffixLen = 32
	n := len(e.Data)
	head := fmt.Sprintf("%s: code 0x%02x at offset %d", e.Msg, e.Code, e.Off)
	if e.Err != nil {
		head = fmt.Sprintf("%s: %v", head, e.Err)
	}
	if n <= prefixLen+suffixLen {
		return fmt.Sprintf("%s: (%d) %x", head, n, e.Data)
	}
	p, s := e.Data[:prefixLen], e.Data[n-suffixLen:]
	return fmt.Sprintf("%s: (%d) %x...%x", head, n, p, s)
}
