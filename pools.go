package kestrel

import "sync"

var packerPool = &sync.Pool{
	New: func() any {
		return &Packer{buf: make([]byte, 0, 1024)}
	},
}

func releasePacker(pk *Packer) {
	pk.Reset()
	packerPool.Put(pk)
}

var payloadBytesPool = &sync.Pool{
	New: func() any {
		return make([]byte, 0, 65536)
	},
}

func releasePayloadBytes(b []byte) {
	payloadBytesPool.Put(b[:0])
}
