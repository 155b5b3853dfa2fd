package handler

import (
	"bytes"
	"sync"
)

const (
	// encodeBufferSize fits a profile view or a single claim result
	encodeBufferSize = 1 << 10
	// maxPooledBuffer keeps large catalogue listings from pinning memory in the pool
	maxPooledBuffer = 64 << 10
)

var encodeBuffers = sync.Pool{
	New: func() any { return bytes.NewBuffer(make([]byte, 0, encodeBufferSize)) },
}

func getBuffer() *bytes.Buffer {
	return encodeBuffers.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBuffer {
		return
	}
	buf.Reset()
	encodeBuffers.Put(buf)
}
