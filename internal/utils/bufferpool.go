package utils

import (
	"github.com/valyala/bytebufferpool"
)

// BufferPool pools byte buffers for prompt assembly. bytebufferpool handles
// size-class management and anti-fragmentation.
type BufferPool struct {
	pool *bytebufferpool.Pool
}

// NewBufferPool creates a new buffer pool
func NewBufferPool() *BufferPool {
	return &BufferPool{pool: &bytebufferpool.Pool{}}
}

// Get retrieves a buffer from the pool
func (bp *BufferPool) Get() *bytebufferpool.ByteBuffer {
	return bp.pool.Get()
}

// Put returns a buffer to the pool
func (bp *BufferPool) Put(buf *bytebufferpool.ByteBuffer) {
	bp.pool.Put(buf)
}
