// pool.go - scratch buffers for Encode
package iso8583

import "sync"

var bufferPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, 0, 1024)
		return &buf
	},
}

func getBuffer() *[]byte {
	buf := bufferPool.Get().(*[]byte)
	*buf = (*buf)[:0]
	return buf
}

func putBuffer(buf *[]byte) {
	if cap(*buf) <= 8192 { // Don't pool huge buffers
		*buf = (*buf)[:0]
		bufferPool.Put(buf)
	}
}
