// Package pool provides sync.Pool backed buffers for the hot paths: pty
// reads and per-frame string building.
package pool

import (
	"strings"
	"sync"
)

// ByteSliceSize is the length of slices handed out by GetByteSlice.
const ByteSliceSize = 32 * 1024

var byteSlicePool = sync.Pool{
	New: func() any {
		b := make([]byte, ByteSliceSize)
		return &b
	},
}

var stringBuilderPool = sync.Pool{
	New: func() any {
		return &strings.Builder{}
	},
}

// GetByteSlice returns a ByteSliceSize byte slice from the pool.
func GetByteSlice() *[]byte {
	return byteSlicePool.Get().(*[]byte)
}

// PutByteSlice returns a slice to the pool. Slices of the wrong size are
// dropped.
func PutByteSlice(b *[]byte) {
	if b == nil || len(*b) != ByteSliceSize {
		return
	}
	byteSlicePool.Put(b)
}

// GetStringBuilder returns an empty builder from the pool.
func GetStringBuilder() *strings.Builder {
	return stringBuilderPool.Get().(*strings.Builder)
}

// PutStringBuilder resets sb and returns it to the pool.
func PutStringBuilder(sb *strings.Builder) {
	if sb == nil {
		return
	}
	sb.Reset()
	stringBuilderPool.Put(sb)
}
