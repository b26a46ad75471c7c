// Package frame implements the 5-byte frame header codec and the
// growable read/write buffers backing one ProtocolEngine's stream.
//
// Grounded on the teacher's pool/bufferpool.go (a pool-per-key manager
// keyed by NUMA node), collapsed to the single monotonically-growing
// buffer spec.md §3 "Buffers" describes: no NUMA concern applies to a
// fixed-role send/receive pair owned by exactly one engine.
package frame

// growBuf is a byte buffer that grows on demand, never shrinks within
// a connection's lifetime, and refuses to grow past maxCap.
type growBuf struct {
	data   []byte
	maxCap int
}

func newGrowBuf(initialCap, maxCap int) *growBuf {
	if initialCap > maxCap {
		initialCap = maxCap
	}
	return &growBuf{data: make([]byte, initialCap), maxCap: maxCap}
}

// ensure grows the buffer so it can hold at least n bytes, returning
// false if n exceeds the buffer's maxCap.
func (b *growBuf) ensure(n int) bool {
	if n > b.maxCap {
		return false
	}
	if cap(b.data) >= n {
		if len(b.data) < n {
			b.data = b.data[:n]
		}
		return true
	}
	newCap := cap(b.data)
	if newCap == 0 {
		newCap = 1
	}
	for newCap < n {
		newCap *= 2
		if newCap > b.maxCap {
			newCap = b.maxCap
		}
	}
	grown := make([]byte, n, newCap)
	copy(grown, b.data)
	b.data = grown
	return true
}

// bytes returns the first n bytes of the buffer.
func (b *growBuf) bytes(n int) []byte {
	return b.data[:n]
}
