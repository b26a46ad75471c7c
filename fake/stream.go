// Package fake provides controllable test doubles for api.Stream,
// mirroring the teacher's fake/transport.go: predictable, inspectable
// behavior with injectable errors, generalized from whole-buffer
// Send/Recv to a byte stream that can deliver reads in caller-chosen
// chunk sizes (spec.md §8 scenario 5, fragmented reads).
package fake

import (
	"io"
	"sync"

	"github.com/xprotocol/mysqlx-engine/api"
)

// Stream is a fake api.Stream backed by an in-memory byte queue.
type Stream struct {
	mu sync.Mutex

	toRead    []byte
	readPos   int
	chunkSize int // 0 means "as much as available"

	written []byte

	readErr  error // returned once all buffered bytes are exhausted
	writeErr error

	closed bool
}

// NewStream creates an empty fake stream.
func NewStream() *Stream {
	return &Stream{}
}

// Feed appends bytes that future Read calls will consume.
func (s *Stream) Feed(b []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toRead = append(s.toRead, b...)
}

// SetChunkSize bounds how many bytes a single Cont() step of a Read op
// delivers; 0 (the default) delivers everything available at once.
func (s *Stream) SetChunkSize(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunkSize = n
}

// SetReadErr makes reads fail with err once buffered data is exhausted.
// Pass io.EOF to simulate a clean stream close mid-frame.
func (s *Stream) SetReadErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readErr = err
}

// SetWriteErr makes all future writes fail with err.
func (s *Stream) SetWriteErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeErr = err
}

// WrittenBytes returns everything written to this stream so far.
func (s *Stream) WrittenBytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]byte, len(s.written))
	copy(out, s.written)
	return out
}

// Offset returns how many bytes have been consumed by Read so far.
func (s *Stream) Offset() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readPos
}

// Read implements api.Stream.
func (s *Stream) Read(buf []byte) api.Op {
	return &readOp{s: s, buf: buf}
}

// Write implements api.Stream.
func (s *Stream) Write(buf []byte) api.Op {
	return &writeOp{s: s, buf: buf}
}

// Close implements api.Stream.
func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

type readOp struct {
	s    *Stream
	buf  []byte
	done int
	err  error
}

func (op *readOp) Cont() bool {
	if op.err != nil {
		return true
	}
	op.s.mu.Lock()
	defer op.s.mu.Unlock()

	avail := len(op.s.toRead) - op.s.readPos
	want := len(op.buf) - op.done
	if avail == 0 {
		if want > 0 {
			if op.s.readErr != nil {
				op.err = op.s.readErr
				return true
			}
			return false // nothing to deliver yet, caller should Cont() again later
		}
		return true
	}

	n := want
	if op.s.chunkSize > 0 && op.s.chunkSize < n {
		n = op.s.chunkSize
	}
	if n > avail {
		n = avail
	}
	copy(op.buf[op.done:op.done+n], op.s.toRead[op.s.readPos:op.s.readPos+n])
	op.s.readPos += n
	op.done += n

	if op.done == len(op.buf) {
		return true
	}
	return false
}

func (op *readOp) Wait() {
	for !op.Cont() {
	}
}

func (op *readOp) Err() error {
	if op.err != nil {
		return op.err
	}
	if op.done < len(op.buf) {
		return io.ErrUnexpectedEOF
	}
	return nil
}

type writeOp struct {
	s   *Stream
	buf []byte
	err error
	ran bool
}

func (op *writeOp) Cont() bool {
	if op.ran {
		return true
	}
	op.ran = true
	op.s.mu.Lock()
	defer op.s.mu.Unlock()
	if op.s.writeErr != nil {
		op.err = op.s.writeErr
		return true
	}
	op.s.written = append(op.s.written, op.buf...)
	return true
}

func (op *writeOp) Wait() { op.Cont() }

func (op *writeOp) Err() error { return op.err }
