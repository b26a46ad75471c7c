package protocol

import (
	"github.com/xprotocol/mysqlx-engine/frame"
	"github.com/xprotocol/mysqlx-engine/wire"
)

// SendOp is a resumable, non-blocking send of one framed message. It
// mirrors RecvOp's shape but has only one stage: the codec already
// does the framing, SendOp just drives the write to completion.
type SendOp struct {
	codec   *frame.Codec
	done    bool
	err     error
	wireLen int
}

// NewSendOp frames msgType/payload into codec's write buffer and
// returns a SendOp ready to drive. Framing happens eagerly so that a
// caller who never calls Cont still gets an immediate error report
// from Err for an oversize payload.
func NewSendOp(codec *frame.Codec, msgType wire.TypeTag, payload []byte) *SendOp {
	op := &SendOp{codec: codec, wireLen: wire.HeaderLength + len(payload)}
	if err := codec.Write(msgType, payload); err != nil {
		op.err = err
		op.done = true
	}
	return op
}

// Cont advances the in-flight write without blocking.
func (s *SendOp) Cont() bool {
	if s.done {
		return true
	}
	ok, err := s.codec.WrCont()
	if !ok {
		return false
	}
	s.done = true
	s.err = err
	return true
}

// Wait blocks until the write completes.
func (s *SendOp) Wait() {
	if s.done {
		return
	}
	s.err = s.codec.WrWait()
	s.done = true
}

// Err reports the terminal error, if any.
func (s *SendOp) Err() error { return s.err }

// WireLen reports how many bytes this send puts on the wire, header
// included, regardless of whether it has completed yet.
func (s *SendOp) WireLen() int { return s.wireLen }
