package frame

import (
	"encoding/binary"
	"io"

	"github.com/rs/zerolog"

	"github.com/xprotocol/mysqlx-engine/api"
	"github.com/xprotocol/mysqlx-engine/protoerr"
	"github.com/xprotocol/mysqlx-engine/wire"
)

// Header is the 5-byte frame header: little-endian size (including the
// type tag byte) followed by the type tag.
type Header struct {
	Type       wire.TypeTag
	PayloadLen int // size - 1
}

// Codec owns the raw read/write buffers for one stream and drives
// header/payload framing per spec.md §4.1. It has no notion of stages
// or messages beyond raw bytes; RecvOp/SendOp sequence the calls below.
type Codec struct {
	stream   api.Stream
	maxFrame int64
	log      zerolog.Logger

	hdrBuf [wire.HeaderLength]byte
	rdBuf  *growBuf
	rdOp   api.Op
	hdr    Header

	wrBuf *growBuf
	wrOp  api.Op
	wrLen int
}

// New wraps a stream with a fresh codec. Buffers start at
// limits.InitialBufBytes and grow on demand (never shrink) up to
// limits.MaxFrameBytes, which itself can never exceed wire.MaxFrame.
// log is tagged with component "frame" by the caller (typically
// xlog.New("frame", ...)); a zerolog.Nop() logger disables every call
// below at no more than zerolog's own no-op cost.
func New(s api.Stream, limits wire.Limits, log zerolog.Logger) *Codec {
	maxFrame := limits.MaxFrameBytes
	if maxFrame <= 0 || maxFrame > wire.MaxFrame {
		maxFrame = wire.MaxFrame
	}
	return &Codec{
		stream:   s,
		maxFrame: maxFrame,
		log:      log,
		rdBuf:    newGrowBuf(limits.InitialBufBytes, int(maxFrame)),
		wrBuf:    newGrowBuf(limits.InitialBufBytes, int(maxFrame)),
	}
}

// ReadHeader begins an asynchronous read of exactly wire.HeaderLength
// bytes. Call RdCont (or RdWait) to drive it to completion, then Header
// to retrieve the parsed result.
func (c *Codec) ReadHeader() {
	c.log.Debug().Msg("read header")
	c.rdOp = c.stream.Read(c.hdrBuf[:])
}

// RdCont advances the in-flight read (header or payload). Returns true
// once the operation is complete; err is non-nil on failure, including
// a framing error detected after a header read completes.
func (c *Codec) RdCont() (done bool, err error) {
	if !c.rdOp.Cont() {
		return false, nil
	}
	return true, c.finishRead()
}

// RdWait blocks until the in-flight read completes.
func (c *Codec) RdWait() error {
	c.rdOp.Wait()
	return c.finishRead()
}

func (c *Codec) finishRead() error {
	if err := c.rdOp.Err(); err != nil {
		if err == io.EOF {
			c.log.Debug().Msg("read hit eos")
			return protoerr.Eos
		}
		c.log.Warn().Err(err).Msg("read failed")
		return protoerr.Wrap(err)
	}
	return nil
}

// ParseHeader must be called once ReadHeader's op has completed
// successfully. It validates and stores the frame's type/size.
func (c *Codec) ParseHeader() error {
	size := binary.LittleEndian.Uint32(c.hdrBuf[0:4])
	if size == 0 || int64(size) > c.maxFrame {
		c.log.Warn().Uint32("size", size).Msg("oversize or empty frame")
		return protoerr.Oversize()
	}
	c.hdr = Header{
		Type:       wire.TypeTag(c.hdrBuf[4]),
		PayloadLen: int(size) - 1,
	}
	c.log.Debug().Uint8("type", uint8(c.hdr.Type)).Int("payload_len", c.hdr.PayloadLen).Msg("parsed header")
	return nil
}

// Header returns the most recently parsed header.
func (c *Codec) Header() Header { return c.hdr }

// ReadPayload begins an asynchronous read of exactly the current
// header's PayloadLen bytes into the growable read buffer.
func (c *Codec) ReadPayload() error {
	if !c.rdBuf.ensure(c.hdr.PayloadLen) {
		c.log.Warn().Int("payload_len", c.hdr.PayloadLen).Msg("payload exceeds max frame bytes")
		return protoerr.Oversize()
	}
	c.log.Debug().Int("payload_len", c.hdr.PayloadLen).Msg("read payload")
	c.rdOp = c.stream.Read(c.rdBuf.bytes(c.hdr.PayloadLen))
	return nil
}

// Payload returns the bytes read by the most recently completed
// ReadPayload call.
func (c *Codec) Payload() []byte {
	return c.rdBuf.bytes(c.hdr.PayloadLen)
}

// Write serializes a pre-encoded payload into the write buffer, framed
// with a header for the given type, and begins the asynchronous send.
// payload must already be the wire-format bytes for the message (the
// caller encodes it, typically with that messages type's Encode).
func (c *Codec) Write(msgType wire.TypeTag, payload []byte) error {
	total := wire.HeaderLength + len(payload)
	if int64(len(payload)+1) > c.maxFrame {
		c.log.Warn().Uint8("type", uint8(msgType)).Int("payload_len", len(payload)).Msg("refusing to write oversize frame")
		return protoerr.Oversize()
	}
	if !c.wrBuf.ensure(total) {
		c.log.Warn().Int("total", total).Msg("write buffer cannot grow to fit frame")
		return protoerr.Oversize()
	}
	buf := c.wrBuf.bytes(total)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(payload)+1))
	buf[4] = byte(msgType)
	copy(buf[wire.HeaderLength:], payload)

	c.wrLen = total
	c.log.Debug().Uint8("type", uint8(msgType)).Int("payload_len", len(payload)).Msg("write frame")
	c.wrOp = c.stream.Write(buf)
	return nil
}

// WrCont advances the in-flight write. Returns true once complete.
func (c *Codec) WrCont() (done bool, err error) {
	if !c.wrOp.Cont() {
		return false, nil
	}
	return true, c.finishWrite()
}

// WrWait blocks until the in-flight write completes.
func (c *Codec) WrWait() error {
	c.wrOp.Wait()
	return c.finishWrite()
}

func (c *Codec) finishWrite() error {
	if err := c.wrOp.Err(); err != nil {
		c.log.Warn().Err(err).Msg("write failed")
		return protoerr.Wrap(err)
	}
	return nil
}
