package protocol

import (
	"sync/atomic"

	"github.com/eapache/queue"
	"github.com/rs/zerolog"

	"github.com/xprotocol/mysqlx-engine/api"
	"github.com/xprotocol/mysqlx-engine/frame"
	"github.com/xprotocol/mysqlx-engine/protoerr"
	"github.com/xprotocol/mysqlx-engine/registry"
	"github.com/xprotocol/mysqlx-engine/wire"
)

// pendingSend is one queued TrySend call, held until the in-flight
// SendOp (if any) completes.
type pendingSend struct {
	msgType wire.TypeTag
	payload []byte
}

// Engine owns one stream plus at most one SendOp and one RecvOp at a
// time, the role the teacher's WSConnection plays for one WebSocket
// session (protocol/connection.go). Unlike WSConnection, which runs
// its own recv/send goroutines over channels, Engine is driven
// cooperatively: a caller repeatedly calls PumpSend/PumpRecv (or the
// blocking Wait variants) from its own loop, matching the staged
// Cont()/Wait() model the rest of this package uses.
type Engine struct {
	stream api.Stream
	codec  *frame.Codec
	dir    wire.Direction
	table  *registry.Table
	limits wire.Limits
	log    zerolog.Logger

	recvOp *RecvOp

	sendOp     *SendOp
	pending    *queue.Queue
	maxPending int

	closed int32

	bytesSent  int64
	bytesRecv  int64
	framesSent int64
	framesRecv int64
}

// New creates an Engine bound to stream, receiving dir-direction
// messages dispatched through table. table is typically
// registry.Default, but callers that only need a subset of message
// types may pass their own. limits bounds the codec's buffer growth
// and this engine's notice/pending-send queue depth; callers with no
// loaded control.Config can pass wire.DefaultLimits(). engineLog and
// frameLog are tagged with component "engine" and "frame"
// respectively by the caller (typically xlog.New); a zerolog.Nop()
// logger silences either one.
func New(stream api.Stream, dir wire.Direction, table *registry.Table, limits wire.Limits, engineLog, frameLog zerolog.Logger) *Engine {
	return &Engine{
		stream:     stream,
		codec:      frame.New(stream, limits, frameLog),
		dir:        dir,
		table:      table,
		pending:    queue.New(),
		maxPending: limits.QueueLength,
		limits:     limits,
		log:        engineLog,
	}
}

// RecvStart begins a new receive, per spec.md §4.5 at most one RecvOp
// may be outstanding at a time. If the previous RecvOp on this engine
// ended with HeaderPending() true (its variant's Expect returned Stop
// before the payload was read), the new RecvOp resumes directly at the
// payload stage for that same frame instead of reading a fresh header.
func (e *Engine) RecvStart(proc api.Processor, variant RecvVariant) (*RecvOp, error) {
	if e.recvOp != nil && !e.recvOp.done {
		e.log.Warn().Msg("recv start rejected: busy")
		return nil, protoerr.Busy
	}
	resume := e.recvOp != nil && e.recvOp.HeaderPending()
	e.log.Debug().Bool("resume", resume).Msg("recv start")
	e.recvOp = NewRecvOp(e.codec, e.dir, e.table, proc, variant, resume, e.limits.QueueLength, e.log)
	return e.recvOp, nil
}

// PumpRecv advances the current RecvOp one step. It panics if no
// RecvOp has been started — callers are expected to check RecvStart's
// error first.
func (e *Engine) PumpRecv() (done bool, err error) {
	done = e.recvOp.Cont()
	if done {
		err = e.recvOp.Err()
		if err == nil {
			atomic.AddInt64(&e.framesRecv, 1)
			atomic.AddInt64(&e.bytesRecv, int64(wire.HeaderLength+e.codec.Header().PayloadLen))
		}
	}
	return done, err
}

// SendStart begins a new send of one framed message, returning its
// SendOp for the caller to pump. Per spec.md §4.5, at most one SendOp
// may be in flight at a time: if one already is, SendStart fails with
// protoerr.Busy and the caller must drive it to completion (or use
// TrySend to queue instead) before starting the next.
func (e *Engine) SendStart(msgType wire.TypeTag, payload []byte) (*SendOp, error) {
	if e.sendOp != nil && !e.sendOp.done {
		e.log.Warn().Msg("send start rejected: busy")
		return nil, protoerr.Busy
	}
	e.log.Debug().Uint8("type", uint8(msgType)).Msg("send start")
	e.sendOp = NewSendOp(e.codec, msgType, payload)
	return e.sendOp, nil
}

// TrySend is SendStart's queuing convenience: it starts the send if the
// engine is idle, or queues it behind the in-flight SendOp otherwise,
// without exposing a SendOp the caller would have to pump by hand for
// a fire-and-forget message. It returns false if stream is known to
// be closed, or if the pending queue is already at its
// limits.QueueLength depth; it never fails with Busy, unlike
// SendStart.
func (e *Engine) TrySend(msgType wire.TypeTag, payload []byte) bool {
	if atomic.LoadInt32(&e.closed) == 1 {
		return false
	}
	if _, err := e.SendStart(msgType, payload); err != nil {
		if e.maxPending > 0 && e.pending.Length() >= e.maxPending {
			e.log.Warn().Msg("try send refused: pending queue full")
			return false
		}
		e.log.Debug().Uint8("type", uint8(msgType)).Msg("try send queued")
		e.pending.Add(&pendingSend{msgType: msgType, payload: payload})
	}
	return true
}

// PumpSend advances the current SendOp one step, promoting the next
// queued send (if any) once the current one finishes. It reports
// (true, nil) when the engine has nothing left in flight or queued.
func (e *Engine) PumpSend() (done bool, err error) {
	if e.sendOp == nil {
		return true, nil
	}
	if !e.sendOp.Cont() {
		return false, nil
	}
	err = e.sendOp.Err()
	if err == nil {
		atomic.AddInt64(&e.framesSent, 1)
		atomic.AddInt64(&e.bytesSent, int64(e.sendOp.WireLen()))
	}
	e.promoteNextSend()
	return e.sendOp == nil, err
}

func (e *Engine) promoteNextSend() {
	if e.pending.Length() == 0 {
		e.sendOp = nil
		return
	}
	next := e.pending.Remove().(*pendingSend)
	e.sendOp = NewSendOp(e.codec, next.msgType, next.payload)
}

// Close releases the underlying stream. Outstanding ops are abandoned.
func (e *Engine) Close() error {
	if !atomic.CompareAndSwapInt32(&e.closed, 0, 1) {
		return nil
	}
	e.log.Debug().Msg("engine close")
	return e.stream.Close()
}

// Stats returns a snapshot of frame/byte counters, mirroring the
// teacher's WSConnection.GetStats.
func (e *Engine) Stats() map[string]int64 {
	return map[string]int64{
		"frames_sent":     atomic.LoadInt64(&e.framesSent),
		"frames_received": atomic.LoadInt64(&e.framesRecv),
		"bytes_sent":      atomic.LoadInt64(&e.bytesSent),
		"bytes_received":  atomic.LoadInt64(&e.bytesRecv),
	}
}
