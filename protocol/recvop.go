package protocol

import (
	"github.com/eapache/queue"
	"github.com/rs/zerolog"

	"github.com/xprotocol/mysqlx-engine/api"
	"github.com/xprotocol/mysqlx-engine/frame"
	"github.com/xprotocol/mysqlx-engine/messages"
	"github.com/xprotocol/mysqlx-engine/protoerr"
	"github.com/xprotocol/mysqlx-engine/registry"
	"github.com/xprotocol/mysqlx-engine/wire"
)

// HeaderAction is do_next_msg's verdict on a just-parsed header, before
// its payload is read.
type HeaderAction int

const (
	// Expected lets the frame proceed to the payload stage as usual.
	Expected HeaderAction = iota
	// Unexpected drains the payload without decoding it and ends the
	// RecvOp with a deferred UnexpectedMessage error.
	Unexpected
	// Stop ends the RecvOp's current stage without consuming the
	// payload at all; the header stays parsed so the next RecvOp
	// started on this engine resumes directly at the payload stage for
	// the same frame.
	Stop
)

// RecvVariant customizes a RecvOp's behavior past its first foreground
// message — the Go analogue of the C++ base's do_next_msg/
// do_process_next override points. Expect is consulted right after a
// header is parsed, before any payload is read; ProcessNext is
// consulted once a foreground message's typed callback has fired, and
// if it doesn't decide the sequence is over, NextMsg decides whether
// to issue another read.
type RecvVariant interface {
	// Expect whitelists msgType for the header just parsed. On a
	// FromServer RecvOp, Error and Notice are always Expected
	// regardless of what Expect returns for them; on FromClient they
	// are consulted like any other type, since the tag values collide
	// with real client messages.
	Expect(msgType wire.TypeTag) HeaderAction

	// ProcessNext inspects the message just dispatched and reports
	// whether this was the last one the RecvOp should deliver.
	ProcessNext(tag wire.TypeTag, msg any) (done bool)

	// NextMsg is consulted when ProcessNext returns false; it reports
	// whether the RecvOp should read another frame.
	NextMsg() bool
}

type recvStage int

const (
	stageHeader recvStage = iota
	stagePayload
	stageDispatch
	stageLoop
	stageDone
)

// RecvOp is a resumable, non-blocking receive of one or more dir-
// direction messages, dispatched through table into proc. It mirrors
// the teacher's WSConnection recv path (protocol/connection.go),
// reworked from a goroutine+channel loop into the single-threaded
// staged model original_source's Op_rcv/Protocol_impl drive through
// rd_cont()/rd_wait(): Header -> Payload -> Dispatch -> Loop-or-Done.
//
// On a FromServer RecvOp, Error and Notice frames never reach the
// registry: an Error always ends the RecvOp after reaching proc's
// ErrorProcessor (spec.md I5); a Notice is buffered and drained into
// proc's NoticeProcessor without ever counting as the op's foreground
// message (spec.md I6). Both are server->client-only (spec.md line
// 48), so a FromClient RecvOp routes the same tag values through the
// registry like any other client message instead.
type RecvOp struct {
	codec *frame.Codec
	dir   wire.Direction
	table *registry.Table
	proc  api.Processor

	variant RecvVariant
	notices *queue.Queue

	stage   recvStage
	err     error
	done    bool
	started bool

	// resumeAtPayload is set by the caller (Engine.RecvStart) when the
	// previous RecvOp on this stream ended via Stop: the codec already
	// holds a parsed header whose payload was never read, so this op
	// must begin there instead of reading a fresh header.
	resumeAtPayload bool

	// skip is set when Expect returns Unexpected for the current
	// header; the payload stage still reads it, but dispatch discards
	// it instead of decoding.
	skip bool

	// stoppedAtHeader records whether this op ended via Expect
	// returning Stop, for HeaderPending to report to the next RecvOp.
	stoppedAtHeader bool

	// maxNotices caps how many Notice frames this op will absorb
	// before it gives up waiting for a foreground message and fails
	// with protoerr.Oversize, per control.Config.RecvQueueLength.
	// 0 means unbounded.
	maxNotices  int
	noticeCount int

	log zerolog.Logger
}

// NewRecvOp creates a RecvOp. variant may be nil, in which case the op
// accepts any message type as the single foreground message it
// delivers before finishing. resumeAtPayload should be true only when
// the RecvOp it replaces on the same engine finished with
// HeaderPending() true. maxNotices caps how many Notice frames this
// op will absorb before its foreground message, per
// control.Config.RecvQueueLength; 0 leaves it unbounded. log is
// tagged with component "engine" by the caller; it logs stage
// transitions at Debug and deferred errors/ServerError deliveries at
// Warn/Error.
func NewRecvOp(codec *frame.Codec, dir wire.Direction, table *registry.Table, proc api.Processor, variant RecvVariant, resumeAtPayload bool, maxNotices int, log zerolog.Logger) *RecvOp {
	return &RecvOp{
		codec:           codec,
		dir:             dir,
		table:           table,
		proc:            proc,
		variant:         variant,
		notices:         queue.New(),
		resumeAtPayload: resumeAtPayload,
		maxNotices:      maxNotices,
		log:             log,
	}
}

// HeaderPending reports whether this (finished) RecvOp ended with a
// header parsed but its payload never read — the caller must start the
// next RecvOp with resumeAtPayload set to true.
func (r *RecvOp) HeaderPending() bool { return r.stoppedAtHeader }

// Cont advances the receive state machine without blocking. It returns
// true once the op has finished, successfully or with Err set.
func (r *RecvOp) Cont() bool {
	if r.done {
		return true
	}
	if !r.started {
		r.started = true
		if r.resumeAtPayload {
			if err := r.codec.ReadPayload(); err != nil {
				return r.fail(err)
			}
			r.stage = stagePayload
		} else {
			r.codec.ReadHeader()
			r.stage = stageHeader
		}
	}
	for {
		switch r.stage {
		case stageHeader:
			ok, err := r.codec.RdCont()
			if !ok {
				return false
			}
			if err != nil {
				return r.fail(err)
			}
			if err := r.codec.ParseHeader(); err != nil {
				return r.fail(err)
			}

			switch action := r.expect(r.codec.Header().Type); action {
			case Stop:
				r.log.Debug().Uint8("type", uint8(r.codec.Header().Type)).Msg("header stage: stop")
				r.stoppedAtHeader = true
				return r.finish()
			case Unexpected:
				r.log.Debug().Uint8("type", uint8(r.codec.Header().Type)).Msg("header stage: unexpected")
				r.skip = true
			}

			if err := r.codec.ReadPayload(); err != nil {
				return r.fail(err)
			}
			r.log.Debug().Msg("stage: payload")
			r.stage = stagePayload

		case stagePayload:
			ok, err := r.codec.RdCont()
			if !ok {
				return false
			}
			if err != nil {
				return r.fail(err)
			}
			r.log.Debug().Msg("stage: dispatch")
			r.stage = stageDispatch

		case stageDispatch:
			if !r.dispatch() {
				return r.done
			}

		case stageLoop:
			if r.loopAgain() {
				r.log.Debug().Msg("stage: loop")
				r.codec.ReadHeader()
				r.stage = stageHeader
				continue
			}
			return r.finish()

		case stageDone:
			return true
		}
	}
}

// Wait blocks until the receive completes.
func (r *RecvOp) Wait() {
	for !r.Cont() {
	}
}

// Err reports the terminal error, if any.
func (r *RecvOp) Err() error { return r.err }

func (r *RecvOp) fail(err error) bool {
	r.log.Warn().Err(err).Msg("recv op deferred error")
	r.err = err
	r.done = true
	r.stage = stageDone
	return true
}

func (r *RecvOp) finish() bool {
	r.done = true
	r.stage = stageDone
	return true
}

// expect consults the variant's header-stage whitelist for msgType.
// Error and Notice are server->client-only universal tags (spec.md
// line 48): they are always Expected on a FromServer RecvOp,
// regardless of the variant, but on a FromClient RecvOp they are just
// another registry-dispatched tag, since a real client message (e.g.
// ConnCapabilitiesGet, tag 1) can collide with Error's tag value. A
// nil variant accepts every other type too, matching a plain
// single-message RecvOp.
func (r *RecvOp) expect(msgType wire.TypeTag) HeaderAction {
	if r.dir == wire.FromServer && (msgType == wire.TagError || msgType == wire.TagNotice) {
		return Expected
	}
	if r.variant == nil {
		return Expected
	}
	return r.variant.Expect(msgType)
}

// dispatch handles one fully-read frame. It returns true to keep the
// Cont loop spinning (more work ready without blocking), false once
// the op either needs to block again or has finished.
func (r *RecvOp) dispatch() bool {
	hdr := r.codec.Header()
	payload := r.codec.Payload()

	if r.dir == wire.FromServer {
		switch hdr.Type {
		case wire.TagError:
			r.handleError(payload)
			return false
		case wire.TagNotice:
			return r.handleNotice(payload)
		}
	}

	if r.skip {
		r.skip = false
		r.fail(protoerr.UnexpectedMessage(uint8(hdr.Type)))
		return false
	}

	entry, ok := r.table.Lookup(r.dir, hdr.Type)
	if !ok {
		r.fail(protoerr.UnknownMessage(uint8(hdr.Type)))
		return false
	}

	msg, err := entry.Decode(payload)
	if err != nil {
		r.fail(protoerr.Decode(uint8(hdr.Type), err.Error()))
		return false
	}

	r.proc.MessageBegin(hdr.Type, hdr.PayloadLen)
	if rp, ok := r.proc.(api.RawPayloadProcessor); ok && rp.WantRawPayload(hdr.Type) {
		rp.RawPayload(hdr.Type, payload)
	} else if !entry.Dispatch(msg, r.proc) {
		r.fail(protoerr.UnexpectedMessage(uint8(hdr.Type)))
		return false
	}
	action := r.proc.MessageEnd()

	if action == api.Stop {
		r.finish()
		return false
	}

	stop := true
	if r.variant != nil {
		stop = r.variant.ProcessNext(hdr.Type, msg)
	}
	if stop {
		r.finish()
		return false
	}
	r.stage = stageLoop
	return true
}

func (r *RecvOp) loopAgain() bool {
	return r.variant != nil && r.variant.NextMsg()
}

// handleError decodes the universal Error frame, delivers it through
// proc's ErrorProcessor, and ends the RecvOp. Severity 0 is the wire
// "ERROR" value, anything else is treated as "FATAL" (SPEC_FULL.md
// §B.5 keeps the raw wire value available to callers that need it).
//
// Per spec.md §7, a ServerError is delivered through the callback only
// — it never becomes the op's terminal error, unlike every other
// failure in this file. finish() leaves r.err nil.
//
// ErrorProcessor is documented mandatory, but a processor missing it
// fails through the same deferred-error path as any other capability
// miss (registry.Table's Dispatch closures) rather than panicking.
func (r *RecvOp) handleError(payload []byte) {
	m := &messages.Error{}
	if err := m.Decode(payload); err != nil {
		r.fail(protoerr.Decode(uint8(wire.TagError), err.Error()))
		return
	}
	ep, ok := r.proc.(api.ErrorProcessor)
	if !ok {
		r.fail(protoerr.UnexpectedMessage(uint8(wire.TagError)))
		return
	}
	sev := api.SeverityError
	if m.Severity != 0 {
		sev = api.SeverityFatal
	}
	r.log.Error().Uint32("code", m.Code).Str("sql_state", m.SQLState).Msg(m.Msg)
	ep.Error(m.Code, sev, m.SQLState, m.Msg)
	r.finish()
}

// handleNotice decodes one Notice frame, delivers it through proc's
// NoticeProcessor, and resumes reading — a Notice never becomes the
// RecvOp's foreground message.
func (r *RecvOp) handleNotice(payload []byte) bool {
	m := &messages.NoticeFrame{}
	if err := m.Decode(payload); err != nil {
		r.fail(protoerr.Decode(uint8(wire.TagNotice), err.Error()))
		return false
	}
	r.noticeCount++
	if r.maxNotices > 0 && r.noticeCount > r.maxNotices {
		r.fail(protoerr.Oversize())
		return false
	}
	r.notices.Add(m)
	if !r.drainNotices() {
		return false
	}

	r.codec.ReadHeader()
	r.stage = stageHeader
	return true
}

// drainNotices delivers every buffered notice in arrival order. Frames
// can arrive back to back faster than the processor is consulted, so
// they are queued (github.com/eapache/queue, the teacher's own
// declared-but-previously-unused dependency) rather than delivered one
// at a time off the stack.
//
// NoticeProcessor is documented mandatory, but a processor missing it
// fails through the same deferred-error path as any other capability
// miss rather than panicking.
func (r *RecvOp) drainNotices() bool {
	np, ok := r.proc.(api.NoticeProcessor)
	if !ok {
		r.fail(protoerr.UnexpectedMessage(uint8(wire.TagNotice)))
		return false
	}
	for r.notices.Length() > 0 {
		m := r.notices.Remove().(*messages.NoticeFrame)
		np.Notice(m.Type, int16(m.Scope), m.Payload)
	}
	return true
}
