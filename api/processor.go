package api

import "github.com/xprotocol/mysqlx-engine/wire"

// MessageEndAction is returned from Processor.MessageEnd to tell the
// receive state machine whether to keep pumping the current RecvOp.
type MessageEndAction int

const (
	// Continue lets the RecvOp proceed to process_next() as usual.
	Continue MessageEndAction = iota
	// Stop ends the RecvOp's current stage immediately, regardless of
	// what process_next()/do_process_next() would have decided.
	Stop
)

// Severity mirrors the wire severities an Error frame can carry.
type Severity int

const (
	SeverityError Severity = iota
	SeverityFatal
)

// Processor is the base capability every caller-supplied message sink
// must implement. Specialized per-message capabilities are declared in
// the messages package and discovered by the registry's dispatch
// thunks via type assertion against the same object.
type Processor interface {
	// MessageBegin announces a decoded frame's type tag and payload
	// size, before any typed callback for it fires.
	MessageBegin(tag wire.TypeTag, size int)

	// MessageEnd fires after the typed callback (or raw payload) for
	// the current frame has been delivered.
	MessageEnd() MessageEndAction
}

// RawPayloadProcessor is an optional capability: if a Processor
// implements it and WantRawPayload returns true for the given tag, the
// RecvOp hands over the raw undecoded payload instead of invoking the
// registry's typed dispatch thunk.
type RawPayloadProcessor interface {
	WantRawPayload(tag wire.TypeTag) bool
	RawPayload(tag wire.TypeTag, payload []byte)
}

// ErrorProcessor receives the universal Error frame on a FromServer
// RecvOp (spec.md line 48; on a FromClient RecvOp, tag 1 is
// ConnCapabilitiesGet instead, never Error). Every client-role
// (FromServer) processor is expected to implement this, since spec.md I5 requires
// an error to always reach a callback; a processor that doesn't ends
// the RecvOp with a deferred protoerr.UnexpectedMessage rather than
// panicking.
type ErrorProcessor interface {
	Error(code uint32, severity Severity, sqlState string, message string)
}

// NoticeProcessor receives every Notice frame seen between foreground
// messages on a FromServer RecvOp. Like ErrorProcessor, a
// client-role processor is expected to implement this, and a missing
// implementation fails the same deferred way instead of panicking.
type NoticeProcessor interface {
	Notice(noticeType uint32, scope int16, payload []byte)
}
