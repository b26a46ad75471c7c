// Package protoerr defines the closed set of error kinds the protocol
// engine can raise (spec.md §7) plus one constructor per kind, which
// RecvOp, SendOp and the frame codec use to build the error a stage
// failure surfaces at the next pump call.
//
// Grounded on the teacher's api/errors.go (ErrorCode + Error), widened
// from a flat code/message/context triple to the closed Kind table.
package protoerr

import (
	"errors"
	"fmt"
	"io"
)

// Kind is the closed set of error kinds from spec.md §7.
type Kind int

const (
	KindUnknown Kind = iota
	KindEos
	KindIo
	KindFrame
	KindOversize
	KindUnknownMessage
	KindUnexpectedMessage
	KindDecode
	KindServerError
	KindBusy
)

func (k Kind) String() string {
	switch k {
	case KindEos:
		return "eos"
	case KindIo:
		return "io"
	case KindFrame:
		return "frame"
	case KindOversize:
		return "oversize"
	case KindUnknownMessage:
		return "unknown-message"
	case KindUnexpectedMessage:
		return "unexpected-message"
	case KindDecode:
		return "decode"
	case KindServerError:
		return "server-error"
	case KindBusy:
		return "busy"
	default:
		return "unknown"
	}
}

// Error is the concrete error type every Kind above is wrapped in.
type Error struct {
	Kind Kind

	// Type carries the message type tag for Unknown/Unexpected/Decode.
	Type uint8

	// Code, SQLState and Message carry a ServerError's payload.
	Code     uint32
	SQLState string
	Message  string

	// Reason carries a Decode failure's human-readable cause.
	Reason string

	cause error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindUnknownMessage:
		return fmt.Sprintf("protoerr: unknown message type %d", e.Type)
	case KindUnexpectedMessage:
		return fmt.Sprintf("protoerr: unexpected message type %d", e.Type)
	case KindDecode:
		return fmt.Sprintf("protoerr: decode failed for type %d: %s", e.Type, e.Reason)
	case KindServerError:
		return fmt.Sprintf("protoerr: server error %d (%s): %s", e.Code, e.SQLState, e.Message)
	case KindOversize:
		return "protoerr: frame exceeds maximum size"
	case KindFrame:
		return "protoerr: malformed frame"
	case KindBusy:
		return "protoerr: send already in flight"
	case KindEos:
		return "protoerr: stream ended mid-frame"
	case KindIo:
		if e.cause != nil {
			return fmt.Sprintf("protoerr: io error: %v", e.cause)
		}
		return "protoerr: io error"
	default:
		return "protoerr: unknown error"
	}
}

func (e *Error) Unwrap() error { return e.cause }

// Is lets errors.Is match on Kind alone, so callers can write
// errors.Is(err, protoerr.Busy) without caring about the other fields.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	// Sentinel values (below) carry no type/code/message; a sentinel
	// matches any concrete error of the same Kind.
	return t.Type == 0 && t.Code == 0 && t.SQLState == "" && t.Message == ""
}

// Sentinels for errors.Is comparisons against a bare Kind.
var (
	Eos  = &Error{Kind: KindEos}
	Busy = &Error{Kind: KindBusy}
)

// Wrap produces a KindIo error wrapping a lower-level stream failure,
// or Eos if cause is io.EOF-equivalent (callers pass io.EOF directly
// when the stream reports it).
func Wrap(cause error) *Error {
	if cause == nil {
		return nil
	}
	if errors.Is(cause, io.EOF) {
		return Eos
	}
	return &Error{Kind: KindIo, cause: cause}
}

func Framef(format string, args ...any) *Error {
	return &Error{Kind: KindFrame, Message: fmt.Sprintf(format, args...)}
}

func Oversize() *Error {
	return &Error{Kind: KindOversize}
}

func UnknownMessage(tag uint8) *Error {
	return &Error{Kind: KindUnknownMessage, Type: tag}
}

func UnexpectedMessage(tag uint8) *Error {
	return &Error{Kind: KindUnexpectedMessage, Type: tag}
}

func Decode(tag uint8, reason string) *Error {
	return &Error{Kind: KindDecode, Type: tag, Reason: reason}
}

func ServerError(code uint32, sqlState, message string) *Error {
	return &Error{Kind: KindServerError, Code: code, SQLState: sqlState, Message: message}
}

// As is a thin wrapper over errors.As for *Error, convenient at call
// sites that need the structured fields rather than a string match.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
