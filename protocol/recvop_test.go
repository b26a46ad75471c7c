package protocol

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/xprotocol/mysqlx-engine/api"
	"github.com/xprotocol/mysqlx-engine/fake"
	"github.com/xprotocol/mysqlx-engine/frame"
	"github.com/xprotocol/mysqlx-engine/messages"
	"github.com/xprotocol/mysqlx-engine/protoerr"
	"github.com/xprotocol/mysqlx-engine/registry"
	"github.com/xprotocol/mysqlx-engine/wire"
)

// recorder is a minimal api.Processor that records everything handed
// to it, for assertions. It implements every optional capability this
// package's tests exercise.
type recorder struct {
	oks       []*messages.Ok
	rows      []*messages.Row
	notices   []noticeRecord
	errs      []errRecord
	capsGets  int
	begins    []wire.TypeTag
	ends      int
	stopAt    wire.TypeTag // only consulted when stopAtSet is true
	stopAtSet bool
}

type noticeRecord struct {
	typ     uint32
	scope   int16
	payload []byte
}

type errRecord struct {
	code     uint32
	severity api.Severity
	sqlState string
	message  string
}

func (r *recorder) MessageBegin(tag wire.TypeTag, size int) { r.begins = append(r.begins, tag) }

func (r *recorder) MessageEnd() api.MessageEndAction {
	r.ends++
	if r.stopAtSet && len(r.begins) > 0 && r.begins[len(r.begins)-1] == r.stopAt {
		return api.Stop
	}
	return api.Continue
}

func (r *recorder) Error(code uint32, severity api.Severity, sqlState, message string) {
	r.errs = append(r.errs, errRecord{code, severity, sqlState, message})
}

func (r *recorder) Notice(typ uint32, scope int16, payload []byte) {
	r.notices = append(r.notices, noticeRecord{typ, scope, payload})
}

func (r *recorder) Ok(m *messages.Ok) { r.oks = append(r.oks, m) }

func (r *recorder) Row(m *messages.Row) { r.rows = append(r.rows, m) }

func (r *recorder) ConnCapabilitiesGet(m *messages.ConnCapabilitiesGet) { r.capsGets++ }

func feedFrame(s *fake.Stream, tag wire.TypeTag, payload []byte) {
	hdr := []byte{0, 0, 0, 0, byte(tag)}
	size := uint32(len(payload) + 1)
	hdr[0] = byte(size)
	hdr[1] = byte(size >> 8)
	hdr[2] = byte(size >> 16)
	hdr[3] = byte(size >> 24)
	s.Feed(hdr)
	s.Feed(payload)
}

func TestRecvOpSingleOk(t *testing.T) {
	s := fake.NewStream()
	feedFrame(s, wire.TagOk, (&messages.Ok{Msg: "done"}).Encode())

	proc := &recorder{}
	op := NewRecvOp(frame.New(s, wire.DefaultLimits(), zerolog.Nop()), wire.FromServer, registry.Default, proc, nil, false, 0, zerolog.Nop())
	op.Wait()

	if err := op.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(proc.oks) != 1 || proc.oks[0].Msg != "done" {
		t.Fatalf("oks = %+v", proc.oks)
	}
	if proc.ends != 1 {
		t.Fatalf("ends = %d, want 1", proc.ends)
	}
}

func TestRecvOpNoticeAbsorbedBeforeForeground(t *testing.T) {
	s := fake.NewStream()
	feedFrame(s, wire.TagNotice, (&messages.NoticeFrame{Type: 3, Scope: 1, Payload: []byte("x")}).Encode())
	feedFrame(s, wire.TagOk, (&messages.Ok{Msg: "done"}).Encode())

	proc := &recorder{}
	op := NewRecvOp(frame.New(s, wire.DefaultLimits(), zerolog.Nop()), wire.FromServer, registry.Default, proc, nil, false, 0, zerolog.Nop())
	op.Wait()

	if err := op.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(proc.notices) != 1 || proc.notices[0].typ != 3 {
		t.Fatalf("notices = %+v", proc.notices)
	}
	if len(proc.oks) != 1 {
		t.Fatalf("oks = %+v, want one Ok after the notice", proc.oks)
	}
}

func TestRecvOpNoticeFloodRefusedPastMaxNotices(t *testing.T) {
	s := fake.NewStream()
	feedFrame(s, wire.TagNotice, (&messages.NoticeFrame{Type: 1, Scope: 1, Payload: []byte("a")}).Encode())
	feedFrame(s, wire.TagNotice, (&messages.NoticeFrame{Type: 2, Scope: 1, Payload: []byte("b")}).Encode())
	feedFrame(s, wire.TagOk, (&messages.Ok{Msg: "done"}).Encode())

	proc := &recorder{}
	op := NewRecvOp(frame.New(s, wire.DefaultLimits(), zerolog.Nop()), wire.FromServer, registry.Default, proc, nil, false, 1, zerolog.Nop())
	op.Wait()

	perr, ok := protoerr.As(op.Err())
	if !ok || perr.Kind != protoerr.KindOversize {
		t.Fatalf("err = %v, want a KindOversize once maxNotices is exceeded", op.Err())
	}
	if len(proc.notices) != 1 {
		t.Fatalf("notices = %+v, want exactly the one absorbed before the cap", proc.notices)
	}
	if len(proc.oks) != 0 {
		t.Fatal("Ok must never be reached once the notice flood trips the cap")
	}
}

func TestRecvOpErrorTerminates(t *testing.T) {
	s := fake.NewStream()
	feedFrame(s, wire.TagError, (&messages.Error{Severity: 0, Code: 1234, SQLState: "HY000", Msg: "bad"}).Encode())

	proc := &recorder{}
	op := NewRecvOp(frame.New(s, wire.DefaultLimits(), zerolog.Nop()), wire.FromServer, registry.Default, proc, nil, false, 0, zerolog.Nop())
	op.Wait()

	// A ServerError reaches proc.Error and ends the op, but spec.md §7
	// says it never propagates through Err — only the callback sees it.
	if err := op.Err(); err != nil {
		t.Fatalf("unexpected error: %v, want nil (ServerError is callback-only)", err)
	}
	if len(proc.errs) != 1 || proc.errs[0].code != 1234 {
		t.Fatalf("errs = %+v", proc.errs)
	}
}

func TestRecvOpUnknownTag(t *testing.T) {
	s := fake.NewStream()
	feedFrame(s, wire.TypeTag(250), []byte("whatever"))

	proc := &recorder{}
	op := NewRecvOp(frame.New(s, wire.DefaultLimits(), zerolog.Nop()), wire.FromServer, registry.Default, proc, nil, false, 0, zerolog.Nop())
	op.Wait()

	perr, ok := protoerr.As(op.Err())
	if !ok || perr.Kind != protoerr.KindUnknownMessage {
		t.Fatalf("err = %v, want a KindUnknownMessage", op.Err())
	}
}

func TestRecvOpStopActionEndsEarly(t *testing.T) {
	s := fake.NewStream()
	feedFrame(s, wire.TagOk, (&messages.Ok{Msg: "first"}).Encode())
	feedFrame(s, wire.TagOk, (&messages.Ok{Msg: "second"}).Encode())

	proc := &recorder{stopAt: wire.TagOk, stopAtSet: true}
	op := NewRecvOp(frame.New(s, wire.DefaultLimits(), zerolog.Nop()), wire.FromServer, registry.Default, proc, &loopAlways{}, false, 0, zerolog.Nop())
	op.Wait()

	if err := op.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(proc.oks) != 1 {
		t.Fatalf("oks = %+v, want exactly one (Stop must cut the loop short)", proc.oks)
	}
}

func TestRecvOpFromClientTreatsTagOneAsCapabilitiesGetNotError(t *testing.T) {
	s := fake.NewStream()
	feedFrame(s, wire.TagConnCapabilitiesGet, (&messages.ConnCapabilitiesGet{}).Encode())

	proc := &recorder{}
	op := NewRecvOp(frame.New(s, wire.DefaultLimits(), zerolog.Nop()), wire.FromClient, registry.Default, proc, nil, false, 0, zerolog.Nop())
	op.Wait()

	if err := op.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proc.capsGets != 1 {
		t.Fatalf("capsGets = %d, want 1 (tag 1 must reach the registry on FromClient, not handleError)", proc.capsGets)
	}
	if len(proc.errs) != 0 {
		t.Fatalf("errs = %+v, want none: Error is a FromServer-only universal tag", proc.errs)
	}
}

// loopAlways is a RecvVariant that never declares the sequence over,
// used to exercise MessageEnd's api.Stop short-circuit independent of
// variant logic.
type loopAlways struct{}

func (loopAlways) Expect(wire.TypeTag) HeaderAction   { return Expected }
func (loopAlways) ProcessNext(wire.TypeTag, any) bool { return false }
func (loopAlways) NextMsg() bool                      { return true }
