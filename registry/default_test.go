package registry

import (
	"testing"

	"github.com/xprotocol/mysqlx-engine/api"
	"github.com/xprotocol/mysqlx-engine/messages"
	"github.com/xprotocol/mysqlx-engine/wire"
)

type fakeOkProcessor struct {
	got *messages.Ok
}

func (f *fakeOkProcessor) MessageBegin(wire.TypeTag, int)   {}
func (f *fakeOkProcessor) MessageEnd() api.MessageEndAction { return api.Continue }
func (f *fakeOkProcessor) Ok(m *messages.Ok)                { f.got = m }

func TestDefaultTableRoundTripsOk(t *testing.T) {
	entry, ok := Default.Lookup(wire.FromServer, wire.TagOk)
	if !ok {
		t.Fatal("expected TagOk entry registered for FromServer")
	}

	payload := (&messages.Ok{Msg: "done"}).Encode()
	decoded, err := entry.Decode(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	okMsg, ok := decoded.(*messages.Ok)
	if !ok || okMsg.Msg != "done" {
		t.Fatalf("decoded message mismatch: %#v", decoded)
	}

	proc := &fakeOkProcessor{}
	if handled := entry.Dispatch(decoded, proc); !handled {
		t.Fatal("expected dispatch to report handled")
	}
	if proc.got == nil || proc.got.Msg != "done" {
		t.Fatalf("Ok callback not invoked correctly: %#v", proc.got)
	}
}

func TestDefaultTableCoversBothDirections(t *testing.T) {
	clientTags := []wire.TypeTag{wire.TagConnCapabilitiesGet, wire.TagSessAuthenticateStart, wire.TagSqlStmtExecute}
	for _, tag := range clientTags {
		if _, ok := Default.Lookup(wire.FromClient, tag); !ok {
			t.Errorf("expected FromClient entry for tag %d", tag)
		}
	}

	serverTags := []wire.TypeTag{wire.TagOk, wire.TagCapabilitiesGetSetResponse, wire.TagResultsetRow}
	for _, tag := range serverTags {
		if _, ok := Default.Lookup(wire.FromServer, tag); !ok {
			t.Errorf("expected FromServer entry for tag %d", tag)
		}
	}
}

func TestDefaultTableMissingEntryIsUnknown(t *testing.T) {
	if _, ok := Default.Lookup(wire.FromServer, wire.TypeTag(250)); ok {
		t.Fatal("expected no entry for an unassigned tag")
	}
}
