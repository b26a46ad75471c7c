package control

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/xprotocol/mysqlx-engine/fake"
	"github.com/xprotocol/mysqlx-engine/messages"
	"github.com/xprotocol/mysqlx-engine/protocol"
	"github.com/xprotocol/mysqlx-engine/registry"
	"github.com/xprotocol/mysqlx-engine/wire"
)

func TestMetricsObserveFoldsEngineStats(t *testing.T) {
	s := fake.NewStream()
	e := protocol.New(s, wire.FromServer, registry.Default, DefaultConfig().Limits(), zerolog.Nop(), zerolog.Nop())

	if _, err := e.SendStart(wire.TagOk, (&messages.Ok{Msg: "hi"}).Encode()); err != nil {
		t.Fatalf("SendStart: %v", err)
	}
	for {
		done, err := e.PumpSend()
		if err != nil {
			t.Fatalf("PumpSend: %v", err)
		}
		if done {
			break
		}
	}

	m := NewMetrics()
	m.Observe("conn1", e)

	snap := m.Snapshot()
	if snap["conn1.frames_sent"] != 1 {
		t.Fatalf("conn1.frames_sent = %d, want 1", snap["conn1.frames_sent"])
	}
	if m.LastUpdated().IsZero() {
		t.Fatal("LastUpdated should be set after Observe")
	}
}

func TestMetricsObserveKeysBySuppliedName(t *testing.T) {
	s1, s2 := fake.NewStream(), fake.NewStream()
	e1 := protocol.New(s1, wire.FromServer, registry.Default, DefaultConfig().Limits(), zerolog.Nop(), zerolog.Nop())
	e2 := protocol.New(s2, wire.FromServer, registry.Default, DefaultConfig().Limits(), zerolog.Nop(), zerolog.Nop())

	if _, err := e1.SendStart(wire.TagOk, (&messages.Ok{Msg: "a"}).Encode()); err != nil {
		t.Fatalf("SendStart e1: %v", err)
	}
	if _, err := e1.PumpSend(); err != nil {
		t.Fatalf("PumpSend e1: %v", err)
	}
	if _, err := e2.SendStart(wire.TagOk, (&messages.Ok{Msg: "b"}).Encode()); err != nil {
		t.Fatalf("SendStart e2: %v", err)
	}
	if _, err := e2.PumpSend(); err != nil {
		t.Fatalf("PumpSend e2: %v", err)
	}

	m := NewMetrics()
	m.Observe("conn1", e1)
	m.Observe("conn2", e2)

	snap := m.Snapshot()
	if _, ok := snap["conn1.frames_sent"]; !ok {
		t.Fatal("missing conn1 counters")
	}
	if _, ok := snap["conn2.frames_sent"]; !ok {
		t.Fatal("missing conn2 counters")
	}
}
