package protocol

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/xprotocol/mysqlx-engine/fake"
	"github.com/xprotocol/mysqlx-engine/messages"
	"github.com/xprotocol/mysqlx-engine/registry"
	"github.com/xprotocol/mysqlx-engine/wire"
)

func TestEngineRecvStartRejectsWhileBusy(t *testing.T) {
	s := fake.NewStream()
	feedFrame(s, wire.TagOk, (&messages.Ok{Msg: "a"}).Encode())
	feedFrame(s, wire.TagOk, (&messages.Ok{Msg: "b"}).Encode())

	e := New(s, wire.FromServer, registry.Default, wire.DefaultLimits(), zerolog.Nop(), zerolog.Nop())
	proc := &recorder{}
	if _, err := e.RecvStart(proc, nil); err != nil {
		t.Fatalf("first RecvStart: %v", err)
	}
	if _, err := e.RecvStart(proc, nil); err == nil {
		t.Fatal("expected Busy while a RecvOp is outstanding")
	}
	for {
		done, err := e.PumpRecv()
		if err != nil {
			t.Fatalf("PumpRecv: %v", err)
		}
		if done {
			break
		}
	}
	if _, err := e.RecvStart(proc, nil); err != nil {
		t.Fatalf("RecvStart after completion: %v", err)
	}
}

func TestEngineSendStartRejectsWhileBusy(t *testing.T) {
	s := fake.NewStream()
	e := New(s, wire.FromServer, registry.Default, wire.DefaultLimits(), zerolog.Nop(), zerolog.Nop())

	first, err := e.SendStart(wire.TagOk, (&messages.Ok{Msg: "first"}).Encode())
	if err != nil {
		t.Fatalf("first SendStart: %v", err)
	}
	if first == nil {
		t.Fatal("first SendStart should return a SendOp")
	}

	if _, err := e.SendStart(wire.TagOk, (&messages.Ok{Msg: "second"}).Encode()); err == nil {
		t.Fatal("expected Busy while a SendOp is in flight")
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

	if _, err := e.SendStart(wire.TagOk, (&messages.Ok{Msg: "third"}).Encode()); err != nil {
		t.Fatalf("SendStart after completion: %v", err)
	}
}

func TestEngineTrySendQueueing(t *testing.T) {
	s := fake.NewStream()
	e := New(s, wire.FromServer, registry.Default, wire.DefaultLimits(), zerolog.Nop(), zerolog.Nop())

	if !e.TrySend(wire.TagOk, (&messages.Ok{Msg: "first"}).Encode()) {
		t.Fatal("first TrySend should not queue")
	}
	if !e.TrySend(wire.TagOk, (&messages.Ok{Msg: "second"}).Encode()) {
		t.Fatal("second TrySend should queue behind the first")
	}

	done, err := e.PumpSend()
	if err != nil {
		t.Fatalf("PumpSend (first): %v", err)
	}
	if done {
		t.Fatal("PumpSend should have promoted the queued second send")
	}
	done, err = e.PumpSend()
	if err != nil {
		t.Fatalf("PumpSend (second): %v", err)
	}
	if !done {
		t.Fatal("PumpSend should report done once the queue drains")
	}

	stats := e.Stats()
	if stats["frames_sent"] != 2 {
		t.Fatalf("frames_sent = %d, want 2", stats["frames_sent"])
	}
}

func TestEngineTrySendRefusesPastQueueLength(t *testing.T) {
	s := fake.NewStream()
	limits := wire.DefaultLimits()
	limits.QueueLength = 1
	e := New(s, wire.FromServer, registry.Default, limits, zerolog.Nop(), zerolog.Nop())

	if !e.TrySend(wire.TagOk, (&messages.Ok{Msg: "first"}).Encode()) {
		t.Fatal("first TrySend should start immediately, not queue")
	}
	if !e.TrySend(wire.TagOk, (&messages.Ok{Msg: "second"}).Encode()) {
		t.Fatal("second TrySend should fit within QueueLength 1")
	}
	if e.TrySend(wire.TagOk, (&messages.Ok{Msg: "third"}).Encode()) {
		t.Fatal("third TrySend should be refused once the queue is at QueueLength")
	}
}
