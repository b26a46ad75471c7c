package frame

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/xprotocol/mysqlx-engine/fake"
	"github.com/xprotocol/mysqlx-engine/wire"
)

func TestCodecRoundTrip(t *testing.T) {
	s := fake.NewStream()
	writer := New(s, wire.DefaultLimits(), zerolog.Nop())
	payload := []byte("hello")
	if err := writer.Write(wire.TagOk, payload); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := writer.WrWait(); err != nil {
		t.Fatalf("wr_wait: %v", err)
	}

	onWire := s.WrittenBytes()
	peer := fake.NewStream()
	peer.Feed(onWire)

	reader := New(peer, wire.DefaultLimits(), zerolog.Nop())
	reader.ReadHeader()
	if err := reader.RdWait(); err != nil {
		t.Fatalf("rd_wait header: %v", err)
	}
	if err := reader.ParseHeader(); err != nil {
		t.Fatalf("parse header: %v", err)
	}
	hdr := reader.Header()
	if hdr.Type != wire.TagOk {
		t.Fatalf("type = %v, want %v", hdr.Type, wire.TagOk)
	}
	if hdr.PayloadLen != len(payload) {
		t.Fatalf("payload len = %d, want %d", hdr.PayloadLen, len(payload))
	}
	if err := reader.ReadPayload(); err != nil {
		t.Fatalf("read payload: %v", err)
	}
	if err := reader.RdWait(); err != nil {
		t.Fatalf("rd_wait payload: %v", err)
	}
	if got := string(reader.Payload()); got != "hello" {
		t.Fatalf("payload = %q, want %q", got, "hello")
	}
}

func TestCodecOversizeRefusal(t *testing.T) {
	s := fake.NewStream()
	// Header declaring a size larger than MaxFrame: 0xFFFFFFFF, tag 0x0B.
	s.Feed([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0B})

	c := New(s, wire.DefaultLimits(), zerolog.Nop())
	c.ReadHeader()
	if err := c.RdWait(); err != nil {
		t.Fatalf("rd_wait: %v", err)
	}
	err := c.ParseHeader()
	if err == nil {
		t.Fatal("expected oversize error")
	}
	if s.Offset() != wire.HeaderLength {
		t.Fatal("payload must not be read before header validation")
	}
}

func TestCodecFragmentedRead(t *testing.T) {
	s := fake.NewStream()
	s.SetChunkSize(1)
	payload := []byte("abc")
	full := []byte{4, 0, 0, 0, byte(wire.TagOk)}
	full = append(full, payload...)
	s.Feed(full)

	c := New(s, wire.DefaultLimits(), zerolog.Nop())
	c.ReadHeader()
	for {
		done, err := c.RdCont()
		if err != nil {
			t.Fatalf("rd_cont header: %v", err)
		}
		if done {
			break
		}
	}
	if err := c.ParseHeader(); err != nil {
		t.Fatalf("parse header: %v", err)
	}
	if err := c.ReadPayload(); err != nil {
		t.Fatalf("read payload: %v", err)
	}
	for {
		done, err := c.RdCont()
		if err != nil {
			t.Fatalf("rd_cont payload: %v", err)
		}
		if done {
			break
		}
	}
	if string(c.Payload()) != "abc" {
		t.Fatalf("payload = %q", c.Payload())
	}
}
