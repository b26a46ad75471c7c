// Command xproto-demo dials an X Protocol server, requests its
// capabilities, and runs one receive that logs any notices and the
// first foreground reply (or an Error frame) before exiting. It plays the role the teacher's examples/echo and
// examples/reactor_echo mains play for hioload-ws: a minimal,
// runnable driver proving the wiring holds end to end, not a
// production client.
package main

import (
	"errors"
	"flag"
	"os"

	"github.com/xprotocol/mysqlx-engine/api"
	"github.com/xprotocol/mysqlx-engine/control"
	"github.com/xprotocol/mysqlx-engine/messages"
	"github.com/xprotocol/mysqlx-engine/protocol"
	"github.com/xprotocol/mysqlx-engine/protoerr"
	"github.com/xprotocol/mysqlx-engine/registry"
	"github.com/xprotocol/mysqlx-engine/transport"
	"github.com/xprotocol/mysqlx-engine/wire"
	"github.com/xprotocol/mysqlx-engine/xlog"

	"github.com/rs/zerolog"
)

// demoProcessor logs every message it is handed and stops the
// engine's current RecvOp once an Ok or an Error frame arrives.
type demoProcessor struct {
	log    zerolog.Logger
	gotOk  bool
	gotErr bool
}

func (p *demoProcessor) MessageBegin(tag wire.TypeTag, size int) {
	p.log.Debug().Int("tag", int(tag)).Int("size", size).Msg("message begin")
}

func (p *demoProcessor) MessageEnd() api.MessageEndAction {
	if p.gotOk || p.gotErr {
		return api.Stop
	}
	return api.Continue
}

func (p *demoProcessor) Error(code uint32, severity api.Severity, sqlState, message string) {
	p.gotErr = true
	p.log.Error().Uint32("code", code).Str("sql_state", sqlState).Msg(message)
}

func (p *demoProcessor) Notice(noticeType uint32, scope int16, payload []byte) {
	p.log.Info().Uint32("notice_type", noticeType).Int16("scope", scope).Msg("notice")
}

func (p *demoProcessor) Ok(m *messages.Ok) {
	p.gotOk = true
	p.log.Info().Str("msg", m.Msg).Msg("ok")
}

func (p *demoProcessor) Capabilities(m *messages.CapabilitiesGetSetResponse) {
	p.log.Info().Int("count", len(m.Capabilities.Capabilities)).Msg("capabilities")
}

func main() {
	addr := flag.String("addr", "127.0.0.1:33060", "X Protocol server address")
	configPath := flag.String("config", "", "optional TOML config file")
	flag.Parse()

	cfg := control.DefaultConfig()
	if *configPath != "" {
		loaded, err := control.LoadConfig(*configPath)
		if err != nil {
			os.Exit(1)
		}
		cfg = loaded
	}

	log := xlog.New("xproto-demo", cfg.LogLevel)
	transportLog := xlog.New("transport", cfg.LogLevel)
	engineLog := xlog.New("engine", cfg.LogLevel)
	frameLog := xlog.New("frame", cfg.LogLevel)

	sock, err := transport.Dial(*addr, transportLog)
	if err != nil {
		log.Error().Err(err).Msg("dial failed")
		os.Exit(1)
	}
	defer sock.Close()

	engine := protocol.New(sock, wire.FromServer, registry.Default, cfg.Limits(), engineLog, frameLog)
	defer engine.Close()

	metrics := control.NewMetrics()

	get := (&messages.ConnCapabilitiesGet{}).Encode()
	send, err := engine.SendStart(wire.TagConnCapabilitiesGet, get)
	if err != nil {
		log.Error().Err(err).Msg("send start failed")
		os.Exit(1)
	}
	for !send.Cont() {
		metrics.Observe("conn", engine)
	}
	if err := send.Err(); err != nil {
		log.Error().Err(err).Msg("send capabilities_get failed")
		os.Exit(1)
	}

	proc := &demoProcessor{log: log}
	recvOp, err := engine.RecvStart(proc, nil)
	if err != nil {
		log.Error().Err(err).Msg("recv start failed")
		os.Exit(1)
	}
	for !recvOp.Cont() {
		metrics.Observe("conn", engine)
	}
	if err := recvOp.Err(); err != nil && !errors.Is(err, protoerr.Eos) {
		log.Error().Err(err).Msg("recv failed")
		os.Exit(1)
	}

	metrics.Observe("conn", engine)
	for k, v := range metrics.Snapshot() {
		log.Info().Int64(k, v).Msg("stat")
	}
	log.Info().Time("metrics_updated", metrics.LastUpdated()).Msg("metrics snapshot")
}
