//go:build !linux

package transport

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/xprotocol/mysqlx-engine/api"
)

// Socket is the non-Linux stand-in: the epoll-backed implementation in
// socket_linux.go is the only one this engine ships, matching the
// teacher's own platform split (reactor_linux.go vs reactor_windows.go)
// in spirit, not in full — there is no Windows transport here, only a
// clear failure instead of a silent build break.
type Socket struct{}

func Dial(addr string, log zerolog.Logger) (*Socket, error) {
	err := errors.New("transport: no non-Linux socket implementation")
	log.Error().Err(err).Msg("dial failed")
	return nil, err
}

func FromFD(fd int, log zerolog.Logger) (*Socket, error) {
	err := errors.New("transport: no non-Linux socket implementation")
	log.Error().Err(err).Msg("from fd failed")
	return nil, err
}

func (s *Socket) Read(buf []byte) api.Op  { panic("transport: unsupported platform") }
func (s *Socket) Write(buf []byte) api.Op { panic("transport: unsupported platform") }
func (s *Socket) Close() error            { return nil }
