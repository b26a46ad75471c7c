//go:build linux

// Package transport implements api.Stream over a raw non-blocking TCP
// socket, polling readiness through epoll exactly the way the
// teacher's reactor/reactor_linux.go and
// internal/transport/transport_linux.go do — generalized from
// hioload-ws's batched zero-copy Send/Recv to the ordered byte-stream
// Read/Write api.Stream requires.
package transport

import (
	"fmt"
	"io"
	"net"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"

	"github.com/xprotocol/mysqlx-engine/api"
)

// Socket is a non-blocking TCP api.Stream backed by a raw file
// descriptor and a private epoll instance used to wait for readiness.
type Socket struct {
	fd   int
	epfd int
	log  zerolog.Logger
}

// Dial resolves addr ("host:port") and connects a fresh non-blocking
// socket to it. log is tagged with component "transport" by the
// caller (typically xlog.New("transport", ...)).
func Dial(addr string, log zerolog.Logger) (*Socket, error) {
	tcpAddr, err := net.ResolveTCPAddr("tcp4", addr)
	if err != nil {
		log.Error().Err(err).Str("addr", addr).Msg("resolve failed")
		return nil, fmt.Errorf("transport: resolve %q: %w", addr, err)
	}

	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, unix.IPPROTO_TCP)
	if err != nil {
		log.Error().Err(err).Msg("socket create failed")
		return nil, fmt.Errorf("transport: socket: %w", err)
	}
	if err := unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_NODELAY, 1); err != nil {
		unix.Close(fd)
		log.Error().Err(err).Msg("set tcp_nodelay failed")
		return nil, fmt.Errorf("transport: tcp_nodelay: %w", err)
	}

	var sa unix.SockaddrInet4
	copy(sa.Addr[:], tcpAddr.IP.To4())
	sa.Port = tcpAddr.Port
	if err := unix.Connect(fd, &sa); err != nil {
		unix.Close(fd)
		log.Error().Err(err).Str("addr", addr).Msg("connect failed")
		return nil, fmt.Errorf("transport: connect %q: %w", addr, err)
	}

	log.Debug().Str("addr", addr).Msg("connected")
	return fromFD(fd, log)
}

// FromFD adopts an already-connected fd (e.g. one returned by a raw
// Accept loop), registering it with a fresh epoll instance.
func FromFD(fd int, log zerolog.Logger) (*Socket, error) {
	return fromFD(fd, log)
}

func fromFD(fd int, log zerolog.Logger) (*Socket, error) {
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		log.Error().Err(err).Msg("set nonblock failed")
		return nil, fmt.Errorf("transport: set nonblock: %w", err)
	}
	epfd, err := unix.EpollCreate1(0)
	if err != nil {
		unix.Close(fd)
		log.Error().Err(err).Msg("epoll create failed")
		return nil, fmt.Errorf("transport: epoll create: %w", err)
	}
	ev := unix.EpollEvent{Events: unix.EPOLLIN | unix.EPOLLOUT, Fd: int32(fd)}
	if err := unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		unix.Close(epfd)
		unix.Close(fd)
		log.Error().Err(err).Msg("epoll ctl failed")
		return nil, fmt.Errorf("transport: epoll ctl: %w", err)
	}
	return &Socket{fd: fd, epfd: epfd, log: log}, nil
}

// waitReady blocks until the socket reports any registered readiness
// event, used only by the Wait() blocking path — Cont() never blocks.
func (s *Socket) waitReady() {
	var events [1]unix.EpollEvent
	for {
		n, err := unix.EpollWait(s.epfd, events[:], -1)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return
		}
		if n > 0 {
			return
		}
	}
}

// Read implements api.Stream.
func (s *Socket) Read(buf []byte) api.Op { return &readOp{s: s, buf: buf} }

// Write implements api.Stream.
func (s *Socket) Write(buf []byte) api.Op { return &writeOp{s: s, buf: buf} }

// Close implements api.Stream.
func (s *Socket) Close() error {
	_ = unix.Close(s.epfd)
	return unix.Close(s.fd)
}

type readOp struct {
	s    *Socket
	buf  []byte
	done int
	err  error
}

func (op *readOp) Cont() bool {
	if op.err != nil || op.done == len(op.buf) {
		return true
	}
	n, err := unix.Read(op.s.fd, op.buf[op.done:])
	if err != nil {
		if err == unix.EAGAIN {
			return false
		}
		op.err = fmt.Errorf("transport: read: %w", err)
		op.s.log.Warn().Err(op.err).Msg("read failed")
		return true
	}
	if n == 0 {
		op.err = io.EOF
		return true
	}
	op.done += n
	return op.done == len(op.buf)
}

func (op *readOp) Wait() {
	for !op.Cont() {
		op.s.waitReady()
	}
}

func (op *readOp) Err() error { return op.err }

type writeOp struct {
	s    *Socket
	buf  []byte
	done int
	err  error
}

func (op *writeOp) Cont() bool {
	if op.err != nil || op.done == len(op.buf) {
		return true
	}
	n, err := unix.Write(op.s.fd, op.buf[op.done:])
	if err != nil {
		if err == unix.EAGAIN {
			return false
		}
		op.err = fmt.Errorf("transport: write: %w", err)
		op.s.log.Warn().Err(op.err).Msg("write failed")
		return true
	}
	op.done += n
	return op.done == len(op.buf)
}

func (op *writeOp) Wait() {
	for !op.Cont() {
		op.s.waitReady()
	}
}

func (op *writeOp) Err() error { return op.err }
