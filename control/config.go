// Package control holds the engine's ambient operational surface:
// static startup configuration, a dynamically mutable runtime store,
// and a metrics registry, the three concerns the teacher's control
// package splits into config.go/metrics.go.
//
// Grounded on the teacher's control/config.go (ConfigStore) and
// cmd/ghostctl/config.go's TOML loading idiom (BurntSushi/toml,
// DecodeFile + meta.IsDefined so an absent key keeps its default
// instead of being overwritten with a zero value).
package control

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/xprotocol/mysqlx-engine/wire"
)

// Config is the engine's static startup configuration.
type Config struct {
	ListenAddr      string `toml:"listen_addr"`
	LogLevel        string `toml:"log_level"`
	MaxFrameBytes   int64  `toml:"max_frame_bytes"`
	RecvQueueLength int    `toml:"recv_queue_length"`
	// InitialBufferBytes is each engine's read/write buffer's starting
	// capacity, before frame.growBuf grows it on demand.
	InitialBufferBytes int `toml:"initial_buffer_bytes"`
}

// DefaultConfig returns the configuration a bare engine starts with
// absent any file on disk.
func DefaultConfig() Config {
	return Config{
		ListenAddr:         ":33060",
		LogLevel:           "info",
		MaxFrameBytes:      wire.MaxFrame,
		RecvQueueLength:    64,
		InitialBufferBytes: 256,
	}
}

// Limits projects the fields of cfg that frame.New, protocol.New and
// protocol.NewRecvOp need to size their buffers and queues.
func (cfg Config) Limits() wire.Limits {
	return wire.Limits{
		MaxFrameBytes:   cfg.MaxFrameBytes,
		InitialBufBytes: cfg.InitialBufferBytes,
		QueueLength:     cfg.RecvQueueLength,
	}
}

// LoadConfig reads a TOML file at path over DefaultConfig, so a file
// that only sets listen_addr leaves every other field at its default.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("control: load config %q: %w", path, err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects a Config the engine cannot safely start with.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.ListenAddr) == "" {
		return fmt.Errorf("control: listen_addr is required")
	}
	if cfg.MaxFrameBytes <= 0 || cfg.MaxFrameBytes > wire.MaxFrame {
		return fmt.Errorf("control: max_frame_bytes must be in (0, %d]", wire.MaxFrame)
	}
	if cfg.RecvQueueLength <= 0 {
		return fmt.Errorf("control: recv_queue_length must be positive")
	}
	if cfg.InitialBufferBytes <= 0 || int64(cfg.InitialBufferBytes) > cfg.MaxFrameBytes {
		return fmt.Errorf("control: initial_buffer_bytes must be in (0, max_frame_bytes]")
	}
	return nil
}
