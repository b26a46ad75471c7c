// Package registry is the compile-time message table (spec.md §4.4):
// a map from (Direction, TypeTag) to a decoder and a dispatch thunk,
// replacing the X-macro MSG_LIST Message_dispatcher of
// original_source/cdk/protocol/mysqlx/protocol.h with a declarative Go
// table built once at init().
package registry

import (
	"github.com/xprotocol/mysqlx-engine/api"
	"github.com/xprotocol/mysqlx-engine/wire"
)

// Decode parses a payload into a decoded message value.
type Decode func(payload []byte) (any, error)

// Dispatch downcasts proc to the message's per-type capability and, if
// proc implements it, invokes the typed callback. It reports whether
// proc implemented the capability — callers are not required to
// implement every capability the registry knows about.
type Dispatch func(msg any, proc api.Processor) (handled bool)

// Entry is one (Direction, TypeTag) table row.
type Entry struct {
	Decode   Decode
	Dispatch Dispatch
}

// Table is the total per-direction switch on type tag spec.md §4.4
// requires; a missing entry is an UnknownMessage, never a default
// decode.
type Table struct {
	entries map[wire.Direction]map[wire.TypeTag]Entry
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{entries: make(map[wire.Direction]map[wire.TypeTag]Entry)}
}

// Register adds one (Direction, TypeTag) row. Registering the same
// pair twice overwrites the previous entry.
func (t *Table) Register(dir wire.Direction, tag wire.TypeTag, e Entry) {
	m, ok := t.entries[dir]
	if !ok {
		m = make(map[wire.TypeTag]Entry)
		t.entries[dir] = m
	}
	m[tag] = e
}

// Lookup finds the entry for (dir, tag), if any.
func (t *Table) Lookup(dir wire.Direction, tag wire.TypeTag) (Entry, bool) {
	m, ok := t.entries[dir]
	if !ok {
		return Entry{}, false
	}
	e, ok := m[tag]
	return e, ok
}

// Default is the table populated with every message spec.md §4.4 lists
// as the minimum coverage per direction. Engines that only need a
// subset may build their own Table instead.
var Default = buildDefault()
