package protocol

import "github.com/xprotocol/mysqlx-engine/wire"

// ReadMetadataRows is the RecvVariant for a resultset's metadata
// phase: it expects zero or more ColumnMetaData frames and ends the
// instant it sees anything else, per spec.md §4.3's "expects
// ColumnMetaData repeatedly then FetchDone" example. It never consumes
// the terminating frame's payload — Expect returns Stop for it, so
// the header stays parsed and the next RecvOp (typically ReadRows)
// resumes directly at that frame's payload.
type ReadMetadataRows struct{}

func (ReadMetadataRows) Expect(msgType wire.TypeTag) HeaderAction {
	if msgType == wire.TagResultsetColumnMetaData {
		return Expected
	}
	return Stop
}

func (ReadMetadataRows) ProcessNext(wire.TypeTag, any) (done bool) { return false }

func (ReadMetadataRows) NextMsg() bool { return true }

// ReadRows is the RecvVariant for a resultset's row phase: it expects
// zero or more Row frames and stops, without consuming it, at the
// first frame of any other type (normally FetchDone or
// FetchDoneMoreResultsets) — the caller starts a plain RecvOp next to
// actually read that terminator.
type ReadRows struct{}

func (ReadRows) Expect(msgType wire.TypeTag) HeaderAction {
	if msgType == wire.TagResultsetRow {
		return Expected
	}
	return Stop
}

func (ReadRows) ProcessNext(wire.TypeTag, any) (done bool) { return false }

func (ReadRows) NextMsg() bool { return true }
