package wire

// HeaderLength is the fixed size of a frame header: 4 bytes of
// little-endian length followed by 1 byte of type tag.
const HeaderLength = 5

// MaxFrame bounds a frame's declared size (which includes the type
// tag byte). A frame declaring size > MaxFrame or size == 0 is a
// framing error.
const MaxFrame = 1 << 30 // 1 GiB

// Limits bounds one engine's buffer growth and queue depth. Callers
// normally get one from a loaded control.Config rather than building
// it by hand; DefaultLimits exists for tests and other callers with
// no config file to load.
type Limits struct {
	// MaxFrameBytes caps a frame's declared size, enforced in addition
	// to (never above) MaxFrame.
	MaxFrameBytes int64
	// InitialBufBytes is the read/write buffer's starting capacity,
	// before any on-demand growth.
	InitialBufBytes int
	// QueueLength caps how many Notice frames one RecvOp absorbs in
	// total before it fails with Oversize, and how many sends an
	// Engine's pending-send queue may hold before TrySend refuses
	// rather than queues.
	QueueLength int
}

// DefaultLimits returns the limits control.DefaultConfig's values
// describe.
func DefaultLimits() Limits {
	return Limits{
		MaxFrameBytes:   MaxFrame,
		InitialBufBytes: 256,
		QueueLength:     64,
	}
}

// TypeTag identifies a message kind within one Direction's namespace.
type TypeTag uint8

// Universal tags. Both are server->client and are handled by the
// engine itself rather than surfaced as foreground messages.
const (
	TagError  TypeTag = 1
	TagNotice TypeTag = 11
)

// Server->client tags, mirroring Mysqlx.ServerMessages.Type.
const (
	TagOk                            TypeTag = 0
	TagCapabilitiesGetSetResponse    TypeTag = 2
	TagSessAuthenticateContinue      TypeTag = 3
	TagSessAuthenticateOk            TypeTag = 4
	TagResultsetColumnMetaData       TypeTag = 12
	TagResultsetRow                  TypeTag = 13
	TagResultsetFetchDone            TypeTag = 14
	TagResultsetFetchSuspended       TypeTag = 15
	TagResultsetFetchDoneMoreResults TypeTag = 16
	TagSqlStmtExecuteOk              TypeTag = 17
)

// Client->server tags, mirroring Mysqlx.ClientMessages.Type.
const (
	TagConnCapabilitiesGet    TypeTag = 1
	TagConnCapabilitiesSet    TypeTag = 2
	TagConnClose              TypeTag = 3
	TagSessAuthenticateStart  TypeTag = 4
	TagSessAuthenticateContin TypeTag = 5
	TagSessReset              TypeTag = 6
	TagSessClose              TypeTag = 7
	TagSqlStmtExecute         TypeTag = 12
	TagCrudFind               TypeTag = 17
	TagCrudInsert             TypeTag = 18
	TagCrudUpdate             TypeTag = 19
	TagCrudDelete             TypeTag = 20
	TagExpectOpen             TypeTag = 24
	TagExpectClose            TypeTag = 25
)
