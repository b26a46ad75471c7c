package messages

// ColumnMetaData describes one result column.
type ColumnMetaData struct {
	Type             uint32
	Name             string
	OriginalName     string
	Table            string
	OriginalTable    string
	Schema           string
	Catalog          string
	Collation        uint64
	FractionalDigits uint32
	Length           uint32
	Flags            uint32
	ContentType      uint32
}

func (m *ColumnMetaData) Encode() []byte {
	var b []byte
	b = appendVarint(b, 1, uint64(m.Type))
	b = appendString(b, 2, m.Name)
	b = appendString(b, 3, m.OriginalName)
	b = appendString(b, 4, m.Table)
	b = appendString(b, 5, m.OriginalTable)
	b = appendString(b, 6, m.Schema)
	b = appendString(b, 7, m.Catalog)
	b = appendVarint(b, 8, m.Collation)
	b = appendVarint(b, 9, uint64(m.FractionalDigits))
	b = appendVarint(b, 10, uint64(m.Length))
	b = appendVarint(b, 11, uint64(m.Flags))
	b = appendVarint(b, 12, uint64(m.ContentType))
	return b
}

func (m *ColumnMetaData) Decode(payload []byte) error {
	r := &fieldReader{buf: payload}
	for {
		num, typ, ok := r.next()
		if !ok {
			break
		}
		switch num {
		case 1:
			v, err := r.varint()
			if err != nil {
				return err
			}
			m.Type = uint32(v)
		case 2:
			s, err := r.bytes()
			if err != nil {
				return err
			}
			m.Name = string(s)
		case 3:
			s, err := r.bytes()
			if err != nil {
				return err
			}
			m.OriginalName = string(s)
		case 4:
			s, err := r.bytes()
			if err != nil {
				return err
			}
			m.Table = string(s)
		case 5:
			s, err := r.bytes()
			if err != nil {
				return err
			}
			m.OriginalTable = string(s)
		case 6:
			s, err := r.bytes()
			if err != nil {
				return err
			}
			m.Schema = string(s)
		case 7:
			s, err := r.bytes()
			if err != nil {
				return err
			}
			m.Catalog = string(s)
		case 8:
			v, err := r.varint()
			if err != nil {
				return err
			}
			m.Collation = v
		case 9:
			v, err := r.varint()
			if err != nil {
				return err
			}
			m.FractionalDigits = uint32(v)
		case 10:
			v, err := r.varint()
			if err != nil {
				return err
			}
			m.Length = uint32(v)
		case 11:
			v, err := r.varint()
			if err != nil {
				return err
			}
			m.Flags = uint32(v)
		case 12:
			v, err := r.varint()
			if err != nil {
				return err
			}
			m.ContentType = uint32(v)
		default:
			if err := r.skip(typ); err != nil {
				return err
			}
		}
	}
	return nil
}

// Row carries one result row as a sequence of opaque encoded field
// values; decoding a field's scalar type is the caller's job (out of
// scope per §1 — "higher-level result/cursor abstractions").
type Row struct {
	Fields [][]byte
}

func (m *Row) Encode() []byte {
	var b []byte
	for _, f := range m.Fields {
		b = appendBytes(b, 1, f)
	}
	return b
}

func (m *Row) Decode(payload []byte) error {
	r := &fieldReader{buf: payload}
	for {
		num, typ, ok := r.next()
		if !ok {
			break
		}
		if num == 1 {
			v, err := r.bytes()
			if err != nil {
				return err
			}
			m.Fields = append(m.Fields, v)
			continue
		}
		if err := r.skip(typ); err != nil {
			return err
		}
	}
	return nil
}

// FetchDone terminates a single resultset.
type FetchDone struct{}

func (m *FetchDone) Encode() []byte        { return nil }
func (m *FetchDone) Decode(_ []byte) error { return nil }

// FetchDoneMoreResultsets terminates one resultset but signals that
// more follow in the same StmtExecute response.
type FetchDoneMoreResultsets struct{}

func (m *FetchDoneMoreResultsets) Encode() []byte        { return nil }
func (m *FetchDoneMoreResultsets) Decode(_ []byte) error { return nil }

// ColumnMetaDataProcessor, RowProcessor, FetchDoneProcessor and
// FetchDoneMoreResultsetsProcessor are the client-role per-type
// capabilities for the resultset message family.
type ColumnMetaDataProcessor interface {
	ColumnMetaData(*ColumnMetaData)
}

type RowProcessor interface {
	Row(*Row)
}

type FetchDoneProcessor interface {
	FetchDone(*FetchDone)
}

type FetchDoneMoreResultsetsProcessor interface {
	FetchDoneMoreResultsets(*FetchDoneMoreResultsets)
}
