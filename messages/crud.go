// CRUD request bodies. Field/expression trees are out of scope (§1
// "Expression/document builders... treated as external collaborators")
// so Criteria/Projection/Operations are carried as opaque pre-encoded
// Expression bytes; only the envelope fields are modeled here.
package messages

// Collection identifies a schema-qualified collection or table.
type Collection struct {
	Name   string
	Schema string
}

func (c Collection) encode() []byte {
	var cb []byte
	cb = appendString(cb, 1, c.Name)
	cb = appendString(cb, 2, c.Schema)
	return cb
}

// DataModel distinguishes document-store collections from relational
// tables.
type DataModel uint32

const (
	DataModelDocument DataModel = 0
	DataModelTable    DataModel = 1
)

// Find executes a CRUD find (SELECT-equivalent) against one collection.
type Find struct {
	Collection Collection
	DataModel  DataModel
	Projection []byte
	Criteria   []byte
	Limit      uint64
	HasLimit   bool
}

func (m *Find) Encode() []byte {
	var b []byte
	b = appendBytes(b, 1, m.Collection.encode())
	b = appendVarint(b, 2, uint64(m.DataModel))
	b = appendBytes(b, 3, m.Projection)
	b = appendBytes(b, 4, m.Criteria)
	if m.HasLimit {
		b = appendVarint(b, 5, m.Limit)
	}
	return b
}

func (m *Find) Decode(payload []byte) error {
	r := &fieldReader{buf: payload}
	for {
		num, typ, ok := r.next()
		if !ok {
			break
		}
		switch num {
		case 1:
			raw, err := r.bytes()
			if err != nil {
				return err
			}
			if err := decodeCollection(raw, &m.Collection); err != nil {
				return err
			}
		case 2:
			v, err := r.varint()
			if err != nil {
				return err
			}
			m.DataModel = DataModel(v)
		case 3:
			v, err := r.bytes()
			if err != nil {
				return err
			}
			m.Projection = v
		case 4:
			v, err := r.bytes()
			if err != nil {
				return err
			}
			m.Criteria = v
		case 5:
			v, err := r.varint()
			if err != nil {
				return err
			}
			m.Limit = v
			m.HasLimit = true
		default:
			if err := r.skip(typ); err != nil {
				return err
			}
		}
	}
	return nil
}

func decodeCollection(payload []byte, out *Collection) error {
	r := &fieldReader{buf: payload}
	for {
		num, typ, ok := r.next()
		if !ok {
			break
		}
		switch num {
		case 1:
			s, err := r.bytes()
			if err != nil {
				return err
			}
			out.Name = string(s)
		case 2:
			s, err := r.bytes()
			if err != nil {
				return err
			}
			out.Schema = string(s)
		default:
			if err := r.skip(typ); err != nil {
				return err
			}
		}
	}
	return nil
}

// Insert adds one or more documents/rows to a collection.
type Insert struct {
	Collection Collection
	DataModel  DataModel
	Rows       [][]byte
}

func (m *Insert) Encode() []byte {
	var b []byte
	b = appendBytes(b, 1, m.Collection.encode())
	b = appendVarint(b, 2, uint64(m.DataModel))
	for _, row := range m.Rows {
		b = appendBytes(b, 3, row)
	}
	return b
}

func (m *Insert) Decode(payload []byte) error {
	r := &fieldReader{buf: payload}
	for {
		num, typ, ok := r.next()
		if !ok {
			break
		}
		switch num {
		case 1:
			raw, err := r.bytes()
			if err != nil {
				return err
			}
			if err := decodeCollection(raw, &m.Collection); err != nil {
				return err
			}
		case 2:
			v, err := r.varint()
			if err != nil {
				return err
			}
			m.DataModel = DataModel(v)
		case 3:
			v, err := r.bytes()
			if err != nil {
				return err
			}
			m.Rows = append(m.Rows, v)
		default:
			if err := r.skip(typ); err != nil {
				return err
			}
		}
	}
	return nil
}

// Update modifies documents/rows matching Criteria.
type Update struct {
	Collection Collection
	DataModel  DataModel
	Operations []byte
	Criteria   []byte
}

func (m *Update) Encode() []byte {
	var b []byte
	b = appendBytes(b, 1, m.Collection.encode())
	b = appendVarint(b, 2, uint64(m.DataModel))
	b = appendBytes(b, 3, m.Operations)
	b = appendBytes(b, 4, m.Criteria)
	return b
}

func (m *Update) Decode(payload []byte) error {
	r := &fieldReader{buf: payload}
	for {
		num, typ, ok := r.next()
		if !ok {
			break
		}
		switch num {
		case 1:
			raw, err := r.bytes()
			if err != nil {
				return err
			}
			if err := decodeCollection(raw, &m.Collection); err != nil {
				return err
			}
		case 2:
			v, err := r.varint()
			if err != nil {
				return err
			}
			m.DataModel = DataModel(v)
		case 3:
			v, err := r.bytes()
			if err != nil {
				return err
			}
			m.Operations = v
		case 4:
			v, err := r.bytes()
			if err != nil {
				return err
			}
			m.Criteria = v
		default:
			if err := r.skip(typ); err != nil {
				return err
			}
		}
	}
	return nil
}

// Delete removes documents/rows matching Criteria.
type Delete struct {
	Collection Collection
	DataModel  DataModel
	Criteria   []byte
}

func (m *Delete) Encode() []byte {
	var b []byte
	b = appendBytes(b, 1, m.Collection.encode())
	b = appendVarint(b, 2, uint64(m.DataModel))
	b = appendBytes(b, 3, m.Criteria)
	return b
}

func (m *Delete) Decode(payload []byte) error {
	r := &fieldReader{buf: payload}
	for {
		num, typ, ok := r.next()
		if !ok {
			break
		}
		switch num {
		case 1:
			raw, err := r.bytes()
			if err != nil {
				return err
			}
			if err := decodeCollection(raw, &m.Collection); err != nil {
				return err
			}
		case 2:
			v, err := r.varint()
			if err != nil {
				return err
			}
			m.DataModel = DataModel(v)
		case 3:
			v, err := r.bytes()
			if err != nil {
				return err
			}
			m.Criteria = v
		default:
			if err := r.skip(typ); err != nil {
				return err
			}
		}
	}
	return nil
}

// FindProcessor, InsertProcessor, UpdateProcessor and DeleteProcessor
// are the server-role per-type capabilities for the CRUD family.
type FindProcessor interface {
	Find(*Find)
}

type InsertProcessor interface {
	Insert(*Insert)
}

type UpdateProcessor interface {
	Update(*Update)
}

type DeleteProcessor interface {
	Delete(*Delete)
}
