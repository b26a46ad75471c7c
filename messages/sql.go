package messages

// StmtExecute runs one SQL statement (or a namespaced equivalent, e.g.
// an X-Protocol "mysqlx" admin command, distinguished by Namespace).
type StmtExecute struct {
	Namespace       string
	Stmt            []byte
	Args            [][]byte
	CompactMetadata bool
}

func (m *StmtExecute) Encode() []byte {
	var b []byte
	b = appendString(b, 1, m.Namespace)
	b = appendBytes(b, 2, m.Stmt)
	for _, a := range m.Args {
		b = appendBytes(b, 3, a)
	}
	b = appendBool(b, 4, m.CompactMetadata)
	return b
}

func (m *StmtExecute) Decode(payload []byte) error {
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
			m.Namespace = string(s)
		case 2:
			v, err := r.bytes()
			if err != nil {
				return err
			}
			m.Stmt = v
		case 3:
			v, err := r.bytes()
			if err != nil {
				return err
			}
			m.Args = append(m.Args, v)
		case 4:
			v, err := r.varint()
			if err != nil {
				return err
			}
			m.CompactMetadata = v != 0
		default:
			if err := r.skip(typ); err != nil {
				return err
			}
		}
	}
	return nil
}

// StmtExecuteOk terminates a StmtExecute's response once every
// resultset (if any) has been fully delivered.
type StmtExecuteOk struct{}

func (m *StmtExecuteOk) Encode() []byte        { return nil }
func (m *StmtExecuteOk) Decode(_ []byte) error { return nil }

// StmtExecuteProcessor is the server-role per-type capability.
type StmtExecuteProcessor interface {
	StmtExecute(*StmtExecute)
}

// StmtExecuteOkProcessor is the client-role per-type capability.
type StmtExecuteOkProcessor interface {
	StmtExecuteOk(*StmtExecuteOk)
}
