package messages

// Error is the universal Error frame, generalized from
// original_source's Mysqlx::Error (code, sql_state, msg, severity).
// Unlike the original, which collapses two wire severities onto one
// client-visible value, the wire Severity is kept verbatim (see
// SPEC_FULL.md §B.5).
type Error struct {
	Severity uint32
	Code     uint32
	SQLState string
	Msg      string
}

func (m *Error) Encode() []byte {
	var b []byte
	b = appendVarint(b, 1, uint64(m.Severity))
	b = appendVarint(b, 2, uint64(m.Code))
	b = appendString(b, 3, m.SQLState)
	b = appendString(b, 4, m.Msg)
	return b
}

func (m *Error) Decode(payload []byte) error {
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
			m.Severity = uint32(v)
		case 2:
			v, err := r.varint()
			if err != nil {
				return err
			}
			m.Code = uint32(v)
		case 3:
			s, err := r.bytes()
			if err != nil {
				return err
			}
			m.SQLState = string(s)
		case 4:
			s, err := r.bytes()
			if err != nil {
				return err
			}
			m.Msg = string(s)
		default:
			if err := r.skip(typ); err != nil {
				return err
			}
		}
	}
	return nil
}
