package messages

// NoticeFrame is the universal out-of-band Notice envelope. scope
// distinguishes global (server-wide) from local (current message
// sequence) notices, per the original Mysqlx::Notice::Frame.
type NoticeFrame struct {
	Type    uint32
	Scope   int32
	Payload []byte
}

func (m *NoticeFrame) Encode() []byte {
	var b []byte
	b = appendVarint(b, 1, uint64(m.Type))
	b = appendVarint(b, 2, uint64(m.Scope))
	b = appendBytes(b, 3, m.Payload)
	return b
}

func (m *NoticeFrame) Decode(payload []byte) error {
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
			v, err := r.varint()
			if err != nil {
				return err
			}
			m.Scope = int32(v)
		case 3:
			v, err := r.bytes()
			if err != nil {
				return err
			}
			m.Payload = v
		default:
			if err := r.skip(typ); err != nil {
				return err
			}
		}
	}
	return nil
}
