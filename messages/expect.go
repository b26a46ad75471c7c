package messages

// ExpectCondition is one "expect" precondition guarding the following
// pipelined statements (e.g. "no error occurred so far").
type ExpectCondition struct {
	ConditionKey   uint32
	ConditionValue []byte
	Op             uint32
}

// ExpectOpen opens a new block of expected conditions.
type ExpectOpen struct {
	Conditions []ExpectCondition
}

func (m *ExpectOpen) Encode() []byte {
	var b []byte
	for _, c := range m.Conditions {
		var cb []byte
		cb = appendVarint(cb, 1, uint64(c.ConditionKey))
		cb = appendBytes(cb, 2, c.ConditionValue)
		cb = appendVarint(cb, 3, uint64(c.Op))
		b = appendBytes(b, 1, cb)
	}
	return b
}

func (m *ExpectOpen) Decode(payload []byte) error {
	r := &fieldReader{buf: payload}
	for {
		num, typ, ok := r.next()
		if !ok {
			break
		}
		if num != 1 {
			if err := r.skip(typ); err != nil {
				return err
			}
			continue
		}
		raw, err := r.bytes()
		if err != nil {
			return err
		}
		var c ExpectCondition
		cr := &fieldReader{buf: raw}
		for {
			cnum, ctyp, ok := cr.next()
			if !ok {
				break
			}
			switch cnum {
			case 1:
				v, err := cr.varint()
				if err != nil {
					return err
				}
				c.ConditionKey = uint32(v)
			case 2:
				v, err := cr.bytes()
				if err != nil {
					return err
				}
				c.ConditionValue = v
			case 3:
				v, err := cr.varint()
				if err != nil {
					return err
				}
				c.Op = uint32(v)
			default:
				if err := cr.skip(ctyp); err != nil {
					return err
				}
			}
		}
		m.Conditions = append(m.Conditions, c)
	}
	return nil
}

// ExpectClose closes the most recently opened expect block.
type ExpectClose struct{}

func (m *ExpectClose) Encode() []byte        { return nil }
func (m *ExpectClose) Decode(_ []byte) error { return nil }

// ExpectOpenProcessor and ExpectCloseProcessor are the server-role
// per-type capabilities.
type ExpectOpenProcessor interface {
	ExpectOpen(*ExpectOpen)
}

type ExpectCloseProcessor interface {
	ExpectClose(*ExpectClose)
}
