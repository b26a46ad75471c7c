package messages

import "google.golang.org/protobuf/encoding/protowire"

// Capability is a single name/value capability entry, value carried as
// a pre-encoded Any (scalar|list|document, §6.5) — kept opaque here
// since capability negotiation semantics are out of scope (§1).
type Capability struct {
	Name  string
	Value []byte
}

// Capabilities is a set of capability entries, used both in the
// server's response and the client's Set request.
type Capabilities struct {
	Capabilities []Capability
}

func (m *Capabilities) Encode() []byte {
	var b []byte
	for _, c := range m.Capabilities {
		var cb []byte
		cb = appendString(cb, 1, c.Name)
		cb = appendBytes(cb, 2, c.Value)
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, cb)
	}
	return b
}

func (m *Capabilities) Decode(payload []byte) error {
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
		var c Capability
		cr := &fieldReader{buf: raw}
		for {
			cnum, ctyp, ok := cr.next()
			if !ok {
				break
			}
			switch cnum {
			case 1:
				s, err := cr.bytes()
				if err != nil {
					return err
				}
				c.Name = string(s)
			case 2:
				v, err := cr.bytes()
				if err != nil {
					return err
				}
				c.Value = v
			default:
				if err := cr.skip(ctyp); err != nil {
					return err
				}
			}
		}
		m.Capabilities = append(m.Capabilities, c)
	}
	return nil
}

// ConnCapabilitiesGet is the client's request to read server
// capabilities; it carries no fields.
type ConnCapabilitiesGet struct{}

func (m *ConnCapabilitiesGet) Encode() []byte        { return nil }
func (m *ConnCapabilitiesGet) Decode(_ []byte) error { return nil }

// ConnCapabilitiesSet is the client's request to negotiate capabilities.
type ConnCapabilitiesSet struct {
	Capabilities Capabilities
}

func (m *ConnCapabilitiesSet) Encode() []byte {
	inner := m.Capabilities.Encode()
	var b []byte
	if len(inner) > 0 {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, inner)
	}
	return b
}

func (m *ConnCapabilitiesSet) Decode(payload []byte) error {
	r := &fieldReader{buf: payload}
	for {
		num, typ, ok := r.next()
		if !ok {
			break
		}
		if num == 1 {
			raw, err := r.bytes()
			if err != nil {
				return err
			}
			if err := m.Capabilities.Decode(raw); err != nil {
				return err
			}
			continue
		}
		if err := r.skip(typ); err != nil {
			return err
		}
	}
	return nil
}

// CapabilitiesGetSetResponse is the server's reply to either
// CON_CAPABILITIES_GET or CON_CAPABILITIES_SET.
type CapabilitiesGetSetResponse struct {
	Capabilities Capabilities
}

func (m *CapabilitiesGetSetResponse) Encode() []byte {
	return m.Capabilities.Encode()
}

func (m *CapabilitiesGetSetResponse) Decode(payload []byte) error {
	return m.Capabilities.Decode(payload)
}

// CapabilitiesProcessor is the per-type capability for the server's
// capability response.
type CapabilitiesProcessor interface {
	Capabilities(*CapabilitiesGetSetResponse)
}

// ConnCapabilitiesGetProcessor and ConnCapabilitiesSetProcessor are the
// server-role per-type capabilities for the client's two requests.
type ConnCapabilitiesGetProcessor interface {
	ConnCapabilitiesGet(*ConnCapabilitiesGet)
}

type ConnCapabilitiesSetProcessor interface {
	ConnCapabilitiesSet(*ConnCapabilitiesSet)
}
