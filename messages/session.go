package messages

// AuthenticateStart begins a SASL-style authentication exchange.
type AuthenticateStart struct {
	MechName        string
	AuthData        []byte
	InitialResponse []byte
}

func (m *AuthenticateStart) Encode() []byte {
	var b []byte
	b = appendString(b, 1, m.MechName)
	b = appendBytes(b, 2, m.AuthData)
	b = appendBytes(b, 3, m.InitialResponse)
	return b
}

func (m *AuthenticateStart) Decode(payload []byte) error {
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
			m.MechName = string(s)
		case 2:
			v, err := r.bytes()
			if err != nil {
				return err
			}
			m.AuthData = v
		case 3:
			v, err := r.bytes()
			if err != nil {
				return err
			}
			m.InitialResponse = v
		default:
			if err := r.skip(typ); err != nil {
				return err
			}
		}
	}
	return nil
}

// AuthenticateContinue carries one round of challenge/response data in
// either direction.
type AuthenticateContinue struct {
	AuthData []byte
}

func (m *AuthenticateContinue) Encode() []byte {
	return appendBytes(nil, 1, m.AuthData)
}

func (m *AuthenticateContinue) Decode(payload []byte) error {
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
			m.AuthData = v
			continue
		}
		if err := r.skip(typ); err != nil {
			return err
		}
	}
	return nil
}

// AuthenticateOk concludes a successful authentication exchange.
type AuthenticateOk struct {
	AuthData []byte
}

func (m *AuthenticateOk) Encode() []byte {
	return appendBytes(nil, 1, m.AuthData)
}

func (m *AuthenticateOk) Decode(payload []byte) error {
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
			m.AuthData = v
			continue
		}
		if err := r.skip(typ); err != nil {
			return err
		}
	}
	return nil
}

// SessionReset asks the server to reset session state, optionally
// keeping the underlying connection open for reauthentication.
type SessionReset struct {
	KeepOpen bool
}

func (m *SessionReset) Encode() []byte {
	return appendBool(nil, 1, m.KeepOpen)
}

func (m *SessionReset) Decode(payload []byte) error {
	r := &fieldReader{buf: payload}
	for {
		num, typ, ok := r.next()
		if !ok {
			break
		}
		if num == 1 {
			v, err := r.varint()
			if err != nil {
				return err
			}
			m.KeepOpen = v != 0
			continue
		}
		if err := r.skip(typ); err != nil {
			return err
		}
	}
	return nil
}

// SessionClose asks the server to close the session.
type SessionClose struct{}

func (m *SessionClose) Encode() []byte        { return nil }
func (m *SessionClose) Decode(_ []byte) error { return nil }

// AuthenticateContinueProcessor and AuthenticateOkProcessor are the
// client-role per-type capabilities for the server's two auth replies.
type AuthenticateContinueProcessor interface {
	AuthenticateContinue(*AuthenticateContinue)
}

type AuthenticateOkProcessor interface {
	AuthenticateOk(*AuthenticateOk)
}

// AuthenticateStartProcessor, SessionResetProcessor and
// SessionCloseProcessor are the server-role per-type capabilities.
type AuthenticateStartProcessor interface {
	AuthenticateStart(*AuthenticateStart)
}

type SessionResetProcessor interface {
	SessionReset(*SessionReset)
}

type SessionCloseProcessor interface {
	SessionClose(*SessionClose)
}

// AuthenticateContinueFromClientProcessor is the server-role capability
// for the client's own AuthenticateContinue (tag is distinct from the
// server->client one only at the registry level; the Go type is
// shared, only the capability name differs to keep dispatch explicit).
type AuthenticateContinueFromClientProcessor interface {
	AuthenticateContinueFromClient(*AuthenticateContinue)
}
