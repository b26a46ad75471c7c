package registry

import (
	"github.com/xprotocol/mysqlx-engine/api"
	"github.com/xprotocol/mysqlx-engine/messages"
	"github.com/xprotocol/mysqlx-engine/wire"
)

func buildDefault() *Table {
	t := NewTable()
	registerClientSide(t)
	registerServerSide(t)
	return t
}

// registerClientSide populates the table consulted by a client-role
// engine (messages arriving FromServer), per spec.md §4.4's minimum
// list: Ok, Capabilities.{Get,Set}Response, Session.AuthenticateContinue,
// Session.AuthenticateOk, Resultset.{ColumnMetaData,Row,FetchDone,
// FetchDoneMoreResultsets}, Sql.StmtExecuteOk. Error and Notice are
// handled by the engine itself and never appear here.
func registerClientSide(t *Table) {
	t.Register(wire.FromServer, wire.TagOk, Entry{
		Decode: func(p []byte) (any, error) {
			m := &messages.Ok{}
			if err := m.Decode(p); err != nil {
				return nil, err
			}
			return m, nil
		},
		Dispatch: func(msg any, proc api.Processor) bool {
			pp, ok := proc.(messages.OkProcessor)
			if !ok {
				return false
			}
			pp.Ok(msg.(*messages.Ok))
			return true
		},
	})

	t.Register(wire.FromServer, wire.TagCapabilitiesGetSetResponse, Entry{
		Decode: func(p []byte) (any, error) {
			m := &messages.CapabilitiesGetSetResponse{}
			if err := m.Decode(p); err != nil {
				return nil, err
			}
			return m, nil
		},
		Dispatch: func(msg any, proc api.Processor) bool {
			pp, ok := proc.(messages.CapabilitiesProcessor)
			if !ok {
				return false
			}
			pp.Capabilities(msg.(*messages.CapabilitiesGetSetResponse))
			return true
		},
	})

	t.Register(wire.FromServer, wire.TagSessAuthenticateContinue, Entry{
		Decode: func(p []byte) (any, error) {
			m := &messages.AuthenticateContinue{}
			if err := m.Decode(p); err != nil {
				return nil, err
			}
			return m, nil
		},
		Dispatch: func(msg any, proc api.Processor) bool {
			pp, ok := proc.(messages.AuthenticateContinueProcessor)
			if !ok {
				return false
			}
			pp.AuthenticateContinue(msg.(*messages.AuthenticateContinue))
			return true
		},
	})

	t.Register(wire.FromServer, wire.TagSessAuthenticateOk, Entry{
		Decode: func(p []byte) (any, error) {
			m := &messages.AuthenticateOk{}
			if err := m.Decode(p); err != nil {
				return nil, err
			}
			return m, nil
		},
		Dispatch: func(msg any, proc api.Processor) bool {
			pp, ok := proc.(messages.AuthenticateOkProcessor)
			if !ok {
				return false
			}
			pp.AuthenticateOk(msg.(*messages.AuthenticateOk))
			return true
		},
	})

	t.Register(wire.FromServer, wire.TagResultsetColumnMetaData, Entry{
		Decode: func(p []byte) (any, error) {
			m := &messages.ColumnMetaData{}
			if err := m.Decode(p); err != nil {
				return nil, err
			}
			return m, nil
		},
		Dispatch: func(msg any, proc api.Processor) bool {
			pp, ok := proc.(messages.ColumnMetaDataProcessor)
			if !ok {
				return false
			}
			pp.ColumnMetaData(msg.(*messages.ColumnMetaData))
			return true
		},
	})

	t.Register(wire.FromServer, wire.TagResultsetRow, Entry{
		Decode: func(p []byte) (any, error) {
			m := &messages.Row{}
			if err := m.Decode(p); err != nil {
				return nil, err
			}
			return m, nil
		},
		Dispatch: func(msg any, proc api.Processor) bool {
			pp, ok := proc.(messages.RowProcessor)
			if !ok {
				return false
			}
			pp.Row(msg.(*messages.Row))
			return true
		},
	})

	t.Register(wire.FromServer, wire.TagResultsetFetchDone, Entry{
		Decode: func(p []byte) (any, error) {
			m := &messages.FetchDone{}
			if err := m.Decode(p); err != nil {
				return nil, err
			}
			return m, nil
		},
		Dispatch: func(msg any, proc api.Processor) bool {
			pp, ok := proc.(messages.FetchDoneProcessor)
			if !ok {
				return false
			}
			pp.FetchDone(msg.(*messages.FetchDone))
			return true
		},
	})

	t.Register(wire.FromServer, wire.TagResultsetFetchDoneMoreResults, Entry{
		Decode: func(p []byte) (any, error) {
			m := &messages.FetchDoneMoreResultsets{}
			if err := m.Decode(p); err != nil {
				return nil, err
			}
			return m, nil
		},
		Dispatch: func(msg any, proc api.Processor) bool {
			pp, ok := proc.(messages.FetchDoneMoreResultsetsProcessor)
			if !ok {
				return false
			}
			pp.FetchDoneMoreResultsets(msg.(*messages.FetchDoneMoreResultsets))
			return true
		},
	})

	t.Register(wire.FromServer, wire.TagSqlStmtExecuteOk, Entry{
		Decode: func(p []byte) (any, error) {
			m := &messages.StmtExecuteOk{}
			if err := m.Decode(p); err != nil {
				return nil, err
			}
			return m, nil
		},
		Dispatch: func(msg any, proc api.Processor) bool {
			pp, ok := proc.(messages.StmtExecuteOkProcessor)
			if !ok {
				return false
			}
			pp.StmtExecuteOk(msg.(*messages.StmtExecuteOk))
			return true
		},
	})
}

// registerServerSide populates the table consulted by a server-role
// engine (messages arriving FromClient), per spec.md §4.4's minimum
// list: Connection.CapabilitiesGet/Set, Session.AuthenticateStart/
// Continue, Session.Reset/Close, Sql.StmtExecute, Crud.{Find,Insert,
// Update,Delete}, Expect.{Open,Close}.
func registerServerSide(t *Table) {
	t.Register(wire.FromClient, wire.TagConnCapabilitiesGet, Entry{
		Decode: func(p []byte) (any, error) {
			m := &messages.ConnCapabilitiesGet{}
			return m, m.Decode(p)
		},
		Dispatch: func(msg any, proc api.Processor) bool {
			pp, ok := proc.(messages.ConnCapabilitiesGetProcessor)
			if !ok {
				return false
			}
			pp.ConnCapabilitiesGet(msg.(*messages.ConnCapabilitiesGet))
			return true
		},
	})

	t.Register(wire.FromClient, wire.TagConnCapabilitiesSet, Entry{
		Decode: func(p []byte) (any, error) {
			m := &messages.ConnCapabilitiesSet{}
			if err := m.Decode(p); err != nil {
				return nil, err
			}
			return m, nil
		},
		Dispatch: func(msg any, proc api.Processor) bool {
			pp, ok := proc.(messages.ConnCapabilitiesSetProcessor)
			if !ok {
				return false
			}
			pp.ConnCapabilitiesSet(msg.(*messages.ConnCapabilitiesSet))
			return true
		},
	})

	t.Register(wire.FromClient, wire.TagSessAuthenticateStart, Entry{
		Decode: func(p []byte) (any, error) {
			m := &messages.AuthenticateStart{}
			if err := m.Decode(p); err != nil {
				return nil, err
			}
			return m, nil
		},
		Dispatch: func(msg any, proc api.Processor) bool {
			pp, ok := proc.(messages.AuthenticateStartProcessor)
			if !ok {
				return false
			}
			pp.AuthenticateStart(msg.(*messages.AuthenticateStart))
			return true
		},
	})

	t.Register(wire.FromClient, wire.TagSessAuthenticateContin, Entry{
		Decode: func(p []byte) (any, error) {
			m := &messages.AuthenticateContinue{}
			if err := m.Decode(p); err != nil {
				return nil, err
			}
			return m, nil
		},
		Dispatch: func(msg any, proc api.Processor) bool {
			pp, ok := proc.(messages.AuthenticateContinueFromClientProcessor)
			if !ok {
				return false
			}
			pp.AuthenticateContinueFromClient(msg.(*messages.AuthenticateContinue))
			return true
		},
	})

	t.Register(wire.FromClient, wire.TagSessReset, Entry{
		Decode: func(p []byte) (any, error) {
			m := &messages.SessionReset{}
			if err := m.Decode(p); err != nil {
				return nil, err
			}
			return m, nil
		},
		Dispatch: func(msg any, proc api.Processor) bool {
			pp, ok := proc.(messages.SessionResetProcessor)
			if !ok {
				return false
			}
			pp.SessionReset(msg.(*messages.SessionReset))
			return true
		},
	})

	t.Register(wire.FromClient, wire.TagSessClose, Entry{
		Decode: func(p []byte) (any, error) {
			m := &messages.SessionClose{}
			return m, m.Decode(p)
		},
		Dispatch: func(msg any, proc api.Processor) bool {
			pp, ok := proc.(messages.SessionCloseProcessor)
			if !ok {
				return false
			}
			pp.SessionClose(msg.(*messages.SessionClose))
			return true
		},
	})

	t.Register(wire.FromClient, wire.TagSqlStmtExecute, Entry{
		Decode: func(p []byte) (any, error) {
			m := &messages.StmtExecute{}
			if err := m.Decode(p); err != nil {
				return nil, err
			}
			return m, nil
		},
		Dispatch: func(msg any, proc api.Processor) bool {
			pp, ok := proc.(messages.StmtExecuteProcessor)
			if !ok {
				return false
			}
			pp.StmtExecute(msg.(*messages.StmtExecute))
			return true
		},
	})

	t.Register(wire.FromClient, wire.TagCrudFind, Entry{
		Decode: func(p []byte) (any, error) {
			m := &messages.Find{}
			if err := m.Decode(p); err != nil {
				return nil, err
			}
			return m, nil
		},
		Dispatch: func(msg any, proc api.Processor) bool {
			pp, ok := proc.(messages.FindProcessor)
			if !ok {
				return false
			}
			pp.Find(msg.(*messages.Find))
			return true
		},
	})

	t.Register(wire.FromClient, wire.TagCrudInsert, Entry{
		Decode: func(p []byte) (any, error) {
			m := &messages.Insert{}
			if err := m.Decode(p); err != nil {
				return nil, err
			}
			return m, nil
		},
		Dispatch: func(msg any, proc api.Processor) bool {
			pp, ok := proc.(messages.InsertProcessor)
			if !ok {
				return false
			}
			pp.Insert(msg.(*messages.Insert))
			return true
		},
	})

	t.Register(wire.FromClient, wire.TagCrudUpdate, Entry{
		Decode: func(p []byte) (any, error) {
			m := &messages.Update{}
			if err := m.Decode(p); err != nil {
				return nil, err
			}
			return m, nil
		},
		Dispatch: func(msg any, proc api.Processor) bool {
			pp, ok := proc.(messages.UpdateProcessor)
			if !ok {
				return false
			}
			pp.Update(msg.(*messages.Update))
			return true
		},
	})

	t.Register(wire.FromClient, wire.TagCrudDelete, Entry{
		Decode: func(p []byte) (any, error) {
			m := &messages.Delete{}
			if err := m.Decode(p); err != nil {
				return nil, err
			}
			return m, nil
		},
		Dispatch: func(msg any, proc api.Processor) bool {
			pp, ok := proc.(messages.DeleteProcessor)
			if !ok {
				return false
			}
			pp.Delete(msg.(*messages.Delete))
			return true
		},
	})

	t.Register(wire.FromClient, wire.TagExpectOpen, Entry{
		Decode: func(p []byte) (any, error) {
			m := &messages.ExpectOpen{}
			if err := m.Decode(p); err != nil {
				return nil, err
			}
			return m, nil
		},
		Dispatch: func(msg any, proc api.Processor) bool {
			pp, ok := proc.(messages.ExpectOpenProcessor)
			if !ok {
				return false
			}
			pp.ExpectOpen(msg.(*messages.ExpectOpen))
			return true
		},
	})

	t.Register(wire.FromClient, wire.TagExpectClose, Entry{
		Decode: func(p []byte) (any, error) {
			m := &messages.ExpectClose{}
			return m, m.Decode(p)
		},
		Dispatch: func(msg any, proc api.Processor) bool {
			pp, ok := proc.(messages.ExpectCloseProcessor)
			if !ok {
				return false
			}
			pp.ExpectClose(msg.(*messages.ExpectClose))
			return true
		},
	})
}
