// Package exprvisitor models the Any/Expression value trees the X
// Protocol carries inside CRUD criteria, projections and StmtExecute
// arguments, and the visitor contract used to walk them.
//
// Building and encoding these trees from a query language is out of
// scope (spec.md §1 treats expression/document builders as external
// collaborators); this package only supplies the shared vocabulary —
// the node types and visitor interfaces — so a caller that already
// has a decoded tree (or wants to build one to hand to Find/Insert/
// Update's opaque Criteria/Projection/Operations fields) has a single
// place to walk it, mirroring original_source's
// cdk/include/mysql/cdk/protocol/mysqlx_expr.h (Scalar_processor,
// Expr_processor, Doc_path) re-expressed as Go interfaces instead of
// an abstract base class hierarchy.
package exprvisitor

// ScalarTag selects which field of a Scalar is meaningful.
type ScalarTag int

const (
	ScalarNull ScalarTag = iota
	ScalarStr
	ScalarStrCharset
	ScalarInt
	ScalarUint
	ScalarFloat32
	ScalarFloat64
	ScalarBool
	ScalarBytes
)

// Scalar is one base value from original_source's Scalar_processor:
// a string (with or without an explicit charset), a signed or
// unsigned integer, a float or double, a boolean, raw bytes, or null.
type Scalar struct {
	Tag       ScalarTag
	Str       string
	CharsetID uint64
	Int       int64
	Uint      uint64
	Float32   float32
	Float64   float64
	Bool      bool
	Bytes     []byte
}

// ScalarVisitor receives exactly one callback per Scalar, selected by
// its Tag — the Go analogue of Scalar_processor's pure-virtual methods.
type ScalarVisitor interface {
	Null()
	Str(s string)
	StrCharset(charsetID uint64, s string)
	Int(v int64)
	Uint(v uint64)
	Float32(v float32)
	Float64(v float64)
	Bool(v bool)
	Bytes(v []byte)
}

// Walk delivers s to v through the one callback matching s.Tag.
func (s Scalar) Walk(v ScalarVisitor) {
	switch s.Tag {
	case ScalarNull:
		v.Null()
	case ScalarStr:
		v.Str(s.Str)
	case ScalarStrCharset:
		v.StrCharset(s.CharsetID, s.Str)
	case ScalarInt:
		v.Int(s.Int)
	case ScalarUint:
		v.Uint(s.Uint)
	case ScalarFloat32:
		v.Float32(s.Float32)
	case ScalarFloat64:
		v.Float64(s.Float64)
	case ScalarBool:
		v.Bool(s.Bool)
	case ScalarBytes:
		v.Bytes(s.Bytes)
	}
}
