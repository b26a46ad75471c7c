package exprvisitor

// DocPathStepKind is one step's kind in a document field path, per
// original_source's Doc_path::Type.
type DocPathStepKind int

const (
	Member             DocPathStepKind = 1
	MemberAsterisk     DocPathStepKind = 2
	ArrayIndex         DocPathStepKind = 3
	ArrayIndexAsterisk DocPathStepKind = 4
	DoubleAsterisk     DocPathStepKind = 5
)

// DocPathStep is one element of a DocPath: a named member (Member), an
// array slot (ArrayIndex, using Index), or one of the wildcard forms
// that carry neither Name nor Index.
type DocPathStep struct {
	Kind  DocPathStepKind
	Name  string
	Index uint32
}

// DocPath is a sequence of steps identifying a field inside a document
// value, e.g. `$.a.b[2]`.
type DocPath []DocPathStep

// DbObj names a database object (a stored function, or the table a
// column identifier belongs to), original_source's Db_obj.
type DbObj struct {
	Name   string
	Schema string
}

// LeafKind selects which of Expr's leaf fields is meaningful when
// Shape == ShapeScalar — the richer set of base forms
// original_source's Expr_processor allows beyond a plain Scalar.
type LeafKind int

const (
	LeafValue LeafKind = iota
	LeafVariable
	LeafIdentifier
	LeafIdentifierWithPath
	LeafDocPath
	LeafOperator
	LeafFunctionCall
	LeafPlaceholder
	LeafNamedPlaceholder
	LeafPositionalPlaceholder
)

// Expr is one node of an expression tree: like Any, it is a scalar, a
// list, or a document, but its scalar leaves can additionally be a
// variable reference, a column/document-field identifier, an operator
// or function application, or a placeholder — original_source's
// Expression = cdk::api::Any<Expr_processor>.
type Expr struct {
	Shape    Shape
	List     []Expr
	Document map[string]Expr

	Leaf LeafKind

	Value Scalar // LeafValue

	Name string  // LeafVariable, LeafIdentifier[WithPath]
	Obj  *DbObj  // LeafIdentifier[WithPath], non-nil if the column is qualified
	Path DocPath // LeafIdentifierWithPath, LeafDocPath

	Op       string // LeafOperator
	Function *DbObj // LeafFunctionCall
	Args     []Expr // LeafOperator, LeafFunctionCall

	PlaceholderName string // LeafNamedPlaceholder
	PlaceholderPos  uint32 // LeafPositionalPlaceholder
}

// ExprVisitor is the Go analogue of original_source's Expr_processor:
// one callback per leaf kind a scalar-shaped Expr can take. Val
// returns the ScalarVisitor that should receive a LeafValue's Scalar,
// or nil to skip it, mirroring Expr_processor::val()'s "return NULL to
// skip" contract; Operator and FunctionCall receive their already
// materialized argument list directly rather than a lazy processor,
// since this package's Expr is a fully decoded tree, not a stream.
type ExprVisitor interface {
	Val() ScalarVisitor
	Var(name string)
	Identifier(name string, obj *DbObj)
	IdentifierWithPath(name string, obj *DbObj, path DocPath)
	DocPathIdentifier(path DocPath)
	Operator(name string, args []Expr)
	FunctionCall(fn DbObj, args []Expr)
	Placeholder()
	NamedPlaceholder(name string)
	PositionalPlaceholder(pos uint32)
}

// ExprAnyVisitor receives an Expr dispatched by Shape, the Expr
// equivalent of AnyVisitor.
type ExprAnyVisitor interface {
	ExprScalar(Expr, ExprVisitor)
	ExprList(items []Expr)
	ExprDocument(fields map[string]Expr)
}

// Walk delivers e to shapeV through the callback matching e.Shape; for
// a scalar-shaped Expr, shapeV.ExprScalar is responsible for further
// dispatching e's leaf into leafV via WalkLeaf.
func (e Expr) Walk(shapeV ExprAnyVisitor, leafV ExprVisitor) {
	switch e.Shape {
	case ShapeScalar:
		shapeV.ExprScalar(e, leafV)
	case ShapeList:
		shapeV.ExprList(e.List)
	case ShapeDocument:
		shapeV.ExprDocument(e.Document)
	}
}

// WalkLeaf dispatches a scalar-shaped Expr's leaf into v, by Leaf.
func (e Expr) WalkLeaf(v ExprVisitor) {
	switch e.Leaf {
	case LeafValue:
		if sv := v.Val(); sv != nil {
			e.Value.Walk(sv)
		}
	case LeafVariable:
		v.Var(e.Name)
	case LeafIdentifier:
		v.Identifier(e.Name, e.Obj)
	case LeafIdentifierWithPath:
		v.IdentifierWithPath(e.Name, e.Obj, e.Path)
	case LeafDocPath:
		v.DocPathIdentifier(e.Path)
	case LeafOperator:
		v.Operator(e.Op, e.Args)
	case LeafFunctionCall:
		if e.Function != nil {
			v.FunctionCall(*e.Function, e.Args)
		}
	case LeafPlaceholder:
		v.Placeholder()
	case LeafNamedPlaceholder:
		v.NamedPlaceholder(e.PlaceholderName)
	case LeafPositionalPlaceholder:
		v.PositionalPlaceholder(e.PlaceholderPos)
	}
}
