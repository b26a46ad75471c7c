package exprvisitor

// Shape distinguishes a scalar value from a list or a document, the
// three forms original_source's generic cdk::api::Any<> template
// allows regardless of what processes its scalar leaves.
type Shape int

const (
	ShapeScalar Shape = iota
	ShapeList
	ShapeDocument
)

// Any is a scalar, a list of Any values, or a string-keyed document
// of Any values (original_source's Any = cdk::api::Any<Scalar_processor>).
type Any struct {
	Shape    Shape
	Scalar   Scalar
	List     []Any
	Document map[string]Any
}

// AnyVisitor receives one Any value, dispatched by Shape.
type AnyVisitor interface {
	AnyScalar(Scalar)
	AnyList(items []Any)
	AnyDocument(fields map[string]Any)
}

// Walk delivers a to v through the one callback matching a.Shape.
func (a Any) Walk(v AnyVisitor) {
	switch a.Shape {
	case ShapeScalar:
		v.AnyScalar(a.Scalar)
	case ShapeList:
		v.AnyList(a.List)
	case ShapeDocument:
		v.AnyDocument(a.Document)
	}
}
