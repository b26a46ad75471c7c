package exprvisitor

import "testing"

type recordingScalarVisitor struct {
	calls []string
}

func (r *recordingScalarVisitor) Null()                                { r.calls = append(r.calls, "null") }
func (r *recordingScalarVisitor) Str(s string)                         { r.calls = append(r.calls, "str:"+s) }
func (r *recordingScalarVisitor) StrCharset(id uint64, s string)       { r.calls = append(r.calls, "strcs:"+s) }
func (r *recordingScalarVisitor) Int(v int64)                          { r.calls = append(r.calls, "int") }
func (r *recordingScalarVisitor) Uint(v uint64)                        { r.calls = append(r.calls, "uint") }
func (r *recordingScalarVisitor) Float32(v float32)                    { r.calls = append(r.calls, "f32") }
func (r *recordingScalarVisitor) Float64(v float64)                    { r.calls = append(r.calls, "f64") }
func (r *recordingScalarVisitor) Bool(v bool)                          { r.calls = append(r.calls, "bool") }
func (r *recordingScalarVisitor) Bytes(v []byte)                       { r.calls = append(r.calls, "bytes") }

func TestScalarWalkDispatchesByTag(t *testing.T) {
	cases := []struct {
		s    Scalar
		want string
	}{
		{Scalar{Tag: ScalarNull}, "null"},
		{Scalar{Tag: ScalarStr, Str: "hi"}, "str:hi"},
		{Scalar{Tag: ScalarStrCharset, Str: "hi", CharsetID: 33}, "strcs:hi"},
		{Scalar{Tag: ScalarInt, Int: -1}, "int"},
		{Scalar{Tag: ScalarUint, Uint: 1}, "uint"},
		{Scalar{Tag: ScalarFloat32, Float32: 1.5}, "f32"},
		{Scalar{Tag: ScalarFloat64, Float64: 1.5}, "f64"},
		{Scalar{Tag: ScalarBool, Bool: true}, "bool"},
		{Scalar{Tag: ScalarBytes, Bytes: []byte("x")}, "bytes"},
	}
	for _, c := range cases {
		rv := &recordingScalarVisitor{}
		c.s.Walk(rv)
		if len(rv.calls) != 1 || rv.calls[0] != c.want {
			t.Errorf("Scalar{Tag:%v}.Walk: got %v, want [%s]", c.s.Tag, rv.calls, c.want)
		}
	}
}

type recordingAnyVisitor struct {
	calls []string
}

func (r *recordingAnyVisitor) AnyScalar(s Scalar)              { r.calls = append(r.calls, "scalar") }
func (r *recordingAnyVisitor) AnyList(items []Any)             { r.calls = append(r.calls, "list") }
func (r *recordingAnyVisitor) AnyDocument(fields map[string]Any) { r.calls = append(r.calls, "document") }

func TestAnyWalkDispatchesByShape(t *testing.T) {
	cases := []struct {
		a    Any
		want string
	}{
		{Any{Shape: ShapeScalar, Scalar: Scalar{Tag: ScalarInt, Int: 1}}, "scalar"},
		{Any{Shape: ShapeList, List: []Any{{Shape: ShapeScalar}}}, "list"},
		{Any{Shape: ShapeDocument, Document: map[string]Any{"a": {Shape: ShapeScalar}}}, "document"},
	}
	for _, c := range cases {
		rv := &recordingAnyVisitor{}
		c.a.Walk(rv)
		if len(rv.calls) != 1 || rv.calls[0] != c.want {
			t.Errorf("Any{Shape:%v}.Walk: got %v, want [%s]", c.a.Shape, rv.calls, c.want)
		}
	}
}

type recordingExprShapeVisitor struct {
	calls []string
}

func (r *recordingExprShapeVisitor) ExprScalar(e Expr, leafV ExprVisitor) {
	r.calls = append(r.calls, "scalar")
	e.WalkLeaf(leafV)
}
func (r *recordingExprShapeVisitor) ExprList(items []Expr) { r.calls = append(r.calls, "list") }
func (r *recordingExprShapeVisitor) ExprDocument(fields map[string]Expr) {
	r.calls = append(r.calls, "document")
}

type recordingExprLeafVisitor struct {
	calls []string
	args  []Expr
	path  DocPath
}

func (r *recordingExprLeafVisitor) Val() ScalarVisitor { r.calls = append(r.calls, "val"); return nil }
func (r *recordingExprLeafVisitor) Var(name string)    { r.calls = append(r.calls, "var:"+name) }
func (r *recordingExprLeafVisitor) Identifier(name string, obj *DbObj) {
	r.calls = append(r.calls, "id:"+name)
}
func (r *recordingExprLeafVisitor) IdentifierWithPath(name string, obj *DbObj, path DocPath) {
	r.calls = append(r.calls, "idpath:"+name)
}
func (r *recordingExprLeafVisitor) DocPathIdentifier(path DocPath) {
	r.calls = append(r.calls, "docpath")
	r.path = path
}
func (r *recordingExprLeafVisitor) Operator(name string, args []Expr) {
	r.calls = append(r.calls, "op:"+name)
	r.args = args
}
func (r *recordingExprLeafVisitor) FunctionCall(fn DbObj, args []Expr) {
	r.calls = append(r.calls, "call:"+fn.Name)
	r.args = args
}
func (r *recordingExprLeafVisitor) Placeholder()                   { r.calls = append(r.calls, "ph") }
func (r *recordingExprLeafVisitor) NamedPlaceholder(name string)   { r.calls = append(r.calls, "phn:"+name) }
func (r *recordingExprLeafVisitor) PositionalPlaceholder(pos uint32) {
	r.calls = append(r.calls, "php")
}

func TestExprWalkDispatchesLeafKinds(t *testing.T) {
	gt := Expr{Shape: ShapeScalar, Leaf: LeafOperator, Op: "gt", Args: []Expr{
		{Shape: ShapeScalar, Leaf: LeafIdentifier, Name: "age"},
		{Shape: ShapeScalar, Leaf: LeafValue, Value: Scalar{Tag: ScalarInt, Int: 21}},
	}}

	shapeV := &recordingExprShapeVisitor{}
	leafV := &recordingExprLeafVisitor{}
	gt.Walk(shapeV, leafV)

	if len(shapeV.calls) != 1 || shapeV.calls[0] != "scalar" {
		t.Fatalf("shape dispatch: got %v", shapeV.calls)
	}
	if len(leafV.calls) != 1 || leafV.calls[0] != "op:gt" {
		t.Fatalf("leaf dispatch: got %v", leafV.calls)
	}
	if len(leafV.args) != 2 {
		t.Fatalf("operator args: got %d, want 2", len(leafV.args))
	}

	for _, arg := range leafV.args {
		argLeafV := &recordingExprLeafVisitor{}
		arg.WalkLeaf(argLeafV)
		if len(argLeafV.calls) != 1 {
			t.Errorf("arg leaf dispatch: got %v", argLeafV.calls)
		}
	}

	call := Expr{Shape: ShapeScalar, Leaf: LeafFunctionCall, Function: &DbObj{Name: "UPPER"}, Args: []Expr{
		{Shape: ShapeScalar, Leaf: LeafPlaceholder},
	}}
	lv2 := &recordingExprLeafVisitor{}
	call.WalkLeaf(lv2)
	if len(lv2.calls) != 1 || lv2.calls[0] != "call:UPPER" {
		t.Fatalf("function call dispatch: got %v", lv2.calls)
	}

	list := Expr{Shape: ShapeList, List: []Expr{{Shape: ShapeScalar, Leaf: LeafNamedPlaceholder, PlaceholderName: "x"}}}
	shapeV2 := &recordingExprShapeVisitor{}
	list.Walk(shapeV2, leafV)
	if len(shapeV2.calls) != 1 || shapeV2.calls[0] != "list" {
		t.Fatalf("list shape dispatch: got %v", shapeV2.calls)
	}
}

func TestDocPathIdentifierRoundTrip(t *testing.T) {
	path := DocPath{
		{Kind: Member, Name: "a"},
		{Kind: ArrayIndex, Index: 2},
		{Kind: DoubleAsterisk},
	}
	e := Expr{Shape: ShapeScalar, Leaf: LeafDocPath, Path: path}
	lv := &recordingExprLeafVisitor{}
	e.WalkLeaf(lv)
	if len(lv.calls) != 1 || lv.calls[0] != "docpath" {
		t.Fatalf("doc path dispatch: got %v", lv.calls)
	}
	if len(lv.path) != len(path) {
		t.Fatalf("doc path: got %d steps, want %d", len(lv.path), len(path))
	}
	for i := range path {
		if lv.path[i] != path[i] {
			t.Errorf("doc path step %d: got %+v, want %+v", i, lv.path[i], path[i])
		}
	}
}
