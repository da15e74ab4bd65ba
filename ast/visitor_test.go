package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/luadx-lang/luadx/ast"
)

type recorder struct {
	ast.DefaultVisitor
	order []string
}

func newRecorder() *recorder {
	r := &recorder{}
	r.Self = r
	return r
}

func (r *recorder) VisitRef(n *ast.Ref) {
	r.order = append(r.order, string(n.Name))
}

func TestWalkAssignment_VarsThenExps(t *testing.T) {
	r := newRecorder()
	n := &ast.Assignment{
		Vars: []ast.Expression{&ast.Ref{Name: []byte("a")}, &ast.Ref{Name: []byte("b")}},
		Exps: []ast.Expression{&ast.Ref{Name: []byte("c")}, &ast.Ref{Name: []byte("d")}},
	}
	n.Accept(r)
	assert.Equal(t, []string{"a", "b", "c", "d"}, r.order)
}

func TestWalkFor_BodyInitTestUpdate(t *testing.T) {
	r := newRecorder()
	n := &ast.For{
		InitExp: &ast.Ref{Name: []byte("init")},
		Test:    &ast.Ref{Name: []byte("test")},
		Update:  &ast.Ref{Name: []byte("update")},
		Body: ast.Block{
			&ast.FunctionCallStat{Call: &ast.FunctionCall{Lhs: &ast.Ref{Name: []byte("body")}}},
		},
	}
	n.Accept(r)
	assert.Equal(t, []string{"body", "init", "test", "update"}, r.order)
}

func TestWalkFunctionCall_ArgsThenCallee(t *testing.T) {
	r := newRecorder()
	n := &ast.FunctionCall{
		Lhs:  &ast.Ref{Name: []byte("callee")},
		Args: []ast.Expression{&ast.Ref{Name: []byte("arg1")}, &ast.Ref{Name: []byte("arg2")}},
	}
	n.Accept(r)
	assert.Equal(t, []string{"arg1", "arg2", "callee"}, r.order)
}

func TestWalkMethodCall_ArgsThenReceiver(t *testing.T) {
	r := newRecorder()
	n := &ast.MethodCall{
		Lhs:  &ast.Ref{Name: []byte("recv")},
		Name: []byte("m"),
		Args: []ast.Expression{&ast.Ref{Name: []byte("arg")}},
	}
	n.Accept(r)
	assert.Equal(t, []string{"arg", "recv"}, r.order)
}

func TestNone_EmptySpan(t *testing.T) {
	var n ast.Statement = &ast.None{}
	assert.Zero(t, n.Span())
}
