package validate

import (
	"reflect"

	"github.com/dop251/goja/ast"
)

// isNilNode guards against typed-nil interface values from optional AST
// fields.
func isNilNode(n ast.Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// childNodes enumerates the direct children of an AST node for the node
// kinds that can appear in plug-in sources. Unrecognized nodes have no
// children, which keeps both walker passes conservative.
func childNodes(n ast.Node) []ast.Node {
	var out []ast.Node
	add := func(nodes ...ast.Node) {
		for _, ch := range nodes {
			if !isNilNode(ch) {
				out = append(out, ch)
			}
		}
	}

	switch t := n.(type) {
	case *ast.Program:
		for _, s := range t.Body {
			add(s)
		}

	case *ast.BlockStatement:
		for _, s := range t.List {
			add(s)
		}
	case *ast.ExpressionStatement:
		add(t.Expression)
	case *ast.VariableDeclaration:
		for _, b := range t.List {
			add(b)
		}
	case *ast.LexicalDeclaration:
		for _, b := range t.List {
			add(b)
		}
	case *ast.FunctionDeclaration:
		add(t.Function)
	case *ast.ReturnStatement:
		add(t.Argument)
	case *ast.IfStatement:
		add(t.Test, t.Consequent, t.Alternate)
	case *ast.ForStatement:
		add(t.Initializer, t.Test, t.Update, t.Body)
	case *ast.ForInStatement:
		add(t.Into, t.Source, t.Body)
	case *ast.ForOfStatement:
		add(t.Into, t.Source, t.Body)
	case *ast.WhileStatement:
		add(t.Test, t.Body)
	case *ast.DoWhileStatement:
		add(t.Test, t.Body)
	case *ast.SwitchStatement:
		add(t.Discriminant)
		for _, cs := range t.Body {
			add(cs)
		}
	case *ast.CaseStatement:
		add(t.Test)
		for _, s := range t.Consequent {
			add(s)
		}
	case *ast.ThrowStatement:
		add(t.Argument)
	case *ast.TryStatement:
		add(t.Body)
		if t.Catch != nil {
			add(t.Catch)
		}
		if t.Finally != nil {
			add(t.Finally)
		}
	case *ast.CatchStatement:
		add(t.Parameter, t.Body)
	case *ast.LabelledStatement:
		add(t.Statement)

	case *ast.ForLoopInitializerExpression:
		add(t.Expression)
	case *ast.ForLoopInitializerVarDeclList:
		for _, b := range t.List {
			add(b)
		}
	case *ast.ForLoopInitializerLexicalDecl:
		add(&t.LexicalDeclaration)
	case *ast.ForIntoExpression:
		add(t.Expression)
	case *ast.ForIntoVar:
		add(t.Binding)
	case *ast.ForDeclaration:
		add(t.Target)

	case *ast.Binding:
		add(t.Target, t.Initializer)

	case *ast.CallExpression:
		add(t.Callee)
		for _, a := range t.ArgumentList {
			add(a)
		}
	case *ast.NewExpression:
		add(t.Callee)
		for _, a := range t.ArgumentList {
			add(a)
		}
	case *ast.DotExpression:
		add(t.Left)
	case *ast.BracketExpression:
		add(t.Left, t.Member)
	case *ast.AssignExpression:
		add(t.Left, t.Right)
	case *ast.BinaryExpression:
		add(t.Left, t.Right)
	case *ast.UnaryExpression:
		add(t.Operand)
	case *ast.ConditionalExpression:
		add(t.Test, t.Consequent, t.Alternate)
	case *ast.SequenceExpression:
		for _, e := range t.Sequence {
			add(e)
		}
	case *ast.ArrayLiteral:
		for _, e := range t.Value {
			add(e)
		}
	case *ast.ObjectLiteral:
		for _, p := range t.Value {
			add(p)
		}
	case *ast.PropertyKeyed:
		if t.Computed {
			add(t.Key)
		}
		add(t.Value)
	case *ast.PropertyShort:
		add(&t.Name, t.Initializer)
	case *ast.SpreadElement:
		add(t.Expression)
	case *ast.TemplateLiteral:
		for _, e := range t.Expressions {
			add(e)
		}
	case *ast.FunctionLiteral:
		if t.ParameterList != nil {
			for _, b := range t.ParameterList.List {
				add(b)
			}
		}
		add(t.Body)
	case *ast.ArrowFunctionLiteral:
		if t.ParameterList != nil {
			for _, b := range t.ParameterList.List {
				add(b)
			}
		}
		add(t.Body)
	case *ast.ExpressionBody:
		add(t.Expression)
	}

	return out
}
