package validate

import (
	"fmt"
	"strings"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/file"

	"github.com/plugsmith/plugsmith/internal/surface"
)

// dotCtx describes the syntactic position of a member access.
type dotCtx int

const (
	dotLoad   dotCtx = iota // plain read
	dotAssign               // target of an assignment
)

// typeChecker validates one parsed script against the surface description.
//
// The checker is deliberately conservative: a receiver whose type cannot be
// resolved statically produces no diagnostics. The ambient allow-list and the
// type catalog are the only sources of truth; nothing is inferred about the
// host beyond what the description states.
type typeChecker struct {
	sur      *surface.Surface
	file     SourceFile
	declared map[string]bool   // every name declared anywhere in the file
	locals   map[string]string // declared name -> resolved type name, when known
	diags    []Diagnostic
}

// checkTypes runs type-level validation for a single parsed script file.
func checkTypes(sur *surface.Surface, f SourceFile, prog *ast.Program) []Diagnostic {
	c := &typeChecker{
		sur:      sur,
		file:     f,
		declared: map[string]bool{"this": true, "arguments": true},
		locals:   map[string]string{},
	}
	c.collect(prog)
	c.walk(prog)
	return c.diags
}

func (c *typeChecker) report(idx interface{ Idx0() file.Idx }, format string, args ...any) {
	line, col := 0, 0
	if idx != nil {
		// ParseFile with a nil file set places the file at base offset 1.
		line, col = lineCol(c.file.Content, int(idx.Idx0())-1)
	}
	c.diags = append(c.diags, Diagnostic{
		Severity: SeverityError,
		Check:    CheckType,
		File:     c.file.Path,
		Line:     line,
		Column:   col,
		Message:  fmt.Sprintf(format, args...),
	})
}

// --- declaration pass -------------------------------------------------------

// collect records every declared name in the file: var/let/const bindings,
// function declarations and parameters, and catch parameters. Scoping is
// intentionally flat: generated plug-ins are small, and a flat model cannot
// produce false "undefined reference" diagnostics.
func (c *typeChecker) collect(n ast.Node) {
	if isNilNode(n) {
		return
	}
	switch t := n.(type) {
	case *ast.VariableDeclaration:
		for _, b := range t.List {
			c.collectBinding(b)
		}
		return
	case *ast.LexicalDeclaration:
		for _, b := range t.List {
			c.collectBinding(b)
		}
		return
	case *ast.FunctionDeclaration:
		c.collect(t.Function)
		return
	case *ast.FunctionLiteral:
		if t.Name != nil {
			c.declared[string(t.Name.Name)] = true
		}
		c.collectParams(t.ParameterList)
		c.collect(t.Body)
		return
	case *ast.ArrowFunctionLiteral:
		c.collectParams(t.ParameterList)
		c.collect(t.Body)
		return
	case *ast.CatchStatement:
		c.collectTarget(t.Parameter)
		c.collect(t.Body)
		return
	case *ast.Binding:
		c.collectBinding(t)
		return
	case *ast.ForDeclaration:
		c.collectTarget(t.Target)
		return
	}
	for _, ch := range childNodes(n) {
		c.collect(ch)
	}
}

func (c *typeChecker) collectParams(pl *ast.ParameterList) {
	if pl == nil {
		return
	}
	for _, b := range pl.List {
		c.collectBinding(b)
	}
	if pl.Rest != nil {
		c.collectTarget(pl.Rest)
	}
}

func (c *typeChecker) collectBinding(b *ast.Binding) {
	if b == nil {
		return
	}
	c.collectTarget(b.Target)
	if id, ok := b.Target.(*ast.Identifier); ok && b.Initializer != nil {
		name := string(id.Name)
		if _, seen := c.locals[name]; !seen {
			c.locals[name] = c.valueType(b.Initializer)
		}
	}
	if b.Initializer != nil {
		c.collect(b.Initializer)
	}
}

func (c *typeChecker) collectTarget(target ast.Expression) {
	switch t := target.(type) {
	case *ast.Identifier:
		c.declared[string(t.Name)] = true
	case *ast.ObjectPattern:
		for _, p := range t.Properties {
			switch pp := p.(type) {
			case *ast.PropertyShort:
				c.declared[string(pp.Name.Name)] = true
			case *ast.PropertyKeyed:
				c.collectTarget(pp.Value)
			}
		}
		if t.Rest != nil {
			c.collectTarget(t.Rest)
		}
	case *ast.ArrayPattern:
		for _, el := range t.Elements {
			if el != nil {
				c.collectTarget(el)
			}
		}
		if t.Rest != nil {
			c.collectTarget(t.Rest)
		}
	}
}

// --- analysis pass ----------------------------------------------------------

func (c *typeChecker) walk(n ast.Node) {
	if isNilNode(n) {
		return
	}
	switch t := n.(type) {
	case *ast.CallExpression:
		c.checkCall(t)
		return
	case *ast.NewExpression:
		c.checkNew(t)
		return
	case *ast.DotExpression:
		c.checkDot(t, dotLoad)
		return
	case *ast.AssignExpression:
		c.checkAssign(t)
		return
	case *ast.Identifier:
		c.checkIdent(t)
		return
	case *ast.ObjectLiteral:
		// Non-computed property keys are names, not references.
		for _, p := range t.Value {
			switch pp := p.(type) {
			case *ast.PropertyKeyed:
				if pp.Computed {
					c.walk(pp.Key)
				}
				c.walk(pp.Value)
			case *ast.PropertyShort:
				c.checkIdent(&pp.Name)
				if pp.Initializer != nil {
					c.walk(pp.Initializer)
				}
			case *ast.SpreadElement:
				c.walk(pp.Expression)
			}
		}
		return
	}
	for _, ch := range childNodes(n) {
		c.walk(ch)
	}
}

func (c *typeChecker) checkIdent(id *ast.Identifier) {
	name := string(id.Name)
	if c.declared[name] || c.sur.Global(name) != nil || c.sur.HasName(name) {
		return
	}
	c.report(id, "undefined reference %q: not a declared name, ambient global, or known type", name)
}

func (c *typeChecker) checkAssign(a *ast.AssignExpression) {
	if dot, ok := a.Left.(*ast.DotExpression); ok {
		c.checkDot(dot, dotAssign)
	} else {
		c.walk(a.Left)
	}
	c.walk(a.Right)
}

func (c *typeChecker) checkCall(call *ast.CallExpression) {
	switch callee := call.Callee.(type) {
	case *ast.DotExpression:
		c.checkMemberCall(call, callee)
	case *ast.Identifier:
		name := string(callee.Name)
		if !c.declared[name] && c.sur.Global(name) == nil {
			if t := c.sur.Type(name); t != nil {
				if !t.Opaque {
					if t.FactoryOnly || t.Constructor == nil {
						c.report(callee, "%s cannot be called; obtain instances through its factory members", name)
					} else {
						c.report(callee, "%s is a constructor and must be invoked with new", name)
					}
				}
			} else if !c.sur.HasName(name) {
				c.report(callee, "undefined reference %q: not a declared name, ambient global, or known type", name)
			}
		}
	default:
		c.walk(call.Callee)
	}
	for _, arg := range call.ArgumentList {
		c.walk(arg)
	}
}

// checkMemberCall validates obj.member(args...) against the catalog.
func (c *typeChecker) checkMemberCall(call *ast.CallExpression, dot *ast.DotExpression) {
	name := string(dot.Identifier.Name)
	owner, member, known := c.resolveMember(dot)
	c.walk(dot.Left)
	if !known {
		return
	}
	if member == nil {
		c.report(&dot.Identifier, "%s has no member named %q in surface description", owner, name)
		return
	}
	if member.Kind == surface.KindProperty {
		c.report(&dot.Identifier, "%s.%s is a property accessor, not an invocable member", owner, name)
		return
	}
	c.checkArgs(call, fmt.Sprintf("%s.%s", owner, name), member.Params, call.ArgumentList)
}

func (c *typeChecker) checkDot(dot *ast.DotExpression, ctx dotCtx) {
	name := string(dot.Identifier.Name)

	// A dotted path that names a type (e.g. PlugIn.Action) is a legal
	// static reference in any context.
	if full := dottedName(dot); full != "" && c.sur.Type(full) != nil {
		return
	}

	owner, member, known := c.resolveMember(dot)
	c.walk(dot.Left)
	if !known {
		return
	}
	if member == nil {
		// Assigning a new member onto an instance is ordinary JavaScript
		// (libraries are extended this way); reading one is a mistake.
		if ctx != dotAssign {
			c.report(&dot.Identifier, "%s has no member named %q in surface description", owner, name)
		}
		return
	}
	if member.Kind == surface.KindMethod && ctx == dotLoad {
		c.report(&dot.Identifier, "%s.%s is a method and must be called; host methods are not detachable values", owner, name)
	}
	if member.Kind == surface.KindMethod && ctx == dotAssign {
		c.report(&dot.Identifier, "cannot assign over method %s.%s", owner, name)
	}
}

func (c *typeChecker) checkNew(n *ast.NewExpression) {
	name := dottedName(n.Callee)
	if name == "" {
		c.walk(n.Callee)
		for _, arg := range n.ArgumentList {
			c.walk(arg)
		}
		return
	}

	t := c.sur.Type(name)
	if t == nil {
		root := strings.SplitN(name, ".", 2)[0]
		if !c.declared[root] && c.sur.Global(root) == nil && !c.sur.HasName(root) {
			c.report(n, "undefined reference %q: not a declared name, ambient global, or known type", name)
		}
		for _, arg := range n.ArgumentList {
			c.walk(arg)
		}
		return
	}

	if !t.Opaque {
		if t.FactoryOnly || t.Constructor == nil {
			c.report(n, "%s cannot be constructed with new; obtain instances through its factory members", name)
		} else {
			c.checkArgs(n, "new "+name, t.Constructor.Params, n.ArgumentList)
		}
	}
	for _, arg := range n.ArgumentList {
		c.walk(arg)
	}
}

// checkArgs validates arity and, where argument types are statically known,
// parameter compatibility.
func (c *typeChecker) checkArgs(at interface{ Idx0() file.Idx }, label string, params []surface.Param, args []ast.Expression) {
	min := surface.MinArgs(params)
	max := surface.MaxArgs(params)
	if len(args) < min {
		c.report(at, "%s expects at least %d argument(s), got %d", label, min, len(args))
		return
	}
	if max >= 0 && len(args) > max {
		c.report(at, "%s expects at most %d argument(s), got %d", label, max, len(args))
		return
	}
	for i, arg := range args {
		if i >= len(params) {
			break
		}
		got := c.valueType(arg)
		if got == "" {
			continue
		}
		want := params[i].Type
		if !typesCompatible(want, got) {
			c.report(arg, "%s: argument %d (%s) should be %s, got %s", label, i+1, params[i].Name, want, got)
		}
	}
}

// --- resolution -------------------------------------------------------------

// resolveMember resolves obj.member for both static (type-name receiver) and
// instance receivers. known=false means the receiver's type could not be
// established or is opaque, in which case no diagnostics may be issued.
func (c *typeChecker) resolveMember(dot *ast.DotExpression) (owner string, member *surface.Member, known bool) {
	name := string(dot.Identifier.Name)

	if t := c.staticType(dot.Left); t != nil {
		if t.Opaque {
			return t.Name, nil, false
		}
		if m := t.Static(name); m != nil {
			return t.Name, m, true
		}
		// A nested type counts as a static member in load position.
		if c.sur.Type(t.Name+"."+name) != nil {
			return t.Name, nil, false
		}
		if m := t.Member(name); m != nil {
			c.report(&dot.Identifier, "%s.%s is an instance member; access it on an instance, not the type", t.Name, name)
			return t.Name, m, false
		}
		return t.Name, nil, true
	}

	if tn := c.instanceType(dot.Left); tn != "" {
		t := c.sur.Type(tn)
		if t == nil || t.Opaque {
			return tn, nil, false
		}
		return t.Name, t.Member(name), true
	}

	return "", nil, false
}

// staticType resolves an expression that names a type in static position.
// Declared locals shadow type names.
func (c *typeChecker) staticType(expr ast.Expression) *surface.Type {
	switch t := expr.(type) {
	case *ast.Identifier:
		name := string(t.Name)
		if c.declared[name] || c.sur.Global(name) != nil {
			return nil
		}
		return c.sur.Type(name)
	case *ast.DotExpression:
		if full := dottedName(t); full != "" {
			if root := strings.SplitN(full, ".", 2)[0]; c.declared[root] {
				return nil
			}
			return c.sur.Type(full)
		}
	}
	return nil
}

// instanceType resolves the type name an expression evaluates to, or "".
func (c *typeChecker) instanceType(expr ast.Expression) string {
	switch t := expr.(type) {
	case *ast.Identifier:
		name := string(t.Name)
		if c.declared[name] {
			return c.locals[name]
		}
		if g := c.sur.Global(name); g != nil {
			return g.Type
		}
	case *ast.NewExpression:
		if name := dottedName(t.Callee); name != "" && c.sur.Type(name) != nil {
			return name
		}
	case *ast.DotExpression:
		if owner, member, _ := c.resolveMemberQuiet(t); owner != "" && member != nil {
			if member.Kind == surface.KindProperty {
				return member.Type
			}
		}
	case *ast.CallExpression:
		if dot, ok := t.Callee.(*ast.DotExpression); ok {
			if _, member, _ := c.resolveMemberQuiet(dot); member != nil && member.Kind == surface.KindMethod {
				return member.Returns
			}
		}
	}
	return ""
}

// resolveMemberQuiet is resolveMember without diagnostics, for use while
// inferring types of sub-expressions.
func (c *typeChecker) resolveMemberQuiet(dot *ast.DotExpression) (string, *surface.Member, bool) {
	name := string(dot.Identifier.Name)
	if t := c.staticType(dot.Left); t != nil && !t.Opaque {
		return t.Name, t.Static(name), true
	}
	if tn := c.instanceType(dot.Left); tn != "" {
		if t := c.sur.Type(tn); t != nil && !t.Opaque {
			return t.Name, t.Member(name), true
		}
	}
	return "", nil, false
}

// valueType resolves the static type of an expression used as a value.
// Empty means unknown, which always passes compatibility checks.
func (c *typeChecker) valueType(expr ast.Expression) string {
	switch t := expr.(type) {
	case *ast.StringLiteral:
		return "string"
	case *ast.NumberLiteral:
		return "number"
	case *ast.BooleanLiteral:
		return "boolean"
	case *ast.TemplateLiteral:
		return "string"
	case *ast.FunctionLiteral, *ast.ArrowFunctionLiteral:
		return "Function"
	case *ast.ArrayLiteral:
		return "Array"
	case *ast.ObjectLiteral:
		return "Object"
	case *ast.NewExpression:
		if name := dottedName(t.Callee); name != "" && c.sur.Type(name) != nil {
			return name
		}
	case *ast.Identifier, *ast.DotExpression, *ast.CallExpression:
		return c.instanceType(expr)
	}
	return ""
}

// typesCompatible reports whether a value of type got may be passed where
// want is expected. Unknown and untyped slots always pass.
func typesCompatible(want, got string) bool {
	if want == "" || want == "any" || want == "Object" || got == "" {
		return true
	}
	if want == got {
		return true
	}
	// Template strings, literals and String instances interchange freely.
	if want == "string" && got == "String" || want == "String" && got == "string" {
		return true
	}
	return false
}

// dottedName flattens an identifier or identifier-dot chain ("PlugIn.Action")
// into a single name. Returns "" for anything more complex.
func dottedName(expr ast.Expression) string {
	switch t := expr.(type) {
	case *ast.Identifier:
		return string(t.Name)
	case *ast.DotExpression:
		left := dottedName(t.Left)
		if left == "" {
			return ""
		}
		return left + "." + string(t.Identifier.Name)
	}
	return ""
}
