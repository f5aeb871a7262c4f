package scope

import (
	"github.com/NickTomlin/boa/ast"
	"github.com/NickTomlin/boa/errors"
	"github.com/NickTomlin/boa/interner"
)

// Option is a configuration function for Analyze.
type Option func(*analyzer)

// WithGlobals predeclares host-provided names in the root scope so that
// references to them resolve. The interner must be the one the program
// was parsed with, so the symbol handles line up.
func WithGlobals(in *interner.Interner, names ...string) Option {
	return func(a *analyzer) {
		for _, name := range names {
			sym := in.Intern(name)
			a.tree.scopes[0].Bindings[sym] = &Binding{Name: name, Sym: sym, Kind: BindVar}
		}
	}
}

type analyzer struct {
	tree *Tree

	// nodeScopes memoizes the scopes introduced by blocks, lexical loop
	// heads, switch bodies and catch clauses during collection, so the
	// resolution pass re-enters the same scope per node.
	nodeScopes map[ast.Node]int
}

// Analyze resolves the bindings of a parsed program. It runs two passes
// per function: binding collection with hoisting and redeclaration
// checks, then reference resolution with capture marking. Each Func node
// is annotated with the arena indices of its parameter and body scopes.
func Analyze(program *ast.Program, opts ...Option) (*Tree, error) {
	a := &analyzer{
		tree:       &Tree{},
		nodeScopes: map[ast.Node]int{},
	}
	root := a.tree.add(-1, Global)
	for _, opt := range opts {
		opt(a)
	}
	if err := a.collect(program.Stmts, root, root); err != nil {
		return nil, err
	}
	if err := a.resolveStmts(program.Stmts, root, root); err != nil {
		return nil, err
	}
	return a.tree, nil
}

func bindKindOf(kind ast.VarKind) BindKind {
	switch kind {
	case ast.KindLet:
		return BindLet
	case ast.KindConst:
		return BindConst
	default:
		return BindVar
	}
}

// declare registers a binding in one scope, enforcing the redeclaration
// rules: var, function, and parameter bindings of the same name merge;
// a lexical binding (let, const, class, catch) conflicts with everything.
func (a *analyzer) declare(scopeIdx int, id *ast.Ident, kind BindKind) error {
	s := a.tree.scopes[scopeIdx]
	b := &Binding{Name: id.Name, Sym: id.Sym, Kind: kind, Pos: id.NamePos}
	if existing := s.Bindings[id.Sym]; existing != nil {
		if existing.lexical() || b.lexical() {
			return a.redeclared(id)
		}
		return nil // var/function/param merge; the first binding wins
	}
	// A lexical declaration directly in a function body scope also
	// conflicts with a parameter of the same name.
	if b.lexical() && s.FuncBody {
		if prior := a.tree.scopes[s.Parent].Bindings[id.Sym]; prior != nil && prior.Kind == BindParam {
			return a.redeclared(id)
		}
	}
	s.Bindings[id.Sym] = b
	return nil
}

// declareVar hoists a var or function declaration to the nearest function
// scope. A lexical binding of the same name in any scope crossed on the
// way is a conflict; a catch parameter is not (web-compat carve-out).
func (a *analyzer) declareVar(id *ast.Ident, cur, varTarget int, kind BindKind) error {
	for i := cur; i != varTarget; i = a.tree.scopes[i].Parent {
		if b := a.tree.scopes[i].Bindings[id.Sym]; b != nil && b.lexical() && b.Kind != BindCatch {
			return a.redeclared(id)
		}
	}
	return a.declare(varTarget, id, kind)
}

func (a *analyzer) redeclared(id *ast.Ident) error {
	return &Error{
		Code: errors.E3002,
		Msg:  "'" + id.Name + "' has already been declared",
		Pos:  id.NamePos,
		End:  id.End(),
	}
}

// collect walks the declaration surface of one function (or the top
// level), creating block scopes and registering every binding. Nested
// functions contribute only their declared name; their interiors are
// collected when analyzeFunc reaches them in the resolution pass.
func (a *analyzer) collect(stmts []ast.Stmt, cur, varTarget int) error {
	for _, stmt := range stmts {
		if err := a.collectStmt(stmt, cur, varTarget); err != nil {
			return err
		}
	}
	return nil
}

func (a *analyzer) collectStmt(stmt ast.Stmt, cur, varTarget int) error {
	switch s := stmt.(type) {
	case *ast.Var:
		kind := bindKindOf(s.Kind)
		for _, d := range s.Decls {
			if s.Kind == ast.KindVar {
				if err := a.declareVar(d.Name, cur, varTarget, BindVar); err != nil {
					return err
				}
			} else {
				if err := a.declare(cur, d.Name, kind); err != nil {
					return err
				}
			}
		}
	case *ast.Func:
		if s.Name != nil {
			return a.declareVar(s.Name, cur, varTarget, BindFunction)
		}
	case *ast.Class:
		if s.Name != nil {
			return a.declare(cur, s.Name, BindClass)
		}
	case *ast.Block:
		idx := a.tree.add(cur, Block)
		a.nodeScopes[s] = idx
		return a.collect(s.Stmts, idx, varTarget)
	case *ast.If:
		if err := a.collectStmt(s.Then, cur, varTarget); err != nil {
			return err
		}
		if s.Else != nil {
			return a.collectStmt(s.Else, cur, varTarget)
		}
	case *ast.While:
		return a.collectStmt(s.Body, cur, varTarget)
	case *ast.DoWhile:
		return a.collectStmt(s.Body, cur, varTarget)
	case *ast.For:
		idx := cur
		if v, ok := s.Init.(*ast.Var); ok && v.Kind != ast.KindVar {
			idx = a.tree.add(cur, Block)
			a.nodeScopes[s] = idx
		}
		if s.Init != nil {
			if err := a.collectStmt(s.Init, idx, varTarget); err != nil {
				return err
			}
		}
		return a.collectStmt(s.Body, idx, varTarget)
	case *ast.ForIn:
		idx := cur
		if v, ok := s.Left.(*ast.Var); ok && v.Kind != ast.KindVar {
			idx = a.tree.add(cur, Block)
			a.nodeScopes[s] = idx
		}
		if err := a.collectStmt(s.Left, idx, varTarget); err != nil {
			return err
		}
		return a.collectStmt(s.Body, idx, varTarget)
	case *ast.ForOf:
		idx := cur
		if v, ok := s.Left.(*ast.Var); ok && v.Kind != ast.KindVar {
			idx = a.tree.add(cur, Block)
			a.nodeScopes[s] = idx
		}
		if err := a.collectStmt(s.Left, idx, varTarget); err != nil {
			return err
		}
		return a.collectStmt(s.Body, idx, varTarget)
	case *ast.Labeled:
		return a.collectStmt(s.Stmt, cur, varTarget)
	case *ast.Try:
		if err := a.collectStmt(s.Body, cur, varTarget); err != nil {
			return err
		}
		if s.Catch != nil {
			cidx := cur
			if s.Catch.Param != nil {
				cidx = a.tree.add(cur, Block)
				a.nodeScopes[s.Catch] = cidx
				if err := a.declare(cidx, s.Catch.Param, BindCatch); err != nil {
					return err
				}
			}
			if err := a.collectStmt(s.Catch.Body, cidx, varTarget); err != nil {
				return err
			}
		}
		if s.Finally != nil {
			return a.collectStmt(s.Finally, cur, varTarget)
		}
	case *ast.Switch:
		idx := a.tree.add(cur, Block)
		a.nodeScopes[s] = idx
		for _, c := range s.Cases {
			if err := a.collect(c.Body, idx, varTarget); err != nil {
				return err
			}
		}
	}
	return nil
}

// scopeFor returns the memoized scope a node introduced during
// collection, or the current scope if it introduced none.
func (a *analyzer) scopeFor(n ast.Node, cur int) int {
	if idx, ok := a.nodeScopes[n]; ok {
		return idx
	}
	return cur
}

// resolveStmts is the resolution pass: identifier uses are matched to
// bindings, captures are marked, and nested functions are analyzed.
func (a *analyzer) resolveStmts(stmts []ast.Stmt, cur, fn int) error {
	for _, stmt := range stmts {
		if err := a.resolveStmt(stmt, cur, fn); err != nil {
			return err
		}
	}
	return nil
}

func (a *analyzer) resolveStmt(stmt ast.Stmt, cur, fn int) error {
	switch s := stmt.(type) {
	case *ast.Var:
		for _, d := range s.Decls {
			if d.Value != nil {
				if err := a.resolveExpr(d.Value, cur, fn); err != nil {
					return err
				}
			}
		}
	case *ast.ExprStmt:
		return a.resolveExpr(s.X, cur, fn)
	case *ast.Func:
		return a.analyzeFunc(s, cur)
	case *ast.Class:
		return a.resolveClass(s, cur, fn)
	case *ast.Block:
		return a.resolveStmts(s.Stmts, a.scopeFor(s, cur), fn)
	case *ast.If:
		if err := a.resolveExpr(s.Cond, cur, fn); err != nil {
			return err
		}
		if err := a.resolveStmt(s.Then, cur, fn); err != nil {
			return err
		}
		if s.Else != nil {
			return a.resolveStmt(s.Else, cur, fn)
		}
	case *ast.While:
		if err := a.resolveExpr(s.Cond, cur, fn); err != nil {
			return err
		}
		return a.resolveStmt(s.Body, cur, fn)
	case *ast.DoWhile:
		if err := a.resolveStmt(s.Body, cur, fn); err != nil {
			return err
		}
		return a.resolveExpr(s.Cond, cur, fn)
	case *ast.For:
		idx := a.scopeFor(s, cur)
		if s.Init != nil {
			if err := a.resolveStmt(s.Init, idx, fn); err != nil {
				return err
			}
		}
		if s.Cond != nil {
			if err := a.resolveExpr(s.Cond, idx, fn); err != nil {
				return err
			}
		}
		if s.Post != nil {
			if err := a.resolveExpr(s.Post, idx, fn); err != nil {
				return err
			}
		}
		return a.resolveStmt(s.Body, idx, fn)
	case *ast.ForIn:
		idx := a.scopeFor(s, cur)
		if err := a.resolveStmt(s.Left, idx, fn); err != nil {
			return err
		}
		if err := a.resolveExpr(s.Object, idx, fn); err != nil {
			return err
		}
		return a.resolveStmt(s.Body, idx, fn)
	case *ast.ForOf:
		idx := a.scopeFor(s, cur)
		if err := a.resolveStmt(s.Left, idx, fn); err != nil {
			return err
		}
		if err := a.resolveExpr(s.Iter, idx, fn); err != nil {
			return err
		}
		return a.resolveStmt(s.Body, idx, fn)
	case *ast.Return:
		if s.Value != nil {
			return a.resolveExpr(s.Value, cur, fn)
		}
	case *ast.Throw:
		return a.resolveExpr(s.Value, cur, fn)
	case *ast.Labeled:
		return a.resolveStmt(s.Stmt, cur, fn)
	case *ast.Try:
		if err := a.resolveStmt(s.Body, cur, fn); err != nil {
			return err
		}
		if s.Catch != nil {
			cidx := a.scopeFor(s.Catch, cur)
			if err := a.resolveStmt(s.Catch.Body, cidx, fn); err != nil {
				return err
			}
		}
		if s.Finally != nil {
			return a.resolveStmt(s.Finally, cur, fn)
		}
	case *ast.Switch:
		if err := a.resolveExpr(s.Tag, cur, fn); err != nil {
			return err
		}
		idx := a.scopeFor(s, cur)
		for _, c := range s.Cases {
			if c.Cond != nil {
				if err := a.resolveExpr(c.Cond, idx, fn); err != nil {
					return err
				}
			}
			if err := a.resolveStmts(c.Body, idx, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *analyzer) resolveExprs(xs []ast.Expr, cur, fn int) error {
	for _, x := range xs {
		if err := a.resolveExpr(x, cur, fn); err != nil {
			return err
		}
	}
	return nil
}

func (a *analyzer) resolveExpr(x ast.Expr, cur, fn int) error {
	switch e := x.(type) {
	case *ast.Ident:
		a.reference(e, cur, fn)
	case *ast.Template:
		return a.resolveExprs(e.Exprs, cur, fn)
	case *ast.Prefix:
		return a.resolveExpr(e.X, cur, fn)
	case *ast.Postfix:
		return a.resolveExpr(e.X, cur, fn)
	case *ast.Infix:
		if err := a.resolveExpr(e.X, cur, fn); err != nil {
			return err
		}
		return a.resolveExpr(e.Y, cur, fn)
	case *ast.Assign:
		if err := a.resolveExpr(e.Target, cur, fn); err != nil {
			return err
		}
		return a.resolveExpr(e.Value, cur, fn)
	case *ast.Conditional:
		if err := a.resolveExpr(e.X, cur, fn); err != nil {
			return err
		}
		if err := a.resolveExpr(e.Then, cur, fn); err != nil {
			return err
		}
		return a.resolveExpr(e.Else, cur, fn)
	case *ast.Call:
		// A direct eval can materialize references to any visible name,
		// so everything on the chain must outlive its frame.
		if id, ok := e.Fun.(*ast.Ident); ok && id.Name == "eval" {
			a.markChainCaptured(cur)
		}
		if err := a.resolveExpr(e.Fun, cur, fn); err != nil {
			return err
		}
		return a.resolveExprs(e.Args, cur, fn)
	case *ast.New:
		if err := a.resolveExpr(e.Callee, cur, fn); err != nil {
			return err
		}
		return a.resolveExprs(e.Args, cur, fn)
	case *ast.Member:
		return a.resolveExpr(e.X, cur, fn) // Attr is a property name, not a reference
	case *ast.Index:
		if err := a.resolveExpr(e.X, cur, fn); err != nil {
			return err
		}
		return a.resolveExpr(e.Index, cur, fn)
	case *ast.Spread:
		return a.resolveExpr(e.X, cur, fn)
	case *ast.Yield:
		if e.X != nil {
			return a.resolveExpr(e.X, cur, fn)
		}
	case *ast.Await:
		return a.resolveExpr(e.X, cur, fn)
	case *ast.Array:
		return a.resolveExprs(e.Items, cur, fn)
	case *ast.Object:
		for _, item := range e.Items {
			if item.Computed {
				if err := a.resolveExpr(item.Key, cur, fn); err != nil {
					return err
				}
			}
			if err := a.resolveExpr(item.Value, cur, fn); err != nil {
				return err
			}
		}
	case *ast.Func:
		return a.analyzeFunc(e, cur)
	case *ast.Class:
		return a.resolveClass(e, cur, fn)
	}
	return nil
}

// reference resolves one identifier use, marking the binding captured
// when the use sits in a function nested below the declaring one.
// Unresolved names are host globals and are left alone.
func (a *analyzer) reference(id *ast.Ident, cur, fn int) {
	b, declScope, ok := a.tree.Resolve(cur, id.Sym)
	if !ok {
		return
	}
	if a.tree.scopes[declScope].fn != fn {
		b.Captured = true
	}
}

// markChainCaptured marks every binding visible from a scope as captured.
func (a *analyzer) markChainCaptured(cur int) {
	for i := cur; i >= 0; i = a.tree.scopes[i].Parent {
		for _, b := range a.tree.scopes[i].Bindings {
			b.Captured = true
		}
	}
}

// analyzeFunc builds the two scopes of one function, collects its body
// and resolves it. The parameter scope is the hoisting target for var and
// function declarations inside the body.
func (a *analyzer) analyzeFunc(f *ast.Func, parent int) error {
	paramsIdx := a.tree.add(parent, Function)
	a.tree.scopes[paramsIdx].fn = paramsIdx

	// The name of a function expression is visible inside the function.
	if f.Name != nil && f.IsExpr {
		if err := a.declare(paramsIdx, f.Name, BindFunction); err != nil {
			return err
		}
	}
	for _, p := range f.Params {
		if err := a.declare(paramsIdx, p.Name, BindParam); err != nil {
			return err
		}
	}

	bodyIdx := a.tree.add(paramsIdx, Block)
	a.tree.scopes[bodyIdx].FuncBody = true
	f.Scopes = ast.FunctionScopes{Params: paramsIdx, Body: bodyIdx}

	// Defaults are evaluated in the parameter scope.
	for _, p := range f.Params {
		if p.Default != nil {
			if err := a.resolveExpr(p.Default, paramsIdx, paramsIdx); err != nil {
				return err
			}
		}
	}

	if err := a.collect(f.Body.Stmts, bodyIdx, paramsIdx); err != nil {
		return err
	}
	return a.resolveStmts(f.Body.Stmts, bodyIdx, paramsIdx)
}

// resolveClass resolves a class's heritage, computed keys, and method
// bodies. The class's own name was declared during collection.
func (a *analyzer) resolveClass(c *ast.Class, cur, fn int) error {
	if c.Super != nil {
		if err := a.resolveExpr(c.Super, cur, fn); err != nil {
			return err
		}
	}
	for _, m := range c.Methods {
		if m.Computed {
			if err := a.resolveExpr(m.Key, cur, fn); err != nil {
				return err
			}
		}
		if err := a.analyzeFunc(m.Value, cur); err != nil {
			return err
		}
	}
	return nil
}
