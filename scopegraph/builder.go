package scopegraph

import (
	"fmt"

	"github.com/thisfred/breakfast-sub000/ast"
	"github.com/thisfred/breakfast-sub000/source"
)

// classInfo is the builder's bookkeeping for one class definition: the
// class name's own Definition node, the instance scope every self-bound
// property hangs off of, and a cache of fields already registered there
// so repeated self.x stores converge on one canonical node (spec's
// supplemented instance-property handling, §4.2).
type classInfo struct {
	defPop      NodeID
	instanceHub NodeID
	fields      map[string]NodeID
}

// pendingLink is a cross-module reference recorded during a single
// source's build pass and wired up in Link, once every source in the
// session has been built and every module's hub is known (spec §4.2's
// Import/ImportFrom wiring, made order-independent across a session's
// multiple source files).
type pendingLink struct {
	from   NodeID
	module string
}

// Builder walks one or more parsed ASTs into a shared Graph, one call to
// BuildModule per source file, followed by a single Link call once every
// file in the session has been built.
type Builder struct {
	g             *Graph
	src           *source.Source
	moduleScope   *scope
	classRegistry map[string]*classInfo
	pending       []pendingLink
}

// NewBuilder creates a Builder around a fresh, empty Graph.
func NewBuilder() *Builder {
	return &Builder{g: New(), classRegistry: map[string]*classInfo{}}
}

// Graph returns the graph being built.
func (b *Builder) Graph() *Graph { return b.g }

// BuildModule walks one source file's AST into the shared graph,
// registering it under moduleName (spec's module-root invariant: module
// scopes are reachable from the graph root via a Pop of the module name
// followed by a Pop of ".").
func (b *Builder) BuildModule(root ast.Node, src *source.Source, moduleName string) (err error) {
	// A required child being nil where the AST contract guarantees
	// non-nil is a shape mismatch, not a recoverable name-resolution
	// failure; it panics inside the visitor and is turned into an error
	// here rather than crashing the whole process (spec §7).
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scopegraph: malformed AST building module %q: %v", moduleName, r)
		}
	}()

	module, ok := root.(*ast.Module)
	if !ok {
		return fmt.Errorf("scopegraph: BuildModule expects *ast.Module, got %T", root)
	}
	b.src = src
	ms := newScope(b.g, nil)
	b.moduleScope = ms

	modPop := b.g.AddNode(KindModuleScope, moduleName, nil, PopSym(moduleName))
	b.g.AddEdge(b.g.Root(), modPop, Edge{Priority: 0})
	dotPop := b.g.AddNode(KindScope, "", nil, PopSym("."))
	b.g.AddEdge(modPop, dotPop, Edge{Priority: 0})
	b.g.AddEdge(dotPop, ms.hub, Edge{Priority: 0})
	b.g.RegisterModule(moduleName, modPop)
	b.g.RegisterModuleHub(moduleName, dotPop)

	return b.visitStmts(module.Body, ms, nil, "")
}

// Link resolves every Import/ImportFrom recorded while building every
// source in the session, wiring each to the target module's hub if that
// module was itself built into this graph (an import of a module outside
// the session simply stays unresolved, recorded as a diagnostic rather
// than an error: name resolution for code this module never saw is out
// of scope, per spec's non-goals).
func (b *Builder) Link() {
	for _, p := range b.pending {
		hub, ok := b.g.ModuleHub(p.module)
		if !ok {
			b.g.AddDiagnostic(fmt.Sprintf("import: unresolved module %q", p.module))
			continue
		}
		b.g.AddEdge(p.from, hub, Edge{Priority: 0})
	}
}

func (b *Builder) visitStmts(stmts []ast.Node, sc *scope, cls *classInfo, selfName string) error {
	for _, s := range stmts {
		if err := b.visitStmt(s, sc, cls, selfName); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) visitStmt(stmt ast.Node, sc *scope, cls *classInfo, selfName string) error {
	switch n := stmt.(type) {
	case *ast.FunctionDef:
		return b.visitFunctionDef(n, sc)
	case *ast.ClassDef:
		return b.visitClassDef(n, sc)
	case *ast.Assign:
		return b.visitAssign(n, sc, cls, selfName)
	case *ast.AugAssign:
		return b.visitAugAssign(n, sc, cls, selfName)
	case *ast.Delete:
		return b.visitDelete(n, sc, cls, selfName)
	case *ast.Import:
		return b.visitImport(n, sc)
	case *ast.ImportFrom:
		return b.visitImportFrom(n, sc)
	case *ast.Global:
		return b.visitGlobal(n, sc)
	case *ast.Nonlocal:
		return b.visitNonlocal(n, sc)
	case *ast.For:
		return b.visitFor(n, sc, cls, selfName)
	case *ast.While:
		return b.visitWhile(n, sc, cls, selfName)
	case *ast.If:
		return b.visitIf(n, sc, cls, selfName)
	case *ast.Try:
		return b.visitTry(n, sc, cls, selfName)
	case *ast.With:
		return b.visitWith(n, sc, cls, selfName)
	case *ast.Match:
		return b.visitMatch(n, sc, cls, selfName)
	case *ast.Return:
		_, err := b.visitExpr(n.Value, sc, cls, selfName)
		return err
	case *ast.Pass, *ast.Break, *ast.Continue:
		return nil
	default:
		_, err := b.visitExpr(stmt, sc, cls, selfName)
		return err
	}
}

// visitExpr dispatches an expression node, returning the Fragment other
// builder functions compose into assignments, calls, and attribute
// chains (spec §3's Fragment model).
func (b *Builder) visitExpr(n ast.Node, sc *scope, cls *classInfo, selfName string) (Fragment, error) {
	if n == nil {
		return Fragment{}, nil
	}
	switch v := n.(type) {
	case *ast.Name:
		return b.visitName(v, sc)
	case *ast.Attribute:
		return b.visitAttribute(v, sc, cls, selfName)
	case *ast.Call:
		return b.visitCall(v, sc, cls, selfName)
	case *ast.Lambda:
		return b.visitLambda(v, sc)
	case *ast.ListComp:
		return b.visitComp(v.Elt, nil, nil, v.Generators, sc)
	case *ast.SetComp:
		return b.visitComp(v.Elt, nil, nil, v.Generators, sc)
	case *ast.GeneratorExp:
		return b.visitComp(v.Elt, nil, nil, v.Generators, sc)
	case *ast.DictComp:
		return b.visitComp(nil, v.Key, v.Value, v.Generators, sc)
	case *ast.NamedExpr:
		return b.visitNamedExpr(v, sc, cls, selfName)
	case *ast.Keyword:
		return b.visitExpr(v.Value, sc, cls, selfName)
	default:
		return b.visitExprDefault(n, sc, cls, selfName)
	}
}

// visitExprDefault handles every expression kind with no scoping rules of
// its own (BinOp, BoolOp, Compare, Subscript, Tuple/List/Set/Dict,
// Starred, Yield(From), IfExp, JoinedStr, ...) by recursing into its
// children (DESIGN NOTES §9's generic-walker fallback for unknown
// variants, applied here to every variant that needs no special casing).
func (b *Builder) visitExprDefault(n ast.Node, sc *scope, cls *classInfo, selfName string) (Fragment, error) {
	id := b.g.AddNode(KindScope, "", nil, None())
	for _, c := range n.Children() {
		if _, err := b.visitExpr(c, sc, cls, selfName); err != nil {
			return Fragment{}, err
		}
	}
	return single(id), nil
}

func (b *Builder) visitName(n *ast.Name, sc *scope) (Fragment, error) {
	pos, err := b.src.NodePosition(n)
	if err != nil {
		return Fragment{}, err
	}
	if n.Ctx == ast.Store {
		def := sc.bind(b.g, n.Id, &pos)
		return Fragment{Entry: def, Exit: def}, nil
	}
	ref := sc.reference(b.g, n.Id, &pos)
	return single(ref), nil
}

func isPlainName(n ast.Node, name string) bool {
	nm, ok := n.(*ast.Name)
	return ok && nm.Id == name
}

// visitAttribute builds the Push(attr)/Push(".") (or Pop equivalents for
// a store) pair spec §4.2 describes, chained into the value's own
// fragment, with one exception: an access on the method's own receiver
// (self.field) is wired directly into the enclosing class's instance
// scope, since the builder already knows statically which instance
// scope that is (spec's supplemented instance-property handling).
func (b *Builder) visitAttribute(n *ast.Attribute, sc *scope, cls *classInfo, selfName string) (Fragment, error) {
	pos, err := b.src.NodePosition(n)
	if err != nil {
		return Fragment{}, err
	}
	// The AST positions an attribute at the start of its value expression;
	// the nodes below sit on the attribute name's own token, the first
	// whole-word occurrence of it at or after that start.
	attrPos, err := b.src.FindAfter(n.Attr, pos)
	if err != nil {
		return Fragment{}, err
	}
	if cls != nil && selfName != "" && isPlainName(n.Value, selfName) {
		return b.visitSelfAttribute(n, cls, attrPos)
	}
	if n.Ctx == ast.Store {
		attrPop := b.g.AddNode(KindDefinition, n.Attr, &attrPos, PopSym(n.Attr))
		dotPop := b.g.AddNode(KindScope, "", nil, PopSym("."))
		b.g.AddEdge(attrPop, dotPop, Edge{Priority: 0})
		valueFrag, err := b.visitExpr(n.Value, sc, cls, selfName)
		if err != nil {
			return Fragment{}, err
		}
		b.g.AddEdge(dotPop, valueFrag.Entry, Edge{Priority: 0})
		return Fragment{Entry: attrPop, Exit: attrPop}, nil
	}
	attrPush := b.g.AddNode(KindReference, n.Attr, &attrPos, PushSym(n.Attr))
	dotPush := b.g.AddNode(KindScope, "", nil, PushSym("."))
	b.g.AddEdge(attrPush, dotPush, Edge{Priority: 0})
	valueFrag, err := b.visitExpr(n.Value, sc, cls, selfName)
	if err != nil {
		return Fragment{}, err
	}
	b.g.AddEdge(dotPush, valueFrag.Entry, Edge{Priority: 0})
	return Fragment{Entry: attrPush, Exit: attrPush}, nil
}

func (b *Builder) visitSelfAttribute(n *ast.Attribute, cls *classInfo, pos source.Position) (Fragment, error) {
	if n.Ctx == ast.Store {
		if _, ok := cls.fields[n.Attr]; ok {
			ref := b.g.AddNode(KindReference, n.Attr, &pos, PushSym(n.Attr))
			b.g.AddEdge(ref, cls.instanceHub, Edge{Priority: 0})
			return Fragment{Entry: ref, Exit: ref}, nil
		}
		def := b.g.AddNode(KindDefinition, n.Attr, &pos, PopSym(n.Attr))
		b.g.AddEdge(cls.instanceHub, def, Edge{Priority: 0})
		cls.fields[n.Attr] = def
		return Fragment{Entry: def, Exit: def}, nil
	}
	ref := b.g.AddNode(KindReference, n.Attr, &pos, PushSym(n.Attr))
	b.g.AddEdge(ref, cls.instanceHub, Edge{Priority: 0})
	return Fragment{Entry: ref, Exit: ref}, nil
}

// visitCall wraps the callee's fragment in a Push("()") scope and, for
// every keyword argument, adds a Push(kw_name) sibling into that call
// scope (spec §4.2's supplemented keyword-argument rename occurrence):
// if the callee resolves to a FunctionDef, its Pop("()") continuation
// leads into the parameter scope, so the keyword reference resolves
// straight to the matching parameter's Definition node.
func (b *Builder) visitCall(n *ast.Call, sc *scope, cls *classInfo, selfName string) (Fragment, error) {
	funcFrag, err := b.visitExpr(n.Func, sc, cls, selfName)
	if err != nil {
		return Fragment{}, err
	}
	callPush := b.g.AddNode(KindScope, "", nil, PushSym("()"))
	b.g.AddEdge(callPush, funcFrag.Entry, Edge{Priority: 0})

	for _, arg := range n.Args {
		if _, err := b.visitExpr(arg, sc, cls, selfName); err != nil {
			return Fragment{}, err
		}
	}
	for _, kw := range n.Keywords {
		if kw.Arg == "" {
			if _, err := b.visitExpr(kw.Value, sc, cls, selfName); err != nil {
				return Fragment{}, err
			}
			continue
		}
		kwPos, err := b.src.NodePosition(kw)
		if err != nil {
			return Fragment{}, err
		}
		kwNode := b.g.AddNode(KindReference, kw.Arg, &kwPos, PushSym(kw.Arg))
		b.g.AddEdge(kwNode, callPush, Edge{Priority: 0})
		if _, err := b.visitExpr(kw.Value, sc, cls, selfName); err != nil {
			return Fragment{}, err
		}
	}
	return Fragment{Entry: callPush, Exit: callPush}, nil
}

func (b *Builder) visitLambda(n *ast.Lambda, sc *scope) (Fragment, error) {
	lamScope := newScope(b.g, sc)
	if err := b.bindParams(n.Args, lamScope); err != nil {
		return Fragment{}, err
	}
	if _, err := b.visitExpr(n.Body, lamScope, nil, ""); err != nil {
		return Fragment{}, err
	}
	return single(lamScope.hub), nil
}

func (b *Builder) visitComp(elt, key, value ast.Node, generators []ast.Comprehension, outer *scope) (Fragment, error) {
	compScope := newScope(b.g, outer)
	for _, gen := range generators {
		if _, err := b.visitExpr(gen.Target, compScope, nil, ""); err != nil {
			return Fragment{}, err
		}
		if _, err := b.visitExpr(gen.Iter, compScope, nil, ""); err != nil {
			return Fragment{}, err
		}
		for _, cond := range gen.Ifs {
			if _, err := b.visitExpr(cond, compScope, nil, ""); err != nil {
				return Fragment{}, err
			}
		}
	}
	if elt != nil {
		if _, err := b.visitExpr(elt, compScope, nil, ""); err != nil {
			return Fragment{}, err
		}
	}
	if key != nil {
		if _, err := b.visitExpr(key, compScope, nil, ""); err != nil {
			return Fragment{}, err
		}
	}
	if value != nil {
		if _, err := b.visitExpr(value, compScope, nil, ""); err != nil {
			return Fragment{}, err
		}
	}
	return single(compScope.hub), nil
}

// visitNamedExpr handles the walrus operator; its target is bound into
// sc, the scope the expression is visited in. Inside a comprehension
// that is the comprehension's own scope, so the binding does not reach
// the enclosing function or module scope.
func (b *Builder) visitNamedExpr(n *ast.NamedExpr, sc *scope, cls *classInfo, selfName string) (Fragment, error) {
	valueFrag, err := b.visitExpr(n.Value, sc, cls, selfName)
	if err != nil {
		return Fragment{}, err
	}
	targetFrag, err := b.visitExpr(n.Target, sc, cls, selfName)
	if err != nil {
		return Fragment{}, err
	}
	b.g.AddEdge(targetFrag.Entry, valueFrag.Entry, Edge{Priority: 0})
	return targetFrag, nil
}

func (b *Builder) visitAssign(n *ast.Assign, sc *scope, cls *classInfo, selfName string) error {
	valueFrag, err := b.visitExpr(n.Value, sc, cls, selfName)
	if err != nil {
		return err
	}
	for _, t := range n.Targets {
		if t == nil {
			panic("assignment target is nil")
		}
		targetFrag, err := b.visitExpr(t, sc, cls, selfName)
		if err != nil {
			return err
		}
		b.g.AddEdge(targetFrag.Entry, valueFrag.Entry, Edge{Priority: 0})
	}
	return nil
}

// visitAugAssign treats the target as a plain reference to its existing
// binding rather than a new definition: `x += 1` reads and writes the
// same x, so it must resolve to whatever x already named, not shadow it.
func (b *Builder) visitAugAssign(n *ast.AugAssign, sc *scope, cls *classInfo, selfName string) error {
	if _, err := b.visitExpr(n.Value, sc, cls, selfName); err != nil {
		return err
	}
	if nm, ok := n.Target.(*ast.Name); ok {
		pos, err := b.src.NodePosition(nm)
		if err != nil {
			return err
		}
		sc.reference(b.g, nm.Id, &pos)
		return nil
	}
	_, err := b.visitExpr(n.Target, sc, cls, selfName)
	return err
}

func (b *Builder) visitDelete(n *ast.Delete, sc *scope, cls *classInfo, selfName string) error {
	for _, t := range n.Targets {
		if _, err := b.visitExpr(t, sc, cls, selfName); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) visitImport(n *ast.Import, sc *scope) error {
	for _, alias := range n.Names {
		pos, err := b.src.PosAt(alias.Pos)
		if err != nil {
			return err
		}
		def := sc.bind(b.g, alias.LocalName(), &pos)
		b.pending = append(b.pending, pendingLink{from: def, module: alias.Name})
	}
	return nil
}

// visitImportFrom binds each imported name locally and also chains it
// back to the name it was imported as in the defining module: a local
// binding alone would only ever let a rename follow the alias forward
// to its local uses, never back to the original definition it aliases
// (spec §4.2; original_source/src/breakfast/names.py's visit_import_from
// pushes the remote name then the module path, reversed, into root for
// exactly this reason). The chain is a Pop(local_name) scope node hung
// off the owning scope's hub, leading into a Reference at the same
// position that pushes the remote name then "." and links (once Link
// runs) straight to the defining module's hub, so a local use resolves
// through the alias to the original definition. A star
// import has no local name to bind, so it only relays "." into the
// source module's hub as a fallback for any name not found locally.
func (b *Builder) visitImportFrom(n *ast.ImportFrom, sc *scope) error {
	for _, alias := range n.Names {
		if alias.Name == "*" {
			relay := b.g.AddNode(KindScope, "", nil, PushSym("."))
			b.g.AddEdge(sc.hub, relay, Edge{Priority: 1, ToEnclosingScope: false})
			b.pending = append(b.pending, pendingLink{from: relay, module: n.Module})
			continue
		}
		pos, err := b.src.PosAt(alias.Pos)
		if err != nil {
			return err
		}
		localPop := b.g.AddNode(KindScope, alias.LocalName(), &pos, PopSym(alias.LocalName()))
		b.g.AddEdge(sc.target(alias.LocalName()).hub, localPop, Edge{Priority: 0})

		remoteRef := b.g.AddNode(KindReference, alias.Name, &pos, PushSym(alias.Name))
		b.g.AddEdge(localPop, remoteRef, Edge{Priority: 0})
		dotPush := b.g.AddNode(KindScope, "", nil, PushSym("."))
		b.g.AddEdge(remoteRef, dotPush, Edge{Priority: 0})
		b.pending = append(b.pending, pendingLink{from: dotPush, module: n.Module})
	}
	return nil
}

// visitGlobal redirects every named binding in sc to the module scope
// and, just as importantly, gives the global statement's own name token
// a positioned Reference into that same module scope: without it, the
// `global x` line itself has no occurrence in the scope graph, so a
// rename started from that line (or one that should include it) has
// nothing to resolve (original_source's visit_global builds this same
// Pop(name)/Push(name) pair into its module root).
func (b *Builder) visitGlobal(n *ast.Global, sc *scope) error {
	start, err := b.src.NodePosition(n)
	if err != nil {
		return err
	}
	for _, name := range n.Names {
		pos, err := b.src.FindAfter(name, start)
		if err != nil {
			return err
		}
		ref := b.g.AddNode(KindReference, name, &pos, PushSym(name))
		b.g.AddEdge(ref, b.moduleScope.hub, Edge{Priority: 0})
		sc.redirect(name, b.moduleScope)
	}
	return nil
}

// visitNonlocal is visitGlobal's counterpart for the nearest enclosing
// function scope (or the module scope, for a nonlocal at module level,
// which Python itself rejects but this builder doesn't need to).
func (b *Builder) visitNonlocal(n *ast.Nonlocal, sc *scope) error {
	target := sc.parent
	if target == nil {
		target = b.moduleScope
	}
	start, err := b.src.NodePosition(n)
	if err != nil {
		return err
	}
	for _, name := range n.Names {
		pos, err := b.src.FindAfter(name, start)
		if err != nil {
			return err
		}
		ref := b.g.AddNode(KindReference, name, &pos, PushSym(name))
		b.g.AddEdge(ref, target.hub, Edge{Priority: 0})
		sc.redirect(name, target)
	}
	return nil
}

func (b *Builder) visitFor(n *ast.For, sc *scope, cls *classInfo, selfName string) error {
	if _, err := b.visitExpr(n.Iter, sc, cls, selfName); err != nil {
		return err
	}
	if _, err := b.visitExpr(n.Target, sc, cls, selfName); err != nil {
		return err
	}
	if err := b.visitStmts(n.Body, sc, cls, selfName); err != nil {
		return err
	}
	return b.visitStmts(n.Orelse, sc, cls, selfName)
}

func (b *Builder) visitWhile(n *ast.While, sc *scope, cls *classInfo, selfName string) error {
	if _, err := b.visitExpr(n.Test, sc, cls, selfName); err != nil {
		return err
	}
	if err := b.visitStmts(n.Body, sc, cls, selfName); err != nil {
		return err
	}
	return b.visitStmts(n.Orelse, sc, cls, selfName)
}

func (b *Builder) visitIf(n *ast.If, sc *scope, cls *classInfo, selfName string) error {
	if _, err := b.visitExpr(n.Test, sc, cls, selfName); err != nil {
		return err
	}
	if err := b.visitStmts(n.Body, sc, cls, selfName); err != nil {
		return err
	}
	return b.visitStmts(n.Orelse, sc, cls, selfName)
}

func (b *Builder) visitTry(n *ast.Try, sc *scope, cls *classInfo, selfName string) error {
	if err := b.visitStmts(n.Body, sc, cls, selfName); err != nil {
		return err
	}
	for _, h := range n.Handlers {
		if h.Type != nil {
			if _, err := b.visitExpr(h.Type, sc, cls, selfName); err != nil {
				return err
			}
		}
		if h.Name != "" {
			pos, err := b.src.NodePosition(h)
			if err != nil {
				return err
			}
			sc.bind(b.g, h.Name, &pos)
		}
		if err := b.visitStmts(h.Body, sc, cls, selfName); err != nil {
			return err
		}
	}
	if err := b.visitStmts(n.Orelse, sc, cls, selfName); err != nil {
		return err
	}
	return b.visitStmts(n.Finalbody, sc, cls, selfName)
}

func (b *Builder) visitWith(n *ast.With, sc *scope, cls *classInfo, selfName string) error {
	for _, it := range n.Items {
		if _, err := b.visitExpr(it.ContextExpr, sc, cls, selfName); err != nil {
			return err
		}
		if it.OptionalVars != nil {
			if _, err := b.visitExpr(it.OptionalVars, sc, cls, selfName); err != nil {
				return err
			}
		}
	}
	return b.visitStmts(n.Body, sc, cls, selfName)
}

func (b *Builder) visitMatch(n *ast.Match, sc *scope, cls *classInfo, selfName string) error {
	if _, err := b.visitExpr(n.Subject, sc, cls, selfName); err != nil {
		return err
	}
	for _, c := range n.Cases {
		if err := b.visitPattern(c.Pattern, sc); err != nil {
			return err
		}
		if c.Guard != nil {
			if _, err := b.visitExpr(c.Guard, sc, cls, selfName); err != nil {
				return err
			}
		}
		if err := b.visitStmts(c.Body, sc, cls, selfName); err != nil {
			return err
		}
	}
	return nil
}

// visitPattern binds the capture names a match pattern introduces
// (spec's supplemented Match handling) into sc: match/case does not
// introduce its own scope in Python, so patterns bind into whatever
// scope the match statement itself lives in.
func (b *Builder) visitPattern(p ast.Node, sc *scope) error {
	if p == nil {
		return nil
	}
	switch pt := p.(type) {
	case *ast.MatchAs:
		if pt.Pattern != nil {
			if err := b.visitPattern(pt.Pattern, sc); err != nil {
				return err
			}
		}
		if pt.Name != "" {
			pos, err := b.src.NodePosition(pt)
			if err != nil {
				return err
			}
			sc.bind(b.g, pt.Name, &pos)
		}
	case *ast.MatchClass:
		if _, err := b.visitExpr(pt.Cls, sc, nil, ""); err != nil {
			return err
		}
		for _, sub := range pt.Patterns {
			if err := b.visitPattern(sub, sc); err != nil {
				return err
			}
		}
		for _, sub := range pt.KwdPatterns {
			if err := b.visitPattern(sub, sc); err != nil {
				return err
			}
		}
	case *ast.MatchSequence:
		for _, sub := range pt.Patterns {
			if err := b.visitPattern(sub, sc); err != nil {
				return err
			}
		}
	case *ast.MatchMapping:
		for _, sub := range pt.Patterns {
			if err := b.visitPattern(sub, sc); err != nil {
				return err
			}
		}
		if pt.Rest != "" {
			pos, err := b.src.NodePosition(pt)
			if err != nil {
				return err
			}
			sc.bind(b.g, pt.Rest, &pos)
		}
	case *ast.MatchStar:
		if pt.Name != "" {
			pos, err := b.src.NodePosition(pt)
			if err != nil {
				return err
			}
			sc.bind(b.g, pt.Name, &pos)
		}
	case *ast.Name:
		if pt.Ctx == ast.Store {
			pos, err := b.src.NodePosition(pt)
			if err != nil {
				return err
			}
			sc.bind(b.g, pt.Id, &pos)
			return nil
		}
		_, err := b.visitExpr(pt, sc, nil, "")
		return err
	default:
		_, err := b.visitExpr(p, sc, nil, "")
		return err
	}
	return nil
}

// bindParams binds every parameter name (positional, keyword-only,
// *args, **kwargs) directly into sc; used for plain functions and
// lambdas, which have no receiver to special-case.
func (b *Builder) bindParams(args ast.Arguments, sc *scope) error {
	for _, p := range args.AllPositional() {
		if err := b.bindOneParam(p, sc); err != nil {
			return err
		}
	}
	return b.bindRestParams(args, sc)
}

func (b *Builder) bindRestParams(args ast.Arguments, sc *scope) error {
	for _, p := range args.KwOnly {
		if err := b.bindOneParam(p, sc); err != nil {
			return err
		}
	}
	if args.Vararg != nil {
		if err := b.bindOneParam(*args.Vararg, sc); err != nil {
			return err
		}
	}
	if args.Kwarg != nil {
		if err := b.bindOneParam(*args.Kwarg, sc); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) bindOneParam(p ast.Arg, sc *scope) error {
	pos, err := b.src.PosAt(p.Pos)
	if err != nil {
		return err
	}
	sc.bind(b.g, p.Name, &pos)
	return nil
}

// visitFunctionDef handles a plain (non-method) function: its name
// binds in sc, its body gets a fresh scope falling back to sc, and its
// Pop("()") continuation leads into that scope so keyword-argument
// references at call sites resolve to the matching parameter.
func (b *Builder) visitFunctionDef(n *ast.FunctionDef, sc *scope) error {
	pos, err := b.src.NodePosition(n)
	if err != nil {
		return err
	}
	defPop := sc.bind(b.g, n.Name, &pos)
	fnScope := newScope(b.g, sc)
	callPop := b.g.AddNode(KindScope, "", nil, PopSym("()"))
	b.g.AddEdge(defPop, callPop, Edge{Priority: 0})
	b.g.AddEdge(callPop, fnScope.hub, Edge{Priority: 0})

	if err := b.bindParams(n.Args, fnScope); err != nil {
		return err
	}
	for _, dec := range n.DecoratorList {
		if _, err := b.visitExpr(dec, sc, nil, ""); err != nil {
			return err
		}
	}
	return b.visitStmts(n.Body, fnScope, nil, "")
}

// visitMethod is visitFunctionDef's counterpart for a function defined
// directly in a class body: identical wiring, except a non-static,
// non-classmethod's first parameter additionally binds to the class's
// instance scope (spec's supplemented self-binding), letting self.field
// inside the method body resolve as an instance property.
func (b *Builder) visitMethod(n *ast.FunctionDef, sc *scope, cls *classInfo) error {
	pos, err := b.src.NodePosition(n)
	if err != nil {
		return err
	}
	defPop := sc.bind(b.g, n.Name, &pos)
	fnScope := newScope(b.g, sc)
	callPop := b.g.AddNode(KindScope, "", nil, PopSym("()"))
	b.g.AddEdge(defPop, callPop, Edge{Priority: 0})
	b.g.AddEdge(callPop, fnScope.hub, Edge{Priority: 0})

	isInstanceMethod := !n.IsStaticMethod() && !n.IsClassMethod()
	selfName := ""
	positional := n.Args.AllPositional()
	for i, p := range positional {
		ppos, err := b.src.PosAt(p.Pos)
		if err != nil {
			return err
		}
		def := fnScope.bind(b.g, p.Name, &ppos)
		if i == 0 && isInstanceMethod {
			selfName = p.Name
			b.g.AddEdge(def, cls.instanceHub, Edge{Priority: 1})
		}
	}
	if err := b.bindRestParams(n.Args, fnScope); err != nil {
		return err
	}
	for _, dec := range n.DecoratorList {
		if _, err := b.visitExpr(dec, sc, nil, ""); err != nil {
			return err
		}
	}
	if !isInstanceMethod {
		selfName = ""
		cls = nil
	}
	return b.visitStmts(n.Body, fnScope, cls, selfName)
}

// visitClassDef wires the class name's Definition with two
// continuations: Pop(".") straight into the instance scope (for
// class-level attribute access) and Pop("()") into the same instance
// scope (what `ClassName()` yields), plus a fallback edge per base class
// already registered earlier in this session, in source order, so an
// unresolved field lookup on a subclass falls through to its bases
// (spec's supplemented class/instance handling). The instance scope also
// links straight into the class body's own scope, so self.method() and
// obj.method() — both routed through instanceHub — can reach methods,
// which bind into the body scope like any other name (original_source's
// visit_class_definition adds this same instance_scope -> class_scope
// edge).
func (b *Builder) visitClassDef(n *ast.ClassDef, sc *scope) error {
	pos, err := b.src.NodePosition(n)
	if err != nil {
		return err
	}
	defPop := sc.bind(b.g, n.Name, &pos)

	dotNode := b.g.AddNode(KindScope, "", nil, PopSym("."))
	b.g.AddEdge(defPop, dotNode, Edge{Priority: 0})
	callPop := b.g.AddNode(KindInstance, "", nil, PopSym("()"))
	b.g.AddEdge(defPop, callPop, Edge{Priority: 1})
	b.g.AddEdge(callPop, dotNode, Edge{Priority: 0})
	instanceHub := b.g.AddNode(KindInstance, "", nil, None())
	b.g.AddEdge(dotNode, instanceHub, Edge{Priority: 0})

	info := &classInfo{defPop: defPop, instanceHub: instanceHub, fields: map[string]NodeID{}}
	b.classRegistry[n.Name] = info

	basePriority := 1
	for _, base := range n.Bases {
		if baseName, ok := base.(*ast.Name); ok {
			if baseInfo, ok := b.classRegistry[baseName.Id]; ok {
				b.g.AddEdge(instanceHub, baseInfo.instanceHub, Edge{Priority: basePriority})
				basePriority++
			}
		}
		if _, err := b.visitExpr(base, sc, nil, ""); err != nil {
			return err
		}
	}
	for _, kw := range n.Keywords {
		if _, err := b.visitExpr(kw.Value, sc, nil, ""); err != nil {
			return err
		}
	}
	for _, dec := range n.DecoratorList {
		if _, err := b.visitExpr(dec, sc, nil, ""); err != nil {
			return err
		}
	}

	bodyScope := newScope(b.g, sc)
	b.g.AddEdge(instanceHub, bodyScope.hub, Edge{Priority: 0})
	for _, stmt := range n.Body {
		if fd, ok := stmt.(*ast.FunctionDef); ok {
			if err := b.visitMethod(fd, bodyScope, info); err != nil {
				return err
			}
			continue
		}
		if err := b.visitStmt(stmt, bodyScope, nil, ""); err != nil {
			return err
		}
	}
	return nil
}
