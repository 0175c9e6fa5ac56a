package ast

// Module is the root of a single source file's AST.
type Module struct {
	Base
	Body []Node
}

func (n *Module) Kind() Kind        { return KindModule }
func (n *Module) Children() []Node  { return n.Body }

// Name is a bare identifier reference in load, store, or del context.
type Name struct {
	Base
	Id  string
	Ctx ExprContext
}

func (n *Name) Kind() Kind       { return KindName }
func (n *Name) Children() []Node { return nil }

// Assign is `targets = value` (possibly chained, `a = b = value`).
type Assign struct {
	Base
	Targets []Node
	Value   Node
}

func (n *Assign) Kind() Kind { return KindAssign }
func (n *Assign) Children() []Node {
	out := append([]Node{}, n.Targets...)
	return append(out, nonNil(n.Value)...)
}

// AugAssign is `target op= value` (e.g. `x += 1`).
type AugAssign struct {
	Base
	Target Node
	Op     string
	Value  Node
}

func (n *AugAssign) Kind() Kind       { return KindAugAssign }
func (n *AugAssign) Children() []Node { return nonNil(n.Target, n.Value) }

// Delete is `del target, target, ...`; each target typically is a Name
// with Ctx == Del, but may be an Attribute or Subscript.
type Delete struct {
	Base
	Targets []Node
}

func (n *Delete) Kind() Kind       { return KindDelete }
func (n *Delete) Children() []Node { return n.Targets }

// Attribute is `value.attr` in load, store, or del context.
type Attribute struct {
	Base
	Value Node
	Attr  string
	Ctx   ExprContext
}

func (n *Attribute) Kind() Kind       { return KindAttribute }
func (n *Attribute) Children() []Node { return nonNil(n.Value) }

// Keyword is a `name=value` call argument; Arg == "" denotes `**kwargs`.
type Keyword struct {
	Base
	Arg   string
	Value Node
}

func (n *Keyword) Kind() Kind       { return KindKeyword }
func (n *Keyword) Children() []Node { return nonNil(n.Value) }

// Call is `func(args..., kw=v...)`.
type Call struct {
	Base
	Func     Node
	Args     []Node
	Keywords []*Keyword
}

func (n *Call) Kind() Kind { return KindCall }
func (n *Call) Children() []Node {
	out := nonNil(n.Func)
	out = append(out, n.Args...)
	for _, kw := range n.Keywords {
		out = append(out, kw)
	}
	return out
}

// Arg is a single formal parameter. Pos is the position of the parameter
// name token itself.
type Arg struct {
	Name       string
	Annotation Node
	Pos        Pos
}

// Arguments is a function's full parameter list.
type Arguments struct {
	PosOnly    []Arg
	Args       []Arg
	Defaults   []Node
	Vararg     *Arg
	KwOnly     []Arg
	KwDefaults []Node
	Kwarg      *Arg
}

// AllPositional returns pos-only and regular parameters in declaration order.
func (a Arguments) AllPositional() []Arg {
	out := make([]Arg, 0, len(a.PosOnly)+len(a.Args))
	out = append(out, a.PosOnly...)
	out = append(out, a.Args...)
	return out
}

// FunctionDef is `def name(args): body` (decorator_list carries
// @staticmethod / @classmethod markers as Name/Attribute nodes).
type FunctionDef struct {
	Base
	Name          string
	Args          Arguments
	DecoratorList []Node
	Body          []Node
	Returns       Node
	IsAsync       bool
}

func (n *FunctionDef) Kind() Kind { return KindFunctionDef }
func (n *FunctionDef) Children() []Node {
	out := append([]Node{}, n.DecoratorList...)
	out = append(out, n.Body...)
	return out
}

// IsStaticMethod reports whether @staticmethod decorates this function.
func (n *FunctionDef) IsStaticMethod() bool { return hasDecorator(n.DecoratorList, "staticmethod") }

// IsClassMethod reports whether @classmethod decorates this function.
func (n *FunctionDef) IsClassMethod() bool { return hasDecorator(n.DecoratorList, "classmethod") }

func hasDecorator(decorators []Node, name string) bool {
	for _, d := range decorators {
		if nm, ok := d.(*Name); ok && nm.Id == name {
			return true
		}
	}
	return false
}

// ClassDef is `class Name(bases...): body`.
type ClassDef struct {
	Base
	Name          string
	Bases         []Node
	Keywords      []*Keyword
	Body          []Node
	DecoratorList []Node
}

func (n *ClassDef) Kind() Kind { return KindClassDef }
func (n *ClassDef) Children() []Node {
	out := append([]Node{}, n.DecoratorList...)
	out = append(out, n.Bases...)
	return append(out, n.Body...)
}

// Alias is one imported name, optionally renamed with `as`. Pos is the
// position of this alias's own token (the name, or the asname when
// present), distinct from the enclosing Import/ImportFrom's Base.Pos.
type Alias struct {
	Name   string
	AsName string
	Pos    Pos
}

// LocalName returns the name bound in the importing module's scope.
func (a Alias) LocalName() string {
	if a.AsName != "" {
		return a.AsName
	}
	return a.Name
}

// Import is `import a.b.c, d as e`.
type Import struct {
	Base
	Names []Alias
}

func (n *Import) Kind() Kind       { return KindImport }
func (n *Import) Children() []Node { return nil }

// ImportFrom is `from module import a, b as c`; Level counts leading dots
// for relative imports.
type ImportFrom struct {
	Base
	Module string
	Names  []Alias
	Level  int
}

func (n *ImportFrom) Kind() Kind       { return KindImportFrom }
func (n *ImportFrom) Children() []Node { return nil }

// Global is `global a, b`.
type Global struct {
	Base
	Names []string
}

func (n *Global) Kind() Kind       { return KindGlobal }
func (n *Global) Children() []Node { return nil }

// Nonlocal is `nonlocal a, b`.
type Nonlocal struct {
	Base
	Names []string
}

func (n *Nonlocal) Kind() Kind       { return KindNonlocal }
func (n *Nonlocal) Children() []Node { return nil }

// For is `for target in iter: body else: orelse`.
type For struct {
	Base
	Target  Node
	Iter    Node
	Body    []Node
	Orelse  []Node
	IsAsync bool
}

func (n *For) Kind() Kind { return KindFor }
func (n *For) Children() []Node {
	out := nonNil(n.Target, n.Iter)
	out = append(out, n.Body...)
	return append(out, n.Orelse...)
}

// While is `while test: body else: orelse`.
type While struct {
	Base
	Test   Node
	Body   []Node
	Orelse []Node
}

func (n *While) Kind() Kind { return KindWhile }
func (n *While) Children() []Node {
	out := nonNil(n.Test)
	out = append(out, n.Body...)
	return append(out, n.Orelse...)
}

// If is `if test: body else: orelse`.
type If struct {
	Base
	Test   Node
	Body   []Node
	Orelse []Node
}

func (n *If) Kind() Kind { return KindIf }
func (n *If) Children() []Node {
	out := nonNil(n.Test)
	out = append(out, n.Body...)
	return append(out, n.Orelse...)
}

// ExceptHandler is one `except Type as name: body` clause.
type ExceptHandler struct {
	Base
	Type Node
	Name string
	Body []Node
}

func (n *ExceptHandler) Kind() Kind { return KindExceptHandler }
func (n *ExceptHandler) Children() []Node {
	out := nonNil(n.Type)
	return append(out, n.Body...)
}

// Try is `try: body except...: handlers else: orelse finally: finalbody`.
type Try struct {
	Base
	Body      []Node
	Handlers  []*ExceptHandler
	Orelse    []Node
	Finalbody []Node
}

func (n *Try) Kind() Kind { return KindTry }
func (n *Try) Children() []Node {
	out := append([]Node{}, n.Body...)
	for _, h := range n.Handlers {
		out = append(out, h)
	}
	out = append(out, n.Orelse...)
	return append(out, n.Finalbody...)
}

// Return is `return value` (value may be nil).
type Return struct {
	Base
	Value Node
}

func (n *Return) Kind() Kind       { return KindReturn }
func (n *Return) Children() []Node { return nonNil(n.Value) }

// Yield is `yield value`.
type Yield struct {
	Base
	Value Node
}

func (n *Yield) Kind() Kind       { return KindYield }
func (n *Yield) Children() []Node { return nonNil(n.Value) }

// YieldFrom is `yield from value`.
type YieldFrom struct {
	Base
	Value Node
}

func (n *YieldFrom) Kind() Kind       { return KindYieldFrom }
func (n *YieldFrom) Children() []Node { return nonNil(n.Value) }

// WithItem is one `expr as vars` clause of a with statement.
type WithItem struct {
	ContextExpr  Node
	OptionalVars Node
}

// With is `with items...: body` (and async with).
type With struct {
	Base
	Items   []WithItem
	Body    []Node
	IsAsync bool
}

func (n *With) Kind() Kind { return KindWith }
func (n *With) Children() []Node {
	var out []Node
	for _, it := range n.Items {
		out = append(out, nonNil(it.ContextExpr, it.OptionalVars)...)
	}
	return append(out, n.Body...)
}

// Lambda is `lambda args: body`.
type Lambda struct {
	Base
	Args Arguments
	Body Node
}

func (n *Lambda) Kind() Kind       { return KindLambda }
func (n *Lambda) Children() []Node { return nonNil(n.Body) }

// IfExp is `body if test else orelse`.
type IfExp struct {
	Base
	Test, Body, Orelse Node
}

func (n *IfExp) Kind() Kind       { return KindIfExp }
func (n *IfExp) Children() []Node { return nonNil(n.Test, n.Body, n.Orelse) }

// NamedExpr is `target := value` (the walrus operator).
type NamedExpr struct {
	Base
	Target Node
	Value  Node
}

func (n *NamedExpr) Kind() Kind       { return KindNamedExpr }
func (n *NamedExpr) Children() []Node { return nonNil(n.Target, n.Value) }

// Subscript is `value[slice]`.
type Subscript struct {
	Base
	Value Node
	Slice Node
	Ctx   ExprContext
}

func (n *Subscript) Kind() Kind       { return KindSubscript }
func (n *Subscript) Children() []Node { return nonNil(n.Value, n.Slice) }

// Slice is `lower:upper:step`.
type Slice struct {
	Base
	Lower, Upper, Step Node
}

func (n *Slice) Kind() Kind       { return KindSlice }
func (n *Slice) Children() []Node { return nonNil(n.Lower, n.Upper, n.Step) }

// UnaryOp is `op operand` (e.g. `not x`, `-x`).
type UnaryOp struct {
	Base
	Op      string
	Operand Node
}

func (n *UnaryOp) Kind() Kind       { return KindUnaryOp }
func (n *UnaryOp) Children() []Node { return nonNil(n.Operand) }

// BinOp is `left op right`.
type BinOp struct {
	Base
	Left  Node
	Op    string
	Right Node
}

func (n *BinOp) Kind() Kind       { return KindBinOp }
func (n *BinOp) Children() []Node { return nonNil(n.Left, n.Right) }

// BoolOp is `v1 and v2 and ...` / `v1 or v2 or ...`.
type BoolOp struct {
	Base
	Op     string
	Values []Node
}

func (n *BoolOp) Kind() Kind       { return KindBoolOp }
func (n *BoolOp) Children() []Node { return n.Values }

// Compare is a chained comparison `left op1 c1 op2 c2 ...`.
type Compare struct {
	Base
	Left        Node
	Ops         []string
	Comparators []Node
}

func (n *Compare) Kind() Kind { return KindCompare }
func (n *Compare) Children() []Node {
	out := nonNil(n.Left)
	return append(out, n.Comparators...)
}

// Constant is a literal value (number, string, bool, None, ...).
type Constant struct {
	Base
	Value interface{}
}

func (n *Constant) Kind() Kind       { return KindConstant }
func (n *Constant) Children() []Node { return nil }

// Tuple is `(e1, e2, ...)` in load, store, or del context.
type Tuple struct {
	Base
	Elts []Node
	Ctx  ExprContext
}

func (n *Tuple) Kind() Kind       { return KindTuple }
func (n *Tuple) Children() []Node { return n.Elts }

// List is `[e1, e2, ...]` in load, store, or del context.
type List struct {
	Base
	Elts []Node
	Ctx  ExprContext
}

func (n *List) Kind() Kind       { return KindList }
func (n *List) Children() []Node { return n.Elts }

// Set is `{e1, e2, ...}`.
type Set struct {
	Base
	Elts []Node
}

func (n *Set) Kind() Kind       { return KindSet }
func (n *Set) Children() []Node { return n.Elts }

// Dict is `{k1: v1, k2: v2, ...}`; a nil key at index i denotes `**value`.
type Dict struct {
	Base
	Keys   []Node
	Values []Node
}

func (n *Dict) Kind() Kind { return KindDict }
func (n *Dict) Children() []Node {
	out := append([]Node{}, n.Keys...)
	return append(out, n.Values...)
}

// Comprehension is one `for target in iter if ifs...` clause.
type Comprehension struct {
	Target  Node
	Iter    Node
	Ifs     []Node
	IsAsync bool
}

// ListComp is `[elt for ...]`.
type ListComp struct {
	Base
	Elt        Node
	Generators []Comprehension
}

func (n *ListComp) Kind() Kind       { return KindListComp }
func (n *ListComp) Children() []Node { return comprehensionChildren(n.Elt, n.Generators) }

// SetComp is `{elt for ...}`.
type SetComp struct {
	Base
	Elt        Node
	Generators []Comprehension
}

func (n *SetComp) Kind() Kind       { return KindSetComp }
func (n *SetComp) Children() []Node { return comprehensionChildren(n.Elt, n.Generators) }

// DictComp is `{key: value for ...}`.
type DictComp struct {
	Base
	Key, Value Node
	Generators []Comprehension
}

func (n *DictComp) Kind() Kind { return KindDictComp }
func (n *DictComp) Children() []Node {
	out := nonNil(n.Key, n.Value)
	for _, g := range n.Generators {
		out = append(out, nonNil(g.Target, g.Iter)...)
		out = append(out, g.Ifs...)
	}
	return out
}

// GeneratorExp is `(elt for ...)`.
type GeneratorExp struct {
	Base
	Elt        Node
	Generators []Comprehension
}

func (n *GeneratorExp) Kind() Kind       { return KindGeneratorExp }
func (n *GeneratorExp) Children() []Node { return comprehensionChildren(n.Elt, n.Generators) }

func comprehensionChildren(elt Node, generators []Comprehension) []Node {
	out := nonNil(elt)
	for _, g := range generators {
		out = append(out, nonNil(g.Target, g.Iter)...)
		out = append(out, g.Ifs...)
	}
	return out
}

// MatchCase is one `case pattern if guard: body` clause.
type MatchCase struct {
	Pattern Node
	Guard   Node
	Body    []Node
}

// Match is `match subject: cases...`.
type Match struct {
	Base
	Subject Node
	Cases   []MatchCase
}

func (n *Match) Kind() Kind { return KindMatch }
func (n *Match) Children() []Node {
	out := nonNil(n.Subject)
	for _, c := range n.Cases {
		out = append(out, nonNil(c.Pattern, c.Guard)...)
		out = append(out, c.Body...)
	}
	return out
}

// MatchAs is `pattern as name` (or a bare capture pattern when Pattern is nil).
type MatchAs struct {
	Base
	Pattern Node
	Name    string
}

func (n *MatchAs) Kind() Kind       { return KindMatchAs }
func (n *MatchAs) Children() []Node { return nonNil(n.Pattern) }

// MatchClass is `Cls(patterns..., kwdAttr=kwdPattern...)`.
type MatchClass struct {
	Base
	Cls         Node
	Patterns    []Node
	KwdAttrs    []string
	KwdPatterns []Node
}

func (n *MatchClass) Kind() Kind { return KindMatchClass }
func (n *MatchClass) Children() []Node {
	out := nonNil(n.Cls)
	out = append(out, n.Patterns...)
	return append(out, n.KwdPatterns...)
}

// MatchSequence is `[p1, p2, ...]` as a pattern.
type MatchSequence struct {
	Base
	Patterns []Node
}

func (n *MatchSequence) Kind() Kind       { return KindMatchSequence }
func (n *MatchSequence) Children() []Node { return n.Patterns }

// MatchMapping is `{k1: p1, ...}` as a pattern; Rest is the `**rest` binding.
type MatchMapping struct {
	Base
	Keys     []Node
	Patterns []Node
	Rest     string
}

func (n *MatchMapping) Kind() Kind { return KindMatchMapping }
func (n *MatchMapping) Children() []Node {
	out := append([]Node{}, n.Keys...)
	return append(out, n.Patterns...)
}

// MatchStar is `*name` within a sequence pattern.
type MatchStar struct {
	Base
	Name string
}

func (n *MatchStar) Kind() Kind       { return KindMatchStar }
func (n *MatchStar) Children() []Node { return nil }

// Starred is `*value` within a call or assignment target.
type Starred struct {
	Base
	Value Node
	Ctx   ExprContext
}

func (n *Starred) Kind() Kind       { return KindStarred }
func (n *Starred) Children() []Node { return nonNil(n.Value) }

// Pass is the `pass` statement.
type Pass struct{ Base }

func (n *Pass) Kind() Kind       { return KindPass }
func (n *Pass) Children() []Node { return nil }

// Break is the `break` statement.
type Break struct{ Base }

func (n *Break) Kind() Kind       { return KindBreak }
func (n *Break) Children() []Node { return nil }

// Continue is the `continue` statement.
type Continue struct{ Base }

func (n *Continue) Kind() Kind       { return KindContinue }
func (n *Continue) Children() []Node { return nil }

// JoinedStr is an f-string's concatenation of literal and formatted parts.
type JoinedStr struct {
	Base
	Values []Node
}

func (n *JoinedStr) Kind() Kind       { return KindJoinedStr }
func (n *JoinedStr) Children() []Node { return n.Values }

// FormattedValue is one `{expr}` slot inside an f-string.
type FormattedValue struct {
	Base
	Value Node
}

func (n *FormattedValue) Kind() Kind       { return KindFormattedValue }
func (n *FormattedValue) Children() []Node { return nonNil(n.Value) }
