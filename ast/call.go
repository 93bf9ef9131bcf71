package ast

// NamedArg is one entry of a Call's named (flag) arguments. Value is nil
// when the flag was given without a value (a boolean switch).
type NamedArg struct {
	Name  string
	Span  Span
	Value *Expression
}

// Call is the shape every keyword parser ultimately produces: a reference
// to the built-in/user declaration being invoked (def, alias, export,
// module, use, hide, let, source, register all are themselves calls to
// their own built-in Decl), plus its resolved arguments.
type Call struct {
	HeadSpan Span
	DeclId   DeclId
	Decl     string // declaration name, for diagnostics, e.g. "def"

	Positional []Expression
	Named      []NamedArg
}

// NewCall builds an empty call against decl, to be filled in by the
// keyword parser as it walks its span list.
func NewCall(declID DeclId, declName string, headSpan Span) *Call {
	return &Call{HeadSpan: headSpan, DeclId: declID, Decl: declName}
}

func (c *Call) AddPositional(e Expression) {
	c.Positional = append(c.Positional, e)
}

func (c *Call) AddNamed(name string, span Span, value *Expression) {
	c.Named = append(c.Named, NamedArg{Name: name, Span: span, Value: value})
}

// FullSpan returns the call's overall span: the head span merged with every
// argument's span.
func (c *Call) FullSpan() Span {
	span := c.HeadSpan
	for _, p := range c.Positional {
		span = Merge(span, p.Span)
	}
	for _, n := range c.Named {
		span = Merge(span, n.Span)
		if n.Value != nil {
			span = Merge(span, n.Value.Span)
		}
	}
	return span
}

func CallExpr(c *Call) Expression {
	return Expression{Kind: ExprCall, Span: c.FullSpan(), Type: AnyType, Call: c}
}
