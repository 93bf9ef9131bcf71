package ast

// ExprKind tags which variant of Expression is populated.
type ExprKind int

const (
	ExprGarbage ExprKind = iota
	ExprLiteral
	ExprVar
	ExprCall
	ExprBlockRef
	ExprImportPattern
	// ExprOther covers every expression form produced by the external
	// expression parser (parse_string, parse_block_expression, ...) that
	// this core does not otherwise model. Its payload is opaque.
	ExprOther
)

func (k ExprKind) String() string {
	switch k {
	case ExprGarbage:
		return "garbage"
	case ExprLiteral:
		return "literal"
	case ExprVar:
		return "variable"
	case ExprCall:
		return "call"
	case ExprBlockRef:
		return "block-ref"
	case ExprImportPattern:
		return "import-pattern"
	case ExprOther:
		return "other"
	default:
		return "unknown"
	}
}

// Literal is a scalar value already resolved at parse time (an int, a
// bool, a bare string, ...). Richer literal forms (interpolated strings,
// lists, records) belong to the external expression parser and arrive
// here boxed as ExprOther.
type Literal struct {
	Text string
}

// VarRef is a reference to a variable by its VarId, e.g. `$x`.
type VarRef struct {
	Name string
	Id   VarId
}

// BlockRef is a reference to a previously-parsed block, e.g. the closure
// literal passed to `def`.
type BlockRef struct {
	Id BlockId
}

// Expression is the tagged union {expr, span, ty, custom_completion} from
// spec.md §3. Exactly one of the payload fields is populated according to
// Kind, except ExprGarbage and ExprOther which carry no/opaque payload.
type Expression struct {
	Kind ExprKind
	Span Span
	Type ValueType

	// CustomCompletion names a custom completion command registered for
	// this expression, if any. Populated by the external expression
	// parser; the keyword parsers only ever read or pass it through.
	CustomCompletion string

	Literal       *Literal
	Var           *VarRef
	Call          *Call
	BlockRef      *BlockRef
	ImportPattern *ImportPattern
	Other         any
}

// Garbage constructs a garbage expression occupying span, used whenever a
// keyword parser cannot produce a well-formed node but must still return
// one so that later passes can continue (spec.md §7).
func Garbage(span Span) Expression {
	return Expression{Kind: ExprGarbage, Span: span, Type: AnyType}
}

// IsGarbage reports whether e is a garbage placeholder.
func (e Expression) IsGarbage() bool {
	return e.Kind == ExprGarbage
}
