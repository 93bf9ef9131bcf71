package ast

// Param is one positional parameter of a Signature.
type Param struct {
	Name     string
	Span     Span
	VarId    VarId // NoVarId if the signature is still a predecl shell
	Shape    ValueType
	Optional bool
	Default  *Expression
}

// Flag is one named (--flag) parameter of a Signature.
type Flag struct {
	Name     string
	Short    rune // 0 if none
	Span     Span
	VarId    VarId
	Shape    ValueType
	Required bool
}

// Signature is a command's declared shape: name, positional parameters,
// named flags, and an optional rest parameter. A Signature can be
// predeclared (name reserved, no body yet) or bound to a block (spec.md
// §3 "Signature").
type Signature struct {
	Name  string
	Span  Span
	Input []Param
	Flags []Flag
	Rest  *Param
}

// NewSignature builds an empty signature for name, e.g. the shell of a
// predecl before its parameter list is known.
func NewSignature(name string, span Span) *Signature {
	return &Signature{Name: name, Span: span}
}
