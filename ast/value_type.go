package ast

// ValueType is a minimal static type tag. The expression parser (an
// out-of-scope collaborator, see SPEC_FULL.md) owns the full type system;
// the keyword parsers only need to read and propagate these tags (e.g.
// parse_let propagates the right-hand side's type onto the bound variable).
type ValueType struct {
	Name string // "any", "int", "bool", "string", "block", or a custom type name
}

var (
	AnyType    = ValueType{Name: "any"}
	IntType    = ValueType{Name: "int"}
	BoolType   = ValueType{Name: "bool"}
	StringType = ValueType{Name: "string"}
	BlockType  = ValueType{Name: "block"}
)

func CustomType(name string) ValueType {
	return ValueType{Name: name}
}

func (t ValueType) String() string {
	if t.Name == "" {
		return AnyType.Name
	}
	return t.Name
}
