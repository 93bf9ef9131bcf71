package ast

// DeclKind tags which variant of Decl is populated. The set mirrors
// spec.md §9's design note: a Decl is a sum type whose variants are
// Predecl, BlockCommand, Alias, Plugin, and Builtin.
type DeclKind int

const (
	DeclPredecl DeclKind = iota
	DeclBlockCommand
	DeclAlias
	DeclPlugin
	DeclBuiltin
)

func (k DeclKind) String() string {
	switch k {
	case DeclPredecl:
		return "predecl"
	case DeclBlockCommand:
		return "block-command"
	case DeclAlias:
		return "alias"
	case DeclPlugin:
		return "plugin"
	case DeclBuiltin:
		return "builtin"
	default:
		return "unknown"
	}
}

// PluginEncoding is the wire encoding a registered plugin speaks over the
// transport (spec.md §4.11).
type PluginEncoding string

const (
	EncodingJSON    PluginEncoding = "json"
	EncodingMsgpack PluginEncoding = "msgpack"
)

// RecognizedEncodings lists every encoding parse_register accepts.
var RecognizedEncodings = []PluginEncoding{EncodingJSON, EncodingMsgpack}

// Decl is a command-like binding and its stable integer handle (spec.md
// §3 "Declaration"). Exactly one of the payload fields matches Kind,
// except Builtin which may carry no payload beyond Name.
//
// The Predecl -> BlockCommand transition is done by mutating the Decl in
// place at the same DeclId (step 5 of parse_def), so any reference to the
// DeclId captured while the body was being parsed stays valid.
type Decl struct {
	Id   DeclId
	Kind DeclKind
	Name string

	// DeclBlockCommand / DeclPredecl
	Signature *Signature
	BlockId   BlockId // NoBlockId while still a Predecl

	// DeclAlias
	AliasReplacement []string

	// DeclPlugin
	PluginPath     string
	PluginEncoding PluginEncoding
	PluginShell    string
}

// NewPredecl builds a reserved declaration slot with a signature but no
// body, used to enable peer/forward references (spec.md GLOSSARY).
func NewPredecl(id DeclId, sig *Signature) *Decl {
	return &Decl{Id: id, Kind: DeclPredecl, Name: sig.Name, Signature: sig, BlockId: NoBlockId}
}

// BindBlock transitions a Predecl into a full BlockCommand in place,
// preserving Id.
func (d *Decl) BindBlock(name string, sig *Signature, blockID BlockId) {
	d.Kind = DeclBlockCommand
	d.Name = name
	d.Signature = sig
	d.BlockId = blockID
}
