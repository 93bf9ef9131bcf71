package ast

// Block is an ordered sequence of statements plus the signature it was
// parsed against and the set of outer variables it captures (spec.md §3
// "Block"). Blocks are stored by BlockId in the working set and referenced
// everywhere else by that handle so they never need to be copied.
type Block struct {
	Span      Span
	Signature *Signature
	Stmts     []Statement
	Captures  map[VarId]struct{}
}

// NewBlock builds an empty block against sig.
func NewBlock(span Span, sig *Signature) *Block {
	return &Block{Span: span, Signature: sig, Captures: make(map[VarId]struct{})}
}

func (b *Block) AddStmt(s Statement) {
	b.Stmts = append(b.Stmts, s)
}

func (b *Block) Capture(id VarId) {
	b.Captures[id] = struct{}{}
}
