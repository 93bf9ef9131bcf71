package ast

// DeclId, BlockId, OverlayId, FileId and VarId are stable integer handles
// into the working set's append-only vectors (invariant I1: once handed
// out, an id remains valid for the working set's lifetime).
type (
	DeclId    int
	BlockId   int
	OverlayId int
	FileId    int
	VarId     int
)

// NoDeclId/NoBlockId/NoVarId mark "not yet resolved" where a zero value
// would otherwise be a valid handle.
const (
	NoDeclId    DeclId    = -1
	NoBlockId   BlockId   = -1
	NoVarId     VarId     = -1
	NoOverlayId OverlayId = -1
)
