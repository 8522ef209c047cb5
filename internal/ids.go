package internal

// NodeID is the opaque, copyable handle every public Signal/Memo/MemoChain/
// Effect wrapper carries under the hood. It is a generation-stamped slot
// key, not a pointer: index into the store's slab plus the generation the
// slot had when this id was minted, so a stale handle into a reused slot is
// detectable instead of silently aliasing the wrong node.
type NodeID struct {
	index uint32
	gen   uint32
}

// Nil is the zero NodeID, used as the "no observer" / "no node" sentinel.
// The store never hands out index 0, so Nil never aliases a live node.
var Nil = NodeID{}

func (id NodeID) IsNil() bool { return id == Nil }
