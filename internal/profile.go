package internal

// Profile is a point-in-time snapshot of a runtime's graph shape, exposed
// for the introspection contract in spec.md §6.
type Profile struct {
	NodesByKind      map[Kind]int
	SourceEdges      int
	SubscriberEdges  int
	PendingEffects   int
}

// Snapshot builds a Profile of rt's current state. It is a plain read: it
// does not validate anything, so counts reflect whatever state nodes
// happen to be in (Clean/Check/Dirty) at the moment of the call.
func (rt *Runtime) Snapshot() Profile {
	p := Profile{NodesByKind: make(map[Kind]int)}
	rt.store.each(func(id NodeID, rec *record) {
		p.NodesByKind[rec.kind]++
	})
	for _, deps := range rt.sources {
		p.SourceEdges += len(deps)
	}
	for _, subs := range rt.subscribers {
		p.SubscriberEdges += len(subs)
	}
	p.PendingEffects = len(rt.pending)
	return p
}
