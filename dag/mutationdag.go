package dag

import "github.com/bitcomplete/revgraph/hashset"

// MutationDag tracks predecessor->successor edges (the "obsolescence"
// graph). It is a BaseDag whose payload is just the node's own hash, per
// spec §4.3: nodes here may not exist in the visible BaseDag (an obsolete
// ancestor remembered only for traversal), and removal from the visible
// graph never removes a MutationDag node or edge.
type MutationDag struct {
	graph *BaseDag[Hash]
}

// NewMutationDag returns an empty MutationDag.
func NewMutationDag() *MutationDag {
	return &MutationDag{graph: NewBaseDag[Hash]()}
}

// Mutation is one predecessor->successor edge.
type Mutation struct {
	Old Hash
	New Hash
}

// AddMutations inserts the given (old, new) edges, creating placeholder
// nodes for either endpoint that isn't already present.
func (m *MutationDag) AddMutations(pairs []Mutation) *MutationDag {
	if len(pairs) == 0 {
		return m
	}
	entries := make(map[Hash]Entry[Hash], len(pairs)*2)
	get := func(h Hash) Entry[Hash] {
		if e, ok := entries[h]; ok {
			return e
		}
		parents := append([]Hash(nil), m.graph.ParentHashes(h)...)
		return Entry[Hash]{Hash: h, Payload: h, Parents: parents}
	}
	for _, p := range pairs {
		get(p.Old) // ensure the predecessor node exists even with no parents of its own
		newEntry := get(p.New)
		newEntry.Parents = appendUnique(newEntry.Parents, p.Old)
		entries[p.New] = newEntry
		if _, ok := entries[p.Old]; !ok {
			entries[p.Old] = get(p.Old)
		}
	}
	batch := make([]Entry[Hash], 0, len(entries))
	for _, e := range entries {
		batch = append(batch, e)
	}
	return &MutationDag{graph: m.graph.Add(batch)}
}

// Has reports whether h has ever appeared as either endpoint of a
// mutation.
func (m *MutationDag) Has(h Hash) bool {
	return m.graph.Has(h)
}

// Predecessors returns h's direct predecessors (what it was mutated
// from).
func (m *MutationDag) Predecessors(h Hash) []Hash {
	return m.graph.ParentHashes(h)
}

// Successors returns h's direct successors (what it was mutated into).
func (m *MutationDag) Successors(h Hash) []Hash {
	return m.graph.ChildHashes(h)
}

// Ancestors returns the reflexive transitive closure of Predecessors.
func (m *MutationDag) Ancestors(set hashset.Set) hashset.Set {
	return m.graph.Ancestors(set, nil)
}

// Descendants returns the reflexive transitive closure of Successors.
func (m *MutationDag) Descendants(set hashset.Set) hashset.Set {
	return m.graph.Descendants(set, nil)
}

// Heads returns the hashes in set with no successor within set.
func (m *MutationDag) Heads(set hashset.Set) hashset.Set {
	return m.graph.Heads(set)
}
