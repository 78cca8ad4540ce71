package dag

import "github.com/bitcomplete/revgraph/hashset"

// Priority constants for NameMap entries, lowest wins. See spec §3.
const (
	PriorityDot              = 1
	PriorityBookmark         = 10
	PriorityRemoteBookmark   = 55
	PriorityHoistedRemoteTag = 60
)

type nameEntry struct {
	Hash     Hash
	Priority int
}

// NameInsert is one (name -> hash, priority) contribution to add to a
// NameMap.
type NameInsert struct {
	Name     string
	Hash     Hash
	Priority int
}

// NameMap is a priority-aware index from human name to commit hashes. It
// is immutable; Update returns a new value.
type NameMap struct {
	byName map[string][]nameEntry
	byHash map[Hash][]string
}

// NewNameMap returns an empty NameMap.
func NewNameMap() *NameMap {
	return &NameMap{byName: map[string][]nameEntry{}, byHash: map[Hash][]string{}}
}

func (nm *NameMap) cloneShallow() *NameMap {
	byName := make(map[string][]nameEntry, len(nm.byName))
	for k, v := range nm.byName {
		byName[k] = v
	}
	byHash := make(map[Hash][]string, len(nm.byHash))
	for k, v := range nm.byHash {
		byHash[k] = v
	}
	return &NameMap{byName: byName, byHash: byHash}
}

// Update applies, in one transition, the removal of every name
// contribution belonging to a hash in removeHashes, followed by the
// insertion of every entry in inserts. Applying both in a single call
// (rather than two sequential NameMap values) is what lets a commit be
// both removed and re-added without its name ever disappearing, per
// spec §4.4.
func (nm *NameMap) Update(removeHashes hashset.Set, inserts []NameInsert) *NameMap {
	if removeHashes.Size() == 0 && len(inserts) == 0 {
		return nm
	}
	out := nm.cloneShallow()

	touched := map[string]struct{}{}
	for _, h := range removeHashes.ToHashes() {
		for _, name := range out.byHash[h] {
			touched[name] = struct{}{}
		}
		delete(out.byHash, h)
	}
	for name := range touched {
		bucket := out.byName[name]
		filtered := bucket[:0:0]
		for _, e := range bucket {
			if !removeHashes.Contains(e.Hash) {
				filtered = append(filtered, e)
			}
		}
		out.byName[name] = filtered
	}

	for _, ins := range inserts {
		bucket := out.byName[ins.Name]
		exists := false
		for i, e := range bucket {
			if e.Hash == ins.Hash {
				if ins.Priority < e.Priority {
					// Copy first: the bucket may be shared with nm.
					bucket = append(bucket[:0:0], bucket...)
					bucket[i].Priority = ins.Priority
				}
				exists = true
				break
			}
		}
		if !exists {
			bucket = append(bucket[:len(bucket):len(bucket)], nameEntry{Hash: ins.Hash, Priority: ins.Priority})
		}
		out.byName[ins.Name] = bucket
		out.byHash[ins.Hash] = appendUniqueString(out.byHash[ins.Hash], ins.Name)
	}

	for name, bucket := range out.byName {
		if len(bucket) == 0 {
			delete(out.byName, name)
		}
	}
	return out
}

func appendUniqueString(s []string, v string) []string {
	for _, x := range s {
		if x == v {
			return s
		}
	}
	return append(s, v)
}

// Resolve returns the hash with the lowest priority registered under
// name, breaking ties deterministically by picking the lexicographically
// smallest hash.
func (nm *NameMap) Resolve(name string) (Hash, bool) {
	bucket := nm.byName[name]
	if len(bucket) == 0 {
		return "", false
	}
	best := bucket[0]
	for _, e := range bucket[1:] {
		if e.Priority < best.Priority || (e.Priority == best.Priority && e.Hash < best.Hash) {
			best = e
		}
	}
	return best.Hash, true
}

// Names returns every name a hash currently contributes.
func (nm *NameMap) Names(h Hash) []string {
	return nm.byHash[h]
}
