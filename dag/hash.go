package dag

import (
	"regexp"
	"strings"

	"github.com/bitcomplete/revgraph/hashset"
)

// Hash identifies a commit. Equality is string equality; prefix matching
// is plain string-prefix matching.
type Hash = hashset.Hash

// Set is an order-preserving collection of hashes, re-exported so callers
// of dag rarely need to import hashset directly.
type Set = hashset.Set

var hexPrefixPattern = regexp.MustCompile(`^[0-9a-f]+$`)

// looksLikeHexPrefix reports whether name is a candidate for unambiguous
// hex-prefix resolution: 1-39 characters, all lowercase hex digits.
func looksLikeHexPrefix(name string) bool {
	if len(name) == 0 || len(name) > 39 {
		return false
	}
	return hexPrefixPattern.MatchString(name)
}

func hasPrefix(h Hash, prefix string) bool {
	return strings.HasPrefix(string(h), prefix)
}
