package covers

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/covertower/pkg/group"
)

// Formula is a word whose permutation the search computes and caches.
//
// Terms refer either to generators (Gen < number of generators) or to
// earlier formulas of the same schedule (Gen >= number of generators, where
// formula i is referenced as i plus the number of generators). A formula
// only ever refers to formulas with a smaller index.
//
// IsRelation marks a whole relation, which must evaluate to the identity.
type Formula struct {
	Terms      group.Word
	IsRelation bool
}

// compareFormulas orders the formulas of one depth: relations first, then
// fewer terms, then lexicographically by terms.
func compareFormulas(a, b Formula) int {
	if a.IsRelation != b.IsRelation {
		if a.IsRelation {
			return -1
		}
		return 1
	}
	if c := cmp.Compare(len(a.Terms), len(b.Terms)); c != 0 {
		return c
	}
	return a.Terms.Compare(b.Terms)
}

// key returns a string that identifies f structurally.
func (f Formula) key() string {
	var b strings.Builder
	if f.IsRelation {
		b.WriteByte('!')
	}
	for _, t := range f.Terms {
		b.WriteString(strconv.Itoa(t.Gen))
		b.WriteByte('^')
		b.WriteString(strconv.Itoa(t.Exp))
		b.WriteByte(' ')
	}
	return b.String()
}

// tryReplace replaces every non-overlapping occurrence of inner in f with
// the single term index^1, scanning left to right. An empty inner never
// matches.
func (f *Formula) tryReplace(inner group.Word, index int) {
	if len(inner) == 0 {
		return
	}
	for from := 0; from+len(inner) <= len(f.Terms); from++ {
		if f.Terms[from : from+len(inner)].Equal(inner) {
			f.Terms = slices.Replace(f.Terms, from, from+len(inner), group.Term{Gen: index, Exp: 1})
		}
	}
}
