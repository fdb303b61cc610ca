// Package identity defines the canonical representation of one scheme
// member and the normalization rules used whenever member records are
// compared or joined across sources.
package identity

import (
	"sort"
	"strings"
)

// Provenance records which source supplied a member record.
type Provenance string

const (
	// SourceLookup marks records that came from the per-employer lookup
	// table, the primary source.
	SourceLookup Provenance = "lookup"

	// SourceMaster marks records that came from the uploaded master
	// report, the fallback source.
	SourceMaster Provenance = "master"
)

// Record is the canonical representation of one scheme member. Identifier
// is the scheme membership number and is never empty inside a Mapping; all
// other fields are optional.
type Record struct {
	Identifier     string
	AccountNumber  string
	AccountNumber2 string
	Surname        string
	FirstName      string
	OtherNames     string
	Provenance     Provenance
}

// FullName joins the non-empty name parts with single spaces, upper-cased.
func (r Record) FullName() string {
	return FoldName(r.Surname, r.FirstName, r.OtherNames)
}

// NormalizeID canonicalizes a member identifier for comparison: surrounding
// whitespace is trimmed and the result upper-cased. Identifiers must be
// normalized with this one function everywhere they are compared, or
// duplicates are silently missed.
func NormalizeID(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// FoldName joins the non-empty trimmed parts with single spaces and
// upper-cases the result. Token order is preserved.
func FoldName(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.ToUpper(strings.Join(kept, " "))
}

// SortName normalizes a full name so that differently-ordered name tokens
// compare equal: the name is upper-cased, split on whitespace, the tokens
// sorted lexicographically and rejoined with single spaces. "Smith John"
// and "John Smith" both become "JOHN SMITH".
func SortName(name string) string {
	tokens := strings.Fields(strings.ToUpper(name))
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
