// Package dedup finds collisions on identifier, normalized name, or
// normalized account number within a record set. Groups are reporting
// output only; nothing here mutates the records.
package dedup

import "github.com/knd/schedrec/internal/identity"

// KeyFunc derives the comparison key for one record. Records whose key is
// empty are never grouped.
type KeyFunc func(identity.Record) string

// ByIdentifier groups on the normalized membership number.
func ByIdentifier(r identity.Record) string {
	return identity.NormalizeID(r.Identifier)
}

// ByFoldedName groups on the full name with token order preserved.
func ByFoldedName(r identity.Record) string {
	return r.FullName()
}

// BySortedName groups on the word-sorted full name, so "Smith John" and
// "John Smith" land in the same group. This token-order-insensitive match
// is deliberate domain policy.
func BySortedName(r identity.Record) string {
	return identity.SortName(r.FullName())
}

// ByAccount groups on the normalized account number.
func ByAccount(r identity.Record) string {
	return identity.NormalizeID(r.AccountNumber)
}

// Group is a set of records sharing one normalized key. Records keep their
// original order for display.
type Group struct {
	Key     string
	Records []identity.Record
}

// Find returns the groups of two or more records sharing a key, ordered by
// the key's first appearance in the input.
func Find(records []identity.Record, key KeyFunc) []Group {
	byKey := make(map[string][]identity.Record)
	var order []string

	for _, rec := range records {
		k := key(rec)
		if k == "" {
			continue
		}
		if _, seen := byKey[k]; !seen {
			order = append(order, k)
		}
		byKey[k] = append(byKey[k], rec)
	}

	var groups []Group
	for _, k := range order {
		if len(byKey[k]) >= 2 {
			groups = append(groups, Group{Key: k, Records: byKey[k]})
		}
	}
	return groups
}
