package identity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeID(t *testing.T) {
	t.Parallel()

	require.Equal(t, "C0012345", NormalizeID("  c0012345 "))
	require.Equal(t, "", NormalizeID("   "))
	require.Equal(t, "A1", NormalizeID("a1"))
}

func TestFoldName_SkipsEmptyParts(t *testing.T) {
	t.Parallel()

	require.Equal(t, "MENSAH KOFI", FoldName("Mensah", "", "Kofi"))
	require.Equal(t, "MENSAH", FoldName(" Mensah ", "  ", ""))
	require.Equal(t, "", FoldName("", "", ""))
}

func TestSortName_TokenOrderInsensitive(t *testing.T) {
	t.Parallel()

	require.Equal(t, SortName("Smith John"), SortName("John Smith"))
	require.NotEqual(t, SortName("John Smith"), SortName("John Smithy"))
	require.Equal(t, "JOHN SMITH", SortName("  smith   john "))
}

func TestMapping_PutReplacesAndKeepsOrder(t *testing.T) {
	t.Parallel()

	m := NewMapping()
	m.Put(&Record{Identifier: "A", Surname: "First"})
	m.Put(&Record{Identifier: "B", Surname: "Second"})
	m.Put(&Record{Identifier: "A", Surname: "Replaced"})

	require.Equal(t, 2, m.Len())

	rec, ok := m.Get("A")
	require.True(t, ok)
	require.Equal(t, "Replaced", rec.Surname)

	records := m.Records()
	require.Equal(t, "A", records[0].Identifier)
	require.Equal(t, "B", records[1].Identifier)
}
