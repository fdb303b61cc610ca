package identity

// Mapping is the unified identifier -> Record lookup produced by one
// validation run. It remembers insertion order so that reports derived from
// it are deterministic. A Mapping is built once and then treated as
// read-only by everything that consumes it.
type Mapping struct {
	records map[string]*Record
	order   []string
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{records: make(map[string]*Record)}
}

// Put inserts or replaces the record stored under its normalized
// identifier. The identifier must already be normalized and non-empty.
func (m *Mapping) Put(rec *Record) {
	if _, exists := m.records[rec.Identifier]; !exists {
		m.order = append(m.order, rec.Identifier)
	}
	m.records[rec.Identifier] = rec
}

// Get returns the record for a normalized identifier.
func (m *Mapping) Get(id string) (*Record, bool) {
	rec, ok := m.records[id]
	return rec, ok
}

// Len returns the number of distinct identifiers in the mapping.
func (m *Mapping) Len() int {
	return len(m.records)
}

// Records returns copies of all records in insertion order.
func (m *Mapping) Records() []Record {
	out := make([]Record, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.records[id])
	}
	return out
}
