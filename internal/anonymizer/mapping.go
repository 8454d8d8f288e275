package anonymizer

import "fmt"

// EntityType labels one category of personal data.
type EntityType string

const (
	TypeURL   EntityType = "URL"
	TypeEmail EntityType = "EMAIL"
	TypePhone EntityType = "PHONE"
	TypePer   EntityType = "PER"
	TypeLoc   EntityType = "LOC"
	TypeOrg   EntityType = "ORG"
)

// Mapping is the request-scoped symbol table of one masking session:
// placeholder -> real value, plus a reverse index for deduplication and
// per-type monotonically increasing counters.
//
// A Mapping must be created fresh per request and must never be shared
// between concurrent requests. Masking and unmasking for one answer must
// use the same instance so placeholders resolve back to their values.
type Mapping struct {
	placeholders map[string]string
	reverse      map[string]string
	counters     map[EntityType]int
}

func NewMapping() *Mapping {
	return &Mapping{
		placeholders: make(map[string]string),
		reverse:      make(map[string]string),
		counters:     make(map[EntityType]int),
	}
}

// placeholderFor returns the placeholder for a real value, allocating a new
// numbered one on first sight. Identical values within one mapping always
// share a placeholder.
func (m *Mapping) placeholderFor(entityType EntityType, realValue string) string {
	if placeholder, ok := m.reverse[realValue]; ok {
		return placeholder
	}

	m.counters[entityType]++
	placeholder := fmt.Sprintf("[%s_%d]", entityType, m.counters[entityType])

	m.placeholders[placeholder] = realValue
	m.reverse[realValue] = placeholder
	return placeholder
}

// Len is the number of distinct masked values.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.placeholders)
}

// Placeholders returns a copy of the placeholder table.
func (m *Mapping) Placeholders() map[string]string {
	out := make(map[string]string, len(m.placeholders))
	for k, v := range m.placeholders {
		out[k] = v
	}
	return out
}
