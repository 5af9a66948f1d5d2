// This file defines the normalized summary model produced by the section
// builders: concerns, items, sections and the payload-level Summary.
package vhc

// =============================================================================
// Concern
// =============================================================================

// Concern is a single free-text issue raised against an inspection item.
// Concerns exist only for non-empty text; an unspecified status defaults
// to Amber.
type Concern struct {
	Status Status `json:"status"`
	Text   string `json:"text"`
}

// rawConcern is a parsed concern entry before it is attached to an item.
// It keeps the inspection-item id and source tag from the payload, which
// are join keys and display hints rather than part of the public model.
type rawConcern struct {
	status Status
	text   string
	id     string
	source string
}

// concern converts the parsed entry into the public Concern shape.
func (c rawConcern) concern() Concern {
	return Concern{Status: c.status, Text: c.text}
}

// parseConcerns normalizes a raw concern list. Entries without text are
// dropped; entries without a status are treated as Amber.
func parseConcerns(v any) []rawConcern {
	raw := asSlice(v)
	concerns := make([]rawConcern, 0, len(raw))
	for _, e := range raw {
		m := asMap(e)
		if m == nil {
			continue
		}
		text := fieldString(m, "text", "description")
		if text == "" {
			continue
		}
		status := NormaliseStatus(asString(m["status"]))
		if status.IsZero() {
			status = Status{Severity: SeverityAmber}
		}
		concerns = append(concerns, rawConcern{
			status: status,
			text:   text,
			id:     fieldString(m, "id", "vhcId"),
			source: asString(m["source"]),
		})
	}
	return concerns
}

// =============================================================================
// Item
// =============================================================================

// Item is one normalized entry within a section: a wheel, a brake
// component, or one raised concern in the free-form sections.
type Item struct {
	// ID is the inspection-item identifier used to join the item against
	// approval records and parts line items. Empty when the technician
	// payload carried none.
	ID string `json:"id,omitempty"`

	Heading  string    `json:"heading"`
	Status   Status    `json:"status"`
	Rows     []string  `json:"rows"`
	Concerns []Concern `json:"concerns"`
}

// isEmpty reports whether the item carries no usable content and should be
// skipped rather than emitted.
func (i Item) isEmpty() bool {
	return len(i.Rows) == 0 && len(i.Concerns) == 0 && i.Status.IsZero()
}

// =============================================================================
// Section
// =============================================================================

// SectionType distinguishes the always-built sections from the free-form
// ones that only exist when the technician recorded something.
type SectionType string

const (
	SectionMandatory SectionType = "mandatory"
	SectionOptional  SectionType = "optional"
)

// Metrics is the derived severity tally for a section or a whole summary.
// There is no Green counter: green findings raise the total but are not
// surfaced as a standalone count on the dashboard.
type Metrics struct {
	Total int `json:"total"`
	Red   int `json:"red"`
	Amber int `json:"amber"`
	Grey  int `json:"grey"`
}

// addStatus tallies one severity signal. Preserved free-text labels count
// toward the total only.
func (m *Metrics) addStatus(st Status) {
	if st.IsZero() {
		return
	}
	m.Total++
	switch st.Severity {
	case SeverityRed:
		m.Red++
	case SeverityAmber:
		m.Amber++
	case SeverityGrey:
		m.Grey++
	}
}

// add accumulates another tally element-wise.
func (m *Metrics) add(other Metrics) {
	m.Total += other.Total
	m.Red += other.Red
	m.Amber += other.Amber
	m.Grey += other.Grey
}

// Section is one normalized inspection area. A section is only built when
// at least one item has content; empty sections are omitted from the
// summary entirely rather than emitted with zero metrics.
type Section struct {
	Key     string      `json:"key"`
	Title   string      `json:"title"`
	Type    SectionType `json:"type"`
	Metrics Metrics     `json:"metrics"`
	Items   []Item      `json:"items"`
}

// =============================================================================
// Summary
// =============================================================================

// Summary is the normalized, severity-ranked view of one technician
// checksheet. Totals are the element-wise sum of all section metrics.
type Summary struct {
	Sections  []Section `json:"sections"`
	Totals    Metrics   `json:"totals"`
	ItemCount int       `json:"itemCount"`
}

// RedAmberItems returns every summary item whose badge is Red or Amber,
// in section emission order. This is the extraction the financial
// aggregator joins against approval records and parts line items.
func (s Summary) RedAmberItems() []Item {
	var items []Item
	for _, section := range s.Sections {
		for _, item := range section.Items {
			if item.Status.Is(SeverityRed) || item.Status.Is(SeverityAmber) {
				items = append(items, item)
			}
		}
	}
	return items
}
