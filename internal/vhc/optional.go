// This file builds the three free-form sections: external inspection,
// internal & electrics, and underside.
//
// These sections fan out: when an entry carries concerns, one item is
// emitted per concern rather than per entry, so each concern renders with
// its own severity badge in the summary.
package vhc

// optionalSections are the free-form payload keys in emission order.
var optionalSections = []struct {
	key   string
	title string
}{
	{keyExternal, "External inspection"},
	{keyInternal, "Internal & electrics"},
	{keyUnderside, "Underside"},
}

// buildOptional turns one free-form sub-payload into a normalized section,
// or nil when no entry carries usable content. The sub-payload may be an
// array of entries or an object keyed by heading.
func buildOptional(key, title string, raw any) *Section {
	var items []Item
	var metrics Metrics

	for _, entry := range entryList(raw) {
		heading := fieldString(entry, "heading")
		entryID := fieldString(entry, "id", "vhcId")
		concerns := parseConcerns(entry["concerns"])

		if len(concerns) > 0 {
			for _, c := range concerns {
				id := c.id
				if id == "" {
					id = entryID
				}
				items = append(items, Item{
					ID:       id,
					Heading:  heading,
					Status:   c.status,
					Concerns: []Concern{c.concern()},
				})
				metrics.addStatus(c.status)
			}
			continue
		}

		status := NormaliseStatus(asString(entry["status"]))
		if status.IsZero() {
			continue
		}
		items = append(items, Item{
			ID:      entryID,
			Heading: heading,
			Status:  status,
		})
		metrics.addStatus(status)
	}

	if len(items) == 0 {
		return nil
	}
	return &Section{
		Key:     key,
		Title:   title,
		Type:    SectionOptional,
		Metrics: metrics,
		Items:   items,
	}
}
