// This file builds the service indicator section of the summary.
//
// The sub-payload is a single record in older app versions and an array of
// records in newer ones; both shapes are accepted.
package vhc

import "strings"

// serviceChoice is the closed set of service-indicator readings the form
// offers, with the display label and the severity hint each implies.
var serviceChoices = map[string]struct {
	label string
	hint  Status
}{
	"notDue":  {"Service not due", Status{Severity: SeverityGreen}},
	"dueSoon": {"Service due soon", Status{Severity: SeverityAmber}},
	"due":     {"Service due now", Status{Severity: SeverityAmber}},
	"overdue": {"Service overdue", Status{Severity: SeverityRed}},
}

// buildServiceIndicator turns the serviceIndicator sub-payload into a
// normalized section, or nil when no record carries usable content.
func buildServiceIndicator(raw any) *Section {
	var items []Item
	var metrics Metrics

	for _, record := range recordList(raw) {
		item, contrib := buildServiceItem(record)
		if item.isEmpty() {
			continue
		}
		items = append(items, item)
		metrics.add(contrib)
	}

	if len(items) == 0 {
		return nil
	}
	return &Section{
		Key:     keyServiceIndicator,
		Title:   "Service indicator",
		Type:    SectionMandatory,
		Metrics: metrics,
		Items:   items,
	}
}

// buildServiceItem derives one item from a service indicator record. The
// badge is the dominance of the explicit status, the serviceChoice hint
// and the oil-level severity.
func buildServiceItem(m map[string]any) (Item, Metrics) {
	explicit := NormaliseStatus(asString(m["status"]))

	var rows []string
	var hint Status
	if choice, ok := serviceChoices[strings.TrimSpace(fieldString(m, "serviceChoice"))]; ok {
		rows = append(rows, choice.label)
		hint = choice.hint
	}

	oilRaw := fieldString(m, "oilStatus")
	oilStatus := oilSeverity(oilRaw)
	if oilRaw != "" {
		rows = append(rows, "Oil level: "+oilRaw)
	}

	concerns := parseConcerns(m["concerns"])
	for i, c := range concerns {
		// The source tag (service/oil) collapses into a text prefix so the
		// concern reads unambiguously once it leaves this section.
		switch strings.ToLower(c.source) {
		case "oil":
			concerns[i].text = "Oil: " + c.text
		case "service":
			concerns[i].text = "Service: " + c.text
		}
	}

	var metrics Metrics
	metrics.addStatus(oilStatus)
	for _, c := range concerns {
		metrics.addStatus(c.status)
	}

	heading := fieldString(m, "heading")
	if heading == "" {
		heading = "Service indicator"
	}

	item := Item{
		ID:       fieldString(m, "id", "vhcId"),
		Heading:  heading,
		Status:   dominant(explicit, hint, oilStatus),
		Rows:     rows,
		Concerns: publicConcerns(concerns),
	}
	if len(item.Rows) == 0 && len(item.Concerns) == 0 {
		return Item{}, Metrics{}
	}
	return item, metrics
}

// oilSeverity maps the oil-level reading onto the severity scale. "EV"
// means the vehicle has no engine oil to check and counts as fine.
func oilSeverity(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "bad":
		return Status{Severity: SeverityRed}
	case "good", "ev":
		return Status{Severity: SeverityGreen}
	}
	return Status{}
}
