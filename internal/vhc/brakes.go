// This file builds the brakes & hubs section of the summary.
package vhc

// brakeComponent describes one fixed slot of the brakesHubs sub-payload.
type brakeComponent struct {
	key   string
	title string
	kind  brakeKind
}

type brakeKind int

const (
	brakePads brakeKind = iota
	brakeDiscs
	brakeDrums
)

// brakeComponents are the fixed brake slots on the checksheet, in
// emission order.
var brakeComponents = []brakeComponent{
	{"frontPads", "Front pads", brakePads},
	{"rearPads", "Rear pads", brakePads},
	{"frontDiscs", "Front discs", brakeDiscs},
	{"rearDiscs", "Rear discs", brakeDiscs},
	{"rearDrums", "Rear drums", brakeDrums},
}

// buildBrakes turns the brakesHubs sub-payload into a normalized section,
// or nil when every component is entirely absent.
func buildBrakes(raw any) *Section {
	m := asMap(raw)

	var items []Item
	var metrics Metrics

	for _, comp := range brakeComponents {
		entry := asMap(m[comp.key])
		if entry == nil {
			continue
		}

		var item Item
		var contrib Metrics
		switch comp.kind {
		case brakePads:
			item, contrib = buildPadItem(comp.title, entry)
		case brakeDiscs:
			item, contrib = buildDiscItem(comp.title, entry)
		case brakeDrums:
			item, contrib = buildDrumItem(comp.title, entry)
		}
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
		Key:     keyBrakesHubs,
		Title:   "Brakes & hubs",
		Type:    SectionMandatory,
		Metrics: metrics,
		Items:   items,
	}
}

// buildPadItem handles front/rear pads: an explicit status, a measurement
// list and concerns.
func buildPadItem(heading string, m map[string]any) (Item, Metrics) {
	explicit := NormaliseStatus(asString(m["status"]))

	var rows []string
	for _, v := range asSlice(m["measurements"]) {
		if reading := displayReading(v); reading != "" {
			rows = append(rows, reading)
		}
	}

	return brakeItem(heading, m, explicit, rows)
}

// buildDiscItem handles front/rear discs, which carry a measured status
// and a visual status combined via the dominance rule.
func buildDiscItem(heading string, m map[string]any) (Item, Metrics) {
	measured := asString(m["measurementStatus"])
	visual := asString(m["visualStatus"])
	combined := DominantStatus(measured, visual)

	var rows []string
	if st := NormaliseStatus(measured); !st.IsZero() {
		rows = append(rows, "Measured condition: "+st.String())
	}
	if st := NormaliseStatus(visual); !st.IsZero() {
		rows = append(rows, "Visual condition: "+st.String())
	}

	return brakeItem(heading, m, combined, rows)
}

// buildDrumItem handles rear drums: status and concerns only.
func buildDrumItem(heading string, m map[string]any) (Item, Metrics) {
	return brakeItem(heading, m, NormaliseStatus(asString(m["status"])), nil)
}

// brakeItem assembles a brake component item. The component's own status
// counts toward the section metrics alongside its concerns; it is a
// severity signal in its own right, not a restatement of them.
func brakeItem(heading string, m map[string]any, explicit Status, rows []string) (Item, Metrics) {
	concerns := parseConcerns(m["concerns"])

	statuses := make([]Status, 0, len(concerns)+1)
	statuses = append(statuses, explicit)
	var metrics Metrics
	metrics.addStatus(explicit)
	for _, c := range concerns {
		statuses = append(statuses, c.status)
		metrics.addStatus(c.status)
	}

	item := Item{
		ID:       fieldString(m, "id", "vhcId"),
		Heading:  heading,
		Status:   dominant(statuses...),
		Rows:     rows,
		Concerns: publicConcerns(concerns),
	}
	if item.isEmpty() {
		return Item{}, Metrics{}
	}
	return item, metrics
}
