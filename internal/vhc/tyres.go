// This file builds the wheels & tyres section of the summary.
//
// Tyres carry the most derived-measurement logic on the checksheet: tread
// depth is captured as up to three readings per tyre (outer, middle,
// inner), averaged, and classified onto the severity scale.
package vhc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// wheelPositions are the fixed wheel slots on the checksheet, in emission
// order.
var wheelPositions = []struct {
	key   string
	title string
}{
	{"frontLeft", "Front left"},
	{"frontRight", "Front right"},
	{"rearLeft", "Rear left"},
	{"rearRight", "Rear right"},
}

// spareTypeLabels maps the spare-provision choice onto an item heading.
// A provision of "spare" is a real wheel and reuses the tyre detail fields
// under its "details" sub-object; the rest only surface date, condition
// and note.
var spareTypeLabels = map[string]string{
	"repairKit":  "Tyre repair kit",
	"spaceSaver": "Space saver",
	"bootFull":   "Boot full",
	"notChecked": "Spare not checked",
}

// Tread depth thresholds in millimetres. The average of the recorded
// readings is classified, not the individual readings.
const (
	treadRedMax   = 2.5
	treadAmberMax = 3.5
)

// buildTyres turns the wheelsTyres sub-payload into a normalized section,
// or nil when no wheel carries usable content.
func buildTyres(raw any) *Section {
	m := asMap(raw)

	var items []Item
	var metrics Metrics

	for _, pos := range wheelPositions {
		item, contrib := buildWheelItem(pos.title, asMap(m[pos.key]))
		if item.isEmpty() {
			continue
		}
		items = append(items, item)
		metrics.add(contrib)
	}

	if spare := asMap(m["spare"]); spare != nil {
		item, contrib := buildSpareItem(spare)
		if !item.isEmpty() {
			items = append(items, item)
			metrics.add(contrib)
		}
	}

	if len(items) == 0 {
		return nil
	}
	return &Section{
		Key:     keyWheelsTyres,
		Title:   "Wheels & tyres",
		Type:    SectionMandatory,
		Metrics: metrics,
		Items:   items,
	}
}

// buildWheelItem derives the display rows, tread severity and badge for a
// single wheel. A wheel with zero rows and zero concerns comes back empty
// and is skipped by the caller.
func buildWheelItem(heading string, m map[string]any) (Item, Metrics) {
	if m == nil {
		return Item{}, Metrics{}
	}

	var rows []string
	addRow := func(label, value string) {
		if value != "" {
			rows = append(rows, label+": "+value)
		}
	}
	addRow("Manufacturer", fieldString(m, "manufacturer"))
	addRow("Size", fieldString(m, "size"))
	addRow("Load rating", fieldString(m, "loadRating", "load"))
	addRow("Speed rating", fieldString(m, "speedRating", "speed"))

	if runFlat, ok := asBool(m["runFlat"]); ok {
		if runFlat {
			rows = append(rows, "Run flat: Yes")
		} else {
			rows = append(rows, "Run flat: No")
		}
	}

	treadRow, avgRow, treadStatus := treadDepth(asMap(m["treadDepth"]))
	if treadRow != "" {
		rows = append(rows, treadRow)
	}
	if avgRow != "" {
		rows = append(rows, avgRow)
	}

	concerns := parseConcerns(m["concerns"])

	statuses := make([]Status, 0, len(concerns)+1)
	statuses = append(statuses, treadStatus)
	var metrics Metrics
	metrics.addStatus(treadStatus)
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
	if len(item.Rows) == 0 && len(item.Concerns) == 0 {
		return Item{}, Metrics{}
	}
	return item, metrics
}

// treadDepth derives the readings row, the average row and the tread
// severity from the outer/middle/inner readings actually present.
func treadDepth(m map[string]any) (readingsRow, avgRow string, status Status) {
	if m == nil {
		return "", "", Status{}
	}

	var parts []string
	var values []float64
	for _, pos := range []string{"outer", "middle", "inner"} {
		raw, present := m[pos]
		if !present {
			continue
		}
		display := displayReading(raw)
		if display == "" {
			continue
		}
		parts = append(parts, pos+" "+display)
		if f, ok := parseReading(raw); ok {
			values = append(values, f)
		}
	}
	if len(parts) == 0 {
		return "", "", Status{}
	}
	readingsRow = "Tread depth: " + strings.Join(parts, ", ")

	if len(values) == 0 {
		return readingsRow, "", Status{}
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	avg := math.Round(sum/float64(len(values))*10) / 10
	avgRow = fmt.Sprintf("Average tread depth: %smm", strconv.FormatFloat(avg, 'f', -1, 64))

	switch {
	case avg <= treadRedMax:
		status = Status{Severity: SeverityRed}
	case avg <= treadAmberMax:
		status = Status{Severity: SeverityAmber}
	default:
		status = Status{Severity: SeverityGreen}
	}
	return readingsRow, avgRow, status
}

// displayReading renders one tread reading, ensuring the mm suffix for
// values that are actually numeric.
func displayReading(v any) string {
	s := asString(v)
	if s == "" {
		return ""
	}
	if _, ok := parseReading(v); ok && !strings.HasSuffix(s, "mm") {
		return s + "mm"
	}
	return s
}

// buildSpareItem handles the spare/kit record. Only a provision of type
// "spare" is a real wheel; the other provisions surface their date,
// condition and note fields.
func buildSpareItem(m map[string]any) (Item, Metrics) {
	provision := strings.TrimSpace(fieldString(m, "type"))
	if provision == "" {
		return Item{}, Metrics{}
	}

	if provision == "spare" {
		item, metrics := buildWheelItem("Spare wheel", asMap(m["details"]))
		if item.ID == "" {
			item.ID = fieldString(m, "id", "vhcId")
		}
		return item, metrics
	}

	heading, ok := spareTypeLabels[provision]
	if !ok {
		heading = sentenceCase(strings.ToLower(provision))
	}

	var rows []string
	if date := fieldString(m, "date"); date != "" {
		rows = append(rows, "Checked: "+date)
	}
	if condition := fieldString(m, "condition"); condition != "" {
		rows = append(rows, "Condition: "+condition)
	}
	if note := fieldString(m, "note"); note != "" {
		rows = append(rows, "Note: "+note)
	}

	concerns := parseConcerns(m["concerns"])
	statuses := make([]Status, 0, len(concerns))
	var metrics Metrics
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
	if len(item.Rows) == 0 && len(item.Concerns) == 0 {
		return Item{}, Metrics{}
	}
	return item, metrics
}

// publicConcerns converts parsed concerns into the exported shape.
func publicConcerns(concerns []rawConcern) []Concern {
	if len(concerns) == 0 {
		return nil
	}
	out := make([]Concern, 0, len(concerns))
	for _, c := range concerns {
		out = append(out, c.concern())
	}
	return out
}
