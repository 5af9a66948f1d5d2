// This file contains the summary orchestrator: it runs every section
// builder over one technician payload and accumulates the payload-level
// totals.
package vhc

// Summarise runs all section builders over one technician payload and
// returns the normalized summary. The three mandatory builders (tyres,
// brakes, service indicator) always run; the free-form builders run
// against their payload keys. Builders that find no usable content are
// skipped, not appended as empty sections.
//
// A malformed payload never raises: builders coerce or ignore bad shapes
// and simply omit the affected items. Summarise is a pure derivation and
// must be re-run whenever the payload changes; nothing is memoized.
func Summarise(payload Payload) Summary {
	var summary Summary

	appendSection := func(section *Section) {
		if section == nil {
			return
		}
		summary.Sections = append(summary.Sections, *section)
		summary.Totals.add(section.Metrics)
		summary.ItemCount += len(section.Items)
	}

	appendSection(buildTyres(payload[keyWheelsTyres]))
	appendSection(buildBrakes(payload[keyBrakesHubs]))
	appendSection(buildServiceIndicator(payload[keyServiceIndicator]))

	for _, opt := range optionalSections {
		appendSection(buildOptional(opt.key, opt.title, payload[opt.key]))
	}

	return summary
}
