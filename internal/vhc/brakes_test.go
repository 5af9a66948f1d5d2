package vhc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBrakes_Pads(t *testing.T) {
	section := buildBrakes(map[string]any{
		"frontPads": map[string]any{
			"status":       "amber",
			"measurements": []any{"4.5", "4.2mm"},
		},
	})
	require.NotNil(t, section)
	require.Len(t, section.Items, 1)

	item := section.Items[0]
	assert.Equal(t, "Front pads", item.Heading)
	assert.Equal(t, []string{"4.5mm", "4.2mm"}, item.Rows)
	assert.Equal(t, Status{Severity: SeverityAmber}, item.Status)
	assert.Equal(t, Metrics{Total: 1, Amber: 1}, section.Metrics)
}

func TestBuildBrakes_DiscStatusDominance(t *testing.T) {
	tests := []struct {
		name        string
		measurement string
		visual      string
		want        Severity
	}{
		{name: "red measurement beats green visual", measurement: "red", visual: "green", want: SeverityRed},
		{name: "amber visual beats green measurement", measurement: "green", visual: "amber", want: SeverityAmber},
		{name: "both green", measurement: "green", visual: "green", want: SeverityGreen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			section := buildBrakes(map[string]any{
				"frontDiscs": map[string]any{
					"measurementStatus": tt.measurement,
					"visualStatus":      tt.visual,
				},
			})
			require.NotNil(t, section)
			require.Len(t, section.Items, 1)
			assert.Equal(t, Status{Severity: tt.want}, section.Items[0].Status)
		})
	}
}

func TestBuildBrakes_DiscRows(t *testing.T) {
	section := buildBrakes(map[string]any{
		"rearDiscs": map[string]any{
			"measurementStatus": "amber",
			"visualStatus":      "green",
		},
	})
	require.NotNil(t, section)
	require.Len(t, section.Items, 1)
	assert.Equal(t, []string{
		"Measured condition: Amber",
		"Visual condition: Green",
	}, section.Items[0].Rows)
}

func TestBuildBrakes_DrumsStatusAndConcernsOnly(t *testing.T) {
	section := buildBrakes(map[string]any{
		"rearDrums": map[string]any{
			"status": "green",
			"concerns": []any{
				map[string]any{"status": "amber", "text": "Light scoring on drum face"},
			},
		},
	})
	require.NotNil(t, section)
	require.Len(t, section.Items, 1)

	item := section.Items[0]
	assert.Equal(t, "Rear drums", item.Heading)
	assert.Empty(t, item.Rows)
	assert.Equal(t, Status{Severity: SeverityAmber}, item.Status)
	assert.Equal(t, Metrics{Total: 2, Amber: 1}, section.Metrics)
}

func TestBuildBrakes_AbsentComponentsSkipped(t *testing.T) {
	tests := []struct {
		name string
		raw  any
	}{
		{name: "nil payload", raw: nil},
		{name: "wrong type", raw: []any{"front", "rear"}},
		{name: "empty object", raw: map[string]any{}},
		{
			name: "components with nothing recorded",
			raw: map[string]any{
				"frontPads": map[string]any{},
				"rearDiscs": map[string]any{"concerns": []any{}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, buildBrakes(tt.raw))
		})
	}
}

func TestBuildBrakes_EmissionOrderIsFixed(t *testing.T) {
	section := buildBrakes(map[string]any{
		"rearDrums": map[string]any{"status": "green"},
		"frontPads": map[string]any{"status": "green"},
		"rearPads":  map[string]any{"status": "green"},
	})
	require.NotNil(t, section)
	require.Len(t, section.Items, 3)
	assert.Equal(t, "Front pads", section.Items[0].Heading)
	assert.Equal(t, "Rear pads", section.Items[1].Heading)
	assert.Equal(t, "Rear drums", section.Items[2].Heading)
}
