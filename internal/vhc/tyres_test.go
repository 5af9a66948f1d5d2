package vhc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTyres_TreadSeverityBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		tread map[string]any
		want  Severity
	}{
		{
			name:  "average exactly 2.5 is red",
			tread: map[string]any{"outer": "2", "middle": "3", "inner": "2.5"},
			want:  SeverityRed,
		},
		{
			name:  "average just above 2.5 is amber",
			tread: map[string]any{"outer": "2.6", "middle": "2.6", "inner": "2.6"},
			want:  SeverityAmber,
		},
		{
			name:  "average exactly 3.5 is amber",
			tread: map[string]any{"outer": "3.5", "middle": "3.5", "inner": "3.5"},
			want:  SeverityAmber,
		},
		{
			name:  "average above 3.5 is green",
			tread: map[string]any{"outer": "4", "middle": "4", "inner": "4"},
			want:  SeverityGreen,
		},
		{
			name:  "missing readings excluded from the mean",
			tread: map[string]any{"outer": "2"},
			want:  SeverityRed,
		},
		{
			name:  "mm suffixed readings parse",
			tread: map[string]any{"outer": "6mm", "inner": "6mm"},
			want:  SeverityGreen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			section := buildTyres(map[string]any{
				"frontLeft": map[string]any{"treadDepth": tt.tread},
			})
			require.NotNil(t, section)
			require.Len(t, section.Items, 1)
			assert.Equal(t, Status{Severity: tt.want}, section.Items[0].Status)
		})
	}
}

func TestBuildTyres_WheelRows(t *testing.T) {
	section := buildTyres(map[string]any{
		"frontRight": map[string]any{
			"manufacturer": "Michelin",
			"size":         "225/45 R17",
			"loadRating":   "94",
			"speedRating":  "W",
			"runFlat":      false,
			"treadDepth":   map[string]any{"outer": "2", "middle": "3", "inner": "2.5"},
		},
	})
	require.NotNil(t, section)
	require.Len(t, section.Items, 1)

	item := section.Items[0]
	assert.Equal(t, "Front right", item.Heading)
	assert.Equal(t, []string{
		"Manufacturer: Michelin",
		"Size: 225/45 R17",
		"Load rating: 94",
		"Speed rating: W",
		"Run flat: No",
		"Tread depth: outer 2mm, middle 3mm, inner 2.5mm",
		"Average tread depth: 2.5mm",
	}, item.Rows)
	assert.Equal(t, Status{Severity: SeverityRed}, item.Status)

	// Tread severity is a section-intrinsic contribution.
	assert.Equal(t, Metrics{Total: 1, Red: 1}, section.Metrics)
}

func TestBuildTyres_ConcernsCombineWithTread(t *testing.T) {
	section := buildTyres(map[string]any{
		"rearLeft": map[string]any{
			"treadDepth": map[string]any{"outer": "5", "middle": "5", "inner": "5"},
			"concerns": []any{
				map[string]any{"status": "red", "text": "Sidewall damage"},
			},
		},
	})
	require.NotNil(t, section)
	require.Len(t, section.Items, 1)

	item := section.Items[0]
	// Red concern dominates the green tread severity.
	assert.Equal(t, Status{Severity: SeverityRed}, item.Status)
	require.Len(t, item.Concerns, 1)
	assert.Equal(t, "Sidewall damage", item.Concerns[0].Text)

	// Green tread counts toward the total only; the red concern counts both.
	assert.Equal(t, Metrics{Total: 2, Red: 1}, section.Metrics)
}

func TestBuildTyres_EmptyWheelsSkipped(t *testing.T) {
	tests := []struct {
		name string
		raw  any
	}{
		{name: "nil payload", raw: nil},
		{name: "wrong type", raw: "not an object"},
		{name: "empty object", raw: map[string]any{}},
		{
			name: "wheels with no usable fields",
			raw: map[string]any{
				"frontLeft": map[string]any{},
				"rearRight": map[string]any{"treadDepth": map[string]any{}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, buildTyres(tt.raw))
		})
	}
}

func TestBuildTyres_SpareWheel(t *testing.T) {
	section := buildTyres(map[string]any{
		"spare": map[string]any{
			"type": "spare",
			"details": map[string]any{
				"manufacturer": "Continental",
				"treadDepth":   map[string]any{"outer": "6", "middle": "6", "inner": "6"},
			},
		},
	})
	require.NotNil(t, section)
	require.Len(t, section.Items, 1)

	item := section.Items[0]
	assert.Equal(t, "Spare wheel", item.Heading)
	assert.Contains(t, item.Rows, "Manufacturer: Continental")
	assert.Equal(t, Status{Severity: SeverityGreen}, item.Status)
}

func TestBuildTyres_SpareProvisions(t *testing.T) {
	tests := []struct {
		name        string
		spare       map[string]any
		wantHeading string
		wantRows    []string
	}{
		{
			name: "repair kit surfaces date and condition",
			spare: map[string]any{
				"type":      "repairKit",
				"date":      "2026-03-01",
				"condition": "Sealant in date",
			},
			wantHeading: "Tyre repair kit",
			wantRows:    []string{"Checked: 2026-03-01", "Condition: Sealant in date"},
		},
		{
			name: "space saver with note",
			spare: map[string]any{
				"type": "spaceSaver",
				"note": "Stowed correctly",
			},
			wantHeading: "Space saver",
			wantRows:    []string{"Note: Stowed correctly"},
		},
		{
			name: "not checked",
			spare: map[string]any{
				"type": "notChecked",
				"note": "Boot loaded with tools",
			},
			wantHeading: "Spare not checked",
			wantRows:    []string{"Note: Boot loaded with tools"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			section := buildTyres(map[string]any{"spare": tt.spare})
			require.NotNil(t, section)
			require.Len(t, section.Items, 1)
			assert.Equal(t, tt.wantHeading, section.Items[0].Heading)
			assert.Equal(t, tt.wantRows, section.Items[0].Rows)
		})
	}
}

func TestBuildTyres_ItemCarriesJoinID(t *testing.T) {
	section := buildTyres(map[string]any{
		"frontLeft": map[string]any{
			"id":         "vhc-17",
			"treadDepth": map[string]any{"outer": "3"},
		},
	})
	require.NotNil(t, section)
	require.Len(t, section.Items, 1)
	assert.Equal(t, "vhc-17", section.Items[0].ID)
}
