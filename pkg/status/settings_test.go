package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ParseSettings(t *testing.T) {
	tests := []struct {
		name            string
		settings        string
		expectedShape   Shape
		expectedOptions []Option
	}{
		{
			name:          "label map keeps integer keys ascending",
			settings:      `{"labels":{"10":"Later","2":"Stuck","x":"Other","1":"Done"},"labels_positions_v2":{"1":0}}`,
			expectedShape: ShapeLabelMap,
			expectedOptions: []Option{
				{ID: "1", Name: "Done"},
				{ID: "2", Name: "Stuck"},
				{ID: "10", Name: "Later"},
				{ID: "x", Name: "Other"},
			},
		},
		{
			name:          "label map drops empty labels",
			settings:      `{"labels":{"0":"Working on it","5":""}}`,
			expectedShape: ShapeLabelMap,
			expectedOptions: []Option{
				{ID: "0", Name: "Working on it"},
			},
		},
		{
			name:          "list of objects with name or label",
			settings:      `{"labels":[{"id":0,"label":"Working on it"},{"name":"Done"},{"id":7}]}`,
			expectedShape: ShapeObjectList,
			expectedOptions: []Option{
				{ID: "0", Name: "Working on it"},
				{Name: "Done"},
			},
		},
		{
			name:          "list of strings",
			settings:      `{"labels":["To Do","Done"]}`,
			expectedShape: ShapeStringList,
			expectedOptions: []Option{
				{Name: "To Do"},
				{Name: "Done"},
			},
		},
		{
			name:          "bare top level list",
			settings:      `["Stuck", "Done"]`,
			expectedShape: ShapeStringList,
			expectedOptions: []Option{
				{Name: "Stuck"},
				{Name: "Done"},
			},
		},
		{
			name:            "malformed json",
			settings:        `{"labels": {`,
			expectedShape:   ShapeUnknown,
			expectedOptions: []Option{},
		},
		{
			name:            "no labels key",
			settings:        `{"hide_footer":false}`,
			expectedShape:   ShapeUnknown,
			expectedOptions: []Option{},
		},
		{
			name:            "empty settings",
			settings:        "",
			expectedShape:   ShapeUnknown,
			expectedOptions: []Option{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			settings := ParseSettings(tc.settings)
			assert.Equal(t, tc.expectedShape, settings.Shape)
			assert.Equal(t, tc.expectedOptions, settings.Options())
		})
	}
}

func Test_ParseSettings_UnknownResolvesToNoMatch(t *testing.T) {
	settings := ParseSettings("not json")

	_, err := Resolve(settings.Options(), "done")
	var noMatch *NoMatchError
	assert.ErrorAs(t, err, &noMatch)
	assert.Empty(t, noMatch.Available)
}
