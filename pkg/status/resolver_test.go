package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Resolve(t *testing.T) {
	tests := []struct {
		name             string
		options          []Option
		query            string
		expectedOption   Option
		expectedStrategy Strategy
	}{
		{
			name:             "exact match ignores case",
			options:          []Option{{ID: "0", Name: "Working on it"}, {ID: "1", Name: "Done"}},
			query:            "DONE",
			expectedOption:   Option{ID: "1", Name: "Done"},
			expectedStrategy: StrategyExact,
		},
		{
			name:             "exact match beats an earlier substring match",
			options:          []Option{{ID: "0", Name: "In Progress Later"}, {ID: "1", Name: "in progress"}},
			query:            "In Progress",
			expectedOption:   Option{ID: "1", Name: "in progress"},
			expectedStrategy: StrategyExact,
		},
		{
			name:             "exact match beats alias match",
			options:          []Option{{ID: "0", Name: "Working on it"}, {ID: "1", Name: "In Progress"}},
			query:            "in progress",
			expectedOption:   Option{ID: "1", Name: "In Progress"},
			expectedStrategy: StrategyExact,
		},
		{
			name:             "query is substring of a single option",
			options:          []Option{{ID: "0", Name: "To Do"}, {ID: "1", Name: "In Review"}, {ID: "2", Name: "Done"}},
			query:            "review",
			expectedOption:   Option{ID: "1", Name: "In Review"},
			expectedStrategy: StrategySubstring,
		},
		{
			name:             "option name contained in query",
			options:          []Option{{ID: "0", Name: "Stuck"}, {ID: "1", Name: "Done"}},
			query:            "done already",
			expectedOption:   Option{ID: "1", Name: "Done"},
			expectedStrategy: StrategySubstring,
		},
		{
			name:             "alias table maps in progress to working",
			options:          []Option{{ID: "1", Name: "Done"}, {ID: "2", Name: "Working on it"}},
			query:            "in progress",
			expectedOption:   Option{ID: "2", Name: "Working on it"},
			expectedStrategy: StrategyAlias,
		},
		{
			name:             "alias table maps done to completed",
			options:          []Option{{ID: "3", Name: "Completed"}},
			query:            "done",
			expectedOption:   Option{ID: "3", Name: "Completed"},
			expectedStrategy: StrategyAlias,
		},
		{
			name:             "alias query resolves through its canonical name",
			options:          []Option{{ID: "0", Name: "Working"}, {ID: "1", Name: "Stuck"}},
			query:            "blocked",
			expectedOption:   Option{ID: "1", Name: "Stuck"},
			expectedStrategy: StrategyAlias,
		},
		{
			name:             "whitespace around query is ignored",
			options:          []Option{{ID: "0", Name: "Stuck"}},
			query:            "  stuck \t",
			expectedOption:   Option{ID: "0", Name: "Stuck"},
			expectedStrategy: StrategyExact,
		},
		{
			name:             "first alias hit wins even for unrelated labels",
			options:          []Option{{ID: "0", Name: "Progress report"}, {ID: "1", Name: "Working"}},
			query:            "doing",
			expectedOption:   Option{ID: "0", Name: "Progress report"},
			expectedStrategy: StrategyAlias,
		},
		{
			name:             "options without id are matched by name",
			options:          []Option{{Name: "Done"}},
			query:            "finished",
			expectedOption:   Option{Name: "Done"},
			expectedStrategy: StrategyAlias,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			before := append([]Option(nil), tc.options...)

			match, err := Resolve(tc.options, tc.query)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedOption, match.Option)
			assert.Equal(t, tc.expectedStrategy, match.Strategy)
			assert.Equal(t, before, tc.options, "input must not be mutated")
		})
	}
}

func Test_Resolve_NoMatch(t *testing.T) {
	tests := []struct {
		name              string
		options           []Option
		query             string
		expectedAvailable []string
		expectedList      string
	}{
		{
			name:              "empty options",
			options:           nil,
			query:             "done",
			expectedAvailable: []string{},
			expectedList:      "None found",
		},
		{
			name:              "unknown status",
			options:           []Option{{ID: "0", Name: "Working on it"}, {ID: "1", Name: "Done"}},
			query:             "archived",
			expectedAvailable: []string{"Working on it", "Done"},
			expectedList:      "Working on it, Done",
		},
		{
			name:              "alias without a matching label",
			options:           []Option{{ID: "0", Name: "Done"}},
			query:             "blocked",
			expectedAvailable: []string{"Done"},
			expectedList:      "Done",
		},
		{
			name:              "blank query",
			options:           []Option{{ID: "0", Name: "Done"}},
			query:             "   ",
			expectedAvailable: []string{"Done"},
			expectedList:      "Done",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Resolve(tc.options, tc.query)
			require.Error(t, err)

			var noMatch *NoMatchError
			require.ErrorAs(t, err, &noMatch)
			assert.Equal(t, tc.query, noMatch.Query)
			assert.Equal(t, tc.expectedAvailable, noMatch.Available)
			assert.Equal(t, tc.expectedList, noMatch.AvailableList())
		})
	}
}

func Test_ResolveWith_CustomTable(t *testing.T) {
	aliases := []Alias{{Canonical: "qa", Aliases: []string{"testing", "verify"}}}
	options := []Option{{ID: "4", Name: "Ready for testing"}}

	match, err := ResolveWith(options, "qa", aliases)
	require.NoError(t, err)
	assert.Equal(t, Option{ID: "4", Name: "Ready for testing"}, match.Option)

	_, err = ResolveWith(options, "in progress", aliases)
	assert.Error(t, err)
}
