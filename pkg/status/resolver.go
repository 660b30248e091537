// Package status maps free-text status names onto the labels configured on a
// Monday.com status column.
package status

import (
	"fmt"
	"strings"
)

// Strategy records which matching step selected an option.
type Strategy string

const (
	StrategyExact     Strategy = "exact"
	StrategySubstring Strategy = "substring"
	StrategyAlias     Strategy = "alias"
)

// Alias maps a canonical status name to informal names that should resolve
// to it.
type Alias struct {
	Canonical string
	Aliases   []string
}

// DefaultAliases is consulted in order once exact and substring matching
// have failed.
//
// The first canonical entry whose alias occurs anywhere inside an option
// name wins, so a board label that merely contains "progress" can be picked
// for "in progress". Kept as is for compatibility.
var DefaultAliases = []Alias{
	{Canonical: "in progress", Aliases: []string{"working", "in-progress", "progress", "doing"}},
	{Canonical: "in review", Aliases: []string{"review", "reviewing", "pending review"}},
	{Canonical: "done", Aliases: []string{"complete", "completed", "finished"}},
	{Canonical: "todo", Aliases: []string{"to do", "pending", "not started"}},
	{Canonical: "stuck", Aliases: []string{"blocked", "blocker"}},
}

// Match is a successful resolution.
type Match struct {
	Option   Option
	Strategy Strategy
}

// NoMatchError is returned by Resolve when no option fits the query.
type NoMatchError struct {
	Query     string
	Available []string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no status matching %q; available statuses: %s", e.Query, e.AvailableList())
}

// AvailableList renders the available names for display.
func (e *NoMatchError) AvailableList() string {
	if len(e.Available) == 0 {
		return "None found"
	}
	return strings.Join(e.Available, ", ")
}

// Resolve picks the option that best fits query using DefaultAliases.
func Resolve(options []Option, query string) (Match, error) {
	return ResolveWith(options, query, DefaultAliases)
}

// ResolveWith picks the option that best fits query. Steps are tried in
// order and the first hit wins: exact name, containment in either
// direction, then the alias table.
func ResolveWith(options []Option, query string, aliases []Alias) (Match, error) {
	q := normalize(query)
	if q == "" {
		return Match{}, noMatch(options, query)
	}

	for _, opt := range options {
		if normalize(opt.Name) == q {
			return Match{Option: opt, Strategy: StrategyExact}, nil
		}
	}

	for _, opt := range options {
		name := normalize(opt.Name)
		if name == "" {
			continue
		}
		if strings.Contains(name, q) || strings.Contains(q, name) {
			return Match{Option: opt, Strategy: StrategySubstring}, nil
		}
	}

	for _, entry := range aliases {
		if !entry.accepts(q) {
			continue
		}
		for _, opt := range options {
			if entry.covers(normalize(opt.Name)) {
				return Match{Option: opt, Strategy: StrategyAlias}, nil
			}
		}
	}

	return Match{}, noMatch(options, query)
}

// Names returns the display names of options in order.
func Names(options []Option) []string {
	names := make([]string, 0, len(options))
	for _, opt := range options {
		names = append(names, opt.Name)
	}
	return names
}

func (a Alias) accepts(q string) bool {
	if q == a.Canonical {
		return true
	}
	for _, alias := range a.Aliases {
		if q == alias {
			return true
		}
	}
	return false
}

func (a Alias) covers(name string) bool {
	if name == "" {
		return false
	}
	if name == a.Canonical {
		return true
	}
	for _, alias := range a.Aliases {
		if strings.Contains(name, alias) {
			return true
		}
	}
	return false
}

func noMatch(options []Option, query string) *NoMatchError {
	return &NoMatchError{Query: query, Available: Names(options)}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
