package status

import (
	"sort"
	"strconv"

	"github.com/tidwall/gjson"
)

// Shape identifies how a status column encodes its labels in settings_str.
type Shape int

const (
	// ShapeUnknown covers empty, unparseable or unrecognised settings.
	ShapeUnknown Shape = iota
	// ShapeLabelMap is {"labels": {"<id>": "<name>"}}.
	ShapeLabelMap
	// ShapeObjectList is a list of {"id"?, "name"|"label"} objects.
	ShapeObjectList
	// ShapeStringList is a list of bare label strings.
	ShapeStringList
)

func (s Shape) String() string {
	switch s {
	case ShapeLabelMap:
		return "label_map"
	case ShapeObjectList:
		return "object_list"
	case ShapeStringList:
		return "string_list"
	default:
		return "unknown"
	}
}

// Option is a single configured label of a status column.
type Option struct {
	// ID is the label index as configured on the board. Empty when the
	// settings did not carry one.
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// Settings is the parsed form of a status column's settings_str.
type Settings struct {
	Shape   Shape
	options []Option
}

// Options returns a copy of the normalized options in board order.
func (s Settings) Options() []Option {
	out := make([]Option, len(s.options))
	copy(out, s.options)
	return out
}

// ParseSettings classifies settingsStr and normalizes its labels. Anything
// it cannot make sense of yields ShapeUnknown with no options.
func ParseSettings(settingsStr string) Settings {
	if settingsStr == "" || !gjson.Valid(settingsStr) {
		return Settings{Shape: ShapeUnknown}
	}

	root := gjson.Parse(settingsStr)
	if root.IsArray() {
		return parseList(root)
	}

	labels := root.Get("labels")
	switch {
	case labels.IsObject():
		return parseLabelMap(labels)
	case labels.IsArray():
		return parseList(labels)
	}
	return Settings{Shape: ShapeUnknown}
}

func parseLabelMap(labels gjson.Result) Settings {
	type entry struct {
		key   string
		index int64
		isInt bool
		name  string
	}

	var entries []entry
	labels.ForEach(func(key, value gjson.Result) bool {
		name := labelName(value)
		if name == "" {
			return true
		}
		e := entry{key: key.String(), name: name}
		if n, err := strconv.ParseInt(e.key, 10, 64); err == nil && n >= 0 && strconv.FormatInt(n, 10) == e.key {
			e.index, e.isInt = n, true
		}
		entries = append(entries, e)
		return true
	})

	// Integer keys come first in ascending order, the rest keep document order.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].isInt != entries[j].isInt {
			return entries[i].isInt
		}
		if entries[i].isInt {
			return entries[i].index < entries[j].index
		}
		return false
	})

	opts := make([]Option, 0, len(entries))
	for _, e := range entries {
		opts = append(opts, Option{ID: e.key, Name: e.name})
	}
	return Settings{Shape: ShapeLabelMap, options: opts}
}

func parseList(list gjson.Result) Settings {
	var (
		opts        []Option
		stringCount int
		objectCount int
	)
	list.ForEach(func(_, value gjson.Result) bool {
		switch {
		case value.Type == gjson.String:
			stringCount++
			if name := value.String(); name != "" {
				opts = append(opts, Option{Name: name})
			}
		case value.IsObject():
			objectCount++
			name := labelName(value)
			if name == "" {
				return true
			}
			opt := Option{Name: name}
			if id := value.Get("id"); id.Exists() && id.Type != gjson.Null {
				opt.ID = id.String()
			}
			opts = append(opts, opt)
		}
		return true
	})

	shape := ShapeUnknown
	switch {
	case objectCount > 0:
		shape = ShapeObjectList
	case stringCount > 0:
		shape = ShapeStringList
	}
	return Settings{Shape: shape, options: opts}
}

// labelName extracts a display name from a label value: a bare string, or
// an object's "name" falling back to its "label".
func labelName(value gjson.Result) string {
	if value.Type == gjson.String {
		return value.String()
	}
	if !value.IsObject() {
		return ""
	}
	if name := value.Get("name"); name.Type == gjson.String && name.String() != "" {
		return name.String()
	}
	if label := value.Get("label"); label.Type == gjson.String {
		return label.String()
	}
	return ""
}
