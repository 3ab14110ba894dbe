package render

import (
	"strconv"
	"strings"
	"text/template"
)

func funcMap(lookup LookupFunc, tracker *envTracker) template.FuncMap {
	return template.FuncMap{
		"env": func(key string) string {
			value, ok := lookup(key)
			if !ok {
				tracker.markMissing(key)
			}
			return value
		},
		"envOr": func(key, def string) string {
			if value, ok := lookup(key); ok && value != "" {
				return value
			}
			return def
		},
		"default": func(def, value string) string {
			if value == "" {
				return def
			}
			return value
		},
		"trimSuffix": func(suffix, value string) string {
			return strings.TrimSuffix(value, suffix)
		},
		"quote": strconv.Quote,
		"lower": strings.ToLower,
	}
}
