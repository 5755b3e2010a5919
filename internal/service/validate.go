package service

import (
	"math"
	"regexp"
	"strings"
)

// decimal matches plain decimal numbers. Go-only spellings such as "inf",
// hex floats and underscores are not numbers to API clients.
var decimal = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// Requirements lists the body fields each write operation needs.
type Requirements struct {
	Pizza    []string
	Beverage []string
	Order    []string
	Status   []string
}

// DefaultRequirements matches the published API document.
func DefaultRequirements() Requirements {
	return Requirements{
		Pizza:    []string{"type", "name"},
		Beverage: []string{"name"},
		Order:    []string{"pizzaId"},
		Status:   []string{"status"},
	}
}

// present reports whether v counts as supplied: not null, not "", not false
// and not 0.
func present(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case bool:
		return x
	case float64:
		return x != 0 && !math.IsNaN(x)
	}
	return true
}

// missing returns the required fields body does not supply.
func missing(body map[string]any, required []string) []string {
	var out []string
	for _, field := range required {
		if !present(body[field]) {
			out = append(out, field)
		}
	}
	return out
}

// numeric reports whether v is a number or a string holding a decimal number.
func numeric(v any) bool {
	switch x := v.(type) {
	case float64:
		return !math.IsNaN(x)
	case string:
		return decimal.MatchString(strings.TrimSpace(x))
	}
	return false
}
