package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Required validates that value is not empty after trimming whitespace.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:          field,
			Message:        "field is required",
			TranslationKey: "validation.required",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// MaxLen validates that value has at most max characters. Characters are
// counted as runes, so å and § count once.
func MaxLen(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) <= max
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be at most %d characters long", max),
			TranslationKey: "validation.max_length",
			TranslationValues: map[string]any{
				"field": field,
				"max":   max,
			},
		},
	}
}

// Unique validates that value has not been seen before and records it in seen.
// The check runs when the rule is built so consecutive rules share seen.
func Unique(field, value string, seen map[string]bool) Rule {
	duplicate := seen[value]
	seen[value] = true
	return Rule{
		Check: func() bool {
			return !duplicate
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("duplicate value %q", value),
			TranslationKey: "validation.duplicate",
			TranslationValues: map[string]any{
				"field": field,
				"value": value,
			},
		},
	}
}
