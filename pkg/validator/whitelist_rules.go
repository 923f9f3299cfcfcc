package validator

import "fmt"

// AllowedChars validates that value contains only characters permitted by policy.
// Empty values pass; combine with a required check when presence matters.
func AllowedChars(field, value string, policy Policy) Rule {
	policy.mustBeDefined()
	return Rule{
		Check: func() bool {
			return policy.Validate(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("contains characters not allowed by %s", policy.Name()),
			TranslationKey: "validation.allowed_chars",
			TranslationValues: map[string]any{
				"field":  field,
				"policy": policy.Name(),
			},
		},
	}
}
