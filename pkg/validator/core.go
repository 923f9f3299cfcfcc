package validator

import (
	"errors"
	"strings"
)

// ValidationError is one rejected field. Message is the English fallback;
// TranslationKey and TranslationValues let callers render it per locale.
type ValidationError struct {
	Field             string
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

// ValidationErrors is the ordered list of rejections from one validation pass.
// It satisfies errors.Is(err, ErrValidationFailed).
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	var b strings.Builder
	b.WriteString(ErrValidationFailed.Error())
	for i, e := range ve {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(e.Field)
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

func (ve ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

// Has reports whether field was rejected at least once.
func (ve ValidationErrors) Has(field string) bool {
	for _, e := range ve {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Fields returns each rejected field name once, in the order first rejected.
func (ve ValidationErrors) Fields() []string {
	names := make([]string, 0, len(ve))
	for i, e := range ve {
		if !ve[:i].Has(e.Field) {
			names = append(names, e.Field)
		}
	}
	return names
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// Rule is a deferred check and the rejection it reports.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Collect evaluates every rule in order and returns the rejections, or nil
// when all rules hold.
func Collect(rules ...Rule) ValidationErrors {
	var errs ValidationErrors
	for _, r := range rules {
		if !r.Check() {
			errs.Add(r.Error)
		}
	}
	return errs
}

// Apply is Collect as an error value: nil, or a ValidationErrors.
func Apply(rules ...Rule) error {
	if errs := Collect(rules...); errs != nil {
		return errs
	}
	return nil
}

// ExtractValidationErrors returns the ValidationErrors in err's chain, or nil.
func ExtractValidationErrors(err error) ValidationErrors {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs
	}
	return nil
}
