package txform

import (
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/fieldguard/pkg/validator"
)

// Option configures a Form.
type Option func(*Form)

// WithField declares a text field validated by policy.
// Declaring a field twice or using the zero policy panics.
func WithField(name string, policy validator.Policy) Option {
	if policy.IsZero() {
		panic(fmt.Errorf("%w: field %q", validator.ErrInvalidPolicyReference, name))
	}
	return func(f *Form) {
		if _, exists := f.fields[name]; exists {
			panic(fmt.Errorf("%w: %q", ErrDuplicateField, name))
		}
		f.fields[name] = &field{policy: policy}
		f.order = append(f.order, name)
	}
}

// WithLogger sets the logger. Nil keeps the default discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(f *Form) {
		if l != nil {
			f.log = l
		}
	}
}

// WithAutoCorrect makes rejected changes store the input with every
// disallowed character removed instead of keeping the previous value.
func WithAutoCorrect() Option {
	return func(f *Form) {
		f.autoCorrect = true
	}
}
