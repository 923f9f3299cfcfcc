package txform

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/dmitrymomot/fieldguard/pkg/logger"
	"github.com/dmitrymomot/fieldguard/pkg/validator"
)

type field struct {
	policy validator.Policy
	value  string
}

// Form holds the text fields of one transaction being edited and tracks
// whether it has unsaved changes. It is safe for concurrent use.
type Form struct {
	id          uuid.UUID
	reference   string
	notifier    DirtyNotifier
	log         *slog.Logger
	autoCorrect bool

	mu     sync.Mutex
	fields map[string]*field
	order  []string
	dirty  bool
}

// New opens a form for the transaction identified by reference and reports
// a clean state to notifier. A nil notifier is allowed.
func New(reference string, notifier DirtyNotifier, opts ...Option) *Form {
	if notifier == nil {
		notifier = noopNotifier{}
	}

	f := &Form{
		id:        uuid.New(),
		reference: reference,
		notifier:  notifier,
		log:       logger.Discard(),
		fields:    make(map[string]*field),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.notifier.SetTransactionIsDirty(false)
	f.log.Debug("form opened",
		logger.FormID(f.id),
		logger.Reference(reference),
		logger.Component("txform"),
	)

	return f
}

// ID returns the identifier assigned to the form when it was opened.
func (f *Form) ID() uuid.UUID {
	return f.id
}

// Reference returns the transaction identifier the form was opened for.
func (f *Form) Reference() string {
	return f.reference
}

// Fields returns the declared field names in declaration order.
func (f *Form) Fields() []string {
	return append([]string(nil), f.order...)
}

// Change validates value under the field's policy. An accepted value replaces
// the current one; a rejected value leaves it unchanged unless auto-correct
// is on. The first stored change marks the form dirty and notifies the
// container. The returned bool reports whether value was accepted as given.
//
// The notifier is called after the form lock is released, so it may read the
// form back.
func (f *Form) Change(ctx context.Context, name, value string) (bool, error) {
	accepted, notify, err := f.change(ctx, name, value)
	if notify {
		f.notifier.SetTransactionIsDirty(true)
	}
	return accepted, err
}

func (f *Form) change(ctx context.Context, name, value string) (accepted, notify bool, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fld, ok := f.fields[name]
	if !ok {
		return false, false, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	accepted = fld.policy.Validate(value)
	stored := value
	if !accepted {
		if !f.autoCorrect {
			f.log.DebugContext(ctx, "change rejected",
				logger.FormID(f.id),
				logger.Field(name),
				logger.Policy(fld.policy.Name()),
				logger.Accepted(false),
			)
			return false, false, nil
		}
		stored = Strip(fld.policy, value)
	}

	if stored == fld.value {
		return accepted, false, nil
	}
	fld.value = stored

	f.log.DebugContext(ctx, "field changed",
		logger.FormID(f.id),
		logger.Field(name),
		logger.Policy(fld.policy.Name()),
		logger.Accepted(accepted),
	)

	notify = !f.dirty
	f.dirty = true

	return accepted, notify, nil
}

// Value returns the current value of a field.
func (f *Form) Value(name string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fld, ok := f.fields[name]
	if !ok {
		return "", false
	}
	return fld.value, true
}

// Policy returns the policy a field is validated with.
func (f *Form) Policy(name string) (validator.Policy, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fld, ok := f.fields[name]
	if !ok {
		return validator.Policy{}, false
	}
	return fld.policy, true
}

// Values returns a snapshot of all field values.
func (f *Form) Values() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[string]string, len(f.fields))
	for name, fld := range f.fields {
		out[name] = fld.value
	}
	return out
}

// IsDirty reports whether any field value has been stored through Change.
func (f *Form) IsDirty() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dirty
}

// Validate re-checks every field value and returns validator.ValidationErrors
// for fields whose value is not allowed. Values stored through Change always
// pass; this is for values loaded with Load.
func (f *Form) Validate() error {
	f.mu.Lock()
	rules := make([]validator.Rule, 0, len(f.order))
	for _, name := range f.order {
		fld := f.fields[name]
		rules = append(rules, validator.AllowedChars(name, fld.value, fld.policy))
	}
	f.mu.Unlock()

	return validator.Apply(rules...)
}

// Load replaces field values without validation or dirty tracking, as when
// populating the form from stored transaction data. Unknown names are
// reported with ErrUnknownField and nothing is changed.
func (f *Form) Load(values map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for name := range values {
		if _, ok := f.fields[name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
	}
	for name, v := range values {
		f.fields[name].value = v
	}
	return nil
}

// Strip removes every character that policy does not allow.
func Strip(policy validator.Policy, value string) string {
	out, _, err := transform.String(runes.Remove(runes.Predicate(func(r rune) bool {
		return !policy.Allows(r)
	})), value)
	if err != nil {
		return ""
	}
	return out
}
