package validator

import (
	"errors"
	"fmt"
	"regexp"
	"regexp/syntax"
	"strings"
)

// baseCharClass is shared by the built-in policies: Latin letters with the
// Nordic å/ä/ö in both cases, ASCII digits and whitespace. Whitespace follows
// the ECMAScript \s class (ASCII controls, Unicode Z categories and BOM).
const baseCharClass = `a-zA-ZåäöÅÄÖ0-9\t\n\v\f\r\p{Z}\x{FEFF}`

var (
	// AlphaNumeric accepts letters, digits, whitespace and & . : ; - + / * = > < ( ) %.
	AlphaNumeric = mustPolicy("AlphaNumeric", baseCharClass+`&.:;\-+/*=><()%`)

	// References accepts letters, digits, whitespace and ! - + % " / ? , . § #.
	References = mustPolicy("References", baseCharClass+`!\-+%"/?,.§#`)
)

// builtins are the policies every Registry starts with.
var builtins = []Policy{AlphaNumeric, References}

// Policy is an immutable whitelist of characters identified by name.
// The zero value is not a valid policy; validating against it panics.
type Policy struct {
	name    string
	class   string
	pattern *regexp.Regexp
}

// NewPolicy compiles a whitelist policy from a regular expression character
// class body, e.g. "A-Z0-9-" for upper-case letters, digits and dashes.
// The body must describe exactly one character class.
func NewPolicy(name, charClass string) (Policy, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Policy{}, ErrEmptyPolicyName
	}
	if charClass == "" {
		return Policy{}, fmt.Errorf("%w: policy %q", ErrEmptyCharClass, name)
	}

	// Reject bodies that close the class early and smuggle in alternations
	// or quantifiers, e.g. `a]|.*[b`.
	parsed, err := syntax.Parse("["+charClass+"]", syntax.Perl)
	if err != nil {
		return Policy{}, errors.Join(fmt.Errorf("%w: policy %q", ErrInvalidCharClass, name), err)
	}
	switch {
	case parsed.Op == syntax.OpCharClass, parsed.Op == syntax.OpAnyChar, parsed.Op == syntax.OpAnyCharNotNL:
	case parsed.Op == syntax.OpLiteral && len(parsed.Rune) == 1:
	default:
		return Policy{}, fmt.Errorf("%w: policy %q: body must be a single character class", ErrInvalidCharClass, name)
	}

	pattern, err := regexp.Compile(`^[` + charClass + `]*$`)
	if err != nil {
		return Policy{}, errors.Join(fmt.Errorf("%w: policy %q", ErrInvalidCharClass, name), err)
	}

	return Policy{name: name, class: charClass, pattern: pattern}, nil
}

func mustPolicy(name, charClass string) Policy {
	p, err := NewPolicy(name, charClass)
	if err != nil {
		panic(err)
	}
	return p
}

// Name returns the policy identifier.
func (p Policy) Name() string {
	return p.name
}

// CharClass returns the character class body the policy was compiled from.
func (p Policy) CharClass() string {
	return p.class
}

// IsZero reports whether p is the zero Policy.
func (p Policy) IsZero() bool {
	return p.pattern == nil
}

// Validate reports whether every character of input belongs to the policy.
// The empty string is always accepted.
func (p Policy) Validate(input string) bool {
	p.mustBeDefined()
	return p.pattern.MatchString(input)
}

// Allows reports whether a single rune belongs to the policy.
func (p Policy) Allows(r rune) bool {
	p.mustBeDefined()
	return p.pattern.MatchString(string(r))
}

func (p Policy) String() string {
	return p.name
}

func (p Policy) mustBeDefined() {
	if p.pattern == nil {
		panic(fmt.Errorf("%w: zero policy", ErrInvalidPolicyReference))
	}
}

// Validate reports whether input is acceptable under policy.
// It is a pure function and safe for concurrent use.
func Validate(policy Policy, input string) bool {
	return policy.Validate(input)
}

// Lookup returns the built-in policy with the given name.
func Lookup(name string) (Policy, bool) {
	for _, p := range builtins {
		if p.name == name {
			return p, true
		}
	}
	return Policy{}, false
}

// MustLookup returns the built-in policy with the given name.
// Asking for an undefined policy is a programming error and panics with
// ErrInvalidPolicyReference.
func MustLookup(name string) Policy {
	p, ok := Lookup(name)
	if !ok {
		panic(fmt.Errorf("%w: %q", ErrInvalidPolicyReference, name))
	}
	return p
}
