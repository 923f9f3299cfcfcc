package validator

import "errors"

var (
	// ErrValidationFailed is returned when validation fails but no specific error is provided.
	ErrValidationFailed = errors.New("validation failed")

	// ErrInvalidPolicyReference signals validation against an undefined policy.
	// It is a programming error and is raised with panic, never returned from Validate.
	ErrInvalidPolicyReference = errors.New("invalid policy reference")

	// ErrEmptyPolicyName is returned when a custom policy has no name.
	ErrEmptyPolicyName = errors.New("policy name is empty")

	// ErrEmptyCharClass is returned when a custom policy allows no characters.
	ErrEmptyCharClass = errors.New("policy character class is empty")

	// ErrInvalidCharClass is returned when a custom policy body is not a single character class.
	ErrInvalidCharClass = errors.New("invalid policy character class")

	// ErrPolicyExists is returned when a policy name is already registered.
	ErrPolicyExists = errors.New("policy already registered")

	ErrFailedToReadPolicies  = errors.New("failed to read policy file")
	ErrFailedToParsePolicies = errors.New("failed to parse policy file")
)
