// Package validator checks free-text field input against character whitelist
// policies.
//
// A Policy is an immutable, named set of allowed characters compiled once into
// an anchored regular expression. Validation is a pure predicate: an input is
// accepted when every character belongs to the policy, and the empty string is
// always accepted. Nothing is stripped or corrected here; callers that want
// auto-correction do it themselves.
//
// # Built-in policies
//
//   - AlphaNumeric: letters a-z, A-Z, å ä ö Å Ä Ö, digits, whitespace and
//     & . : ; - + / * = > < ( ) %
//   - References: letters, digits, whitespace and ! - + % " / ? , . § #
//
// Letters are matched case-sensitively exactly as enumerated: other accented
// letters such as é are rejected, and no Unicode normalization is applied.
//
// # Usage
//
//	if !validator.Validate(validator.AlphaNumeric, input) {
//	    // reject or revert the change
//	}
//
// Policies can also be composed with other checks through Rule and Collect:
//
//	verrs := validator.Collect(
//	    validator.AllowedChars("invoice", invoice, validator.AlphaNumeric),
//	    validator.AllowedChars("reference", ref, validator.References),
//	)
//	for _, field := range verrs.Fields() {
//	    // report field
//	}
//
// Apply returns the same result as an error value.
//
// # Custom policies
//
// A Registry resolves policy names to policies. It always contains the
// built-ins and accepts additional policies from NewPolicy or from a YAML
// document loaded with LoadFile / LoadYAML at startup.
//
// # Error Handling
//
// A rejected input is a normal outcome reported as false, never as an error.
// Validating against the zero Policy or calling MustLookup with an undefined
// name is a programming error and panics with ErrInvalidPolicyReference.
// Use Lookup when the name comes from user input.
package validator
