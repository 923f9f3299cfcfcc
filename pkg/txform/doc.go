// Package txform keeps the editable text fields of a transaction form and
// the form's dirty flag.
//
// A Form is opened for a transaction reference with a set of fields, each
// bound to a validator.Policy. Every change is checked with the policy before
// it is stored; rejected input leaves the previous value in place, or with
// WithAutoCorrect is stored with the disallowed characters removed. The
// hosting container learns about unsaved changes through DirtyNotifier:
// SetTransactionIsDirty(false) once when the form opens, then
// SetTransactionIsDirty(true) on the first stored change.
//
//	form := txform.New(ref, container,
//	    txform.WithField("invoice", validator.AlphaNumeric),
//	    txform.WithField("reference", validator.References),
//	)
//	ok, err := form.Change(ctx, "reference", input)
package txform
