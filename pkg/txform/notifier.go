package txform

// DirtyNotifier receives the transaction dirty flag of a form.
// It is implemented by whatever container hosts the form.
type DirtyNotifier interface {
	SetTransactionIsDirty(dirty bool)
}

// NotifierFunc adapts a function to DirtyNotifier.
type NotifierFunc func(dirty bool)

func (f NotifierFunc) SetTransactionIsDirty(dirty bool) {
	f(dirty)
}

type noopNotifier struct{}

func (noopNotifier) SetTransactionIsDirty(bool) {}
