package txform_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldguard/pkg/txform"
	"github.com/dmitrymomot/fieldguard/pkg/validator"
)

type recorder struct {
	mu    sync.Mutex
	calls []bool
}

func (r *recorder) SetTransactionIsDirty(dirty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, dirty)
}

func (r *recorder) Calls() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bool(nil), r.calls...)
}

func newForm(t *testing.T, n txform.DirtyNotifier, opts ...txform.Option) *txform.Form {
	t.Helper()
	opts = append([]txform.Option{
		txform.WithField("invoice", validator.AlphaNumeric),
		txform.WithField("reference", validator.References),
	}, opts...)
	return txform.New("KET-2024-001", n, opts...)
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("reports clean state once", func(t *testing.T) {
		rec := &recorder{}
		form := newForm(t, rec)

		assert.Equal(t, []bool{false}, rec.Calls())
		assert.False(t, form.IsDirty())
		assert.Equal(t, "KET-2024-001", form.Reference())
		assert.NotEqual(t, uuid.Nil, form.ID())
		assert.Equal(t, []string{"invoice", "reference"}, form.Fields())
		assert.Equal(t, map[string]string{"invoice": "", "reference": ""}, form.Values())

		p, ok := form.Policy("reference")
		require.True(t, ok)
		assert.Equal(t, "References", p.Name())
		_, ok = form.Policy("missing")
		assert.False(t, ok)
	})

	t.Run("nil notifier", func(t *testing.T) {
		form := txform.New("ref", nil, txform.WithField("a", validator.AlphaNumeric))
		ok, err := form.Change(context.Background(), "a", "x")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("notifier func", func(t *testing.T) {
		var got []bool
		txform.New("ref", txform.NotifierFunc(func(d bool) { got = append(got, d) }))
		assert.Equal(t, []bool{false}, got)
	})

	t.Run("zero policy panics", func(t *testing.T) {
		assert.Panics(t, func() { txform.WithField("a", validator.Policy{}) })
	})

	t.Run("duplicate field panics", func(t *testing.T) {
		assert.Panics(t, func() {
			txform.New("ref", nil,
				txform.WithField("a", validator.AlphaNumeric),
				txform.WithField("a", validator.References),
			)
		})
	})
}

func TestChange(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("accepts valid input and marks dirty once", func(t *testing.T) {
		rec := &recorder{}
		form := newForm(t, rec)

		ok, err := form.Change(ctx, "invoice", "INV-2024/05")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = form.Change(ctx, "reference", "Ref #123, §4?")
		require.NoError(t, err)
		assert.True(t, ok)

		assert.True(t, form.IsDirty())
		assert.Equal(t, []bool{false, true}, rec.Calls())
		v, _ := form.Value("reference")
		assert.Equal(t, "Ref #123, §4?", v)
	})

	t.Run("rejected input keeps previous value", func(t *testing.T) {
		rec := &recorder{}
		form := newForm(t, rec)

		_, err := form.Change(ctx, "invoice", "Total: 100%")
		require.NoError(t, err)

		ok, err := form.Change(ctx, "invoice", "Café")
		require.NoError(t, err)
		assert.False(t, ok)

		v, found := form.Value("invoice")
		require.True(t, found)
		assert.Equal(t, "Total: 100%", v)
	})

	t.Run("rejection alone does not dirty the form", func(t *testing.T) {
		rec := &recorder{}
		form := newForm(t, rec)

		ok, err := form.Change(ctx, "reference", "Ref@123")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, form.IsDirty())
		assert.Equal(t, []bool{false}, rec.Calls())
	})

	t.Run("unchanged value does not dirty the form", func(t *testing.T) {
		rec := &recorder{}
		form := newForm(t, rec)

		ok, err := form.Change(ctx, "invoice", "")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.False(t, form.IsDirty())
	})

	t.Run("unknown field", func(t *testing.T) {
		form := newForm(t, nil)
		_, err := form.Change(ctx, "amount", "1")
		assert.ErrorIs(t, err, txform.ErrUnknownField)

		_, found := form.Value("amount")
		assert.False(t, found)
	})
}

func TestChange_AutoCorrect(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	rec := &recorder{}
	form := newForm(t, rec, txform.WithAutoCorrect())

	ok, err := form.Change(ctx, "invoice", "Café Nr_7")
	require.NoError(t, err)
	assert.False(t, ok)

	v, _ := form.Value("invoice")
	assert.Equal(t, "Caf Nr7", v)
	assert.True(t, form.IsDirty())
	assert.Equal(t, []bool{false, true}, rec.Calls())
}

func TestStrip(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Ref123", txform.Strip(validator.References, "Ref@123"))
	assert.Equal(t, "Ref #123, §4?", txform.Strip(validator.References, "Ref #123, §4?"))
	assert.Equal(t, "", txform.Strip(validator.AlphaNumeric, "éü@"))
	assert.Equal(t, "ab", txform.Strip(validator.AlphaNumeric, "a\xffb"))

	stripped := txform.Strip(validator.AlphaNumeric, "x@y!z")
	assert.True(t, validator.Validate(validator.AlphaNumeric, stripped))
}

func TestLoadAndValidate(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	form := newForm(t, rec)

	require.NoError(t, form.Load(map[string]string{
		"invoice":   "INV 1",
		"reference": "Ref@1",
	}))
	assert.False(t, form.IsDirty())
	assert.Equal(t, []bool{false}, rec.Calls())

	err := form.Validate()
	require.Error(t, err)
	verrs := validator.ExtractValidationErrors(err)
	assert.Equal(t, []string{"reference"}, verrs.Fields())

	err = form.Load(map[string]string{"invoice": "x", "missing": "y"})
	assert.ErrorIs(t, err, txform.ErrUnknownField)
	v, _ := form.Value("invoice")
	assert.Equal(t, "INV 1", v)
}

func TestChange_Concurrent(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	form := newForm(t, rec)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value := "INV " + string(rune('A'+i))
			_, err := form.Change(context.Background(), "invoice", value)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, []bool{false, true}, rec.Calls())
}

func TestChange_NotifierReadsForm(t *testing.T) {
	t.Parallel()

	var (
		form  *txform.Form
		dirty bool
		seen  map[string]string
	)
	notifier := txform.NotifierFunc(func(bool) {
		if form == nil {
			return
		}
		dirty = form.IsDirty()
		seen = form.Values()
	})
	form = newForm(t, notifier)

	done := make(chan error, 1)
	go func() {
		_, err := form.Change(context.Background(), "invoice", "INV 1")
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Change did not return while the notifier read the form")
	}

	assert.True(t, dirty)
	assert.Equal(t, map[string]string{"invoice": "INV 1", "reference": ""}, seen)
}
