package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/fieldguard/handler"
	"github.com/dmitrymomot/fieldguard/pkg/logger"
	"github.com/dmitrymomot/fieldguard/pkg/txform"
	"github.com/dmitrymomot/fieldguard/pkg/validator"
)

// formStore keeps open forms in memory. Forms are lost on restart.
type formStore struct {
	mu    sync.RWMutex
	forms map[uuid.UUID]*txform.Form
	limit int
}

func newFormStore(limit int) *formStore {
	return &formStore{forms: make(map[uuid.UUID]*txform.Form), limit: limit}
}

func (s *formStore) add(f *txform.Form) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.forms) >= s.limit {
		return errTooManyForms
	}
	s.forms[f.ID()] = f
	return nil
}

func (s *formStore) get(id uuid.UUID) (*txform.Form, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.forms[id]
	return f, ok
}

func (s *formStore) remove(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.forms[id]; !ok {
		return false
	}
	delete(s.forms, id)
	return true
}

// dirtyLogger reports dirty flag transitions of a form to the log.
type dirtyLogger struct {
	log       *slog.Logger
	reference string
}

func (d dirtyLogger) SetTransactionIsDirty(dirty bool) {
	d.log.Debug("transaction dirty flag changed",
		logger.Reference(d.reference),
		slog.Bool("dirty", dirty),
		logger.Component("forms"),
	)
}

type openFormRequest struct {
	Reference   string       `json:"reference"`
	AutoCorrect bool         `json:"auto_correct"`
	Fields      []fieldInput `json:"fields"`
}

type formFieldView struct {
	Name   string `json:"name"`
	Policy string `json:"policy"`
	Value  string `json:"value"`
}

type formView struct {
	ID        uuid.UUID       `json:"id"`
	Reference string          `json:"reference"`
	Dirty     bool            `json:"dirty"`
	Valid     bool            `json:"valid"`
	Fields    []formFieldView `json:"fields"`
}

type changeRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type changeResponse struct {
	Accepted bool   `json:"accepted"`
	Value    string `json:"value"`
	Dirty    bool   `json:"dirty"`
}

// openForm creates a form. Field values in the request are loaded as the
// stored transaction data: they are not validated on the way in and leave
// the form clean.
func (a *API) openForm(ctx handler.Context, req openFormRequest) handler.Response {
	if verrs := checkFieldInputs(req.Fields); verrs != nil {
		return a.fail(ctx, a.translateErrors(ctx, verrs), nil)
	}

	opts := make([]txform.Option, 0, len(req.Fields)+2)
	initial := make(map[string]string, len(req.Fields))
	for _, f := range req.Fields {
		policy, ok := a.registry.Lookup(f.Policy)
		if !ok {
			return a.fail(ctx, errUnknownPolicy, unknownPolicyDetail(f.Policy))
		}
		opts = append(opts, txform.WithField(f.Name, policy))
		initial[f.Name] = f.Value
	}
	opts = append(opts, txform.WithLogger(a.log))
	if req.AutoCorrect {
		opts = append(opts, txform.WithAutoCorrect())
	}

	form := txform.New(req.Reference, dirtyLogger{log: a.log, reference: req.Reference}, opts...)
	if err := form.Load(initial); err != nil {
		return handler.JSONError(err)
	}
	if err := a.forms.add(form); err != nil {
		return a.fail(ctx, err, nil)
	}
	a.metrics.FormOpened()

	a.log.InfoContext(ctx, "form opened",
		logger.FormID(form.ID()),
		logger.Reference(form.Reference()),
		logger.Component("forms"),
	)

	return a.renderForm(ctx, form, handler.WithJSONStatus(http.StatusCreated))
}

func (a *API) getForm(ctx handler.Context, _ struct{}) handler.Response {
	form, resp := a.lookupForm(ctx)
	if resp != nil {
		return resp
	}
	return a.renderForm(ctx, form)
}

func (a *API) changeField(ctx handler.Context, req changeRequest) handler.Response {
	form, resp := a.lookupForm(ctx)
	if resp != nil {
		return resp
	}

	accepted, err := form.Change(ctx, req.Field, req.Value)
	if err != nil {
		if errors.Is(err, txform.ErrUnknownField) {
			return a.fail(ctx, errUnknownField, &handler.ErrorDetail{
				Code:    errUnknownField.Key,
				Message: err.Error(),
			})
		}
		return handler.JSONError(err)
	}
	if p, ok := form.Policy(req.Field); ok {
		a.metrics.ObserveFormChange(p.Name(), accepted)
	}

	value, _ := form.Value(req.Field)
	return handler.JSON(changeResponse{Accepted: accepted, Value: value, Dirty: form.IsDirty()})
}

func (a *API) closeForm(ctx handler.Context, _ struct{}) handler.Response {
	form, resp := a.lookupForm(ctx)
	if resp != nil {
		return resp
	}
	if a.forms.remove(form.ID()) {
		a.metrics.FormClosed()
	}
	return handler.JSON(map[string]any{"id": form.ID(), "closed": true})
}

func (a *API) lookupForm(ctx handler.Context) (*txform.Form, handler.Response) {
	id, err := uuid.Parse(chi.URLParam(ctx.Request(), "id"))
	if err != nil {
		return nil, a.fail(ctx, errFormNotFound, nil)
	}
	form, ok := a.forms.get(id)
	if !ok {
		return nil, a.fail(ctx, errFormNotFound, nil)
	}
	return form, nil
}

func (a *API) renderForm(ctx context.Context, form *txform.Form, opts ...handler.JSONOption) handler.Response {
	values := form.Values()
	view := formView{
		ID:        form.ID(),
		Reference: form.Reference(),
		Dirty:     form.IsDirty(),
		Valid:     true,
	}
	for _, name := range form.Fields() {
		policy, _ := form.Policy(name)
		view.Fields = append(view.Fields, formFieldView{Name: name, Policy: policy.Name(), Value: values[name]})
	}

	if verrs := validator.ExtractValidationErrors(form.Validate()); verrs != nil {
		view.Valid = false
		opts = append(opts, handler.WithJSONErrorDetail(a.rejectedDetail(ctx, verrs)))
	}

	return handler.JSON(view, opts...)
}
