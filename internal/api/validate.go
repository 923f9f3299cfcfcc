package api

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/fieldguard/handler"
	"github.com/dmitrymomot/fieldguard/pkg/i18n"
	"github.com/dmitrymomot/fieldguard/pkg/logger"
	"github.com/dmitrymomot/fieldguard/pkg/validator"
)

type fieldInput struct {
	Name   string `json:"name"`
	Policy string `json:"policy"`
	Value  string `json:"value"`
}

type validateRequest struct {
	Fields []fieldInput `json:"fields"`
}

type validateResponse struct {
	Valid  bool            `json:"valid"`
	Fields map[string]bool `json:"fields"`
}

// validate checks every field against its named policy. Rejected values are
// a normal outcome: the answer is 200 with valid=false and the rejected
// fields listed in error.details.
func (a *API) validate(ctx handler.Context, req validateRequest) handler.Response {
	if verrs := checkFieldInputs(req.Fields); verrs != nil {
		return a.fail(ctx, a.translateErrors(ctx, verrs), nil)
	}

	rules := make([]validator.Rule, 0, len(req.Fields))
	out := validateResponse{Valid: true, Fields: make(map[string]bool, len(req.Fields))}
	for _, f := range req.Fields {
		policy, ok := a.registry.Lookup(f.Policy)
		if !ok {
			return a.fail(ctx, errUnknownPolicy, unknownPolicyDetail(f.Policy))
		}
		rules = append(rules, validator.AllowedChars(f.Name, f.Value, policy))
	}

	verrs := validator.Collect(rules...)
	rejected := make(map[string]bool, len(verrs))
	for _, name := range verrs.Fields() {
		rejected[name] = true
	}
	for _, f := range req.Fields {
		accepted := !rejected[f.Name]
		out.Fields[f.Name] = accepted
		a.metrics.ObserveValidation(f.Policy, accepted)
		a.log.DebugContext(ctx, "field validated",
			logger.Field(f.Name),
			logger.Policy(f.Policy),
			logger.Accepted(accepted),
		)
	}

	if verrs.IsEmpty() {
		return handler.JSON(out)
	}

	out.Valid = false
	return handler.JSON(out, handler.WithJSONErrorDetail(a.rejectedDetail(ctx, verrs)))
}

const (
	rejectedMessage = "One or more fields contain characters that are not allowed"
	maxFieldNameLen = 128
)

// rejectedDetail lists rejected fields in the request language.
func (a *API) rejectedDetail(ctx context.Context, verrs validator.ValidationErrors) *handler.ErrorDetail {
	detail := &handler.ErrorDetail{
		Code:    "rejected",
		Message: rejectedMessage,
		Details: a.translateErrors(ctx, verrs),
	}
	if a.translator != nil {
		detail.Message = a.translator.Td(i18n.GetLocale(ctx), "validation.rejected", rejectedMessage, nil)
	}
	return detail
}

// translateErrors renders validator errors with the configured translator,
// keeping the built-in English messages when there is none.
func (a *API) translateErrors(ctx context.Context, verrs validator.ValidationErrors) handler.ValidationError {
	if a.translator == nil {
		return handler.ValidationErrorFrom(verrs)
	}

	lang := i18n.GetLocale(ctx)
	out := handler.NewValidationError()
	for _, e := range verrs {
		out.Add(e.Field, a.translator.Td(lang, e.TranslationKey, e.Message, e.TranslationValues))
	}
	return out
}

// checkFieldInputs reports malformed field lists: no fields, blank, overlong
// or duplicate names, and missing policies.
func checkFieldInputs(fields []fieldInput) validator.ValidationErrors {
	rules := []validator.Rule{{
		Check: func() bool { return len(fields) > 0 },
		Error: validator.ValidationError{
			Field:             "fields",
			Message:           "at least one field is required",
			TranslationKey:    "validation.fields_required",
			TranslationValues: map[string]any{"field": "fields"},
		},
	}}

	seen := make(map[string]bool, len(fields))
	for i, f := range fields {
		key := fmt.Sprintf("fields[%d]", i)
		rules = append(rules,
			validator.Required(key+".name", f.Name),
			validator.MaxLen(key+".name", f.Name, maxFieldNameLen),
			validator.Unique(key+".name", f.Name, seen),
			validator.Required(key+".policy", f.Policy),
		)
	}
	return validator.Collect(rules...)
}

func unknownPolicyDetail(name string) *handler.ErrorDetail {
	return &handler.ErrorDetail{
		Code:    errUnknownPolicy.Key,
		Message: fmt.Sprintf("unknown policy %q", name),
	}
}
