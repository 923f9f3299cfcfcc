// Package handler provides typed HTTP handlers with pluggable binding,
// decorators and JSON responses.
//
// A HandlerFunc receives a Context and a request value already decoded by
// the configured binders, and returns a Response that renders itself:
//
//	type ValidateRequest struct {
//		Policy string `json:"policy"`
//		Value  string `json:"value"`
//	}
//
//	func validate(ctx handler.Context, req ValidateRequest) handler.Response {
//		return handler.JSON(result)
//	}
//
//	r.Post("/validate", handler.Wrap(validate,
//		handler.WithBinders[handler.Context, ValidateRequest](handler.JSONBinder()),
//	))
//
// # Errors
//
// Binding and rendering failures go to the configured ErrorHandler.
// NewJSONErrorHandler logs them and answers with the JSON envelope: HTTPError
// values keep their status code and key, ValidationError becomes 422 with
// per-field details, anything else is 500.
package handler
