package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// DefaultMaxJSONSize is the maximum accepted JSON body size (1 MB).
const DefaultMaxJSONSize = 1 << 20

var (
	ErrMissingContentType = errors.New("missing content type")
	ErrFailedToParseJSON  = errors.New("failed to parse JSON request body")
)

// JSONBinder decodes an application/json body strictly: unknown fields and
// trailing data are rejected. Failures are reported as HTTPError so the
// error handler answers 400, 413 or 415.
func JSONBinder() Bind {
	return func(r *http.Request, v any) error {
		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return errors.Join(ErrUnsupportedMediaType, ErrMissingContentType)
		}
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || mediaType != "application/json" {
			return errors.Join(ErrUnsupportedMediaType, fmt.Errorf("got %q, expected application/json", contentType))
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, DefaultMaxJSONSize+1))
		if err != nil {
			return errors.Join(ErrBadRequest, ErrFailedToParseJSON, err)
		}
		if len(body) > DefaultMaxJSONSize {
			return errors.Join(ErrRequestTooLarge, ErrFailedToParseJSON)
		}

		decoder := json.NewDecoder(bytes.NewReader(body))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return errors.Join(ErrBadRequest, ErrFailedToParseJSON, errors.New("empty body"))
			}
			return errors.Join(ErrBadRequest, ErrFailedToParseJSON, err)
		}

		var extra json.RawMessage
		if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
			return errors.Join(ErrBadRequest, ErrFailedToParseJSON, errors.New("unexpected data after JSON object"))
		}

		return nil
	}
}
