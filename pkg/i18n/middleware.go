package i18n

import (
	"net/http"
)

// QueryParam overrides Accept-Language when it names a supported language.
const QueryParam = "lang"

// Middleware stores the negotiated language in the request context and
// advertises it in the Content-Language response header.
func Middleware(t *Translator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := r.URL.Query().Get(QueryParam)
			if lang == "" || !t.Supports(lang) {
				lang = t.Match(r.Header.Get("Accept-Language"))
			}
			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), lang)))
		})
	}
}
