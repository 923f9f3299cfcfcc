// Package i18n translates user-facing messages, chiefly the field rejection
// messages produced by the validator.
//
// Translations are YAML documents keyed by language code whose nested keys
// are addressed with dots:
//
//	sv:
//	  validation:
//	    allowed_chars: "%{field} innehåller tecken som inte tillåts av %{policy}"
//
// NewDefault loads the built-in English and Swedish messages. NewTranslator
// accepts any TranslationAdapter, such as FSAdapter over a directory or
// MapAdapter for tests.
//
// Middleware negotiates the request language from the "lang" query parameter
// or the Accept-Language header and stores it for Tc and GetLocale.
package i18n
