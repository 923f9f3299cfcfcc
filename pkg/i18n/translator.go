package i18n

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/fieldguard/pkg/logger"
)

// DefaultLanguage is used when nothing better matches.
const DefaultLanguage = "en"

//go:embed locales/*.yaml
var builtinLocales embed.FS

// Translator renders message templates per language. Templates reference
// parameters as %{name}. It is immutable after creation and safe for
// concurrent use.
type Translator struct {
	translations  map[string]map[string]string
	langs         []string
	matcher       language.Matcher
	defaultLang   string
	fallbackToKey bool
	logMissing    bool
	log           *slog.Logger
}

// NewTranslator loads translations from adapter. The default language must
// be among the loaded ones.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, opts ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, fmt.Errorf("%w: adapter is nil", ErrNoTranslations)
	}

	t := &Translator{
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		log:           logger.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}

	translations, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := translations[t.defaultLang]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrDefaultLangUnsupported, t.defaultLang)
	}
	t.translations = translations

	// The default language goes first so the matcher falls back to it.
	t.langs = []string{t.defaultLang}
	for lang := range translations {
		if lang != t.defaultLang {
			t.langs = append(t.langs, lang)
		}
	}
	slices.Sort(t.langs[1:])

	tags := make([]language.Tag, len(t.langs))
	for i, lang := range t.langs {
		tags[i] = language.Make(lang)
	}
	t.matcher = language.NewMatcher(tags)

	t.log.InfoContext(ctx, "translations loaded",
		slog.Any("languages", t.langs),
		logger.Component("i18n"),
	)
	return t, nil
}

// NewDefault returns a translator over the built-in English and Swedish
// validation messages.
func NewDefault(ctx context.Context, opts ...Option) (*Translator, error) {
	return NewTranslator(ctx, NewFSAdapter(builtinLocales, "locales"), opts...)
}

// Languages returns the supported languages, default first.
func (t *Translator) Languages() []string {
	return slices.Clone(t.langs)
}

func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// Supports reports whether lang has translations.
func (t *Translator) Supports(lang string) bool {
	_, ok := t.translations[strings.ToLower(lang)]
	return ok
}

// HasTranslation reports whether key is defined for lang.
func (t *Translator) HasTranslation(lang, key string) bool {
	_, ok := t.translations[strings.ToLower(lang)][key]
	return ok
}

// T translates key for lang, substituting %{name} placeholders from params.
// Missing keys fall back to the default language, then to the key itself
// unless fallback to key is disabled.
//
//	t.T("sv", "validation.allowed_chars", map[string]any{"field": "invoice", "policy": "AlphaNumeric"})
func (t *Translator) T(lang, key string, params map[string]any) string {
	lang = strings.ToLower(lang)
	tmpl, ok := t.translations[lang][key]
	if !ok && lang != t.defaultLang {
		tmpl, ok = t.translations[t.defaultLang][key]
	}
	if !ok {
		if t.logMissing {
			t.log.Warn("translation not found",
				slog.String("lang", lang),
				slog.String("key", key),
				logger.Component("i18n"),
			)
		}
		if !t.fallbackToKey {
			return ""
		}
		tmpl = key
	}
	return interpolate(tmpl, params)
}

// Td works like T but returns defaultValue, interpolated, when key is missing.
func (t *Translator) Td(lang, key, defaultValue string, params map[string]any) string {
	lang = strings.ToLower(lang)
	if tmpl, ok := t.translations[lang][key]; ok {
		return interpolate(tmpl, params)
	}
	if tmpl, ok := t.translations[t.defaultLang][key]; ok {
		return interpolate(tmpl, params)
	}
	return interpolate(defaultValue, params)
}

// Tc translates key for the language stored in ctx.
func (t *Translator) Tc(ctx context.Context, key string, params map[string]any) string {
	return t.T(GetLocale(ctx), key, params)
}

func interpolate(tmpl string, params map[string]any) string {
	if len(params) == 0 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	pairs := make([]string, 0, len(params)*2)
	for name, val := range params {
		pairs = append(pairs, "%{"+name+"}", fmt.Sprint(val))
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
