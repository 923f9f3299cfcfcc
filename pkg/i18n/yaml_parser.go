package i18n

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseYAML reads a document whose top-level keys are language codes and
// returns the translations per language with nested keys joined by dots:
//
//	en:
//	  validation:
//	    allowed_chars: "%{field} contains characters not allowed by %{policy}"
//
// yields {"en": {"validation.allowed_chars": "..."}}.
func ParseYAML(content []byte) (map[string]map[string]string, error) {
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}

	result := make(map[string]map[string]string, len(data))
	for lang, val := range data {
		tree, ok := val.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: language %q: expected map, got %T", ErrInvalidStructure, lang, val)
		}
		flat := make(map[string]string)
		if err := flatten("", tree, flat); err != nil {
			return nil, fmt.Errorf("%w: language %q: %w", ErrInvalidStructure, lang, err)
		}
		result[strings.ToLower(lang)] = flat
	}

	if len(result) == 0 {
		return nil, ErrNoTranslations
	}
	return result, nil
}

func flatten(prefix string, tree map[string]any, out map[string]string) error {
	for key, val := range tree {
		if prefix != "" {
			key = prefix + "." + key
		}
		switch v := val.(type) {
		case string:
			out[key] = v
		case map[string]any:
			if err := flatten(key, v, out); err != nil {
				return err
			}
		case nil:
		default:
			out[key] = fmt.Sprint(v)
		}
	}
	return nil
}
