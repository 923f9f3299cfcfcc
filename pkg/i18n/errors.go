package i18n

import "errors"

var (
	ErrFailedToParseYAML      = errors.New("failed to parse YAML content")
	ErrInvalidStructure       = errors.New("invalid translation structure")
	ErrNoTranslations         = errors.New("no translations found")
	ErrFailedToReadFile       = errors.New("failed to read translation file")
	ErrLoadingCancelled       = errors.New("loading translations cancelled")
	ErrDefaultLangUnsupported = errors.New("default language has no translations")
)
