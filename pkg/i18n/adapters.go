package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strings"
)

// TranslationAdapter loads translations per language, keyed by dotted path.
type TranslationAdapter interface {
	Load(ctx context.Context) (map[string]map[string]string, error)
}

// MapAdapter serves translations held in memory.
type MapAdapter struct {
	Data map[string]map[string]string
}

func (a *MapAdapter) Load(_ context.Context) (map[string]map[string]string, error) {
	if len(a.Data) == 0 {
		return nil, ErrNoTranslations
	}
	out := make(map[string]map[string]string, len(a.Data))
	for lang, entries := range a.Data {
		out[strings.ToLower(lang)] = maps.Clone(entries)
	}
	return out, nil
}

// FSAdapter loads every .yaml and .yml file in dir of a file system.
// Files may cover any number of languages; later files override keys of
// earlier ones in lexical file order.
type FSAdapter struct {
	fsys fs.FS
	dir  string
}

func NewFSAdapter(fsys fs.FS, dir string) *FSAdapter {
	return &FSAdapter{fsys: fsys, dir: dir}
}

func (a *FSAdapter) Load(ctx context.Context) (map[string]map[string]string, error) {
	entries, err := fs.ReadDir(a.fsys, a.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		ext := strings.ToLower(path.Ext(e.Name()))
		if !e.IsDir() && (ext == ".yaml" || ext == ".yml") {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)

	all := make(map[string]map[string]string)
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingCancelled, err)
		}

		content, err := fs.ReadFile(a.fsys, path.Join(a.dir, name))
		if err != nil {
			return nil, errors.Join(ErrFailedToReadFile, err)
		}
		parsed, err := ParseYAML(content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		for lang, kv := range parsed {
			if all[lang] == nil {
				all[lang] = make(map[string]string, len(kv))
			}
			maps.Copy(all[lang], kv)
		}
	}

	if len(all) == 0 {
		return nil, ErrNoTranslations
	}
	return all, nil
}
