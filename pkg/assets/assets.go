// Package assets lists image and effect files for the variant editor's
// file pickers.
package assets

import (
	"context"
	"errors"
	"path"
	"strings"
)

type Kind string

const (
	KindAny    Kind = ""
	KindImage  Kind = "image"
	KindEffect Kind = "effect"
)

var (
	ErrUnknownKind = errors.New("unknown asset kind")
	ErrOutsideRoot = errors.New("path is outside the asset root")
)

var kindExtensions = map[Kind][]string{
	KindImage:  {".png", ".jpg", ".jpeg", ".webp", ".svg", ".gif"},
	KindEffect: {".webm", ".mp4", ".gif", ".apng"},
}

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindAny, KindImage, KindEffect:
		return k, nil
	case "all":
		return KindAny, nil
	default:
		return KindAny, ErrUnknownKind
	}
}

// Matches reports whether name has one of the kind's extensions. KindAny
// matches images and effects.
func (k Kind) Matches(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	if k == KindAny {
		return KindImage.Matches(name) || KindEffect.Matches(name)
	}

	for _, e := range kindExtensions[k] {
		if ext == e {
			return true
		}
	}

	return false
}

// Listing is one directory level. Dirs and Files hold paths relative to the
// browser root, slash separated and sorted.
type Listing struct {
	Dir   string   `json:"dir"`
	Dirs  []string `json:"dirs"`
	Files []string `json:"files"`
}

type Browser interface {
	Browse(ctx context.Context, dir string, kind Kind) (*Listing, error)
	Search(ctx context.Context, query string, kind Kind) ([]string, error)
}

// cleanDir normalizes a browse path to a slash separated path relative to
// the root, "" for the root itself.
func cleanDir(dir string) (string, error) {
	dir = strings.ReplaceAll(strings.TrimSpace(dir), "\\", "/")
	for _, segment := range strings.Split(dir, "/") {
		if segment == ".." {
			return "", ErrOutsideRoot
		}
	}

	return strings.TrimPrefix(path.Clean("/"+dir), "/"), nil
}

func matchesQuery(p, query string) bool {
	return query == "" || strings.Contains(strings.ToLower(p), strings.ToLower(query))
}
