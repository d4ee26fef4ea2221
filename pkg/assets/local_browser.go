package assets

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/saracen/walker"
)

// LocalBrowser serves assets from a directory on disk. Paths it returns are
// relative to Root.
type LocalBrowser struct {
	Root string
}

func NewLocalBrowser(root string) *LocalBrowser {
	return &LocalBrowser{Root: filepath.Clean(root)}
}

func (b *LocalBrowser) Browse(ctx context.Context, dir string, kind Kind) (*Listing, error) {
	rel, err := cleanDir(dir)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(b.Root, filepath.FromSlash(rel)))
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read asset dir %q", rel)
	}

	listing := &Listing{Dir: rel, Dirs: []string{}, Files: []string{}}
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		switch {
		case entry.IsDir():
			listing.Dirs = append(listing.Dirs, path.Join(rel, name))
		case entry.Type().IsRegular() && kind.Matches(name):
			listing.Files = append(listing.Files, path.Join(rel, name))
		}
	}

	sort.Strings(listing.Dirs)
	sort.Strings(listing.Files)

	return listing, nil
}

// Search walks the whole tree and returns files of kind whose relative path
// contains query, case-insensitively.
func (b *LocalBrowser) Search(ctx context.Context, query string, kind Kind) ([]string, error) {
	var (
		mu      sync.Mutex
		matches = []string{}
	)

	walkFn := func(pathname string, fi os.FileInfo) error {
		if !fi.Mode().IsRegular() || strings.HasPrefix(fi.Name(), ".") || !kind.Matches(fi.Name()) {
			return nil
		}

		rel, err := filepath.Rel(b.Root, pathname)
		if err != nil {
			return nil
		}

		rel = filepath.ToSlash(rel)
		if strings.HasPrefix(rel, ".") || strings.Contains(rel, "/.") || !matchesQuery(rel, query) {
			return nil
		}

		mu.Lock()
		matches = append(matches, rel)
		mu.Unlock()
		return nil
	}

	// Unreadable sub-directories are skipped rather than failing the search.
	skipErrors := walker.WithErrorCallback(func(string, error) error { return nil })

	if err := walker.WalkWithContext(ctx, b.Root, walkFn, skipErrors); err != nil {
		return nil, errors.Wrapf(err, "unable to search %q", b.Root)
	}

	sort.Strings(matches)
	return matches, nil
}
