package effects

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// Catalog is the set of catalogued effect names (database paths such as
// jb2a.explosion.01.blue).
type Catalog struct {
	paths []string
	index map[string]struct{}
}

func NewCatalog(paths []string) *Catalog {
	c := &Catalog{index: make(map[string]struct{}, len(paths))}
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		if _, seen := c.index[p]; seen {
			continue
		}

		c.index[p] = struct{}{}
		c.paths = append(c.paths, p)
	}

	sort.Strings(c.paths)

	return c
}

func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseCatalog(data)
}

// ParseCatalog reads an effect database export. The export is either an
// array of names or a tree of objects where every object carrying a dbPath
// is an entry; objects without one are walked into.
func ParseCatalog(data []byte) (*Catalog, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("effect catalogue is not valid json")
	}

	var paths []string
	collectPaths(gjson.ParseBytes(data), &paths)

	return NewCatalog(paths), nil
}

func collectPaths(node gjson.Result, paths *[]string) {
	node.ForEach(func(_, entry gjson.Result) bool {
		switch {
		case entry.Type == gjson.String && node.IsArray():
			*paths = append(*paths, entry.String())
		case entry.IsObject():
			if dbPath := entry.Get("dbPath"); dbPath.Exists() {
				*paths = append(*paths, dbPath.String())
				return true
			}
			collectPaths(entry, paths)
		case entry.IsArray():
			collectPaths(entry, paths)
		}
		return true
	})
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}

	return len(c.paths)
}

func (c *Catalog) EntryExists(name string) bool {
	if c == nil {
		return false
	}

	_, ok := c.index[name]
	return ok
}

// PathsUnder returns the entries in namespace, e.g. "jb2a".
func (c *Catalog) PathsUnder(namespace string) []string {
	if c == nil {
		return nil
	}

	prefix := namespace + "."
	var matches []string
	for _, p := range c.paths {
		if p == namespace || strings.HasPrefix(p, prefix) {
			matches = append(matches, p)
		}
	}

	return matches
}

// Search returns entries containing query, case-insensitively. An empty
// query returns every entry.
func (c *Catalog) Search(query string) []string {
	if c == nil {
		return nil
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return append([]string(nil), c.paths...)
	}

	var matches []string
	for _, p := range c.paths {
		if strings.Contains(strings.ToLower(p), query) {
			matches = append(matches, p)
		}
	}

	return matches
}
