package effects

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sequencerExport = `{
  "jb2a": {
    "explosion": {
      "01": {
        "blue": {"dbPath": "jb2a.explosion.01.blue", "file": "modules/jb2a/explosion_01_blue.webm"},
        "orange": {"dbPath": "jb2a.explosion.01.orange"}
      }
    },
    "misty_step": {
      "01": {"blue": {"dbPath": "jb2a.misty_step.01.blue"}}
    },
    "duplicate": {"dbPath": "jb2a.explosion.01.blue"}
  },
  "custom": {"nova": {"dbPath": "custom.nova"}}
}`

func TestParseCatalogWalksTree(t *testing.T) {
	c, err := ParseCatalog([]byte(sequencerExport))
	require.NoError(t, err)

	require.Equal(t, 4, c.Len())
	require.True(t, c.EntryExists("jb2a.misty_step.01.blue"))
	require.False(t, c.EntryExists("jb2a.explosion"))
	require.Equal(t, []string{
		"jb2a.explosion.01.blue",
		"jb2a.explosion.01.orange",
		"jb2a.misty_step.01.blue",
	}, c.PathsUnder("jb2a"))
	require.Equal(t, []string{"jb2a.explosion.01.blue", "jb2a.misty_step.01.blue"}, c.Search("BLUE"))
	require.Len(t, c.Search(""), 4)
}

func TestParseCatalogArrayOfNames(t *testing.T) {
	c, err := ParseCatalog([]byte(`["fx.nova", "fx.burst", "fx.nova", ""]`))
	require.NoError(t, err)
	require.Equal(t, []string{"fx.burst", "fx.nova"}, c.Search(""))
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(sequencerExport), 0o600))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Equal(t, 4, c.Len())

	_, err = ParseCatalog([]byte("{nope"))
	require.Error(t, err)
}

func TestNilCatalog(t *testing.T) {
	var c *Catalog
	require.Equal(t, 0, c.Len())
	require.False(t, c.EntryExists("fx.nova"))
	require.Nil(t, c.Search("nova"))
}
