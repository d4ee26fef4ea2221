package config

import (
	"os"

	"github.com/subosito/gotenv"
)

// DotenvConfig loads a .env file into the process environment and reads keys
// from the environment. Variables already set in the environment win over the file.
type DotenvConfig struct {
	DotenvPath string
}

func NewDotenvConfig(path string) *DotenvConfig {
	return &DotenvConfig{DotenvPath: path}
}

func (c *DotenvConfig) LoadFromPath(path string) error {
	c.DotenvPath = path
	return c.Load()
}

func (c *DotenvConfig) Load() error {
	if c.DotenvPath == "" {
		return nil
	}

	return gotenv.Load(c.DotenvPath)
}

func (c *DotenvConfig) GetKey(key string) string {
	return os.Getenv(key)
}

func (c *DotenvConfig) MustGetKey(key string) string {
	return mustGetKey(c, key)
}

func (c *DotenvConfig) GetKeyWithDefault(key, defaultValue string) string {
	return getKeyWithDefault(c, key, defaultValue)
}

func (c *DotenvConfig) GetIntKey(key string) int {
	return getIntKeyWithDefault(c, key, 0)
}

func (c *DotenvConfig) MustGetIntKey(key string) int {
	return mustGetIntKey(c, key)
}

func (c *DotenvConfig) GetIntKeyWithDefault(key string, defaultValue int) int {
	return getIntKeyWithDefault(c, key, defaultValue)
}

func (c *DotenvConfig) GetBoolKeyWithDefault(key string, defaultValue bool) bool {
	return getBoolKeyWithDefault(c, key, defaultValue)
}
