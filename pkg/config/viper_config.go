package config

import (
	"github.com/spf13/viper"
)

// ViperConfig reads a yaml, toml or json config file. Environment variables
// with the same key take precedence over the file.
type ViperConfig struct {
	v    *viper.Viper
	path string
}

func NewViperConfig(path string) *ViperConfig {
	v := viper.New()
	v.AutomaticEnv()
	return &ViperConfig{v: v, path: path}
}

func (c *ViperConfig) LoadFromPath(path string) error {
	c.path = path
	return c.Load()
}

func (c *ViperConfig) Load() error {
	if c.path == "" {
		return nil
	}

	c.v.SetConfigFile(c.path)
	return c.v.ReadInConfig()
}

func (c *ViperConfig) GetKey(key string) string {
	return c.v.GetString(key)
}

func (c *ViperConfig) MustGetKey(key string) string {
	return mustGetKey(c, key)
}

func (c *ViperConfig) GetKeyWithDefault(key, defaultValue string) string {
	return getKeyWithDefault(c, key, defaultValue)
}

func (c *ViperConfig) GetIntKey(key string) int {
	return getIntKeyWithDefault(c, key, 0)
}

func (c *ViperConfig) MustGetIntKey(key string) int {
	return mustGetIntKey(c, key)
}

func (c *ViperConfig) GetIntKeyWithDefault(key string, defaultValue int) int {
	return getIntKeyWithDefault(c, key, defaultValue)
}

func (c *ViperConfig) GetBoolKeyWithDefault(key string, defaultValue bool) bool {
	return getBoolKeyWithDefault(c, key, defaultValue)
}
