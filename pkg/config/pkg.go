package config

import (
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

const DefaultConfigFile = "~/.alterego.yaml"

var configer Configer = &DotenvConfig{}

func SetConfig(c Configer) {
	configer = c
}

func GetConfig() Configer {
	return configer
}

// ForPath picks the Configer for a config file: dotenv for .env files, viper
// for everything else. A leading ~ is expanded to the user's home directory.
func ForPath(path string) (Configer, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}

	base := filepath.Base(expanded)
	if base == ".env" || strings.HasSuffix(base, ".env") {
		return NewDotenvConfig(expanded), nil
	}

	return NewViperConfig(expanded), nil
}

func LoadFromPath(path string) error {
	return configer.LoadFromPath(path)
}

func Load() error {
	return configer.Load()
}

func GetKey(key string) string {
	return configer.GetKey(key)
}

func MustGetKey(key string) string {
	return configer.MustGetKey(key)
}

func GetKeyWithDefault(key, defaultValue string) string {
	return configer.GetKeyWithDefault(key, defaultValue)
}

func GetIntKey(key string) int {
	return configer.GetIntKey(key)
}

func MustGetIntKey(key string) int {
	return configer.MustGetIntKey(key)
}

func GetIntKeyWithDefault(key string, defaultValue int) int {
	return configer.GetIntKeyWithDefault(key, defaultValue)
}

func GetBoolKeyWithDefault(key string, defaultValue bool) bool {
	return configer.GetBoolKeyWithDefault(key, defaultValue)
}
