package config

import (
	"strconv"
	"strings"

	"github.com/apex/log"
)

// Configer is the read side of the service configuration. Keys are the
// ALTEREGO_* names used in dotenv files and the environment.
type Configer interface {
	LoadFromPath(path string) error
	Load() error
	GetKey(key string) string
	MustGetKey(key string) string
	GetKeyWithDefault(key, defaultValue string) string
	GetIntKey(key string) int
	MustGetIntKey(key string) int
	GetIntKeyWithDefault(key string, defaultValue int) int
	GetBoolKeyWithDefault(key string, defaultValue bool) bool
}

// The helpers below hold the conversion rules shared by every Configer so
// that a key reads the same regardless of where it came from.

func mustGetKey(c Configer, key string) string {
	val := c.GetKey(key)
	if val == "" {
		log.Fatalf("No such required config key: '%s'", key)
	}

	return val
}

func getKeyWithDefault(c Configer, key, defaultValue string) string {
	val := c.GetKey(key)
	if val == "" {
		return defaultValue
	}

	return val
}

func getIntKeyWithDefault(c Configer, key string, defaultValue int) int {
	intVal, err := strconv.Atoi(strings.TrimSpace(c.GetKey(key)))
	if err != nil {
		return defaultValue
	}

	return intVal
}

func mustGetIntKey(c Configer, key string) int {
	intVal, err := strconv.Atoi(strings.TrimSpace(c.GetKey(key)))
	if err != nil {
		log.Fatalf("Required config key either doesn't exist or isn't an int: '%s': %s", key, err)
	}

	return intVal
}

func getBoolKeyWithDefault(c Configer, key string, defaultValue bool) bool {
	boolVal, err := strconv.ParseBool(strings.TrimSpace(c.GetKey(key)))
	if err != nil {
		return defaultValue
	}

	return boolVal
}
