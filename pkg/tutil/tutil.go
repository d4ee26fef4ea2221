// Package tutil has helpers shared by tests.
package tutil

import (
	"os"
	"strings"
	"testing"
)

// IsIntegrationTest reports whether ALTEREGO_TEST is set to "integration".
func IsIntegrationTest() bool {
	return strings.EqualFold(os.Getenv("ALTEREGO_TEST"), "integration")
}

// SkipUnlessIntegration skips tests that need an external service.
func SkipUnlessIntegration(t testing.TB) {
	t.Helper()
	if !IsIntegrationTest() {
		t.Skip("set ALTEREGO_TEST=integration to run")
	}
}

func EnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}
