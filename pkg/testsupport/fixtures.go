package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// LoadFixture reads a fixture file relative to the test package.
func LoadFixture(t testing.TB, parts ...string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(parts...))
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return data
}
