package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WritePair creates <base>.description with the given text and a small
// <base>.<audioExt> placeholder in dir.
func WritePair(t testing.TB, dir, base, description, audioExt string) {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, base+".description"), []byte(description), 0o644); err != nil {
		t.Fatalf("write description: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, base+"."+audioExt), []byte("audio"), 0o644); err != nil {
		t.Fatalf("write audio: %v", err)
	}
}

// RequireExists fails the test when path is absent.
func RequireExists(t testing.TB, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
}

// RequireMissing fails the test when path is present.
func RequireMissing(t testing.TB, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be absent, stat err=%v", path, err)
	}
}
