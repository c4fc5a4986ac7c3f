package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDotEnvIsLoaded(t *testing.T) {
	env := setupCLIEnv(t)
	envDir := filepath.Join(env.base, "from-dotenv")
	// Register restoration, then clear so .env can supply the value.
	t.Setenv("MIXSPLIT_INPUT_DIR", "placeholder")
	if err := os.Unsetenv("MIXSPLIT_INPUT_DIR"); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(env.base, ".env"), []byte("MIXSPLIT_INPUT_DIR="+envDir+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, envDir)
}
