package main

import (
	"os"
	"testing"
)

func TestDoctorCommand(t *testing.T) {
	env := setupCLIEnv(t)
	out, _, err := runCLI(t, []string{"doctor"}, env.configPath)
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}
	requireContains(t, out, "FFmpeg")
	requireContains(t, out, "ffmpeg version stub")
	requireContains(t, out, "[OK]")

	if err := os.RemoveAll(env.inputDir); err != nil {
		t.Fatal(err)
	}
	out, _, err = runCLI(t, []string{"doctor"}, env.configPath)
	if err == nil {
		t.Fatal("expected doctor to fail without input directory")
	}
	requireContains(t, out, "[ERROR]")
}
