//go:build e2e

package e2e_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

var stencilBinary string

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "stencil-e2e-*")
	if err != nil {
		panic(err)
	}

	stencilBinary = filepath.Join(tmpDir, "stencil")

	//nolint:gosec // Building binary with static arguments, not user input
	cmd := exec.Command("go", "build", "-o", stencilBinary, "./cmd/stencil")
	cmd.Dir = ".."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		panic("failed to build stencil binary: " + err.Error())
	}

	exitCode := m.Run()

	_ = os.RemoveAll(tmpDir)

	os.Exit(exitCode)
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:   "testdata",
		Setup: setupE2E,
	})
}

func setupE2E(env *testscript.Env) error {
	env.Setenv("NO_COLOR", "1")

	binDir := filepath.Dir(stencilBinary)
	currentPath := env.Getenv("PATH")
	env.Setenv("PATH", binDir+string(os.PathListSeparator)+currentPath)

	homeDir := filepath.Join(env.WorkDir, ".home")
	if err := os.MkdirAll(homeDir, 0o750); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)

	// Every script gets its own repository inside its work dir.
	env.Setenv("STENCIL_REPOSITORY", filepath.Join(env.WorkDir, "repo"))
	env.Setenv("STENCIL_CONFIG", filepath.Join(env.WorkDir, "no-config.yaml"))
	env.Setenv("STENCIL_IGNORE", filepath.Join(env.WorkDir, "no-ignore"))

	return nil
}
