package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Files written by the fake runtime into its working directory.
const (
	FakeEnvFile  = "node_env.out"
	FakeArgsFile = "node_args.out"
)

// FakeRuntime writes an executable shell script called name into a fresh
// directory and returns its path. The script records NODE_ENV and its
// arguments into FakeEnvFile and FakeArgsFile in the current directory, then
// runs body.
func FakeRuntime(t testing.TB, name, body string) string {
	t.Helper()
	script := "#!/bin/sh\n" +
		"printf '%s\\n' \"$NODE_ENV\" > " + FakeEnvFile + "\n" +
		"printf '%s\\n' \"$@\" > " + FakeArgsFile + "\n" +
		body + "\n"
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(script), 0755); err != nil { // #nosec G306 -- test executable
		t.Fatal(err)
	}
	return path
}

// PrependPath puts dir first on PATH for the duration of the test.
func PrependPath(t testing.TB, dir string) {
	t.Helper()
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}
