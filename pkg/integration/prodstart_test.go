package integration_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/autoparts/prodstart/pkg/testutil"
)

const startLine = "Starting production server (NODE_ENV=production)...\n"

func repoRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	// Expect to run from <root>/pkg/integration
	return filepath.Dir(filepath.Dir(cwd)), nil
}

func buildProdstart(t *testing.T) string {
	t.Helper()
	goBin, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go toolchain not on PATH")
	}
	root, err := repoRoot()
	if err != nil {
		t.Fatalf("failed to find repo root: %v", err)
	}
	bin := filepath.Join(t.TempDir(), "prodstart")
	cmd := testutil.Command(goBin, "build", "-o", bin, "./cmd/prodstart")
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build prodstart: %v (%s)", err, output)
	}
	return bin
}

func runProdstart(t *testing.T, bin, dir, path string) (string, string, int) {
	t.Helper()
	cmd := testutil.Command(bin)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "PATH="+path, "NODE_ENV=development")
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			exitCode = ee.ExitCode()
		} else {
			t.Fatalf("run prodstart: %v", err)
		}
	}
	return outBuf.String(), errBuf.String(), exitCode
}

func TestProdstartEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("end-to-end build skipped in short mode")
	}
	bin := buildProdstart(t)
	sysPath := os.Getenv("PATH")

	tests := []struct {
		name     string
		body     string
		missing  bool
		wantOut  string
		wantCode int
	}{
		{
			name:     "child_exits_0",
			body:     "exit 0",
			wantOut:  startLine,
			wantCode: 0,
		},
		{
			name:     "child_exits_3",
			body:     "exit 3",
			wantOut:  startLine + "Error: production server failed: exit status 3\n",
			wantCode: 1,
		},
		{
			name:     "runtime_missing",
			missing:  true,
			wantOut:  startLine + "Error: node not found. Make sure Node.js is installed and on PATH.\n",
			wantCode: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := t.TempDir()
			if !tt.missing {
				fake := testutil.FakeRuntime(t, "node", tt.body)
				path = filepath.Dir(fake) + string(os.PathListSeparator) + sysPath
			}
			out, _, code := runProdstart(t, bin, dir, path)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if out != tt.wantOut {
				t.Errorf("stdout = %q, want %q", out, tt.wantOut)
			}
			if !tt.missing {
				testutil.AssertFileContent(t, filepath.Join(dir, testutil.FakeEnvFile), "production\n")
			}
		})
	}
}
