//go:build !js && !wasm && !wasip1

// Package launcher starts the production Node.js server.
//
// It sets NODE_ENV=production in its own environment, runs
// "node production-start.js" in the current directory with inherited stdio,
// waits for it and maps its termination into an exit code.
package launcher

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"syscall"

	flag "github.com/spf13/pflag"
	"golang.org/x/sys/unix"

	"github.com/autoparts/prodstart/pkg/core"
)

const applet = "prodstart"

// Version is reported by --version.
var Version = "dev"

// The environment entry forced on the child.
const (
	EnvKey   = "NODE_ENV"
	EnvValue = "production"
)

// Runtime and Script name the child invocation. Tests replace Runtime with a
// fake executable.
var (
	Runtime = "node"
	Script  = "production-start.js"
)

const (
	msgStarting = "Starting production server (NODE_ENV=production)..."
	msgNotFound = "Error: node not found. Make sure Node.js is installed and on PATH."
	msgFailed   = "Error: production server failed: "
	msgNoStart  = "Error: failed to start production server: "
)

// Run executes the launcher with the given arguments.
//
// Supported flags:
//
//	-h, --help   Print usage and exit
//	--version    Print the version and exit
//
// Unknown flags and positional arguments are ignored; the server is always
// started as "node production-start.js". Exit code is 0 when the server exits
// cleanly and 1 on any failure to launch or run it.
func Run(stdio *core.Stdio, args []string) int {
	fset := flag.NewFlagSet(applet, flag.ContinueOnError)
	fset.SetOutput(stdio.Err)
	help := fset.BoolP("help", "h", false, "Print usage and exit")
	version := fset.Bool("version", false, "Print the version and exit")
	fset.Usage = func() {}
	fset.ParseErrorsAllowlist.UnknownFlags = true
	if err := fset.Parse(args); err != nil {
		stdio.Errorf("%s: %v\n", applet, err)
		return core.ExitFailure
	}
	if *help {
		printUsage(stdio, fset)
		return core.ExitSuccess
	}
	if *version {
		stdio.Printf("%s %s\n", applet, Version)
		return core.ExitSuccess
	}

	status(stdio, "🚀", msgStarting)
	if err := os.Setenv(EnvKey, EnvValue); err != nil {
		status(stdio, "❌", msgNoStart+err.Error())
		return core.ExitFailure
	}

	cmd := exec.Command(Runtime, Script) // #nosec G204 -- fixed invocation
	cmd.Stdin = stdio.In
	cmd.Stdout = stdio.Out
	cmd.Stderr = stdio.Err
	cmd.Env = os.Environ()
	if err := cmd.Start(); err != nil {
		if isNotFound(err) {
			status(stdio, "❌", msgNotFound)
		} else {
			status(stdio, "❌", msgNoStart+err.Error())
		}
		return core.ExitFailure
	}
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			status(stdio, "❌", msgFailed+exitDetail(exitErr))
		} else {
			status(stdio, "❌", msgFailed+err.Error())
		}
		return core.ExitFailure
	}
	return cmd.ProcessState.ExitCode()
}

// status prints a status line, marked when stdout is a terminal.
func status(stdio *core.Stdio, marker, line string) {
	if stdio.OutIsTerminal() {
		stdio.Printf("%s %s\n", marker, line)
		return
	}
	stdio.Println(line)
}

func isNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}

// exitDetail describes how the child terminated: "exit status N" or
// "signal: SIGTERM".
func exitDetail(exitErr *exec.ExitError) string {
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		if name := unix.SignalName(ws.Signal()); name != "" {
			return "signal: " + name
		}
	}
	return exitErr.Error()
}

func printUsage(stdio *core.Stdio, fset *flag.FlagSet) {
	stdio.Printf("Usage: %s [flags]\n\n", applet)
	stdio.Printf("Sets %s=%s and runs %q.\n\nFlags:\n", EnvKey, EnvValue, fmt.Sprintf("%s %s", Runtime, Script))
	stdio.Printf("%s", fset.FlagUsages())
}
