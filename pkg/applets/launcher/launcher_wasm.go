//go:build js || wasm || wasip1

package launcher

import "github.com/autoparts/prodstart/pkg/core"

// Run is a stub that returns an error on WASM platforms where processes cannot be spawned.
func Run(stdio *core.Stdio, args []string) int {
	stdio.Errorf("prodstart: not supported in wasm\n")
	return core.ExitFailure
}
