package main

import (
	"os"

	"github.com/autoparts/prodstart/pkg/applets/launcher"
	"github.com/autoparts/prodstart/pkg/core"
)

func main() {
	stdio := core.DefaultStdio()
	os.Exit(launcher.Run(stdio, os.Args[1:]))
}
