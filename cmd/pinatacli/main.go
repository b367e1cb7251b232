package main

import (
	"github.com/robotalks/pinata.go/pkg/cli/sh"
	"github.com/robotalks/pinata.go/pkg/host/env"
)

//go-build: CGO_ENABLED=0

func init() {
	env.SetupFlags()
}

func main() {
	sh.Main()
}
