// +build !citest

package main

import (
	"os"

	"github.com/tada/mqtt-pub/cli"
)

func main() {
	os.Exit(cli.Publish(os.Args, os.Stdin, os.Stdout, os.Stderr))
}
