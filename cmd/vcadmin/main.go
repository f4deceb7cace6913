package main

import (
	"os"

	"github.com/opsforge/vcadmin/cmd/vcadmin/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
