package main

import (
	"os"

	"github.com/rustyeddy/trade/cmd/trade/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
