package main

import (
	"fmt"
	"os"

	"github.com/Bahjat/castify/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "castify: %v\n", err)
		os.Exit(1)
	}
}
