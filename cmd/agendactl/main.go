package main

import (
	"fmt"
	"os"

	"agenda/internal/cli"
	"agenda/internal/config"
)

func main() {
	config.LoadDotEnv()
	if err := cli.NewRoot().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
