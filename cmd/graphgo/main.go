package main

import (
	"fmt"
	"os"

	"github.com/hupe1980/graphgo/cmd/graphgo/app"
)

func main() {
	cmd := app.New()
	cmd.SetArgs(os.Args[1:])
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		os.Exit(1)
	}
}
