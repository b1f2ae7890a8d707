package main

import (
	"fmt"
	"os"

	"github.com/rocketscienceinc/tictactoe-sessions/cmd"
)

// main - is the entry point of the application. It hands the arguments to the command tree.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
