package main

import (
	"fmt"
	"os"
	"runtime/debug"
)

func main() {
	// Panic recovery: print the trace after the screen teardown deferred
	// inside the run command has restored the terminal
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\npizza-dash crashed: %v\n", r)
			fmt.Fprintf(os.Stderr, "stack trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	Execute()
}
