// pizzabot collects a pizza order through a console conversation, lets the
// customer review and correct it, writes it to disk and reads the summary
// back.
//
// Usage:
//
//	pizzabot [order] [--config=<file>] [-o <path>] [--no-color] [--no-narration]
//	pizzabot show <order-file> [--raw]
//	pizzabot schema
package main

import (
	"context"
	"fmt"
	"os"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
