// Command functions-shell invokes the application's functions locally,
// with the same fake payloads and contexts the tests use.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewRootCommand(defaultClients()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
