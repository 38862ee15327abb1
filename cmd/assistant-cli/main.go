// Command assistant-cli runs the storefront assistant locally against a
// catalog snapshot file, without Redis, MongoDB or an LLM provider.
package main

import (
	"fmt"
	"os"

	"github.com/storefront-ai/assistant-service/cmd/assistant-cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
