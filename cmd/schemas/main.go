// Command schemas inspects the marketplace schema variants and validates
// payloads against them.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
