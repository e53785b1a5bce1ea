//go:build ignore

// Manual check of the clipboard backends: go run ./cmd/cliptest/main.go
package main

import (
	"fmt"
	"os"

	"github.com/zhubert/noro/internal/clipboard"
)

func main() {
	text := "Hello from noro"
	if len(os.Args) > 1 {
		text = os.Args[1]
	}

	if err := clipboard.Init(); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Using backend: %s\n", clipboard.Backend())

	if err := clipboard.WriteText(text); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Copied %q\n", text)
}
