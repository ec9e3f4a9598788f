package main

import "fmt"

// consoleNotifier prints store notifications the way the rest of the CLI
// prints results.
type consoleNotifier struct{}

func (consoleNotifier) Success(msg string) {
	fmt.Printf("✓ %s\n", msg)
}

func (consoleNotifier) Warning(msg string) {
	fmt.Printf("⚠️  %s\n", msg)
}

func (consoleNotifier) Error(msg string) {
	fmt.Printf("✗ %s\n", msg)
}
