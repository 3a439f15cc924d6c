package main

import (
	"fmt"
	"os"

	"scenelist/internal/errors"
	"scenelist/internal/log"
)

var (
	version = "dev"
)

// Entry point for the application
func main() {
	err := NewRootCmd().Execute()
	log.Default().Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorText("Error: "+err.Error()))
		if h := hint(err); h != "" {
			fmt.Fprintln(os.Stderr, infoText(h))
		}
		os.Exit(1)
	}
}

// hint suggests a next step for the errors an operator can fix themselves.
func hint(err error) string {
	switch {
	case errors.IsFileNotFound(err):
		return "Check --root or project.root in the config file."
	case errors.IsInvalidConfig(err):
		return "Fix the config file, or run 'scenelist config init' to write a fresh one."
	case errors.IsStoreError(err):
		return "Check --store and store.path; the scene list file may be damaged or read-only."
	case errors.Is(err, errors.ErrItemNotFound):
		return "Run 'scenelist list' or 'scenelist available' to see scene names."
	}
	return ""
}
