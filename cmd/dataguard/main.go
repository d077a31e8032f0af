// Command dataguard fetches public API data, validates it and reports on it.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrymomot/dataguard/pkg/validator"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError reports err on w. Failed validation has already been written as
// the command's output; configuration errors are listed one setting per line.
func printError(w io.Writer, err error) {
	if errors.Is(err, errValidationFailed) {
		return
	}
	if !validator.IsValidationError(err) {
		fmt.Fprintln(w, "error:", err)
		return
	}
	fmt.Fprintln(w, "error: invalid configuration")
	verrs := validator.ExtractValidationErrors(err)
	for _, field := range verrs.Fields() {
		fmt.Fprintf(w, "  %s: %s\n", field, strings.Join(verrs.Get(field), "; "))
	}
}
