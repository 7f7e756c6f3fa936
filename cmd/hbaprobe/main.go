package main

import (
	"errors"
	"fmt"
	"os"
)

// exitError carries a process exit code through cobra. An empty msg means
// everything the operator needs is already on stdout/stderr.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

// fail builds the exit-2 error used for all validation and load failures.
func fail(format string, args ...any) error {
	return &exitError{code: 2, msg: fmt.Sprintf(format, args...)}
}

func main() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.msg != "" {
			fmt.Fprintln(os.Stderr, "hbaprobe:", ee.msg)
		}
		os.Exit(ee.code)
	}
	// Anything else came out of flag or argument parsing.
	fmt.Fprintln(os.Stderr, "hbaprobe:", err)
	os.Exit(3)
}
