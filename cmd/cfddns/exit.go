package main

import "fmt"

// ExitCodeError carries a specific process exit code through the error
// return path of a RunE. main exits with Code instead of the generic 1.
// A partial run (some records failed, the run itself completed) maps to
// exit code 2 this way.
type ExitCodeError struct {
	Code int
	Err  error
}

func (e ExitCodeError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e ExitCodeError) Unwrap() error { return e.Err }
