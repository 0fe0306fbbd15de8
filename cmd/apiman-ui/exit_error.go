package main

import "fmt"

const (
	exitCodeFailure  = 1
	exitCodeConfig   = 2
	exitCodeCanceled = 130
)

// exitError carries a specific process exit code. silent errors have
// already been reported.
type exitError struct {
	code   int
	err    error
	silent bool
}

// configError marks err as a configuration problem: bad environment, a
// missing required setting or an unusable URL.
func configError(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: exitCodeConfig, err: err}
}

func (e *exitError) Error() string {
	if e == nil {
		return ""
	}
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit %d", e.code)
}

func (e *exitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}
