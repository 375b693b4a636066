// Package env reads the process-wide switches shared by every tailor command.
package env

import "os"

// Debug enables debug level logging.
func Debug() bool {
	return os.Getenv("DEBUG") != ""
}

// Test is set while running the test suite so global state such as the
// standard library logger output is left alone.
func Test() bool {
	return os.Getenv("TEST_MODE") != ""
}
