// Package guard switches binaries into test mode when imported by a test, so
// calling main() returns before dialing Redis or listening on a port.
package guard

import "os"

// EnvVar is read by app.InTestMode.
const EnvVar = "MALLOPS_TEST_MODE"

func init() {
	if os.Getenv(EnvVar) == "" {
		_ = os.Setenv(EnvVar, "1")
	}
}
