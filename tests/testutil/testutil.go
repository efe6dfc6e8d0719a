package testutil

import (
	"fmt"
	"os"
	"testing"
)

// RequireTestEnvironment ensures that tests are running in the test environment.
// This prevents accidental execution of tests against production or development databases.
// It will fail the test immediately if GO_ENV is not set to "test".
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	env := os.Getenv("GO_ENV")
	if env != "test" {
		t.Fatalf("SAFETY CHECK FAILED: Tests must run with GO_ENV=test to prevent data loss. Current GO_ENV=%q. Set GO_ENV=test before running tests.", env)
	}
}

// GuardTestMain is called from TestMain. An unset GO_ENV is promoted to "test";
// any other value aborts the run so tests never touch a real database.
func GuardTestMain() {
	env := os.Getenv("GO_ENV")
	if env == "" {
		if err := os.Setenv("GO_ENV", "test"); err != nil {
			fmt.Fprintf(os.Stderr, "failed to set GO_ENV=test: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if env != "test" {
		fmt.Fprintf(os.Stderr, "\nSAFETY CHECK FAILED: tests must run with GO_ENV=test (current: %q)\n"+
			"  GO_ENV=test go test ./...\n\n", env)
		os.Exit(1)
	}
}
