package ingest

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain enables goroutine leak detection for the ingest package: the
// orchestrator must not leave work running after IngestAll returns.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
