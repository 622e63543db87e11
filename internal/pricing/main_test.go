package pricing

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain verifies no goroutines are leaked by the pricing service.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// go-cache runs a janitor goroutine for the lifetime of the cache
		goleak.IgnoreTopFunction("github.com/patrickmn/go-cache.(*janitor).Run"),
		goleak.IgnoreTopFunction("gopkg.in/natefinch/lumberjack%2ev2.(*Logger).millRun"),
	)
}
