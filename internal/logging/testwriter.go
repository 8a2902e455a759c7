package logging

import (
	"io"
	"os"
)

func testWriter() io.Writer {
	if os.Getenv("KNAPSACK_TEST_LOG") != "" {
		return os.Stderr
	}
	return io.Discard
}
