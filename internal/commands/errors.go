package commands

import (
	"errors"
	"fmt"
	"io"
)

// ErrReported marks an error whose message has already been written to the
// error stream. main exits non-zero without printing it again.
var ErrReported = errors.New("error already reported")

// ErrUsage is returned for bad or missing command line arguments.
var ErrUsage = fmt.Errorf("usage error: %w", ErrReported)

func usageError(w io.Writer, synopsis string) error {
	_, _ = fmt.Fprintf(w, "Usage: %s\n", synopsis)
	return ErrUsage
}
