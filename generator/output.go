package generator

import (
	"fmt"
	"io"
	"os"
)

// writeFile truncates or creates path and writes text.
// The file is closed on every path and a close failure is
// reported.
func writeFile(path string, text string) (retErr error) {
	const errCtx = "writing output"

	fi, err := os.OpenFile( //nolint:gosec // path from CLI flag
		path,
		os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
		0o666,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	defer func() {
		if closeErr := fi.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("%s: %w", errCtx, closeErr)
		}
	}()

	if _, err := io.WriteString(fi, text); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
