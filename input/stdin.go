package input

import (
	"fmt"
	"io"
	"os"
)

// ReadStdin reads all of stdin, used when the Markdown path argument is
// "-" or omitted with stdin piped.
func ReadStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("input: reading stdin: %w", err)
	}
	return string(data), nil
}

// IsPiped reports whether stdin is not a terminal, i.e. data is being
// piped in rather than typed.
func IsPiped() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) == 0
}
