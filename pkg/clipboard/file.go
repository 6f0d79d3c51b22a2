package clipboard

import (
	"os"

	"pbcat/pkg/apperr"
)

// FileSink stands in for the clipboard by writing the payload to a file.
type FileSink struct {
	Path string
}

// Deliver replaces the file's contents with data.
func (f FileSink) Deliver(data []byte) error {
	if err := os.WriteFile(f.Path, data, 0o644); err != nil {
		return apperr.FromOS("write clipboard file", f.Path, err)
	}
	return nil
}
