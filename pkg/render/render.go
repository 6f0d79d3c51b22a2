// Package render serializes resolved files into one text stream.
package render

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"pbcat/pkg/apperr"
)

// Options controls the framing around each file body. The zero value
// concatenates bodies with nothing in between.
type Options struct {
	Separator string // Written between consecutive files, never before the first or after the last.
	Header    bool   // Prefix every body with Header(path).
}

// Header returns the line written before a file's body.
func Header(path string) string {
	return fmt.Sprintf("== %s ==\n", path)
}

// Renderer writes files to a sink according to fixed Options.
type Renderer struct {
	opts   Options
	logger *zap.Logger
}

// New creates a Renderer.
func New(opts Options, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{opts: opts, logger: logger}
}

// Render writes every file to w and returns the number of bytes written.
// Files are read whole, one at a time. A file that is not valid UTF-8 or a
// failed write stops the pass; the count then covers only what reached w.
func (r *Renderer) Render(w io.Writer, files []string) (int64, error) {
	cw := &countingWriter{w: w}

	for i, path := range files {
		body, err := readText(path)
		if err != nil {
			r.logger.Debug("Failed to read file", zap.String("filePath", path), zap.Error(err))
			return cw.n, err
		}

		if r.opts.Header {
			if _, err := io.WriteString(cw, Header(path)); err != nil {
				return cw.n, fmt.Errorf("failed to write header for %s: %w", path, err)
			}
		}
		if _, err := cw.Write(body); err != nil {
			return cw.n, fmt.Errorf("failed to write %s: %w", path, err)
		}

		last := i == len(files)-1
		if !last && r.opts.Separator != "" {
			if _, err := io.WriteString(cw, r.opts.Separator); err != nil {
				return cw.n, fmt.Errorf("failed to write separator: %w", err)
			}
		}

		r.logger.Debug("Rendered file", zap.String("filePath", path), zap.Int("contentSizeBytes", len(body)))
	}

	return cw.n, nil
}

// readText reads path and checks that it is valid UTF-8.
func readText(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.FromOS("read", path, err)
	}

	text, n, err := transform.Bytes(encoding.UTF8Validator, data)
	if err != nil {
		return nil, apperr.New(apperr.KindEncoding, "read", path,
			fmt.Errorf("not valid UTF-8 (invalid byte near offset %d)", n))
	}
	return text, nil
}

// countingWriter tracks the bytes accepted by the underlying writer.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
