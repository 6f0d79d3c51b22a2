// Package clipboard delivers rendered output to the system clipboard.
//
// Delivery walks an ordered list of candidates and stops at the first one
// that accepts the whole payload. The candidate list comes from Candidates,
// which maps a platform name to the programs worth trying there, so the
// delivery logic itself never looks at runtime.GOOS.
package clipboard

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"pbcat/pkg/apperr"
)

// EnvFile names the variable that redirects delivery to a file.
const EnvFile = "PBCAT_CLIPBOARD_FILE"

var errNoCandidates = errors.New("no clipboard programs known for this platform")

// Candidate is one way of putting bytes on the clipboard.
type Candidate interface {
	Name() string
	Copy(data []byte) error
}

// Deliverer accepts one rendered payload.
type Deliverer interface {
	Deliver(data []byte) error
}

// Clipboard tries its candidates in order.
type Clipboard struct {
	candidates []Candidate
	logger     *zap.Logger
}

// New creates a Clipboard over candidates.
func New(candidates []Candidate, logger *zap.Logger) *Clipboard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Clipboard{candidates: candidates, logger: logger}
}

// Deliver copies data with the first candidate that succeeds. Failed
// candidates are not retried. When all fail the error wraps the last cause.
func (c *Clipboard) Deliver(data []byte) error {
	var lastErr error
	for _, cand := range c.candidates {
		if err := cand.Copy(data); err != nil {
			c.logger.Debug("Clipboard candidate failed", zap.String("candidate", cand.Name()), zap.Error(err))
			lastErr = err
			continue
		}
		c.logger.Debug("Copied to clipboard", zap.String("candidate", cand.Name()), zap.Int("bytes", len(data)))
		return nil
	}

	if lastErr == nil {
		lastErr = errNoCandidates
	}
	return apperr.New(apperr.KindClipboardUnavailable, c.op(), "", lastErr)
}

func (c *Clipboard) op() string {
	if len(c.candidates) == 0 {
		return apperr.KindClipboardUnavailable.String()
	}
	names := make([]string, len(c.candidates))
	for i, cand := range c.candidates {
		names[i] = cand.Name()
	}
	return apperr.KindClipboardUnavailable.String() + " (tried " + strings.Join(names, ", ") + ")"
}

// FromEnv returns a FileSink when EnvFile is set, otherwise a Clipboard with
// the candidates for goos.
func FromEnv(getenv func(string) string, goos string, logger *zap.Logger) Deliverer {
	if path := getenv(EnvFile); path != "" {
		if logger != nil {
			logger.Debug("Redirecting clipboard output to file", zap.String("file", path))
		}
		return FileSink{Path: path}
	}
	return New(Candidates(goos), logger)
}
