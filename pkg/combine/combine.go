package combine

import (
	"bytes"
	"io"
	"time"

	"go.uber.org/zap"

	"pbcat/pkg/apperr"
	"pbcat/pkg/clipboard"
	"pbcat/pkg/render"
	"pbcat/pkg/resolve"
	"pbcat/pkg/walk"
)

// Run resolves args.Paths, renders the files and hands the result to sink.
// In list-only mode the output is rendered only to be measured and sink is
// never touched. Any failure aborts the whole run.
func Run(args Arguments, sink clipboard.Deliverer, logger *zap.Logger) (Summary, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	startTime := time.Now()
	logger.Debug("Starting combination process", zap.Strings("paths", args.Paths))

	walker := walk.New(walk.Options{
		DenyList: walk.DefaultDenyList().With(args.ExcludeDirs...),
		Ignore:   args.Ignore,
	}, logger)

	files, err := resolve.New(walker, args.Sort, logger).Resolve(args.Paths)
	if err != nil {
		return Summary{}, err
	}

	renderer := render.New(render.Options{Separator: args.Separator, Header: args.Header}, logger)

	if args.ListOnly {
		n, err := renderer.Render(io.Discard, files)
		if err != nil {
			return Summary{}, err
		}
		return Summary{Files: files, Bytes: n}, nil
	}

	// Render fully before delivery so a bad file never leaves partial
	// output on the clipboard.
	var buf bytes.Buffer
	n, err := renderer.Render(&buf, files)
	if err != nil {
		return Summary{}, err
	}

	if sink == nil {
		return Summary{}, apperr.New(apperr.KindClipboardUnavailable, "deliver", "", nil)
	}
	if err := sink.Deliver(buf.Bytes()); err != nil {
		return Summary{}, err
	}

	logger.Debug("Combination process completed",
		zap.Int("totalFiles", len(files)),
		zap.Int64("bytes", n),
		zap.Duration("elapsed", time.Since(startTime)))
	return Summary{Files: files, Bytes: n, Copied: true}, nil
}
