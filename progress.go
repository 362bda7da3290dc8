package utfall

import (
	"io"
	"log/slog"
)

// progressLogInterval is how many bytes are written between progress log lines.
const progressLogInterval = 8 * 1024 * 1024

// progressWriter wraps an io.Writer to track bytes written.
// Used for progress reporting while a download is streamed to disk.
type progressWriter struct {
	w       io.Writer
	written int64
	total   int64 // Content-Length if known, otherwise -1
	nextLog int64
	logger  *slog.Logger
}

// newProgressWriter creates a progress writer. The target writer is set by the caller.
func newProgressWriter(total int64, logger *slog.Logger) *progressWriter {
	return &progressWriter{
		total:   total,
		nextLog: progressLogInterval,
		logger:  logger,
	}
}

// Write implements io.Writer.
func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.written += int64(n)
	if p.written >= p.nextLog {
		p.nextLog += progressLogInterval
		p.logger.Debug("downloading", "bytes", p.written, "percent", p.percent())
	}
	return n, err
}

// percent returns the progress as a percentage (0-100).
// Returns 0 if the total is unknown.
func (p *progressWriter) percent() int {
	if p.total <= 0 {
		return 0
	}
	return int(p.written * 100 / p.total)
}
