// Package slog provides log/slog decorators for patview services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/patview"
)

// Ensure LoggingExtractor implements patview.Extractor.
var _ patview.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   patview.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next patview.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the result.
func (e *LoggingExtractor) Extract(xml string) (p *patview.Patent, err error) {
	defer func(begin time.Time) {
		if err != nil {
			e.logger.Info("extract",
				"bytes", len(xml),
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		e.logger.Info("extract",
			"bytes", len(xml),
			"publication", p.PublicationNumber,
			"claims", len(p.Claims),
			"drawings", len(p.Drawings),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.Extract(xml)
}
