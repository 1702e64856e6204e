package tariff

import "log/slog"

// Config configures an Extractor.
type Config struct {
	// OCR produces markdown text from a document. Required for Extract;
	// ExtractFromText works without it.
	OCR OCRProvider

	// Narrative, when set, replaces the generic first-table fallback with
	// the language-model reconstruction path.
	Narrative NarrativeExtractor

	// Recorder receives diagnostic artifacts. Optional.
	Recorder Recorder

	// Logger for stage-level diagnostics.
	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}
