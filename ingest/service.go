// Package ingest is the HTTP front of the tariff pipeline: PDF uploads in,
// normalized tariff rows out.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hazyhaar/tariffpipe/artifacts"
	"github.com/hazyhaar/tariffpipe/mistral"
	"github.com/hazyhaar/tariffpipe/tariff"
)

// Service wires the extractor, artifact store and HTTP surface together.
type Service struct {
	cfg       *Config
	logger    *slog.Logger
	store     *artifacts.Store
	extractor *tariff.Extractor
}

// Option customises NewService.
type Option func(*options)

type options struct {
	ocr  tariff.OCRProvider
	narr tariff.NarrativeExtractor
}

// WithCollaborators injects OCR and narrative collaborators, bypassing the
// Mistral client construction. Mainly for tests.
func WithCollaborators(ocr tariff.OCRProvider, narr tariff.NarrativeExtractor) Option {
	return func(o *options) {
		o.ocr = ocr
		o.narr = narr
	}
}

// NewService builds a Service from config. Without injected collaborators
// it constructs a Mistral client, which requires the API key named by
// mistral.api_key_env to be set.
func NewService(cfg *Config, logger *slog.Logger, opts ...Option) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if o.ocr == nil {
		key := os.Getenv(cfg.Mistral.APIKeyEnv)
		if key == "" {
			return nil, fmt.Errorf("environment variable %s is not set", cfg.Mistral.APIKeyEnv)
		}
		client, err := mistral.New(mistral.Config{
			APIKey:    key,
			BaseURL:   cfg.Mistral.BaseURL,
			OCRModel:  cfg.Mistral.OCRModel,
			ChatModel: cfg.Mistral.ChatModel,
			Logger:    logger,
		})
		if err != nil {
			return nil, fmt.Errorf("mistral client: %w", err)
		}
		o.ocr = client
		if cfg.Mistral.Narrative {
			o.narr = client
		}
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	store, err := artifacts.Open(cfg.OutputDir, cfg.DBPath, logger)
	if err != nil {
		return nil, fmt.Errorf("artifact store: %w", err)
	}

	extractor := tariff.New(tariff.Config{
		OCR:       o.ocr,
		Narrative: o.narr,
		Recorder:  store,
		Logger:    logger,
	})

	return &Service{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		extractor: extractor,
	}, nil
}

// Extractor exposes the underlying extractor, e.g. for MCP registration.
func (s *Service) Extractor() *tariff.Extractor { return s.extractor }

// Extract runs the pipeline on a document directly, without HTTP.
func (s *Service) Extract(ctx context.Context, doc tariff.Document) []tariff.Row {
	return s.extractor.Extract(ctx, doc)
}

// Close releases the artifact store.
func (s *Service) Close() error { return s.store.Close() }

// RegisterHTTP mounts the service routes on r.
func (s *Service) RegisterHTTP(r chi.Router) {
	r.Post("/upload", s.handleUpload)
	r.Get("/runs", s.handleRuns)
	r.Get("/healthz", s.handleHealthz)
}

// Serve runs the HTTP server until ctx is cancelled, then shuts down
// gracefully.
func (s *Service) Serve(ctx context.Context) error {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	s.RegisterHTTP(r)

	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("ingest service listening", "addr", s.cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
