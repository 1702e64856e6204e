package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hazyhaar/tariffpipe/artifacts"
	"github.com/hazyhaar/tariffpipe/tariff"
)

// handleUpload accepts a multipart PDF under the "file" field, runs the
// extraction pipeline on it and answers with the extracted rows.
func (s *Service) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxFileBytes())
	if err := r.ParseMultipartForm(s.cfg.MaxFileBytes()); err != nil {
		httpError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httpError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	name := filepath.Base(header.Filename)
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		httpError(w, http.StatusBadRequest, "only PDF files are accepted")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		httpError(w, http.StatusBadRequest, "read upload failed")
		return
	}
	if !looksLikePDF(data) {
		httpError(w, http.StatusBadRequest, "file does not look like a PDF")
		return
	}

	dst := filepath.Join(s.cfg.UploadDir, name)
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		s.logger.Error("save upload failed", "file", name, "error", err)
		httpError(w, http.StatusInternalServerError, "could not save upload")
		return
	}

	// Page count is advisory. A reader the pdf library rejects may still
	// OCR fine, so failure only logs.
	pages, err := pdfPageCount(bytes.NewReader(data))
	if err != nil {
		s.logger.Warn("pdf validation failed, continuing", "file", name, "error", err)
	} else {
		s.logger.Info("upload received", "file", name, "bytes", len(data), "pages", pages)
	}

	ctx, cancel := context.WithTimeout(r.Context(),
		time.Duration(s.cfg.ExtractTimeoutS)*time.Second)
	defer cancel()

	rows := s.extractor.Extract(ctx, tariff.Document{Name: name, Data: data})
	if rows == nil {
		rows = []tariff.Row{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"document": name,
		"count":    len(rows),
		"rows":     rows,
	})
}

// handleRuns lists recent extraction runs from the journal.
func (s *Service) handleRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	runs, err := s.store.ListRuns(limit)
	if err != nil {
		s.logger.Error("list runs failed", "error", err)
		httpError(w, http.StatusInternalServerError, "list runs failed")
		return
	}
	if runs == nil {
		runs = []artifacts.Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Service) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// looksLikePDF sniffs the magic prefix. OCR providers reject anything
// else, so catch it at the door.
func looksLikePDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF-"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
